package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var ErrSnapshotMiss = errs.New("cart snapshot not found")

// Snapshot is the JSON document stored under cart:<owner>.
type Snapshot struct {
	OwnerKey   string          `json:"ownerKey"`
	Version    uint64          `json:"version"`
	Enabled    bool            `json:"enabled"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Lines      []SnapshotLine  `json:"lines"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type SnapshotLine struct {
	RecordID  int             `json:"recordId"`
	Amount    int             `json:"amount"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// SnapshotMirror keeps the latest totals of every cart readable by other services.
type SnapshotMirror struct {
	client  *redis.Client
	baseTTL time.Duration
	now     func() time.Time
}

func NewSnapshotMirror(client *redis.Client, baseTTL time.Duration) *SnapshotMirror {
	if baseTTL <= 0 {
		baseTTL = 15 * time.Minute
	}
	return &SnapshotMirror{client: client, baseTTL: baseTTL, now: time.Now}
}

var _ shared.SnapshotMirror = (*SnapshotMirror)(nil)

func (m *SnapshotMirror) Save(ctx context.Context, c cart.Cart) error {
	snap := Snapshot{
		OwnerKey:   c.OwnerKey,
		Version:    c.Version,
		Enabled:    c.Enabled,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		UpdatedAt:  m.now().UTC(),
	}
	for _, l := range c.ActiveLines() {
		snap.Lines = append(snap.Lines, SnapshotLine{RecordID: l.RecordID, Amount: l.Amount, UnitPrice: l.UnitPrice})
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return errs.Wrap(err, "marshal cart snapshot")
	}

	// jitter spreads expiry of carts written together
	ttl := m.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := m.client.Set(ctx, snapshotKey(c.OwnerKey), data, ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set cart snapshot")
	}
	return nil
}

func (m *SnapshotMirror) Delete(ctx context.Context, ownerKey string) error {
	if err := m.client.Del(ctx, snapshotKey(ownerKey)).Err(); err != nil {
		return errs.Wrap(err, "redis delete cart snapshot")
	}
	return nil
}

func (m *SnapshotMirror) Load(ctx context.Context, ownerKey string) (*Snapshot, error) {
	data, err := m.client.Get(ctx, snapshotKey(ownerKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotMiss
	}
	if err != nil {
		return nil, errs.Wrap(err, "redis get cart snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errs.Wrap(err, "unmarshal cart snapshot")
	}
	return &snap, nil
}

func snapshotKey(ownerKey string) string {
	return fmt.Sprintf("cart:%s", ownerKey)
}
