//go:build unit

package cartdetail

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/pkg/broadcast"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/catalogcache"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

type fakeCatalog struct {
	records  map[int]catalog.Record
	lastSeen map[int]catalog.Record
	hub      *broadcast.Hub[struct{}, uint64]
}

func newFakeCatalog(records ...catalog.Record) *fakeCatalog {
	f := &fakeCatalog{
		records:  map[int]catalog.Record{},
		lastSeen: map[int]catalog.Record{},
		hub:      broadcast.NewHub[struct{}, uint64](),
	}
	for _, r := range records {
		f.records[r.ID] = r
	}
	return f
}

func (f *fakeCatalog) Lookup(id int) (catalog.Record, bool) {
	r, ok := f.records[id]
	return r, ok
}

func (f *fakeCatalog) LastSeen(id int) (catalog.Record, bool) {
	r, ok := f.lastSeen[id]
	return r, ok
}

func (f *fakeCatalog) RecordsByGroup(groupID int) []catalog.Record {
	var out []catalog.Record
	for _, id := range []int{1, 2, 3} {
		if r, ok := f.records[id]; ok && r.GroupID == groupID {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeCatalog) Subscribe() *catalogcache.Subscription {
	return f.hub.Subscribe()
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleCart() cart.Cart {
	return cart.New("alice").WithLines([]cart.LineItem{
		{RecordID: 2, Amount: 2, UnitPrice: price(20), StockAtFetch: 3, StockKnown: true, Title: "cached two"},
		{RecordID: 1, Amount: 0, UnitPrice: price(10)},
		{RecordID: 3, Amount: 1, UnitPrice: price(15), StockAtFetch: 1, StockKnown: true, Title: "Giant Steps", GroupName: "Jazz"},
	}).WithSynced()
}

func TestBuild_JoinsCatalogAndKeepsCartOrder(t *testing.T) {
	cat := newFakeCatalog(
		catalog.Record{ID: 2, Title: "Kind of Blue", Image: "kob.jpg", GroupName: "Jazz", Stock: 7},
		catalog.Record{ID: 3, Title: "Giant Steps", Image: "gs.jpg", GroupName: "Jazz", Stock: 0},
	)

	got := Build(sampleCart(), cat)

	want := []Row{
		{RecordID: 2, Title: "Kind of Blue", Image: "kob.jpg", GroupName: "Jazz", Amount: 2, UnitPrice: price(20), LineTotal: price(40), Stock: 7, StockKnown: true},
		{RecordID: 3, Title: "Giant Steps", Image: "gs.jpg", GroupName: "Jazz", Amount: 1, UnitPrice: price(15), LineTotal: price(15), Stock: 0, StockKnown: true},
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_MissingMetadataFallsBack(t *testing.T) {
	cat := newFakeCatalog()
	cat.lastSeen[2] = catalog.Record{ID: 2, Title: "Kind of Blue", Image: "kob.jpg", GroupName: "Jazz"}

	got := Build(sampleCart(), cat)

	want := []Row{
		{RecordID: 2, Title: "Kind of Blue", Image: "kob.jpg", GroupName: "Jazz", Amount: 2, UnitPrice: price(20), LineTotal: price(40), Stock: 3, StockKnown: true, MetadataStale: true},
		{RecordID: 3, Title: "Giant Steps", GroupName: "Jazz", Amount: 1, UnitPrice: price(15), LineTotal: price(15), Stock: 1, StockKnown: true, MetadataStale: true},
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_IsIdempotent(t *testing.T) {
	cat := newFakeCatalog(catalog.Record{ID: 2, Title: "Kind of Blue"})
	c := sampleCart()

	first := Build(c, cat)
	second := Build(c, cat)

	assert.Empty(t, cmp.Diff(first, second, decimalEqual))
}

func TestAggregator_ListingAndBadge(t *testing.T) {
	store := cartstore.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	defer store.Close()
	store.Replace("alice", sampleCart())

	cat := newFakeCatalog(
		catalog.Record{ID: 1, Title: "Blue Train", GroupID: 5},
		catalog.Record{ID: 2, Title: "Kind of Blue", GroupID: 5},
		catalog.Record{ID: 3, Title: "Giant Steps", GroupID: 6},
	)
	agg := NewAggregator(store, cat)

	listing := agg.Listing("alice", 5)
	require.Len(t, listing, 2)
	assert.Equal(t, 0, listing[0].InCart)
	assert.Equal(t, 2, listing[1].InCart)

	badge := agg.Badge("alice")
	assert.Equal(t, 3, badge.TotalItems)
	assert.True(t, price(55).Equal(badge.TotalPrice))
	assert.Len(t, agg.Rows("alice"), 2)
}

func TestRowStream_EmitsOnCartAndCatalogChanges(t *testing.T) {
	store := cartstore.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	defer store.Close()
	store.Replace("alice", sampleCart())

	cat := newFakeCatalog()
	agg := NewAggregator(store, cat)
	st := agg.Subscribe("alice")
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rows, ok := st.Next(ctx)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, "cached two", rows[0].Title)

	// wait for the catalog subscription to be registered
	require.Eventually(t, func() bool { return cat.hub.Len() == 1 }, time.Second, 5*time.Millisecond)
	cat.records[2] = catalog.Record{ID: 2, Title: "Kind of Blue"}
	cat.hub.Publish(struct{}{}, 1)

	rows, ok = st.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, "Kind of Blue", rows[0].Title)
	assert.False(t, rows[0].MetadataStale)

	store.Replace("alice", sampleCart().Drained())
	rows, ok = st.Next(ctx)
	require.True(t, ok)
	assert.Empty(t, rows)
}

func TestRowStream_EndsWhenStoreCloses(t *testing.T) {
	store := cartstore.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	cat := newFakeCatalog()
	st := NewAggregator(store, cat).Subscribe("alice")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, ok := st.Next(ctx)
	require.True(t, ok)

	store.Close()

	_, ok = st.Next(ctx)
	assert.False(t, ok)
	assert.Eventually(t, func() bool { return cat.hub.Len() == 0 }, time.Second, 5*time.Millisecond)
}
