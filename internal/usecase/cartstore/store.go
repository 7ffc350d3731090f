package cartstore

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/pkg/broadcast"
	"storefront-core/internal/usecase/shared"
)

type Subscription = broadcast.Subscription[struct{}, cart.Cart]

type entry struct {
	cart cart.Cart
	hub  *broadcast.Hub[struct{}, cart.Cart]
}

type mirrorJob struct {
	cart cart.Cart
	drop bool
}

// Store is the process-wide cache of one cart per owner. Carts are only ever
// swapped whole through Replace. Subscribers receive snapshots in replace order;
// a slow subscriber skips straight to the newest snapshot.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	version uint64
	closed  bool

	mirror  shared.SnapshotMirror
	jobs    *broadcast.Mailbox[string, mirrorJob]
	stopped chan struct{}
	logger  *slog.Logger
}

// NewStore starts a mirror worker when mirror is non-nil.
func NewStore(logger *slog.Logger, mirror shared.SnapshotMirror) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		mirror:  mirror,
		logger:  logger,
		stopped: make(chan struct{}),
	}
	if mirror != nil {
		s.jobs = broadcast.NewMailbox[string, mirrorJob]()
		go s.runMirror()
	} else {
		close(s.stopped)
	}
	return s
}

// NormalizeKey is the canonical owner key: trimmed, lower-cased email.
func NormalizeKey(ownerKey string) string {
	return strings.ToLower(strings.TrimSpace(ownerKey))
}

// Get returns the owner's cart, creating an empty unsynced one if absent.
func (s *Store) Get(ownerKey string) cart.Cart {
	key := NormalizeKey(ownerKey)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return e.cart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entryLocked(key).cart
}

// Replace swaps the owner's cart and returns the stored snapshot with its new version.
func (s *Store) Replace(ownerKey string, c cart.Cart) cart.Cart {
	key := NormalizeKey(ownerKey)

	s.mu.Lock()
	e := s.entryLocked(key)
	s.version++
	c.OwnerKey = key
	c.Version = s.version
	e.cart = c
	e.hub.Publish(struct{}{}, c)
	s.mu.Unlock()

	s.enqueueMirror(mirrorJob{cart: c})
	return c
}

// Subscribe emits the current cart immediately, then every replaced snapshot.
func (s *Store) Subscribe(ownerKey string) *Subscription {
	key := NormalizeKey(ownerKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(key)
	return e.hub.SubscribeSeeded(struct{}{}, e.cart)
}

// Drop clears the owner's cart on logout. Open subscriptions receive the empty cart.
func (s *Store) Drop(ownerKey string) cart.Cart {
	key := NormalizeKey(ownerKey)

	s.mu.Lock()
	e := s.entryLocked(key)
	s.version++
	fresh := cart.New(key)
	fresh.Version = s.version
	e.cart = fresh
	e.hub.Publish(struct{}{}, fresh)
	s.mu.Unlock()

	s.enqueueMirror(mirrorJob{cart: fresh, drop: true})
	return fresh
}

// Owners lists the cached owner keys in order.
func (s *Store) Owners() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make([]string, 0, len(s.entries))
	for k := range s.entries {
		owners = append(owners, k)
	}
	sort.Strings(owners)
	return owners
}

func (s *Store) Subscribers(ownerKey string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[NormalizeKey(ownerKey)]; ok {
		return e.hub.Len()
	}
	return 0
}

// Close ends every subscription and stops the mirror worker.
// Subscriptions opened afterwards start closed.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, e := range s.entries {
		e.hub.Close()
	}
	s.mu.Unlock()

	if s.jobs != nil {
		s.jobs.Close()
	}
	<-s.stopped
}

func (s *Store) entryLocked(key string) *entry {
	e, ok := s.entries[key]
	if ok {
		return e
	}
	hub := broadcast.NewHub[struct{}, cart.Cart]()
	if s.closed {
		hub.Close()
	}
	e = &entry{cart: cart.New(key), hub: hub}
	s.entries[key] = e
	return e
}

func (s *Store) enqueueMirror(job mirrorJob) {
	if s.jobs == nil {
		return
	}
	s.jobs.Push(job.cart.OwnerKey, job)
}

func (s *Store) runMirror() {
	defer close(s.stopped)

	for {
		job, ok := s.jobs.Pop(context.Background())
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		var err error
		if job.drop {
			err = s.mirror.Delete(ctx, job.cart.OwnerKey)
		} else {
			err = s.mirror.Save(ctx, job.cart)
		}
		cancel()

		if err != nil {
			s.logger.Warn("cart snapshot mirror failed",
				slog.String("owner", job.cart.OwnerKey),
				slog.Bool("drop", job.drop),
				slog.String("error", err.Error()))
		}
	}
}
