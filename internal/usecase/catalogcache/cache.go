package catalogcache

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/pkg/broadcast"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/shared"
	"storefront-core/internal/usecase/stock"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Subscription yields the catalog revision after every change.
type Subscription = broadcast.Subscription[struct{}, uint64]

// Cache holds the latest catalog snapshot, records joined with their group names.
// Live stock follows the stock channel between refreshes.
type Cache struct {
	backend  shared.CatalogBackend
	stock    *stock.Channel
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	sfg singleflight.Group

	mu       sync.RWMutex
	records  map[int]catalog.Record
	order    []int
	groups   []catalog.Group
	lastSeen map[int]catalog.Record
	revision uint64
	loaded   bool

	changes *broadcast.Hub[struct{}, uint64]

	stop chan struct{}
	done chan struct{}
}

type Options struct {
	// zero disables periodic refresh
	Interval time.Duration
	Timeout  time.Duration
}

func New(backend shared.CatalogBackend, stockCh *stock.Channel, logger *slog.Logger, opts Options) *Cache {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Cache{
		backend:  backend,
		stock:    stockCh,
		interval: opts.Interval,
		timeout:  timeout,
		logger:   logger,
		records:  make(map[int]catalog.Record),
		lastSeen: make(map[int]catalog.Record),
		changes:  broadcast.NewHub[struct{}, uint64](),
	}
}

// Refresh reloads records and groups. Concurrent callers share one backend round trip.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, _ := c.sfg.Do("refresh", func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		var (
			records []catalog.Record
			groups  []catalog.Group
		)
		g, gctx := errgroup.WithContext(rctx)
		g.Go(func() error {
			var err error
			records, err = c.backend.ListRecords(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			groups, err = c.backend.ListGroups(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "refresh catalog"), errs.ErrCatalogUnavailable)
		}

		c.apply(joinGroups(records, groups), groups)
		return nil, nil
	})
	return err
}

func joinGroups(records []catalog.Record, groups []catalog.Group) []catalog.Record {
	names := make(map[int]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}
	out := make([]catalog.Record, len(records))
	for i, r := range records {
		if r.GroupName == "" {
			r.GroupName = names[r.GroupID]
		}
		out[i] = r
	}
	return out
}

func (c *Cache) apply(records []catalog.Record, groups []catalog.Group) {
	var changed []catalog.StockEvent

	c.mu.Lock()
	next := make(map[int]catalog.Record, len(records))
	order := make([]int, 0, len(records))
	for _, r := range records {
		if _, dup := next[r.ID]; !dup {
			order = append(order, r.ID)
		}
		next[r.ID] = r
		c.lastSeen[r.ID] = r
		if prev, ok := c.records[r.ID]; c.loaded && ok && prev.Stock != r.Stock {
			changed = append(changed, catalog.StockEvent{RecordID: r.ID, NewStock: r.Stock})
		}
	}
	c.records = next
	c.order = order
	c.groups = append([]catalog.Group(nil), groups...)
	c.loaded = true
	c.revision++
	c.changes.Publish(struct{}{}, c.revision)
	c.mu.Unlock()

	if c.stock != nil {
		for _, ev := range changed {
			c.stock.Publish(ev)
		}
	}
}

// ApplyStock updates the live stock of a cached record. Unknown records are ignored.
func (c *Cache) ApplyStock(ev catalog.StockEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.records[ev.RecordID]
	if !ok || r.Stock == ev.NewStock {
		return
	}
	r.Stock = ev.NewStock
	c.records[ev.RecordID] = r
	c.lastSeen[ev.RecordID] = r
	c.revision++
	c.changes.Publish(struct{}{}, c.revision)
}

func (c *Cache) Lookup(recordID int) (catalog.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.records[recordID]
	return r, ok
}

// LastSeen returns the most recent entry ever cached for the record, even if it
// has since left the catalog.
func (c *Cache) LastSeen(recordID int) (catalog.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.lastSeen[recordID]
	return r, ok
}

// Records lists the catalog in backend order.
func (c *Cache) Records() []catalog.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]catalog.Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.records[id])
	}
	return out
}

func (c *Cache) RecordsByGroup(groupID int) []catalog.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []catalog.Record
	for _, id := range c.order {
		if r := c.records[id]; r.GroupID == groupID {
			out = append(out, r)
		}
	}
	return out
}

func (c *Cache) Groups() []catalog.Group {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := append([]catalog.Group(nil), c.groups...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Cache) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Subscribe notifies on every refresh or stock change. Pending notifications collapse into the newest revision.
func (c *Cache) Subscribe() *Subscription {
	return c.changes.Subscribe()
}

// Start loads the catalog once, then follows stock events and refreshes on the interval.
// A failed initial load is logged; the catalog stays empty until a refresh succeeds.
func (c *Cache) Start(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("initial catalog load failed", slog.String("error", err.Error()))
	}

	c.stop = make(chan struct{})
	c.done = make(chan struct{})

	var sub *stock.Subscription
	if c.stock != nil {
		sub = c.stock.Subscribe()
	}
	go c.run(sub)
	return nil
}

func (c *Cache) run(sub *stock.Subscription) {
	defer close(c.done)

	var wg sync.WaitGroup
	if sub != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				ev, ok := sub.Next(context.Background())
				if !ok {
					return
				}
				c.ApplyStock(ev)
			}
		}()
	}

	var tick <-chan time.Time
	if c.interval > 0 {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-c.stop:
			if sub != nil {
				sub.Close()
			}
			wg.Wait()
			return
		case <-tick:
			if err := c.Refresh(context.Background()); err != nil {
				c.logger.Warn("catalog refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Stop ends the background loops and every change subscription.
func (c *Cache) Stop(context.Context) error {
	if c.stop != nil {
		close(c.stop)
		<-c.done
		c.stop = nil
	}
	c.changes.Close()
	return nil
}
