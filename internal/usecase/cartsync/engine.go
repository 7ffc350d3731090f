package cartsync

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/pkg/metrics"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/shared"
	"storefront-core/internal/usecase/stock"
)

// CatalogLookup supplies price and live stock for records. Its stock takes
// precedence over the stock a cart line was fetched with.
type CatalogLookup interface {
	Lookup(recordID int) (catalog.Record, bool)
}

// StockRecorder is implemented by catalogs that take stock the engine learns
// directly, ahead of the asynchronous StockChannel delivery.
type StockRecorder interface {
	ApplyStock(ev catalog.StockEvent)
}

type Options struct {
	// bound for every backend call; calls are detached from caller cancellation
	Timeout time.Duration
	Catalog CatalogLookup
	Metrics *metrics.Metrics
}

// Engine mediates between the cart store and the remote cart service.
// All store writes for one owner go through the owner's FIFO lane.
type Engine struct {
	store   *cartstore.Store
	backend shared.CartBackend
	stock   *stock.Channel
	catalog CatalogLookup
	queue   *ownerQueue
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewEngine(store *cartstore.Store, backend shared.CartBackend, stockCh *stock.Channel, logger *slog.Logger, opts Options) *Engine {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Engine{
		store:   store,
		backend: backend,
		stock:   stockCh,
		catalog: opts.Catalog,
		queue:   newOwnerQueue(),
		timeout: timeout,
		metrics: opts.Metrics,
		logger:  logger,
	}
}

func (e *Engine) remoteCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
}

// Fetch replaces the owner's cart with the backend listing. On failure the
// owner's cart becomes empty, keeping its enabled flag, and ErrFetchFailed is returned.
func (e *Engine) Fetch(ctx context.Context, ownerKey string) (cart.Cart, error) {
	release, err := e.queue.acquire(ctx, ownerKey)
	if err != nil {
		return e.store.Get(ownerKey), err
	}
	defer release()

	c, err := e.fetchInto(ctx, ownerKey, e.store.Get(ownerKey))
	e.metrics.ObserveSync("fetch", err)
	return c, err
}

// Snapshot returns the cached cart, fetching it first if the owner was never synced.
func (e *Engine) Snapshot(ctx context.Context, ownerKey string) (cart.Cart, error) {
	if c := e.store.Get(ownerKey); c.Synced {
		return c, nil
	}
	return e.Fetch(ctx, ownerKey)
}

// Add increments the record's amount by one using the optimistic protocol.
func (e *Engine) Add(ctx context.Context, ownerKey string, recordID int) (cart.Cart, error) {
	release, err := e.queue.acquire(ctx, ownerKey)
	if err != nil {
		return e.store.Get(ownerKey), err
	}
	defer release()

	c, err := e.add(ctx, ownerKey, recordID)
	e.metrics.ObserveSync("add", err)
	return c, err
}

func (e *Engine) add(ctx context.Context, ownerKey string, recordID int) (cart.Cart, error) {
	before := e.ensureSynced(ctx, ownerKey)
	if !before.Enabled {
		return before, errs.Mark(errs.Newf("add record %d", recordID), errs.ErrCartDisabled)
	}

	line, ok := before.Line(recordID)
	if !ok {
		line = cart.LineItem{RecordID: recordID}
	}
	e.fillFromCatalog(&line, !ok)

	// last known stock: live catalog stock, else the stock the line was fetched with
	if line.StockKnown && line.StockAtFetch <= 0 {
		return before, errs.Mark(errs.Newf("record %d has no stock left", recordID), errs.ErrStockExhausted)
	}

	line.Amount++
	if line.StockKnown {
		line.StockAtFetch--
	}
	tentative := before.WithLine(line)

	return e.optimistic(ctx, ownerKey, "add", before, tentative, func(rctx context.Context) (*shared.LineEcho, error) {
		return e.backend.AddLine(rctx, ownerKey, recordID, 1)
	})
}

// Remove decrements the record's amount by count (at least one), never below zero.
func (e *Engine) Remove(ctx context.Context, ownerKey string, recordID, count int) (cart.Cart, error) {
	if count < 1 {
		count = 1
	}

	release, err := e.queue.acquire(ctx, ownerKey)
	if err != nil {
		return e.store.Get(ownerKey), err
	}
	defer release()

	c, err := e.remove(ctx, ownerKey, recordID, count)
	e.metrics.ObserveSync("remove", err)
	return c, err
}

func (e *Engine) remove(ctx context.Context, ownerKey string, recordID, count int) (cart.Cart, error) {
	before := e.ensureSynced(ctx, ownerKey)
	if !before.Enabled {
		return before, errs.Mark(errs.Newf("remove record %d", recordID), errs.ErrCartDisabled)
	}

	line, ok := before.Line(recordID)
	if !ok || line.Amount <= 0 {
		return before, errs.Mark(errs.Newf("record %d is not in the cart", recordID), errs.ErrLineEmpty)
	}

	removed := min(count, line.Amount)
	line.Amount -= removed
	if line.StockKnown {
		line.StockAtFetch += removed
	}
	tentative := before.WithLine(line)

	return e.optimistic(ctx, ownerKey, "remove", before, tentative, func(rctx context.Context) (*shared.LineEcho, error) {
		return e.backend.RemoveLine(rctx, ownerKey, recordID, removed)
	})
}

// optimistic applies tentative, runs call, then either reconciles with a fresh
// listing or restores before exactly.
func (e *Engine) optimistic(
	ctx context.Context,
	ownerKey, op string,
	before, tentative cart.Cart,
	call func(context.Context) (*shared.LineEcho, error),
) (cart.Cart, error) {
	e.store.Replace(ownerKey, tentative)

	rctx, cancel := e.remoteCtx(ctx)
	echo, err := call(rctx)
	cancel()
	if err != nil {
		restored := e.store.Replace(ownerKey, before)
		e.logger.Warn("cart mutation rejected, rolled back",
			slog.String("op", op),
			slog.String("owner", ownerKey),
			slog.String("error", err.Error()))
		return restored, errs.Mark(errs.Wrap(err, op), errs.ErrMutationRejected)
	}

	fctx, fcancel := e.remoteCtx(ctx)
	lines, err := e.backend.ListLines(fctx, ownerKey)
	fcancel()
	if err != nil {
		// the mutation itself succeeded; keep the optimistic state, corrected by the echo
		stored := e.settle(ownerKey, before, applyEcho(tentative, echo, false), echo)
		e.logger.Warn("reconcile fetch failed after cart mutation",
			slog.String("op", op),
			slog.String("owner", ownerKey),
			slog.String("error", err.Error()))
		return stored, nil
	}

	// listings may omit stock; the echo fills it in for the mutated line
	next := applyEcho(before.WithLines(lines), echo, true)
	return e.settle(ownerKey, before, e.carryStock(before, next), echo), nil
}

// settle stores next and publishes every stock value learned from the mutation.
// The mutated record's stock is published even when the line left the cart.
func (e *Engine) settle(ownerKey string, before, next cart.Cart, echo *shared.LineEcho) cart.Cart {
	stored := e.store.Replace(ownerKey, next.WithSynced())
	e.publishStockChanges(before, stored)

	if echo != nil && echo.StockKnown {
		ev := catalog.StockEvent{RecordID: echo.RecordID, NewStock: echo.Stock}
		if l, ok := stored.Line(echo.RecordID); ok && l.StockKnown {
			ev.NewStock = l.StockAtFetch
		}
		e.publishStock(ev)
	}
	return stored
}

// SetEnabled toggles the cart remotely; the store changes only on success and lines are kept.
func (e *Engine) SetEnabled(ctx context.Context, ownerKey string, enabled bool) (cart.Cart, error) {
	release, err := e.queue.acquire(ctx, ownerKey)
	if err != nil {
		return e.store.Get(ownerKey), err
	}
	defer release()

	current := e.store.Get(ownerKey)
	rctx, cancel := e.remoteCtx(ctx)
	err = e.backend.SetEnabled(rctx, ownerKey, enabled)
	cancel()
	e.metrics.ObserveSync("set_enabled", err)
	if err != nil {
		return current, errs.Mark(errs.Wrap(err, "set enabled"), errs.ErrMutationRejected)
	}

	return e.store.Replace(ownerKey, current.WithEnabled(enabled)), nil
}

// SyncStatus asks the backend whether the cart is enabled. A disabled cart is
// stored as such without fetching lines; an enabled one is fetched. If the status
// call fails the cart is treated as enabled.
func (e *Engine) SyncStatus(ctx context.Context, ownerKey string) (cart.Cart, error) {
	release, err := e.queue.acquire(ctx, ownerKey)
	if err != nil {
		return e.store.Get(ownerKey), err
	}
	defer release()

	current := e.store.Get(ownerKey)
	rctx, cancel := e.remoteCtx(ctx)
	enabled, err := e.backend.Status(rctx, ownerKey)
	cancel()
	if err != nil {
		e.logger.Warn("cart status unavailable, assuming enabled",
			slog.String("owner", ownerKey),
			slog.String("error", err.Error()))
		enabled = true
	}

	if !enabled {
		c := e.store.Replace(ownerKey, current.WithEnabled(false).WithSynced())
		e.metrics.ObserveSync("status", nil)
		return c, nil
	}

	c, err := e.fetchInto(ctx, ownerKey, current.WithEnabled(true))
	e.metrics.ObserveSync("status", err)
	return c, err
}

// Logout drops the owner's cart once in-flight operations for the owner have finished.
func (e *Engine) Logout(ctx context.Context, ownerKey string) error {
	release, err := e.queue.acquire(ctx, ownerKey)
	if err != nil {
		return err
	}
	defer release()

	e.store.Drop(ownerKey)
	return nil
}

// Carts lists every cart known to the backend (admin view), filtered by a
// case-insensitive owner substring when search is non-empty.
func (e *Engine) Carts(ctx context.Context, search string) ([]shared.CartSummary, error) {
	rctx, cancel := e.remoteCtx(ctx)
	all, err := e.backend.ListCarts(rctx)
	cancel()
	e.metrics.ObserveSync("list_carts", err)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list carts"), errs.ErrFetchFailed)
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]shared.CartSummary, 0, len(all))
	for _, c := range all {
		if needle != "" && !strings.Contains(strings.ToLower(c.OwnerKey), needle) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// WithOwner runs fn inside the owner's lane with a synced snapshot, so no cart
// mutation for the owner interleaves with it.
func (e *Engine) WithOwner(ctx context.Context, ownerKey string, fn func(ctx context.Context, current cart.Cart) error) error {
	release, err := e.queue.acquire(ctx, ownerKey)
	if err != nil {
		return err
	}
	defer release()

	return fn(ctx, e.ensureSynced(ctx, ownerKey))
}

func (e *Engine) ensureSynced(ctx context.Context, ownerKey string) cart.Cart {
	current := e.store.Get(ownerKey)
	if current.Synced {
		return current
	}
	c, err := e.fetchInto(ctx, ownerKey, current)
	if err != nil {
		e.logger.Warn("initial cart fetch failed",
			slog.String("owner", ownerKey),
			slog.String("error", err.Error()))
	}
	return c
}

func (e *Engine) fetchInto(ctx context.Context, ownerKey string, base cart.Cart) (cart.Cart, error) {
	rctx, cancel := e.remoteCtx(ctx)
	lines, err := e.backend.ListLines(rctx, ownerKey)
	cancel()
	if err != nil {
		empty := e.store.Replace(ownerKey, base.WithLines(nil).WithSynced())
		return empty, errs.Mark(errs.Wrap(err, "fetch cart"), errs.ErrFetchFailed)
	}

	stored := e.store.Replace(ownerKey, e.carryStock(base, base.WithLines(lines)).WithSynced())
	e.publishStockChanges(base, stored)
	return stored, nil
}

// carryStock gives lines the listing left without stock the live catalog stock,
// or else the stock the previous snapshot knew.
func (e *Engine) carryStock(prev, next cart.Cart) cart.Cart {
	for _, l := range next.Lines {
		if l.StockKnown {
			continue
		}
		if rec, ok := e.lookup(l.RecordID); ok {
			l.StockAtFetch, l.StockKnown = rec.Stock, true
		} else if old, ok := prev.Line(l.RecordID); ok && old.StockKnown {
			l.StockAtFetch, l.StockKnown = old.StockAtFetch, true
		} else {
			continue
		}
		next = next.WithLine(l)
	}
	return next
}

func (e *Engine) lookup(recordID int) (catalog.Record, bool) {
	if e.catalog == nil {
		return catalog.Record{}, false
	}
	return e.catalog.Lookup(recordID)
}

func (e *Engine) fillFromCatalog(line *cart.LineItem, isNew bool) {
	rec, ok := e.lookup(line.RecordID)
	if !ok {
		return
	}
	line.StockAtFetch = rec.Stock
	line.StockKnown = true
	if isNew || line.UnitPrice.IsZero() {
		line.UnitPrice = rec.Price
	}
	if line.Title == "" {
		line.Title = rec.Title
	}
	if line.Image == "" {
		line.Image = rec.Image
	}
	if line.GroupName == "" {
		line.GroupName = rec.GroupName
	}
}

func (e *Engine) publishStockChanges(prev, next cart.Cart) {
	for _, l := range next.Lines {
		if !l.StockKnown {
			continue
		}
		old, ok := prev.Line(l.RecordID)
		if ok && old.StockKnown && old.StockAtFetch == l.StockAtFetch && prev.Synced {
			continue
		}
		e.publishStock(catalog.StockEvent{RecordID: l.RecordID, NewStock: l.StockAtFetch})
	}
}

func (e *Engine) publishStock(ev catalog.StockEvent) {
	if r, ok := e.catalog.(StockRecorder); ok {
		r.ApplyStock(ev)
	}
	if e.stock != nil {
		e.stock.Publish(ev)
	}
}

// applyEcho takes the authoritative stock from a mutation echo. With keepKnown a
// line that already carries stock from a later listing is left alone. The amount stays
// tentative because backends disagree on whether the echo carries the delta or the total.
func applyEcho(c cart.Cart, echo *shared.LineEcho, keepKnown bool) cart.Cart {
	if echo == nil || !echo.StockKnown {
		return c
	}
	line, ok := c.Line(echo.RecordID)
	if !ok || (keepKnown && line.StockKnown) {
		return c
	}
	line.StockAtFetch = echo.Stock
	line.StockKnown = true
	return c.WithLine(line)
}
