package checkout

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/order"
	"storefront-core/internal/pkg/clock"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/pkg/metrics"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/shared"
)

// OwnerLane runs fn with a synced cart snapshot while no other mutation of the owner's cart runs.
type OwnerLane interface {
	WithOwner(ctx context.Context, ownerKey string, fn func(ctx context.Context, current cart.Cart) error) error
}

type Options struct {
	Timeout              time.Duration
	DefaultPaymentMethod string
	Publisher            shared.OrderEventPublisher
	Metrics              *metrics.Metrics
}

// Manager turns a ready cart into an order. At most one attempt per owner is pending.
type Manager struct {
	lane      OwnerLane
	store     *cartstore.Store
	backend   shared.OrderBackend
	publisher shared.OrderEventPublisher
	clock     clock.Clock
	timeout   time.Duration
	defaultPM string
	metrics   *metrics.Metrics
	logger    *slog.Logger

	mu       sync.Mutex
	attempts map[string]*order.Attempt
}

func NewManager(lane OwnerLane, store *cartstore.Store, backend shared.OrderBackend, clk clock.Clock, logger *slog.Logger, opts Options) *Manager {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	pm := opts.DefaultPaymentMethod
	if pm == "" {
		pm = "credit-card"
	}
	return &Manager{
		lane:      lane,
		store:     store,
		backend:   backend,
		publisher: opts.Publisher,
		clock:     clk,
		timeout:   timeout,
		defaultPM: pm,
		metrics:   opts.Metrics,
		logger:    logger,
		attempts:  make(map[string]*order.Attempt),
	}
}

// Checkout commits the owner's cart as an order. Refusals (disabled or empty
// cart, attempt already pending) leave no attempt behind. A failed commit leaves
// the cart untouched and records a failed attempt.
func (m *Manager) Checkout(ctx context.Context, ownerKey, paymentMethod string) (order.Attempt, error) {
	key := cartstore.NormalizeKey(ownerKey)
	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = m.defaultPM
	}

	attempt, prev, err := m.begin(key)
	if err != nil {
		m.metrics.ObserveCheckout("conflict")
		return prev, err
	}

	var (
		refused   error
		committed *order.Order
		failure   error
	)
	laneErr := m.lane.WithOwner(ctx, key, func(ctx context.Context, current cart.Cart) error {
		switch {
		case !current.Enabled:
			refused = errs.Mark(errs.New("checkout of a disabled cart"), errs.ErrCartDisabled)
			return nil
		case current.TotalItems() == 0:
			refused = errs.Mark(errs.New("checkout of an empty cart"), errs.ErrCartEmpty)
			return nil
		}

		o, err := m.commit(ctx, attempt, current, paymentMethod)
		if err != nil {
			failure = err
			return nil
		}
		m.store.Replace(key, current.Drained())
		committed = &o
		return nil
	})
	if laneErr != nil && refused == nil {
		refused = laneErr
	}

	if refused != nil {
		m.abandon(attempt, prev)
		m.metrics.ObserveCheckout("refused")
		return order.Attempt{}, refused
	}

	final := m.finish(attempt, committed, failure)
	if failure != nil {
		m.logger.Warn("order commit failed",
			slog.String("owner", key),
			slog.String("attempt_id", attempt.ID.String()),
			slog.String("error", failure.Error()))
		m.metrics.ObserveCheckout(string(order.StateFailed))
		return final, failure
	}

	m.metrics.ObserveCheckout(string(order.StateCommitted))
	m.logger.Info("order committed",
		slog.String("owner", key),
		slog.String("attempt_id", attempt.ID.String()),
		slog.String("order_id", committed.ID))
	m.publish(ctx, *committed)
	return final, nil
}

func (m *Manager) begin(key string) (*order.Attempt, order.Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if last, ok := m.attempts[key]; ok && last.State == order.StatePending {
		return nil, *last, errs.Mark(errs.Newf("checkout for %s already pending", key), errs.ErrOrderConflict)
	}

	var prev order.Attempt
	if last, ok := m.attempts[key]; ok {
		prev = *last
	}
	now := m.clock.Now()
	attempt := order.NewAttempt(key, now)
	attempt.Transition(order.StatePending, now)
	m.attempts[key] = attempt
	return attempt, prev, nil
}

func (m *Manager) abandon(attempt *order.Attempt, prev order.Attempt) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attempts[attempt.OwnerKey] != attempt {
		return
	}
	if prev.OwnerKey == "" {
		delete(m.attempts, attempt.OwnerKey)
		return
	}
	restored := prev
	m.attempts[attempt.OwnerKey] = &restored
}

func (m *Manager) finish(attempt *order.Attempt, committed *order.Order, failure error) order.Attempt {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if failure != nil {
		attempt.Failure = failureMessage(failure)
		attempt.Transition(order.StateFailed, now)
	} else {
		attempt.Order = committed
		attempt.Transition(order.StateCommitted, now)
	}
	return *attempt
}

func (m *Manager) commit(ctx context.Context, attempt *order.Attempt, current cart.Cart, paymentMethod string) (order.Order, error) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	receipt, err := m.backend.CommitFromCart(rctx, attempt.OwnerKey, paymentMethod, attempt.ID.String())
	if err != nil {
		return order.Order{}, errs.Mark(errs.Wrap(err, "commit order"), errs.ErrOrderCommitFailed)
	}

	id := attempt.ID.String()
	createdAt := m.clock.Now()
	if receipt != nil {
		if receipt.OrderID != "" {
			id = receipt.OrderID
		}
		if !receipt.CreatedAt.IsZero() {
			createdAt = receipt.CreatedAt
		}
	}
	return order.FromCart(id, current, paymentMethod, createdAt), nil
}

func (m *Manager) publish(ctx context.Context, o order.Order) {
	if m.publisher == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()
	if err := m.publisher.PublishOrderCommitted(pctx, o); err != nil {
		m.logger.Warn("order event publish failed",
			slog.String("order_id", o.ID),
			slog.String("error", err.Error()))
	}
}

func failureMessage(err error) string {
	if msg := shared.RemoteMessage(err); msg != "" {
		return msg
	}
	if errs.Is(err, errs.ErrBackendUnavailable) {
		return errs.ErrBackendUnavailable.Error()
	}
	return errs.ErrOrderCommitFailed.Error()
}

// LastAttempt returns the owner's most recent checkout attempt.
func (m *Manager) LastAttempt(ownerKey string) (order.Attempt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.attempts[cartstore.NormalizeKey(ownerKey)]
	if !ok {
		return order.Attempt{}, false
	}
	return *a, true
}

// Orders lists the owner's past orders, filtered by a substring of the order
// date (YYYY-MM-DD) when search is non-empty.
func (m *Manager) Orders(ctx context.Context, ownerKey, search string) ([]order.History, error) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	all, err := m.backend.ListOrders(rctx, cartstore.NormalizeKey(ownerKey))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list orders"), errs.ErrFetchFailed)
	}
	return filterByDate(all, search), nil
}

// AllOrders lists every order (admin view). search matches the owner, the order id or the order date.
func (m *Manager) AllOrders(ctx context.Context, search string) ([]order.History, error) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	all, err := m.backend.ListAllOrders(rctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list all orders"), errs.ErrFetchFailed)
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return all, nil
	}
	out := make([]order.History, 0, len(all))
	for _, o := range all {
		if strings.Contains(strings.ToLower(o.OwnerKey), needle) ||
			strings.Contains(o.ID, needle) ||
			strings.Contains(o.OrderDate.Format(time.DateOnly), needle) {
			out = append(out, o)
		}
	}
	return out, nil
}

func filterByDate(orders []order.History, search string) []order.History {
	needle := strings.TrimSpace(search)
	if needle == "" {
		return orders
	}
	out := make([]order.History, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(o.OrderDate.Format(time.DateOnly), needle) {
			out = append(out, o)
		}
	}
	return out
}
