//go:build unit

package cartsync_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/cartsync"
	"storefront-core/internal/usecase/shared"
	"storefront-core/internal/usecase/stock"
	sharedmock "storefront-core/tests/mock/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const owner = "alice@example.com"

// liveCatalog records stock the engine applies, like the catalog cache does.
type liveCatalog struct {
	mu      sync.Mutex
	records map[int]catalog.Record
}

func (c *liveCatalog) Lookup(id int) (catalog.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.records[id]
	return r, ok
}

func (c *liveCatalog) ApplyStock(ev catalog.StockEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.records[ev.RecordID]; ok {
		r.Stock = ev.NewStock
		c.records[ev.RecordID] = r
	}
}

func (c *liveCatalog) stock(id int) int {
	r, _ := c.Lookup(id)
	return r.Stock
}

type EngineTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockCtrl *gomock.Controller
	backend  *sharedmock.MockCartBackend
	store    *cartstore.Store
	stockCh  *stock.Channel
	catalog  *liveCatalog
	engine   *cartsync.Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.backend = sharedmock.NewMockCartBackend(s.mockCtrl)
	s.store = cartstore.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	s.stockCh = stock.NewChannel()
	s.catalog = &liveCatalog{records: map[int]catalog.Record{
		1: {ID: 1, Title: "Blue Train", Price: decimal.NewFromInt(10), Stock: 5},
		2: {ID: 2, Title: "Kind of Blue", Price: decimal.NewFromInt(20), Stock: 0},
		3: {ID: 3, Title: "Giant Steps", Price: decimal.NewFromInt(15), Stock: 3},
	}}
	s.engine = cartsync.NewEngine(s.store, s.backend, s.stockCh, slog.New(slog.NewTextHandler(io.Discard, nil)), cartsync.Options{
		Timeout: time.Second,
		Catalog: s.catalog,
	})
}

func (s *EngineTestSuite) TearDownTest() {
	s.store.Close()
	s.stockCh.Close()
	s.mockCtrl.Finish()
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

// bareLine is a listing entry without stock, as the cart service returns it.
func bareLine(id, amount int, price int64) cart.LineItem {
	return cart.LineItem{RecordID: id, Amount: amount, UnitPrice: decimal.NewFromInt(price)}
}

func (s *EngineTestSuite) nextStockEvent(sub *stock.Subscription) (catalog.StockEvent, bool) {
	ctx, cancel := context.WithTimeout(s.ctx, time.Second)
	defer cancel()
	return sub.Next(ctx)
}

func line(id, amount int, price int64, stock int) cart.LineItem {
	return cart.LineItem{
		RecordID:     id,
		Amount:       amount,
		UnitPrice:    decimal.NewFromInt(price),
		StockAtFetch: stock,
		StockKnown:   true,
	}
}

// seed puts a synced cart into the store without touching the backend.
func (s *EngineTestSuite) seed(lines ...cart.LineItem) cart.Cart {
	return s.store.Replace(owner, cart.New(owner).WithLines(lines).WithSynced())
}

func (s *EngineTestSuite) TestFetch() {
	s.Run("success replaces the cached cart", func() {
		s.backend.EXPECT().ListLines(gomock.Any(), owner).
			Return([]cart.LineItem{line(1, 2, 10, 5), line(3, 1, 15, 3)}, nil)

		c, err := s.engine.Fetch(s.ctx, owner)

		s.Require().NoError(err)
		s.True(c.Synced)
		s.Equal(3, c.TotalItems())
		s.True(decimal.NewFromInt(35).Equal(c.TotalPrice()))
		s.Equal(c, s.store.Get(owner))
	})

	s.Run("failure leaves an empty synced cart", func() {
		s.seed(line(1, 2, 10, 5))
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return(nil, errs.New("connection refused"))

		c, err := s.engine.Fetch(s.ctx, owner)

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrFetchFailed))
		s.Empty(c.Lines)
		s.True(c.Synced)
		s.Equal(0, c.TotalItems())
	})
}

func (s *EngineTestSuite) TestAdd() {
	s.Run("success reconciles with the backend listing", func() {
		s.seed(line(1, 1, 10, 4))
		s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).Return(&shared.LineEcho{RecordID: 1, Amount: 2, Stock: 3, StockKnown: true}, nil)
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{line(1, 2, 10, 3)}, nil)

		c, err := s.engine.Add(s.ctx, owner, 1)

		s.Require().NoError(err)
		s.Equal(2, c.TotalItems())
		s.True(decimal.NewFromInt(20).Equal(c.TotalPrice()))
		l, ok := c.Line(1)
		s.Require().True(ok)
		s.Equal(3, l.StockAtFetch)
	})

	s.Run("rejection restores the exact previous cart", func() {
		before := s.seed(line(1, 1, 10, 4), line(3, 2, 15, 1))
		s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).Return(nil, errs.New("500 internal error"))

		c, err := s.engine.Add(s.ctx, owner, 1)

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrMutationRejected))
		s.Equal(before.Lines, c.Lines)
		s.Equal(before.TotalItems(), c.TotalItems())
		s.True(before.TotalPrice().Equal(c.TotalPrice()))
		s.Equal(c, s.store.Get(owner))
	})

	s.Run("exhausted stock is refused without a remote call", func() {
		before := s.seed(line(9, 1, 10, 0))

		c, err := s.engine.Add(s.ctx, owner, 9)

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrStockExhausted))
		s.Equal(before, c)
	})

	s.Run("live catalog stock overrides the stock a line was fetched with", func() {
		before := s.seed(line(2, 1, 20, 3))

		c, err := s.engine.Add(s.ctx, owner, 2)

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrStockExhausted))
		s.Equal(before, c)
	})

	s.Run("new line takes stock from the catalog", func() {
		s.seed()

		_, err := s.engine.Add(s.ctx, owner, 2)

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrStockExhausted))
	})

	s.Run("disabled cart is refused", func() {
		s.store.Replace(owner, cart.New(owner).WithLines([]cart.LineItem{line(1, 1, 10, 4)}).WithEnabled(false).WithSynced())

		_, err := s.engine.Add(s.ctx, owner, 1)

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrCartDisabled))
	})

	s.Run("reconcile failure keeps the optimistic state with echoed stock", func() {
		s.seed(line(1, 1, 10, 4))
		s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).Return(&shared.LineEcho{RecordID: 1, Stock: 2, StockKnown: true}, nil)
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return(nil, errs.New("timeout"))

		c, err := s.engine.Add(s.ctx, owner, 1)

		s.Require().NoError(err)
		l, ok := c.Line(1)
		s.Require().True(ok)
		s.Equal(2, l.Amount)
		s.Equal(2, l.StockAtFetch)
		s.True(c.Synced)
	})
}

func (s *EngineTestSuite) TestRemove() {
	s.Run("decrements and reconciles", func() {
		s.seed(line(1, 3, 10, 2))
		s.backend.EXPECT().RemoveLine(gomock.Any(), owner, 1, 1).Return(nil, nil)
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{line(1, 2, 10, 3)}, nil)

		c, err := s.engine.Remove(s.ctx, owner, 1, 1)

		s.Require().NoError(err)
		s.Equal(2, c.TotalItems())
	})

	s.Run("count above the amount only sends what is in the cart", func() {
		s.seed(line(1, 2, 10, 4))
		s.backend.EXPECT().RemoveLine(gomock.Any(), owner, 1, 2).Return(nil, nil)
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return(nil, nil)

		c, err := s.engine.Remove(s.ctx, owner, 1, 5)

		s.Require().NoError(err)
		s.Equal(0, c.TotalItems())
	})

	s.Run("line with zero amount is refused", func() {
		s.seed(line(1, 0, 10, 2))

		_, err := s.engine.Remove(s.ctx, owner, 1, 1)

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrLineEmpty))
	})

	s.Run("missing line is refused", func() {
		s.seed()

		_, err := s.engine.Remove(s.ctx, owner, 9, 1)

		s.True(errs.Is(err, errs.ErrLineEmpty))
	})

	s.Run("rejection restores the previous amount", func() {
		s.seed(line(1, 3, 10, 2))
		s.backend.EXPECT().RemoveLine(gomock.Any(), owner, 1, 2).Return(nil, errs.New("conflict"))

		c, err := s.engine.Remove(s.ctx, owner, 1, 2)

		s.True(errs.Is(err, errs.ErrMutationRejected))
		l, _ := c.Line(1)
		s.Equal(3, l.Amount)
		s.Equal(2, l.StockAtFetch)
	})
}

func (s *EngineTestSuite) TestOptimisticStateIsVisibleDuringCall() {
	s.seed(line(1, 1, 10, 5))
	sub := s.store.Subscribe(owner)
	defer sub.Close()

	ctx, cancel := context.WithTimeout(s.ctx, time.Second)
	defer cancel()
	_, ok := sub.Next(ctx)
	s.Require().True(ok)

	s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).DoAndReturn(
		func(context.Context, string, int, int) (*shared.LineEcho, error) {
			l, _ := s.store.Get(owner).Line(1)
			s.Equal(2, l.Amount)
			s.Equal(4, l.StockAtFetch)
			return nil, errs.New("rejected")
		})

	_, err := s.engine.Add(s.ctx, owner, 1)
	s.Require().Error(err)

	l, _ := s.store.Get(owner).Line(1)
	s.Equal(1, l.Amount)
}

func (s *EngineTestSuite) TestConcurrentAddsAreBothApplied() {
	s.seed(line(1, 0, 10, 5))

	var mu sync.Mutex
	remote := 0
	s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).Times(2).DoAndReturn(
		func(context.Context, string, int, int) (*shared.LineEcho, error) {
			mu.Lock()
			defer mu.Unlock()
			remote++
			return nil, nil
		})
	s.backend.EXPECT().ListLines(gomock.Any(), owner).Times(2).DoAndReturn(
		func(context.Context, string) ([]cart.LineItem, error) {
			mu.Lock()
			defer mu.Unlock()
			return []cart.LineItem{line(1, remote, 10, 5-remote)}, nil
		})

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.engine.Add(s.ctx, owner, 1)
			s.NoError(err)
		}()
	}
	wg.Wait()

	l, ok := s.store.Get(owner).Line(1)
	s.Require().True(ok)
	s.Equal(2, l.Amount)
	s.Equal(3, l.StockAtFetch)
}

func (s *EngineTestSuite) TestOperationsForOneOwnerRunInSubmissionOrder() {
	s.seed(line(1, 0, 10, 5), line(3, 2, 15, 3))

	addStarted := make(chan struct{})
	releaseAdd := make(chan struct{})
	var order []string
	var mu sync.Mutex
	record := func(op string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, op)
	}

	gomock.InOrder(
		s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).DoAndReturn(
			func(context.Context, string, int, int) (*shared.LineEcho, error) {
				record("add")
				close(addStarted)
				<-releaseAdd
				return nil, nil
			}),
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{line(1, 1, 10, 4), line(3, 2, 15, 3)}, nil),
		s.backend.EXPECT().RemoveLine(gomock.Any(), owner, 3, 1).DoAndReturn(
			func(context.Context, string, int, int) (*shared.LineEcho, error) {
				record("remove")
				return nil, nil
			}),
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{line(1, 1, 10, 4), line(3, 1, 15, 4)}, nil),
	)

	done := make(chan struct{}, 2)
	go func() {
		_, _ = s.engine.Add(s.ctx, owner, 1)
		done <- struct{}{}
	}()
	<-addStarted
	go func() {
		_, _ = s.engine.Remove(s.ctx, owner, 3, 1)
		done <- struct{}{}
	}()

	// the remove is queued behind the add
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	s.Equal([]string{"add"}, order)
	mu.Unlock()

	close(releaseAdd)
	<-done
	<-done

	s.Equal([]string{"add", "remove"}, order)
	s.Equal(2, s.store.Get(owner).TotalItems())
}

func (s *EngineTestSuite) TestStockChangesArePublished() {
	s.seed(line(1, 1, 10, 4))
	sub := s.stockCh.Subscribe()
	defer sub.Close()

	s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).Return(nil, nil)
	s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{line(1, 2, 10, 3)}, nil)

	_, err := s.engine.Add(s.ctx, owner, 1)
	s.Require().NoError(err)

	ev, ok := s.nextStockEvent(sub)
	s.Require().True(ok)
	s.Equal(catalog.StockEvent{RecordID: 1, NewStock: 3}, ev)
	s.Equal(3, s.catalog.stock(1))
}

func (s *EngineTestSuite) TestStocklessListingTakesStockFromEcho() {
	s.Run("add publishes the echoed stock and the next add stays local", func() {
		s.seed(bareLine(3, 1, 15))
		sub := s.stockCh.Subscribe()
		defer sub.Close()

		s.backend.EXPECT().AddLine(gomock.Any(), owner, 3, 1).Return(&shared.LineEcho{RecordID: 3, Amount: 2, Stock: 0, StockKnown: true}, nil)
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{bareLine(3, 2, 15)}, nil)

		c, err := s.engine.Add(s.ctx, owner, 3)
		s.Require().NoError(err)

		l, ok := c.Line(3)
		s.Require().True(ok)
		s.Equal(2, l.Amount)
		s.True(l.StockKnown)
		s.Equal(0, l.StockAtFetch)

		ev, ok := s.nextStockEvent(sub)
		s.Require().True(ok)
		s.Equal(catalog.StockEvent{RecordID: 3, NewStock: 0}, ev)
		s.Equal(0, s.catalog.stock(3))

		// no AddLine expectation: a second remote call fails the test
		_, err = s.engine.Add(s.ctx, owner, 3)
		s.True(errs.Is(err, errs.ErrStockExhausted))
	})

	s.Run("remove publishes the echoed stock after the line leaves the cart", func() {
		s.catalog.ApplyStock(catalog.StockEvent{RecordID: 3, NewStock: 2})
		s.seed(bareLine(3, 1, 15))
		sub := s.stockCh.Subscribe()
		defer sub.Close()

		s.backend.EXPECT().RemoveLine(gomock.Any(), owner, 3, 1).Return(&shared.LineEcho{RecordID: 3, Stock: 3, StockKnown: true}, nil)
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return(nil, nil)

		c, err := s.engine.Remove(s.ctx, owner, 3, 1)
		s.Require().NoError(err)
		s.Empty(c.Lines)

		ev, ok := s.nextStockEvent(sub)
		s.Require().True(ok)
		s.Equal(catalog.StockEvent{RecordID: 3, NewStock: 3}, ev)
		s.Equal(3, s.catalog.stock(3))
	})

	s.Run("listing stock wins over the echo", func() {
		s.seed(bareLine(1, 1, 10))
		s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).Return(&shared.LineEcho{RecordID: 1, Stock: 4, StockKnown: true}, nil)
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{line(1, 2, 10, 2)}, nil)

		c, err := s.engine.Add(s.ctx, owner, 1)
		s.Require().NoError(err)

		l, _ := c.Line(1)
		s.Equal(2, l.StockAtFetch)
		s.Equal(2, s.catalog.stock(1))
	})
}

func (s *EngineTestSuite) TestSetEnabled() {
	s.Run("success keeps lines", func() {
		s.seed(line(1, 2, 10, 4))
		s.backend.EXPECT().SetEnabled(gomock.Any(), owner, false).Return(nil)

		c, err := s.engine.SetEnabled(s.ctx, owner, false)

		s.Require().NoError(err)
		s.False(c.Enabled)
		s.Len(c.Lines, 1)
		s.Equal(0, c.TotalItems())
	})

	s.Run("failure leaves the cart unchanged", func() {
		before := s.seed(line(1, 2, 10, 4))
		s.backend.EXPECT().SetEnabled(gomock.Any(), owner, false).Return(errs.New("forbidden"))

		c, err := s.engine.SetEnabled(s.ctx, owner, false)

		s.True(errs.Is(err, errs.ErrMutationRejected))
		s.Equal(before, c)
	})
}

func (s *EngineTestSuite) TestSyncStatus() {
	s.Run("disabled cart is stored without fetching lines", func() {
		s.backend.EXPECT().Status(gomock.Any(), owner).Return(false, nil)

		c, err := s.engine.SyncStatus(s.ctx, owner)

		s.Require().NoError(err)
		s.False(c.Enabled)
		s.True(c.Synced)
	})

	s.Run("status failure falls back to enabled and fetches", func() {
		s.backend.EXPECT().Status(gomock.Any(), owner).Return(false, errs.New("404"))
		s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{line(1, 1, 10, 4)}, nil)

		c, err := s.engine.SyncStatus(s.ctx, owner)

		s.Require().NoError(err)
		s.True(c.Enabled)
		s.Equal(1, c.TotalItems())
	})
}

func (s *EngineTestSuite) TestLogoutDropsCart() {
	s.seed(line(1, 2, 10, 4))

	s.Require().NoError(s.engine.Logout(s.ctx, owner))

	c := s.store.Get(owner)
	s.Empty(c.Lines)
	s.False(c.Synced)
}

func (s *EngineTestSuite) TestCallerCancellationDoesNotAbortRemoteCall() {
	s.seed(line(1, 1, 10, 4))
	ctx, cancel := context.WithCancel(s.ctx)

	s.backend.EXPECT().AddLine(gomock.Any(), owner, 1, 1).DoAndReturn(
		func(rctx context.Context, _ string, _ int, _ int) (*shared.LineEcho, error) {
			cancel()
			s.NoError(rctx.Err())
			return nil, nil
		})
	s.backend.EXPECT().ListLines(gomock.Any(), owner).Return([]cart.LineItem{line(1, 2, 10, 3)}, nil)

	c, err := s.engine.Add(ctx, owner, 1)

	s.Require().NoError(err)
	s.Equal(2, c.TotalItems())
}

func (s *EngineTestSuite) TestCartsFiltersByOwner() {
	s.backend.EXPECT().ListCarts(gomock.Any()).Return([]shared.CartSummary{
		{ID: 1, OwnerKey: "alice@example.com", Enabled: true},
		{ID: 2, OwnerKey: "bob@example.com", Enabled: false},
	}, nil)

	carts, err := s.engine.Carts(s.ctx, "BOB")

	s.Require().NoError(err)
	s.Require().Len(carts, 1)
	s.Equal(2, carts[0].ID)
}

func (s *EngineTestSuite) TestConcurrentAddsOfDifferentRecords() {
	s.seed()

	var mu sync.Mutex
	remote := map[int]int{}
	s.backend.EXPECT().AddLine(gomock.Any(), owner, gomock.Any(), 1).Times(2).DoAndReturn(
		func(_ context.Context, _ string, recordID, _ int) (*shared.LineEcho, error) {
			mu.Lock()
			defer mu.Unlock()
			remote[recordID]++
			return nil, nil
		})
	s.backend.EXPECT().ListLines(gomock.Any(), owner).Times(2).DoAndReturn(
		func(context.Context, string) ([]cart.LineItem, error) {
			mu.Lock()
			defer mu.Unlock()
			var out []cart.LineItem
			for _, id := range []int{1, 3} {
				if n := remote[id]; n > 0 {
					out = append(out, line(id, n, 10, 2))
				}
			}
			return out, nil
		})

	var wg sync.WaitGroup
	for _, id := range []int{3, 1} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.engine.Add(s.ctx, owner, id)
			s.NoError(err)
		}()
	}
	wg.Wait()

	c := s.store.Get(owner)
	for _, id := range []int{1, 3} {
		l, ok := c.Line(id)
		s.Require().True(ok)
		s.Equal(1, l.Amount)
	}
}

func (s *EngineTestSuite) TestDisableThenEnableRestoresTotals() {
	s.seed(line(1, 2, 10, 4), line(3, 1, 15, 2))
	s.backend.EXPECT().SetEnabled(gomock.Any(), owner, false).Return(nil)
	s.backend.EXPECT().SetEnabled(gomock.Any(), owner, true).Return(nil)

	disabled, err := s.engine.SetEnabled(s.ctx, owner, false)
	s.Require().NoError(err)
	s.Equal(0, disabled.TotalItems())
	s.True(disabled.TotalPrice().IsZero())

	enabled, err := s.engine.SetEnabled(s.ctx, owner, true)
	s.Require().NoError(err)
	s.Equal(3, enabled.TotalItems())
	s.True(decimal.NewFromInt(35).Equal(enabled.TotalPrice()))
}
