//go:build unit

package checkout_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/order"
	"storefront-core/internal/pkg/clock"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/cartsync"
	"storefront-core/internal/usecase/checkout"
	"storefront-core/internal/usecase/shared"
	sharedmock "storefront-core/tests/mock/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const owner = "alice@example.com"

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type ManagerTestSuite struct {
	suite.Suite
	ctx       context.Context
	mockCtrl  *gomock.Controller
	carts     *sharedmock.MockCartBackend
	orders    *sharedmock.MockOrderBackend
	publisher *sharedmock.MockOrderEventPublisher
	store     *cartstore.Store
	clock     *clock.MockClock
	manager   *checkout.Manager
}

func (s *ManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.carts = sharedmock.NewMockCartBackend(s.mockCtrl)
	s.orders = sharedmock.NewMockOrderBackend(s.mockCtrl)
	s.publisher = sharedmock.NewMockOrderEventPublisher(s.mockCtrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = cartstore.NewStore(logger, nil)
	s.clock = clock.NewMockClock(now)

	engine := cartsync.NewEngine(s.store, s.carts, nil, logger, cartsync.Options{Timeout: time.Second})
	s.manager = checkout.NewManager(engine, s.store, s.orders, s.clock, logger, checkout.Options{
		Timeout:              time.Second,
		DefaultPaymentMethod: "credit-card",
		Publisher:            s.publisher,
	})
}

func (s *ManagerTestSuite) TearDownTest() {
	s.store.Close()
	s.mockCtrl.Finish()
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) seedThreeLinesFiveUnits() cart.Cart {
	return s.store.Replace(owner, cart.New(owner).WithLines([]cart.LineItem{
		{RecordID: 1, Amount: 2, UnitPrice: decimal.NewFromInt(10)},
		{RecordID: 2, Amount: 1, UnitPrice: decimal.NewFromInt(20)},
		{RecordID: 3, Amount: 2, UnitPrice: decimal.NewFromInt(5)},
		{RecordID: 4, Amount: 0, UnitPrice: decimal.NewFromInt(99)},
	}).WithSynced())
}

func (s *ManagerTestSuite) TestCheckoutCommitsAndDrainsCart() {
	s.seedThreeLinesFiveUnits()

	var idempotencyKey string
	s.orders.EXPECT().CommitFromCart(gomock.Any(), owner, "paypal", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _, key string) (*shared.CommitReceipt, error) {
			idempotencyKey = key
			return &shared.CommitReceipt{OrderID: "42", CreatedAt: now.Add(time.Minute)}, nil
		})
	s.publisher.EXPECT().PublishOrderCommitted(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o order.Order) error {
			s.Equal("42", o.ID)
			return nil
		}).Times(1)

	attempt, err := s.manager.Checkout(s.ctx, owner, "paypal")

	s.Require().NoError(err)
	s.Equal(order.StateCommitted, attempt.State)
	s.Equal(attempt.ID.String(), idempotencyKey)
	s.Require().NotNil(attempt.Order)
	s.Equal("42", attempt.Order.ID)
	s.Len(attempt.Order.Lines, 3)
	s.Equal(5, attempt.Order.TotalItems())
	s.True(decimal.NewFromInt(50).Equal(attempt.Order.TotalPrice))
	s.Equal(now.Add(time.Minute), attempt.Order.CreatedAt)

	c := s.store.Get(owner)
	s.Empty(c.Lines)
	s.Equal(0, c.TotalItems())
	s.True(c.TotalPrice().IsZero())
	s.True(c.Enabled)

	last, ok := s.manager.LastAttempt(owner)
	s.Require().True(ok)
	s.Equal(attempt.ID, last.ID)
}

func (s *ManagerTestSuite) TestCheckoutFailureLeavesCartUntouched() {
	before := s.seedThreeLinesFiveUnits()
	s.orders.EXPECT().CommitFromCart(gomock.Any(), owner, "credit-card", gomock.Any()).
		Return(nil, &shared.RemoteError{Op: "commit order", Status: 400, Message: "Insufficient stock"})

	attempt, err := s.manager.Checkout(s.ctx, owner, "")

	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrOrderCommitFailed))
	s.Equal(order.StateFailed, attempt.State)
	s.Equal("Insufficient stock", attempt.Failure)
	s.Nil(attempt.Order)
	s.Equal(before, s.store.Get(owner))
}

func (s *ManagerTestSuite) TestRetryAfterFailureIsANewAttempt() {
	s.seedThreeLinesFiveUnits()
	gomock.InOrder(
		s.orders.EXPECT().CommitFromCart(gomock.Any(), owner, "credit-card", gomock.Any()).Return(nil, errs.New("timeout")),
		s.orders.EXPECT().CommitFromCart(gomock.Any(), owner, "credit-card", gomock.Any()).Return(&shared.CommitReceipt{}, nil),
	)
	s.publisher.EXPECT().PublishOrderCommitted(gomock.Any(), gomock.Any()).Return(errs.New("broker down"))

	failed, err := s.manager.Checkout(s.ctx, owner, "")
	s.Require().Error(err)
	s.Equal(errs.ErrOrderCommitFailed.Error(), failed.Failure)

	committed, err := s.manager.Checkout(s.ctx, owner, "")
	s.Require().NoError(err)
	s.NotEqual(failed.ID, committed.ID)
	s.Equal(order.StateFailed, failed.State)
	// receipt without id or date falls back to the attempt
	s.Equal(committed.ID.String(), committed.Order.ID)
	s.Equal(now, committed.Order.CreatedAt)
}

func (s *ManagerTestSuite) TestRefusals() {
	s.Run("disabled cart", func() {
		s.store.Replace(owner, cart.New(owner).WithLines([]cart.LineItem{{RecordID: 1, Amount: 1}}).WithEnabled(false).WithSynced())

		_, err := s.manager.Checkout(s.ctx, owner, "")

		s.True(errs.Is(err, errs.ErrCartDisabled))
		_, ok := s.manager.LastAttempt(owner)
		s.False(ok)
	})

	s.Run("empty cart", func() {
		s.store.Replace(owner, cart.New(owner).WithSynced())

		_, err := s.manager.Checkout(s.ctx, owner, "")

		s.True(errs.Is(err, errs.ErrCartEmpty))
		_, ok := s.manager.LastAttempt(owner)
		s.False(ok)
	})
}

func (s *ManagerTestSuite) TestConcurrentCheckoutIsRefused() {
	s.seedThreeLinesFiveUnits()

	started := make(chan struct{})
	release := make(chan struct{})
	s.orders.EXPECT().CommitFromCart(gomock.Any(), owner, "credit-card", gomock.Any()).DoAndReturn(
		func(context.Context, string, string, string) (*shared.CommitReceipt, error) {
			close(started)
			<-release
			return &shared.CommitReceipt{OrderID: "7"}, nil
		}).Times(1)
	s.publisher.EXPECT().PublishOrderCommitted(gomock.Any(), gomock.Any()).Return(nil)

	done := make(chan order.Attempt)
	go func() {
		a, err := s.manager.Checkout(s.ctx, owner, "")
		s.NoError(err)
		done <- a
	}()
	<-started

	pending, err := s.manager.Checkout(s.ctx, owner, "")
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrOrderConflict))
	s.Equal(order.StatePending, pending.State)

	close(release)
	first := <-done
	s.Equal(order.StateCommitted, first.State)
	s.Equal(pending.ID, first.ID)
}

func (s *ManagerTestSuite) TestOrdersFilterByDate() {
	s.orders.EXPECT().ListOrders(gomock.Any(), owner).Return([]order.History{
		{ID: "1", OrderDate: time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC)},
		{ID: "2", OrderDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}, nil)

	got, err := s.manager.Orders(s.ctx, "Alice@Example.com", "2024-05")

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("2", got[0].ID)
}

func (s *ManagerTestSuite) TestAllOrdersFailure() {
	s.orders.EXPECT().ListAllOrders(gomock.Any()).Return(nil, errs.New("503"))

	_, err := s.manager.AllOrders(s.ctx, "")

	s.True(errs.Is(err, errs.ErrFetchFailed))
}

func (s *ManagerTestSuite) TestAllOrdersSearch() {
	s.orders.EXPECT().ListAllOrders(gomock.Any()).Return([]order.History{
		{ID: "15", OwnerKey: "bob@example.com", OrderDate: now},
		{ID: "16", OwnerKey: "carol@example.com", OrderDate: now},
	}, nil).Times(2)

	byOwner, err := s.manager.AllOrders(s.ctx, "BOB")
	s.Require().NoError(err)
	s.Require().Len(byOwner, 1)
	s.Equal("15", byOwner[0].ID)

	byID, err := s.manager.AllOrders(s.ctx, "16")
	s.Require().NoError(err)
	s.Require().Len(byID, 1)
	s.Equal("carol@example.com", byID[0].OwnerKey)
}
