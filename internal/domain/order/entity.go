package order

import (
	"time"

	"storefront-core/internal/domain/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is immutable once built.
type Order struct {
	ID            string
	OwnerKey      string
	Lines         []cart.LineItem
	PaymentMethod string
	CreatedAt     time.Time
	TotalPrice    decimal.Decimal
}

// FromCart copies the active lines of the snapshot.
func FromCart(id string, snapshot cart.Cart, paymentMethod string, createdAt time.Time) Order {
	lines := snapshot.ActiveLines()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return Order{
		ID:            id,
		OwnerKey:      snapshot.OwnerKey,
		Lines:         lines,
		PaymentMethod: paymentMethod,
		CreatedAt:     createdAt,
		TotalPrice:    total,
	}
}

func (o Order) TotalItems() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Amount
	}
	return n
}

// Attempt tracks one checkout state machine. A retry is a new Attempt.
type Attempt struct {
	ID         uuid.UUID
	OwnerKey   string
	State      State
	Order      *Order
	Failure    string
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewAttempt starts in StateReady; the caller moves it to StatePending once it owns the checkout.
func NewAttempt(ownerKey string, startedAt time.Time) *Attempt {
	return &Attempt{
		ID:        uuid.New(),
		OwnerKey:  ownerKey,
		State:     StateReady,
		StartedAt: startedAt,
	}
}

// Transition returns false and leaves the attempt untouched when the move is not allowed.
func (a *Attempt) Transition(next State, at time.Time) bool {
	if !a.State.CanTransitionTo(next) {
		return false
	}
	a.State = next
	if next.IsTerminal() {
		a.FinishedAt = at
	}
	return true
}

// History is a past order as listed by the backend.
type History struct {
	ID            string
	OwnerKey      string
	OrderDate     time.Time
	PaymentMethod string
	Total         decimal.Decimal
	Lines         []HistoryLine
}

type HistoryLine struct {
	RecordID  int
	Title     string
	Amount    int
	UnitPrice decimal.Decimal
}
