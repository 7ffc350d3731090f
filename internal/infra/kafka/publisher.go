package kafka

import (
	"context"
	"time"

	"storefront-core/internal/domain/order"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

const EventOrderCommitted = "order.committed"

type OrderCommittedEvent struct {
	Type          string          `json:"type"`
	OrderID       string          `json:"orderId"`
	OwnerKey      string          `json:"ownerKey"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
	TotalItems    int             `json:"totalItems"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Lines         []EventLine     `json:"lines"`
}

type EventLine struct {
	RecordID  int             `json:"recordId"`
	Amount    int             `json:"amount"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func NewOrderCommittedEvent(o order.Order) OrderCommittedEvent {
	ev := OrderCommittedEvent{
		Type:          EventOrderCommitted,
		OrderID:       o.ID,
		OwnerKey:      o.OwnerKey,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt.UTC(),
		TotalItems:    o.TotalItems(),
		TotalPrice:    o.TotalPrice,
		Lines:         make([]EventLine, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		ev.Lines = append(ev.Lines, EventLine{RecordID: l.RecordID, Amount: l.Amount, UnitPrice: l.UnitPrice})
	}
	return ev
}

// OrderPublisher writes order events keyed by owner, so one owner's events stay in one partition.
// Without brokers it accepts and drops every event.
type OrderPublisher struct {
	writer messageWriter
}

func NewOrderPublisher(client *Client, topic string) *OrderPublisher {
	if !client.Enabled() {
		return &OrderPublisher{}
	}
	return &OrderPublisher{writer: client.NewWriter(topic)}
}

var _ shared.OrderEventPublisher = (*OrderPublisher)(nil)

func (p *OrderPublisher) Enabled() bool {
	return p.writer != nil
}

func (p *OrderPublisher) PublishOrderCommitted(ctx context.Context, o order.Order) error {
	if p.writer == nil {
		return nil
	}
	if err := publishJSON(ctx, p.writer, o.OwnerKey, NewOrderCommittedEvent(o)); err != nil {
		return errs.Wrapf(err, "publish %s for order %s", EventOrderCommitted, o.ID)
	}
	return nil
}

func (p *OrderPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
