package response

import (
	"time"

	"storefront-core/internal/domain/order"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID            string          `json:"id"`
	OwnerKey      string          `json:"ownerKey"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     int64           `json:"createdAt"`
	TotalItems    int             `json:"totalItems"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Lines         []LineResponse  `json:"lines"`
}

func FromOrder(o *order.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:            o.ID,
		OwnerKey:      o.OwnerKey,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt.Unix(),
		TotalItems:    o.TotalItems(),
		TotalPrice:    o.TotalPrice,
		Lines:         FromLines(o.Lines),
	}
}

type AttemptResponse struct {
	ID         string         `json:"id"`
	OwnerKey   string         `json:"ownerKey"`
	State      string         `json:"state"`
	Failure    string         `json:"failure,omitempty"`
	StartedAt  int64          `json:"startedAt"`
	FinishedAt int64          `json:"finishedAt,omitempty"`
	Order      *OrderResponse `json:"order,omitempty"`
}

func FromAttempt(a order.Attempt) AttemptResponse {
	res := AttemptResponse{
		ID:        a.ID.String(),
		OwnerKey:  a.OwnerKey,
		State:     a.State.String(),
		Failure:   a.Failure,
		StartedAt: a.StartedAt.Unix(),
		Order:     FromOrder(a.Order),
	}
	if !a.FinishedAt.IsZero() {
		res.FinishedAt = a.FinishedAt.Unix()
	}
	return res
}

type AttemptFailureDetail struct {
	Reason  string          `json:"reason,omitempty"`
	Attempt AttemptResponse `json:"attempt"`
}

type HistoryLineResponse struct {
	RecordID  int             `json:"recordId"`
	Title     string          `json:"title,omitempty"`
	Amount    int             `json:"amount"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type HistoryResponse struct {
	ID            string                `json:"id"`
	OwnerKey      string                `json:"ownerKey"`
	OrderDate     int64                 `json:"orderDate"`
	OrderDay      string                `json:"orderDay"`
	PaymentMethod string                `json:"paymentMethod"`
	Total         decimal.Decimal       `json:"total"`
	Lines         []HistoryLineResponse `json:"lines"`
}

func FromHistory(items []order.History) []HistoryResponse {
	res := make([]HistoryResponse, 0, len(items))
	for _, h := range items {
		item := HistoryResponse{
			ID:            h.ID,
			OwnerKey:      h.OwnerKey,
			OrderDate:     h.OrderDate.Unix(),
			OrderDay:      h.OrderDate.Format(time.DateOnly),
			PaymentMethod: h.PaymentMethod,
			Total:         h.Total,
			Lines:         make([]HistoryLineResponse, 0, len(h.Lines)),
		}
		_ = copier.Copy(&item.Lines, &h.Lines)
		res = append(res, item)
	}
	return res
}
