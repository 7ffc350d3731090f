package response

import (
	"storefront-core/internal/domain/cart"
	"storefront-core/internal/usecase/shared"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type LineResponse struct {
	RecordID  int             `json:"recordId"`
	Title     string          `json:"title,omitempty"`
	Image     string          `json:"image,omitempty"`
	GroupName string          `json:"groupName,omitempty"`
	Amount    int             `json:"amount"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	// nil when the backend never reported stock for the line
	Stock *int `json:"stock"`
}

type CartResponse struct {
	OwnerKey   string          `json:"ownerKey"`
	Enabled    bool            `json:"enabled"`
	Synced     bool            `json:"synced"`
	Version    uint64          `json:"version"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Lines      []LineResponse  `json:"lines"`
}

func FromLine(l cart.LineItem) LineResponse {
	var res LineResponse
	_ = copier.Copy(&res, &l)
	res.LineTotal = l.LineTotal()
	res.Stock = nil
	if l.StockKnown {
		stock := l.StockAtFetch
		res.Stock = &stock
	}
	return res
}

func FromLines(lines []cart.LineItem) []LineResponse {
	res := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		res = append(res, FromLine(l))
	}
	return res
}

// FromCart lists the lines with a positive amount. Totals are zero for a disabled cart.
func FromCart(c cart.Cart) CartResponse {
	return CartResponse{
		OwnerKey:   c.OwnerKey,
		Enabled:    c.Enabled,
		Synced:     c.Synced,
		Version:    c.Version,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Lines:      FromLines(c.ActiveLines()),
	}
}

// CartFailureDetail carries the cart as it stands after a rollback.
type CartFailureDetail struct {
	Reason string       `json:"reason,omitempty"`
	Cart   CartResponse `json:"cart"`
}

type BadgeResponse struct {
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Enabled    bool            `json:"enabled"`
}

func FromSummary(s cart.Summary) BadgeResponse {
	var res BadgeResponse
	_ = copier.Copy(&res, &s)
	return res
}

type CartSummaryResponse struct {
	ID         int             `json:"id"`
	OwnerKey   string          `json:"ownerKey"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Enabled    bool            `json:"enabled"`
}

func FromCartSummaries(items []shared.CartSummary) []CartSummaryResponse {
	res := make([]CartSummaryResponse, 0, len(items))
	if err := copier.Copy(&res, &items); err != nil {
		return []CartSummaryResponse{}
	}
	return res
}
