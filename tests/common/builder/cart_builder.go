//go:build unit || e2e

package builder

import (
	"storefront-core/internal/domain/cart"
	reqdto "storefront-core/internal/handler/dto/request"

	"github.com/shopspring/decimal"
)

type CartBuilder struct {
	OwnerKey string
	Lines    []cart.LineItem
	Enabled  bool
	Synced   bool
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{
		OwnerKey: "alice@example.com",
		Enabled:  true,
		Synced:   true,
	}
}

func (b *CartBuilder) Build() cart.Cart {
	c := cart.New(b.OwnerKey).WithLines(b.Lines).WithEnabled(b.Enabled)
	if b.Synced {
		c = c.WithSynced()
	}
	return c
}

// Fluent builder methods
func (b *CartBuilder) WithOwner(ownerKey string) *CartBuilder {
	b.OwnerKey = ownerKey
	return b
}

func (b *CartBuilder) WithLine(recordID, amount int, price string) *CartBuilder {
	b.Lines = append(b.Lines, NewLineBuilder(recordID).WithAmount(amount).WithPrice(price).Build())
	return b
}

func (b *CartBuilder) WithLineItem(line cart.LineItem) *CartBuilder {
	b.Lines = append(b.Lines, line)
	return b
}

func (b *CartBuilder) Disabled() *CartBuilder {
	b.Enabled = false
	return b
}

func (b *CartBuilder) Unsynced() *CartBuilder {
	b.Synced = false
	return b
}

type LineBuilder struct {
	line cart.LineItem
}

func NewLineBuilder(recordID int) *LineBuilder {
	return &LineBuilder{line: cart.LineItem{
		RecordID:  recordID,
		Amount:    1,
		UnitPrice: decimal.NewFromInt(10),
	}}
}

func (b *LineBuilder) Build() cart.LineItem {
	return b.line
}

func (b *LineBuilder) WithAmount(amount int) *LineBuilder {
	b.line.Amount = amount
	return b
}

func (b *LineBuilder) WithPrice(price string) *LineBuilder {
	b.line.UnitPrice = decimal.RequireFromString(price)
	return b
}

func (b *LineBuilder) WithStock(stock int) *LineBuilder {
	b.line.StockAtFetch = stock
	b.line.StockKnown = true
	return b
}

func (b *LineBuilder) WithTitle(title string) *LineBuilder {
	b.line.Title = title
	return b
}

// With applies arbitrary field changes not covered by the fluent methods.
func (b *LineBuilder) With(mutate func(*cart.LineItem)) *LineBuilder {
	mutate(&b.line)
	return b
}

type CheckoutBuilder struct {
	PaymentMethod string
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{PaymentMethod: "card"}
}

func (b *CheckoutBuilder) WithPaymentMethod(method string) *CheckoutBuilder {
	b.PaymentMethod = method
	return b
}

func (b *CheckoutBuilder) BuildDTO() reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{PaymentMethod: b.PaymentMethod}
}
