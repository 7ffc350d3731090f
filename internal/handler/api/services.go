package api

import (
	"context"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/order"
	"storefront-core/internal/usecase/cartdetail"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/shared"
	"storefront-core/internal/usecase/stock"
)

// CartService is the part of the sync engine the HTTP layer drives.
type CartService interface {
	Snapshot(ctx context.Context, ownerKey string) (cart.Cart, error)
	Add(ctx context.Context, ownerKey string, recordID int) (cart.Cart, error)
	Remove(ctx context.Context, ownerKey string, recordID, count int) (cart.Cart, error)
	SetEnabled(ctx context.Context, ownerKey string, enabled bool) (cart.Cart, error)
	SyncStatus(ctx context.Context, ownerKey string) (cart.Cart, error)
	Logout(ctx context.Context, ownerKey string) error
	Carts(ctx context.Context, search string) ([]shared.CartSummary, error)
}

type CartFeed interface {
	Subscribe(ownerKey string) *cartstore.Subscription
}

type DetailService interface {
	Rows(ownerKey string) []cartdetail.Row
	Listing(ownerKey string, groupID int) []cartdetail.ListingRow
	Badge(ownerKey string) cart.Summary
	Subscribe(ownerKey string) *cartdetail.RowStream
}

type StockFeed interface {
	Subscribe() *stock.Subscription
}

type CheckoutService interface {
	Checkout(ctx context.Context, ownerKey, paymentMethod string) (order.Attempt, error)
	LastAttempt(ownerKey string) (order.Attempt, bool)
	Orders(ctx context.Context, ownerKey, search string) ([]order.History, error)
	AllOrders(ctx context.Context, search string) ([]order.History, error)
}
