package shared

import (
	"context"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/domain/order"
)

type CartBackend interface {
	ListLines(ctx context.Context, ownerKey string) ([]cart.LineItem, error)
	AddLine(ctx context.Context, ownerKey string, recordID, amount int) (*LineEcho, error)
	RemoveLine(ctx context.Context, ownerKey string, recordID, amount int) (*LineEcho, error)
	SetEnabled(ctx context.Context, ownerKey string, enabled bool) error
	Status(ctx context.Context, ownerKey string) (bool, error)
	ListCarts(ctx context.Context) ([]CartSummary, error)
}

type CatalogBackend interface {
	ListRecords(ctx context.Context) ([]catalog.Record, error)
	ListGroups(ctx context.Context) ([]catalog.Group, error)
}

type OrderBackend interface {
	CommitFromCart(ctx context.Context, ownerKey, paymentMethod, idempotencyKey string) (*CommitReceipt, error)
	ListOrders(ctx context.Context, ownerKey string) ([]order.History, error)
	ListAllOrders(ctx context.Context) ([]order.History, error)
}

type OrderEventPublisher interface {
	PublishOrderCommitted(ctx context.Context, o order.Order) error
}

// SnapshotMirror receives every replaced cart snapshot. Failures never affect the store.
type SnapshotMirror interface {
	Save(ctx context.Context, c cart.Cart) error
	Delete(ctx context.Context, ownerKey string) error
}
