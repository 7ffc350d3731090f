package backend

import (
	"context"
	"log/slog"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/usecase/shared"

	"github.com/go-resty/resty/v2"
)

const (
	pathCartLines  = "/api/CartDetails/GetCartDetailsByEmail/{email}"
	pathAddLine    = "/api/CartDetails/addToCartDetailAndCart/{email}"
	pathRemoveLine = "/api/CartDetails/removeFromCartDetailAndCart/{email}"
	pathDisable    = "/api/Carts/Disable/{email}"
	pathEnable     = "/api/Carts/Enable/{email}"
	pathStatus     = "/api/Carts/status/{email}"
	pathCarts      = "/api/Carts"
)

// CartAPI implements shared.CartBackend.
type CartAPI struct {
	client *Client
}

func NewCartAPI(client *Client) *CartAPI {
	return &CartAPI{client: client}
}

var _ shared.CartBackend = (*CartAPI)(nil)

func (a *CartAPI) ListLines(ctx context.Context, ownerKey string) ([]cart.LineItem, error) {
	body, err := a.client.get(ctx, "cart_lines", pathCartLines, withEmail(ownerKey))
	if err != nil {
		return nil, err
	}
	details, err := decodeList[cartDetailDTO](body)
	if err != nil {
		return nil, a.client.malformed("cart_lines", err)
	}

	lines := make([]cart.LineItem, 0, len(details))
	for _, d := range details {
		lines = append(lines, d.toLine())
	}
	return cart.NormalizeLines(lines), nil
}

func (a *CartAPI) AddLine(ctx context.Context, ownerKey string, recordID, amount int) (*shared.LineEcho, error) {
	return a.mutate(ctx, "cart_add", pathAddLine, ownerKey, recordID, amount)
}

func (a *CartAPI) RemoveLine(ctx context.Context, ownerKey string, recordID, amount int) (*shared.LineEcho, error) {
	return a.mutate(ctx, "cart_remove", pathRemoveLine, ownerKey, recordID, amount)
}

// mutate only fails on the call itself. An unreadable echo is logged and dropped,
// since the engine re-fetches the cart anyway.
func (a *CartAPI) mutate(ctx context.Context, op, path, ownerKey string, recordID, amount int) (*shared.LineEcho, error) {
	body, err := a.client.post(ctx, op, path, func(r *resty.Request) {
		r.SetPathParam("email", ownerKey).
			SetQueryParam("recordId", itoa(recordID)).
			SetQueryParam("amount", itoa(amount))
	})
	if err != nil {
		return nil, err
	}

	dto, ok, err := decodeObject[cartDetailDTO](body)
	if err != nil {
		a.client.logger.Warn("ignoring unreadable mutation echo",
			slog.String("op", op),
			slog.Int("record_id", recordID),
			slog.String("error", err.Error()))
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	if dto.RecordID == 0 {
		dto.RecordID = recordID
	}
	return dto.toEcho(), nil
}

func (a *CartAPI) SetEnabled(ctx context.Context, ownerKey string, enabled bool) error {
	op, path := "cart_disable", pathDisable
	if enabled {
		op, path = "cart_enable", pathEnable
	}
	_, err := a.client.post(ctx, op, path, withEmail(ownerKey))
	return err
}

// Status reports whether the cart is enabled. A body without the flag counts as enabled.
func (a *CartAPI) Status(ctx context.Context, ownerKey string) (bool, error) {
	body, err := a.client.get(ctx, "cart_status", pathStatus, withEmail(ownerKey))
	if err != nil {
		return false, err
	}
	dto, ok, err := decodeObject[statusDTO](body)
	if err != nil {
		return false, a.client.malformed("cart_status", err)
	}
	if !ok || dto.Enabled == nil {
		return true, nil
	}
	return *dto.Enabled, nil
}

func (a *CartAPI) ListCarts(ctx context.Context) ([]shared.CartSummary, error) {
	body, err := a.client.get(ctx, "carts", pathCarts, nil)
	if err != nil {
		return nil, err
	}
	carts, err := decodeList[cartDTO](body)
	if err != nil {
		return nil, a.client.malformed("carts", err)
	}

	out := make([]shared.CartSummary, 0, len(carts))
	for _, c := range carts {
		out = append(out, c.toSummary())
	}
	return out, nil
}
