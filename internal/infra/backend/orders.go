package backend

import (
	"context"

	"storefront-core/internal/domain/order"
	"storefront-core/internal/usecase/shared"

	"github.com/go-resty/resty/v2"
)

const (
	pathCommit      = "/api/Orders/FromCart/{email}"
	pathOwnerOrders = "/api/Orders/GetOrdersByUserEmail/{email}"
	pathAllOrders   = "/api/Orders"
)

type OrderAPI struct {
	client *Client
}

func NewOrderAPI(client *Client) *OrderAPI {
	return &OrderAPI{client: client}
}

var _ shared.OrderBackend = (*OrderAPI)(nil)

// CommitFromCart sends idempotencyKey as the Idempotency-Key header so a retried
// commit of the same attempt is not applied twice.
func (a *OrderAPI) CommitFromCart(ctx context.Context, ownerKey, paymentMethod, idempotencyKey string) (*shared.CommitReceipt, error) {
	body, err := a.client.post(ctx, "order_commit", pathCommit, func(r *resty.Request) {
		r.SetPathParam("email", ownerKey).
			SetHeader("Idempotency-Key", idempotencyKey).
			SetHeader("Content-Type", "application/json").
			SetBody(commitRequest{PaymentMethod: paymentMethod})
	})
	if err != nil {
		return nil, err
	}

	dto, ok, err := decodeObject[orderDTO](body)
	if err != nil || !ok {
		// the order exists server-side; the caller fills in id and date
		return &shared.CommitReceipt{}, nil
	}
	return dto.toReceipt(), nil
}

func (a *OrderAPI) ListOrders(ctx context.Context, ownerKey string) ([]order.History, error) {
	body, err := a.client.get(ctx, "orders", pathOwnerOrders, withEmail(ownerKey))
	if err != nil {
		return nil, err
	}
	return a.decodeOrders("orders", body)
}

func (a *OrderAPI) ListAllOrders(ctx context.Context) ([]order.History, error) {
	body, err := a.client.get(ctx, "all_orders", pathAllOrders, nil)
	if err != nil {
		return nil, err
	}
	return a.decodeOrders("all_orders", body)
}

func (a *OrderAPI) decodeOrders(op string, body []byte) ([]order.History, error) {
	dtos, err := decodeList[orderDTO](body)
	if err != nil {
		return nil, a.client.malformed(op, err)
	}

	out := make([]order.History, 0, len(dtos))
	for _, d := range dtos {
		h, err := d.toHistory()
		if err != nil {
			return nil, a.client.malformed(op, err)
		}
		out = append(out, h)
	}
	return out, nil
}
