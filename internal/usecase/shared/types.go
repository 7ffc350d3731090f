package shared

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineEcho is the line state a mutation call echoed back. Any field may be absent.
type LineEcho struct {
	RecordID   int
	Amount     int
	Stock      int
	StockKnown bool
}

// CartSummary is one row of the admin carts listing.
type CartSummary struct {
	ID         int
	OwnerKey   string
	TotalItems int
	TotalPrice decimal.Decimal
	Enabled    bool
}

type CommitReceipt struct {
	OrderID   string
	CreatedAt time.Time
}

// RemoteError is a non-2xx backend response. Message is the server's {message} when present.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// RemoteMessage returns the server-provided message carried anywhere in err's chain.
func RemoteMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}

type accessTokenKey struct{}

// WithAccessToken attaches the caller's bearer token so backend calls act on their behalf.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessToken(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// RequestIDHeader carries the inbound request id to the backend for correlation.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id of the inbound request that started ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
