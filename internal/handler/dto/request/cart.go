package request

import (
	"strings"
)

type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"max=64"`
}

// GetPaymentMethod returns the trimmed method, or "" so the configured default applies.
func (r CheckoutRequest) GetPaymentMethod() string {
	return strings.TrimSpace(r.PaymentMethod)
}
