package api

import (
	"net/http"

	"storefront-core/internal/domain/order"
	reqdto "storefront-core/internal/handler/dto/request"
	resdto "storefront-core/internal/handler/dto/response"
	"storefront-core/internal/handler/httperr"
	"storefront-core/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoAttempt = errs.New("no checkout attempt")

type CheckoutHandler struct {
	checkout CheckoutService
}

func NewCheckoutHandler(checkout CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// @Summary Checkout
// @Description Commit the cart as an order. The cart is emptied only when the order is placed.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest false "Payment method"
// @Success 201 {object} resdto.AttemptResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	var req reqdto.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	attempt, err := h.checkout.Checkout(c.Request.Context(), owner, req.GetPaymentMethod())
	if err != nil {
		status, msg := httperr.StatusFor(err)
		var detail any
		// failed and conflicting attempts are reported alongside the error
		if attempt.ID != uuid.Nil {
			detail = resdto.AttemptFailureDetail{
				Reason:  attempt.Failure,
				Attempt: resdto.FromAttempt(attempt),
			}
		}
		httperr.AbortWithError(c, status, err, msg, detail)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAttempt(attempt))
}

// @Summary Last checkout attempt
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AttemptResponse
// @Failure 404 {object} httperr.Response
// @Router /checkout/last [get]
func (h *CheckoutHandler) Last(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	attempt, found := h.checkout.LastAttempt(owner)
	if !found {
		httperr.AbortWithError(c, http.StatusNotFound, errNoAttempt, "No checkout attempt", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAttempt(attempt))
}

// @Summary Order history
// @Description Orders of the caller, optionally filtered by order date (YYYY-MM-DD substring)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param search query string false "Date filter"
// @Success 200 {array} resdto.HistoryResponse
// @Failure 502 {object} httperr.Response
// @Router /orders [get]
func (h *CheckoutHandler) Orders(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	orders, err := h.checkout.Orders(c.Request.Context(), owner, c.Query("search"))
	respondOrders(c, orders, err)
}

func respondOrders(c *gin.Context, orders []order.History, err error) {
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHistory(orders))
}
