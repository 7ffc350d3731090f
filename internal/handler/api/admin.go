package api

import (
	"net/http"
	"strings"

	resdto "storefront-core/internal/handler/dto/response"
	"storefront-core/internal/handler/httperr"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/cartstore"

	"github.com/gin-gonic/gin"
)

var errNoEmail = errs.New("empty owner email")

// AdminHandler serves the cross-owner views. Routes are guarded by RequireAdmin.
type AdminHandler struct {
	carts    CartService
	checkout CheckoutService
}

func NewAdminHandler(carts CartService, checkout CheckoutService) *AdminHandler {
	return &AdminHandler{carts: carts, checkout: checkout}
}

// @Summary List carts
// @Description All carts known to the backend, filtered by owner substring
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Owner filter"
// @Success 200 {array} resdto.CartSummaryResponse
// @Failure 403 {object} map[string]string
// @Failure 502 {object} httperr.Response
// @Router /admin/carts [get]
func (h *AdminHandler) Carts(c *gin.Context) {
	carts, err := h.carts.Carts(c.Request.Context(), c.Query("search"))
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartSummaries(carts))
}

// @Summary List all orders
// @Description Orders of every owner, filtered by owner, id or date substring
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Filter"
// @Success 200 {array} resdto.HistoryResponse
// @Failure 403 {object} map[string]string
// @Failure 502 {object} httperr.Response
// @Router /admin/orders [get]
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.checkout.AllOrders(c.Request.Context(), c.Query("search"))
	respondOrders(c, orders, err)
}

// @Summary Enable or disable an owner's cart
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "Owner email"
// @Param request body reqdto.SetEnabledRequest true "Enabled flag"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} map[string]string
// @Failure 502 {object} httperr.Response
// @Router /admin/carts/{email}/enabled [put]
func (h *AdminHandler) SetEnabled(c *gin.Context) {
	owner := cartstore.NormalizeKey(c.Param("email"))
	if owner == "" || !strings.Contains(owner, "@") {
		httperr.AbortWithError(c, http.StatusBadRequest, errNoEmail, "Invalid owner email", nil)
		return
	}
	setEnabled(c, h.carts, owner)
}
