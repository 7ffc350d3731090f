package api

import (
	"net/http"
	"strconv"

	"storefront-core/internal/domain/cart"
	reqdto "storefront-core/internal/handler/dto/request"
	resdto "storefront-core/internal/handler/dto/response"
	"storefront-core/internal/handler/httperr"
	"storefront-core/internal/handler/middleware"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/pkg/metrics"
	"storefront-core/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

var errNoOwner = errs.New("no cart owner on request")

type CartHandler struct {
	carts   CartService
	feed    CartFeed
	metrics *metrics.Metrics
}

func NewCartHandler(carts CartService, feed CartFeed, m *metrics.Metrics) *CartHandler {
	return &CartHandler{carts: carts, feed: feed, metrics: m}
}

// @Summary Get cart
// @Description Current cart of the caller, fetched from the backend on first access
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param viewingUserEmail query string false "Owner to view (admin only)"
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} map[string]string
// @Failure 502 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	snapshot, err := h.carts.Snapshot(c.Request.Context(), owner)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(snapshot))
}

// @Summary Stream cart
// @Description Server-sent events carrying every cart snapshot, starting with the current one
// @Tags cart
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Router /cart/stream [get]
func (h *CartHandler) Stream(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	sub := h.feed.Subscribe(owner)
	defer sub.Close()
	defer h.metrics.TrackSubscriber("cart")()

	streamSSE(c, "cart", sub.Next, func(v cart.Cart) any { return resdto.FromCart(v) })
}

// @Summary Add one unit
// @Description Add one unit of a record to the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param recordId path int true "Record ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /cart/items/{recordId} [post]
func (h *CartHandler) Add(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return
	}
	updated, err := h.carts.Add(c.Request.Context(), owner, recordID)
	h.respondCart(c, updated, err)
}

// @Summary Remove units
// @Description Remove count units (default 1) of a record from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param recordId path int true "Record ID"
// @Param count query int false "Units to remove"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /cart/items/{recordId} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return
	}
	count := 1
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			if err == nil {
				err = errs.Newf("count %d out of range", n)
			}
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid count", nil)
			return
		}
		count = n
	}
	updated, err := h.carts.Remove(c.Request.Context(), owner, recordID, count)
	h.respondCart(c, updated, err)
}

// @Summary Enable or disable cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetEnabledRequest true "Enabled flag"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /cart/enabled [put]
func (h *CartHandler) SetEnabled(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	setEnabled(c, h.carts, owner)
}

// @Summary Sync cart status
// @Description Re-read the enabled flag and lines from the backend
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Failure 502 {object} httperr.Response
// @Router /cart/sync [post]
func (h *CartHandler) Sync(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	updated, err := h.carts.SyncStatus(c.Request.Context(), owner)
	h.respondCart(c, updated, err)
}

// failed mutations still answer with the rolled-back cart in detail
func (h *CartHandler) respondCart(c *gin.Context, updated cart.Cart, err error) {
	if err != nil {
		status, msg := httperr.StatusFor(err)
		httperr.AbortWithError(c, status, err, msg, resdto.CartFailureDetail{
			Reason: shared.RemoteMessage(err),
			Cart:   resdto.FromCart(updated),
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(updated))
}

func setEnabled(c *gin.Context, carts CartService, owner string) {
	var req reqdto.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	updated, err := carts.SetEnabled(c.Request.Context(), owner, *req.Enabled)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(updated))
}

func requireOwner(c *gin.Context) (string, bool) {
	owner, ok := middleware.GetOwnerKey(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoOwner, "Unauthorized", nil)
		return "", false
	}
	return owner, true
}

func recordIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("recordId"))
	if err != nil || id <= 0 {
		if err == nil {
			err = errs.Newf("record id %d out of range", id)
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid record id", nil)
		return 0, false
	}
	return id, true
}
