package api

import (
	"net/http"
	"strconv"

	resdto "storefront-core/internal/handler/dto/response"
	"storefront-core/internal/handler/httperr"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/pkg/metrics"
	"storefront-core/internal/usecase/cartdetail"

	"github.com/gin-gonic/gin"
)

type DetailsHandler struct {
	carts   CartService
	details DetailService
	metrics *metrics.Metrics
}

func NewDetailsHandler(carts CartService, details DetailService, m *metrics.Metrics) *DetailsHandler {
	return &DetailsHandler{carts: carts, details: details, metrics: m}
}

// @Summary Cart detail rows
// @Description Cart lines joined with catalog metadata, in cart order
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RowResponse
// @Failure 502 {object} httperr.Response
// @Router /cart/details [get]
func (h *DetailsHandler) Rows(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	if _, err := h.carts.Snapshot(c.Request.Context(), owner); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRows(h.details.Rows(owner)))
}

// @Summary Stream cart detail rows
// @Tags cart
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {array} resdto.RowResponse
// @Router /cart/details/stream [get]
func (h *DetailsHandler) Stream(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	st := h.details.Subscribe(owner)
	defer st.Close()
	defer h.metrics.TrackSubscriber("rows")()

	streamSSE(c, "rows", st.Next, func(rows []cartdetail.Row) any { return resdto.FromRows(rows) })
}

// @Summary Cart badge
// @Description Item count and total of the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BadgeResponse
// @Failure 502 {object} httperr.Response
// @Router /cart/badge [get]
func (h *DetailsHandler) Badge(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	if _, err := h.carts.Snapshot(c.Request.Context(), owner); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSummary(h.details.Badge(owner)))
}

// @Summary Group listing
// @Description Records of a group annotated with the amount already in the cart
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Success 200 {array} resdto.RecordResponse
// @Failure 400 {object} httperr.Response
// @Router /catalog/groups/{groupId}/records [get]
func (h *DetailsHandler) Listing(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	groupID, err := strconv.Atoi(c.Param("groupId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, "parse group id"), "Invalid group id", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListing(h.details.Listing(owner, groupID)))
}
