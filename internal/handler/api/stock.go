package api

import (
	"storefront-core/internal/domain/catalog"
	resdto "storefront-core/internal/handler/dto/response"
	"storefront-core/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	feed    StockFeed
	metrics *metrics.Metrics
}

func NewStockHandler(feed StockFeed, m *metrics.Metrics) *StockHandler {
	return &StockHandler{feed: feed, metrics: m}
}

// @Summary Stream stock changes
// @Description Server-sent events with the newest stock of each changed record
// @Tags catalog
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {object} resdto.StockEventResponse
// @Router /stock/stream [get]
func (h *StockHandler) Stream(c *gin.Context) {
	sub := h.feed.Subscribe()
	defer sub.Close()
	defer h.metrics.TrackSubscriber("stock")()

	streamSSE(c, "stock", sub.Next, func(ev catalog.StockEvent) any { return resdto.FromStockEvent(ev) })
}
