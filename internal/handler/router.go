package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-core/internal/handler/api"
	"storefront-core/internal/handler/middleware"
	"storefront-core/internal/pkg/config"
	"storefront-core/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the route table binds.
type Handlers struct {
	Cart     *api.CartHandler
	Details  *api.DetailsHandler
	Stock    *api.StockHandler
	Checkout *api.CheckoutHandler
	Admin    *api.AdminHandler
	Session  *api.SessionHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	setupMiddleware(engine, cfg, logger, m)
	setupRoutes(engine, h, authMiddleware, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.MetricsMiddleware(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/cart", Handler: h.Cart.Get},
			{Method: http.MethodGet, Path: "/cart/stream", Handler: h.Cart.Stream},
			{Method: http.MethodPost, Path: "/cart/items/:recordId", Handler: h.Cart.Add},
			{Method: http.MethodDelete, Path: "/cart/items/:recordId", Handler: h.Cart.Remove},
			{Method: http.MethodPut, Path: "/cart/enabled", Handler: h.Cart.SetEnabled},
			{Method: http.MethodPost, Path: "/cart/sync", Handler: h.Cart.Sync},
			{Method: http.MethodGet, Path: "/cart/badge", Handler: h.Details.Badge},
			{Method: http.MethodGet, Path: "/cart/details", Handler: h.Details.Rows},
			{Method: http.MethodGet, Path: "/cart/details/stream", Handler: h.Details.Stream},
			{Method: http.MethodGet, Path: "/catalog/groups/:groupId/records", Handler: h.Details.Listing},
			{Method: http.MethodGet, Path: "/stock/stream", Handler: h.Stock.Stream},
			{Method: http.MethodPost, Path: "/checkout", Handler: h.Checkout.Checkout},
			{Method: http.MethodGet, Path: "/checkout/last", Handler: h.Checkout.Last},
			{Method: http.MethodGet, Path: "/orders", Handler: h.Checkout.Orders},
			{Method: http.MethodPost, Path: "/session/logout", Handler: h.Session.Logout},
		})

		admin := apiGroup.Group("/admin")
		adminOnly := []gin.HandlerFunc{authMiddleware.RequireAdmin()}
		addRoutes(admin, []route{
			{Method: http.MethodGet, Path: "/carts", Handler: h.Admin.Carts, Mw: adminOnly},
			{Method: http.MethodPut, Path: "/carts/:email/enabled", Handler: h.Admin.SetEnabled, Mw: adminOnly},
			{Method: http.MethodGet, Path: "/orders", Handler: h.Admin.Orders, Mw: adminOnly},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
