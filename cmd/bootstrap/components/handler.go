package components

import (
	"storefront-core/internal/handler"
	"storefront-core/internal/handler/api"
	"storefront-core/internal/handler/middleware"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/stock"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			func(s *cartstore.Store) *cartstore.Store { return s },
			fx.As(new(api.CartFeed)),
		),
		fx.Annotate(
			func(ch *stock.Channel) *stock.Channel { return ch },
			fx.As(new(api.StockFeed)),
		),
		api.NewCartHandler,
		api.NewDetailsHandler,
		api.NewStockHandler,
		api.NewCheckoutHandler,
		api.NewAdminHandler,
		api.NewSessionHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	cart *api.CartHandler,
	details *api.DetailsHandler,
	stockHandler *api.StockHandler,
	checkout *api.CheckoutHandler,
	admin *api.AdminHandler,
	session *api.SessionHandler,
) handler.Handlers {
	return handler.Handlers{
		Cart:     cart,
		Details:  details,
		Stock:    stockHandler,
		Checkout: checkout,
		Admin:    admin,
		Session:  session,
	}
}
