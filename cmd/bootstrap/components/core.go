package components

import (
	"context"
	"log/slog"

	"storefront-core/internal/handler/api"
	"storefront-core/internal/pkg/clock"
	"storefront-core/internal/pkg/config"
	"storefront-core/internal/pkg/metrics"
	"storefront-core/internal/usecase/cartdetail"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/cartsync"
	"storefront-core/internal/usecase/catalogcache"
	"storefront-core/internal/usecase/checkout"
	"storefront-core/internal/usecase/shared"
	"storefront-core/internal/usecase/stock"

	"go.uber.org/fx"
)

var CoreModule = fx.Module("core",
	coreBaseOption,
	cartModule,
	orderModule,
)

var coreBaseOption = fx.Provide(
	clock.NewRealClock,
	NewStockChannel,
	NewCartStore,
	NewCatalogCache,
)

var cartModule = fx.Module("core/cart",
	fx.Provide(
		fx.Annotate(
			NewCartSyncEngine,
			fx.As(fx.Self()),
			fx.As(new(api.CartService)),
			fx.As(new(checkout.OwnerLane)),
		),
		fx.Annotate(
			NewCartDetailAggregator,
			fx.As(new(api.DetailService)),
		),
	),
)

var orderModule = fx.Module("core/order",
	fx.Provide(
		fx.Annotate(
			NewCheckoutManager,
			fx.As(new(api.CheckoutService)),
		),
	),
)

func NewStockChannel(lc fx.Lifecycle) *stock.Channel {
	ch := stock.NewChannel()
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			ch.Close()
			return nil
		},
	})
	return ch
}

// NewCartStore is the process-wide cart cache. mirror may be nil.
func NewCartStore(lc fx.Lifecycle, logger *slog.Logger, mirror shared.SnapshotMirror) *cartstore.Store {
	store := cartstore.NewStore(logger, mirror)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			store.Close()
			return nil
		},
	})
	return store
}

func NewCatalogCache(lc fx.Lifecycle, backend shared.CatalogBackend, stockCh *stock.Channel, cfg config.Config, logger *slog.Logger) *catalogcache.Cache {
	cache := catalogcache.New(backend, stockCh, logger, catalogcache.Options{
		Interval: cfg.Sync.CatalogRefresh,
		Timeout:  cfg.Backend.Timeout,
	})
	lc.Append(fx.Hook{
		OnStart: cache.Start,
		OnStop:  cache.Stop,
	})
	return cache
}

func NewCartSyncEngine(
	store *cartstore.Store,
	backend shared.CartBackend,
	stockCh *stock.Channel,
	cache *catalogcache.Cache,
	cfg config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) *cartsync.Engine {
	return cartsync.NewEngine(store, backend, stockCh, logger, cartsync.Options{
		Timeout: cfg.Backend.Timeout,
		Catalog: cache,
		Metrics: m,
	})
}

func NewCartDetailAggregator(store *cartstore.Store, cache *catalogcache.Cache) *cartdetail.Aggregator {
	return cartdetail.NewAggregator(store, cache)
}

func NewCheckoutManager(
	lane checkout.OwnerLane,
	store *cartstore.Store,
	backend shared.OrderBackend,
	publisher shared.OrderEventPublisher,
	clk clock.Clock,
	cfg config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) *checkout.Manager {
	return checkout.NewManager(lane, store, backend, clk, logger, checkout.Options{
		Timeout:              cfg.Sync.CheckoutTimeout,
		DefaultPaymentMethod: cfg.Sync.DefaultPaymentMethod,
		Publisher:            publisher,
		Metrics:              m,
	})
}
