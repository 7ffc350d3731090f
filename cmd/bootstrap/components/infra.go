package components

import (
	"context"
	"log/slog"

	"storefront-core/internal/infra/backend"
	"storefront-core/internal/infra/kafka"
	redisinfra "storefront-core/internal/infra/redis"
	"storefront-core/internal/pkg/config"
	"storefront-core/internal/pkg/metrics"
	"storefront-core/internal/usecase/shared"
	"storefront-core/internal/usecase/stock"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	metricsOption,
	backendModule,
	redisModule,
	kafkaModule,
)

var metricsOption = fx.Provide(
	metrics.NewRegistry,
	metrics.New,
)

var backendModule = fx.Module("infra/backend",
	fx.Provide(
		NewBackendClient,
		fx.Annotate(
			backend.NewCartAPI,
			fx.As(new(shared.CartBackend)),
		),
		fx.Annotate(
			backend.NewCatalogAPI,
			fx.As(new(shared.CatalogBackend)),
		),
		fx.Annotate(
			backend.NewOrderAPI,
			fx.As(new(shared.OrderBackend)),
		),
	),
)

var redisModule = fx.Module("infra/redis",
	fx.Provide(
		NewRedisClient,
		NewSnapshotMirror,
	),
	fx.Invoke(StartStockBridge),
)

var kafkaModule = fx.Module("infra/kafka",
	fx.Provide(
		NewOrderPublisher,
	),
)

func NewBackendClient(cfg config.Config, m *metrics.Metrics, logger *slog.Logger) *backend.Client {
	return backend.NewClient(cfg.Backend, m, logger)
}

// NewRedisClient returns nil when Redis is not configured.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled() {
		logger.Info("redis not configured; snapshot mirror and stock bridge disabled")
		return nil, nil
	}

	client, err := redisinfra.NewConnection(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewSnapshotMirror(client *redis.Client, cfg config.Config) shared.SnapshotMirror {
	if client == nil {
		return nil
	}
	return redisinfra.NewSnapshotMirror(client, cfg.Redis.SnapshotTTL)
}

func StartStockBridge(lc fx.Lifecycle, client *redis.Client, cfg config.Config, stockCh *stock.Channel, logger *slog.Logger) {
	if client == nil {
		return
	}
	bridge := redisinfra.NewStockBridge(client, cfg.Redis.StockTopic, stockCh, logger)
	lc.Append(fx.Hook{
		OnStart: bridge.Start,
		OnStop:  bridge.Stop,
	})
}

func NewOrderPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.OrderEventPublisher {
	publisher := kafka.NewOrderPublisher(kafka.NewClient(cfg.Kafka.Brokers), cfg.Kafka.OrderTopic)
	if !publisher.Enabled() {
		logger.Info("kafka not configured; order events are not published")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
