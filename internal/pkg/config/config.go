package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, backend URL, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Sync    SyncConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type BackendConfig struct {
	BaseURL string        `envconfig:"BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
	// consecutive failures before the breaker opens
	BreakerFailures uint32        `envconfig:"BACKEND_BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"BACKEND_BREAKER_COOLDOWN" default:"30s"`
	RetryCount      int           `envconfig:"BACKEND_RETRY_COUNT" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:4200,http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	// role claim value that may act on other owners' carts
	AdminRole string `envconfig:"JWT_ADMIN_ROLE" default:"Admin"`
}

// Redis is optional. An empty address disables the snapshot mirror and the stock bridge.
type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR" default:""`
	Password    string        `envconfig:"REDIS_PASSWORD" default:""`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	SnapshotTTL time.Duration `envconfig:"REDIS_SNAPSHOT_TTL" default:"15m"`
	StockTopic  string        `envconfig:"REDIS_STOCK_CHANNEL" default:"storefront:stock"`
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// Kafka is optional. No brokers means order events are not published.
type KafkaConfig struct {
	Brokers    string `envconfig:"KAFKA_BROKERS" default:""`
	OrderTopic string `envconfig:"KAFKA_ORDER_TOPIC" default:"storefront.orders"`
}

type SyncConfig struct {
	SubscriberBuffer     int           `envconfig:"SYNC_SUBSCRIBER_BUFFER" default:"64"`
	CheckoutTimeout      time.Duration `envconfig:"CHECKOUT_TIMEOUT" default:"15s"`
	DefaultPaymentMethod string        `envconfig:"CHECKOUT_DEFAULT_PAYMENT_METHOD" default:"credit-card"`
	CatalogRefresh       time.Duration `envconfig:"CATALOG_REFRESH_INTERVAL" default:"5m"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Backend: BackendConfig{
			BaseURL:         "http://localhost:5000",
			Timeout:         2 * time.Second,
			BreakerFailures: 5,
			BreakerCooldown: time.Second,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:4200"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:    "test-secret",
			AdminRole: "Admin",
		},
		Redis: RedisConfig{
			SnapshotTTL: 15 * time.Minute,
			StockTopic:  "storefront:stock",
		},
		Kafka: KafkaConfig{
			OrderTopic: "storefront.orders",
		},
		Sync: SyncConfig{
			SubscriberBuffer:     16,
			CheckoutTimeout:      2 * time.Second,
			DefaultPaymentMethod: "credit-card",
			CatalogRefresh:       time.Minute,
		},
	}
}
