//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront-core/cmd/bootstrap"
	"storefront-core/cmd/bootstrap/components"
	"storefront-core/internal/pkg/config"
	"storefront-core/internal/usecase/catalogcache"
	"storefront-core/tests/e2e/common/fakebackend"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container
)

// Catalog served by the fake backend in every e2e suite.
var (
	Groups = map[int]string{1: "Jazz", 2: "Rock"}

	Records = []fakebackend.Record{
		{ID: 1, Title: "Kind of Blue", Price: decimal.RequireFromString("19.99"), Stock: 5, GroupID: 1},
		{ID: 2, Title: "A Love Supreme", Price: decimal.RequireFromString("15.50"), Stock: 3, GroupID: 1},
		{ID: 3, Title: "Abbey Road", Price: decimal.RequireFromString("12.00"), Stock: 4, GroupID: 2},
		{ID: 4, Title: "Sold Out Single", Price: decimal.RequireFromString("3.00"), Stock: 0, GroupID: 2},
	}
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// ------------------------------------------------------------
// Per test process setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, *fakebackend.Server, *redis.Client, *catalogcache.Cache, config.Config) {
	redisInfo := startContainers(t)

	backend := fakebackend.New(Groups, Records)
	t.Cleanup(backend.Close)

	router, rdb, cache, cfg, app := buildE2EApp(backend.URL, redisInfo)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	slog.Info("e2e environment ready",
		"redis_host", redisInfo.Host,
		"redis_port", redisInfo.Port.Port(),
		"backend_url", backend.URL)

	return router, backend, rdb, cache, cfg
}

func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startRedisContainerOnce(t)

	info, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "failed to read Redis container address")
	return info
}

// ------------------------------------------------------------
// Builds the application the way main does, with test config
// ------------------------------------------------------------
func buildE2EApp(backendURL string, redisInfo ContainerInfo) (*gin.Engine, *redis.Client, *catalogcache.Cache, config.Config, *fx.App) {
	var (
		router *gin.Engine
		rdb    *redis.Client
		cache  *catalogcache.Cache
		cfg    config.Config
	)

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config {
			return createTestConfig(backendURL, redisInfo)
		}),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.InfraModule,
		components.CoreModule,
		components.HandlerModule,

		fx.Populate(&router, &rdb, &cache, &cfg),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}
	if router == nil {
		panic("fx app started without a router")
	}

	return router, rdb, cache, cfg, app
}

func createTestConfig(backendURL string, redisInfo ContainerInfo) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.Backend.BaseURL = backendURL
	testConfig.Redis.Addr = fmt.Sprintf("%s:%s", redisInfo.Host, redisInfo.Port.Port())
	// failed commits in one test must not open the breaker for the next
	testConfig.Backend.BreakerFailures = 100
	return testConfig
}

// ------------------------------------------------------------
// Starts (or reuses) the Redis container once per process
// ------------------------------------------------------------
func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		var err error
		redisTestContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start Redis container")

		t.Cleanup(func() {
			if redisTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := redisTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate Redis container", "error", err.Error())
				}
			}
		})
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Shared suite for e2e tests
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	Backend *fakebackend.Server
	Redis   *redis.Client
	Catalog *catalogcache.Cache
	Config  config.Config
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	router, backend, rdb, cache, cfg := setupE2EEnvironment(t)
	s.Router = router
	s.Backend = backend
	s.Redis = rdb
	s.Catalog = cache
	s.Config = cfg
	require.NotNil(t, s.Redis, "Redis client missing")
	require.NotNil(t, s.Router, "router setup failed")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

// SetupTest restores the fake backend's stock and reloads the catalog. Each test
// uses its own owner email, so cached carts from earlier tests never interfere.
func (s *SharedSuite) SetupTest() {
	stock := make(map[int]int, len(Records))
	for _, r := range Records {
		stock[r.ID] = r.Stock
	}
	s.Backend.Reset(stock)
	require.NoError(s.T(), s.Catalog.Refresh(context.Background()))
}
