package redis

import (
	"context"
	"time"

	"storefront-core/internal/pkg/config"
	"storefront-core/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// NewConnection opens a client and pings it once.
func NewConnection(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errs.Wrapf(err, "failed to connect to Redis at %s", cfg.Addr)
	}
	return rdb, nil
}
