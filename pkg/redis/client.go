package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/repairhub/backend/config"
	"github.com/repairhub/backend/pkg/logger"
)

// Client wraps the go-redis client. When Redis is disabled in config the
// wrapper is still constructed but Enabled() reports false, and callers
// are expected to skip Redis-backed features.
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// NewClient connects to Redis according to config. A disabled config
// returns a non-nil client with no connection.
func NewClient(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		logger.GetLogger().Info("Redis disabled, skipping connection")
		return &Client{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddress(), err)
	}

	logger.GetLogger().Info("Connected to Redis")
	return &Client{rdb: rdb, enabled: true}, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// Ping reports connection health. Disabled clients are healthy by
// definition so health checks do not page on an optional dependency.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// SetNX sets the key only if it does not exist, returning whether the
// key was set.
func (c *Client) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if !c.Enabled() {
		return true, nil
	}
	return c.rdb.SetNX(ctx, key, value, ttl).Result()
}

// Del removes the given keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close shuts the connection down.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
