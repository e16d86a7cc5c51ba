package service

import (
	"context"
	"fmt"
	"time"

	"github.com/repairhub/backend/pkg/redis"
)

// RedisThrottle limits reset issuance to one per email per window using a
// SET NX key with the window as its TTL.
type RedisThrottle struct {
	client *redis.Client
	window time.Duration
}

func NewRedisThrottle(client *redis.Client, window time.Duration) *RedisThrottle {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisThrottle{client: client, window: window}
}

func (t *RedisThrottle) Allow(ctx context.Context, email string) (bool, error) {
	if !t.client.Enabled() {
		return true, nil
	}
	key := fmt.Sprintf("reset:throttle:%s", email)
	return t.client.SetNX(ctx, key, 1, t.window)
}
