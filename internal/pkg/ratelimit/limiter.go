// internal/pkg/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed window counter kept in Redis.
type Limiter struct {
	client *redis.Client
	max    int64
	window time.Duration
	prefix string
}

func NewLimiter(client *redis.Client, max int64, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		max:    max,
		window: window,
		prefix: "ratelimit:customer-api",
	}
}

// Allow counts one request for key and reports whether it fits the window,
// along with the requests left.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment request count: %w", err)
	}

	// Set expiration on first request of the window
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	remaining := l.max - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.max, remaining, nil
}
