package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/litey/litey-go/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter in Redis. The window opens on the
// first call for a key and closes when the key expires, so state survives
// restarts and is shared by every instance using the same Redis.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	times  int64
	window time.Duration
}

// NewRedisLimiter allows times calls per window for each identity and action.
func NewRedisLimiter(client *redis.Client, prefix string, times int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "litey:rl:"
	}
	return &RedisLimiter{client: client, prefix: prefix, times: int64(times), window: window}
}

func (r *RedisLimiter) key(identity, action string) string {
	return fmt.Sprintf("%s%s:%s", r.prefix, action, identity)
}

func (r *RedisLimiter) Allow(ctx context.Context, identity, action string) (Decision, error) {
	key := r.key(identity, action)
	cnt, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis incr %s: %w", key, err)
	}
	if cnt == 1 {
		if err := r.client.PExpire(ctx, key, r.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("redis pexpire %s: %w", key, err)
		}
	}
	if cnt <= r.times {
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		return Decision{Allowed: true}, nil
	}

	ttl, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis pttl %s: %w", key, err)
	}
	if ttl < 0 {
		// counter lost its expiry (e.g. PEXPIRE never ran); start a fresh window
		_ = r.client.PExpire(ctx, key, r.window).Err()
		ttl = r.window
	}
	metrics.RateLimitRejected.WithLabelValues("redis").Inc()
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}
