package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter_OnePerWindow(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	lim := NewRedisLimiter(client, "", 1, 24*time.Hour)
	ctx := context.Background()

	d, err := lim.Allow(ctx, "198.51.100.1", "litey-delete")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	require.True(t, m.Exists("litey:rl:litey-delete:198.51.100.1"))

	d, err = lim.Allow(ctx, "198.51.100.1", "litey-delete")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Greater(t, d.RetryAfter, 23*time.Hour)

	// advance miniredis clock past the window
	m.FastForward(24*time.Hour + time.Second)
	d, err = lim.Allow(ctx, "198.51.100.1", "litey-delete")
	require.NoError(t, err)
	require.True(t, d.Allowed)
}

func TestRedisLimiter_SharedAcrossInstances(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	a := NewRedisLimiter(redis.NewClient(&redis.Options{Addr: m.Addr()}), "", 1, time.Hour)
	b := NewRedisLimiter(redis.NewClient(&redis.Options{Addr: m.Addr()}), "", 1, time.Hour)
	ctx := context.Background()

	d, err := a.Allow(ctx, "x", "ng-delete")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	d, err = b.Allow(ctx, "x", "ng-delete")
	require.NoError(t, err)
	require.False(t, d.Allowed)
}

func TestRateLimit_RedisMiddleware(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	lim := NewRedisLimiter(redis.NewClient(&redis.Options{Addr: m.Addr()}), "", 1, 24*time.Hour)
	hits := 0
	r := newLimitedRouter(lim, &hits)

	require.Equal(t, http.StatusOK, post(r, "/api/ng/delete", map[string]string{"CF-Connecting-IP": "192.0.2.1"}).Code)
	w := post(r, "/api/ng/delete", map[string]string{"CF-Connecting-IP": "192.0.2.1"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "86400", w.Header().Get("Retry-After"))
	require.Equal(t, 1, hits)
}

func TestRedisLimiter_StoreDown(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	m.Close()

	_, err = NewRedisLimiter(client, "", 1, time.Hour).Allow(context.Background(), "x", "a")
	require.Error(t, err)
}
