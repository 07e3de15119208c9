package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/pkg/logger"
	"github.com/litey/litey-go/pkg/metrics"
	"golang.org/x/time/rate"
)

// Decision is the outcome of a limiter check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter decides whether identity may perform action now.
// Implementations must be safe for concurrent use.
type Limiter interface {
	Allow(ctx context.Context, identity, action string) (Decision, error)
}

// MemoryLimiter is a per-key token bucket kept in process memory: times
// tokens per window, refilled evenly. State is lost on restart and is not
// shared between instances, so it is only meant for RATE_LIMIT_BACKEND=memory.
type MemoryLimiter struct {
	every rate.Limit
	burst int
	store sync.Map // map[string]*rate.Limiter
	now   func() time.Time
}

func NewMemoryLimiter(times int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		every: rate.Every(window / time.Duration(times)),
		burst: times,
		now:   time.Now,
	}
}

func (m *MemoryLimiter) limiter(key string) *rate.Limiter {
	if v, ok := m.store.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := m.store.LoadOrStore(key, rate.NewLimiter(m.every, m.burst))
	return v.(*rate.Limiter)
}

func (m *MemoryLimiter) Allow(_ context.Context, identity, action string) (Decision, error) {
	now := m.now()
	r := m.limiter(action + ":" + identity).ReserveN(now, 1)
	if !r.OK() {
		return Decision{}, fmt.Errorf("memory limiter: burst %d cannot satisfy request", m.burst)
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		metrics.RateLimitRejected.WithLabelValues("memory").Inc()
		return Decision{Allowed: false, RetryAfter: delay}, nil
	}
	metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
	return Decision{Allowed: true}, nil
}

// RateLimit rejects the request with 429 before the handler runs when the
// caller's identity has used up its allowance for action.
func RateLimit(lim Limiter, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := ClientIdentity(c.Request)
		d, err := lim.Allow(c.Request.Context(), identity, action)
		if err != nil {
			logger.Errorf("rate limit check failed for %s: %v", action, err)
			c.Abort()
			c.String(http.StatusInternalServerError, "Rate limit check failed")
			return
		}
		if !d.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(d.RetryAfter.Seconds()))))
			c.Abort()
			c.String(http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		c.Next()
	}
}
