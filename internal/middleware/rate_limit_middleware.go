package middleware

import (
	"sync"
	"time"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	visitorTTL        = 10 * time.Minute
	visitorSweepEvery = 5000
)

type KeyFunc func(*gin.Context) string

// KeyByUserOrIP keys buckets by the identified user, falling back to the
// client IP for the shared default user.
func KeyByUserOrIP() KeyFunc {
	return func(c *gin.Context) string {
		if userID := c.GetString(UserIDKey); userID != "" && userID != model.DefaultUserID {
			return "user:" + userID
		}
		return "ip:" + c.ClientIP()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-key token bucket limiter. Idle buckets are swept
// every few thousand lookups.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn KeyFunc

	mu       sync.Mutex
	visitors map[string]*visitor
	lookups  int
	ttl      time.Duration
}

func NewRateLimiter(rps float64, burst int, keyFn KeyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      visitorTTL,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Sweep before the lookup so a stale bucket for key is replaced too
	rl.lookups++
	if rl.lookups >= visitorSweepEvery {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.lookups = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFn(c)
		if rl.limiterFor(key).Allow() {
			c.Next()
			return
		}

		metrics.HTTPRateLimited.Inc()
		GetLoggerFromContext(c).Warn("Rate limit exceeded", map[string]interface{}{
			"key": key,
		})
		c.Header("Retry-After", "1")
		errors.TooManyRequests(c)
		c.Abort()
	}
}
