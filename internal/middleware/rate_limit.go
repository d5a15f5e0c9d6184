package middleware

import (
	"net/http"
	"sync"
	"time"

	"swarachna-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL      = 10 * time.Minute
	limiterSweepEvery   = time.Minute
	limiterMaxKeys      = 10000
	rateLimitedMessage  = "Too many requests, please slow down"
	rateLimitedHTTPCode = "TOO_MANY_REQUESTS"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter keeps one token bucket per key. Idle buckets are swept lazily
// on access so no background goroutine is needed.
type keyedLimiter struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (l *keyedLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterSweepEvery || len(l.visitors) >= limiterMaxKeys {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *keyedLimiter) sweep(now time.Time) {
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.visitors, k)
		}
	}
	l.lastSweep = now
}

func (l *keyedLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func rateLimit(l *keyedLimiter, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(keyFn(c)) {
			response.Error(c, http.StatusTooManyRequests, rateLimitedHTTPCode, rateLimitedMessage, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByIP allows rps requests per second per client IP with the given
// burst.
func RateLimitByIP(rps float64, burst int) gin.HandlerFunc {
	return rateLimit(newKeyedLimiter(rps, burst), func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// RateLimitByUser keys on the authenticated user and falls back to the IP for
// guests. It must run after AuthMiddleware or OptionalAuthMiddleware.
func RateLimitByUser(rps float64, burst int) gin.HandlerFunc {
	return rateLimit(newKeyedLimiter(rps, burst), func(c *gin.Context) string {
		if uid := UserID(c); uid != "" {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	})
}

// UserID returns the id placed by either auth middleware.
func UserID(c *gin.Context) string {
	if uid := c.GetString("user_id_validated"); uid != "" {
		return uid
	}
	return c.GetString("user_id")
}
