package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/utils"
	"golang.org/x/time/rate"
)

// RateLimiter hands every client IP its own token bucket.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu        sync.Mutex
	ips       map[string]*visitor
	ttl       time.Duration
	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limit: limit,
		burst: burst,
		ips:   make(map[string]*visitor),
		ttl:   10 * time.Minute,
	}
}

// NewStrictRateLimiter allows perMinute requests per minute per IP, for the
// credential endpoints.
func NewStrictRateLimiter(perMinute int) *RateLimiter {
	return NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.ttl {
		for key, v := range rl.ips {
			if now.Sub(v.lastSeen) > rl.ttl {
				delete(rl.ips, key)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests, please wait a moment", nil)
			return
		}
		c.Next()
	}
}
