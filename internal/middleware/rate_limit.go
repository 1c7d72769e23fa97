// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

const (
	// A client idle this long loses its bucket on the next sweep.
	bucketIdleTTL = 3 * time.Minute
	sweepInterval = time.Minute
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP. Idle buckets
// are swept lazily on access, so an idle server holds no goroutines or
// timers. Budgets come from config via the router.
type IPRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	refill    rate.Limit
	burst     int
	lastSweep time.Time
}

func NewIPRateLimiter(refill rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		buckets:   make(map[string]*clientBucket),
		refill:    refill,
		burst:     burst,
		lastSweep: time.Now(),
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > sweepInterval {
		for addr, b := range l.buckets {
			if now.Sub(b.lastSeen) > bucketIdleTTL {
				delete(l.buckets, addr)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.refill, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

// Handler rejects clients over budget with 429.
func (l *IPRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests,
				"Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
