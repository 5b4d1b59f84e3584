// Package middleware provides gin middleware for the motif API.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxBuckets = 100_000
	bucketIdle = 10 * time.Minute
)

// RateLimiter applies a token bucket per client IP. Idle buckets expire.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

// NewRateLimiter creates a RateLimiter allowing ratePerSec requests per
// second with the given burst.
func NewRateLimiter(ratePerSec, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: expirable.NewLRU[string, *rate.Limiter](maxBuckets, nil, bucketIdle),
		limit:   rate.Limit(ratePerSec),
		burst:   burst,
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Get refreshes the entry's expiry, so active clients keep their bucket.
	if l, ok := rl.buckets.Get(ip); ok {
		return l
	}

	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.buckets.Add(ip, l)

	return l
}

// Handler returns gin middleware that rate limits by client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// ClientIP ignores forwarding headers: the router trusts no proxies.
		if !rl.limiter(c.ClientIP()).Allow() {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
			return
		}

		c.Next()
	}
}
