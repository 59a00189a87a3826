package handler

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	limiters map[string]*entry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per key with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 5
	}
	return &RateLimiter{
		limiters: make(map[string]*entry),
		rate:     rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

// Allow reports whether key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.limiters[key]
	if !ok {
		l.sweep(now)
		e = &entry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// sweep forgets keys idle for longer than l.idle. Called with l.mu held.
func (l *RateLimiter) sweep(now time.Time) {
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) > l.idle {
			delete(l.limiters, k)
		}
	}
}

// RateLimit rejects requests over the client IP's budget using reject.
func RateLimit(l *RateLimiter, reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		reject(c)
		c.Abort()
	}
}
