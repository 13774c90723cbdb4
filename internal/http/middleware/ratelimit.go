package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// windowLimiter counts requests per key in fixed windows. Keys whose window
// has expired are swept at most once per window, so the map only holds
// clients seen recently.
type windowLimiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	clients   map[string]*clientInfo
	lastSweep time.Time
}

func newWindowLimiter(maxRequests int, window time.Duration) *windowLimiter {
	return &windowLimiter{
		max:     maxRequests,
		window:  window,
		clients: make(map[string]*clientInfo),
	}
}

// allow records one request from key at now and reports whether it fits
func (l *windowLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.window {
		for k, ci := range l.clients {
			if now.Sub(ci.last) > l.window {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	ci, ok := l.clients[key]
	if !ok || now.Sub(ci.last) > l.window {
		l.clients[key] = &clientInfo{last: now, count: 1}
		return true
	}
	ci.count++
	return ci.count <= l.max
}

func (l *windowLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit limits each client IP to maxRequests per window. It uses Redis
// when InitRedisRateLimiter connected, and an in-process window otherwise.
// maxRequests <= 0 disables limiting.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if redisClient != nil {
		return RedisRateLimit(maxRequests, window)
	}
	return SimpleRateLimit(maxRequests, window)
}

// SimpleRateLimit blocks clients that send more than maxRequests per window
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	limiter := newWindowLimiter(maxRequests, window)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
