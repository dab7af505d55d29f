package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hsadv/quotes-service/internal/security"
)

// RateLimiter is a fixed-window per-key counter. It is an injected store
// with an explicit lifetime, shared by nothing but the middleware using it.
type RateLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

func NewRateLimiter(max int, windowSize time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     max,
		window:  windowSize,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow reports whether another request from key fits the current window.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &window{start: now, count: 1}
		return true
	}
	w.count++
	return w.count <= l.max
}

// SubmitRateLimit throttles quote submissions per client IP. GET requests
// pass through unthrottled.
func SubmitRateLimit(limiter *RateLimiter, monitor *security.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		ip := ClientIP(c)
		if !limiter.Allow(ip) {
			if monitor != nil {
				monitor.Record(security.Event{
					Type:      security.EventRateLimitExceeded,
					IP:        ip,
					UserAgent: c.Request.UserAgent(),
					URL:       c.Request.URL.Path,
					Method:    c.Request.Method,
					Severity:  security.SeverityMedium,
				})
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Muitas solicitações. Por favor, tente novamente mais tarde.",
			})
			return
		}
		c.Next()
	}
}

// ClientIP resolves the real client address, preferring the first
// X-Forwarded-For entry when running behind the gateway.
func ClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first, _, ok := strings.Cut(forwarded, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		if c.Request.RemoteAddr != "" {
			return c.Request.RemoteAddr
		}
		return "unknown"
	}
	return host
}
