package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/auth"
	apperrors "github.com/tenantify/apikit/errors"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the per-key budget inside a sliding one-minute
	// window. Zero or negative falls back to 60.
	RequestsPerMinute int
	// KeyFunc buckets requests. Defaults to TenantBasedKey so each tenant
	// gets its own budget; anonymous traffic falls back to the client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a Gin middleware enforcing a sliding-window request
// budget per key. Rejections use the unified error response with a 429.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = TenantBasedKey
	}

	lim := newSlidingWindow(cfg.RequestsPerMinute, time.Minute)
	go lim.evictIdle(5 * time.Minute)

	return func(c *gin.Context) {
		if !lim.allow(cfg.KeyFunc(c)) {
			appErr := apperrors.New(apperrors.ErrCodeServiceUnavailable,
				"Rate limit exceeded. Please retry later.", http.StatusTooManyRequests)
			abortWithAppError(c, appErr)
			return
		}
		c.Next()
	}
}

// TenantBasedKey buckets by the authenticated tenant, falling back to the
// client IP when the request carries no claims (anonymous paths, or the rate
// limiter running ahead of authentication).
func TenantBasedKey(c *gin.Context) string {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok && claims.TenantID != "" {
			return "tenant:" + claims.TenantID
		}
	}
	return "ip:" + c.ClientIP()
}

// IPBasedKey buckets strictly by client IP, ignoring tenant identity.
func IPBasedKey(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// slidingWindow tracks request timestamps per key within a fixed window.
type slidingWindow struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
}

func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
}

func (s *slidingWindow) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	live := pruneBefore(s.seen[key], now.Add(-s.window))
	if len(live) >= s.limit {
		s.seen[key] = live
		return false
	}
	s.seen[key] = append(live, now)
	return true
}

// evictIdle drops keys whose entire history has aged out, so tenants that
// stopped sending traffic do not pin memory.
func (s *slidingWindow) evictIdle(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		cutoff := time.Now().Add(-s.window)
		for key, stamps := range s.seen {
			if live := pruneBefore(stamps, cutoff); len(live) == 0 {
				delete(s.seen, key)
			} else {
				s.seen[key] = live
			}
		}
		s.mu.Unlock()
	}
}

func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	var live []time.Time
	for _, t := range stamps {
		if t.After(cutoff) {
			live = append(live, t)
		}
	}
	return live
}
