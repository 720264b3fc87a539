package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	response "packsite/backend/internal/infra/common"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/infra/ratelimit"
)

// RateLimitMiddleware throttles a route group per client IP with a
// fixed window. It guards the public lead-intake endpoints against form
// spam; a limiter outage fails open so a Redis hiccup never blocks
// legitimate submissions.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	scope   string
	limit   int
	window  time.Duration
}

// NewRateLimitMiddleware constructs a limiter middleware. scope keys
// the counters so different route groups do not share a budget.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, scope string, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, scope: scope, limit: limit, window: window}
}

// Handle returns the gin middleware.
func (m *RateLimitMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := m.scope + ":" + c.ClientIP()

		result, err := m.limiter.Allow(c.Request.Context(), key, m.limit, m.window)
		if err != nil {
			logger.S().Warnw("rate limiter unavailable, failing open", "scope", m.scope, "error", err)
			c.Next()
			return
		}
		if !result.Allowed {
			if result.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
			}
			response.Fail(c, http.StatusTooManyRequests, response.ErrTooManyRequests, "too many requests, slow down", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
