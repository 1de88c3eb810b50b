package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/infrastructure/ratelimit"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/utils"
)

// RateLimiter throttles the public endpoints per client IP. The counters live
// in Redis so every instance shares them.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
	logger  logger.Interface
}

// NewRateLimiter returns a pass-through limiter when limiter is nil, which is
// how the server runs without Redis.
func NewRateLimiter(limiter ratelimit.RateLimiter, perMinute int, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		config:  ratelimit.RateLimitConfig{RequestsPerMinute: perMinute},
		logger:  logger,
	}
}

// Limit keys the counter by scope and client IP, so separate endpoint groups
// do not share a budget.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter == nil || rl.config.RequestsPerMinute <= 0 {
			c.Next()
			return
		}

		key := scope + ":ip:" + c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.config)
		if err != nil {
			// Redis trouble must not take the public API down with it.
			rl.logger.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(time.Minute.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
