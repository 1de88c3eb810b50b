package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/shared/constants"
	"issuedesk/internal/shared/logger"
)

// quietPrefixes are probed often enough that successful hits are not logged.
var quietPrefixes = []string{"/health", "/metrics", "/swagger/"}

// Logger writes one line per finished request. Successful probes are dropped,
// 4xx are warnings and 5xx are errors.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		if status < 400 && isQuietPath(path) {
			return
		}

		fields := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if id := c.GetString(constants.ContextKeyRequestID); id != "" {
			fields = append(fields, "request_id", id)
		}
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			fields = append(fields, "user_id", userID, "role", c.GetString(constants.ContextKeyUserRole))
		} else {
			fields = append(fields, "role", "guest")
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}

func isQuietPath(path string) bool {
	for _, p := range quietPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
