package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/shared/constants"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/utils"
)

// Recovery turns a handler panic into a 500 envelope. A panic caused by the
// client hanging up is logged and the response is skipped.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(constants.ContextKeyRequestID),
			"error", recovered,
		}

		if clientGone(recovered) {
			log.Warnw("client disconnected mid-response", fields...)
			c.Abort()
			return
		}

		fields = append(fields,
			"headers", redactedHeaders(c.Request.Header),
			"stack", string(debug.Stack()))
		log.Errorw("panic recovered", fields...)

		utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
		c.Abort()
	})
}

func clientGone(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}

// redactedHeaders masks credentials before the request is written to the log.
func redactedHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if k == constants.HeaderAuthorization || k == "Cookie" {
			out[k] = "*"
			continue
		}
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
