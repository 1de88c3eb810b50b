package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"issuedesk/internal/shared/constants"
)

const maxRequestIDLen = 64

// RequestID keeps a caller-supplied X-Request-ID of sane length or mints a
// UUID, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderXRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, id)
		c.Header(constants.HeaderXRequestID, id)
		c.Next()
	}
}
