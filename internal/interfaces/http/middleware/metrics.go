package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver receives one sample per finished request.
type RequestObserver interface {
	ObserveRequest(route, method string, code int, elapsed time.Duration)
}

// Metrics labels samples with the matched route pattern, never the raw path,
// so ids and tracking codes do not become label values.
func Metrics(obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		obs.ObserveRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
