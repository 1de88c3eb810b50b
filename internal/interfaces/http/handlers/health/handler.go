// Package health reports whether the service and its stores are reachable.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB and by small adapters around Redis.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	database Pinger
	cache    Pinger
	service  string
}

// NewHealthHandler accepts a nil cache for deployments without Redis.
func NewHealthHandler(database, cache Pinger, service string) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
		service:  service,
	}
}

// HealthCheck handles GET /health. A database failure is fatal (503); a
// Redis failure only degrades rate limiting.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	status := "healthy"
	code := http.StatusOK

	if h.database != nil {
		if err := h.database.PingContext(ctx); err != nil {
			checks["database"] = "unreachable"
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}

	switch {
	case h.cache == nil:
		checks["redis"] = "disabled"
	case h.cache.PingContext(ctx) != nil:
		checks["redis"] = "unreachable"
		if code == http.StatusOK {
			status = "degraded"
		}
	default:
		checks["redis"] = "ok"
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": h.service,
		"checks":  checks,
	})
}
