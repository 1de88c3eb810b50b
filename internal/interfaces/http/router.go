package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"issuedesk/internal/infrastructure/config"
	"issuedesk/internal/interfaces/http/middleware"
	"issuedesk/internal/interfaces/http/routes"
	"issuedesk/internal/shared/logger"

	_ "issuedesk/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Metrics(r.metrics))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/health", r.hdlrs.healthHandler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))

	routes.SetupIssueRoutes(r.engine, &routes.IssueRouteConfig{
		IssueHandler:         r.hdlrs.issueHandler,
		AttachmentHandler:    r.hdlrs.attachmentHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupPublicRoutes(r.engine, &routes.PublicRouteConfig{
		PublicIssueHandler: r.hdlrs.publicIssueHandler,
		AttachmentHandler:  r.hdlrs.attachmentHandler,
		RateLimiter:        r.rateLimiter,
	})

	routes.SetupSettingRoutes(r.engine, &routes.SettingRouteConfig{
		Handler:              r.hdlrs.settingHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown releases connections owned by the router. The database handle
// belongs to the caller.
func (r *Router) Shutdown() {
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
