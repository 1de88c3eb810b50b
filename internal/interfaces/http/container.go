package http

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"issuedesk/internal/infrastructure/auth"
	"issuedesk/internal/infrastructure/config"
	"issuedesk/internal/infrastructure/metrics"
	"issuedesk/internal/infrastructure/permission"
	"issuedesk/internal/infrastructure/ratelimit"
	"issuedesk/internal/interfaces/http/middleware"
	"issuedesk/internal/shared/logger"
)

// Container holds every dependency of the HTTP layer.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	sqlDB  *sql.DB
	cfg    *config.Config
	log    logger.Interface

	// nil when Redis is unreachable
	redis *redis.Client

	enforcer *permission.Enforcer
	metrics  *metrics.Metrics

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires repositories, use cases, handlers and middleware in
// dependency order.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	c := &Container{
		engine: gin.New(),
		db:     db,
		sqlDB:  sqlDB,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, casbin, repositories, metrics
	c.redis = initRedis(cfg, log)
	if c.enforcer, err = initEnforcer(db, log); err != nil {
		return nil, err
	}
	c.repos = newRepositories(db, log)
	c.metrics = metrics.New(sqlDB)

	// Section 2: Use cases and handlers
	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()

	// Section 3: Middlewares
	c.authMiddleware = middleware.NewAuthMiddleware(auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer), log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)

	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}
	c.rateLimiter = middleware.NewRateLimiter(limiter, cfg.RateLimit.PublicPerMinute, log)

	return c, nil
}
