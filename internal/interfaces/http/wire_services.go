package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"issuedesk/internal/infrastructure/config"
	"issuedesk/internal/infrastructure/permission"
	"issuedesk/internal/shared/logger"
)

// initRedis connects to Redis. Redis only backs rate limiting, so an
// unreachable server is logged and nil is returned instead of failing.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unavailable, public rate limiting disabled", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully")

	return redisClient
}

// initEnforcer loads the casbin policies and installs the default role
// matrix. Rules already stored are kept.
func initEnforcer(db *gorm.DB, log logger.Interface) (*permission.Enforcer, error) {
	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitIssuePermissions(enforcer, log); err != nil {
		return nil, fmt.Errorf("failed to initialize permissions: %w", err)
	}
	return enforcer, nil
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
