// Package database owns the process-wide gorm handle used by the server and
// the migrate commands.
package database

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"issuedesk/internal/shared/config"
	"issuedesk/internal/shared/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

const slowQueryThreshold = 200 * time.Millisecond

var (
	mu      sync.RWMutex
	current *gorm.DB
)

// Init opens the configured store and replaces the shared handle. SQLite is
// limited to one open connection because it has a single writer.
func Init(cfg *config.DatabaseConfig) error {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(queryLog{}, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", driverName(cfg), err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if cfg.Driver == DriverSQLite {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
		}
	}

	mu.Lock()
	current = conn
	mu.Unlock()

	logger.Info("database connected", "driver", driverName(cfg), "database", cfg.Database, "path", cfg.Path)
	return nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverMySQL, "":
		return mysql.New(mysql.Config{DSN: cfg.GetDSN(), SkipInitializeWithVersion: true}), nil
	case DriverSQLite:
		if cfg.Path == "" {
			return sqlite.Open("file::memory:?cache=shared"), nil
		}
		return sqlite.Open(cfg.Path), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func driverName(cfg *config.DatabaseConfig) string {
	if cfg.Driver == "" {
		return DriverMySQL
	}
	return cfg.Driver
}

// Dialect maps the driver to the goose dialect name.
func Dialect(cfg *config.DatabaseConfig) string {
	if cfg.Driver == DriverSQLite {
		return "sqlite3"
	}
	return "mysql"
}

func Get() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Close is a no-op before Init.
func Close() error {
	mu.Lock()
	conn := current
	current = nil
	mu.Unlock()

	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	logger.Info("database connection closed")
	return nil
}

// queryLog forwards gorm output to the application logger by severity.
type queryLog struct{}

func (queryLog) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "select version()"):
	case strings.Contains(lower, "[error]"):
		logger.Error("database error", "details", msg)
	case strings.Contains(lower, "slow sql"):
		logger.Warn("slow query", "details", msg)
	default:
		logger.Debug("database query", "details", msg)
	}
}
