// Package testutil opens throwaway databases for repository and use case
// tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"issuedesk/internal/infrastructure/persistence/models"
)

// AllModels lists every table owned by the application.
func AllModels() []any {
	return []any{
		&models.IssueModel{},
		&models.CommentModel{},
		&models.AttachmentModel{},
		&models.SystemSettingModel{},
	}
}

// NewSQLiteDB returns an in-memory database with the schema applied. A
// single connection keeps every query on the same memory store.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(AllModels()...))
	return gdb
}
