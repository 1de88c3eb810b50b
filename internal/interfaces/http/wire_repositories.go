package http

import (
	"gorm.io/gorm"

	"issuedesk/internal/infrastructure/repository"
	"issuedesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	issueRepo      *repository.IssueRepository
	commentRepo    *repository.CommentRepository
	attachmentRepo *repository.AttachmentRepository
	settingRepo    *repository.SystemSettingRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		issueRepo:      repository.NewIssueRepository(db, log),
		commentRepo:    repository.NewCommentRepository(db, log),
		attachmentRepo: repository.NewAttachmentRepository(db, log),
		settingRepo:    repository.NewSystemSettingRepository(db, log),
	}
}
