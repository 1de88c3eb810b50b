package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/infrastructure/persistence/mappers"
	"issuedesk/internal/infrastructure/persistence/models"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/logger"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
	logger logger.Interface
}

func NewAttachmentRepository(gormDB *gorm.DB, log logger.Interface) *AttachmentRepository {
	return &AttachmentRepository{
		db:     gormDB,
		mapper: mappers.NewIssueMapper(),
		logger: log,
	}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *issue.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create attachment", "filename", a.Filename(), "error", err)
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	a.SetID(model.ID)
	return nil
}

func (r *AttachmentRepository) LinkToIssue(ctx context.Context, ids []uint, issueID uint) error {
	ids = issue.DedupeIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.AttachmentModel{}).
		Where("id IN ? AND issue_id IS NULL", ids).
		Update("issue_id", issueID)
	if result.Error != nil {
		return fmt.Errorf("failed to link attachments to issue: %w", result.Error)
	}
	if result.RowsAffected != int64(len(ids)) {
		r.logger.Warnw("attachments unavailable for linking",
			"issue_id", issueID,
			"requested", len(ids),
			"linked", result.RowsAffected,
		)
		return fmt.Errorf("%w: %d of %d linkable", issue.ErrAttachmentUnavailable, result.RowsAffected, len(ids))
	}
	return nil
}

func (r *AttachmentRepository) LinkToComment(ctx context.Context, ids []uint, issueID, commentID uint, isInternal bool) error {
	ids = issue.DedupeIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.AttachmentModel{}).
		Where("id IN ? AND comment_id IS NULL AND (issue_id IS NULL OR issue_id = ?)", ids, issueID).
		Updates(map[string]any{
			"issue_id":    issueID,
			"comment_id":  commentID,
			"is_internal": isInternal,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to link attachments to comment: %w", result.Error)
	}
	if result.RowsAffected != int64(len(ids)) {
		r.logger.Warnw("attachments unavailable for linking",
			"issue_id", issueID,
			"comment_id", commentID,
			"requested", len(ids),
			"linked", result.RowsAffected,
		)
		return fmt.Errorf("%w: %d of %d linkable", issue.ErrAttachmentUnavailable, result.RowsAffected, len(ids))
	}
	return nil
}

// ListByIssue returns every attachment bound to the issue directly or
// through one of its comments.
func (r *AttachmentRepository) ListByIssue(ctx context.Context, issueID uint) ([]*issue.Attachment, error) {
	var attachmentModels []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("issue_id = ?", issueID).Order("id ASC").Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	atts := make([]*issue.Attachment, 0, len(attachmentModels))
	for idx := range attachmentModels {
		atts = append(atts, r.mapper.AttachmentToDomain(&attachmentModels[idx]))
	}
	return atts, nil
}

func (r *AttachmentRepository) DeleteByIssueOrComments(ctx context.Context, issueID uint, commentIDs []uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("issue_id = ?", issueID)
	if len(commentIDs) > 0 {
		query = query.Or("comment_id IN ?", commentIDs)
	}

	result := query.Delete(&models.AttachmentModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete attachments: %w", result.Error)
	}
	return result.RowsAffected, nil
}
