package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/infrastructure/persistence/mappers"
	"issuedesk/internal/infrastructure/persistence/models"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/logger"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
	logger logger.Interface
}

func NewCommentRepository(gormDB *gorm.DB, log logger.Interface) *CommentRepository {
	return &CommentRepository{
		db:     gormDB,
		mapper: mappers.NewIssueMapper(),
		logger: log,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *issue.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create comment", "issue_id", c.IssueID(), "type", c.Type(), "error", err)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return c.SetID(model.ID)
}

// Update persists an edited body. Only content and updated_at can change.
func (r *CommentRepository) Update(ctx context.Context, c *issue.Comment) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.CommentModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{
			"content":    c.Content(),
			"updated_at": c.UpdatedAt().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return issue.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*issue.Comment, error) {
	var model models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issue.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	c, err := r.mapper.CommentToDomain(&model)
	if err != nil {
		return nil, err
	}

	var attachmentModels []models.AttachmentModel
	if err := tx.Where("comment_id = ?", id).Order("id ASC").Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load comment attachments: %w", err)
	}
	atts := make([]*issue.Attachment, 0, len(attachmentModels))
	for idx := range attachmentModels {
		atts = append(atts, r.mapper.AttachmentToDomain(&attachmentModels[idx]))
	}
	c.SetAttachments(atts)

	return c, nil
}

// ListByIssue returns the timeline oldest first, each comment carrying its
// own attachments.
func (r *CommentRepository) ListByIssue(ctx context.Context, issueID uint) ([]*issue.Comment, error) {
	var commentModels []models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("issue_id = ?", issueID).
		Order("created_at ASC, id ASC").
		Find(&commentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	if len(commentModels) == 0 {
		return []*issue.Comment{}, nil
	}

	ids := make([]uint, len(commentModels))
	for idx, m := range commentModels {
		ids[idx] = m.ID
	}

	// Load all comment attachments in a single query
	var attachmentModels []models.AttachmentModel
	if err := tx.Where("comment_id IN ?", ids).Order("id ASC").Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load comment attachments: %w", err)
	}
	byComment := make(map[uint][]*issue.Attachment, len(attachmentModels))
	for idx := range attachmentModels {
		am := &attachmentModels[idx]
		byComment[*am.CommentID] = append(byComment[*am.CommentID], r.mapper.AttachmentToDomain(am))
	}

	comments := make([]*issue.Comment, 0, len(commentModels))
	for idx := range commentModels {
		c, err := r.mapper.CommentToDomain(&commentModels[idx])
		if err != nil {
			return nil, err
		}
		c.SetAttachments(byComment[c.ID()])
		comments = append(comments, c)
	}

	return comments, nil
}

func (r *CommentRepository) IDsByIssue(ctx context.Context, issueID uint) ([]uint, error) {
	var ids []uint
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.CommentModel{}).Where("issue_id = ?", issueID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list comment ids: %w", err)
	}
	return ids, nil
}

func (r *CommentRepository) DeleteByIssue(ctx context.Context, issueID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("issue_id = ?", issueID).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
