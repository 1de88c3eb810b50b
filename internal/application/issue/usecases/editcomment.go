package usecases

import (
	"context"
	"errors"
	"fmt"

	"issuedesk/internal/application/issue/dto"
	"issuedesk/internal/domain/issue"
	apperrors "issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/services/markdown"
)

type EditCommentCommand struct {
	IssueID   uint
	CommentID uint
	Content   string
	Actor     issue.Actor
}

// EditCommentUseCase replaces the body of a MESSAGE comment in place. Edits
// are not audited.
type EditCommentUseCase struct {
	issueRepo   issue.Repository
	commentRepo issue.CommentRepository
	renderer    markdown.Renderer
	logger      logger.Interface
}

func NewEditCommentUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *EditCommentUseCase {
	return &EditCommentUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *EditCommentUseCase) Execute(ctx context.Context, cmd EditCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing edit comment use case", "issue_id", cmd.IssueID, "comment_id", cmd.CommentID)

	if cmd.CommentID == 0 {
		return nil, apperrors.NewValidationError("comment ID is required")
	}

	target, err := loadIssue(ctx, uc.issueRepo, uc.logger, cmd.IssueID)
	if err != nil {
		return nil, err
	}
	if !target.CanBeViewedBy(cmd.Actor) {
		return nil, apperrors.NewForbiddenError("permission denied: cannot access issue")
	}

	comment, err := uc.commentRepo.GetByID(ctx, cmd.CommentID)
	if err != nil {
		if errors.Is(err, issue.ErrCommentNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("comment %d not found", cmd.CommentID))
		}
		uc.logger.Errorw("failed to get comment", "comment_id", cmd.CommentID, "error", err)
		return nil, apperrors.NewInternalError("failed to get comment")
	}

	// internal comments do not exist for external actors
	if comment.IssueID() != target.ID() || (comment.IsInternal() && !cmd.Actor.IsInternal()) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("comment %d not found", cmd.CommentID))
	}

	if err := comment.EditContent(cmd.Content); err != nil {
		if errors.Is(err, issue.ErrCommentNotEditable) {
			return nil, apperrors.NewConflictError(err.Error())
		}
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Update(ctx, comment); err != nil {
		uc.logger.Errorw("failed to update comment", "comment_id", cmd.CommentID, "error", err)
		return nil, apperrors.NewInternalError("failed to update comment")
	}

	uc.logger.Infow("comment edited successfully", "issue_id", cmd.IssueID, "comment_id", cmd.CommentID)

	result := dto.ToCommentDTO(comment, uc.renderer)
	return &result, nil
}
