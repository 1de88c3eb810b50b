package usecases

import (
	"context"
	"fmt"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

type DeleteIssueCommand struct {
	IssueID uint
	Actor   issue.Actor
}

type DeleteIssueResult struct {
	IssueID            uint  `json:"issueId"`
	DetachedChildren   int64 `json:"detachedChildren"`
	DeletedAttachments int64 `json:"deletedAttachments"`
}

// DeleteIssueUseCase removes an issue with everything hanging off it.
// Children survive as standalone issues.
type DeleteIssueUseCase struct {
	issueRepo      issue.Repository
	commentRepo    issue.CommentRepository
	attachmentRepo issue.AttachmentRepository
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewDeleteIssueUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	attachmentRepo issue.AttachmentRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *DeleteIssueUseCase {
	return &DeleteIssueUseCase{
		issueRepo:      issueRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *DeleteIssueUseCase) Execute(ctx context.Context, cmd DeleteIssueCommand) (*DeleteIssueResult, error) {
	uc.logger.Infow("executing delete issue use case", "issue_id", cmd.IssueID, "by", cmd.Actor.DisplayName())

	target, err := loadIssue(ctx, uc.issueRepo, uc.logger, cmd.IssueID)
	if err != nil {
		return nil, err
	}

	issueID := target.ID()
	result := &DeleteIssueResult{IssueID: issueID}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		detached, err := uc.issueRepo.DetachChildren(txCtx, issueID)
		if err != nil {
			return fmt.Errorf("failed to detach children: %w", err)
		}

		commentIDs, err := uc.commentRepo.IDsByIssue(txCtx, issueID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}

		deleted, err := uc.attachmentRepo.DeleteByIssueOrComments(txCtx, issueID, commentIDs)
		if err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}

		if err := uc.commentRepo.DeleteByIssue(txCtx, issueID); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}

		if err := uc.issueRepo.Delete(txCtx, issueID); err != nil {
			return fmt.Errorf("failed to delete issue: %w", err)
		}

		result.DetachedChildren = detached
		result.DeletedAttachments = deleted
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to delete issue", "issue_id", issueID, "error", err)
		return nil, errors.NewInternalError("failed to delete issue")
	}

	uc.logger.Infow("issue deleted successfully",
		"issue_id", issueID,
		"detached_children", result.DetachedChildren,
		"deleted_attachments", result.DeletedAttachments,
	)

	return result, nil
}
