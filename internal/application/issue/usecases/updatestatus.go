package usecases

import (
	"context"
	"fmt"

	"issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

type UpdateStatusCommand struct {
	IssueID   uint
	NewStatus vo.IssueStatus
	Actor     issue.Actor
}

type UpdateStatusResult struct {
	IssueID   uint   `json:"issueId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	Changed   bool   `json:"changed"`
	UpdatedAt string `json:"updatedAt"`
}

type UpdateStatusUseCase struct {
	issueRepo   issue.Repository
	commentRepo issue.CommentRepository
	txMgr       *db.TransactionManager
	logger      logger.Interface
}

func NewUpdateStatusUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
	uc.logger.Infow("executing update status use case", "issue_id", cmd.IssueID, "new_status", cmd.NewStatus)

	if !cmd.NewStatus.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid status: %s", cmd.NewStatus))
	}

	var (
		i         *issue.Issue
		oldStatus vo.IssueStatus
		changed   bool
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		i, err = loadIssue(txCtx, uc.issueRepo, uc.logger, cmd.IssueID)
		if err != nil {
			return err
		}

		oldStatus = i.Status()
		changed, err = i.ChangeStatus(cmd.NewStatus)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if !changed {
			return nil
		}

		comment, err := issue.NewStatusChangeComment(i.ID(), cmd.Actor, oldStatus, cmd.NewStatus)
		if err != nil {
			return fmt.Errorf("failed to build status change comment: %w", err)
		}
		if err := uc.issueRepo.Update(txCtx, i); err != nil {
			return fmt.Errorf("failed to update issue: %w", err)
		}
		if err := uc.commentRepo.Create(txCtx, comment); err != nil {
			return fmt.Errorf("failed to save status change comment: %w", err)
		}
		return nil
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to change issue status", "issue_id", cmd.IssueID, "error", err)
		return nil, errors.NewInternalError("failed to update issue status")
	}

	if !changed {
		uc.logger.Infow("status unchanged, nothing recorded", "issue_id", cmd.IssueID, "status", oldStatus)
		return &UpdateStatusResult{
			IssueID:   i.ID(),
			OldStatus: oldStatus.String(),
			NewStatus: oldStatus.String(),
			UpdatedAt: i.UpdatedAt().Format("2006-01-02T15:04:05Z07:00"),
		}, nil
	}

	uc.logger.Infow("issue status changed successfully", "issue_id", cmd.IssueID, "old_status", oldStatus, "new_status", cmd.NewStatus)

	return &UpdateStatusResult{
		IssueID:   i.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: i.Status().String(),
		Changed:   true,
		UpdatedAt: i.UpdatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
