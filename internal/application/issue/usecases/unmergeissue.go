package usecases

import (
	"context"
	"errors"
	"fmt"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/shared/db"
	apperrors "issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

type UnmergeIssueCommand struct {
	IssueID uint
	Actor   issue.Actor
}

type UnmergeIssueResult struct {
	IssueID        uint `json:"issueId"`
	FormerParentID uint `json:"formerParentId"`
}

type UnmergeIssueUseCase struct {
	issueRepo   issue.Repository
	commentRepo issue.CommentRepository
	txMgr       *db.TransactionManager
	logger      logger.Interface
}

func NewUnmergeIssueUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UnmergeIssueUseCase {
	return &UnmergeIssueUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *UnmergeIssueUseCase) Execute(ctx context.Context, cmd UnmergeIssueCommand) (*UnmergeIssueResult, error) {
	uc.logger.Infow("executing unmerge issue use case", "issue_id", cmd.IssueID)

	var parentID uint
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		child, err := loadIssue(txCtx, uc.issueRepo, uc.logger, cmd.IssueID)
		if err != nil {
			return err
		}

		parentID, err = child.Unmerge()
		if err != nil {
			if errors.Is(err, issue.ErrNotMerged) {
				return apperrors.NewConflictError(fmt.Sprintf("issue %d is not merged into another issue", cmd.IssueID))
			}
			return apperrors.NewValidationError(err.Error())
		}

		parentNote, err := issue.NewSystemComment(parentID, cmd.Actor, issue.UnmergeParentNote(child.ID()), true)
		if err != nil {
			return err
		}
		childNote, err := issue.NewSystemComment(child.ID(), cmd.Actor, issue.UnmergeChildNote(parentID), false)
		if err != nil {
			return err
		}

		if err := uc.issueRepo.Update(txCtx, child); err != nil {
			return fmt.Errorf("failed to update issue: %w", err)
		}
		if err := uc.commentRepo.Create(txCtx, parentNote); err != nil {
			return fmt.Errorf("failed to save unmerge note on parent: %w", err)
		}
		if err := uc.commentRepo.Create(txCtx, childNote); err != nil {
			return fmt.Errorf("failed to save unmerge note on child: %w", err)
		}
		return nil
	})
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to unmerge issue", "issue_id", cmd.IssueID, "parent_id", parentID, "error", err)
		return nil, apperrors.NewInternalError("failed to unmerge issue")
	}

	uc.logger.Infow("issue unmerged successfully", "issue_id", cmd.IssueID, "former_parent_id", parentID)

	return &UnmergeIssueResult{
		IssueID:        cmd.IssueID,
		FormerParentID: parentID,
	}, nil
}
