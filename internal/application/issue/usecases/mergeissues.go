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

type MergeIssuesCommand struct {
	ParentID uint
	ChildIDs []uint
	Actor    issue.Actor
}

type MergeIssuesResult struct {
	ParentID uint   `json:"parentId"`
	ChildIDs []uint `json:"childIds"`
}

// MergeIssuesUseCase consolidates duplicates under one tracking issue. A
// child already linked elsewhere is re-parented.
type MergeIssuesUseCase struct {
	issueRepo   issue.Repository
	commentRepo issue.CommentRepository
	txMgr       *db.TransactionManager
	logger      logger.Interface
}

func NewMergeIssuesUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *MergeIssuesUseCase {
	return &MergeIssuesUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *MergeIssuesUseCase) Execute(ctx context.Context, cmd MergeIssuesCommand) (*MergeIssuesResult, error) {
	uc.logger.Infow("executing merge issues use case", "parent_id", cmd.ParentID, "child_ids", cmd.ChildIDs)

	childIDs := issue.DedupeIDs(cmd.ChildIDs)
	if len(childIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one child issue is required")
	}
	for _, id := range childIDs {
		if id == cmd.ParentID {
			return nil, apperrors.NewValidationError(issue.ErrSelfMerge.Error())
		}
	}

	var parentID uint
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		parent, children, err := uc.loadForMerge(txCtx, cmd.ParentID, childIDs)
		if err != nil {
			return err
		}
		parentID = parent.ID()

		for _, child := range children {
			if err := child.MergeInto(parent.ID()); err != nil {
				return apperrors.NewValidationError(err.Error())
			}
			if err := uc.issueRepo.Update(txCtx, child); err != nil {
				return fmt.Errorf("failed to update child issue %d: %w", child.ID(), err)
			}
			note, err := issue.NewSystemComment(child.ID(), cmd.Actor, issue.MergeChildNote(parent.ID()), false)
			if err != nil {
				return err
			}
			if err := uc.commentRepo.Create(txCtx, note); err != nil {
				return fmt.Errorf("failed to save merge note on issue %d: %w", child.ID(), err)
			}
		}

		note, err := issue.NewSystemComment(parent.ID(), cmd.Actor, issue.MergeParentNote(childIDs), true)
		if err != nil {
			return err
		}
		if err := uc.commentRepo.Create(txCtx, note); err != nil {
			return fmt.Errorf("failed to save merge note on parent: %w", err)
		}
		return nil
	})
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to merge issues", "parent_id", cmd.ParentID, "child_ids", childIDs, "error", err)
		return nil, apperrors.NewInternalError("failed to merge issues")
	}

	uc.logger.Infow("issues merged successfully", "parent_id", parentID, "child_ids", childIDs)

	return &MergeIssuesResult{
		ParentID: parentID,
		ChildIDs: childIDs,
	}, nil
}

// loadForMerge reads and validates every row the merge depends on. Called
// inside the merge transaction so the rows stay locked until commit.
func (uc *MergeIssuesUseCase) loadForMerge(ctx context.Context, parentID uint, childIDs []uint) (*issue.Issue, []*issue.Issue, error) {
	parent, err := loadIssue(ctx, uc.issueRepo, uc.logger, parentID)
	if err != nil {
		return nil, nil, err
	}

	children, err := uc.issueRepo.GetByIDs(ctx, childIDs)
	if err != nil {
		uc.logger.Errorw("failed to get child issues", "child_ids", childIDs, "error", err)
		return nil, nil, apperrors.NewInternalError("failed to get child issues")
	}
	if missing := missingIDs(childIDs, children); len(missing) > 0 {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("issues not found: %v", missing))
	}

	parentsAmong, err := uc.issueRepo.ParentsAmong(ctx, childIDs)
	if err != nil {
		uc.logger.Errorw("failed to check child consolidation state", "child_ids", childIDs, "error", err)
		return nil, nil, apperrors.NewInternalError("failed to check child issues")
	}

	if err := issue.ValidateMerge(parent, children, parentsAmong); err != nil {
		uc.logger.Warnw("merge rejected", "parent_id", parentID, "error", err)
		if errors.Is(err, issue.ErrSelfMerge) {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		return nil, nil, apperrors.NewConflictError(err.Error())
	}
	return parent, children, nil
}

func missingIDs(want []uint, got []*issue.Issue) []uint {
	found := make(map[uint]bool, len(got))
	for _, i := range got {
		found[i.ID()] = true
	}
	var missing []uint
	for _, id := range want {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
