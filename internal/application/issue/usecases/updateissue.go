package usecases

import (
	"context"
	"fmt"
	"strings"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

type UpdateIssueCommand struct {
	IssueID uint
	Patch   issue.IssuePatch
	Actor   issue.Actor
}

type UpdateIssueResult struct {
	IssueID   uint                `json:"issueId"`
	Changes   []issue.FieldChange `json:"changes"`
	UpdatedAt string              `json:"updatedAt"`
}

// UpdateIssueUseCase applies a partial update and writes one internal
// FIELD_CHANGE comment per tracked field whose value actually changed, all
// in one transaction.
type UpdateIssueUseCase struct {
	issueRepo   issue.Repository
	commentRepo issue.CommentRepository
	fieldAuth   FieldAuthorizer
	txMgr       *db.TransactionManager
	logger      logger.Interface
}

// NewUpdateIssueUseCase accepts a nil fieldAuth, in which case every field
// is writable.
func NewUpdateIssueUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	fieldAuth FieldAuthorizer,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UpdateIssueUseCase {
	return &UpdateIssueUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		fieldAuth:   fieldAuth,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *UpdateIssueUseCase) Execute(ctx context.Context, cmd UpdateIssueCommand) (*UpdateIssueResult, error) {
	fields := cmd.Patch.SuppliedFields()
	uc.logger.Infow("executing update issue use case", "issue_id", cmd.IssueID, "fields", fields)

	if len(fields) == 0 {
		return nil, errors.NewValidationError("no fields to update")
	}

	if err := cmd.Patch.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if uc.fieldAuth != nil {
		denied, err := uc.fieldAuth.DeniedFields(cmd.Actor.Role, fields)
		if err != nil {
			uc.logger.Errorw("failed to check field permissions", "issue_id", cmd.IssueID, "error", err)
			return nil, errors.NewInternalError("failed to check permissions")
		}
		if len(denied) > 0 {
			uc.logger.Warnw("field update denied", "issue_id", cmd.IssueID, "role", cmd.Actor.Role, "denied", denied)
			return nil, errors.NewForbiddenError(
				fmt.Sprintf("role %s cannot modify the requested fields", cmd.Actor.Role),
				strings.Join(denied, ","),
			)
		}
	}

	var (
		i       *issue.Issue
		changes []issue.FieldChange
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		i, err = loadIssue(txCtx, uc.issueRepo, uc.logger, cmd.IssueID)
		if err != nil {
			return err
		}

		changes = issue.DiffPatch(i, cmd.Patch)
		if err := i.ApplyPatch(cmd.Patch); err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.issueRepo.Update(txCtx, i); err != nil {
			return fmt.Errorf("failed to update issue: %w", err)
		}
		for _, change := range changes {
			c, err := issue.NewFieldChangeComment(i.ID(), cmd.Actor, change)
			if err != nil {
				return fmt.Errorf("failed to build field change comment for %s: %w", change.Field, err)
			}
			if err := uc.commentRepo.Create(txCtx, c); err != nil {
				return fmt.Errorf("failed to save field change comment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to update issue", "issue_id", cmd.IssueID, "error", err)
		return nil, errors.NewInternalError("failed to update issue")
	}

	uc.logger.Infow("issue updated successfully", "issue_id", cmd.IssueID, "changes", len(changes))

	return &UpdateIssueResult{
		IssueID:   i.ID(),
		Changes:   changes,
		UpdatedAt: i.UpdatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
