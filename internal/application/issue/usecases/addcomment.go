package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/shared/db"
	apperrors "issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

// AddCommentCommand targets an issue by ID, or by TrackingCode for guest
// replies. IsInternal is a request; external actors always post publicly.
type AddCommentCommand struct {
	IssueID       uint
	TrackingCode  string
	Actor         issue.Actor
	Content       string
	IsInternal    *bool
	AttachmentIDs []uint
}

type AddCommentResult struct {
	CommentID  uint      `json:"commentId"`
	IssueID    uint      `json:"issueId"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AddCommentUseCase struct {
	issueRepo      issue.Repository
	commentRepo    issue.CommentRepository
	attachmentRepo issue.AttachmentRepository
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewAddCommentUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	attachmentRepo issue.AttachmentRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		issueRepo:      issueRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "issue_id", cmd.IssueID, "by_tracking_code", cmd.TrackingCode != "")

	target, err := uc.resolveIssue(ctx, cmd)
	if err != nil {
		return nil, err
	}

	attachmentIDs := issue.DedupeIDs(cmd.AttachmentIDs)
	isInternal := issue.ResolveCommentVisibility(cmd.Actor.Role, cmd.IsInternal)

	comment, err := issue.NewMessageComment(target.ID(), cmd.Actor, cmd.Content, isInternal, len(attachmentIDs) > 0)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Create(txCtx, comment); err != nil {
			return fmt.Errorf("failed to save comment: %w", err)
		}
		if len(attachmentIDs) > 0 {
			if err := uc.attachmentRepo.LinkToComment(txCtx, attachmentIDs, target.ID(), comment.ID(), isInternal); err != nil {
				return fmt.Errorf("failed to link attachments: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, issue.ErrAttachmentUnavailable) {
			uc.logger.Warnw("attachment link rejected", "issue_id", target.ID(), "attachment_ids", attachmentIDs, "error", err)
			return nil, apperrors.NewValidationError(issue.ErrAttachmentUnavailable.Error())
		}
		uc.logger.Errorw("failed to add comment", "issue_id", target.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to add comment")
	}

	uc.logger.Infow("comment added successfully",
		"issue_id", target.ID(),
		"comment_id", comment.ID(),
		"is_internal", isInternal,
		"attachments", len(attachmentIDs),
	)

	return &AddCommentResult{
		CommentID:  comment.ID(),
		IssueID:    target.ID(),
		IsInternal: isInternal,
		CreatedAt:  comment.CreatedAt(),
	}, nil
}

// resolveIssue honours row-level access for lookups by ID. Knowing the
// tracking code is itself the credential for guest replies.
func (uc *AddCommentUseCase) resolveIssue(ctx context.Context, cmd AddCommentCommand) (*issue.Issue, error) {
	if cmd.TrackingCode != "" {
		return loadIssueByTrackingCode(ctx, uc.issueRepo, uc.logger, cmd.TrackingCode)
	}

	target, err := loadIssue(ctx, uc.issueRepo, uc.logger, cmd.IssueID)
	if err != nil {
		return nil, err
	}
	if !target.CanBeViewedBy(cmd.Actor) {
		uc.logger.Warnw("user cannot comment on issue", "issue_id", cmd.IssueID, "role", cmd.Actor.Role)
		return nil, apperrors.NewForbiddenError("permission denied: cannot access issue")
	}
	return target, nil
}
