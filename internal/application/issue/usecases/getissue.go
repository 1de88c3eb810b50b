package usecases

import (
	"context"

	"issuedesk/internal/application/issue/dto"
	"issuedesk/internal/domain/issue"
	"issuedesk/internal/shared/authorization"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/services/markdown"
)

// GetIssueQuery looks an issue up by ID, or by TrackingCode for the public
// status page. Tracking code lookups always get the external view.
type GetIssueQuery struct {
	IssueID      uint
	TrackingCode string
	Actor        issue.Actor
}

type GetIssueUseCase struct {
	issueRepo      issue.Repository
	commentRepo    issue.CommentRepository
	attachmentRepo issue.AttachmentRepository
	renderer       markdown.Renderer
	logger         logger.Interface
}

func NewGetIssueUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	attachmentRepo issue.AttachmentRepository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetIssueUseCase {
	return &GetIssueUseCase{
		issueRepo:      issueRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		renderer:       renderer,
		logger:         logger,
	}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error) {
	uc.logger.Infow("executing get issue use case", "issue_id", query.IssueID, "by_tracking_code", query.TrackingCode != "")

	var (
		target *issue.Issue
		viewer authorization.UserRole
		err    error
	)

	if query.TrackingCode != "" {
		target, err = loadIssueByTrackingCode(ctx, uc.issueRepo, uc.logger, query.TrackingCode)
		if err != nil {
			return nil, err
		}
		viewer = authorization.RoleGuest
	} else {
		target, err = loadIssue(ctx, uc.issueRepo, uc.logger, query.IssueID)
		if err != nil {
			return nil, err
		}
		if !target.CanBeViewedBy(query.Actor) {
			uc.logger.Warnw("user cannot view issue", "issue_id", query.IssueID, "role", query.Actor.Role)
			return nil, errors.NewForbiddenError("permission denied: cannot view issue")
		}
		viewer = query.Actor.Role
	}

	comments, err := uc.commentRepo.ListByIssue(ctx, target.ID())
	if err != nil {
		uc.logger.Errorw("failed to load comments", "issue_id", target.ID(), "error", err)
		return nil, errors.NewInternalError("failed to load comments")
	}

	attachments, err := uc.attachmentRepo.ListByIssue(ctx, target.ID())
	if err != nil {
		uc.logger.Errorw("failed to load attachments", "issue_id", target.ID(), "error", err)
		return nil, errors.NewInternalError("failed to load attachments")
	}

	children, err := uc.issueRepo.ListChildren(ctx, target.ID())
	if err != nil {
		uc.logger.Errorw("failed to load child issues", "issue_id", target.ID(), "error", err)
		return nil, errors.NewInternalError("failed to load child issues")
	}

	comments, attachments = issue.FilterVisible(comments, attachments, viewer)

	result := dto.ToIssueDTO(target, comments, attachments, children, uc.renderer)

	uc.logger.Infow("issue retrieved successfully", "issue_id", target.ID(), "comments", len(comments))
	return result, nil
}
