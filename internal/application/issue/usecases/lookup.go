package usecases

import (
	"context"
	"errors"
	"fmt"

	"issuedesk/internal/domain/issue"
	apperrors "issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

// loadIssue fetches an issue and translates the repository error into the
// AppError handlers expect.
func loadIssue(ctx context.Context, repo issue.Repository, log logger.Interface, issueID uint) (*issue.Issue, error) {
	if issueID == 0 {
		return nil, apperrors.NewValidationError("issue ID is required")
	}
	i, err := repo.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("issue %d not found", issueID))
		}
		log.Errorw("failed to get issue", "issue_id", issueID, "error", err)
		return nil, apperrors.NewInternalError("failed to get issue")
	}
	return i, nil
}

func loadIssueByTrackingCode(ctx context.Context, repo issue.Repository, log logger.Interface, code string) (*issue.Issue, error) {
	if code == "" {
		return nil, apperrors.NewValidationError("tracking code is required")
	}
	i, err := repo.GetByTrackingCode(ctx, code)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		log.Errorw("failed to get issue by tracking code", "error", err)
		return nil, apperrors.NewInternalError("failed to get issue")
	}
	return i, nil
}
