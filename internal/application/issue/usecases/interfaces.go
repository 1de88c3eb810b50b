package usecases

import (
	"context"

	"issuedesk/internal/application/issue/dto"
	"issuedesk/internal/shared/authorization"
)

// FieldAuthorizer reports which of the supplied patch fields the role may
// not write. The casbin enforcer satisfies it.
type FieldAuthorizer interface {
	DeniedFields(role authorization.UserRole, fields []string) ([]string, error)
}

type CreateIssueExecutor interface {
	Execute(ctx context.Context, cmd CreateIssueCommand) (*CreateIssueResult, error)
}

type UpdateIssueExecutor interface {
	Execute(ctx context.Context, cmd UpdateIssueCommand) (*UpdateIssueResult, error)
}

type UpdateStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error)
}

type DeleteIssueExecutor interface {
	Execute(ctx context.Context, cmd DeleteIssueCommand) (*DeleteIssueResult, error)
}

type GetIssueExecutor interface {
	Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error)
}

type ListIssuesExecutor interface {
	Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error)
}

type EditCommentExecutor interface {
	Execute(ctx context.Context, cmd EditCommentCommand) (*dto.CommentDTO, error)
}

type MergeIssuesExecutor interface {
	Execute(ctx context.Context, cmd MergeIssuesCommand) (*MergeIssuesResult, error)
}

type UnmergeIssueExecutor interface {
	Execute(ctx context.Context, cmd UnmergeIssueCommand) (*UnmergeIssueResult, error)
}

type RegisterAttachmentExecutor interface {
	Execute(ctx context.Context, cmd RegisterAttachmentCommand) (*dto.AttachmentDTO, error)
}
