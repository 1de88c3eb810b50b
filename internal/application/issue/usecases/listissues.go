package usecases

import (
	"context"
	"time"

	"issuedesk/internal/application/issue/dto"
	"issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/domain/setting"
	"issuedesk/internal/shared/biztime"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/utils"
)

// ListIssuesQuery filters combine conjunctively. SubmitFrom and SubmitTo are
// calendar days in the business time zone, both inclusive.
type ListIssuesQuery struct {
	Actor      issue.Actor
	Statuses   []vo.IssueStatus
	ModelIDs   []uint
	Search     string
	SubmitFrom *time.Time
	SubmitTo   *time.Time
	ParentID   *uint
	SortBy     string
	Page       int
	PageSize   int
}

type ListIssuesResult struct {
	Issues     []dto.IssueListItemDTO
	TotalCount int64
	Page       int
	PageSize   int
}

type ListIssuesUseCase struct {
	issueRepo   issue.Repository
	slaProvider setting.SLAProvider
	logger      logger.Interface
}

func NewListIssuesUseCase(
	issueRepo issue.Repository,
	slaProvider setting.SLAProvider,
	logger logger.Interface,
) *ListIssuesUseCase {
	return &ListIssuesUseCase{
		issueRepo:   issueRepo,
		slaProvider: slaProvider,
		logger:      logger,
	}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error) {
	uc.logger.Infow("executing list issues use case",
		"role", query.Actor.Role,
		"page", query.Page,
		"page_size", query.PageSize)

	for _, s := range query.Statuses {
		if !s.IsValid() {
			return nil, errors.NewValidationError("invalid status filter: " + s.String())
		}
	}

	if query.SubmitFrom != nil && query.SubmitTo != nil && query.SubmitTo.Before(*query.SubmitFrom) {
		return nil, errors.NewValidationError("submit date range end is before its start")
	}

	page := utils.ValidatePagination(query.Page, query.PageSize)

	filter := issue.Filter{
		Statuses:   query.Statuses,
		ModelIDs:   query.ModelIDs,
		Search:     query.Search,
		SubmitFrom: query.SubmitFrom,
		SubmitTo:   query.SubmitTo,
		ParentID:   query.ParentID,
		SortBy:     issue.ParseSortKey(query.SortBy),
		Page:       page.Page,
		PageSize:   page.PageSize,
	}

	// non-staff only ever see what they submitted themselves
	if !query.Actor.Role.IsStaff() {
		if query.Actor.UserID == nil {
			return &ListIssuesResult{Issues: []dto.IssueListItemDTO{}, Page: page.Page, PageSize: page.PageSize}, nil
		}
		filter.CreatorID = query.Actor.UserID
	}

	issues, total, err := uc.issueRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues", "error", err)
		return nil, errors.NewInternalError("failed to list issues")
	}

	warningDays := uc.slaProvider.WarningDays(ctx).Value
	now := biztime.NowUTC()

	items := make([]dto.IssueListItemDTO, 0, len(issues))
	for _, i := range issues {
		state := issue.EvaluateSLA(i.Status(), i.TargetDate(), now, warningDays)
		items = append(items, dto.ToIssueListItemDTO(i, state))
	}

	uc.logger.Infow("issues listed successfully", "count", len(items), "total", total)

	return &ListIssuesResult{
		Issues:     items,
		TotalCount: total,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}, nil
}
