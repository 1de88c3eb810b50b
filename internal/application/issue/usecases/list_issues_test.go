package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/authorization"
	"issuedesk/internal/shared/biztime"
	apperrors "issuedesk/internal/shared/errors"
)

func TestListIssuesUseCase_RoleScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.newIssue(t, userActor, "Mine 1")
	env.newIssue(t, userActor, "Mine 2")
	env.newIssue(t, otherUser, "Theirs")
	env.newIssue(t, guestActor, "Anonymous")

	tests := []struct {
		name      string
		actor     issue.Actor
		wantTotal int64
	}{
		{"admin sees all", adminActor, 4},
		{"support sees all", supportActor, 4},
		{"user sees own", userActor, 2},
		{"other user sees own", otherUser, 1},
		{"anonymous sees nothing", issue.Actor{Role: authorization.RoleUser}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.listUseCase().Execute(ctx, ListIssuesQuery{Actor: tt.actor})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.TotalCount)
			assert.Len(t, result.Issues, int(tt.wantTotal))
		})
	}
}

func TestListIssuesUseCase_SLAState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.sla.targetDays = 5
	env.sla.warningDays = 2

	create := func(title string, submit time.Time) uint {
		res, err := env.createUseCase().Execute(ctx, CreateIssueCommand{
			Actor:        adminActor,
			Title:        title,
			Description:  "d",
			ModelID:      1,
			ReporterName: "r",
			SubmitDate:   &submit,
		})
		require.NoError(t, err)
		return res.IssueID
	}

	now := biztime.NowUTC()
	overdue := create("overdue", now.AddDate(0, 0, -30))
	met := create("met", now.AddDate(0, 0, -30))
	onTrack := create("on track", now)

	_, err := env.statusUseCase().Execute(ctx, UpdateStatusCommand{IssueID: met, NewStatus: vo.StatusResolved, Actor: devActor})
	require.NoError(t, err)

	// target inside the warning horizon
	warning := create("warning", now)
	soon := biztime.AddWorkingDays(biztime.ToBizTimezone(now), 1).UTC()
	_, err = env.updateUseCase(nil).Execute(ctx, UpdateIssueCommand{
		IssueID: warning,
		Patch:   issue.IssuePatch{TargetDate: &soon},
		Actor:   adminActor,
	})
	require.NoError(t, err)

	result, err := env.listUseCase().Execute(ctx, ListIssuesQuery{Actor: adminActor, PageSize: -1})
	require.NoError(t, err)

	states := map[uint]string{}
	for _, it := range result.Issues {
		states[it.ID] = it.SLAState
	}
	assert.Equal(t, string(issue.SLAOverdue), states[overdue])
	assert.Equal(t, string(issue.SLAMet), states[met])
	assert.Equal(t, string(issue.SLAOnTrack), states[onTrack])
	assert.Equal(t, string(issue.SLAWarning), states[warning])
}

func TestListIssuesUseCase_FiltersAndPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		env.newIssue(t, adminActor, title)
	}
	processing := env.newIssue(t, adminActor, "six")
	_, err := env.statusUseCase().Execute(ctx, UpdateStatusCommand{IssueID: processing, NewStatus: vo.StatusProcessing, Actor: devActor})
	require.NoError(t, err)

	t.Run("page", func(t *testing.T) {
		result, err := env.listUseCase().Execute(ctx, ListIssuesQuery{Actor: adminActor, Page: 2, PageSize: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(6), result.TotalCount)
		assert.Len(t, result.Issues, 2)
		assert.Equal(t, 2, result.Page)
	})

	t.Run("all", func(t *testing.T) {
		result, err := env.listUseCase().Execute(ctx, ListIssuesQuery{Actor: adminActor, PageSize: -1})
		require.NoError(t, err)
		assert.Len(t, result.Issues, 6)
		assert.Equal(t, -1, result.PageSize)
	})

	t.Run("status", func(t *testing.T) {
		result, err := env.listUseCase().Execute(ctx, ListIssuesQuery{Actor: adminActor, Statuses: []vo.IssueStatus{vo.StatusProcessing}})
		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, processing, result.Issues[0].ID)
	})

	t.Run("search", func(t *testing.T) {
		result, err := env.listUseCase().Execute(ctx, ListIssuesQuery{Actor: adminActor, Search: "thr"})
		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, "three", result.Issues[0].Title)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := env.listUseCase().Execute(ctx, ListIssuesQuery{Actor: adminActor, Statuses: []vo.IssueStatus{"OPEN"}})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("inverted range", func(t *testing.T) {
		from := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		_, err := env.listUseCase().Execute(ctx, ListIssuesQuery{Actor: adminActor, SubmitFrom: &from, SubmitTo: &to})
		assert.True(t, apperrors.IsValidationError(err))
	})
}

func TestListIssuesUseCase_StoreFailure(t *testing.T) {
	repo := &mockIssueRepository{
		ListFunc: func(ctx context.Context, filter issue.Filter) ([]*issue.Issue, int64, error) {
			return nil, 0, errStoreDown
		},
	}
	uc := NewListIssuesUseCase(repo, &mockSLAProvider{warningDays: 1}, newTestEnv(t).log)

	result, err := uc.Execute(context.Background(), ListIssuesQuery{Actor: adminActor})

	assert.Nil(t, result)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}

func TestListIssuesUseCase_ScopeReachesRepository(t *testing.T) {
	var got issue.Filter
	repo := &mockIssueRepository{
		ListFunc: func(ctx context.Context, filter issue.Filter) ([]*issue.Issue, int64, error) {
			got = filter
			return nil, 0, nil
		},
	}
	uc := NewListIssuesUseCase(repo, &mockSLAProvider{warningDays: 1}, newTestEnv(t).log)

	_, err := uc.Execute(context.Background(), ListIssuesQuery{Actor: userActor, SortBy: "severity", ParentID: uintPtr(3)})
	require.NoError(t, err)

	require.NotNil(t, got.CreatorID)
	assert.Equal(t, *userActor.UserID, *got.CreatorID)
	assert.Equal(t, issue.SortBySeverity, got.SortBy)
	assert.Equal(t, uint(3), *got.ParentID)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 20, got.PageSize)
}
