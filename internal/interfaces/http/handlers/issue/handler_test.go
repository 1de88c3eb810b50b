package issue

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	issuedto "issuedesk/internal/application/issue/dto"
	"issuedesk/internal/application/issue/usecases"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/interfaces/http/handlers/testutil"
	"issuedesk/internal/shared/authorization"
	"issuedesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateIssueUC struct {
	result *usecases.CreateIssueResult
	err    error
	got    usecases.CreateIssueCommand
}

func (m *mockCreateIssueUC) Execute(_ context.Context, cmd usecases.CreateIssueCommand) (*usecases.CreateIssueResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateIssueUC struct {
	result *usecases.UpdateIssueResult
	err    error
	got    usecases.UpdateIssueCommand
}

func (m *mockUpdateIssueUC) Execute(_ context.Context, cmd usecases.UpdateIssueCommand) (*usecases.UpdateIssueResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateStatusUC struct {
	result *usecases.UpdateStatusResult
	err    error
	got    usecases.UpdateStatusCommand
}

func (m *mockUpdateStatusUC) Execute(_ context.Context, cmd usecases.UpdateStatusCommand) (*usecases.UpdateStatusResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockDeleteIssueUC struct {
	result *usecases.DeleteIssueResult
	err    error
}

func (m *mockDeleteIssueUC) Execute(_ context.Context, _ usecases.DeleteIssueCommand) (*usecases.DeleteIssueResult, error) {
	return m.result, m.err
}

type mockGetIssueUC struct {
	result *issuedto.IssueDTO
	err    error
	got    usecases.GetIssueQuery
}

func (m *mockGetIssueUC) Execute(_ context.Context, query usecases.GetIssueQuery) (*issuedto.IssueDTO, error) {
	m.got = query
	return m.result, m.err
}

type mockListIssuesUC struct {
	result *usecases.ListIssuesResult
	err    error
	got    usecases.ListIssuesQuery
}

func (m *mockListIssuesUC) Execute(_ context.Context, query usecases.ListIssuesQuery) (*usecases.ListIssuesResult, error) {
	m.got = query
	return m.result, m.err
}

type mockAddCommentUC struct {
	result *usecases.AddCommentResult
	err    error
	got    usecases.AddCommentCommand
}

func (m *mockAddCommentUC) Execute(_ context.Context, cmd usecases.AddCommentCommand) (*usecases.AddCommentResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockEditCommentUC struct {
	result *issuedto.CommentDTO
	err    error
}

func (m *mockEditCommentUC) Execute(_ context.Context, _ usecases.EditCommentCommand) (*issuedto.CommentDTO, error) {
	return m.result, m.err
}

type mockMergeIssuesUC struct {
	result *usecases.MergeIssuesResult
	err    error
	got    usecases.MergeIssuesCommand
}

func (m *mockMergeIssuesUC) Execute(_ context.Context, cmd usecases.MergeIssuesCommand) (*usecases.MergeIssuesResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUnmergeIssueUC struct {
	result *usecases.UnmergeIssueResult
	err    error
}

func (m *mockUnmergeIssueUC) Execute(_ context.Context, _ usecases.UnmergeIssueCommand) (*usecases.UnmergeIssueResult, error) {
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	createIssueUC  usecases.CreateIssueExecutor
	updateIssueUC  usecases.UpdateIssueExecutor
	updateStatusUC usecases.UpdateStatusExecutor
	deleteIssueUC  usecases.DeleteIssueExecutor
	getIssueUC     usecases.GetIssueExecutor
	listIssuesUC   usecases.ListIssuesExecutor
	addCommentUC   usecases.AddCommentExecutor
	editCommentUC  usecases.EditCommentExecutor
	mergeIssuesUC  usecases.MergeIssuesExecutor
	unmergeIssueUC usecases.UnmergeIssueExecutor
}

func newTestIssueHandler(deps testDeps) *IssueHandler {
	return NewIssueHandler(
		deps.createIssueUC,
		deps.updateIssueUC,
		deps.updateStatusUC,
		deps.deleteIssueUC,
		deps.getIssueUC,
		deps.listIssuesUC,
		deps.addCommentUC,
		deps.editCommentUC,
		deps.mergeIssuesUC,
		deps.unmergeIssueUC,
		testutil.NewMockLogger(),
	)
}

func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Display flickers",
		"description":  "Screen flickers after firmware update",
		"modelId":      3,
		"reporterName": "Ana",
		"severity":     "HIGH",
		"tags":         []string{"display"},
	}
}

// =====================================================================
// CreateIssue
// =====================================================================

func TestIssueHandler_CreateIssue_Success(t *testing.T) {
	mockUC := &mockCreateIssueUC{
		result: &usecases.CreateIssueResult{
			IssueID:      1,
			TrackingCode: "ABCD2345",
			Status:       "PENDING",
			Severity:     3,
			Priority:     "P2",
			SubmitDate:   time.Now().UTC(),
		},
	}
	handler := newTestIssueHandler(testDeps{createIssueUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/issues", validCreateBody())
	testutil.SetAuthContext(c, 7, authorization.RoleSupport)

	handler.CreateIssue(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var data CreateIssueResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "ABCD2345", data.TrackingCode)

	require.NotNil(t, mockUC.got.Actor.UserID)
	assert.Equal(t, uint(7), *mockUC.got.Actor.UserID)
	assert.Equal(t, authorization.RoleSupport, mockUC.got.Actor.Role)
	assert.Equal(t, `["display"]`, mockUC.got.Tags)
	sev, ok := mockUC.got.Severity.ResolveStrict()
	require.True(t, ok)
	assert.Equal(t, vo.SeverityHigh, sev)
}

func TestIssueHandler_CreateIssue_BindError(t *testing.T) {
	handler := newTestIssueHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/issues", map[string]string{"title": "only title"})
	testutil.SetAuthContext(c, 7, authorization.RoleUser)

	handler.CreateIssue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
}

func TestIssueHandler_CreateIssue_UseCaseError(t *testing.T) {
	mockUC := &mockCreateIssueUC{err: errors.NewValidationError("invalid tags")}
	handler := newTestIssueHandler(testDeps{createIssueUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/issues", validCreateBody())
	testutil.SetAuthContext(c, 7, authorization.RoleUser)

	handler.CreateIssue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// GetIssue
// =====================================================================

func TestIssueHandler_GetIssue(t *testing.T) {
	tests := []struct {
		name       string
		param      string
		ucErr      error
		wantStatus int
	}{
		{"success", "1", nil, http.StatusOK},
		{"invalid id", "abc", nil, http.StatusBadRequest},
		{"zero id", "0", nil, http.StatusBadRequest},
		{"not found", "9", errors.NewNotFoundError("issue not found"), http.StatusNotFound},
		{"forbidden", "2", errors.NewForbiddenError("access denied"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockGetIssueUC{
				result: &issuedto.IssueDTO{ID: 1, TrackingCode: "ABCD2345", Title: "t"},
				err:    tt.ucErr,
			}
			handler := newTestIssueHandler(testDeps{getIssueUC: mockUC})

			c, w := testutil.NewTestContext(http.MethodGet, "/issues/"+tt.param, nil)
			testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
			testutil.SetURLParam(c, "id", tt.param)

			handler.GetIssue(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// =====================================================================
// ListIssues
// =====================================================================

func TestIssueHandler_ListIssues_ParsesFilters(t *testing.T) {
	mockUC := &mockListIssuesUC{
		result: &usecases.ListIssuesResult{
			Issues:     []issuedto.IssueListItemDTO{{ID: 1, Title: "a"}},
			TotalCount: 1,
			Page:       2,
			PageSize:   10,
		},
	}
	handler := newTestIssueHandler(testDeps{listIssuesUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/issues", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{
		"status":     "pending, processing",
		"modelId":    "1,2",
		"search":     " flicker ",
		"submitFrom": "2024-05-01",
		"parentId":   "5",
		"sort":       "priority",
		"page":       "2",
		"page_size":  "10",
	})

	handler.ListIssues(c)

	require.Equal(t, http.StatusOK, w.Code)
	got := mockUC.got
	assert.Equal(t, []vo.IssueStatus{vo.StatusPending, vo.StatusProcessing}, got.Statuses)
	assert.Equal(t, []uint{1, 2}, got.ModelIDs)
	assert.Equal(t, "flicker", got.Search)
	assert.NotNil(t, got.SubmitFrom)
	assert.Nil(t, got.SubmitTo)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, uint(5), *got.ParentID)
	assert.Equal(t, "priority", got.SortBy)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 10, got.PageSize)
}

func TestIssueHandler_ListIssues_InvalidQuery(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"bad model id", map[string]string{"modelId": "x"}},
		{"bad date", map[string]string{"submitTo": "31/05/2024"}},
		{"multiple parents", map[string]string{"parentId": "1,2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestIssueHandler(testDeps{listIssuesUC: &mockListIssuesUC{}})

			c, w := testutil.NewTestContext(http.MethodGet, "/issues", nil)
			testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
			testutil.SetQueryParams(c, tt.params)

			handler.ListIssues(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// =====================================================================
// UpdateIssue
// =====================================================================

func TestIssueHandler_UpdateIssue_Success(t *testing.T) {
	mockUC := &mockUpdateIssueUC{
		result: &usecases.UpdateIssueResult{IssueID: 1},
	}
	handler := newTestIssueHandler(testDeps{updateIssueUC: mockUC})

	body := map[string]interface{}{
		"priority": "p1",
		"severity": 4,
		"assignee": "dev-1",
	}
	c, w := testutil.NewTestContext(http.MethodPatch, "/issues/1", body)
	testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
	testutil.SetURLParam(c, "id", "1")

	handler.UpdateIssue(c)

	require.Equal(t, http.StatusOK, w.Code)
	patch := mockUC.got.Patch
	require.NotNil(t, patch.Priority)
	assert.Equal(t, vo.PriorityP1, *patch.Priority)
	require.NotNil(t, patch.Severity)
	assert.Equal(t, vo.SeverityCritical, *patch.Severity)
	require.NotNil(t, patch.Assignee)
	assert.Equal(t, "dev-1", *patch.Assignee)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Tags)
}

func TestIssueHandler_UpdateIssue_InvalidSeverity(t *testing.T) {
	handler := newTestIssueHandler(testDeps{updateIssueUC: &mockUpdateIssueUC{}})

	c, w := testutil.NewTestContext(http.MethodPatch, "/issues/1", map[string]interface{}{"severity": "EXTREME"})
	testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
	testutil.SetURLParam(c, "id", "1")

	handler.UpdateIssue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueHandler_UpdateIssue_ForbiddenField(t *testing.T) {
	mockUC := &mockUpdateIssueUC{err: errors.NewForbiddenError("field not writable", "priority")}
	handler := newTestIssueHandler(testDeps{updateIssueUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPatch, "/issues/1", map[string]interface{}{"priority": "P0"})
	testutil.SetAuthContext(c, 1, authorization.RoleSupport)
	testutil.SetURLParam(c, "id", "1")

	handler.UpdateIssue(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// UpdateStatus
// =====================================================================

func TestIssueHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		body        interface{}
		result      *usecases.UpdateStatusResult
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "changed",
			body:        map[string]string{"status": "resolved"},
			result:      &usecases.UpdateStatusResult{IssueID: 1, OldStatus: "PENDING", NewStatus: "RESOLVED", Changed: true},
			wantStatus:  http.StatusOK,
			wantMessage: "Issue status updated successfully",
		},
		{
			name:        "unchanged",
			body:        map[string]string{"status": "PENDING"},
			result:      &usecases.UpdateStatusResult{IssueID: 1, OldStatus: "PENDING", NewStatus: "PENDING"},
			wantStatus:  http.StatusOK,
			wantMessage: "Issue status unchanged",
		},
		{
			name:       "unknown status",
			body:       map[string]string{"status": "ARCHIVED"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing status",
			body:       map[string]string{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockUpdateStatusUC{result: tt.result}
			handler := newTestIssueHandler(testDeps{updateStatusUC: mockUC})

			c, w := testutil.NewTestContext(http.MethodPatch, "/issues/1/status", tt.body)
			testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
			testutil.SetURLParam(c, "id", "1")

			handler.UpdateStatus(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMessage != "" {
				var resp testutil.APIResponse
				require.NoError(t, testutil.ParseResponse(w, &resp))
				assert.Equal(t, tt.wantMessage, resp.Message)
			}
		})
	}
}

// =====================================================================
// DeleteIssue
// =====================================================================

func TestIssueHandler_DeleteIssue(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := newTestIssueHandler(testDeps{
			deleteIssueUC: &mockDeleteIssueUC{result: &usecases.DeleteIssueResult{IssueID: 1}},
		})

		c, w := testutil.NewTestContext(http.MethodDelete, "/issues/1", nil)
		testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
		testutil.SetURLParam(c, "id", "1")

		handler.DeleteIssue(c)

		assert.Equal(t, http.StatusNoContent, c.Writer.Status())
		assert.Empty(t, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		handler := newTestIssueHandler(testDeps{
			deleteIssueUC: &mockDeleteIssueUC{err: errors.NewNotFoundError("issue not found")},
		})

		c, w := testutil.NewTestContext(http.MethodDelete, "/issues/1", nil)
		testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
		testutil.SetURLParam(c, "id", "1")

		handler.DeleteIssue(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =====================================================================
// Comments
// =====================================================================

func TestIssueHandler_AddComment_PassesVisibility(t *testing.T) {
	mockUC := &mockAddCommentUC{
		result: &usecases.AddCommentResult{CommentID: 5, IssueID: 1, IsInternal: false},
	}
	handler := newTestIssueHandler(testDeps{addCommentUC: mockUC})

	body := map[string]interface{}{"content": "reply", "isInternal": false, "attachmentIds": []uint{4}}
	c, w := testutil.NewTestContext(http.MethodPost, "/issues/1/comments", body)
	testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
	testutil.SetURLParam(c, "id", "1")

	handler.AddComment(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(1), mockUC.got.IssueID)
	require.NotNil(t, mockUC.got.IsInternal)
	assert.False(t, *mockUC.got.IsInternal)
	assert.Equal(t, []uint{4}, mockUC.got.AttachmentIDs)
}

func TestIssueHandler_AddComment_DefaultVisibilityLeftToUseCase(t *testing.T) {
	mockUC := &mockAddCommentUC{result: &usecases.AddCommentResult{CommentID: 5, IssueID: 1}}
	handler := newTestIssueHandler(testDeps{addCommentUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/issues/1/comments", map[string]string{"content": "note"})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "1")

	handler.AddComment(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, mockUC.got.IsInternal)
}

func TestIssueHandler_EditComment(t *testing.T) {
	tests := []struct {
		name       string
		commentID  string
		ucErr      error
		wantStatus int
	}{
		{"success", "3", nil, http.StatusOK},
		{"invalid comment id", "x", nil, http.StatusBadRequest},
		{"system comment", "3", errors.NewConflictError("only message comments can be edited"), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockEditCommentUC{result: &issuedto.CommentDTO{ID: 3}, err: tt.ucErr}
			handler := newTestIssueHandler(testDeps{editCommentUC: mockUC})

			c, w := testutil.NewTestContext(http.MethodPatch, "/issues/1/comments/"+tt.commentID, map[string]string{"content": "fixed typo"})
			testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
			testutil.SetURLParam(c, "id", "1")
			testutil.SetURLParam(c, "commentId", tt.commentID)

			handler.EditComment(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// =====================================================================
// Merge / Unmerge
// =====================================================================

func TestIssueHandler_MergeIssues(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockUC := &mockMergeIssuesUC{result: &usecases.MergeIssuesResult{ParentID: 1, ChildIDs: []uint{2, 3}}}
		handler := newTestIssueHandler(testDeps{mergeIssuesUC: mockUC})

		c, w := testutil.NewTestContext(http.MethodPost, "/issues/1/merge", map[string]interface{}{"childIds": []uint{2, 3}})
		testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
		testutil.SetURLParam(c, "id", "1")

		handler.MergeIssues(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(1), mockUC.got.ParentID)
		assert.Equal(t, []uint{2, 3}, mockUC.got.ChildIDs)
	})

	t.Run("empty child list", func(t *testing.T) {
		handler := newTestIssueHandler(testDeps{mergeIssuesUC: &mockMergeIssuesUC{}})

		c, w := testutil.NewTestContext(http.MethodPost, "/issues/1/merge", map[string]interface{}{"childIds": []uint{}})
		testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
		testutil.SetURLParam(c, "id", "1")

		handler.MergeIssues(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("nested merge rejected", func(t *testing.T) {
		mockUC := &mockMergeIssuesUC{err: errors.NewConflictError("issue already has children")}
		handler := newTestIssueHandler(testDeps{mergeIssuesUC: mockUC})

		c, w := testutil.NewTestContext(http.MethodPost, "/issues/1/merge", map[string]interface{}{"childIds": []uint{2}})
		testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
		testutil.SetURLParam(c, "id", "1")

		handler.MergeIssues(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestIssueHandler_UnmergeIssue(t *testing.T) {
	mockUC := &mockUnmergeIssueUC{result: &usecases.UnmergeIssueResult{IssueID: 2, FormerParentID: 1}}
	handler := newTestIssueHandler(testDeps{unmergeIssueUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/issues/2/unmerge", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleDeveloper)
	testutil.SetURLParam(c, "id", "2")

	handler.UnmergeIssue(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var data usecases.UnmergeIssueResult
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, uint(1), data.FormerParentID)
}
