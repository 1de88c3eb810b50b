package issue

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/application/issue/usecases"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/interfaces/http/middleware"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/utils"
)

type IssueHandler struct {
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
	logger         logger.Interface
}

func NewIssueHandler(
	createIssueUC usecases.CreateIssueExecutor,
	updateIssueUC usecases.UpdateIssueExecutor,
	updateStatusUC usecases.UpdateStatusExecutor,
	deleteIssueUC usecases.DeleteIssueExecutor,
	getIssueUC usecases.GetIssueExecutor,
	listIssuesUC usecases.ListIssuesExecutor,
	addCommentUC usecases.AddCommentExecutor,
	editCommentUC usecases.EditCommentExecutor,
	mergeIssuesUC usecases.MergeIssuesExecutor,
	unmergeIssueUC usecases.UnmergeIssueExecutor,
	logger logger.Interface,
) *IssueHandler {
	return &IssueHandler{
		createIssueUC:  createIssueUC,
		updateIssueUC:  updateIssueUC,
		updateStatusUC: updateStatusUC,
		deleteIssueUC:  deleteIssueUC,
		getIssueUC:     getIssueUC,
		listIssuesUC:   listIssuesUC,
		addCommentUC:   addCommentUC,
		editCommentUC:  editCommentUC,
		mergeIssuesUC:  mergeIssuesUC,
		unmergeIssueUC: unmergeIssueUC,
		logger:         logger,
	}
}

// CreateIssue handles POST /issues
// @Summary Submit an issue
// @Description Create a defect report. The target date is computed from the SLA setting.
// @Tags issues
// @Accept json
// @Produce json
// @Security Bearer
// @Param issue body CreateIssueRequest true "Issue data"
// @Success 201 {object} utils.APIResponse{data=CreateIssueResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /issues [post]
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create issue", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.createIssueUC.Execute(c.Request.Context(), req.ToCommand(middleware.CurrentActor(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toCreateIssueResponse(result), "Issue created successfully")
}

// ListIssues handles GET /issues
// @Summary List issues
// @Description Paginated list with SLA state. Reporters only see their own issues.
// @Tags issues
// @Produce json
// @Security Bearer
// @Param status query string false "Comma separated statuses"
// @Param modelId query string false "Comma separated model IDs"
// @Param search query string false "Matches title, description, reporter or tracking code"
// @Param submitFrom query string false "YYYY-MM-DD"
// @Param submitTo query string false "YYYY-MM-DD"
// @Param parentId query int false "Only children of this issue"
// @Param sort query string false "createdAt, priority or severity"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size, -1 for all" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /issues [get]
func (h *IssueHandler) ListIssues(c *gin.Context) {
	query, err := parseListIssuesQuery(c, middleware.CurrentActor(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listIssuesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Issues, result.TotalCount, result.Page, result.PageSize)
}

// GetIssue handles GET /issues/:id
// @Summary Get issue by ID
// @Description Full issue with its timeline. Internal comments and attachments are hidden from external roles.
// @Tags issues
// @Produce json
// @Security Bearer
// @Param id path int true "Issue ID"
// @Success 200 {object} utils.APIResponse{data=dto.IssueDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /issues/{id} [get]
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getIssueUC.Execute(c.Request.Context(), usecases.GetIssueQuery{
		IssueID: issueID,
		Actor:   middleware.CurrentActor(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateIssue handles PATCH /issues/:id
// @Summary Update issue fields
// @Description Each changed field is recorded as an internal FIELD_CHANGE comment. Fields the caller's role may not write are rejected.
// @Tags issues
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Issue ID"
// @Param patch body UpdateIssueRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /issues/{id} [patch]
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update issue", "issue_id", issueID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateIssueUC.Execute(c.Request.Context(), usecases.UpdateIssueCommand{
		IssueID: issueID,
		Patch:   patch,
		Actor:   middleware.CurrentActor(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue updated successfully", result)
}

// UpdateStatus handles PATCH /issues/:id/status
// @Summary Change issue status
// @Description Any status may follow any other. Setting the current status again is a no-op.
// @Tags issues
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Issue ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /issues/{id}/status [patch]
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update issue status", "issue_id", issueID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	status, err := vo.NewIssueStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), usecases.UpdateStatusCommand{
		IssueID:   issueID,
		NewStatus: status,
		Actor:     middleware.CurrentActor(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Issue status updated successfully"
	if !result.Changed {
		message = "Issue status unchanged"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// DeleteIssue handles DELETE /issues/:id
// @Summary Delete an issue
// @Description Removes the issue with its comments and attachments. Merged children become standalone.
// @Tags issues
// @Security Bearer
// @Param id path int true "Issue ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /issues/{id} [delete]
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if _, err := h.deleteIssueUC.Execute(c.Request.Context(), usecases.DeleteIssueCommand{
		IssueID: issueID,
		Actor:   middleware.CurrentActor(c),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// AddComment handles POST /issues/:id/comments
// @Summary Add a comment
// @Description Internal roles default to internal comments; external roles can only post public ones.
// @Tags issues
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Issue ID"
// @Param comment body AddCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /issues/{id}/comments [post]
func (h *IssueHandler) AddComment(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "issue_id", issueID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		IssueID:       issueID,
		Actor:         middleware.CurrentActor(c),
		Content:       req.Content,
		IsInternal:    req.IsInternal,
		AttachmentIDs: req.AttachmentIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// EditComment handles PATCH /issues/:id/comments/:commentId
// @Summary Edit a message comment
// @Description Only MESSAGE comments can be edited. Edits are not audited.
// @Tags issues
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Issue ID"
// @Param commentId path int true "Comment ID"
// @Param comment body EditCommentRequest true "New content"
// @Success 200 {object} utils.APIResponse{data=dto.CommentDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /issues/{id}/comments/{commentId} [patch]
func (h *IssueHandler) EditComment(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	commentID, err := utils.ParseUintParam(c, "commentId", "comment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for edit comment", "comment_id", commentID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.editCommentUC.Execute(c.Request.Context(), usecases.EditCommentCommand{
		IssueID:   issueID,
		CommentID: commentID,
		Content:   req.Content,
		Actor:     middleware.CurrentActor(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated successfully", result)
}

// MergeIssues handles POST /issues/:id/merge
// @Summary Merge issues
// @Description Links the listed issues as children of :id. Consolidation is single level.
// @Tags issues
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Parent issue ID"
// @Param merge body MergeIssuesRequest true "Child issue IDs"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /issues/{id}/merge [post]
func (h *IssueHandler) MergeIssues(c *gin.Context) {
	parentID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req MergeIssuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for merge issues", "parent_id", parentID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.mergeIssuesUC.Execute(c.Request.Context(), usecases.MergeIssuesCommand{
		ParentID: parentID,
		ChildIDs: req.ChildIDs,
		Actor:    middleware.CurrentActor(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issues merged successfully", result)
}

// UnmergeIssue handles POST /issues/:id/unmerge
// @Summary Unmerge an issue
// @Description Detaches :id from its parent.
// @Tags issues
// @Produce json
// @Security Bearer
// @Param id path int true "Child issue ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /issues/{id}/unmerge [post]
func (h *IssueHandler) UnmergeIssue(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.unmergeIssueUC.Execute(c.Request.Context(), usecases.UnmergeIssueCommand{
		IssueID: issueID,
		Actor:   middleware.CurrentActor(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue unmerged successfully", result)
}
