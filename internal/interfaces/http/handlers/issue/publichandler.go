package issue

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/application/issue/usecases"
	domain "issuedesk/internal/domain/issue"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/utils"
)

const guestAuthorName = "Guest"

// PublicIssueHandler serves customers without an account. Every request acts
// as a guest, so the tracking code view never shows internal items.
type PublicIssueHandler struct {
	createIssueUC usecases.CreateIssueExecutor
	getIssueUC    usecases.GetIssueExecutor
	addCommentUC  usecases.AddCommentExecutor
	logger        logger.Interface
}

func NewPublicIssueHandler(
	createIssueUC usecases.CreateIssueExecutor,
	getIssueUC usecases.GetIssueExecutor,
	addCommentUC usecases.AddCommentExecutor,
	logger logger.Interface,
) *PublicIssueHandler {
	return &PublicIssueHandler{
		createIssueUC: createIssueUC,
		getIssueUC:    getIssueUC,
		addCommentUC:  addCommentUC,
		logger:        logger,
	}
}

// SubmitIssue handles POST /public/issues
// @Summary Submit an issue as a guest
// @Description The response carries the tracking code used for later lookups.
// @Tags public
// @Accept json
// @Produce json
// @Param issue body CreateIssueRequest true "Issue data"
// @Success 201 {object} utils.APIResponse{data=CreateIssueResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /public/issues [post]
func (h *PublicIssueHandler) SubmitIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for guest submission", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.createIssueUC.Execute(c.Request.Context(), req.ToCommand(domain.Guest(req.ReporterName)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toCreateIssueResponse(result), "Issue submitted successfully")
}

// GetByTrackingCode handles GET /public/issues/:code
// @Summary Look up an issue by tracking code
// @Tags public
// @Produce json
// @Param code path string true "Tracking code"
// @Success 200 {object} utils.APIResponse{data=dto.IssueDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /public/issues/{code} [get]
func (h *PublicIssueHandler) GetByTrackingCode(c *gin.Context) {
	code, err := parseTrackingCode(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getIssueUC.Execute(c.Request.Context(), usecases.GetIssueQuery{
		TrackingCode: code,
		Actor:        domain.Guest(""),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddReply handles POST /public/issues/:code/comments
// @Summary Reply to an issue as a guest
// @Tags public
// @Accept json
// @Produce json
// @Param code path string true "Tracking code"
// @Param comment body PublicReplyRequest true "Reply"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /public/issues/{code}/comments [post]
func (h *PublicIssueHandler) AddReply(c *gin.Context) {
	code, err := parseTrackingCode(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PublicReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for guest reply", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	author := strings.TrimSpace(req.AuthorName)
	if author == "" {
		author = guestAuthorName
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TrackingCode:  code,
		Actor:         domain.Guest(author),
		Content:       req.Content,
		AttachmentIDs: req.AttachmentIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Reply added successfully")
}

func parseTrackingCode(c *gin.Context) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return "", errors.NewValidationError("tracking code is required")
	}
	return code, nil
}
