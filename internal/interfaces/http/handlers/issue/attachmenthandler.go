package issue

import (
	"github.com/gin-gonic/gin"

	"issuedesk/internal/application/issue/usecases"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/utils"
)

// AttachmentHandler records files the storage service has already written.
// The returned ID is later passed to issue creation or a comment.
type AttachmentHandler struct {
	registerUC usecases.RegisterAttachmentExecutor
	logger     logger.Interface
}

func NewAttachmentHandler(registerUC usecases.RegisterAttachmentExecutor, logger logger.Interface) *AttachmentHandler {
	return &AttachmentHandler{
		registerUC: registerUC,
		logger:     logger,
	}
}

// RegisterAttachment handles POST /attachments and POST /public/attachments
// @Summary Register an uploaded file
// @Tags attachments
// @Accept json
// @Produce json
// @Param attachment body RegisterAttachmentRequest true "File metadata"
// @Success 201 {object} utils.APIResponse{data=dto.AttachmentDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /attachments [post]
func (h *AttachmentHandler) RegisterAttachment(c *gin.Context) {
	var req RegisterAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register attachment", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterAttachmentCommand{
		Filename: req.Filename,
		Path:     req.Path,
		MimeType: req.MimeType,
		Size:     req.Size,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment registered successfully")
}
