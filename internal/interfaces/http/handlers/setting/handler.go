// Package setting provides HTTP handlers for the SLA system settings.
package setting

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/application/setting/dto"
	"issuedesk/internal/application/setting/usecases"
	"issuedesk/internal/interfaces/http/middleware"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/utils"
)

// SettingHandler handles system settings admin API operations
type SettingHandler struct {
	getSLAUC    usecases.GetSLASettingsExecutor
	updateSLAUC usecases.UpdateSLASettingsExecutor
	logger      logger.Interface
}

func NewSettingHandler(
	getSLAUC usecases.GetSLASettingsExecutor,
	updateSLAUC usecases.UpdateSLASettingsExecutor,
	logger logger.Interface,
) *SettingHandler {
	return &SettingHandler{
		getSLAUC:    getSLAUC,
		updateSLAUC: updateSLAUC,
		logger:      logger,
	}
}

// GetSLASettings handles GET /settings/sla
// @Summary Get SLA settings
// @Description Effective values and where each came from (database, config or default).
// @Tags settings
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.SLASettingsDTO}
// @Failure 403 {object} utils.APIResponse
// @Router /settings/sla [get]
func (h *SettingHandler) GetSLASettings(c *gin.Context) {
	result, err := h.getSLAUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateSLASettings handles PUT /settings/sla
// @Summary Update SLA settings
// @Description Only new submissions use a changed target; existing target dates stay.
// @Tags settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param settings body dto.UpdateSLASettingsRequest true "Values to change"
// @Success 200 {object} utils.APIResponse{data=dto.SLASettingsDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /settings/sla [put]
func (h *SettingHandler) UpdateSLASettings(c *gin.Context) {
	var req dto.UpdateSLASettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update sla settings", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.updateSLAUC.Execute(c.Request.Context(), usecases.UpdateSLASettingsCommand{
		TargetDays:  req.TargetDays,
		WarningDays: req.WarningDays,
		UpdatedBy:   middleware.CurrentActor(c).UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Settings updated successfully", result)
}
