package usecases

import (
	"context"
	"errors"
	"strconv"

	"issuedesk/internal/application/setting/dto"
	"issuedesk/internal/domain/setting"
	apperrors "issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

type UpdateSLASettingsCommand struct {
	TargetDays  *int
	WarningDays *int
	UpdatedBy   *uint
}

// invalidatingSLAProvider is an SLAProvider that caches resolved values.
type invalidatingSLAProvider interface {
	setting.SLAProvider
	Invalidate()
}

// UpdateSLASettingsUseCase writes SLA overrides to system_settings. Existing
// issues keep their target dates; only new submissions use the new value.
type UpdateSLASettingsUseCase struct {
	settingRepo setting.Repository
	provider    invalidatingSLAProvider
	logger      logger.Interface
}

func NewUpdateSLASettingsUseCase(
	settingRepo setting.Repository,
	provider invalidatingSLAProvider,
	logger logger.Interface,
) *UpdateSLASettingsUseCase {
	return &UpdateSLASettingsUseCase{
		settingRepo: settingRepo,
		provider:    provider,
		logger:      logger,
	}
}

func (uc *UpdateSLASettingsUseCase) Execute(ctx context.Context, cmd UpdateSLASettingsCommand) (*dto.SLASettingsDTO, error) {
	if cmd.TargetDays == nil && cmd.WarningDays == nil {
		return nil, apperrors.NewValidationError("no settings supplied")
	}
	if cmd.TargetDays != nil && *cmd.TargetDays < 1 {
		return nil, apperrors.NewValidationError("targetDays must be at least 1")
	}
	if cmd.WarningDays != nil && *cmd.WarningDays < 0 {
		return nil, apperrors.NewValidationError("warningDays cannot be negative")
	}
	defer uc.provider.Invalidate()

	if cmd.TargetDays != nil {
		if err := uc.write(ctx, setting.KeySLATargetDays, *cmd.TargetDays, "Working days allowed between submission and resolution", cmd.UpdatedBy); err != nil {
			return nil, err
		}
	}
	if cmd.WarningDays != nil {
		if err := uc.write(ctx, setting.KeySLAWarningDays, *cmd.WarningDays, "Working days before the target date at which an issue is flagged", cmd.UpdatedBy); err != nil {
			return nil, err
		}
	}

	uc.logger.Infow("sla settings updated",
		"target_days_changed", cmd.TargetDays != nil,
		"warning_days_changed", cmd.WarningDays != nil,
	)

	uc.provider.Invalidate()
	return NewGetSLASettingsUseCase(uc.provider).Execute(ctx)
}

func (uc *UpdateSLASettingsUseCase) write(ctx context.Context, key string, value int, description string, updatedBy *uint) error {
	raw := strconv.Itoa(value)

	s, err := uc.settingRepo.GetByKey(ctx, setting.CategorySLA, key)
	switch {
	case err == nil:
		if err := s.SetValue(raw, updatedBy); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	case errors.Is(err, setting.ErrSettingNotFound):
		s, err = setting.NewSystemSetting(setting.CategorySLA, key, setting.ValueTypeInt, raw, description)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := s.SetValue(raw, updatedBy); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	default:
		uc.logger.Errorw("failed to load sla setting", "key", key, "error", err)
		return apperrors.NewInternalError("failed to update settings")
	}

	if err := uc.settingRepo.Upsert(ctx, s); err != nil {
		uc.logger.Errorw("failed to save sla setting", "key", key, "error", err)
		return apperrors.NewInternalError("failed to update settings")
	}
	return nil
}
