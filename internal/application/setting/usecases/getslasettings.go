package usecases

import (
	"context"

	"issuedesk/internal/application/setting/dto"
	"issuedesk/internal/domain/setting"
)

type GetSLASettingsUseCase struct {
	provider setting.SLAProvider
}

func NewGetSLASettingsUseCase(provider setting.SLAProvider) *GetSLASettingsUseCase {
	return &GetSLASettingsUseCase{provider: provider}
}

func (uc *GetSLASettingsUseCase) Execute(ctx context.Context) (*dto.SLASettingsDTO, error) {
	target := uc.provider.TargetDays(ctx)
	warning := uc.provider.WarningDays(ctx)

	return &dto.SLASettingsDTO{
		TargetDays:        target.Value,
		TargetDaysSource:  target.Source,
		WarningDays:       warning.Value,
		WarningDaysSource: warning.Source,
	}, nil
}
