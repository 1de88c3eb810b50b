package usecases

import (
	"context"

	"issuedesk/internal/application/setting/dto"
)

type GetSLASettingsExecutor interface {
	Execute(ctx context.Context) (*dto.SLASettingsDTO, error)
}

type UpdateSLASettingsExecutor interface {
	Execute(ctx context.Context, cmd UpdateSLASettingsCommand) (*dto.SLASettingsDTO, error)
}
