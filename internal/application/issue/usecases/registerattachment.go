package usecases

import (
	"context"

	"issuedesk/internal/application/issue/dto"
	"issuedesk/internal/domain/issue"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

// RegisterAttachmentCommand describes a file the storage service has
// already written. The attachment starts unlinked; issue creation or a
// comment links it later.
type RegisterAttachmentCommand struct {
	Filename string
	Path     string
	MimeType string
	Size     int64
}

type RegisterAttachmentUseCase struct {
	attachmentRepo issue.AttachmentRepository
	logger         logger.Interface
}

func NewRegisterAttachmentUseCase(
	attachmentRepo issue.AttachmentRepository,
	logger logger.Interface,
) *RegisterAttachmentUseCase {
	return &RegisterAttachmentUseCase{
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *RegisterAttachmentUseCase) Execute(ctx context.Context, cmd RegisterAttachmentCommand) (*dto.AttachmentDTO, error) {
	uc.logger.Infow("executing register attachment use case", "filename", cmd.Filename, "size", cmd.Size)

	a, err := issue.NewAttachment(cmd.Filename, cmd.Path, cmd.MimeType, cmd.Size)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attachmentRepo.Create(ctx, a); err != nil {
		uc.logger.Errorw("failed to save attachment", "filename", cmd.Filename, "error", err)
		return nil, errors.NewInternalError("failed to register attachment")
	}

	uc.logger.Infow("attachment registered successfully", "attachment_id", a.ID(), "kind", a.Kind())

	result := dto.ToAttachmentDTO(a)
	return &result, nil
}
