package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/domain/setting"
	"issuedesk/internal/shared/biztime"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/logger"
)

// CreateIssueCommand is used for both staff and guest submissions. A guest
// actor leaves the creator empty.
type CreateIssueCommand struct {
	Actor         issue.Actor
	Title         string
	Description   string
	ModelID       uint
	ReporterName  string
	Severity      vo.SeverityInput
	CategoryID    *uint
	SubmitDate    *time.Time
	CustomData    string
	Tags          string
	OccurredAt    *time.Time
	Frequency     string
	CustomerName  string
	Contact       string
	Phenomenon    string
	ErrorCode     string
	Environment   string
	Location      string
	AttachmentIDs []uint
}

type CreateIssueResult struct {
	IssueID      uint
	TrackingCode string
	Status       string
	Severity     int
	Priority     string
	TargetDate   *time.Time
	SubmitDate   time.Time
}

type CreateIssueUseCase struct {
	issueRepo      issue.Repository
	attachmentRepo issue.AttachmentRepository
	codeGen        issue.TrackingCodeGenerator
	slaProvider    setting.SLAProvider
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewCreateIssueUseCase(
	issueRepo issue.Repository,
	attachmentRepo issue.AttachmentRepository,
	codeGen issue.TrackingCodeGenerator,
	slaProvider setting.SLAProvider,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		issueRepo:      issueRepo,
		attachmentRepo: attachmentRepo,
		codeGen:        codeGen,
		slaProvider:    slaProvider,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) (*CreateIssueResult, error) {
	uc.logger.Infow("executing create issue use case", "model_id", cmd.ModelID, "anonymous", cmd.Actor.IsAnonymous())

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create issue command", "error", err)
		return nil, err
	}

	code, err := uc.codeGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate tracking code", "error", err)
		return nil, errors.NewInternalError("failed to generate tracking code")
	}

	submitDate := biztime.NowUTC()
	if cmd.SubmitDate != nil && !cmd.SubmitDate.IsZero() {
		submitDate = cmd.SubmitDate.UTC()
	}

	slaDays := uc.slaProvider.TargetDays(ctx)
	targetDate := issue.ComputeTargetDate(submitDate, slaDays.Value)

	newIssue, err := issue.NewIssue(issue.NewIssueParams{
		TrackingCode: code,
		Title:        cmd.Title,
		Description:  cmd.Description,
		ModelID:      cmd.ModelID,
		ReporterName: cmd.ReporterName,
		Severity:     cmd.Severity.Resolve(),
		CategoryID:   cmd.CategoryID,
		CreatorID:    cmd.Actor.UserID,
		SubmitDate:   submitDate,
		TargetDate:   &targetDate,
		CustomData:   cmd.CustomData,
		Tags:         cmd.Tags,
		OccurredAt:   utcPtr(cmd.OccurredAt),
		Frequency:    cmd.Frequency,
		CustomerName: cmd.CustomerName,
		Contact:      cmd.Contact,
		Phenomenon:   cmd.Phenomenon,
		ErrorCode:    cmd.ErrorCode,
		Environment:  cmd.Environment,
		Location:     cmd.Location,
	})
	if err != nil {
		uc.logger.Errorw("failed to build issue", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	attachmentIDs := issue.DedupeIDs(cmd.AttachmentIDs)

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.issueRepo.Create(txCtx, newIssue); err != nil {
			return fmt.Errorf("failed to save issue: %w", err)
		}
		if len(attachmentIDs) > 0 {
			if err := uc.attachmentRepo.LinkToIssue(txCtx, attachmentIDs, newIssue.ID()); err != nil {
				return fmt.Errorf("failed to link attachments: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, issue.ErrAttachmentUnavailable) {
			uc.logger.Warnw("attachment link rejected", "attachment_ids", attachmentIDs, "error", err)
			return nil, errors.NewValidationError(issue.ErrAttachmentUnavailable.Error())
		}
		uc.logger.Errorw("failed to create issue", "tracking_code", code, "error", err)
		return nil, errors.NewInternalError("failed to create issue")
	}

	uc.logger.Infow("issue created successfully",
		"issue_id", newIssue.ID(),
		"tracking_code", code,
		"sla_days", slaDays.Value,
		"sla_source", slaDays.Source,
		"attachments", len(attachmentIDs),
	)

	return &CreateIssueResult{
		IssueID:      newIssue.ID(),
		TrackingCode: newIssue.TrackingCode(),
		Status:       newIssue.Status().String(),
		Severity:     newIssue.Severity().Int(),
		Priority:     newIssue.Priority().String(),
		TargetDate:   newIssue.TargetDate(),
		SubmitDate:   newIssue.SubmitDate(),
	}, nil
}

func (uc *CreateIssueUseCase) validateCommand(cmd CreateIssueCommand) error {
	if strings.TrimSpace(cmd.Title) == "" {
		return errors.NewValidationError("title is required")
	}

	if strings.TrimSpace(cmd.Description) == "" {
		return errors.NewValidationError("description is required")
	}

	if cmd.ModelID == 0 {
		return errors.NewValidationError("model is required")
	}

	if strings.TrimSpace(cmd.ReporterName) == "" {
		return errors.NewValidationError("reporter name is required")
	}

	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
