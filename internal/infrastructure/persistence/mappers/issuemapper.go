package mappers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/infrastructure/persistence/models"
)

// IssueMapper handles the conversion between issue aggregates and persistence models.
type IssueMapper interface {
	ToModel(i *issue.Issue) *models.IssueModel
	ToDomain(model *models.IssueModel) (*issue.Issue, error)
	ToDomainList(modelList []models.IssueModel) ([]*issue.Issue, error)

	CommentToModel(c *issue.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*issue.Comment, error)

	AttachmentToModel(a *issue.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) *issue.Attachment
}

// IssueMapperImpl is the concrete implementation of IssueMapper.
type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(i *issue.Issue) *models.IssueModel {
	return &models.IssueModel{
		ID:           i.ID(),
		TrackingCode: i.TrackingCode(),
		Title:        i.Title(),
		Description:  i.Description(),
		Status:       i.Status().String(),
		Severity:     i.Severity().Int(),
		Priority:     i.Priority().String(),
		CategoryID:   i.CategoryID(),
		ModelID:      i.ModelID(),
		ParentID:     i.ParentID(),
		TargetDate:   utcPtr(i.TargetDate()),
		CustomData:   opaqueJSON(i.CustomData()),
		Tags:         opaqueJSON(i.Tags()),
		CreatorID:    i.CreatorID(),
		ReporterName: i.ReporterName(),
		Assignee:     i.Assignee(),
		OccurredAt:   utcPtr(i.OccurredAt()),
		Frequency:    i.Frequency(),
		CustomerName: i.CustomerName(),
		Contact:      i.Contact(),
		Phenomenon:   i.Phenomenon(),
		ErrorCode:    i.ErrorCode(),
		Environment:  i.Environment(),
		Location:     i.Location(),
		SubmitDate:   i.SubmitDate().UTC(),
		CreatedAt:    i.CreatedAt().UTC(),
		UpdatedAt:    i.UpdatedAt().UTC(),
	}
}

func (m *IssueMapperImpl) ToDomain(model *models.IssueModel) (*issue.Issue, error) {
	if model == nil {
		return nil, fmt.Errorf("issue model is nil")
	}

	i, err := issue.ReconstructIssue(issue.ReconstructIssueParams{
		NewIssueParams: issue.NewIssueParams{
			TrackingCode: model.TrackingCode,
			Title:        model.Title,
			Description:  model.Description,
			ModelID:      model.ModelID,
			ReporterName: model.ReporterName,
			Severity:     vo.Severity(model.Severity),
			CategoryID:   model.CategoryID,
			CreatorID:    model.CreatorID,
			SubmitDate:   model.SubmitDate.UTC(),
			TargetDate:   utcPtr(model.TargetDate),
			CustomData:   string(model.CustomData),
			Tags:         string(model.Tags),
			OccurredAt:   utcPtr(model.OccurredAt),
			Frequency:    model.Frequency,
			CustomerName: model.CustomerName,
			Contact:      model.Contact,
			Phenomenon:   model.Phenomenon,
			ErrorCode:    model.ErrorCode,
			Environment:  model.Environment,
			Location:     model.Location,
		},
		ID:        model.ID,
		Status:    vo.IssueStatus(model.Status),
		Priority:  vo.Priority(model.Priority),
		ParentID:  model.ParentID,
		Assignee:  model.Assignee,
		CreatedAt: model.CreatedAt.UTC(),
		UpdatedAt: model.UpdatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct issue %d: %w", model.ID, err)
	}
	return i, nil
}

func (m *IssueMapperImpl) ToDomainList(modelList []models.IssueModel) ([]*issue.Issue, error) {
	issues := make([]*issue.Issue, 0, len(modelList))
	for idx := range modelList {
		i, err := m.ToDomain(&modelList[idx])
		if err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, nil
}

func (m *IssueMapperImpl) CommentToModel(c *issue.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:          c.ID(),
		IssueID:     c.IssueID(),
		CommentType: c.Type().String(),
		AuthorName:  c.AuthorName(),
		AuthorType:  c.AuthorType().String(),
		Content:     c.Content(),
		IsInternal:  c.IsInternal(),
		OldStatus:   c.OldStatus(),
		NewStatus:   c.NewStatus(),
		CreatedAt:   c.CreatedAt().UTC(),
		UpdatedAt:   c.UpdatedAt().UTC(),
	}
}

func (m *IssueMapperImpl) CommentToDomain(model *models.CommentModel) (*issue.Comment, error) {
	if model == nil {
		return nil, fmt.Errorf("comment model is nil")
	}

	return issue.ReconstructComment(issue.ReconstructCommentParams{
		ID:         model.ID,
		IssueID:    model.IssueID,
		Type:       vo.CommentType(model.CommentType),
		AuthorName: model.AuthorName,
		AuthorType: vo.AuthorType(model.AuthorType),
		Content:    model.Content,
		IsInternal: model.IsInternal,
		OldStatus:  model.OldStatus,
		NewStatus:  model.NewStatus,
		CreatedAt:  model.CreatedAt.UTC(),
		UpdatedAt:  model.UpdatedAt.UTC(),
	})
}

func (m *IssueMapperImpl) AttachmentToModel(a *issue.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:         a.ID(),
		Filename:   a.Filename(),
		Path:       a.Path(),
		MimeType:   a.MimeType(),
		Size:       a.Size(),
		Kind:       a.Kind().String(),
		IsInternal: a.IsInternal(),
		IssueID:    a.IssueID(),
		CommentID:  a.CommentID(),
		CreatedAt:  a.CreatedAt().UTC(),
	}
}

func (m *IssueMapperImpl) AttachmentToDomain(model *models.AttachmentModel) *issue.Attachment {
	if model == nil {
		return nil
	}

	return issue.ReconstructAttachment(issue.ReconstructAttachmentParams{
		ID:         model.ID,
		Filename:   model.Filename,
		Path:       model.Path,
		MimeType:   model.MimeType,
		Size:       model.Size,
		Kind:       vo.AttachmentKind(model.Kind),
		IsInternal: model.IsInternal,
		IssueID:    model.IssueID,
		CommentID:  model.CommentID,
		CreatedAt:  model.CreatedAt.UTC(),
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// opaqueJSON stores the raw text as-is; an empty value becomes NULL.
func opaqueJSON(raw string) datatypes.JSON {
	if raw == "" {
		return nil
	}
	return datatypes.JSON(raw)
}
