package dto

import (
	"time"

	"github.com/dustin/go-humanize"

	"issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/services/markdown"
)

type IssueDTO struct {
	ID                 uint              `json:"id"`
	TrackingCode       string            `json:"trackingCode"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Status             string            `json:"status"`
	Severity           int               `json:"severity"`
	SeverityLabel      string            `json:"severityLabel"`
	Priority           string            `json:"priority"`
	CategoryID         *uint             `json:"categoryId"`
	ModelID            uint              `json:"modelId"`
	ParentID           *uint             `json:"parentId"`
	ConsolidationState string            `json:"consolidationState"`
	Children           []ChildSummaryDTO `json:"children"`
	TargetDate         *time.Time        `json:"targetDate"`
	CustomData         string            `json:"customData,omitempty"`
	Tags               string            `json:"tags,omitempty"`
	CreatorID          *uint             `json:"creatorId"`
	ReporterName       string            `json:"reporterName"`
	Assignee           string            `json:"assignee"`
	OccurredAt         *time.Time        `json:"occurredAt"`
	Frequency          string            `json:"frequency"`
	CustomerName       string            `json:"customerName"`
	Contact            string            `json:"contact"`
	Phenomenon         string            `json:"phenomenon"`
	ErrorCode          string            `json:"errorCode"`
	Environment        string            `json:"environment"`
	Location           string            `json:"location"`
	SubmitDate         time.Time         `json:"submitDate"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	Comments           []CommentDTO      `json:"comments"`
	Attachments        []AttachmentDTO   `json:"attachments"`
}

type ChildSummaryDTO struct {
	ID           uint   `json:"id"`
	TrackingCode string `json:"trackingCode"`
	Title        string `json:"title"`
	Status       string `json:"status"`
}

type CommentDTO struct {
	ID          uint               `json:"id"`
	Type        string             `json:"type"`
	AuthorName  string             `json:"authorName"`
	AuthorType  string             `json:"authorType"`
	Content     string             `json:"content"`
	ContentHTML string             `json:"contentHtml,omitempty"`
	IsInternal  bool               `json:"isInternal"`
	OldStatus   string             `json:"oldStatus,omitempty"`
	NewStatus   string             `json:"newStatus,omitempty"`
	FieldChange *issue.FieldChange `json:"fieldChange,omitempty"`
	Attachments []AttachmentDTO    `json:"attachments"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type AttachmentDTO struct {
	ID         uint      `json:"id"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	SizeText   string    `json:"sizeText"`
	Kind       string    `json:"kind"`
	IsInternal bool      `json:"isInternal"`
	IssueID    *uint     `json:"issueId"`
	CommentID  *uint     `json:"commentId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IssueListItemDTO is the row shape of list views. Comments are not loaded.
type IssueListItemDTO struct {
	ID           uint       `json:"id"`
	TrackingCode string     `json:"trackingCode"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Severity     int        `json:"severity"`
	Priority     string     `json:"priority"`
	ModelID      uint       `json:"modelId"`
	CategoryID   *uint      `json:"categoryId"`
	ParentID     *uint      `json:"parentId"`
	ReporterName string     `json:"reporterName"`
	Assignee     string     `json:"assignee"`
	CreatorID    *uint      `json:"creatorId"`
	SubmitDate   time.Time  `json:"submitDate"`
	TargetDate   *time.Time `json:"targetDate"`
	SLAState     string     `json:"slaState"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ToIssueDTO expects comments and attachments already passed through the
// visibility filter. Only attachments without a comment are listed at the
// issue level; the rest appear under their comment.
func ToIssueDTO(i *issue.Issue, comments []*issue.Comment, attachments []*issue.Attachment, children []*issue.Issue, renderer markdown.Renderer) *IssueDTO {
	if i == nil {
		return nil
	}

	commentDTOs := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		commentDTOs = append(commentDTOs, ToCommentDTO(c, renderer))
	}

	issueAttachments := make([]AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		if a.CommentID() != nil {
			continue
		}
		issueAttachments = append(issueAttachments, ToAttachmentDTO(a))
	}

	childDTOs := make([]ChildSummaryDTO, 0, len(children))
	for _, c := range children {
		childDTOs = append(childDTOs, ChildSummaryDTO{
			ID:           c.ID(),
			TrackingCode: c.TrackingCode(),
			Title:        c.Title(),
			Status:       c.Status().String(),
		})
	}

	return &IssueDTO{
		ID:                 i.ID(),
		TrackingCode:       i.TrackingCode(),
		Title:              i.Title(),
		Description:        i.Description(),
		Status:             i.Status().String(),
		Severity:           i.Severity().Int(),
		SeverityLabel:      i.Severity().Label(),
		Priority:           i.Priority().String(),
		CategoryID:         i.CategoryID(),
		ModelID:            i.ModelID(),
		ParentID:           i.ParentID(),
		ConsolidationState: string(issue.StateOf(i, int64(len(children)))),
		Children:           childDTOs,
		TargetDate:         i.TargetDate(),
		CustomData:         i.CustomData(),
		Tags:               i.Tags(),
		CreatorID:          i.CreatorID(),
		ReporterName:       i.ReporterName(),
		Assignee:           i.Assignee(),
		OccurredAt:         i.OccurredAt(),
		Frequency:          i.Frequency(),
		CustomerName:       i.CustomerName(),
		Contact:            i.Contact(),
		Phenomenon:         i.Phenomenon(),
		ErrorCode:          i.ErrorCode(),
		Environment:        i.Environment(),
		Location:           i.Location(),
		SubmitDate:         i.SubmitDate(),
		CreatedAt:          i.CreatedAt(),
		UpdatedAt:          i.UpdatedAt(),
		Comments:           commentDTOs,
		Attachments:        issueAttachments,
	}
}

// ToCommentDTO renders MESSAGE bodies to sanitized HTML and decodes
// FIELD_CHANGE payloads. A render failure leaves ContentHTML empty; the raw
// content is always returned.
func ToCommentDTO(c *issue.Comment, renderer markdown.Renderer) CommentDTO {
	atts := make([]AttachmentDTO, 0, len(c.Attachments()))
	for _, a := range c.Attachments() {
		atts = append(atts, ToAttachmentDTO(a))
	}

	out := CommentDTO{
		ID:          c.ID(),
		Type:        c.Type().String(),
		AuthorName:  c.AuthorName(),
		AuthorType:  c.AuthorType().String(),
		Content:     c.Content(),
		IsInternal:  c.IsInternal(),
		OldStatus:   c.OldStatus(),
		NewStatus:   c.NewStatus(),
		Attachments: atts,
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}

	switch c.Type() {
	case vo.CommentTypeMessage:
		if renderer != nil && c.Content() != "" {
			if html, err := renderer.ToHTMLSanitized(c.Content()); err == nil {
				out.ContentHTML = html
			}
		}
	case vo.CommentTypeFieldChange:
		if fc, ok := c.FieldChange(); ok {
			out.FieldChange = &fc
		}
	}

	return out
}

func ToAttachmentDTO(a *issue.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:         a.ID(),
		Filename:   a.Filename(),
		Path:       a.Path(),
		MimeType:   a.MimeType(),
		Size:       a.Size(),
		SizeText:   humanize.IBytes(uint64(max(a.Size(), 0))),
		Kind:       a.Kind().String(),
		IsInternal: a.IsInternal(),
		IssueID:    a.IssueID(),
		CommentID:  a.CommentID(),
		CreatedAt:  a.CreatedAt(),
	}
}

func ToIssueListItemDTO(i *issue.Issue, slaState issue.SLAState) IssueListItemDTO {
	return IssueListItemDTO{
		ID:           i.ID(),
		TrackingCode: i.TrackingCode(),
		Title:        i.Title(),
		Status:       i.Status().String(),
		Severity:     i.Severity().Int(),
		Priority:     i.Priority().String(),
		ModelID:      i.ModelID(),
		CategoryID:   i.CategoryID(),
		ParentID:     i.ParentID(),
		ReporterName: i.ReporterName(),
		Assignee:     i.Assignee(),
		CreatorID:    i.CreatorID(),
		SubmitDate:   i.SubmitDate(),
		TargetDate:   i.TargetDate(),
		SLAState:     string(slaState),
		CreatedAt:    i.CreatedAt(),
		UpdatedAt:    i.UpdatedAt(),
	}
}
