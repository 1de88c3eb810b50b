package issue

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/application/issue/usecases"
	domain "issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/biztime"
	"issuedesk/internal/shared/errors"
	"issuedesk/internal/shared/utils"
)

// CreateIssueRequest is shared by staff and guest submissions. severity
// accepts a label ("HIGH") or a level (3).
type CreateIssueRequest struct {
	Title         string           `json:"title" binding:"required,max=200"`
	Description   string           `json:"description" binding:"required"`
	ModelID       uint             `json:"modelId" binding:"required"`
	ReporterName  string           `json:"reporterName" binding:"required,max=100"`
	Severity      vo.SeverityInput `json:"severity" swaggertype:"string"`
	CategoryID    *uint            `json:"categoryId"`
	SubmitDate    *time.Time       `json:"submitDate"`
	CustomData    json.RawMessage  `json:"customData" swaggertype:"object"`
	Tags          json.RawMessage  `json:"tags" swaggertype:"array,string"`
	OccurredAt    *time.Time       `json:"occurredAt"`
	Frequency     string           `json:"frequency"`
	CustomerName  string           `json:"customerName"`
	Contact       string           `json:"contact"`
	Phenomenon    string           `json:"phenomenon"`
	ErrorCode     string           `json:"errorCode"`
	Environment   string           `json:"environment"`
	Location      string           `json:"location"`
	AttachmentIDs []uint           `json:"attachmentIds"`
}

func (r *CreateIssueRequest) ToCommand(actor domain.Actor) usecases.CreateIssueCommand {
	return usecases.CreateIssueCommand{
		Actor:         actor,
		Title:         r.Title,
		Description:   r.Description,
		ModelID:       r.ModelID,
		ReporterName:  r.ReporterName,
		Severity:      r.Severity,
		CategoryID:    r.CategoryID,
		SubmitDate:    r.SubmitDate,
		CustomData:    rawJSON(r.CustomData),
		Tags:          rawJSON(r.Tags),
		OccurredAt:    r.OccurredAt,
		Frequency:     r.Frequency,
		CustomerName:  r.CustomerName,
		Contact:       r.Contact,
		Phenomenon:    r.Phenomenon,
		ErrorCode:     r.ErrorCode,
		Environment:   r.Environment,
		Location:      r.Location,
		AttachmentIDs: r.AttachmentIDs,
	}
}

type CreateIssueResponse struct {
	ID           uint       `json:"id"`
	TrackingCode string     `json:"trackingCode"`
	Status       string     `json:"status"`
	Severity     int        `json:"severity"`
	Priority     string     `json:"priority"`
	SubmitDate   time.Time  `json:"submitDate"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
}

func toCreateIssueResponse(r *usecases.CreateIssueResult) CreateIssueResponse {
	return CreateIssueResponse{
		ID:           r.IssueID,
		TrackingCode: r.TrackingCode,
		Status:       r.Status,
		Severity:     r.Severity,
		Priority:     r.Priority,
		SubmitDate:   r.SubmitDate,
		TargetDate:   r.TargetDate,
	}
}

// UpdateIssueRequest carries only the fields the client wants to change.
// Absent keys stay untouched.
type UpdateIssueRequest struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Status       *string           `json:"status"`
	Priority     *string           `json:"priority"`
	Severity     *vo.SeverityInput `json:"severity" swaggertype:"string"`
	Assignee     *string           `json:"assignee"`
	ModelID      *uint             `json:"modelId"`
	CategoryID   *uint             `json:"categoryId"`
	OccurredAt   *time.Time        `json:"occurredAt"`
	Frequency    *string           `json:"frequency"`
	Tags         json.RawMessage   `json:"tags" swaggertype:"array,string"`
	CustomData   json.RawMessage   `json:"customData" swaggertype:"object"`
	TargetDate   *time.Time        `json:"targetDate"`
	CustomerName *string           `json:"customerName"`
	Contact      *string           `json:"contact"`
	Phenomenon   *string           `json:"phenomenon"`
	ErrorCode    *string           `json:"errorCode"`
	Environment  *string           `json:"environment"`
	Location     *string           `json:"location"`
}

func (r *UpdateIssueRequest) ToPatch() (domain.IssuePatch, error) {
	patch := domain.IssuePatch{
		Title:        r.Title,
		Description:  r.Description,
		Assignee:     r.Assignee,
		ModelID:      r.ModelID,
		CategoryID:   r.CategoryID,
		OccurredAt:   r.OccurredAt,
		Frequency:    r.Frequency,
		TargetDate:   r.TargetDate,
		CustomerName: r.CustomerName,
		Contact:      r.Contact,
		Phenomenon:   r.Phenomenon,
		ErrorCode:    r.ErrorCode,
		Environment:  r.Environment,
		Location:     r.Location,
	}

	if r.Status != nil {
		status := vo.IssueStatus(strings.ToUpper(strings.TrimSpace(*r.Status)))
		patch.Status = &status
	}
	if r.Priority != nil {
		priority := vo.Priority(strings.ToUpper(strings.TrimSpace(*r.Priority)))
		patch.Priority = &priority
	}
	if r.Severity != nil && r.Severity.IsSet() {
		severity, ok := r.Severity.ResolveStrict()
		if !ok {
			return domain.IssuePatch{}, errors.NewValidationError("invalid severity")
		}
		patch.Severity = &severity
	}
	if len(r.Tags) > 0 {
		tags := rawJSON(r.Tags)
		patch.Tags = &tags
	}
	if len(r.CustomData) > 0 {
		customData := rawJSON(r.CustomData)
		patch.CustomData = &customData
	}

	return patch, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddCommentRequest struct {
	Content       string `json:"content" binding:"max=20000"`
	IsInternal    *bool  `json:"isInternal"`
	AttachmentIDs []uint `json:"attachmentIds"`
}

// PublicReplyRequest is the guest variant of AddCommentRequest. The author
// name is whatever the guest typed.
type PublicReplyRequest struct {
	AuthorName    string `json:"authorName" binding:"max=100"`
	Content       string `json:"content" binding:"max=20000"`
	AttachmentIDs []uint `json:"attachmentIds"`
}

type EditCommentRequest struct {
	Content string `json:"content" binding:"required,max=20000"`
}

type MergeIssuesRequest struct {
	ChildIDs []uint `json:"childIds" binding:"required,min=1"`
}

type RegisterAttachmentRequest struct {
	Filename string `json:"filename" binding:"required,max=255"`
	Path     string `json:"path" binding:"required,max=1024"`
	MimeType string `json:"mimeType" binding:"max=255"`
	Size     int64  `json:"size" binding:"min=0"`
}

// parseListIssuesQuery reads the list filters:
// status=PENDING,PROCESSING&modelId=1,2&search=..&submitFrom=2024-05-01
// &submitTo=2024-05-31&parentId=3&sort=priority&page=1&page_size=20
func parseListIssuesQuery(c *gin.Context, actor domain.Actor) (usecases.ListIssuesQuery, error) {
	pagination := utils.ParsePagination(c)
	query := usecases.ListIssuesQuery{
		Actor:    actor,
		Search:   strings.TrimSpace(c.Query("search")),
		SortBy:   c.Query("sort"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	for _, s := range utils.SplitList(c.Query("status")) {
		query.Statuses = append(query.Statuses, vo.IssueStatus(strings.ToUpper(s)))
	}

	modelIDs, err := utils.ParseUintList(c.Query("modelId"))
	if err != nil {
		return query, err
	}
	query.ModelIDs = modelIDs

	if query.SubmitFrom, err = parseDateQuery(c, "submitFrom"); err != nil {
		return query, err
	}
	if query.SubmitTo, err = parseDateQuery(c, "submitTo"); err != nil {
		return query, err
	}

	if raw := c.Query("parentId"); raw != "" {
		ids, err := utils.ParseUintList(raw)
		if err != nil || len(ids) != 1 {
			return query, errors.NewValidationError("invalid parentId")
		}
		query.ParentID = &ids[0]
	}

	return query, nil
}

// parseDateQuery accepts a calendar date in the business timezone or a full
// RFC3339 timestamp.
func parseDateQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := biztime.ParseFlexible(raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+key, "expected YYYY-MM-DD or RFC3339")
	}
	return &t, nil
}

func rawJSON(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return ""
	}
	return s
}
