// Package issue models defect reports, their timeline comments and
// attachments, and the rules that govern consolidation, audit and
// visibility.
package issue

import (
	"fmt"
	"strings"
	"time"

	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/biztime"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 10000
)

// Issue is a submitted defect report. Title, description, model and reporter
// are always present; everything else is optional.
type Issue struct {
	id           uint
	trackingCode string
	title        string
	description  string
	status       vo.IssueStatus
	severity     vo.Severity
	priority     vo.Priority
	categoryID   *uint
	modelID      uint
	parentID     *uint
	targetDate   *time.Time
	customData   string
	tags         string
	creatorID    *uint
	reporterName string
	assignee     string
	occurredAt   *time.Time
	frequency    string
	customerName string
	contact      string
	phenomenon   string
	errorCode    string
	environment  string
	location     string
	submitDate   time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewIssueParams carries submitter input. Priority and status are not part
// of it: new issues always start PENDING at the default priority.
type NewIssueParams struct {
	TrackingCode string
	Title        string
	Description  string
	ModelID      uint
	ReporterName string
	Severity     vo.Severity
	CategoryID   *uint
	CreatorID    *uint
	SubmitDate   time.Time
	TargetDate   *time.Time
	CustomData   string
	Tags         string
	OccurredAt   *time.Time
	Frequency    string
	CustomerName string
	Contact      string
	Phenomenon   string
	ErrorCode    string
	Environment  string
	Location     string
}

func NewIssue(p NewIssueParams) (*Issue, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if strings.TrimSpace(p.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if len(p.Description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if p.ModelID == 0 {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(p.ReporterName) == "" {
		return nil, fmt.Errorf("reporter name is required")
	}
	if p.TrackingCode == "" {
		return nil, fmt.Errorf("tracking code is required")
	}

	severity := p.Severity
	if !severity.IsValid() {
		severity = vo.DefaultSeverity
	}

	now := biztime.NowUTC()
	submitDate := p.SubmitDate
	if submitDate.IsZero() {
		submitDate = now
	}

	return &Issue{
		trackingCode: p.TrackingCode,
		title:        title,
		description:  p.Description,
		status:       vo.StatusPending,
		severity:     severity,
		priority:     vo.DefaultPriority,
		categoryID:   p.CategoryID,
		modelID:      p.ModelID,
		targetDate:   p.TargetDate,
		customData:   p.CustomData,
		tags:         p.Tags,
		creatorID:    p.CreatorID,
		reporterName: strings.TrimSpace(p.ReporterName),
		occurredAt:   p.OccurredAt,
		frequency:    p.Frequency,
		customerName: p.CustomerName,
		contact:      p.Contact,
		phenomenon:   p.Phenomenon,
		errorCode:    p.ErrorCode,
		environment:  p.Environment,
		location:     p.Location,
		submitDate:   submitDate.UTC(),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructIssueParams mirrors every persisted column.
type ReconstructIssueParams struct {
	NewIssueParams
	ID        uint
	Status    vo.IssueStatus
	Priority  vo.Priority
	ParentID  *uint
	Assignee  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconstructIssue rebuilds an issue from storage without applying creation
// defaults.
func ReconstructIssue(p ReconstructIssueParams) (*Issue, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("issue ID cannot be zero")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", p.Status)
	}
	if !p.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", p.Priority)
	}

	return &Issue{
		id:           p.ID,
		trackingCode: p.TrackingCode,
		title:        p.Title,
		description:  p.Description,
		status:       p.Status,
		severity:     p.Severity,
		priority:     p.Priority,
		categoryID:   p.CategoryID,
		modelID:      p.ModelID,
		parentID:     p.ParentID,
		targetDate:   p.TargetDate,
		customData:   p.CustomData,
		tags:         p.Tags,
		creatorID:    p.CreatorID,
		reporterName: p.ReporterName,
		assignee:     p.Assignee,
		occurredAt:   p.OccurredAt,
		frequency:    p.Frequency,
		customerName: p.CustomerName,
		contact:      p.Contact,
		phenomenon:   p.Phenomenon,
		errorCode:    p.ErrorCode,
		environment:  p.Environment,
		location:     p.Location,
		submitDate:   p.SubmitDate,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}, nil
}

func (i *Issue) ID() uint               { return i.id }
func (i *Issue) TrackingCode() string   { return i.trackingCode }
func (i *Issue) Title() string          { return i.title }
func (i *Issue) Description() string    { return i.description }
func (i *Issue) Status() vo.IssueStatus { return i.status }
func (i *Issue) Severity() vo.Severity  { return i.severity }
func (i *Issue) Priority() vo.Priority  { return i.priority }
func (i *Issue) CategoryID() *uint      { return i.categoryID }
func (i *Issue) ModelID() uint          { return i.modelID }
func (i *Issue) ParentID() *uint        { return i.parentID }
func (i *Issue) TargetDate() *time.Time { return i.targetDate }
func (i *Issue) CustomData() string     { return i.customData }
func (i *Issue) Tags() string           { return i.tags }
func (i *Issue) CreatorID() *uint       { return i.creatorID }
func (i *Issue) ReporterName() string   { return i.reporterName }
func (i *Issue) Assignee() string       { return i.assignee }
func (i *Issue) OccurredAt() *time.Time { return i.occurredAt }
func (i *Issue) Frequency() string      { return i.frequency }
func (i *Issue) CustomerName() string   { return i.customerName }
func (i *Issue) Contact() string        { return i.contact }
func (i *Issue) Phenomenon() string     { return i.phenomenon }
func (i *Issue) ErrorCode() string      { return i.errorCode }
func (i *Issue) Environment() string    { return i.environment }
func (i *Issue) Location() string       { return i.location }
func (i *Issue) SubmitDate() time.Time  { return i.submitDate }
func (i *Issue) CreatedAt() time.Time   { return i.createdAt }
func (i *Issue) UpdatedAt() time.Time   { return i.updatedAt }

// SetID is called by the repository after insert.
func (i *Issue) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	i.id = id
	return nil
}

// IsMerged reports whether the issue is a consolidation child.
func (i *Issue) IsMerged() bool {
	return i.parentID != nil
}

// ChangeStatus returns false without touching the issue when the status is
// unchanged.
func (i *Issue) ChangeStatus(newStatus vo.IssueStatus) (bool, error) {
	if !newStatus.IsValid() {
		return false, fmt.Errorf("invalid status: %s", newStatus)
	}
	if i.status == newStatus {
		return false, nil
	}
	i.status = newStatus
	i.touch()
	return true, nil
}

// ApplyPatch copies every supplied field. Auditing is the caller's job (see
// DiffPatch) and must happen before the patch is applied.
func (i *Issue) ApplyPatch(p IssuePatch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Title != nil {
		i.title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		i.description = *p.Description
	}
	if p.Status != nil {
		i.status = *p.Status
	}
	if p.Priority != nil {
		i.priority = *p.Priority
	}
	if p.Severity != nil {
		i.severity = *p.Severity
	}
	if p.Assignee != nil {
		i.assignee = *p.Assignee
	}
	if p.ModelID != nil {
		i.modelID = *p.ModelID
	}
	if p.CategoryID != nil {
		i.categoryID = p.CategoryID
	}
	if p.OccurredAt != nil {
		t := p.OccurredAt.UTC()
		i.occurredAt = &t
	}
	if p.Frequency != nil {
		i.frequency = *p.Frequency
	}
	if p.Tags != nil {
		i.tags = *p.Tags
	}
	if p.CustomData != nil {
		i.customData = *p.CustomData
	}
	if p.TargetDate != nil {
		t := p.TargetDate.UTC()
		i.targetDate = &t
	}
	if p.CustomerName != nil {
		i.customerName = *p.CustomerName
	}
	if p.Contact != nil {
		i.contact = *p.Contact
	}
	if p.Phenomenon != nil {
		i.phenomenon = *p.Phenomenon
	}
	if p.ErrorCode != nil {
		i.errorCode = *p.ErrorCode
	}
	if p.Environment != nil {
		i.environment = *p.Environment
	}
	if p.Location != nil {
		i.location = *p.Location
	}
	i.touch()
	return nil
}

// MergeInto links the issue under parentID. The single-level rule needs
// store lookups and is checked by ValidateMerge.
func (i *Issue) MergeInto(parentID uint) error {
	if parentID == i.id {
		return ErrSelfMerge
	}
	i.parentID = &parentID
	i.touch()
	return nil
}

// Unmerge clears the parent link and returns the former parent.
func (i *Issue) Unmerge() (uint, error) {
	if i.parentID == nil {
		return 0, ErrNotMerged
	}
	former := *i.parentID
	i.parentID = nil
	i.touch()
	return former, nil
}

// CanBeViewedBy applies row-level access: staff see every issue, other
// authenticated users only their own.
func (i *Issue) CanBeViewedBy(actor Actor) bool {
	if actor.Role.IsStaff() {
		return true
	}
	return actor.UserID != nil && i.creatorID != nil && *actor.UserID == *i.creatorID
}

func (i *Issue) touch() {
	i.updatedAt = biztime.NowUTC()
}
