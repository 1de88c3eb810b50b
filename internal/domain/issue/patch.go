package issue

import (
	"fmt"
	"strings"
	"time"

	vo "issuedesk/internal/domain/issue/valueobjects"
)

// IssuePatch is a partial update. A nil field was not supplied and is left
// alone; a non-nil field is applied and audited.
type IssuePatch struct {
	Title        *string
	Description  *string
	Status       *vo.IssueStatus
	Priority     *vo.Priority
	Severity     *vo.Severity
	Assignee     *string
	ModelID      *uint
	CategoryID   *uint
	OccurredAt   *time.Time
	Frequency    *string
	Tags         *string
	CustomData   *string
	TargetDate   *time.Time
	CustomerName *string
	Contact      *string
	Phenomenon   *string
	ErrorCode    *string
	Environment  *string
	Location     *string
}

// Validate rejects values that would break the aggregate. It does not
// decide which role may send which field.
func (p IssuePatch) Validate() error {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if len(t) > maxTitleLength {
			return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
		}
	}
	if p.Description != nil {
		if strings.TrimSpace(*p.Description) == "" {
			return fmt.Errorf("description cannot be empty")
		}
		if len(*p.Description) > maxDescriptionLength {
			return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
		}
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", *p.Status)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", *p.Priority)
	}
	if p.Severity != nil && !p.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %d", *p.Severity)
	}
	if p.ModelID != nil && *p.ModelID == 0 {
		return fmt.Errorf("model cannot be empty")
	}
	return nil
}

// IsEmpty reports whether no field was supplied.
func (p IssuePatch) IsEmpty() bool {
	return len(p.SuppliedFields()) == 0
}

// SuppliedFields lists the keys of every non-nil field, including the
// untracked ones (categoryId, customData). Permission checks use it.
func (p IssuePatch) SuppliedFields() []string {
	var fields []string
	for _, f := range trackedFields {
		if _, ok := f.proposed(p); ok {
			fields = append(fields, f.key)
		}
	}
	if p.CategoryID != nil {
		fields = append(fields, "categoryId")
	}
	if p.CustomData != nil {
		fields = append(fields, "customData")
	}
	return fields
}
