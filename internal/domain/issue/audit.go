package issue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"issuedesk/internal/shared/biztime"
)

// FieldChange is one audited field transition. Its JSON form is the content
// of a FIELD_CHANGE comment.
type FieldChange struct {
	Field     string `json:"field"`
	FieldName string `json:"fieldName"`
	OldValue  string `json:"oldValue"`
	NewValue  string `json:"newValue"`
}

// Payload encodes the change for storage.
func (c FieldChange) Payload() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode field change %s: %w", c.Field, err)
	}
	return string(b), nil
}

// ParseFieldChange decodes a FIELD_CHANGE comment body.
func ParseFieldChange(payload string) (FieldChange, error) {
	var c FieldChange
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return FieldChange{}, fmt.Errorf("invalid field change payload: %w", err)
	}
	return c, nil
}

type trackedField struct {
	key      string
	label    string
	current  func(*Issue) string
	proposed func(IssuePatch) (string, bool)
}

// trackedFields is the audit table, in display order.
var trackedFields = []trackedField{
	{"title", "Title",
		func(i *Issue) string { return i.title },
		func(p IssuePatch) (string, bool) {
			if p.Title == nil {
				return "", false
			}
			return strings.TrimSpace(*p.Title), true
		}},
	{"description", "Description",
		func(i *Issue) string { return i.description },
		func(p IssuePatch) (string, bool) { return normString(p.Description) }},
	{"status", "Status",
		func(i *Issue) string { return i.status.String() },
		func(p IssuePatch) (string, bool) {
			if p.Status == nil {
				return "", false
			}
			return p.Status.String(), true
		}},
	{"priority", "Priority",
		func(i *Issue) string { return i.priority.String() },
		func(p IssuePatch) (string, bool) {
			if p.Priority == nil {
				return "", false
			}
			return p.Priority.String(), true
		}},
	{"severity", "Severity",
		func(i *Issue) string { return i.severity.String() },
		func(p IssuePatch) (string, bool) {
			if p.Severity == nil {
				return "", false
			}
			return p.Severity.String(), true
		}},
	{"assignee", "Assignee",
		func(i *Issue) string { return i.assignee },
		func(p IssuePatch) (string, bool) { return normString(p.Assignee) }},
	{"modelId", "Model",
		func(i *Issue) string { return strconv.FormatUint(uint64(i.modelID), 10) },
		func(p IssuePatch) (string, bool) {
			if p.ModelID == nil {
				return "", false
			}
			return strconv.FormatUint(uint64(*p.ModelID), 10), true
		}},
	{"occurredAt", "Occurred At",
		func(i *Issue) string { return normTime(i.occurredAt) },
		func(p IssuePatch) (string, bool) { return normPatchTime(p.OccurredAt) }},
	{"frequency", "Frequency",
		func(i *Issue) string { return i.frequency },
		func(p IssuePatch) (string, bool) { return normString(p.Frequency) }},
	{"tags", "Tags",
		func(i *Issue) string { return i.tags },
		func(p IssuePatch) (string, bool) { return normString(p.Tags) }},
	{"targetDate", "Target Date",
		func(i *Issue) string { return normTime(i.targetDate) },
		func(p IssuePatch) (string, bool) { return normPatchTime(p.TargetDate) }},
	{"customerName", "Customer Name",
		func(i *Issue) string { return i.customerName },
		func(p IssuePatch) (string, bool) { return normString(p.CustomerName) }},
	{"contact", "Contact",
		func(i *Issue) string { return i.contact },
		func(p IssuePatch) (string, bool) { return normString(p.Contact) }},
	{"phenomenon", "Phenomenon",
		func(i *Issue) string { return i.phenomenon },
		func(p IssuePatch) (string, bool) { return normString(p.Phenomenon) }},
	{"errorCode", "Error Code",
		func(i *Issue) string { return i.errorCode },
		func(p IssuePatch) (string, bool) { return normString(p.ErrorCode) }},
	{"environment", "Environment",
		func(i *Issue) string { return i.environment },
		func(p IssuePatch) (string, bool) { return normString(p.Environment) }},
	{"location", "Location",
		func(i *Issue) string { return i.location },
		func(p IssuePatch) (string, bool) { return normString(p.Location) }},
}

// FieldLabel returns the display label of a tracked field key, or the key
// itself for unknown keys.
func FieldLabel(key string) string {
	for _, f := range trackedFields {
		if f.key == key {
			return f.label
		}
	}
	return key
}

// TrackedFieldKeys lists every audited field key.
func TrackedFieldKeys() []string {
	keys := make([]string, len(trackedFields))
	for i, f := range trackedFields {
		keys[i] = f.key
	}
	return keys
}

// DiffPatch compares the supplied fields of p against the issue's current
// values and returns one change per field whose normalised value differs.
// Must be called before ApplyPatch.
func DiffPatch(current *Issue, p IssuePatch) []FieldChange {
	var changes []FieldChange
	for _, f := range trackedFields {
		next, ok := f.proposed(p)
		if !ok {
			continue
		}
		prev := f.current(current)
		if prev == next {
			continue
		}
		changes = append(changes, FieldChange{
			Field:     f.key,
			FieldName: f.label,
			OldValue:  prev,
			NewValue:  next,
		})
	}
	return changes
}

func normString(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// normTime renders dates canonically so that the same instant read back
// from different drivers or time zones never produces an audit entry.
func normTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return biztime.FormatCanonical(*t)
}

func normPatchTime(t *time.Time) (string, bool) {
	if t == nil {
		return "", false
	}
	return normTime(t), true
}
