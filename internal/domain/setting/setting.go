// Package setting models runtime-editable system settings stored as typed
// strings.
package setting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"issuedesk/internal/shared/biztime"
)

type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
)

const (
	CategorySLA = "sla"

	KeySLATargetDays  = "target_days"
	KeySLAWarningDays = "warning_days"
)

// SystemSetting is one (category, key) entry.
type SystemSetting struct {
	id          uint
	category    string
	key         string
	value       string
	valueType   ValueType
	description string
	updatedBy   *uint
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSystemSetting(category, key string, valueType ValueType, value, description string) (*SystemSetting, error) {
	if strings.TrimSpace(category) == "" {
		return nil, fmt.Errorf("category is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, ErrInvalidSettingKey
	}
	if !isValidValueType(valueType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}
	if err := checkValue(valueType, value); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &SystemSetting{
		category:    category,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructSystemSetting(
	id uint,
	category, key, value string,
	valueType ValueType,
	description string,
	updatedBy *uint,
	createdAt, updatedAt time.Time,
) *SystemSetting {
	return &SystemSetting{
		id:          id,
		category:    category,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		updatedBy:   updatedBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *SystemSetting) ID() uint             { return s.id }
func (s *SystemSetting) Category() string     { return s.category }
func (s *SystemSetting) Key() string          { return s.key }
func (s *SystemSetting) Value() string        { return s.value }
func (s *SystemSetting) ValueType() ValueType { return s.valueType }
func (s *SystemSetting) Description() string  { return s.description }
func (s *SystemSetting) UpdatedBy() *uint     { return s.updatedBy }
func (s *SystemSetting) CreatedAt() time.Time { return s.createdAt }
func (s *SystemSetting) UpdatedAt() time.Time { return s.updatedAt }

func (s *SystemSetting) SetID(id uint) {
	s.id = id
}

func (s *SystemSetting) HasValue() bool {
	return strings.TrimSpace(s.value) != ""
}

// IntValue parses the stored text. Callers fall back to a default on error.
func (s *SystemSetting) IntValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(s.value))
}

// SetValue replaces the value after checking it against the declared type.
func (s *SystemSetting) SetValue(value string, updatedBy *uint) error {
	if err := checkValue(s.valueType, value); err != nil {
		return err
	}
	s.value = value
	s.updatedBy = updatedBy
	s.updatedAt = biztime.NowUTC()
	return nil
}

func checkValue(vt ValueType, value string) error {
	if value == "" {
		return nil
	}
	switch vt {
	case ValueTypeInt:
		if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidValueType, value)
		}
	case ValueTypeBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValueType, value)
		}
	}
	return nil
}

func isValidValueType(vt ValueType) bool {
	switch vt {
	case ValueTypeString, ValueTypeInt, ValueTypeBool:
		return true
	default:
		return false
	}
}
