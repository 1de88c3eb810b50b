package setting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemSetting(t *testing.T) {
	s, err := NewSystemSetting(CategorySLA, KeySLATargetDays, ValueTypeInt, "5", "working days to resolve")
	require.NoError(t, err)

	v, err := s.IntValue()
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.True(t, s.HasValue())
}

func TestNewSystemSetting_Rejects(t *testing.T) {
	_, err := NewSystemSetting("", "k", ValueTypeString, "", "")
	assert.Error(t, err)

	_, err = NewSystemSetting(CategorySLA, "", ValueTypeString, "", "")
	assert.ErrorIs(t, err, ErrInvalidSettingKey)

	_, err = NewSystemSetting(CategorySLA, "k", "float", "", "")
	assert.ErrorIs(t, err, ErrInvalidValueType)

	_, err = NewSystemSetting(CategorySLA, KeySLATargetDays, ValueTypeInt, "five", "")
	assert.ErrorIs(t, err, ErrInvalidValueType)
}

func TestSetValue(t *testing.T) {
	s, err := NewSystemSetting(CategorySLA, KeySLAWarningDays, ValueTypeInt, "1", "")
	require.NoError(t, err)
	admin := uint(9)

	require.NoError(t, s.SetValue("2", &admin))
	assert.Equal(t, "2", s.Value())
	assert.Equal(t, &admin, s.UpdatedBy())

	assert.Error(t, s.SetValue("soon", &admin))
	assert.Equal(t, "2", s.Value())
}

func TestIntValue_Malformed(t *testing.T) {
	s := ReconstructSystemSetting(1, CategorySLA, KeySLATargetDays, "abc", ValueTypeInt, "", nil, time.Time{}, time.Time{})
	_, err := s.IntValue()
	assert.Error(t, err)
}
