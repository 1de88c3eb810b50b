package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuedesk/internal/shared/errors"
)

type validationProbe struct {
	Name  string `json:"name" validate:"required,max=5"`
	Kind  string `yaml:"kind" validate:"oneof=a b"`
	Count int    `json:"count" validate:"min=1"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(validationProbe{Name: "ok", Kind: "a", Count: 1}))
	})

	t.Run("collects every failure by wire name", func(t *testing.T) {
		err := ValidateStruct(validationProbe{Name: "toolong", Kind: "c"})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Details, "name must be at most 5 characters")
		assert.Contains(t, appErr.Details, "kind must be one of [a b]")
		assert.Contains(t, appErr.Details, "count must be at least 1")
	})
}
