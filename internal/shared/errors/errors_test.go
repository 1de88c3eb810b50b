package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("title is required"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("issue not found"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("issue has no parent"), ErrorTypeConflict, http.StatusConflict},
		{"forbidden", NewForbiddenError("denied"), ErrorTypeForbidden, http.StatusForbidden},
		{"internal", NewInternalError("failed"), ErrorTypeInternal, http.StatusInternalServerError},
		{"rate limited", NewRateLimitedError("slow down"), ErrorTypeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Empty(t, tt.err.Details)
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "conflict: issue has no parent", NewConflictError("issue has no parent").Error())
	assert.Equal(t, "validation_error: bad input (title)", NewValidationError("bad input", "title").Error())
}

func TestTypePredicates_UnwrapChain(t *testing.T) {
	wrapped := fmt.Errorf("merge: %w", NewConflictError("already a child"))

	assert.True(t, IsConflictError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.False(t, IsAppError(fmt.Errorf("plain")))
	assert.Nil(t, GetAppError(nil))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'ABC' for key 'uk_tracking_code'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: issues.tracking_code")))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}
