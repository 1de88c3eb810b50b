package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/shared/errors"
)

// ParseUintParam reads a positive numeric path parameter.
func ParseUintParam(c *gin.Context, name, entity string) (uint, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, errors.NewValidationError(entity + " ID is required")
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, errors.NewValidationError("invalid " + entity + " ID")
	}
	return uint(v), nil
}

// ParseUintList parses a comma separated list such as "1,2,3". Blank
// entries are skipped.
func ParseUintList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("invalid id list", part)
		}
		out = append(out, uint(v))
	}
	return out, nil
}

// SplitList splits a comma separated query value into trimmed, non-empty
// entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
