package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantSize     int
		wantAll      bool
		wantOffset   int
	}{
		{"defaults", 0, 0, 1, 20, false, 0},
		{"second page", 2, 10, 2, 10, false, 10},
		{"capped size", 1, 500, 1, 100, false, 0},
		{"negative size defaults", 1, -5, 1, 20, false, 0},
		{"all sentinel", 3, -1, 3, -1, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ValidatePagination(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSize, p.PageSize)
			assert.Equal(t, tt.wantAll, p.All())
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/issues?page=2&page_size=-1", nil)

	p := ParsePagination(c)

	assert.Equal(t, 2, p.Page)
	assert.True(t, p.All())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(57, -1))
	assert.Equal(t, 3, TotalPages(41, 20))
	assert.Equal(t, 2, TotalPages(40, 20))
}
