package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/shared/constants"
)

type Pagination struct {
	Page     int
	PageSize int
}

// All reports whether the caller asked for every row.
func (p Pagination) All() bool {
	return p.PageSize == constants.PageSizeAll
}

// Offset is zero for "all" requests.
func (p Pagination) Offset() int {
	if p.All() {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// ValidatePagination normalises page and page size. A page size of -1 is
// kept as the "return everything" sentinel.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	switch {
	case pageSize == constants.PageSizeAll:
	case pageSize < 1:
		pageSize = constants.DefaultPageSize
	case pageSize > constants.MaxPageSize:
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParsePagination reads page and page_size from the query string.
func ParsePagination(c *gin.Context) Pagination {
	return ValidatePagination(
		parseQueryInt(c, "page", constants.DefaultPage),
		parseQueryInt(c, "page_size", constants.DefaultPageSize),
	)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// TotalPages is 1 for empty results and for "all" requests.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
