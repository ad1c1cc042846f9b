package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/query"
)

// Pagination holds parsed limit/offset parameters. Limit 0 means unbounded.
type Pagination = query.Page

// ParsePagination reads limit and offset from the query string.
// Both default to 0; negative or non-integer values are a validation error.
func ParsePagination(c *gin.Context) (Pagination, error) {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return Pagination{}, err
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return Pagination{}, err
	}
	return Pagination{Limit: limit, Offset: offset}, nil
}

func parseQueryInt(c *gin.Context, key string) (int, error) {
	val := c.Query(key)
	if val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.NewValidationError(key + " must be an integer")
	}
	if n < 0 {
		return 0, errors.NewValidationError(key + " must not be negative")
	}
	return n, nil
}

// ApplyPagination calculates slice indices for in-memory paging.
// Returns (start, end) indices for slicing: slice[start:end]
func ApplyPagination(total int, p Pagination) (start, end int) {
	start = p.Offset
	if start > total {
		start = total
	}
	end = total
	if p.Limit > 0 && start+p.Limit < total {
		end = start + p.Limit
	}
	return start, end
}
