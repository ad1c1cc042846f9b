package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/shared/errors"
)

// ParseIntParam parses a positive integer path parameter.
// entityName is used in error messages (e.g., "ticket", "computer label").
func ParseIntParam(c *gin.Context, paramName, entityName string) (int, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " is required")
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.NewValidationError("invalid " + entityName + ": " + raw)
	}

	return n, nil
}
