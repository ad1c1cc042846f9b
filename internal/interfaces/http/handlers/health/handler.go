// Package health reports the reachability of the services behind the API.
package health

import (
	"context"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/infrastructure/health"
)

type Checker interface {
	Check(ctx context.Context) health.Report
}

type Handler struct {
	checker Checker
}

func NewHandler(checker Checker) *Handler {
	return &Handler{checker: checker}
}

// Check handles GET /health
// @Summary Probe the identity provider, pgAdmin and the database
// @Tags health
// @Produce json
// @Success 200 {object} utils.Envelope
// @Router /health [get]
func (h *Handler) Check(c *gin.Context) (any, error) {
	return h.checker.Check(c.Request.Context()), nil
}
