// Package entry exposes the job (history entry) API.
package entry

import (
	"context"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/application/entry/dto"
	"fleetdesk/internal/shared/authorization"
	"fleetdesk/internal/shared/query"
	"fleetdesk/internal/shared/utils"
)

type Service interface {
	List(ctx context.Context, page query.Page) ([]dto.EntryDTO, error)
	ListJobs(ctx context.Context, q dto.JobsQuery, page query.Page) ([]dto.JobDTO, error)
	CountJobs(ctx context.Context, filter string) (int64, error)
	GetPolicy(ctx context.Context, id int) (*dto.PolicyDTO, error)
	Traffic(ctx context.Context) ([]dto.TrafficDTO, error)
	Create(ctx context.Context, req dto.CreateEntryRequest) (int64, error)
	Sign(ctx context.Context, id int, req dto.SignEntryRequest, username string) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /entries
// @Summary List entries
// @Tags entries
// @Produce json
// @Security Bearer
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Router /entries [get]
func (h *Handler) List(c *gin.Context) (any, error) {
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}

	entries, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		return nil, err
	}
	return gin.H{"entries": entries, "count": len(entries)}, nil
}

// ListJobs handles GET /entries/jobs
// @Summary List jobs with their computer host name
// @Tags entries
// @Produce json
// @Security Bearer
// @Param filter query string false "all or recent"
// @Param sort query string false "signed_at or created_at"
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Router /entries/jobs [get]
func (h *Handler) ListJobs(c *gin.Context) (any, error) {
	var q dto.JobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, utils.BindingError(err)
	}
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), q, page)
	if err != nil {
		return nil, err
	}
	return gin.H{"jobs": jobs, "count": len(jobs)}, nil
}

// CountJobs handles GET /entries/jobs/count
// @Summary Count jobs
// @Tags entries
// @Produce json
// @Security Bearer
// @Param filter query string false "all or recent"
// @Success 200 {object} utils.Envelope
// @Router /entries/jobs/count [get]
func (h *Handler) CountJobs(c *gin.Context) (any, error) {
	var q dto.JobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, utils.BindingError(err)
	}

	count, err := h.service.CountJobs(c.Request.Context(), q.Filter)
	if err != nil {
		return nil, err
	}
	return gin.H{"count": count}, nil
}

// GetPolicy handles GET /entries/policy/:id
// @Summary Get a job with the policy fields of its computer
// @Tags entries
// @Produce json
// @Security Bearer
// @Param id path int true "entry id"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /entries/policy/{id} [get]
func (h *Handler) GetPolicy(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "entry id")
	if err != nil {
		return nil, err
	}

	policy, err := h.service.GetPolicy(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return gin.H{"policy": policy}, nil
}

// Traffic handles GET /entries/traffic
// @Summary Daily entry counts per network over the last 40 days
// @Tags entries
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Envelope
// @Router /entries/traffic [get]
func (h *Handler) Traffic(c *gin.Context) (any, error) {
	hist, err := h.service.Traffic(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"hist": hist, "length": len(hist)}, nil
}

// Create handles POST /entries
// @Summary Create an entry
// @Tags entries
// @Accept json
// @Produce json
// @Security Bearer
// @Param entry body dto.CreateEntryRequest true "entry"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /entries [post]
func (h *Handler) Create(c *gin.Context) (any, error) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	rows, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	return gin.H{"value": rows}, nil
}

// Sign handles PATCH /entries/:id
// @Summary Sign off a job
// @Description Sets signed_at to the server time; status defaults to closed.
// @Tags entries
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "entry id"
// @Param entry body dto.SignEntryRequest true "fields to apply"
// @Success 200 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Router /entries/{id} [patch]
func (h *Handler) Sign(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "entry id")
	if err != nil {
		return nil, err
	}

	var req dto.SignEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	rows, err := h.service.Sign(c.Request.Context(), id, req, authorization.Username(c))
	if err != nil {
		return nil, err
	}
	return gin.H{"value": rows}, nil
}

// Delete handles DELETE /entries/:id
// @Summary Delete an entry
// @Tags entries
// @Produce json
// @Security Bearer
// @Param id path int true "entry id"
// @Success 200 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Router /entries/{id} [delete]
func (h *Handler) Delete(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "entry id")
	if err != nil {
		return nil, err
	}

	rows, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return gin.H{"value": rows}, nil
}
