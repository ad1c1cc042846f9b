// Package computer exposes the computer inventory API.
package computer

import (
	"context"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/application/computer/dto"
	"fleetdesk/internal/shared/query"
	"fleetdesk/internal/shared/utils"
)

// Service is the computer application service as seen by the handler.
type Service interface {
	Count(ctx context.Context) (int64, error)
	CountSearch(ctx context.Context, term string) (int64, error)
	Classes(ctx context.Context) ([]dto.NetworkCountDTO, error)
	List(ctx context.Context, page query.Page) ([]dto.ComputerDTO, error)
	Search(ctx context.Context, term string, page query.Page) ([]dto.ComputerDTO, error)
	GetByLabel(ctx context.Context, label int, page query.Page) (*dto.ComputerDetailDTO, error)
	GetByHostName(ctx context.Context, hostName string, page query.Page) (*dto.ComputerDetailDTO, error)
	Create(ctx context.Context, req dto.RegistrationRequest) (*dto.CreateComputerResult, error)
	Update(ctx context.Context, label int, req dto.RegistrationRequest) (int64, error)
	Delete(ctx context.Context, label int) (int64, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Count handles GET /computers/count
// @Summary Count computers
// @Tags computers
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Router /computers/count [get]
func (h *Handler) Count(c *gin.Context) (any, error) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"count": count}, nil
}

// CountSearch handles GET /computers/generic/count
// @Summary Count generic search matches
// @Tags computers
// @Produce json
// @Security Bearer
// @Param search query string false "search term"
// @Success 200 {object} utils.Envelope
// @Router /computers/generic/count [get]
func (h *Handler) CountSearch(c *gin.Context) (any, error) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, utils.BindingError(err)
	}

	count, err := h.service.CountSearch(c.Request.Context(), q.Search)
	if err != nil {
		return nil, err
	}
	return gin.H{"count": count}, nil
}

// Classes handles GET /computers/classes
// @Summary Count computers per network
// @Tags computers
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Envelope
// @Router /computers/classes [get]
func (h *Handler) Classes(c *gin.Context) (any, error) {
	return h.service.Classes(c.Request.Context())
}

// GetByLabel handles GET /computers/label/:label
// @Summary Get a computer and its history by label
// @Tags computers
// @Produce json
// @Security Bearer
// @Param label path int true "computer label"
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /computers/label/{label} [get]
func (h *Handler) GetByLabel(c *gin.Context) (any, error) {
	label, err := utils.ParseIntParam(c, "label", "computer label")
	if err != nil {
		return nil, err
	}
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}
	return h.service.GetByLabel(c.Request.Context(), label, page)
}

// List handles GET /computers
// @Summary List computers
// @Tags computers
// @Produce json
// @Security Bearer
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Router /computers [get]
func (h *Handler) List(c *gin.Context) (any, error) {
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}

	computers, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		return nil, err
	}
	return gin.H{"computers": computers, "count": len(computers)}, nil
}

// Search handles GET /computers/generic
// @Summary Search computers by host name, label, secseal, IPv4 or MAC
// @Tags computers
// @Produce json
// @Security Bearer
// @Param search query string false "search term"
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Router /computers/generic [get]
func (h *Handler) Search(c *gin.Context) (any, error) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, utils.BindingError(err)
	}
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}

	computers, err := h.service.Search(c.Request.Context(), q.Search, page)
	if err != nil {
		return nil, err
	}
	return gin.H{"computers": computers, "count": len(computers)}, nil
}

// Create handles POST /computers
// @Summary Register a computer
// @Description Creates the computer and its Registration entry in one transaction.
// @Tags computers
// @Accept json
// @Produce json
// @Security Bearer
// @Param computer body dto.RegistrationRequest true "registration"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 405 {object} utils.Envelope
// @Router /computers [post]
func (h *Handler) Create(c *gin.Context) (any, error) {
	var req dto.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}
	return h.service.Create(c.Request.Context(), req)
}

// GetByHostName handles GET /computers/:host_name
// @Summary Get a computer and its history by host name
// @Tags computers
// @Produce json
// @Security Bearer
// @Param host_name path string true "host name"
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /computers/{host_name} [get]
func (h *Handler) GetByHostName(c *gin.Context) (any, error) {
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}
	return h.service.GetByHostName(c.Request.Context(), c.Param("host_name"), page)
}

// Update handles PATCH /computers/:label
// @Summary Replace a computer record
// @Tags computers
// @Accept json
// @Produce json
// @Security Bearer
// @Param label path int true "computer label"
// @Param computer body dto.RegistrationRequest true "registration"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /computers/{label} [patch]
func (h *Handler) Update(c *gin.Context) (any, error) {
	label, err := utils.ParseIntParam(c, "label", "computer label")
	if err != nil {
		return nil, err
	}

	var req dto.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	affected, err := h.service.Update(c.Request.Context(), label, req)
	if err != nil {
		return nil, err
	}
	return gin.H{"affected": affected}, nil
}

// Delete handles DELETE /computers/:label
// @Summary Delete a computer
// @Tags computers
// @Produce json
// @Security Bearer
// @Param label path int true "computer label"
// @Success 200 {object} utils.Envelope
// @Router /computers/{label} [delete]
func (h *Handler) Delete(c *gin.Context) (any, error) {
	label, err := utils.ParseIntParam(c, "label", "computer label")
	if err != nil {
		return nil, err
	}

	count, err := h.service.Delete(c.Request.Context(), label)
	if err != nil {
		return nil, err
	}
	return gin.H{"count": count}, nil
}
