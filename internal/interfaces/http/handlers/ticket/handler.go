// Package ticket exposes the helpdesk ticket API.
package ticket

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/application/ticket/dto"
	"fleetdesk/internal/shared/query"
	"fleetdesk/internal/shared/utils"
)

type Service interface {
	List(ctx context.Context, statuses []string, page query.Page) ([]dto.TicketDTO, error)
	Get(ctx context.Context, id int) (*dto.TicketDTO, error)
	Create(ctx context.Context, req dto.CreateTicketRequest) (int, error)
	Update(ctx context.Context, id int, req dto.UpdateTicketRequest) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /tickets
// @Summary List tickets
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param status query []string false "open, closed, in-progress, awaiting" collectionFormat(multi)
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /tickets [get]
func (h *Handler) List(c *gin.Context) (any, error) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, utils.BindingError(err)
	}
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}

	tickets, err := h.service.List(c.Request.Context(), splitStatuses(q.Status), page)
	if err != nil {
		return nil, err
	}
	return gin.H{"tickets": tickets, "count": len(tickets)}, nil
}

// splitStatuses accepts both ?status=a&status=b and ?status=a,b.
func splitStatuses(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Get handles GET /tickets/:id
// @Summary Get a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "ticket id"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /tickets/{id} [get]
func (h *Handler) Get(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "ticket id")
	if err != nil {
		return nil, err
	}

	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return gin.H{"ticket": t}, nil
}

// Create handles POST /tickets
// @Summary Open a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param ticket body dto.CreateTicketRequest true "ticket"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /tickets [post]
func (h *Handler) Create(c *gin.Context) (any, error) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	return gin.H{"id": id}, nil
}

// Update handles PATCH /tickets/:id
// @Summary Update a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "ticket id"
// @Param ticket body dto.UpdateTicketRequest true "fields to change"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /tickets/{id} [patch]
func (h *Handler) Update(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "ticket id")
	if err != nil {
		return nil, err
	}

	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	affected, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		return nil, err
	}
	return gin.H{"affected": affected}, nil
}

// Delete handles DELETE /tickets/:id
// @Summary Delete a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "ticket id"
// @Success 200 {object} utils.Envelope
// @Router /tickets/{id} [delete]
func (h *Handler) Delete(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "ticket id")
	if err != nil {
		return nil, err
	}

	affected, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return gin.H{"affected": affected}, nil
}
