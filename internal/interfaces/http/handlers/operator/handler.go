// Package operator exposes the helpdesk operator API.
package operator

import (
	"context"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/application/operator/dto"
	"fleetdesk/internal/shared/query"
	"fleetdesk/internal/shared/utils"
)

type Service interface {
	List(ctx context.Context, page query.Page) ([]dto.OperatorDTO, error)
	Get(ctx context.Context, id int) (*dto.OperatorDTO, error)
	Create(ctx context.Context, req dto.CreateOperatorRequest) (int, error)
	Update(ctx context.Context, id int, req dto.UpdateOperatorRequest) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /operators
// @Summary List operators
// @Tags operators
// @Produce json
// @Security Bearer
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Router /operators [get]
func (h *Handler) List(c *gin.Context) (any, error) {
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}

	operators, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		return nil, err
	}
	return gin.H{"operators": operators, "count": len(operators)}, nil
}

// Get handles GET /operators/:id
// @Summary Get an operator
// @Tags operators
// @Produce json
// @Security Bearer
// @Param id path int true "operator id"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /operators/{id} [get]
func (h *Handler) Get(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "operator id")
	if err != nil {
		return nil, err
	}

	operator, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return gin.H{"operator": operator}, nil
}

// Create handles POST /operators
// @Summary Create an operator
// @Tags operators
// @Accept json
// @Produce json
// @Security Bearer
// @Param operator body dto.CreateOperatorRequest true "operator"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /operators [post]
func (h *Handler) Create(c *gin.Context) (any, error) {
	var req dto.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	return gin.H{"id": id}, nil
}

// Update handles PATCH /operators/:id
// @Summary Update an operator
// @Tags operators
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "operator id"
// @Param operator body dto.UpdateOperatorRequest true "fields to change"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /operators/{id} [patch]
func (h *Handler) Update(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "operator id")
	if err != nil {
		return nil, err
	}

	var req dto.UpdateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	affected, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		return nil, err
	}
	return gin.H{"affected": affected}, nil
}

// Delete handles DELETE /operators/:id
// @Summary Delete an operator
// @Tags operators
// @Produce json
// @Security Bearer
// @Param id path int true "operator id"
// @Success 200 {object} utils.Envelope
// @Router /operators/{id} [delete]
func (h *Handler) Delete(c *gin.Context) (any, error) {
	id, err := utils.ParseIntParam(c, "id", "operator id")
	if err != nil {
		return nil, err
	}

	affected, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return gin.H{"affected": affected}, nil
}
