// Package user exposes token issuance and account administration backed by
// the identity provider.
package user

import (
	"context"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/application/user/dto"
	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/shared/utils"
)

type Service interface {
	IssueToken(ctx context.Context, req dto.TokenRequest) (*identity.Token, error)
	RefreshToken(ctx context.Context, req dto.RefreshRequest) (*identity.Token, error)
	List(ctx context.Context, offset, limit int) ([]*dto.UserDTO, error)
	Get(ctx context.Context, idOrUsername string) (*dto.UserDTO, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserDTO, error)
	Update(ctx context.Context, idOrUsername string, req dto.UpdateUserRequest) (*dto.UpdateUserResult, error)
	Delete(ctx context.Context, idOrUsername string) (string, error)
	Roles(ctx context.Context) ([]dto.RoleDTO, error)
	AssignRole(ctx context.Context, idOrUsername, role string) (*dto.UserDTO, error)
	AssignRoles(ctx context.Context, idOrUsername string, roles []string) (*dto.UserDTO, error)
	UnassignRole(ctx context.Context, idOrUsername, role string) (*dto.UserDTO, error)
	ReplaceRoles(ctx context.Context, idOrUsername string, roles []string) (*dto.UserDTO, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// IssueToken handles POST /users/token
// @Summary Exchange credentials for a token pair
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body dto.TokenRequest true "username and password"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /users/token [post]
func (h *Handler) IssueToken(c *gin.Context) (any, error) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	token, err := h.service.IssueToken(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	return dto.ToTokenDTO(token), nil
}

// RefreshToken handles PUT /users/token
// @Summary Refresh a token pair
// @Tags users
// @Accept json
// @Produce json
// @Param token body dto.RefreshRequest true "refresh token"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /users/token [put]
func (h *Handler) RefreshToken(c *gin.Context) (any, error) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	token, err := h.service.RefreshToken(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	return dto.ToTokenDTO(token), nil
}

// List handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Security Bearer
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "page offset"
// @Success 200 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Router /users [get]
func (h *Handler) List(c *gin.Context) (any, error) {
	page, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}

	users, err := h.service.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	return gin.H{"users": users, "count": len(users)}, nil
}

// Create handles POST /users
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param user body dto.CreateUserRequest true "user"
// @Success 200 {object} utils.Envelope
// @Failure 405 {object} utils.Envelope
// @Router /users [post]
func (h *Handler) Create(c *gin.Context) (any, error) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	return gin.H{"user": u}, nil
}

// Roles handles GET /users/roles
// @Summary List realm roles
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Envelope
// @Router /users/roles [get]
func (h *Handler) Roles(c *gin.Context) (any, error) {
	roles, err := h.service.Roles(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"roles": roles, "count": len(roles)}, nil
}

// Get handles GET /users/:id
// @Summary Get a user by id or username
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "user id or username"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) (any, error) {
	u, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	return gin.H{"user": u}, nil
}

// Update handles PATCH /users/:id
// @Summary Update a user
// @Description The protected account is never modified; a warning is returned instead.
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "user id or username"
// @Param user body dto.UpdateUserRequest true "fields to change"
// @Success 200 {object} utils.Envelope
// @Router /users/{id} [patch]
func (h *Handler) Update(c *gin.Context) (any, error) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}
	return h.service.Update(c.Request.Context(), c.Param("id"), req)
}

// Delete handles DELETE /users/:id
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "user id or username"
// @Success 200 {object} utils.Envelope
// @Router /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) (any, error) {
	id, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	return gin.H{"id": id}, nil
}

// AssignRole handles POST /users/:id/roles/:role
// @Summary Grant a realm role
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "user id or username"
// @Param role path string true "role name"
// @Success 200 {object} utils.Envelope
// @Router /users/{id}/roles/{role} [post]
func (h *Handler) AssignRole(c *gin.Context) (any, error) {
	u, err := h.service.AssignRole(c.Request.Context(), c.Param("id"), c.Param("role"))
	if err != nil {
		return nil, err
	}
	return gin.H{"user": u}, nil
}

// UnassignRole handles DELETE /users/:id/roles/:role
// @Summary Revoke a realm role
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "user id or username"
// @Param role path string true "role name"
// @Success 200 {object} utils.Envelope
// @Router /users/{id}/roles/{role} [delete]
func (h *Handler) UnassignRole(c *gin.Context) (any, error) {
	u, err := h.service.UnassignRole(c.Request.Context(), c.Param("id"), c.Param("role"))
	if err != nil {
		return nil, err
	}
	return gin.H{"user": u}, nil
}

// AssignRoles handles POST /users/:id/roles
// @Summary Grant several realm roles
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "user id or username"
// @Param roles body dto.RolesRequest true "roles"
// @Success 200 {object} utils.Envelope
// @Router /users/{id}/roles [post]
func (h *Handler) AssignRoles(c *gin.Context) (any, error) {
	var req dto.RolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	u, err := h.service.AssignRoles(c.Request.Context(), c.Param("id"), req.Roles)
	if err != nil {
		return nil, err
	}
	return gin.H{"user": u}, nil
}

// ReplaceRoles handles PATCH /users/:id/roles
// @Summary Replace the realm roles of a user
// @Description Roles not in the list are revoked; an empty list leaves only the default roles.
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "user id or username"
// @Param roles body dto.RolesRequest true "roles"
// @Success 200 {object} utils.Envelope
// @Router /users/{id}/roles [patch]
func (h *Handler) ReplaceRoles(c *gin.Context) (any, error) {
	var req dto.RolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.BindingError(err)
	}

	u, err := h.service.ReplaceRoles(c.Request.Context(), c.Param("id"), req.Roles)
	if err != nil {
		return nil, err
	}
	return gin.H{"user": u}, nil
}
