// Package user exposes the identity provider's accounts and roles.
package user

import (
	"context"

	"fleetdesk/internal/application/user/dto"
	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/shared/logger"
)

type Service struct {
	gateway identity.Gateway
	logger  logger.Interface
}

func NewService(gateway identity.Gateway, logger logger.Interface) *Service {
	return &Service{gateway: gateway, logger: logger}
}

func (s *Service) IssueToken(ctx context.Context, req dto.TokenRequest) (*identity.Token, error) {
	token, err := s.gateway.IssueToken(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Warnw("token request rejected", "username", req.Username, "error", err)
		return nil, err
	}
	return token, nil
}

func (s *Service) RefreshToken(ctx context.Context, req dto.RefreshRequest) (*identity.Token, error) {
	return s.gateway.RefreshToken(ctx, req.RefreshToken)
}

func (s *Service) Introspect(ctx context.Context, accessToken string) (*identity.Introspection, error) {
	return s.gateway.Introspect(ctx, accessToken)
}

// Logout revokes the refresh token. Failures are logged and dropped.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if err := s.gateway.Logout(ctx, refreshToken); err != nil {
		s.logger.Warnw("failed to revoke refresh token", "error", err)
	}
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]*dto.UserDTO, error) {
	users, err := s.gateway.ListUsers(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTOs(users), nil
}

func (s *Service) Get(ctx context.Context, idOrUsername string) (*dto.UserDTO, error) {
	u, err := s.gateway.GetUser(ctx, idOrUsername)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserDTO, error) {
	u, err := s.gateway.CreateUser(ctx, identity.NewUser{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Enabled:   *req.Enabled,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user created", "username", u.Username, "id", u.ID)
	return dto.ToUserDTO(u), nil
}

func (s *Service) Update(ctx context.Context, idOrUsername string, req dto.UpdateUserRequest) (*dto.UpdateUserResult, error) {
	result, err := s.gateway.UpdateUser(ctx, idOrUsername, identity.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Enabled:   req.Enabled,
	})
	if err != nil {
		return nil, err
	}
	if result.Warning != "" {
		s.logger.Warnw("refused to modify protected account", "user", idOrUsername)
		return &dto.UpdateUserResult{Warning: result.Warning}, nil
	}
	return &dto.UpdateUserResult{User: dto.ToUserDTO(result.User)}, nil
}

func (s *Service) Delete(ctx context.Context, idOrUsername string) (string, error) {
	id, err := s.gateway.DeleteUser(ctx, idOrUsername)
	if err != nil {
		return "", err
	}
	s.logger.Infow("user deleted", "id", id)
	return id, nil
}

func (s *Service) Roles(ctx context.Context) ([]dto.RoleDTO, error) {
	roles, err := s.gateway.ListRealmRoles(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToRoleDTOs(roles), nil
}

func (s *Service) AssignRole(ctx context.Context, idOrUsername, role string) (*dto.UserDTO, error) {
	u, err := s.gateway.AssignRole(ctx, idOrUsername, role)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func (s *Service) AssignRoles(ctx context.Context, idOrUsername string, roles []string) (*dto.UserDTO, error) {
	u, err := s.gateway.AssignRoles(ctx, idOrUsername, roles)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func (s *Service) UnassignRole(ctx context.Context, idOrUsername, role string) (*dto.UserDTO, error) {
	u, err := s.gateway.UnassignRole(ctx, idOrUsername, role)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func (s *Service) ReplaceRoles(ctx context.Context, idOrUsername string, roles []string) (*dto.UserDTO, error) {
	u, err := s.gateway.ReplaceRoles(ctx, idOrUsername, roles)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user roles replaced", "user", idOrUsername, "roles", roles)
	return dto.ToUserDTO(u), nil
}
