package dto

import "fleetdesk/internal/domain/identity"

type UserDTO struct {
	Username      string   `json:"username"`
	FullName      string   `json:"fullname"`
	JoinedDate    string   `json:"joined_date"`
	ID            string   `json:"id"`
	Roles         []string `json:"roles"`
	Active        bool     `json:"active"`
	Email         *string  `json:"email,omitempty"`
	EmailVerified *bool    `json:"email_verified,omitempty"`
}

type RoleDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Composite   bool   `json:"composite"`
	ClientRole  bool   `json:"clientRole"`
	ContainerID string `json:"containerId,omitempty"`
}

type TokenDTO struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=25"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Password  string `json:"password" binding:"required,min=8,max=25"`
	Enabled   *bool  `json:"enabled" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	Enabled   *bool   `json:"enabled"`
}

type RolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// UpdateUserResult carries either the user or the protected-account warning.
type UpdateUserResult struct {
	User    *UserDTO `json:"user,omitempty"`
	Warning string   `json:"warning,omitempty"`
}

func ToUserDTO(u *identity.User) *UserDTO {
	if u == nil {
		return nil
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &UserDTO{
		Username:      u.Username,
		FullName:      u.FullName,
		JoinedDate:    u.JoinedDate,
		ID:            u.ID,
		Roles:         roles,
		Active:        u.Active,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}
}

func ToUserDTOs(users []*identity.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}

func ToRoleDTOs(roles []identity.Role) []RoleDTO {
	out := make([]RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleDTO(r))
	}
	return out
}

func ToTokenDTO(t *identity.Token) *TokenDTO {
	return &TokenDTO{Token: t.AccessToken, RefreshToken: t.RefreshToken}
}
