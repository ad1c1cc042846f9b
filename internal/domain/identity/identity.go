// Package identity describes the users, roles and tokens owned by the identity provider.
package identity

import (
	"context"
	"time"
)

// Token is the result of a password or refresh grant.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	Expiry       time.Time
}

// Introspection is the provider's view of an access token.
type Introspection struct {
	Active   bool
	Username string
	Name     string
	Email    string
	Subject  string
	Roles    []string
}

// Role is a realm role.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Composite   bool   `json:"composite"`
	ClientRole  bool   `json:"clientRole"`
	ContainerID string `json:"containerId,omitempty"`
}

// User is a provider account as exposed by the API.
type User struct {
	ID            string
	Username      string
	FullName      string
	JoinedDate    string
	Roles         []string
	Active        bool
	Email         *string
	EmailVerified *bool
}

// NewUser is a user registration request.
type NewUser struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
	Enabled   bool
}

// UserUpdate holds the optional fields of an account update.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Enabled   *bool
}

// UpdateResult is either the updated user or a warning when the account is protected.
type UpdateResult struct {
	User    *User
	Warning string
}

// Gateway is the identity provider as seen by the rest of the service.
type Gateway interface {
	IssueToken(ctx context.Context, username, password string) (*Token, error)
	RefreshToken(ctx context.Context, refreshToken string) (*Token, error)
	Introspect(ctx context.Context, accessToken string) (*Introspection, error)
	Logout(ctx context.Context, refreshToken string) error

	ListUsers(ctx context.Context, offset, limit int) ([]*User, error)
	GetUser(ctx context.Context, idOrUsername string) (*User, error)
	CreateUser(ctx context.Context, u NewUser) (*User, error)
	UpdateUser(ctx context.Context, idOrUsername string, update UserUpdate) (*UpdateResult, error)
	DeleteUser(ctx context.Context, idOrUsername string) (string, error)

	ListRealmRoles(ctx context.Context) ([]Role, error)
	AssignRole(ctx context.Context, idOrUsername, role string) (*User, error)
	AssignRoles(ctx context.Context, idOrUsername string, roles []string) (*User, error)
	UnassignRole(ctx context.Context, idOrUsername, role string) (*User, error)
	ReplaceRoles(ctx context.Context, idOrUsername string, roles []string) (*User, error)
}
