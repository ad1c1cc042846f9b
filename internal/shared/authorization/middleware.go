package authorization

import (
	"github.com/gin-gonic/gin"
)

// Context keys set by the gate on admission.
const (
	ContextKeyUsername = "username"
	ContextKeyFullName = "full_name"
	ContextKeyRoles    = "roles"
	ContextKeyToken    = "access_token"
)

// Principal is the introspected caller attached to an admitted request.
type Principal struct {
	Username string
	FullName string
	Roles    []string
}

// SetPrincipal stores p on the gin context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(ContextKeyUsername, p.Username)
	c.Set(ContextKeyFullName, p.FullName)
	c.Set(ContextKeyRoles, p.Roles)
}

// GetPrincipal returns the caller stored by the gate, if any.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	username, ok := c.Get(ContextKeyUsername)
	if !ok {
		return Principal{}, false
	}
	p := Principal{Username: username.(string)}
	p.FullName = c.GetString(ContextKeyFullName)
	if roles, ok := c.Get(ContextKeyRoles); ok {
		p.Roles, _ = roles.([]string)
	}
	return p, true
}

// Username returns the caller's username or "".
func Username(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}
