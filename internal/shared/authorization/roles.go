// Package authorization defines the realm roles the service understands.
package authorization

// Realm roles checked by the gate.
const (
	RoleAdmin    = "admin"
	RoleGPolicy  = "GPolicy"
	RoleHelpdesk = "Helpdesk"
)

// RoleChecker decides whether a set of granted roles satisfies a required role.
type RoleChecker interface {
	Satisfies(granted []string, required string) bool
}

// StaticRoleChecker implements the built-in hierarchy: admin satisfies every role.
type StaticRoleChecker struct{}

func (StaticRoleChecker) Satisfies(granted []string, required string) bool {
	for _, role := range granted {
		if role == required || role == RoleAdmin {
			return true
		}
	}
	return false
}

// HasRole checks if the user has a specific role
func HasRole(roles []string, targetRole string) bool {
	for _, role := range roles {
		if role == targetRole {
			return true
		}
	}
	return false
}

// DisplayRole is the label shown in the UI header.
func DisplayRole(roles []string) string {
	switch {
	case HasRole(roles, RoleHelpdesk):
		return RoleHelpdesk
	case HasRole(roles, RoleGPolicy):
		return RoleGPolicy
	case HasRole(roles, RoleAdmin):
		return "Administrator"
	default:
		return "Undefined"
	}
}
