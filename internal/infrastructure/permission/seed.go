package permission

import (
	"fmt"

	"fleetdesk/internal/shared/authorization"
)

// Seed stores the built-in hierarchy: every role holds itself and admin
// inherits GPolicy and Helpdesk. Existing rules are left untouched.
func (e *Enforcer) Seed() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	roles := []string{authorization.RoleAdmin, authorization.RoleGPolicy, authorization.RoleHelpdesk}
	for _, role := range roles {
		if _, err := e.enforcer.AddPolicy(role, role, holdAction); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", role, role, holdAction, err)
		}
	}

	inherits := [][]string{
		{authorization.RoleAdmin, authorization.RoleGPolicy},
		{authorization.RoleAdmin, authorization.RoleHelpdesk},
	}
	for _, rule := range inherits {
		if _, err := e.enforcer.AddGroupingPolicy(rule[0], rule[1]); err != nil {
			return fmt.Errorf("failed to add grouping policy [%s, %s]: %w", rule[0], rule[1], err)
		}
	}

	e.logger.Infow("role policy seeded", "roles", len(roles), "inheritances", len(inherits))
	return nil
}
