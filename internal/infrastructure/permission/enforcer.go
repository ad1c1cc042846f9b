// Package permission evaluates the realm role hierarchy with casbin.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"fleetdesk/internal/shared/authorization"
	"fleetdesk/internal/shared/logger"
)

// holdAction is the only action in the policy: a subject "holds" a role.
const holdAction = "hold"

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var _ authorization.RoleChecker = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds an enforcer whose policy is stored in the casbin_rule table.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// Satisfies reports whether any granted role holds required, directly or
// through an inherited role.
func (e *Enforcer) Satisfies(granted []string, required string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, role := range granted {
		allowed, err := e.enforcer.Enforce(role, required, holdAction)
		if err != nil {
			e.logger.Errorw("role check failed", "error", err, "role", role, "required", required)
			return false
		}
		if allowed {
			return true
		}
	}
	return false
}

func (e *Enforcer) AddInheritance(parent, child string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddGroupingPolicy(parent, child); err != nil {
		e.logger.Errorw("failed to add role inheritance", "error", err, "parent", parent, "child", child)
		return fmt.Errorf("failed to add role inheritance: %w", err)
	}
	return nil
}

func (e *Enforcer) RemoveInheritance(parent, child string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemoveGroupingPolicy(parent, child); err != nil {
		e.logger.Errorw("failed to remove role inheritance", "error", err, "parent", parent, "child", child)
		return fmt.Errorf("failed to remove role inheritance: %w", err)
	}
	return nil
}

// InheritedRoles lists every role reachable from role.
func (e *Enforcer) InheritedRoles(role string) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	roles, err := e.enforcer.GetImplicitRolesForUser(role)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles for role: %w", err)
	}
	return roles, nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Infow("role policy reloaded")
	return nil
}
