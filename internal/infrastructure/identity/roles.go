package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"fleetdesk/internal/domain/identity"
	apperrors "fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/utils/setutil"
)

// builtinRoles are provider roles never shown to clients.
var builtinRoles = []string{"offline_access", "uma_authorization", "create-realm", "default-roles-master"}

func (c *Client) isDefaultRole(name string) bool {
	return name == c.defaultRole() || name == "default-roles-master"
}

// realmRoleMappings is the raw snapshot of the realm roles mapped to a user.
func (c *Client) realmRoleMappings(ctx context.Context, userID string) ([]identity.Role, error) {
	var roles []identity.Role
	if _, err := c.adminDo(ctx, http.MethodGet, "users/"+userID+"/role-mappings/realm", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// mappedRoleNames is the set of every realm role mapped to a user, the default role included.
func (c *Client) mappedRoleNames(ctx context.Context, userID string) (*setutil.Set[string], error) {
	mappings, err := c.realmRoleMappings(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := setutil.New[string]()
	for _, r := range mappings {
		names.Add(r.Name)
	}
	return names, nil
}

// userRoleNames returns the mapped realm role names without the default role.
func (c *Client) userRoleNames(ctx context.Context, userID string) ([]string, error) {
	mappings, err := c.realmRoleMappings(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(mappings))
	for _, r := range mappings {
		if r.Name != "" && !c.isDefaultRole(r.Name) {
			names = append(names, r.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (c *Client) ListRealmRoles(ctx context.Context) ([]identity.Role, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var roles []identity.Role
	if _, err := c.adminDo(ctx, http.MethodGet, "roles?briefRepresentation=true", nil, &roles); err != nil {
		return nil, err
	}

	excluded := setutil.New(builtinRoles...)
	excluded.Add(c.defaultRole())

	out := make([]identity.Role, 0, len(roles))
	for _, r := range roles {
		if !excluded.Has(r.Name) {
			out = append(out, r)
		}
	}
	return out, nil
}

// findRole looks a realm role up by id or name. It returns nil, nil when the
// role does not exist.
func (c *Client) findRole(ctx context.Context, idOrName string) (*identity.Role, error) {
	endpoint := "roles/" + url.PathEscape(idOrName)
	if isCanonicalUUID(idOrName) {
		endpoint = "roles-by-id/" + idOrName
	}

	var role identity.Role
	if _, err := c.adminDo(ctx, http.MethodGet, endpoint, nil, &role); err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (c *Client) requireRole(ctx context.Context, idOrName string) (*identity.Role, error) {
	role, err := c.findRole(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Role with ID: %s was not found.", idOrName))
	}
	return role, nil
}

// requireUser is findUser for role operations, where an unknown user is a value error.
func (c *Client) requireUser(ctx context.Context, idOrUsername string) (*userRepresentation, error) {
	rep, err := c.findUser(ctx, idOrUsername)
	if apperrors.IsNotFoundError(err) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("User with ID: %s was not found.", idOrUsername))
	}
	return rep, err
}

func (c *Client) AssignRole(ctx context.Context, idOrUsername, roleIDOrName string) (*identity.User, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	user, err := c.requireUser(ctx, idOrUsername)
	if err != nil {
		return nil, err
	}
	assigned, err := c.mappedRoleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	role, err := c.requireRole(ctx, roleIDOrName)
	if err != nil {
		return nil, err
	}

	if assigned.Has(role.Name) {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("Role with ID: %s already assigned to user with ID: %s", roleIDOrName, idOrUsername))
	}

	if _, err := c.adminDo(ctx, http.MethodPost, "users/"+user.ID+"/role-mappings/realm", []identity.Role{*role}, nil); err != nil {
		return nil, err
	}
	return c.getUser(ctx, user.ID)
}

func (c *Client) AssignRoles(ctx context.Context, idOrUsername string, roleIDsOrNames []string) (*identity.User, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	user, err := c.requireUser(ctx, idOrUsername)
	if err != nil {
		return nil, err
	}
	assigned, err := c.mappedRoleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var toAssign []identity.Role
	for _, idOrName := range roleIDsOrNames {
		role, err := c.requireRole(ctx, idOrName)
		if err != nil {
			return nil, err
		}
		if !assigned.Has(role.Name) {
			assigned.Add(role.Name)
			toAssign = append(toAssign, *role)
		}
	}

	if len(toAssign) > 0 {
		if _, err := c.adminDo(ctx, http.MethodPost, "users/"+user.ID+"/role-mappings/realm", toAssign, nil); err != nil {
			return nil, err
		}
	}
	return c.getUser(ctx, user.ID)
}

func (c *Client) UnassignRole(ctx context.Context, idOrUsername, roleIDOrName string) (*identity.User, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	user, err := c.requireUser(ctx, idOrUsername)
	if err != nil {
		return nil, err
	}
	role, err := c.requireRole(ctx, roleIDOrName)
	if err != nil {
		return nil, err
	}
	if c.isDefaultRole(role.Name) {
		return nil, apperrors.NewValidationError("The default role cannot be removed.")
	}

	current, err := c.userRoleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !setutil.New(current...).Has(role.Name) {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("Role with ID: %s is not assigned to user with ID: %s", roleIDOrName, idOrUsername))
	}

	if _, err := c.adminDo(ctx, http.MethodDelete, "users/"+user.ID+"/role-mappings/realm", []identity.Role{*role}, nil); err != nil {
		return nil, err
	}
	return c.getUser(ctx, user.ID)
}

// ReplaceRoles makes the user's realm roles equal to target, keeping the default role.
// Both differences are computed from one snapshot of the current mappings.
func (c *Client) ReplaceRoles(ctx context.Context, idOrUsername string, target []string) (*identity.User, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	user, err := c.requireUser(ctx, idOrUsername)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]identity.Role, len(target))
	for _, idOrName := range target {
		role, err := c.requireRole(ctx, idOrName)
		if err != nil {
			return nil, err
		}
		wanted[role.Name] = *role
	}

	snapshot, err := c.realmRoleMappings(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	currentNames := setutil.New[string]()
	var toRemove []identity.Role
	for _, r := range snapshot {
		currentNames.Add(r.Name)
		if _, keep := wanted[r.Name]; !keep && !c.isDefaultRole(r.Name) {
			toRemove = append(toRemove, r)
		}
	}

	var toAdd []identity.Role
	for name, r := range wanted {
		if !currentNames.Has(name) {
			toAdd = append(toAdd, r)
		}
	}
	sort.Slice(toAdd, func(i, j int) bool { return toAdd[i].Name < toAdd[j].Name })

	mappings := "users/" + user.ID + "/role-mappings/realm"
	if len(toRemove) > 0 {
		if _, err := c.adminDo(ctx, http.MethodDelete, mappings, toRemove, nil); err != nil {
			return nil, err
		}
	}
	if len(toAdd) > 0 {
		if _, err := c.adminDo(ctx, http.MethodPost, mappings, toAdd, nil); err != nil {
			return nil, err
		}
	}

	c.logger.Infow("user roles replaced",
		"user_id", user.ID,
		"removed", len(toRemove),
		"added", len(toAdd))
	return c.getUser(ctx, user.ID)
}
