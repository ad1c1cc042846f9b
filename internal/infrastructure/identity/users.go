package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleetdesk/internal/domain/identity"
	apperrors "fleetdesk/internal/shared/errors"
)

const joinedDateLayout = "02-01-2006"

// ProtectedUserWarning is returned instead of modifying the protected account.
const ProtectedUserWarning = "Modifications to administrator account are not allowed"

type userRepresentation struct {
	ID               string         `json:"id,omitempty"`
	Username         string         `json:"username,omitempty"`
	FirstName        string         `json:"firstName,omitempty"`
	LastName         string         `json:"lastName,omitempty"`
	Email            *string        `json:"email,omitempty"`
	EmailVerified    *bool          `json:"emailVerified,omitempty"`
	Enabled          bool           `json:"enabled"`
	CreatedTimestamp int64          `json:"createdTimestamp,omitempty"`
	Attributes       map[string]any `json:"attributes,omitempty"`
}

type credentialRepresentation struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// isCanonicalUUID reports whether s is a UUID in its canonical lowercase form.
func isCanonicalUUID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.String() == s
}

func joinedDate(createdMillis int64) string {
	if createdMillis == 0 {
		return ""
	}
	return time.UnixMilli(createdMillis).UTC().Format(joinedDateLayout)
}

func fullName(rep *userRepresentation) string {
	return strings.TrimSpace(rep.FirstName + " " + rep.LastName)
}

// findUser resolves a user id or username. It returns a not found error when no
// account matches.
func (c *Client) findUser(ctx context.Context, idOrUsername string) (*userRepresentation, error) {
	if idOrUsername == "" {
		return nil, apperrors.NewValidationError("user id or username is required")
	}

	if isCanonicalUUID(idOrUsername) {
		var rep userRepresentation
		if _, err := c.adminDo(ctx, http.MethodGet, "users/"+idOrUsername, nil, &rep); err != nil {
			if apperrors.IsNotFoundError(err) {
				return nil, userNotFound(idOrUsername)
			}
			return nil, err
		}
		return &rep, nil
	}

	q := url.Values{"username": {idOrUsername}, "exact": {"true"}}
	var reps []userRepresentation
	if _, err := c.adminDo(ctx, http.MethodGet, "users?"+q.Encode(), nil, &reps); err != nil {
		return nil, err
	}
	for i := range reps {
		if strings.EqualFold(reps[i].Username, idOrUsername) {
			return &reps[i], nil
		}
	}
	return nil, userNotFound(idOrUsername)
}

func userNotFound(idOrUsername string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("User with ID: %s was not found.", idOrUsername))
}

func (c *Client) toUser(ctx context.Context, rep *userRepresentation, detailed bool) (*identity.User, error) {
	roles, err := c.userRoleNames(ctx, rep.ID)
	if err != nil {
		return nil, err
	}

	u := &identity.User{
		ID:         rep.ID,
		Username:   rep.Username,
		FullName:   fullName(rep),
		JoinedDate: joinedDate(rep.CreatedTimestamp),
		Roles:      roles,
		Active:     rep.Enabled,
	}
	if detailed {
		u.Email = rep.Email
		verified := rep.EmailVerified != nil && *rep.EmailVerified
		u.EmailVerified = &verified
	}
	return u, nil
}

func (c *Client) ListUsers(ctx context.Context, offset, limit int) ([]*identity.User, error) {
	if offset < 0 || limit < 0 {
		return nil, apperrors.NewValidationError("Limit and offset must be greater than 0.")
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	q := url.Values{"first": {strconv.Itoa(offset)}}
	if limit > 0 {
		q.Set("max", strconv.Itoa(limit))
	}

	var reps []userRepresentation
	if _, err := c.adminDo(ctx, http.MethodGet, "users?"+q.Encode(), nil, &reps); err != nil {
		return nil, err
	}

	users := make([]*identity.User, 0, len(reps))
	for i := range reps {
		u, err := c.toUser(ctx, &reps[i], false)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, idOrUsername string) (*identity.User, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.getUser(ctx, idOrUsername)
}

func (c *Client) getUser(ctx context.Context, idOrUsername string) (*identity.User, error) {
	rep, err := c.findUser(ctx, idOrUsername)
	if err != nil {
		return nil, err
	}
	return c.toUser(ctx, rep, true)
}

func (c *Client) CreateUser(ctx context.Context, nu identity.NewUser) (*identity.User, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.findUser(ctx, nu.Username); err == nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("A user with the username '%s' already exists.", nu.Username))
	} else if !apperrors.IsNotFoundError(err) {
		return nil, err
	}

	header, err := c.adminDo(ctx, http.MethodPost, "users", &userRepresentation{
		Username:   nu.Username,
		FirstName:  nu.FirstName,
		LastName:   nu.LastName,
		Enabled:    nu.Enabled,
		Attributes: map[string]any{},
	}, nil)
	if err != nil {
		return nil, err
	}

	id := path.Base(header.Get("Location"))
	if id == "" || id == "." || id == "/" {
		return nil, fmt.Errorf("identity provider did not return the id of user %s", nu.Username)
	}

	cred := credentialRepresentation{Type: "password", Value: nu.Password, Temporary: false}
	if _, err := c.adminDo(ctx, http.MethodPut, "users/"+id+"/reset-password", cred, nil); err != nil {
		return nil, err
	}

	c.logger.Infow("user created", "user_id", id, "username", nu.Username)
	return c.getUser(ctx, id)
}

func (c *Client) UpdateUser(ctx context.Context, idOrUsername string, update identity.UserUpdate) (*identity.UpdateResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	rep, err := c.findUser(ctx, idOrUsername)
	if err != nil {
		return nil, err
	}
	if c.protectedUser != "" && rep.Username == c.protectedUser {
		return &identity.UpdateResult{Warning: ProtectedUserWarning}, nil
	}

	changes := map[string]any{}
	if update.FirstName != nil && *update.FirstName != "" {
		changes["firstName"] = *update.FirstName
	}
	if update.LastName != nil && *update.LastName != "" {
		changes["lastName"] = *update.LastName
	}
	if update.Enabled != nil {
		changes["enabled"] = *update.Enabled
	}

	if len(changes) > 0 {
		if _, err := c.adminDo(ctx, http.MethodPut, "users/"+rep.ID, changes, nil); err != nil {
			return nil, err
		}
	}

	u, err := c.getUser(ctx, rep.ID)
	if err != nil {
		return nil, err
	}
	return &identity.UpdateResult{User: u}, nil
}

func (c *Client) DeleteUser(ctx context.Context, idOrUsername string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	rep, err := c.findUser(ctx, idOrUsername)
	if err != nil {
		return "", err
	}
	if _, err := c.adminDo(ctx, http.MethodDelete, "users/"+rep.ID, nil, nil); err != nil {
		if apperrors.IsNotFoundError(err) {
			return "", userNotFound(idOrUsername)
		}
		return "", err
	}

	c.logger.Infow("user deleted", "user_id", rep.ID, "username", rep.Username)
	return rep.ID, nil
}
