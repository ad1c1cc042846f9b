package identity

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/shared/config"
	apperrors "fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
)

func kindOf(t *testing.T, err error) string {
	t.Helper()
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	return appErr.Type.Kind()
}

func TestIssueToken(t *testing.T) {
	client, _, _ := newTestClient(t)
	ctx := context.Background()

	tok, err := client.IssueToken(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, aliceAccess, tok.AccessToken)
	assert.Equal(t, aliceRefresh, tok.RefreshToken)
	assert.InDelta(t, 300, tok.ExpiresIn, 2)

	_, err = client.IssueToken(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValue, kindOf(t, err))
	assert.Equal(t, http.StatusBadRequest, apperrors.GetAppError(err).Code)
}

func TestRefreshToken(t *testing.T) {
	client, _, _ := newTestClient(t)
	ctx := context.Background()

	tok, err := client.RefreshToken(ctx, aliceRefresh)
	require.NoError(t, err)
	assert.Equal(t, "alice-access-2", tok.AccessToken)
	assert.Equal(t, "alice-refresh-2", tok.RefreshToken)

	_, err = client.RefreshToken(ctx, "stale")
	assert.Equal(t, apperrors.KindValue, kindOf(t, err))
}

func TestIntrospect(t *testing.T) {
	client, _, _ := newTestClient(t)
	ctx := context.Background()

	info, err := client.Introspect(ctx, aliceAccess)
	require.NoError(t, err)
	assert.True(t, info.Active)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "Alice Smith", info.Name)
	assert.Contains(t, info.Roles, "GPolicy")

	info, err = client.Introspect(ctx, "other")
	require.NoError(t, err)
	assert.False(t, info.Active)
	assert.Empty(t, info.Roles)
}

func TestIntrospect_Unreachable(t *testing.T) {
	client, _, srv := newTestClient(t)
	srv.Close()

	_, err := client.Introspect(context.Background(), aliceAccess)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnexpected, kindOf(t, err))
}

func TestLogout(t *testing.T) {
	client, _, _ := newTestClient(t)
	assert.NoError(t, client.Logout(context.Background(), aliceRefresh))
}

func TestListUsers(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	fake.addUser("alice", "Alice", "Smith", "GPolicy")

	_, err := client.ListUsers(ctx, -1, 0)
	assert.Equal(t, apperrors.KindValue, kindOf(t, err))

	users, err := client.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "Alice Smith", users[0].FullName)
	assert.Equal(t, "10-03-2024", users[0].JoinedDate)
	assert.Equal(t, []string{"GPolicy"}, users[0].Roles)
	assert.True(t, users[0].Active)
	assert.Nil(t, users[0].EmailVerified)
}

func TestGetUser_ByIDAndUsername(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	id := fake.addUser("alice", "Alice", "Smith")

	byID, err := client.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	require.NotNil(t, byID.EmailVerified)
	assert.False(t, *byID.EmailVerified)

	byName, err := client.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	_, err = client.GetUser(ctx, "nobody")
	assert.Equal(t, apperrors.KindNotFound, kindOf(t, err))
}

func TestIsCanonicalUUID(t *testing.T) {
	assert.True(t, isCanonicalUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.False(t, isCanonicalUUID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8"))
	assert.False(t, isCanonicalUUID("6ba7b8109dad11d180b400c04fd430c8"))
	assert.False(t, isCanonicalUUID("alice"))
}

func TestCreateUser(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	fake.addUser("alice", "Alice", "Smith")

	_, err := client.CreateUser(ctx, identity.NewUser{Username: "alice", Password: "password1"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValue, kindOf(t, err))
	assert.Contains(t, err.Error(), "A user with the username 'alice' already exists.")

	user, err := client.CreateUser(ctx, identity.NewUser{
		Username: "bob", FirstName: "Bob", LastName: "Jones", Password: "password1", Enabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "Bob Jones", user.FullName)
	assert.Equal(t, "password1", fake.passwords[user.ID])
}

func TestUpdateUser(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	fake.addUser("admin", "Admin", "")
	fake.addUser("alice", "Alice", "Smith")

	first := "Alicia"
	res, err := client.UpdateUser(ctx, "admin", identity.UserUpdate{FirstName: &first})
	require.NoError(t, err)
	assert.Nil(t, res.User)
	assert.Equal(t, ProtectedUserWarning, res.Warning)

	disabled := false
	res, err = client.UpdateUser(ctx, "alice", identity.UserUpdate{FirstName: &first, Enabled: &disabled})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, "Alicia Smith", res.User.FullName)
	assert.False(t, res.User.Active)
}

func TestDeleteUser(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	id := fake.addUser("alice", "Alice", "Smith")

	deleted, err := client.DeleteUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, deleted)

	_, err = client.DeleteUser(ctx, "alice")
	assert.Equal(t, apperrors.KindNotFound, kindOf(t, err))
}

func TestListRealmRoles_ExcludesBuiltins(t *testing.T) {
	client, _, _ := newTestClient(t)

	roles, err := client.ListRealmRoles(context.Background())
	require.NoError(t, err)

	var names []string
	for _, r := range roles {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"admin", "GPolicy", "Helpdesk"}, names)
}

func TestAssignRole(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	id := fake.addUser("alice", "Alice", "Smith", "GPolicy")

	user, err := client.AssignRole(ctx, "alice", "Helpdesk")
	require.NoError(t, err)
	assert.Equal(t, []string{"GPolicy", "Helpdesk"}, user.Roles)

	_, err = client.AssignRole(ctx, "alice", "Helpdesk")
	assert.Equal(t, apperrors.KindNotFound, kindOf(t, err))

	_, err = client.AssignRole(ctx, "alice", "nope")
	assert.Equal(t, apperrors.KindValue, kindOf(t, err))

	_, err = client.AssignRole(ctx, "nobody", "admin")
	assert.Equal(t, apperrors.KindValue, kindOf(t, err))

	// by role id
	user, err = client.AssignRole(ctx, id, fake.roles["admin"].ID)
	require.NoError(t, err)
	assert.Contains(t, user.Roles, "admin")
}

func TestAssignRole_DefaultRoleAlreadyMapped(t *testing.T) {
	client, fake, _ := newTestClient(t)
	fake.addUser("alice", "Alice", "Smith")

	_, err := client.AssignRole(context.Background(), "alice", defaultRoleRep)
	assert.Equal(t, apperrors.KindNotFound, kindOf(t, err))
	for _, call := range fake.calls {
		assert.NotContains(t, call, "POST /users/")
	}
}

func TestAssignRoles_SkipsAssigned(t *testing.T) {
	client, fake, _ := newTestClient(t)
	fake.addUser("alice", "Alice", "Smith", "GPolicy")

	user, err := client.AssignRoles(context.Background(), "alice", []string{"GPolicy", "Helpdesk"})
	require.NoError(t, err)
	assert.Equal(t, []string{"GPolicy", "Helpdesk"}, user.Roles)
}

func TestUnassignRole(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	fake.addUser("alice", "Alice", "Smith", "GPolicy")

	_, err := client.UnassignRole(ctx, "alice", "Helpdesk")
	assert.Equal(t, apperrors.KindNotFound, kindOf(t, err))

	_, err = client.UnassignRole(ctx, "alice", defaultRoleRep)
	assert.Equal(t, apperrors.KindValue, kindOf(t, err))

	user, err := client.UnassignRole(ctx, "alice", "GPolicy")
	require.NoError(t, err)
	assert.Empty(t, user.Roles)
}

func TestReplaceRoles(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	id := fake.addUser("alice", "Alice", "Smith", "GPolicy", "admin")

	user, err := client.ReplaceRoles(ctx, "alice", []string{"Helpdesk", "admin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Helpdesk", "admin"}, user.Roles)
	assert.ElementsMatch(t, []string{"Helpdesk", "admin", defaultRoleRep}, fake.roleNames(id))

	user, err = client.ReplaceRoles(ctx, "alice", nil)
	require.NoError(t, err)
	assert.Empty(t, user.Roles)
	assert.Equal(t, []string{defaultRoleRep}, fake.roleNames(id))

	_, err = client.ReplaceRoles(ctx, "alice", []string{"ghost"})
	assert.Equal(t, apperrors.KindValue, kindOf(t, err))
}

func TestAdminCalls_RejectedServiceAccount(t *testing.T) {
	_, _, srv := newTestClient(t)
	client := NewClient(config.IdentityConfig{
		URL: srv.URL, Realm: "other", ClientID: "fleetdesk",
	}, logger.NewLogger())

	_, err := client.ListUsers(context.Background(), 0, 0)
	require.Error(t, err)
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		status int
		kind   string
	}{
		{http.StatusNotFound, apperrors.KindNotFound},
		{http.StatusConflict, apperrors.KindIntegrity},
		{http.StatusBadRequest, apperrors.KindValue},
		{http.StatusUnauthorized, apperrors.KindUnexpected},
		{http.StatusForbidden, apperrors.KindUnexpected},
		{http.StatusBadGateway, apperrors.KindInternal},
	}
	for _, tt := range tests {
		err := statusError(tt.status, []byte(`{"errorMessage":"boom"}`))
		assert.Equal(t, tt.kind, kindOf(t, err), "status %d", tt.status)
	}
}
