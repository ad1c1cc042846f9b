package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdesk/internal/application/user/dto"
	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/interfaces/http/handlers/testutil"
	"fleetdesk/internal/interfaces/http/middleware"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
)

type mockService struct {
	Service
	issueFn   func(req dto.TokenRequest) (*identity.Token, error)
	listFn    func(offset, limit int) ([]*dto.UserDTO, error)
	updateFn  func(id string, req dto.UpdateUserRequest) (*dto.UpdateUserResult, error)
	replaceFn func(id string, roles []string) (*dto.UserDTO, error)
}

func (m *mockService) IssueToken(_ context.Context, req dto.TokenRequest) (*identity.Token, error) {
	return m.issueFn(req)
}

func (m *mockService) List(_ context.Context, offset, limit int) ([]*dto.UserDTO, error) {
	return m.listFn(offset, limit)
}

func (m *mockService) Update(_ context.Context, id string, req dto.UpdateUserRequest) (*dto.UpdateUserResult, error) {
	return m.updateFn(id, req)
}

func (m *mockService) ReplaceRoles(_ context.Context, id string, roles []string) (*dto.UserDTO, error) {
	return m.replaceFn(id, roles)
}

func newRouter(svc Service) *gin.Engine {
	h := NewHandler(svc)
	w := middleware.NewWrapper(nil, logger.NewLogger())

	r := gin.New()
	r.POST("/users/token", w.Respond(h.IssueToken))
	r.GET("/users", w.Respond(h.List))
	r.PATCH("/users/:id", w.Respond(h.Update))
	r.PATCH("/users/:id/roles", w.Respond(h.ReplaceRoles))
	return r
}

func perform(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_IssueToken(t *testing.T) {
	svc := &mockService{issueFn: func(req dto.TokenRequest) (*identity.Token, error) {
		return &identity.Token{AccessToken: "a", RefreshToken: "r"}, nil
	}}

	w := perform(newRouter(svc), http.MethodPost, "/users/token", `{"username":"hd","password":"secret"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"a","refresh_token":"r"}`, string(testutil.ParseEnvelope(w).Result))
}

func TestHandler_IssueToken_Rejected(t *testing.T) {
	svc := &mockService{issueFn: func(req dto.TokenRequest) (*identity.Token, error) {
		return nil, errors.NewInvalidLoginError()
	}}

	w := perform(newRouter(svc), http.MethodPost, "/users/token", `{"username":"hd","password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, testutil.ParseEnvelope(w).Success)
}

func TestHandler_List_Pagination(t *testing.T) {
	svc := &mockService{listFn: func(offset, limit int) ([]*dto.UserDTO, error) {
		assert.Equal(t, 1, offset)
		assert.Equal(t, 2, limit)
		return []*dto.UserDTO{{Username: "gp.default", Roles: []string{}}}, nil
	}}

	w := perform(newRouter(svc), http.MethodGet, "/users?limit=2&offset=1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(testutil.ParseEnvelope(w).Result), `"count":1`)
}

func TestHandler_Update_ProtectedWarning(t *testing.T) {
	svc := &mockService{updateFn: func(id string, _ dto.UpdateUserRequest) (*dto.UpdateUserResult, error) {
		return &dto.UpdateUserResult{Warning: "Updating this user is not allowed"}, nil
	}}

	w := perform(newRouter(svc), http.MethodPatch, "/users/admin", `{"enabled": false}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"warning":"Updating this user is not allowed"}`, string(testutil.ParseEnvelope(w).Result))
}

func TestHandler_ReplaceRoles_RequiresList(t *testing.T) {
	w := perform(newRouter(&mockService{}), http.MethodPatch, "/users/hd/roles", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ReplaceRoles_EmptyList(t *testing.T) {
	svc := &mockService{replaceFn: func(id string, roles []string) (*dto.UserDTO, error) {
		assert.Equal(t, "hd", id)
		assert.Empty(t, roles)
		return &dto.UserDTO{Username: "hd", Roles: []string{}}, nil
	}}

	w := perform(newRouter(svc), http.MethodPatch, "/users/hd/roles", `{"roles": []}`)

	require.Equal(t, http.StatusOK, w.Code)
}
