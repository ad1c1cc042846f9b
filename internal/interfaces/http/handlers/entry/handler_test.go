package entry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdesk/internal/application/entry/dto"
	"fleetdesk/internal/interfaces/http/handlers/testutil"
	"fleetdesk/internal/interfaces/http/middleware"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
)

type mockService struct {
	Service
	jobsFn   func(q dto.JobsQuery, page query.Page) ([]dto.JobDTO, error)
	policyFn func(id int) (*dto.PolicyDTO, error)
	createFn func(req dto.CreateEntryRequest) (int64, error)
	signFn   func(id int, req dto.SignEntryRequest, username string) (int64, error)
}

func (m *mockService) ListJobs(_ context.Context, q dto.JobsQuery, page query.Page) ([]dto.JobDTO, error) {
	return m.jobsFn(q, page)
}

func (m *mockService) GetPolicy(_ context.Context, id int) (*dto.PolicyDTO, error) {
	return m.policyFn(id)
}

func (m *mockService) Create(_ context.Context, req dto.CreateEntryRequest) (int64, error) {
	return m.createFn(req)
}

func (m *mockService) Sign(_ context.Context, id int, req dto.SignEntryRequest, username string) (int64, error) {
	return m.signFn(id, req, username)
}

// asUser stands in for the authorization gate.
func asUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		testutil.SetAuthContext(c, username, "GPolicy")
		c.Next()
	}
}

func newRouter(h *Handler) *gin.Engine {
	w := middleware.NewWrapper(nil, logger.NewLogger())

	r := gin.New()
	r.GET("/entries/jobs", w.Respond(h.ListJobs))
	r.GET("/entries/policy/:id", w.Respond(h.GetPolicy))
	r.POST("/entries", w.Respond(h.Create))
	r.PATCH("/entries/:id", asUser("gp.default"), w.Respond(h.Sign))
	return r
}

func perform(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ListJobs(t *testing.T) {
	var got dto.JobsQuery
	svc := &mockService{jobsFn: func(q dto.JobsQuery, _ query.Page) ([]dto.JobDTO, error) {
		got = q
		return []dto.JobDTO{{HostName: "HOST-00001"}}, nil
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodGet, "/entries/jobs?filter=recent&sort=signed_at", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.JobsQuery{Filter: "recent", Sort: "signed_at"}, got)
	assert.Contains(t, string(testutil.ParseEnvelope(w).Result), `"count":1`)
}

func TestHandler_ListJobs_RejectsUnknownSort(t *testing.T) {
	svc := &mockService{}

	w := perform(newRouter(NewHandler(svc)), http.MethodGet, "/entries/jobs?sort=reason", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetPolicy_NotFound(t *testing.T) {
	svc := &mockService{policyFn: func(id int) (*dto.PolicyDTO, error) {
		return nil, errors.NewNotFoundError("Job with id 9 does not exist...")
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodGet, "/entries/policy/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", testutil.ParseEnvelope(w).Error.Type)
}

func TestHandler_Create(t *testing.T) {
	svc := &mockService{createFn: func(req dto.CreateEntryRequest) (int64, error) {
		require.NotNil(t, req.UUIDLabel)
		assert.Equal(t, 142, *req.UUIDLabel)
		assert.Nil(t, req.Status)
		return 1, nil
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodPost, "/entries",
		`{"uuid_label": 142, "created_by": "SGT SMITH", "reason": "Format"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value":1}`, string(testutil.ParseEnvelope(w).Result))
}

func TestHandler_Create_MissingReason(t *testing.T) {
	w := perform(newRouter(NewHandler(&mockService{})), http.MethodPost, "/entries",
		`{"uuid_label": 142, "created_by": "SGT SMITH"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, testutil.ParseEnvelope(w).Error.Elements, "reason")
}

func TestHandler_Sign_UsesCaller(t *testing.T) {
	svc := &mockService{signFn: func(id int, req dto.SignEntryRequest, username string) (int64, error) {
		assert.Equal(t, 7, id)
		assert.Equal(t, "gp.default", username)
		return 1, nil
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodPatch, "/entries/7", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value":1}`, string(testutil.ParseEnvelope(w).Result))
}
