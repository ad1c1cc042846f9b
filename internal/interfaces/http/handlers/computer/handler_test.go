package computer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdesk/internal/application/computer/dto"
	entrydto "fleetdesk/internal/application/entry/dto"
	"fleetdesk/internal/interfaces/http/handlers/testutil"
	"fleetdesk/internal/interfaces/http/middleware"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
)

type mockService struct {
	Service
	listFn   func(page query.Page) ([]dto.ComputerDTO, error)
	searchFn func(term string, page query.Page) ([]dto.ComputerDTO, error)
	labelFn  func(label int, page query.Page) (*dto.ComputerDetailDTO, error)
	createFn func(req dto.RegistrationRequest) (*dto.CreateComputerResult, error)
	updateFn func(label int, req dto.RegistrationRequest) (int64, error)
}

func (m *mockService) List(_ context.Context, page query.Page) ([]dto.ComputerDTO, error) {
	return m.listFn(page)
}

func (m *mockService) Search(_ context.Context, term string, page query.Page) ([]dto.ComputerDTO, error) {
	return m.searchFn(term, page)
}

func (m *mockService) GetByLabel(_ context.Context, label int, page query.Page) (*dto.ComputerDetailDTO, error) {
	return m.labelFn(label, page)
}

func (m *mockService) Create(_ context.Context, req dto.RegistrationRequest) (*dto.CreateComputerResult, error) {
	return m.createFn(req)
}

func (m *mockService) Update(_ context.Context, label int, req dto.RegistrationRequest) (int64, error) {
	return m.updateFn(label, req)
}

func newRouter(h *Handler) *gin.Engine {
	w := middleware.NewWrapper(nil, logger.NewLogger())

	r := gin.New()
	r.GET("/computers", w.Respond(h.List))
	r.GET("/computers/generic", w.Respond(h.Search))
	r.GET("/computers/label/:label", w.Respond(h.GetByLabel))
	r.POST("/computers", w.Respond(h.Create))
	r.PATCH("/computers/:label", w.Respond(h.Update))
	return r
}

func perform(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validRegistration = `{
	"created_by": "SGT SMITH",
	"host_name": "HOST-00001",
	"mac_address": "00:11:22:33:44:55",
	"ipv4_address": "10.0.0.1",
	"network": "__S",
	"os": "Windows 11",
	"network_adapter": "Intel",
	"secseal": 12345
}`

func TestHandler_List(t *testing.T) {
	var gotPage query.Page
	svc := &mockService{listFn: func(page query.Page) ([]dto.ComputerDTO, error) {
		gotPage = page
		return []dto.ComputerDTO{{UUIDLabel: 101}, {UUIDLabel: 100}}, nil
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodGet, "/computers?limit=2&offset=3", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, query.Page{Limit: 2, Offset: 3}, gotPage)

	var result struct {
		Computers []dto.ComputerDTO `json:"computers"`
		Count     int               `json:"count"`
	}
	require.NoError(t, testutil.DecodeResult(w, &result))
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 101, result.Computers[0].UUIDLabel)
}

func TestHandler_List_BadPagination(t *testing.T) {
	svc := &mockService{listFn: func(query.Page) ([]dto.ComputerDTO, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}
	r := newRouter(NewHandler(svc))

	for _, target := range []string{"/computers?limit=-1", "/computers?offset=-5", "/computers?limit=abc"} {
		w := perform(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "Value Error", testutil.ParseEnvelope(w).Error.Type, target)
	}
}

func TestHandler_Search(t *testing.T) {
	var gotTerm string
	svc := &mockService{searchFn: func(term string, _ query.Page) ([]dto.ComputerDTO, error) {
		gotTerm = term
		return []dto.ComputerDTO{}, nil
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodGet, "/computers/generic?search=0011", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0011", gotTerm)
}

func TestHandler_GetByLabel_Unknown(t *testing.T) {
	svc := &mockService{labelFn: func(label int, _ query.Page) (*dto.ComputerDetailDTO, error) {
		return nil, errors.NewValidationError("Computer with label 999 does not exist...")
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodGet, "/computers/label/999", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := testutil.ParseEnvelope(w)
	assert.Equal(t, "Computer with label 999 does not exist...", env.Error.Message)
}

func TestHandler_GetByLabel(t *testing.T) {
	svc := &mockService{labelFn: func(label int, _ query.Page) (*dto.ComputerDetailDTO, error) {
		return &dto.ComputerDetailDTO{
			Computer: dto.ComputerDTO{UUIDLabel: label},
			Entries:  entrydto.HistoryDTO{Count: 0, History: []entrydto.EntryDTO{}},
		}, nil
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodGet, "/computers/label/142", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(testutil.ParseEnvelope(w).Result), `"uuid_label":142`)
}

func TestHandler_Create(t *testing.T) {
	svc := &mockService{createFn: func(req dto.RegistrationRequest) (*dto.CreateComputerResult, error) {
		assert.Equal(t, "HOST-00001", req.HostName)
		return &dto.CreateComputerResult{Computer: 100, Entry: 1}, nil
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodPost, "/computers", validRegistration)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"computer":100,"entry":1}`, string(testutil.ParseEnvelope(w).Result))
}

func TestHandler_Create_Validation(t *testing.T) {
	svc := &mockService{createFn: func(dto.RegistrationRequest) (*dto.CreateComputerResult, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}
	r := newRouter(NewHandler(svc))

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad mac", strings.Replace(validRegistration, "00:11:22:33:44:55", "00-11-22-33-44-55", 1), "mac_address"},
		{"bad ipv4", strings.Replace(validRegistration, "10.0.0.1", "10.0.0.256", 1), "ipv4_address"},
		{"long host name", strings.Replace(validRegistration, "HOST-00001", strings.Repeat("H", 31), 1), "host_name"},
		{"label below range", strings.Replace(validRegistration, `"secseal"`, `"uuid_label": 99, "secseal"`, 1), "uuid_label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/computers", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := testutil.ParseEnvelope(w)
			require.NotNil(t, env.Error)
			assert.Contains(t, env.Error.Elements, tt.field)
		})
	}
}

func TestHandler_Create_DuplicateHostName(t *testing.T) {
	svc := &mockService{createFn: func(dto.RegistrationRequest) (*dto.CreateComputerResult, error) {
		return nil, errors.NewIntegrityError("duplicate", map[string][]string{
			"host_name": {"This host name already exists."},
		})
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodPost, "/computers", validRegistration)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	env := testutil.ParseEnvelope(w)
	assert.Equal(t, "Integrity Error", env.Error.Type)
	assert.Contains(t, env.Error.Elements["host_name"][0], "already exists")
}

func TestHandler_Update(t *testing.T) {
	svc := &mockService{updateFn: func(label int, _ dto.RegistrationRequest) (int64, error) {
		assert.Equal(t, 142, label)
		return 1, nil
	}}

	w := perform(newRouter(NewHandler(svc)), http.MethodPatch, "/computers/142", validRegistration)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"affected":1}`, string(testutil.ParseEnvelope(w).Result))
}
