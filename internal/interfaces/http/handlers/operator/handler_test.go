package operator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdesk/internal/application/operator/dto"
	"fleetdesk/internal/interfaces/http/handlers/testutil"
	"fleetdesk/internal/interfaces/http/middleware"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
)

// memoryService keeps operators in a map keyed by id.
type memoryService struct {
	operators map[int]dto.OperatorDTO
	nextID    int
}

func newMemoryService() *memoryService {
	return &memoryService{operators: map[int]dto.OperatorDTO{}, nextID: 1}
}

func (m *memoryService) List(_ context.Context, _ query.Page) ([]dto.OperatorDTO, error) {
	out := make([]dto.OperatorDTO, 0, len(m.operators))
	for id := 1; id < m.nextID; id++ {
		if op, ok := m.operators[id]; ok {
			out = append(out, op)
		}
	}
	return out, nil
}

func (m *memoryService) Get(_ context.Context, id int) (*dto.OperatorDTO, error) {
	op, ok := m.operators[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Operator with id %d does not exist...", id))
	}
	return &op, nil
}

func (m *memoryService) Create(_ context.Context, req dto.CreateOperatorRequest) (int, error) {
	id := m.nextID
	m.nextID++
	m.operators[id] = dto.OperatorDTO{ID: id, Rank: req.Rank, FName: req.FName, LName: req.LName}
	return id, nil
}

func (m *memoryService) Update(_ context.Context, id int, req dto.UpdateOperatorRequest) (int64, error) {
	op, ok := m.operators[id]
	if !ok {
		return 0, nil
	}
	if req.Rank != nil {
		op.Rank = *req.Rank
	}
	m.operators[id] = op
	return 1, nil
}

func (m *memoryService) Delete(_ context.Context, id int) (int64, error) {
	if _, ok := m.operators[id]; !ok {
		return 0, nil
	}
	delete(m.operators, id)
	return 1, nil
}

func newRouter(svc Service) *gin.Engine {
	h := NewHandler(svc)
	w := middleware.NewWrapper(nil, logger.NewLogger())

	r := gin.New()
	g := r.Group("/operators")
	g.GET("", w.Respond(h.List))
	g.GET("/:id", w.Respond(h.Get))
	g.POST("", w.Respond(h.Create))
	g.PATCH("/:id", w.Respond(h.Update))
	g.DELETE("/:id", w.Respond(h.Delete))
	return r
}

func perform(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Lifecycle(t *testing.T) {
	r := newRouter(newMemoryService())

	w := perform(r, http.MethodPost, "/operators", `{"rank":"CEO","fname":"BILL","lname":"SMITH"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, string(testutil.ParseEnvelope(w).Result))

	w = perform(r, http.MethodPatch, "/operators/1", `{"rank":"CTO"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"affected":1}`, string(testutil.ParseEnvelope(w).Result))

	w = perform(r, http.MethodGet, "/operators/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"operator":{"id":1,"rank":"CTO","fname":"BILL","lname":"SMITH"}}`,
		string(testutil.ParseEnvelope(w).Result))

	w = perform(r, http.MethodGet, "/operators", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(testutil.ParseEnvelope(w).Result), `"count":1`)
}

func TestHandler_MissingOperator(t *testing.T) {
	r := newRouter(newMemoryService())

	w := perform(r, http.MethodDelete, "/operators/42", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := testutil.ParseEnvelope(w)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"affected":0}`, string(env.Result))

	w = perform(r, http.MethodGet, "/operators/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", testutil.ParseEnvelope(w).Error.Type)
}

func TestHandler_Create_Validation(t *testing.T) {
	r := newRouter(newMemoryService())

	w := perform(r, http.MethodPost, "/operators", `{"rank":"CEO","fname":"`+strings.Repeat("A", 101)+`","lname":"SMITH"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, testutil.ParseEnvelope(w).Error.Elements, "fname")
}
