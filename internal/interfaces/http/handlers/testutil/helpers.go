package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/shared/authorization"
	"fleetdesk/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.RegisterBindingValidators()
}

// NewTestContext creates a test gin.Context with the given method, path, and optional body.
func NewTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// NewFormContext creates a test gin.Context carrying an url-encoded form.
func NewFormContext(method, path string, form url.Values) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// SetAuthContext simulates a request admitted by the authorization gate.
func SetAuthContext(c *gin.Context, username string, roles ...string) {
	authorization.SetPrincipal(c, authorization.Principal{
		Username: username,
		FullName: username,
		Roles:    roles,
	})
	c.Set(authorization.ContextKeyToken, "test-access-token")
}

// SetURLParam sets a URL parameter on the gin context.
func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// SetQueryParams sets query parameters on the gin context.
func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// ParseResponse parses the JSON response body into the target struct.
func ParseResponse(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// Envelope mirrors utils.Envelope for test assertions.
type Envelope struct {
	URL     string          `json:"url"`
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

// ErrorInfo mirrors utils.ErrorInfo for test assertions.
type ErrorInfo struct {
	Type     string              `json:"type"`
	Message  string              `json:"message"`
	Elements map[string][]string `json:"elements,omitempty"`
}

// ParseEnvelope decodes the response envelope, panicking on malformed JSON.
func ParseEnvelope(w *httptest.ResponseRecorder) Envelope {
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		panic("testutil: response is not an envelope: " + err.Error())
	}
	return env
}

// DecodeResult unmarshals the envelope result into target.
func DecodeResult(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(ParseEnvelope(w).Result, target)
}
