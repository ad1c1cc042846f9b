package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/shared/errors"
)

// Envelope is the body of every API response.
type Envelope struct {
	URL     string     `json:"url"`
	Success bool       `json:"success"`
	Result  any        `json:"result,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo describes a failed request.
type ErrorInfo struct {
	Type     string              `json:"type"`
	Message  string              `json:"message"`
	Elements map[string][]string `json:"elements,omitempty"`
}

// requestURL returns the full URL the client called.
func requestURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
}

// SuccessResponse writes a 200 envelope around result.
func SuccessResponse(c *gin.Context, result any) {
	c.JSON(http.StatusOK, Envelope{
		URL:     requestURL(c),
		Success: true,
		Result:  result,
	})
}

// ErrorResponseWithError classifies err and writes the failure envelope.
// It returns the classified error so callers can decide whether to log it.
func ErrorResponseWithError(c *gin.Context, err error) *errors.AppError {
	appErr := errors.Classify(err)
	c.JSON(appErr.Code, Envelope{
		URL:     requestURL(c),
		Success: false,
		Error: &ErrorInfo{
			Type:     appErr.Type.Kind(),
			Message:  appErr.Message,
			Elements: appErr.Elements,
		},
	})
	return appErr
}

// AbortWithError is ErrorResponseWithError for middleware.
func AbortWithError(c *gin.Context, err error) *errors.AppError {
	appErr := ErrorResponseWithError(c, err)
	c.Abort()
	return appErr
}
