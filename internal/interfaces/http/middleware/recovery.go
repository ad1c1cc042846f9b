package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/shared/constants"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/utils"
)

var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// Recovery catches panics outside the Wrapper (middleware, web pages) and
// answers with the internal error envelope. A client that already hung up
// gets nothing.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			fields := []any{
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"request_id", c.GetHeader(constants.HeaderXRequestID),
			}
			if clientGone(recovered) {
				log.Warnw("client connection lost", append(fields, "error", recovered)...)
				c.Abort()
				return
			}

			log.Errorw("panic recovered", append(fields,
				"headers", redactHeaders(c.Request.Header),
				"panic", fmt.Sprint(recovered),
				"stack", string(debug.Stack()),
			)...)
			utils.AbortWithError(c, errors.NewInternalError(constants.ErrMsgInternalServerError))
		}()
		c.Next()
	}
}

func clientGone(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	return stderrors.Is(err, syscall.EPIPE) ||
		stderrors.Is(err, syscall.ECONNRESET) ||
		stderrors.Is(err, http.ErrAbortHandler)
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if redactedHeaders[name] {
			out[name] = "*"
			continue
		}
		if len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}
