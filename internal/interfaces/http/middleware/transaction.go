package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/shared/db"
	"fleetdesk/internal/shared/constants"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/utils"
)

// HandlerFunc is an API handler with an explicit result. A nil error commits
// the request transaction and the result becomes the envelope's "result".
type HandlerFunc func(c *gin.Context) (any, error)

// Wrapper turns HandlerFuncs into gin handlers with one uniform error mapping.
type Wrapper struct {
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewWrapper(txManager *db.TransactionManager, logger logger.Interface) *Wrapper {
	return &Wrapper{txManager: txManager, logger: logger}
}

// Transactional runs h inside one database transaction, committed only when h
// succeeds.
func (w *Wrapper) Transactional(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var result any
		err := w.txManager.RunInTransaction(c.Request.Context(), func(ctx context.Context) error {
			original := c.Request
			c.Request = c.Request.WithContext(ctx)
			defer func() { c.Request = original }()

			r, err := w.invoke(c, h)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
		w.write(c, result, err)
	}
}

// Respond runs h without a transaction; used by routes backed only by the
// identity provider.
func (w *Wrapper) Respond(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := w.invoke(c, h)
		w.write(c, result, err)
	}
}

// invoke converts a handler panic into an internal error.
func (w *Wrapper) invoke(c *gin.Context, h HandlerFunc) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Errorw("handler panicked",
				"path", c.Request.URL.Path,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			result = nil
			err = errors.NewInternalError(constants.ErrMsgInternalServerError).WithCause(fmt.Errorf("panic: %v", r))
		}
	}()
	return h(c)
}

func (w *Wrapper) write(c *gin.Context, result any, err error) {
	if err == nil {
		utils.SuccessResponse(c, result)
		return
	}

	_ = c.Error(err)
	appErr := utils.ErrorResponseWithError(c, err)
	if appErr.Code >= 500 {
		w.logger.Errorw("request failed",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"type", appErr.Type,
			"error", err,
		)
	}
}
