package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/pkg/httperr"
	"github.com/fatflowers/tryonce/pkg/logctx"
	"github.com/fatflowers/tryonce/pkg/response"
)

var ErrRouteNotFound = errors.New("route not found")

// ErrorBody is the data part of an error envelope.
type ErrorBody struct {
	Error     string `json:"error"`
	Path      string `json:"path,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(c *gin.Context, status int, msg string) {
	body := ErrorBody{Error: msg, Path: c.Request.URL.Path, RequestID: c.GetString(logctx.GinTraceIDKey)}
	c.AbortWithStatusJSON(status, response.ErrorT(response.CodeFromStatus(status), body))
}

func publicMessage(err error, status int, hideInternal bool) string {
	if status >= http.StatusInternalServerError && hideInternal {
		return http.StatusText(status)
	}
	return httperr.MessageOf(err)
}

// ErrorMiddleware renders the last error attached to the context after the
// rest of the chain has run. Status comes from the error when it carries
// one, otherwise 500. With hideInternal set, 5xx messages are generic.
func ErrorMiddleware(base *zap.SugaredLogger, hideInternal bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := httperr.StatusOf(err)
		if c.Errors.Last().IsType(gin.ErrorTypeBind) && status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}

		lg := logctx.FromGin(c, base)
		if status >= http.StatusInternalServerError {
			lg.Errorw("request failed", "status", status, "err", err)
		} else {
			lg.Infow("request rejected", "status", status, "err", err)
		}
		if c.Writer.Written() {
			return
		}
		writeError(c, status, publicMessage(err, status, hideInternal))
	}
}

// RecoveryMiddleware turns panics into a logged 500 envelope so the process
// keeps serving.
func RecoveryMiddleware(base *zap.SugaredLogger, hideInternal bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", recovered)
		}
		logctx.FromGin(c, base).Errorw("panic recovered", "err", err, "stack", string(debug.Stack()))
		if c.Writer.Written() {
			c.Abort()
			return
		}
		writeError(c, http.StatusInternalServerError, publicMessage(err, http.StatusInternalServerError, hideInternal))
	})
}

// NotFoundHandler answers unmatched routes with a structured 404.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		writeError(c, http.StatusNotFound, fmt.Sprintf("%s: %s %s", ErrRouteNotFound, c.Request.Method, c.Request.URL.Path))
	}
}
