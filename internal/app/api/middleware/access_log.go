package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/pkg/httperr"
	"github.com/fatflowers/tryonce/pkg/logctx"
)

// AccessLogMiddleware logs method, path, status and latency of every
// request using the request-scoped logger.
func AccessLogMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		// Errors are rendered by the boundary once this stage has returned.
		status := c.Writer.Status()
		if !c.Writer.Written() && len(c.Errors) > 0 {
			status = httperr.StatusOf(c.Errors.Last().Err)
		}
		logctx.FromGin(c, base).Infow("http_access",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
