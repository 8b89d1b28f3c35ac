package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/pkg/httperr"
	"github.com/fatflowers/tryonce/pkg/logctx"
)

var ErrUnauthenticated = errors.New("authentication required")

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// RequireAuth admits requests carrying a valid session token, read from the
// named cookie or an Authorization bearer header. The user id is stored
// under logctx.GinUserIDKey and in the request context.
func RequireAuth(v TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := Cookies(c)[cookieName]
		if h := c.GetHeader("Authorization"); token == "" && strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
		userID, err := v.VerifyToken(token)
		if err != nil {
			_ = c.Error(httperr.Wrap(http.StatusUnauthorized, ErrUnauthenticated))
			c.Abort()
			return
		}
		c.Set(logctx.GinUserIDKey, userID)
		ctx := logctx.WithUserID(c.Request.Context(), userID)
		if v, ok := c.Get(logctx.GinLoggerKey); ok {
			if lg, ok := v.(*zap.SugaredLogger); ok && lg != nil {
				lg = lg.With("user_id", userID)
				c.Set(logctx.GinLoggerKey, lg)
				ctx = logctx.WithLogger(ctx, lg)
			}
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UserID returns the id stored by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(logctx.GinUserIDKey)
}
