package middleware

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/pkg/httperr"
	"github.com/fatflowers/tryonce/pkg/logctx"
)

var ErrOriginNotAllowed = errors.New("not allowed by CORS")

var localhostOrigin = regexp.MustCompile(`^http://localhost:\d+$`)

// OriginPolicy decides which browser origins may call the API with
// credentials.
type OriginPolicy struct {
	clientURL string
}

func NewOriginPolicy(clientURL string) *OriginPolicy {
	return &OriginPolicy{clientURL: clientURL}
}

// Allow evaluates, first match wins: no origin, the configured client URL,
// then http://localhost on any port. Everything else is denied.
func (p *OriginPolicy) Allow(origin string) error {
	switch {
	case origin == "":
		return nil
	case p.clientURL != "" && origin == p.clientURL:
		return nil
	case localhostOrigin.MatchString(origin):
		return nil
	}
	return ErrOriginNotAllowed
}

func (p *OriginPolicy) allowed(origin string) bool {
	return p.Allow(origin) == nil
}

// CORSMiddleware rejects denied origins with a 403 policy error before any
// body is read, and hands allowed ones to gin-contrib/cors for the
// credentialed headers and preflight replies.
func CORSMiddleware(policy *OriginPolicy, base *zap.SugaredLogger, onReject func(status int)) gin.HandlerFunc {
	headers := cors.New(cors.Config{
		AllowOriginFunc:  policy.allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if err := policy.Allow(origin); err != nil {
			logctx.FromGin(c, base).Warnw("cors_denied", "origin", origin)
			if onReject != nil {
				onReject(http.StatusForbidden)
			}
			_ = c.Error(httperr.Wrap(http.StatusForbidden, err))
			c.Abort()
			return
		}
		headers(c)
	}
}
