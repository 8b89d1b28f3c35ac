package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/internal/app/api/middleware"
	"github.com/fatflowers/tryonce/internal/app/service/auth"
	"github.com/fatflowers/tryonce/internal/models"
	"github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/logctx"
	"github.com/fatflowers/tryonce/pkg/response"
)

var authErrors = statusMap{
	{auth.ErrEmailTaken, http.StatusConflict},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrUserNotFound, http.StatusUnauthorized},
	{auth.ErrPasswordTooShort, http.StatusBadRequest},
}

// sessionCookie describes the cookie carrying the session token.
type sessionCookie struct {
	name   string
	ttl    time.Duration
	secure bool
}

func newSessionCookie(cfg *config.Config) sessionCookie {
	return sessionCookie{name: cfg.Auth.CookieName, ttl: cfg.Auth.TokenTTL, secure: cfg.IsProd()}
}

func (s sessionCookie) set(c *gin.Context, token string, maxAge int) {
	// Cross-site credentialed requests only carry SameSite=None cookies,
	// which browsers accept over https only.
	if s.secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(s.name, token, maxAge, "/", "", s.secure, true)
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

type AuthRoutes struct {
	svc    auth.Authenticator
	cookie sessionCookie
	log    *zap.SugaredLogger
}

func NewAuthRoutes(svc auth.Authenticator, cfg *config.Config, log *zap.SugaredLogger) *AuthRoutes {
	return &AuthRoutes{svc: svc, cookie: newSessionCookie(cfg), log: log}
}

func (a *AuthRoutes) Prefix() string { return "/api/auth" }

func (a *AuthRoutes) Register(r gin.IRouter) {
	r.POST("/register", a.register)
	r.POST("/login", a.login)
	r.POST("/logout", a.logout)
	r.GET("/me", middleware.RequireAuth(a.svc, a.cookie.name), a.me)
}

// @Summary      Register
// @Description  Creates a customer account and starts a session
// @Tags         Auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body auth.RegisterRequest true "Account details"
// @Success      201  {object}  handlers.RespAuth
// @Router       /api/auth/register [post]
func (a *AuthRoutes) register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}
	sess, err := a.svc.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, authErrors, err)
		return
	}
	a.cookie.set(c, sess.Token, int(a.cookie.ttl.Seconds()))
	c.JSON(http.StatusCreated, response.OKT(AuthResponse{User: sess.User, Token: sess.Token}))
}

// @Summary      Login
// @Tags         Auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body auth.LoginRequest true "Credentials"
// @Success      200  {object}  handlers.RespAuth
// @Router       /api/auth/login [post]
func (a *AuthRoutes) login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}
	sess, err := a.svc.Login(c.Request.Context(), &req)
	if err != nil {
		logctx.FromGin(c, a.log).Infow("login failed", "err", err)
		fail(c, authErrors, err)
		return
	}
	a.cookie.set(c, sess.Token, int(a.cookie.ttl.Seconds()))
	c.JSON(http.StatusOK, response.OKT(AuthResponse{User: sess.User, Token: sess.Token}))
}

// @Summary      Logout
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/auth/logout [post]
func (a *AuthRoutes) logout(c *gin.Context) {
	a.cookie.set(c, "", -1)
	c.JSON(http.StatusOK, response.OKT[any](nil))
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  handlers.RespAuth
// @Router       /api/auth/me [get]
func (a *AuthRoutes) me(c *gin.Context) {
	u, err := a.svc.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, authErrors, err)
		return
	}
	c.JSON(http.StatusOK, response.OKT(AuthResponse{User: u}))
}
