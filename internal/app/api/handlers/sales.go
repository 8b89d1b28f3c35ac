package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/tryonce/internal/app/api/middleware"
	"github.com/fatflowers/tryonce/internal/app/service/auth"
	"github.com/fatflowers/tryonce/internal/app/service/sales"
	"github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/httperr"
	"github.com/fatflowers/tryonce/pkg/response"
)

var ErrAdminOnly = errors.New("admin role required")

var salesErrors = statusMap{
	{sales.ErrInvalidRequest, http.StatusBadRequest},
	{auth.ErrUserNotFound, http.StatusUnauthorized},
}

type SalesRoutes struct {
	svc        sales.Reporter
	authn      auth.Authenticator
	cookieName string
}

func NewSalesRoutes(svc sales.Reporter, authn auth.Authenticator, cfg *config.Config) *SalesRoutes {
	return &SalesRoutes{svc: svc, authn: authn, cookieName: cfg.Auth.CookieName}
}

func (s *SalesRoutes) Prefix() string { return "/api/sales" }

func (s *SalesRoutes) Register(r gin.IRouter) {
	r.Use(middleware.RequireAuth(s.authn, s.cookieName), s.requireAdmin)
	r.POST("/summary", s.summary)
}

func (s *SalesRoutes) requireAdmin(c *gin.Context) {
	u, err := s.authn.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, salesErrors, err)
		return
	}
	if !u.IsAdmin() {
		fail(c, salesErrors, httperr.Wrap(http.StatusForbidden, ErrAdminOnly))
		return
	}
	c.Next()
}

// @Summary      Sales summary
// @Description  Aggregates orders per statistic type over a date range (inclusive, YYYY-MM-DD, UTC)
// @Tags         Sales
// @Accept       json
// @Produce      json
// @Param        request body sales.SummaryRequest true "Range and statistics"
// @Success      200  {object}  handlers.RespSalesSummary
// @Router       /api/sales/summary [post]
func (s *SalesRoutes) summary(c *gin.Context) {
	var req sales.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res, err := s.svc.Summary(c.Request.Context(), &req)
	if err != nil {
		fail(c, salesErrors, err)
		return
	}
	c.JSON(http.StatusOK, response.OKT(res))
}
