package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/internal/app/api/middleware"
	"github.com/fatflowers/tryonce/internal/app/service/auth"
	"github.com/fatflowers/tryonce/internal/app/service/catalog"
	"github.com/fatflowers/tryonce/internal/app/service/order"
	"github.com/fatflowers/tryonce/internal/app/service/sales"
	"github.com/fatflowers/tryonce/internal/models"
	"github.com/fatflowers/tryonce/pkg/config"
)

var testCfg = &config.Config{Auth: config.AuthConfig{CookieName: "token", TokenTTL: time.Hour}}

// stubAuth knows two sessions: "customer-token" and "admin-token".
type stubAuth struct {
	registerErr error
	loginErr    error
	lastLogin   *auth.LoginRequest
}

var (
	customer = &models.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: models.UserRoleCustomer}
	admin    = &models.User{ID: "a1", Name: "Root", Email: "root@example.com", Role: models.UserRoleAdmin}
)

func (s *stubAuth) Register(_ context.Context, req *auth.RegisterRequest) (*auth.Session, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &auth.Session{User: &models.User{ID: "new", Name: req.Name, Email: req.Email}, Token: "customer-token"}, nil
}

func (s *stubAuth) Login(_ context.Context, req *auth.LoginRequest) (*auth.Session, error) {
	s.lastLogin = req
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &auth.Session{User: customer, Token: "customer-token"}, nil
}

func (s *stubAuth) GetUser(_ context.Context, id string) (*models.User, error) {
	switch id {
	case customer.ID:
		return customer, nil
	case admin.ID:
		return admin, nil
	}
	return nil, auth.ErrUserNotFound
}

func (s *stubAuth) VerifyToken(token string) (string, error) {
	switch token {
	case "customer-token":
		return customer.ID, nil
	case "admin-token":
		return admin.ID, nil
	case "ghost-token":
		return "ghost", nil
	}
	return "", auth.ErrInvalidToken
}

type stubCatalog struct {
	lastList *catalog.ListRequest
	listErr  error
}

func (s *stubCatalog) List(_ context.Context, req *catalog.ListRequest) (*catalog.ListResponse, error) {
	s.lastList = req
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &catalog.ListResponse{Items: []*models.Product{{ID: "p1", Name: "Kurta"}}, Total: 1}, nil
}

func (s *stubCatalog) Categories(context.Context) ([]string, error) {
	return []string{"men", "women"}, nil
}

func (s *stubCatalog) Get(_ context.Context, id string) (*models.Product, error) {
	if id == "p1" {
		return &models.Product{ID: "p1", Name: "Kurta"}, nil
	}
	return nil, catalog.ErrProductNotFound
}

func (s *stubCatalog) GetMany(context.Context, []string) (map[string]*models.Product, error) {
	return nil, errors.New("not used")
}

type stubOrders struct {
	createErr  error
	lastUserID string
}

func (s *stubOrders) Create(_ context.Context, userID string, req *order.CreateRequest) (*models.Order, error) {
	s.lastUserID = userID
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Order{ID: "o1", UserID: userID, ShippingAddress: req.ShippingAddress}, nil
}

func (s *stubOrders) List(_ context.Context, userID string) ([]*models.Order, error) {
	s.lastUserID = userID
	return []*models.Order{{ID: "o1", UserID: userID}}, nil
}

func (s *stubOrders) Get(_ context.Context, userID, id string) (*models.Order, error) {
	s.lastUserID = userID
	if id == "o1" {
		return &models.Order{ID: id, UserID: userID}, nil
	}
	return nil, order.ErrOrderNotFound
}

type stubSales struct{}

func (stubSales) Summary(_ context.Context, req *sales.SummaryRequest) (*sales.SummaryResponse, error) {
	if req.StartDate > req.EndDate {
		return nil, sales.ErrInvalidRequest
	}
	return &sales.SummaryResponse{StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

// newTestEngine mounts groups behind the error boundary and the cookie stage.
func newTestEngine(groups ...RouteGroup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorMiddleware(zap.NewNop().Sugar(), false), middleware.CookieMiddleware())
	RegisterFixedRoutes(r)
	Mount(r, groups...)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
