package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealth_ExactBody(t *testing.T) {
	r := newTestEngine()
	w := do(t, r, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"status":"ok"}`, w.Body.String())
}

func TestLanding_ServesHTML(t *testing.T) {
	r := newTestEngine()
	w := do(t, r, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), "Try Once")
	require.Contains(t, w.Body.String(), `href="/api/health"`)
}

func TestMount_RegistersEveryGroupUnderItsPrefix(t *testing.T) {
	a := &stubAuth{}
	r := newTestEngine(
		NewSalesRoutes(stubSales{}, a, testCfg),
		NewOrderRoutes(&stubOrders{}, a, testCfg),
		NewProductRoutes(&stubCatalog{}),
		NewAuthRoutes(a, testCfg, zap.NewNop().Sugar()),
	)

	routes := map[string]bool{}
	for _, rt := range r.Routes() {
		routes[rt.Method+" "+rt.Path] = true
	}
	for _, want := range []string{
		"GET /",
		"GET /api/health",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"GET /api/auth/me",
		"GET /api/products",
		"GET /api/products/categories",
		"GET /api/products/:id",
		"POST /api/products/search",
		"POST /api/orders",
		"GET /api/orders",
		"GET /api/orders/:id",
		"POST /api/sales/summary",
	} {
		require.True(t, routes[want], want)
	}
}
