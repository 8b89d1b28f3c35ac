package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/internal/app/api/handlers"
	mw "github.com/fatflowers/tryonce/internal/app/api/middleware"
	cfgpkg "github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/metrics"
	"github.com/fatflowers/tryonce/pkg/response"
)

// stubGroup stands in for a collaborator and counts handler invocations.
type stubGroup struct{ hits atomic.Int32 }

func (g *stubGroup) Prefix() string { return "/api/products" }

func (g *stubGroup) Register(r gin.IRouter) {
	r.POST("/echo", func(c *gin.Context) {
		g.hits.Add(1)
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			return
		}
		c.JSON(http.StatusOK, body)
	})
	r.POST("/form", func(c *gin.Context) {
		g.hits.Add(1)
		c.JSON(http.StatusOK, mw.Form(c))
	})
	r.GET("/cookies", func(c *gin.Context) {
		c.JSON(http.StatusOK, mw.Cookies(c))
	})
	r.GET("/boom", func(c *gin.Context) { panic("mongo password is hunter2") })
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(errors.New("dial tcp 10.0.0.5:27017: refused")) })
}

func testConfig(t *testing.T) *cfgpkg.Config {
	t.Helper()
	return &cfgpkg.Config{
		Env:        cfgpkg.EnvDev,
		ClientURL:  "https://shop.example.com",
		UploadsDir: t.TempDir(),
		BodyLimit:  cfgpkg.DefaultBodyLimit,
	}
}

func newTestServer(t *testing.T, cfg *cfgpkg.Config, prom *metrics.Prometheus) (*gin.Engine, *stubGroup) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := &stubGroup{}
	r := newEngine(cfg, NewPipeline(cfg, zap.NewNop().Sugar(), prom))
	registerRoutes(routeParams{Engine: r, Groups: []handlers.RouteGroup{g}})
	return r, g
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse[mw.ErrorBody] {
	t.Helper()
	var out response.APIResponse[mw.ErrorBody]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPipeline_StageOrder(t *testing.T) {
	cfg := testConfig(t)
	log := zap.NewNop().Sugar()

	require.Equal(t, []string{
		"recovery", "errors", "trace", "request_logger", "access_log",
		"cors", "json_body", "form_body", "cookies", "static",
	}, NewPipeline(cfg, log, nil).Names())

	withMetrics := NewPipeline(cfg, log, metrics.NewPrometheus(metrics.NewPrometheusOptions{}))
	require.Equal(t, []string{"recovery", "metrics", "errors"}, withMetrics.Names()[:3])
}

func TestEngine_HealthAndLanding(t *testing.T) {
	r, _ := newTestServer(t, testConfig(t), nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"status":"ok"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get(mw.RequestIDHeader))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<html")
}

func TestEngine_UnmatchedRouteIsStructured404(t *testing.T) {
	r, _ := newTestServer(t, testConfig(t), nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	out := decodeError(t, w)
	require.Equal(t, response.APIResponseCodeNotFound, out.Code)
	require.Equal(t, "/api/nope", out.Data.Path)
	require.NotEmpty(t, out.Data.RequestID)
}

func TestEngine_CORS(t *testing.T) {
	r, g := newTestServer(t, testConfig(t), nil)

	for _, origin := range []string{"https://shop.example.com", "http://localhost:5173"} {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", origin)
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code, origin)
		require.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/products/echo", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(r, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	for _, origin := range []string{"https://evil.example.com", "https://localhost:3000", "http://127.0.0.1:3000"} {
		req := httptest.NewRequest(http.MethodPost, "/api/products/echo", strings.NewReader(`{"a":1}`))
		req.Header.Set("Origin", origin)
		req.Header.Set("Content-Type", "application/json")
		w := serve(r, req)
		require.Equal(t, http.StatusForbidden, w.Code, origin)
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, decodeError(t, w).Data.Error, mw.ErrOriginNotAllowed.Error())
	}
	require.Zero(t, g.hits.Load())
}

func TestEngine_JSONBodyLimits(t *testing.T) {
	cfg := testConfig(t)
	cfg.BodyLimit = 64
	prom := metrics.NewPrometheus(metrics.NewPrometheusOptions{Subsystem: "tryonce"})
	r, g := newTestServer(t, cfg, prom)

	big := `{"pad":"` + strings.Repeat("x", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products/echo", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Equal(t, response.APIResponseCodeEntityTooLarge, decodeError(t, w).Code)

	req = httptest.NewRequest(http.MethodPost, "/api/products/echo", strings.NewReader(`{"a":`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, g.hits.Load())

	req = httptest.NewRequest(http.MethodPost, "/api/products/echo", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"a":1}`, w.Body.String())

	m := serve(prom.Handler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, m.Body.String(), `tryonce_rejected_total{code="413",stage="json_body"} 1`)
	require.Contains(t, m.Body.String(), `tryonce_rejected_total{code="400",stage="json_body"} 1`)
}

func TestEngine_BodyLimitIgnoresContentType(t *testing.T) {
	cfg := testConfig(t)
	cfg.BodyLimit = 64
	r, g := newTestServer(t, cfg, nil)

	big := `{"pad":"` + strings.Repeat("x", 100) + `"}`
	for _, ct := range []string{"text/plain", ""} {
		req := httptest.NewRequest(http.MethodPost, "/api/products/echo", strings.NewReader(big))
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		w := serve(r, req)
		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code, ct)
		require.Equal(t, response.APIResponseCodeEntityTooLarge, decodeError(t, w).Code)
	}
	require.Zero(t, g.hits.Load())

	req := httptest.NewRequest(http.MethodPost, "/api/products/echo", strings.NewReader(`{"a":1}`))
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"a":1}`, w.Body.String())
}

func TestEngine_FormAndCookies(t *testing.T) {
	r, _ := newTestServer(t, testConfig(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products/form", strings.NewReader("user[name]=asha&user[city]=pune"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user":{"name":"asha","city":"pune"}}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/products/form", strings.NewReader("a=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusBadRequest, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/products/cookies", nil)
	req.Header.Set("Cookie", "token=abc; theme=dark")
	w = serve(r, req)
	require.JSONEq(t, `{"token":"abc","theme":"dark"}`, w.Body.String())
}

func TestEngine_StaticUploads(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.UploadsDir, "shoe.jpg"), []byte("jpeg-bytes"), 0o600))
	r, _ := newTestServer(t, cfg, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/uploads/shoe.jpg", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "jpeg-bytes", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/uploads/missing.jpg", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, response.APIResponseCodeNotFound, decodeError(t, w).Code)
}

func TestEngine_ErrorBoundaryKeepsServing(t *testing.T) {
	r, _ := newTestServer(t, testConfig(t), nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/products/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, response.APIResponseCodeError, decodeError(t, w).Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/products/fail", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, decodeError(t, w).Data.Error, "refused")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestEngine_ProdHidesInternalErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = cfgpkg.EnvProd
	r, _ := newTestServer(t, cfg, nil)
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	for _, path := range []string{"/api/products/boom", "/api/products/fail"} {
		w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		body := w.Body.String()
		require.NotContains(t, body, "hunter2")
		require.NotContains(t, body, "10.0.0.5")
		require.Equal(t, http.StatusText(http.StatusInternalServerError), decodeError(t, w).Data.Error)
	}
}
