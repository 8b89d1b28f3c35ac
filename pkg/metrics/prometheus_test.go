package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_CountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := NewPrometheus(NewPrometheusOptions{Subsystem: "api"})

	r := gin.New()
	r.Use(p.HandlerFunc())
	r.GET("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, path := range []string{"/items/1", "/items/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(p.reqCnt.WithLabelValues("200", "GET", "/items/:id", "")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.reqCnt.WithLabelValues("404", "GET", "unmatched", "")))
}

func TestPrometheus_RejectionsExposed(t *testing.T) {
	p := NewPrometheus(NewPrometheusOptions{Subsystem: "api"})
	p.ObserveRejection("cors", http.StatusForbidden)

	w := httptest.NewRecorder()
	p.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), `api_rejected_total{code="403",stage="cors"} 1`))
}

func TestPrometheus_NilObserveIsNoop(t *testing.T) {
	var p *Prometheus
	require.NotPanics(t, func() { p.ObserveRejection("cors", http.StatusForbidden) })
}
