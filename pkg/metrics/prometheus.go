package metrics

/* adapted from https://github.com/zsais/go-gin-prometheus
edits:
- per-instance registry instead of the global one
- metrics listener owned by the caller's lifecycle
- rejection counter for the admission stages
*/

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var reqCnt = &Metric{
	ID:          "reqCnt",
	Name:        "req_total",
	Description: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	Type:        "counter_vec",
	Args:        []string{"code", "method", "url", "ref"}}

var reqDur = &Metric{
	ID:          "reqDur",
	Name:        "req_dur_ms",
	Description: "The HTTP request latencies in milliseconds.",
	Type:        "histogram_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var resSz = &Metric{
	ID:          "resSz",
	Name:        "resp_sz_bytes",
	Description: "The HTTP response sizes in bytes.",
	Type:        "summary_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var reqSz = &Metric{
	ID:          "reqSz",
	Name:        "req_sz_bytes",
	Description: "The HTTP request sizes in bytes.",
	Type:        "summary_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var defaultMetricPath = "/metrics"

type Logger interface {
	Errorf(format string, v ...interface{})
}

/*
RequestCounterURLLabelMappingFn is a function which can be supplied to the middleware to control
the cardinality of the request counter's "url" label. Unmatched paths should collapse to a
constant so that probes for random URLs do not create new series.
*/
type RequestCounterURLLabelMappingFn func(c *gin.Context) string

// Prometheus contains the metrics gathered by the instance and its path
type Prometheus struct {
	registry *prometheus.Registry

	reqCnt       *prometheus.CounterVec
	reqDur       *prometheus.HistogramVec
	reqSz, resSz *prometheus.SummaryVec
	rejected     *prometheus.CounterVec

	MetricsPath string

	ReqCntURLLabelMappingFn RequestCounterURLLabelMappingFn

	srv    *http.Server
	logger Logger
}

type NewPrometheusOptions struct {
	Subsystem               string
	MetricsPath             string
	ReqCntURLLabelMappingFn func(c *gin.Context) string
	Logger                  Logger
}

// NewPrometheus generates a new set of metrics with a certain subsystem name
func NewPrometheus(options NewPrometheusOptions) *Prometheus {
	p := &Prometheus{
		registry:    prometheus.NewRegistry(),
		MetricsPath: options.MetricsPath,
		logger:      options.Logger,
	}
	if p.MetricsPath == "" {
		p.MetricsPath = defaultMetricPath
	}

	if options.ReqCntURLLabelMappingFn != nil {
		p.ReqCntURLLabelMappingFn = options.ReqCntURLLabelMappingFn
	} else {
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			if fp := c.FullPath(); fp != "" {
				return fp
			}
			return "unmatched"
		}
	}

	p.registerMetrics(options.Subsystem)
	return p
}

func (p *Prometheus) registerMetrics(subsystem string) {
	p.register(collectors.NewGoCollector(), "go")
	p.register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), "process")

	p.reqCnt = p.register(NewMetric(reqCnt, subsystem), reqCnt.Name).(*prometheus.CounterVec)
	p.reqDur = p.register(NewMetric(reqDur, subsystem), reqDur.Name).(*prometheus.HistogramVec)
	p.resSz = p.register(NewMetric(resSz, subsystem), resSz.Name).(*prometheus.SummaryVec)
	p.reqSz = p.register(NewMetric(reqSz, subsystem), reqSz.Name).(*prometheus.SummaryVec)
	p.rejected = p.register(NewMetric(MetricsRejectedRequests, subsystem), MetricsRejectedRequests.Name).(*prometheus.CounterVec)
}

func (p *Prometheus) register(c prometheus.Collector, name string) prometheus.Collector {
	if err := p.registry.Register(c); err != nil && p.logger != nil {
		p.logger.Errorf("%s could not be registered in Prometheus, err=%v", name, err)
	}
	return c
}

// Registry exposes the instance registry, mainly for tests.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// ObserveRejection records a request turned away by an admission stage.
func (p *Prometheus) ObserveRejection(stage string, status int) {
	if p == nil {
		return
	}
	p.rejected.WithLabelValues(stage, strconv.Itoa(status)).Inc()
}

// Start serves MetricsPath on its own listener so that scrapes stay out of
// the API access log.
func (p *Prometheus) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle(p.MetricsPath, p.Handler())
	p.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := p.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && p.logger != nil {
			p.logger.Errorf("metrics server error: %v", err)
		}
	}()
	return nil
}

func (p *Prometheus) Stop(ctx context.Context) error {
	if p.srv == nil {
		return nil
	}
	return p.srv.Shutdown(ctx)
}

// HandlerFunc defines handler function for middleware
func (p *Prometheus) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqSz := computeApproximateRequestSize(c.Request)

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := MillisecondsSince(start)
		resSz := float64(c.Writer.Size())
		url := p.ReqCntURLLabelMappingFn(c)
		ref := c.Request.Header.Get(RefererKey)

		p.reqDur.WithLabelValues(status, c.Request.Method, url, ref).Observe(elapsed)
		p.reqCnt.WithLabelValues(status, c.Request.Method, url, ref).Inc()
		p.reqSz.WithLabelValues(status, c.Request.Method, url, ref).Observe(float64(reqSz))
		p.resSz.WithLabelValues(status, c.Request.Method, url, ref).Observe(resSz)
	}
}

// MillisecondsSince returns the elapsed wall time in fractional milliseconds.
func MillisecondsSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}

// computeApproximateRequestSize estimates the wire size of the request line,
// headers and declared body.
func computeApproximateRequestSize(r *http.Request) int {
	s := 0
	if r.URL != nil {
		s = len(r.URL.Path)
	}
	s += len(r.Method)
	s += len(r.Proto)
	for name, values := range r.Header {
		s += len(name)
		for _, value := range values {
			s += len(value)
		}
	}
	s += len(r.Host)
	if r.ContentLength != -1 {
		s += int(r.ContentLength)
	}
	return s
}
