package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/docs"
	"github.com/fatflowers/tryonce/internal/app/api/handlers"
	mw "github.com/fatflowers/tryonce/internal/app/api/middleware"
	"github.com/fatflowers/tryonce/internal/app/bootstrap"
	"github.com/fatflowers/tryonce/internal/platform/db"
	cfgpkg "github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/metrics"
)

func newMetrics(cfg *cfgpkg.Config, log *zap.SugaredLogger) *metrics.Prometheus {
	if cfg.MetricsAddr == "" {
		return nil
	}
	return metrics.NewPrometheus(metrics.NewPrometheusOptions{Subsystem: "tryonce", Logger: log})
}

func newEngine(cfg *cfgpkg.Config, p Pipeline) *gin.Engine {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	p.Apply(r)
	r.NoRoute(mw.NotFoundHandler())
	return r
}

type routeParams struct {
	fx.In

	Engine *gin.Engine
	Groups []handlers.RouteGroup `group:"route_groups"`
}

// registerRoutes mounts the fixed endpoints first, then every collaborator
// group under its own prefix.
func registerRoutes(p routeParams) {
	handlers.RegisterFixedRoutes(p.Engine)
	docs.SwaggerInfo.BasePath = "/"
	p.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	handlers.Mount(p.Engine, p.Groups...)
}

// Server owns the HTTP listener of the API.
type Server struct {
	srv  *http.Server
	mu   sync.Mutex
	addr net.Addr
}

// Addr is the bound address, nil until the server listens.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

type serverParams struct {
	fx.In

	Lc         fx.Lifecycle
	Shutdowner fx.Shutdowner
	Log        *zap.SugaredLogger
	Cfg        *cfgpkg.Config
	Engine     *gin.Engine
	Seq        *bootstrap.Sequencer
	// DB must be connected before anything listens.
	DB      *db.Handle
	Metrics *metrics.Prometheus `optional:"true"`
}

func NewServer(p serverParams) *Server {
	addr := fmt.Sprintf("%s:%d", p.Cfg.Server.Host, p.Cfg.Server.Port)
	s := &Server{srv: &http.Server{Addr: addr, Handler: p.Engine, ReadHeaderTimeout: 5 * time.Second}}
	log := p.Log

	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				err = fmt.Errorf("failed to listen on %s: %w", addr, err)
				p.Seq.Fail(err)
				return err
			}
			if err := p.Seq.Enter(bootstrap.PhaseServing); err != nil {
				_ = ln.Close()
				return err
			}
			s.mu.Lock()
			s.addr = ln.Addr()
			s.mu.Unlock()

			port := p.Cfg.Server.Port
			if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
				port = tcp.Port
			}
			log.Infof("Server running on port %d", port)

			go func() {
				if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server error: %v", err)
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			if p.Metrics != nil {
				if err := p.Metrics.Start(p.Cfg.MetricsAddr); err != nil {
					log.Warnw("metrics listener not started", "addr", p.Cfg.MetricsAddr, "err", err)
				} else {
					log.Infow("metrics started", "addr", p.Cfg.MetricsAddr)
				}
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			if p.Metrics != nil {
				_ = p.Metrics.Stop(shutdownCtx)
			}
			return s.srv.Shutdown(shutdownCtx)
		},
	})
	return s
}

var Module = fx.Options(
	fx.Provide(newMetrics, NewPipeline, newEngine, NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(func(*Server) {}),
)
