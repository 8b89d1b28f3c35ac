package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/fatflowers/tryonce/internal/app/api/middleware"
	cfgpkg "github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/metrics"
)

// Stage names, in the order requests traverse them.
const (
	StageRecovery      = "recovery"
	StageMetrics       = "metrics"
	StageErrors        = "errors"
	StageTrace         = "trace"
	StageRequestLogger = "request_logger"
	StageAccessLog     = "access_log"
	StageCORS          = "cors"
	StageJSONBody      = "json_body"
	StageFormBody      = "form_body"
	StageCookies       = "cookies"
	StageStatic        = "static"
)

// UploadsPrefix is the URL prefix served from the uploads directory.
const UploadsPrefix = "/uploads"

type Stage struct {
	Name    string
	Handler gin.HandlerFunc
}

// Pipeline is the ordered list of global stages. Routes run after the last
// stage; unmatched requests run it too before the 404 handler.
type Pipeline []Stage

func (p Pipeline) Names() []string {
	out := make([]string, 0, len(p))
	for _, s := range p {
		out = append(out, s.Name)
	}
	return out
}

func (p Pipeline) Apply(r *gin.Engine) {
	for _, s := range p {
		r.Use(s.Handler)
	}
}

// NewPipeline builds the stage list. The error boundary (recovery, errors)
// wraps everything else; prom may be nil when metrics are disabled.
func NewPipeline(cfg *cfgpkg.Config, log *zap.SugaredLogger, prom *metrics.Prometheus) Pipeline {
	hide := cfg.IsProd()
	rejected := func(stage string) func(int) {
		return func(status int) { prom.ObserveRejection(stage, status) }
	}

	p := Pipeline{{StageRecovery, mw.RecoveryMiddleware(log, hide)}}
	if prom != nil {
		p = append(p, Stage{StageMetrics, prom.HandlerFunc()})
	}
	return append(p,
		Stage{StageErrors, mw.ErrorMiddleware(log, hide)},
		Stage{StageTrace, mw.TraceMiddleware()},
		Stage{StageRequestLogger, mw.RequestLoggerMiddleware(log)},
		Stage{StageAccessLog, mw.AccessLogMiddleware(log)},
		Stage{StageCORS, mw.CORSMiddleware(mw.NewOriginPolicy(cfg.ClientURL), log, rejected(StageCORS))},
		Stage{StageJSONBody, mw.JSONBodyMiddleware(cfg.BodyLimit, rejected(StageJSONBody))},
		Stage{StageFormBody, mw.FormBodyMiddleware(rejected(StageFormBody))},
		Stage{StageCookies, mw.CookieMiddleware()},
		Stage{StageStatic, mw.StaticMiddleware(UploadsPrefix, cfg.UploadsDir)},
	)
}
