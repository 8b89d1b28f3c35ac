package mongolog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/pkg/logctx"
)

// Level mirrors the verbosity switch of the driver monitor.
type Level int

const (
	Silent Level = iota
	Error
	Warn
	Info
)

// Config controls what the command monitor reports.
type Config struct {
	SlowThreshold time.Duration
	LogLevel      Level
}

// ZapMonitor reports MongoDB commands through zap, enriched with trace_id
// and user_id from the command context via logctx.FromCtx.
type ZapMonitor struct {
	base   *zap.SugaredLogger
	config Config
}

func New(base *zap.SugaredLogger, slow time.Duration) *ZapMonitor {
	return &ZapMonitor{base: base, config: Config{SlowThreshold: slow, LogLevel: Warn}}
}

func (z *ZapMonitor) LogMode(level Level) *ZapMonitor {
	cfg := z.config
	cfg.LogLevel = level
	return &ZapMonitor{base: z.base, config: cfg}
}

// CommandMonitor adapts the logger to the driver's monitoring hooks.
func (z *ZapMonitor) CommandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: z.succeeded,
		Failed:    z.failed,
	}
}

func (z *ZapMonitor) succeeded(ctx context.Context, e *event.CommandSucceededEvent) {
	if z.config.LogLevel == Silent {
		return
	}
	lg := logctx.FromCtx(ctx, z.base)
	fields := []interface{}{
		"command", e.CommandName,
		"db", e.DatabaseName,
		"request_id", e.RequestID,
		"elapsed_ms", e.Duration.Milliseconds(),
	}
	if z.config.SlowThreshold > 0 && e.Duration > z.config.SlowThreshold {
		if z.config.LogLevel >= Warn {
			lg.Warnw("mongo_slow", fields...)
		}
		return
	}
	if z.config.LogLevel >= Info {
		lg.Infow("mongo", fields...)
	}
}

func (z *ZapMonitor) failed(ctx context.Context, e *event.CommandFailedEvent) {
	if z.config.LogLevel < Error {
		return
	}
	logctx.FromCtx(ctx, z.base).Errorw("mongo_failed",
		"command", e.CommandName,
		"db", e.DatabaseName,
		"request_id", e.RequestID,
		"elapsed_ms", e.Duration.Milliseconds(),
		"err", e.Failure,
	)
}
