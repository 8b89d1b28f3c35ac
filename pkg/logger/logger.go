package logger

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New() (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "time"
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// FxEventLogger routes fx lifecycle events through the application logger.
func FxEventLogger(l *zap.SugaredLogger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: l.Desugar()}
}

var Module = fx.Options(
	fx.Provide(New),
	fx.WithLogger(FxEventLogger),
)
