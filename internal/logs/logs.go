package logs

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gemini-keydoctor/config"
)

// NewLogger writes JSON logs to stderr so stdout stays reserved for the report.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return newZapConfig(cfg).Build()
}

func newZapConfig(cfg *config.Config) zap.Config {
	var level, app string
	if cfg != nil {
		level = cfg.LogLevel
		app = cfg.AppName
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(LevelFromString(level))
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true
	if app != "" {
		zcfg.InitialFields = map[string]any{"app": app}
	}
	return zcfg
}

func NewSugaredLogger(l *zap.Logger) *zap.SugaredLogger {
	return l.Sugar()
}

func RegisterLifecycle(lc fx.Lifecycle, l *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = l.Sync()
			return nil
		},
	})
}

func LevelFromString(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
