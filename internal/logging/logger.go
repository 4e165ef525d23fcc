// Package logging provides structured logging for the metaheuristics
// server and CLI binaries, built on go.uber.org/zap.
package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects a logger's verbosity and output encoding.
type Config struct {
	Level  string // debug | info | warn | error
	Format string // json | console
}

// New builds a *zap.Logger from cfg. An unrecognized Level defaults to
// info; an unrecognized Format defaults to json.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	if cfg.Format == "console" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return zcfg.Build()
}

type ctxLoggerKey struct{}

// WithContext returns a copy of ctx carrying l, retrievable with
// FromContext.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}

// FromContext returns the logger embedded in ctx by WithContext, or
// zap.L() (the global no-op logger unless replaced) if none was embedded.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}
