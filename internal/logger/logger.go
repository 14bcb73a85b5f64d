// Package logger provides the structured logging interface used across
// the harvester. The zap-backed implementation emits one JSON object
// per entry with a stable "event" discriminator field.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the minimal structured logging surface components depend on.
// The event string is a stable machine-readable discriminator, fields
// carry the per-entry payload.
type Logger interface {
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
	ErrorObj(msg, event string, fields map[string]any)
	Sync() error
}

// NopLogger discards everything. Components default to it when handed
// a nil logger.
type NopLogger struct{}

func (NopLogger) DebugObj(string, string, map[string]any) {}
func (NopLogger) InfoObj(string, string, map[string]any)  {}
func (NopLogger) WarnObj(string, string, map[string]any)  {}
func (NopLogger) ErrorObj(string, string, map[string]any) {}
func (NopLogger) Sync() error                             { return nil }

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a production JSON logger at the given level. Unknown
// levels fall back to info.
func New(level string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &zapLogger{sugar: z.Sugar()}, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func kvs(event string, fields map[string]any) []any {
	out := make([]any, 0, 2+2*len(fields))
	out = append(out, "event", event)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

func (l *zapLogger) DebugObj(msg, event string, fields map[string]any) {
	l.sugar.Debugw(msg, kvs(event, fields)...)
}

func (l *zapLogger) InfoObj(msg, event string, fields map[string]any) {
	l.sugar.Infow(msg, kvs(event, fields)...)
}

func (l *zapLogger) WarnObj(msg, event string, fields map[string]any) {
	l.sugar.Warnw(msg, kvs(event, fields)...)
}

func (l *zapLogger) ErrorObj(msg, event string, fields map[string]any) {
	l.sugar.Errorw(msg, kvs(event, fields)...)
}

func (l *zapLogger) Sync() error { return l.sugar.Sync() }
