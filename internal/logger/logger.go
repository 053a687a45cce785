package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const opIDKey ctxKey = "op_id"

// Config describes where and how log lines are written.
// The terminal belongs to the TUI, so output always goes to a file.
type Config struct {
	Level    string
	Encoding string
	Path     string // empty disables logging
}

// New builds a zap.Logger using the provided configuration. The returned
// func flushes and closes the sink.
func New(cfg Config) (*zap.Logger, func(), error) {
	if cfg.Path == "" {
		return zap.NewNop(), func() {}, nil
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		// fall back to info level if parsing fails
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	sink, closeSink, err := zap.Open(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := zap.New(zapcore.NewCore(encoder, zapcore.Lock(sink), level), zap.AddCaller())
	return log, func() {
		_ = log.Sync()
		closeSink()
	}, nil
}

// ContextWithOpID attaches a store operation ID to the provided context.
func ContextWithOpID(ctx context.Context, opID string) context.Context {
	return context.WithValue(ctx, opIDKey, opID)
}

// OpID returns the operation ID stored in ctx, if any.
func OpID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(opIDKey).(string)
	return id
}

// WithOpID enriches the logger with the operation ID stored in the context.
func WithOpID(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	if id := OpID(ctx); id != "" {
		return base.With(zap.String("op_id", id))
	}
	return base
}
