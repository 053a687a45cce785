package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskdeck.log")

	log, closeLog, err := New(Config{Level: "debug", Encoding: "json", Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hello", zap.String("key", "tasks"))
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) || !strings.Contains(string(data), `"timestamp"`) {
		t.Fatalf("unexpected log output: %s", data)
	}
}

func TestNewWithoutPathIsNop(t *testing.T) {
	log, closeLog, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeLog()
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected a nop logger")
	}
}

func TestWithOpID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithOpID(context.Background(), "op-1")
	WithOpID(ctx, base).Info("saved")
	WithOpID(context.Background(), base).Info("plain")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["op_id"]; got != "op-1" {
		t.Fatalf("expected op_id field, got %v", got)
	}
	if _, ok := entries[1].ContextMap()["op_id"]; ok {
		t.Fatal("did not expect op_id without a context value")
	}
}
