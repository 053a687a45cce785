package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_DATA_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage != StorageSQLite {
		t.Fatalf("expected sqlite storage, got %q", cfg.Storage)
	}
	if cfg.SplashDuration != 3*time.Second {
		t.Fatalf("expected 3s splash, got %s", cfg.SplashDuration)
	}
	if !cfg.Haptics || cfg.DesktopNotify {
		t.Fatalf("unexpected feedback defaults: haptics=%v desktop=%v", cfg.Haptics, cfg.DesktopNotify)
	}
	if cfg.StoragePath() != filepath.Join(dir, "taskdeck.db") {
		t.Fatalf("unexpected storage path %q", cfg.StoragePath())
	}
	if cfg.LogPath() != filepath.Join(dir, "taskdeck.log") {
		t.Fatalf("unexpected log path %q", cfg.LogPath())
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_DATA_DIR", dir)
	t.Setenv("TASKDECK_STORAGE", "bolt")
	t.Setenv("TASKDECK_SPLASH_DURATION", "500ms")
	t.Setenv("TASKDECK_LOG_FILE", LogDisabled)
	t.Setenv("TASKDECK_LOCALE", "es-ES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoragePath() != filepath.Join(dir, "taskdeck.bolt") {
		t.Fatalf("unexpected storage path %q", cfg.StoragePath())
	}
	if cfg.SplashDuration != 500*time.Millisecond {
		t.Fatalf("expected 500ms splash, got %s", cfg.SplashDuration)
	}
	if cfg.LogPath() != "" {
		t.Fatalf("expected logging disabled, got %q", cfg.LogPath())
	}
	if cfg.Locale != "es-ES" {
		t.Fatalf("expected es-ES, got %q", cfg.Locale)
	}
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("TASKDECK_DATA_DIR", t.TempDir())
	t.Setenv("TASKDECK_STORAGE", "redis")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "unknown storage backend") {
		t.Fatalf("expected storage validation error, got %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("TASKDECK_DATA_DIR", t.TempDir())
	t.Setenv("TASKDECK_HAPTICS", "sometimes")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}
