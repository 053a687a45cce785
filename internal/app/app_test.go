package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dori/taskdeck/internal/config"
	"github.com/dori/taskdeck/internal/model"
)

func testConfig(t *testing.T, storage string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.LogFile = filepath.Join(cfg.DataDir, "test.log")
	cfg.Storage = storage
	return cfg
}

func TestNewPersistsAcrossRestarts(t *testing.T) {
	for _, storage := range []string{config.StorageSQLite, config.StorageBolt} {
		t.Run(storage, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			cfg := testConfig(t, storage)

			a, err := New(cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			task := model.NewTask(time.Now())
			if _, err := a.Store.CreateTask(ctx, task).Wait(ctx); err != nil {
				t.Fatalf("create: %v", err)
			}
			if err := a.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			a, err = New(cfg)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer a.Close()

			tasks, err := a.Store.FetchTasks(ctx).Wait(ctx)
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if len(tasks) != 1 || tasks[0].ID != task.ID {
				t.Fatalf("tasks after restart = %+v", tasks)
			}
		})
	}
}

func TestSingleInstanceLock(t *testing.T) {
	cfg := testConfig(t, config.StorageSQLite)

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := New(cfg); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	first.Close()
	second, err := New(cfg)
	if err != nil {
		t.Fatalf("lock not released on close: %v", err)
	}
	second.Close()
}

func TestHapticsDisabled(t *testing.T) {
	cfg := testConfig(t, config.StorageSQLite)
	cfg.Haptics = false

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Feedback.IsEnabled() {
		t.Error("feedback should be disabled")
	}
}
