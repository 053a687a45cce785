package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/dori/taskdeck/internal/config"
	"github.com/dori/taskdeck/internal/db"
	"github.com/dori/taskdeck/internal/feedback"
	"github.com/dori/taskdeck/internal/kv"
	"github.com/dori/taskdeck/internal/logger"
	"github.com/dori/taskdeck/internal/store"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned when another process holds the data dir lock
var ErrAlreadyRunning = errors.New("another instance of taskdeck is already running")

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Backend  kv.Backend
	Storage  *kv.Adapter
	Store    *store.Store
	Feedback *feedback.Feedback

	lockFile *flock.Flock
	flushLog func()
}

// New creates a new application instance
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	log, flush, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
		Path:     cfg.LogPath(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	app := &App{
		Config:   cfg,
		Log:      log,
		flushLog: flush,
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		flush()
		return nil, err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		app.releaseLock()
		flush()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}
	app.Backend = backend
	app.Storage = kv.NewAdapter(backend, log.Named("storage"))
	app.Store = store.New(app.Storage, store.WithLogger(log.Named("store")))

	app.Feedback = feedback.New(
		feedback.WithDesktop(cfg.DesktopNotify),
		feedback.WithLogger(log.Named("feedback")),
	)
	if !cfg.Haptics {
		app.Feedback.Disable()
	}

	log.Info("taskdeck started",
		zap.String("storage", cfg.Storage),
		zap.String("path", cfg.StoragePath()),
		zap.String("locale", cfg.Locale))
	return app, nil
}

func openBackend(cfg *config.Config) (kv.Backend, error) {
	switch cfg.Storage {
	case config.StorageBolt:
		return kv.OpenBolt(cfg.StoragePath(), kv.DefaultBucket)
	default:
		return db.Open(cfg.StoragePath())
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Config.LockPath())

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrAlreadyRunning
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close drains pending store operations and releases resources
func (a *App) Close() error {
	var errs []error

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}
	if a.Backend != nil {
		if err := a.Backend.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
		}
	}

	a.releaseLock()
	if a.flushLog != nil {
		a.flushLog()
	}

	return errors.Join(errs...)
}
