package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageBolt   = "bolt"
)

// LogDisabled as TASKDECK_LOG_FILE turns logging off
const LogDisabled = "-"

// Config holds application configuration
type Config struct {
	DataDir        string        `env:"TASKDECK_DATA_DIR"`
	Storage        string        `env:"TASKDECK_STORAGE" envDefault:"sqlite"`
	LogLevel       string        `env:"TASKDECK_LOG_LEVEL" envDefault:"info"`
	LogEncoding    string        `env:"TASKDECK_LOG_ENCODING" envDefault:"json"`
	LogFile        string        `env:"TASKDECK_LOG_FILE"`
	Locale         string        `env:"TASKDECK_LOCALE" envDefault:"en-US"`
	Theme          string        `env:"TASKDECK_THEME" envDefault:"nord"`
	SplashDuration time.Duration `env:"TASKDECK_SPLASH_DURATION" envDefault:"3s"`
	Haptics        bool          `env:"TASKDECK_HAPTICS" envDefault:"true"`
	DesktopNotify  bool          `env:"TASKDECK_DESKTOP_NOTIFY" envDefault:"false"`
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdeck"
	}
	return filepath.Join(home, ".local", "share", "taskdeck")
}

// Load reads configuration from environment variables (optionally .env)
// and fills in paths derived from the data directory.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	cfg := &Config{
		Storage:        StorageSQLite,
		LogLevel:       "info",
		LogEncoding:    "json",
		Locale:         "en-US",
		Theme:          "nord",
		SplashDuration: 3 * time.Second,
		Haptics:        true,
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "taskdeck.log")
	}
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageBolt:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage, StorageSQLite, StorageBolt)
	}
	if c.SplashDuration < 0 {
		return fmt.Errorf("splash duration must not be negative, got %s", c.SplashDuration)
	}
	return nil
}

// StoragePath returns the file backing the configured storage backend
func (c *Config) StoragePath() string {
	if c.Storage == StorageBolt {
		return filepath.Join(c.DataDir, "taskdeck.bolt")
	}
	return filepath.Join(c.DataDir, "taskdeck.db")
}

// LockPath returns the single-instance lock file path
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "taskdeck.lock")
}

// LogPath returns the log file path, or "" when logging is disabled
func (c *Config) LogPath() string {
	if c.LogFile == LogDisabled {
		return ""
	}
	return c.LogFile
}
