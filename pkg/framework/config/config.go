// Package config loads plugin runtime settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/parambridge/pkg/framework/debug"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// WindowAPI names a platform windowing system an editor can embed into.
type WindowAPI string

const (
	WindowAPIWin32 WindowAPI = "win32"
	WindowAPICocoa WindowAPI = "cocoa"
	WindowAPIX11   WindowAPI = "x11"
)

// Valid reports whether api is a known windowing system.
func (api WindowAPI) Valid() bool {
	switch api {
	case WindowAPIWin32, WindowAPICocoa, WindowAPIX11:
		return true
	}
	return false
}

// Config holds the runtime settings of a plugin instance.
type Config struct {
	QueueCapacity   int       `yaml:"queue_capacity"`    // control queue size in bytes, rounded up to a power of two
	LogLevel        string    `yaml:"log_level"`         // debug, info, warn, error, off
	LogPrefix       string    `yaml:"log_prefix"`        // component attribute on every log line
	WindowAPI       WindowAPI `yaml:"window_api"`        // win32, cocoa, x11
	FloatingWindows bool      `yaml:"floating_windows"`  // allow the editor in a host-managed floating window
	StatsIntervalMs int       `yaml:"stats_interval_ms"` // 0 disables periodic stats logging
}

// DefaultQueueCapacity is used when queue_capacity is unset.
const DefaultQueueCapacity = 4096

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		QueueCapacity: DefaultQueueCapacity,
		LogLevel:      "info",
		LogPrefix:     "parambridge",
		WindowAPI:     defaultWindowAPI(),
	}
}

// Load reads and parses a YAML configuration file. Keys missing from the
// file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cfg and fills in defaults for zero values.
func Validate(cfg *Config) error {
	if cfg.QueueCapacity < 0 {
		return fmt.Errorf("%w: queue_capacity must be >= 0, got %d", ErrInvalid, cfg.QueueCapacity)
	}
	if cfg.QueueCapacity == 0 {
		cfg.QueueCapacity = DefaultQueueCapacity
	}

	if _, err := debug.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}

	if cfg.WindowAPI == "" {
		cfg.WindowAPI = defaultWindowAPI()
	}
	if !cfg.WindowAPI.Valid() {
		return fmt.Errorf("%w: window_api must be one of win32, cocoa, x11, got %q", ErrInvalid, cfg.WindowAPI)
	}

	if cfg.StatsIntervalMs < 0 {
		return fmt.Errorf("%w: stats_interval_ms must be >= 0, got %d", ErrInvalid, cfg.StatsIntervalMs)
	}

	return nil
}

// StatsInterval returns the stats logging period, or 0 if disabled.
func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.StatsIntervalMs) * time.Millisecond
}

// Apply configures logger from the logging settings.
func (c *Config) Apply(logger *debug.Logger) {
	level, err := debug.ParseLevel(c.LogLevel)
	if err != nil {
		level = debug.LogLevelInfo
	}
	logger.SetLevel(level)
	if c.LogPrefix != "" {
		logger.SetPrefix(c.LogPrefix)
	}
}
