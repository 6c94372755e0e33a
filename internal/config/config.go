// Package config loads meadow settings from an optional YAML file and the
// environment. Environment variables override the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/meadow/internal/farm"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds all runtime settings.
type Config struct {
	LogLevel           string      `yaml:"log_level"`
	Prompt             string      `yaml:"prompt"`
	MaxTicksPerCommand int         `yaml:"max_ticks_per_command"`
	ReportEveryTicks   uint64      `yaml:"report_every_ticks"`
	JournalDSN         string      `yaml:"journal_dsn"`
	GroundSeed         int64       `yaml:"ground_seed"`  // 0 = random
	ShuffleSeed        int64       `yaml:"shuffle_seed"` // 0 = random
	Farm               farm.Config `yaml:"farm"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:           "info",
		Prompt:             "Enter command: ",
		MaxTicksPerCommand: 10000,
		ReportEveryTicks:   100,
		JournalDSN:         ":memory:",
		Farm:               farm.Config{Rooms: 3, RestingCapacity: 12},
	}
}

// Load reads path over the defaults (when path is non-empty), then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = envOrDefault("MEADOW_LOG_LEVEL", c.LogLevel)
	c.JournalDSN = envOrDefault("MEADOW_JOURNAL_DSN", c.JournalDSN)
	c.MaxTicksPerCommand = envIntOrDefault("MEADOW_MAX_TICKS", c.MaxTicksPerCommand)
	c.GroundSeed = int64(envIntOrDefault("MEADOW_GROUND_SEED", int(c.GroundSeed)))
	c.ShuffleSeed = int64(envIntOrDefault("MEADOW_SHUFFLE_SEED", int(c.ShuffleSeed)))
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MaxTicksPerCommand <= 0 {
		return fmt.Errorf("%w: max_ticks_per_command must be positive, got %d", ErrInvalid, c.MaxTicksPerCommand)
	}
	if c.Farm.Rooms < 0 || c.Farm.RestingCapacity < 0 {
		return fmt.Errorf("%w: farm dimensions must not be negative", ErrInvalid)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level. Validate has already checked it.
func (c Config) SlogLevel() slog.Level {
	lvl, _ := ParseLevel(c.LogLevel)
	return lvl
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalid, s)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring non-integer environment value", "key", key, "value", v)
		return def
	}
	return n
}
