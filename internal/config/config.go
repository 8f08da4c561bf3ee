// Package config loads tbscreen settings from a YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/tbscreen/internal/logging"
)

// Config holds all runtime configuration.
type Config struct {
	Model ModelConfig `yaml:"model"`
	Log   LogConfig   `yaml:"log"`

	// DB is the run-log database path. Empty uses the store default.
	DB string `yaml:"db"`

	// NoHistory disables the run log entirely.
	NoHistory bool `yaml:"no_history"`

	// Parallel bounds concurrent evaluations in batch mode.
	Parallel int `yaml:"parallel"`
}

// ModelConfig selects the classifier source. At most one of Path and URL
// may be set; with neither, evaluations are heuristic-only.
type ModelConfig struct {
	Path    string        `yaml:"path"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // Remote only. Default: 5s.
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Model: ModelConfig{
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
		Parallel: runtime.NumCPU(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tbscreen/config.yaml, falling back
// to ~/.config/tbscreen/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tbscreen", "config.yaml"), nil
}

// Load reads the YAML file at path over the defaults. Unknown keys are
// rejected. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath when it exists, or returns the
// defaults when it does not.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides fields from TBSCREEN_* environment variables.
func (c *Config) ApplyEnv() error {
	if p := os.Getenv("TBSCREEN_MODEL_PATH"); p != "" {
		c.Model.Path = p
	}
	if u := os.Getenv("TBSCREEN_MODEL_URL"); u != "" {
		c.Model.URL = u
	}
	if t := os.Getenv("TBSCREEN_MODEL_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("TBSCREEN_MODEL_TIMEOUT: %w", err)
		}
		c.Model.Timeout = d
	}
	if l := os.Getenv("TBSCREEN_LOG_LEVEL"); l != "" {
		c.Log.Level = l
	}
	if f := os.Getenv("TBSCREEN_LOG_FORMAT"); f != "" {
		c.Log.Format = f
	}
	if db := os.Getenv("TBSCREEN_DB"); db != "" {
		c.DB = db
	}
	if p := os.Getenv("TBSCREEN_PARALLEL"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("TBSCREEN_PARALLEL: %w", err)
		}
		c.Parallel = n
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Model.Path != "" && c.Model.URL != "" {
		return fmt.Errorf("model: set either path or url, not both")
	}
	if c.Model.URL != "" && c.Model.Timeout <= 0 {
		return fmt.Errorf("model: timeout must be positive, got %s", c.Model.Timeout)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch c.Log.Format {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("log: unknown format %q (want %q or %q)", c.Log.Format, logging.FormatJSON, logging.FormatConsole)
	}
	if c.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", c.Parallel)
	}
	return nil
}
