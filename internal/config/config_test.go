package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TBSCREEN_MODEL_PATH", "TBSCREEN_MODEL_URL", "TBSCREEN_MODEL_TIMEOUT",
		"TBSCREEN_LOG_LEVEL", "TBSCREEN_LOG_FORMAT", "TBSCREEN_DB", "TBSCREEN_PARALLEL",
	} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.GreaterOrEqual(t, cfg.Parallel, 1)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
model:
  url: http://localhost:8500
  timeout: 2s
log:
  level: debug
  format: json
db: /tmp/runs.db
parallel: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8500", cfg.Model.URL)
	assert.Equal(t, 2*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/runs.db", cfg.DB)
	assert.Equal(t, 3, cfg.Parallel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "model:\n  path: model.json\n"))
	require.NoError(t, err)
	assert.Equal(t, "model.json", cfg.Model.Path)
	assert.Equal(t, 5*time.Second, cfg.Model.Timeout)
	assert.Equal(t, Default().Log, cfg.Log)
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "modle:\n  path: x\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Load(writeConfig(t, "parallel: [1"))
	assert.Error(t, err)
}

func TestLoadDefault_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv_OverridesFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "model:\n  path: file.json\nparallel: 2\n"))
	require.NoError(t, err)

	t.Setenv("TBSCREEN_MODEL_PATH", "env.json")
	t.Setenv("TBSCREEN_MODEL_TIMEOUT", "750ms")
	t.Setenv("TBSCREEN_LOG_LEVEL", "error")
	t.Setenv("TBSCREEN_LOG_FORMAT", "json")
	t.Setenv("TBSCREEN_DB", "/var/lib/tbscreen/runs.db")
	t.Setenv("TBSCREEN_PARALLEL", "8")

	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "env.json", cfg.Model.Path)
	assert.Equal(t, 750*time.Millisecond, cfg.Model.Timeout)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/var/lib/tbscreen/runs.db", cfg.DB)
	assert.Equal(t, 8, cfg.Parallel)
}

func TestApplyEnv_UnsetKeepsValues(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	cfg.Model.URL = "http://model"
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "http://model", cfg.Model.URL)
}

func TestApplyEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("TBSCREEN_PARALLEL", "many")
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv())

	clearEnv(t)
	t.Setenv("TBSCREEN_MODEL_TIMEOUT", "soon")
	assert.Error(t, cfg.ApplyEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"path and url", func(c *Config) {
			c.Model.Path = "a.json"
			c.Model.URL = "http://b"
		}},
		{"zero timeout", func(c *Config) {
			c.Model.URL = "http://b"
			c.Model.Timeout = 0
		}},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"zero parallel", func(c *Config) { c.Parallel = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
