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

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := writeConfig(t, `
api:
  base_url: "http://backend:9000/"
polling:
  interval_ms: 500
export:
  dir: out
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.RequestTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.Polling.Interval())
	assert.Equal(t, "out", cfg.Export.Dir)
	assert.Equal(t, 100, cfg.Export.HistoryPageSize)
	assert.True(t, cfg.UI.PauseOnBlur)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example")
	cfg, err := Load(writeConfig(t, "api:\n  base_url: http://file\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.API.BaseURL)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	_, err := Load(writeConfig(t, "api: [broken"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "api:\n  base_url: ftp://nope\n"))
	assert.Error(t, err)
}

func TestValidateNormalizes(t *testing.T) {
	cfg := &Config{API: APIConfig{BaseURL: " http://x "}, Export: ExportConfig{HistoryPageSize: 500}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://x", cfg.API.BaseURL)
	assert.Equal(t, 10000, cfg.API.RequestTimeoutMs)
	assert.Equal(t, 2000, cfg.Polling.IntervalMs)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, 100, cfg.Export.HistoryPageSize)
}

func TestLoadMissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example/")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.API.BaseURL)
	assert.Equal(t, 2000, cfg.Polling.IntervalMs)

	t.Setenv(EnvAPIURL, "")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

func TestLoadMissingFileInvalidEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "ftp://nope")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
