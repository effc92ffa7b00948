package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultStorageBackend, cfg.Storage.Backend)
	assert.Equal(t, DefaultStorageFormat, cfg.Storage.Format)
	assert.True(t, cfg.Analysis.Enabled)
	assert.Equal(t, DefaultAnalysisBaseURL, cfg.Analysis.BaseURL)
	assert.Equal(t, DefaultAnalysisEndpoint, cfg.Analysis.Endpoint)
	assert.Equal(t, DefaultAnalysisTimeout, cfg.Analysis.Timeout)
	assert.Zero(t, cfg.Analysis.Retries)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
storage:
  backend: SQLite
  dir: /tmp/tasks
analysis:
  baseURL: http://scoring:9000
  timeout: 5s
  retries: 2
log:
  level: debug
  format: JSON
`)
	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/tasks", cfg.Storage.Dir)
	assert.Equal(t, "http://scoring:9000", cfg.Analysis.BaseURL)
	assert.Equal(t, DefaultAnalysisEndpoint, cfg.Analysis.Endpoint, "unset keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, 2, cfg.Analysis.Retries)
	assert.Equal(t, "json", cfg.Log.Format)

	opts := cfg.StorageOptions()
	assert.Equal(t, "/tmp/tasks", opts.Dir)
	ac := cfg.AnalysisClientConfig()
	assert.Equal(t, 2, ac.Retries)
	assert.Equal(t, "1.2.3", cfg.TelemetrySettings("1.2.3").Version)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "storage:\n  format: yaml\n")
	t.Setenv("SMARTTASK_STORAGE_FORMAT", "toml")
	t.Setenv("SMARTTASK_ANALYSIS_RETRIES", "3")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "toml", cfg.Storage.Format)
	assert.Equal(t, 3, cfg.Analysis.Retries)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"backend":      "storage:\n  backend: redis\n",
		"format":       "storage:\n  format: xml\n",
		"mysql no dsn": "storage:\n  backend: mysql\n",
		"retries":      "analysis:\n  retries: -1\n",
		"log level":    "log:\n  level: loud\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(viper.New(), writeFile(t, "cfg.yaml", body))
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestLoad_AnalysisDisabledNeedsNoURL(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "analysis:\n  enabled: false\n  baseURL: \"\"\n")
	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.False(t, cfg.Analysis.Enabled)
}

func TestResolveDataDir(t *testing.T) {
	assert.Equal(t, "/explicit", ResolveDataDir("/explicit"))

	t.Chdir(t.TempDir())
	home := t.TempDir()
	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return filepath.Join(home, ".smarttask"), nil }
	t.Cleanup(func() { GetGlobalConfigDir = orig })

	t.Setenv("XDG_DATA_HOME", "")
	assert.Equal(t, filepath.Join(home, ".smarttask"), ResolveDataDir(""))

	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "smarttask"), ResolveDataDir(""))

	require.NoError(t, os.Mkdir(ProjectDir, 0755))
	assert.Equal(t, ProjectDir, ResolveDataDir(""), "project directory wins")
}

func TestSetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".smarttask.yaml")

	require.NoError(t, SetValue(path, "storage.backend", "sqlite"))
	require.NoError(t, SetValue(path, "analysis.baseURL", "http://a:1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "http://a:1", cfg.Analysis.BaseURL)

	assert.ErrorIs(t, SetValue(path, "llm.provider", "x"), ErrUnknownKey)
}
