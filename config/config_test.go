// ABOUTME: Tests for configuration layering and validation
// ABOUTME: Uses temp files for the config and .env sources
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/crmview/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"), "")
	require.NoError(t, err)

	assert.Equal(t, store.BackendSQLite, cfg.Backend)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, strings.HasSuffix(cfg.DBPath, filepath.Join(AppName, "crm.db")))
	assert.Equal(t, cfg.DBPath, cfg.StorePath())
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	file := &Config{Backend: store.BackendBadger, BadgerDir: "/tmp/crm-badger", PageSize: 30}
	require.NoError(t, file.Save(path))

	cfg, err := LoadFrom(path, "")
	require.NoError(t, err)
	assert.Equal(t, store.BackendBadger, cfg.Backend)
	assert.Equal(t, "/tmp/crm-badger", cfg.StorePath())
	assert.Equal(t, 30, cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel, "unset file fields keep defaults")
}

func TestEnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, (&Config{PageSize: 30}).Save(path))

	t.Setenv("CRMVIEW_PAGE_SIZE", "50")
	t.Setenv("CRMVIEW_BACKEND", "memory")
	t.Setenv("CRMVIEW_UNKNOWN_LABELS", "contact:Former contact,deal:Lost deal")

	cfg, err := LoadFrom(path, "")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "", cfg.StorePath())
	assert.Equal(t, map[string]string{"contact": "Former contact", "deal": "Lost deal"}, cfg.UnknownLabels)

	labels := cfg.Labels()
	assert.Equal(t, "Former contact", labels.UnknownFor("contact", "Unknown Contact"))
	assert.Equal(t, "Unknown Task", labels.UnknownFor("task", "Unknown Task"))
	assert.Equal(t, "No contact", labels.Missing["contact"])
}

func TestDotenvLoaded(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("CRMVIEW_LOG_LEVEL=debug\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("CRMVIEW_LOG_LEVEL") })

	cfg, err := LoadFrom(filepath.Join(dir, "missing.json"), dotenv)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestMissingDotenvIsSkipped(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, ".env"))
	assert.NoError(t, err)
}

func TestInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"backend", Config{Backend: "postgres", PageSize: 20, LogLevel: "info"}, "invalid backend"},
		{"page size", Config{Backend: "memory", PageSize: 0, LogLevel: "info"}, "invalid page size"},
		{"log level", Config{Backend: "memory", PageSize: 20, LogLevel: "loud"}, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Validate(), tt.want)
		})
	}
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := LoadFrom(path, "")
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"

	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "page", "deals")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "page=deals")
	assert.Contains(t, out, AppName)
}
