// ABOUTME: Application configuration: storage backend, paths, logging and labels
// ABOUTME: Layers defaults, .env, the XDG config file and CRMVIEW_* environment variables
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/store"
	"github.com/joho/godotenv"
)

const (
	// AppName names the XDG config and data directories.
	AppName = "crmview"

	// ConfigFileName is the JSON config file inside the XDG config directory.
	ConfigFileName = "config.json"
)

// Config holds runtime settings.
type Config struct {
	// Backend selects the record store: sqlite, badger or memory.
	Backend string `json:"backend,omitempty" env:"CRMVIEW_BACKEND"`

	// DBPath is the SQLite database file.
	DBPath string `json:"db_path,omitempty" env:"CRMVIEW_DB_PATH"`

	// BadgerDir is the badger data directory.
	BadgerDir string `json:"badger_dir,omitempty" env:"CRMVIEW_BADGER_DIR"`

	LogLevel string `json:"log_level,omitempty" env:"CRMVIEW_LOG_LEVEL"`

	// PageSize is the quotes page size.
	PageSize int `json:"page_size,omitempty" env:"CRMVIEW_PAGE_SIZE"`

	// UnknownLabels overrides the placeholder shown for dangling references,
	// keyed by entity name, e.g. {"contact": "Former contact"}.
	UnknownLabels map[string]string `json:"unknown_labels,omitempty" env:"CRMVIEW_UNKNOWN_LABELS"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	return &Config{
		Backend:   store.BackendSQLite,
		DBPath:    filepath.Join(dataDir, "crm.db"),
		BadgerDir: filepath.Join(dataDir, "badger"),
		LogLevel:  "info",
		PageSize:  pages.DefaultQuoteLimit,
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFileName)
}

// Load reads .env from the working directory, then the XDG config file,
// then the environment. Later sources win.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), ".env")
}

// LoadFrom is Load with explicit file locations. Missing files are skipped.
func LoadFrom(configFile, dotenv string) (*Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenv, err)
		}
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		var file Config
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
		}
		cfg.merge(&file)
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies every field set in other onto c.
func (c *Config) merge(other *Config) {
	if other.Backend != "" {
		c.Backend = other.Backend
	}
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if other.BadgerDir != "" {
		c.BadgerDir = other.BadgerDir
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.PageSize != 0 {
		c.PageSize = other.PageSize
	}
	if len(other.UnknownLabels) > 0 {
		c.UnknownLabels = other.UnknownLabels
	}
}

// Validate rejects settings the stores cannot run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case store.BackendSQLite, store.BackendBadger, store.BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q: must be sqlite, badger or memory", c.Backend)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("invalid page size %d: must be positive", c.PageSize)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// StorePath returns the location handed to store.Open for the backend.
func (c *Config) StorePath() string {
	switch c.Backend {
	case store.BackendBadger:
		return c.BadgerDir
	case store.BackendMemory:
		return ""
	}
	return c.DBPath
}

// Labels returns resolver labels with the configured overrides applied.
func (c *Config) Labels() resolve.Labels {
	return resolve.DefaultLabels().WithUnknown(c.UnknownLabels)
}

// Logger returns a structured logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          AppName,
		ReportTimestamp: true,
		Level:           level,
	})
}

// Save persists the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
