// Package config handles configuration loading and validation for hexsys.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/hexsys/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Theme     string         `yaml:"theme"`
	SheetPath string         `yaml:"sheet_path"` // default <data-dir>/character_sheet.toml
	SheetsDir string         `yaml:"sheets_dir"` // default <data-dir>/sheets
	History   HistoryConfig  `yaml:"history"`
	Database  DatabaseConfig `yaml:"database"`
	DataDir   string         `yaml:"-"` // set by caller, not from config file
}

// HistoryConfig controls draw history persistence.
type HistoryConfig struct {
	// Persist mirrors every logged draw into the database.
	Persist bool `yaml:"persist"`
	// LoadLimit is the number of most recent draws loaded at startup.
	LoadLimit int `yaml:"load_limit"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		History: HistoryConfig{
			Persist:   true,
			LoadLimit: 50,
		},
		Database: DatabaseConfig{
			BusyTimeout:  5000,
			MaxOpenConns: 4,
			MaxIdleConns: 2,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.SheetPath == "" && c.DataDir != "" {
		c.SheetPath = filepath.Join(c.DataDir, "character_sheet.toml")
	}
	if c.SheetsDir == "" && c.DataDir != "" {
		c.SheetsDir = filepath.Join(c.DataDir, "sheets")
	}
	if c.History.LoadLimit == 0 {
		c.History.LoadLimit = defaults.History.LoadLimit
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
}

// DatabasePath returns the path of the draw history database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "hexsys.db")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "hexsys.log")
}
