package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Lock    LockConfig    `yaml:"lock"`
	Index   IndexConfig   `yaml:"index"`
	Export  ExportConfig  `yaml:"export"`
	Watch   WatchConfig   `yaml:"watch"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig holds the location and layout of the movies file
type CatalogConfig struct {
	File   string `yaml:"file"`
	Header string `yaml:"header"`
}

// LockConfig controls how appends wait for the file lock
type LockConfig struct {
	Attempts  int `yaml:"attempts"`
	BackoffMS int `yaml:"backoff_ms"`
}

// IndexConfig holds the SQLite search index settings
type IndexConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig holds output directory settings
type ExportConfig struct {
	MDXDir  string `yaml:"mdx_dir"`
	Workers int    `yaml:"workers"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	DebounceSeconds int `yaml:"debounce_seconds"`
}

// LogConfig holds logging settings. File, when set, receives a copy of
// every record and is rotated by size.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	// Read the config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Catalog.File, err = expandHome(cfg.Catalog.File); err != nil {
		return nil, err
	}
	if cfg.Index.Path, err = expandHome(cfg.Index.Path); err != nil {
		return nil, err
	}
	if cfg.Export.MDXDir, err = expandHome(cfg.Export.MDXDir); err != nil {
		return nil, err
	}
	if cfg.Log.File, err = expandHome(cfg.Log.File); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Catalog.File == "" {
		c.Catalog.File = "movies.csv"
	}
	if c.Catalog.Header == "" {
		c.Catalog.Header = "movieId,title,genres"
	}
	if c.Lock.Attempts == 0 {
		c.Lock.Attempts = 5
	}
	if c.Lock.BackoffMS == 0 {
		c.Lock.BackoffMS = 50
	}
	if c.Index.Path == "" {
		c.Index.Path = defaultIndexPath()
	}
	if c.Export.MDXDir == "" {
		c.Export.MDXDir = "./content/movies"
	}
	if c.Export.Workers == 0 {
		c.Export.Workers = 4
	}
	if c.Watch.DebounceSeconds == 0 {
		c.Watch.DebounceSeconds = 2
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
}

// Validate checks field values after defaults are applied
func (c *Config) Validate() error {
	if c.Lock.Attempts < 0 {
		return fmt.Errorf("lock.attempts must not be negative")
	}
	if c.Lock.BackoffMS < 0 {
		return fmt.Errorf("lock.backoff_ms must not be negative")
	}
	if c.Export.Workers < 0 {
		return fmt.Errorf("export.workers must not be negative")
	}
	if c.Watch.DebounceSeconds < 0 {
		return fmt.Errorf("watch.debounce_seconds must not be negative")
	}

	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation settings must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	return nil
}

// LockBackoff returns the initial wait between lock attempts
func (c *Config) LockBackoff() time.Duration {
	return time.Duration(c.Lock.BackoffMS) * time.Millisecond
}

// DebounceDelay returns how long the watcher waits after the last event
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Watch.DebounceSeconds) * time.Second
}

func defaultIndexPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "movie-index.db"
	}
	return filepath.Join(dir, "movie-catalog", "index.db")
}

// expandHome expands a leading ~ to the home directory
func expandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
