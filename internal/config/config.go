// Package config provides reading of stash configuration.
// Supports both global (~/.stash/config.yaml) and local (.stash/config.yaml)
// scopes; reading uses local if it exists, otherwise global. A missing file
// is not an error - defaults apply.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidValue is returned when a config value is out of bounds.
var ErrInvalidValue = errors.New("invalid config value")

// Defaults applied when not configured.
const (
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100 // matches the search executor's limit bound
)

// Config contains configuration for stash.
type Config struct {
	// Database is the path to the catalog database file. Defaults to
	// ~/.stash/stash.db.
	Database string `yaml:"database,omitempty"`

	// Author is recorded in audit log entries. Defaults to $USER.
	Author string `yaml:"author,omitempty"`

	// PageSize is the default search page size. Defaults to 20.
	PageSize *int `yaml:"page_size,omitempty"`

	// path is the file this config was loaded from
	path string
}

// Validate checks that all configured values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.PageSize != nil {
		v := *c.PageSize
		if v < MinPageSize || v > MaxPageSize {
			return fmt.Errorf("%w: page_size must be between %d and %d, got %d",
				ErrInvalidValue, MinPageSize, MaxPageSize, v)
		}
	}
	return nil
}

// DatabasePath returns the configured database path or the default under
// the user's home directory.
func (c *Config) DatabasePath() string {
	if c.Database != "" {
		return c.Database
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "stash.db"
	}
	return filepath.Join(home, ".stash", "stash.db")
}

// AuthorName returns the configured author, falling back to $USER.
func (c *Config) AuthorName() string {
	if c.Author != "" {
		return c.Author
	}
	return os.Getenv("USER")
}

// DefaultPageSize returns the configured default page size.
func (c *Config) DefaultPageSize() int {
	if c.PageSize == nil {
		return DefaultPageSize
	}
	return *c.PageSize
}

// Source returns the file this config was loaded from, or "" for defaults.
func (c *Config) Source() string {
	return c.path
}

// LocalPath returns the path of the local (per-directory) config file.
func LocalPath() string {
	return filepath.Join(".stash", "config.yaml")
}

// GlobalPath returns the path of the global config file: ~/.stash/config.yaml.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stash", "config.yaml")
}

// Load reads configuration: local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return loadFile(LocalPath())
	}
	return loadFile(GlobalPath())
}

func loadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}
