// Package config loads the tabula configuration file.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tabula-sh/tabula/internal/state"
)

var (
	// ErrNotFound indicates the config file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrInvalidValue indicates a config field is out of range.
	ErrInvalidValue = errors.New("invalid config value")
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.toml"

// Config holds user-adjustable settings. Zero fields fall back to
// defaults at load time.
type Config struct {
	// Rows and Cols set the dimensions of newly created sheets.
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	// ColumnWidth sets the default display width of columns.
	ColumnWidth int `toml:"column_width"`

	// FetchTimeout bounds GET() formula requests, e.g. "10s".
	FetchTimeout string `toml:"fetch_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rows:         100,
		Cols:         26,
		ColumnWidth:  8,
		FetchTimeout: "10s",
	}
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(state.ConfigDir(), FileName)
}

// Load reads and validates a config file. Missing fields take their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is from trusted config location
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadOrDefault loads the config file, falling back to defaults if it
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	config, err := Load(path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Default(), nil
		}
		return nil, err
	}
	return config, nil
}

// Save writes a config file, creating the directory if needed.
func Save(path string, config *Config) error {
	if err := validate(config); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644) //nolint:gosec // G304: path is from trusted config location
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// HTTPClient builds the client used by GET() formulas, applying the
// configured fetch timeout.
func (c *Config) HTTPClient() *http.Client {
	timeout, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func validate(c *Config) error {
	if c.Rows <= 0 {
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidValue, c.Rows)
	}
	if c.Cols <= 0 {
		return fmt.Errorf("%w: cols must be positive, got %d", ErrInvalidValue, c.Cols)
	}
	if c.ColumnWidth <= 0 {
		return fmt.Errorf("%w: column_width must be positive, got %d", ErrInvalidValue, c.ColumnWidth)
	}
	if c.FetchTimeout != "" {
		if _, err := time.ParseDuration(c.FetchTimeout); err != nil {
			return fmt.Errorf("%w: fetch_timeout: %v", ErrInvalidValue, err)
		}
	}
	return nil
}
