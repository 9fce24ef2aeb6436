// Package state resolves the per-user directories tabula stores its
// files in, following the XDG base directory convention.
package state

import (
	"os"
	"path/filepath"
)

const appDir = "tabula"

// ConfigDir returns the directory for configuration files,
// honoring XDG_CONFIG_HOME.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDir)
}

// StateDir returns the directory for mutable state,
// honoring XDG_STATE_HOME.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appDir)
}

// CacheDir returns the directory for cached data,
// honoring XDG_CACHE_HOME.
func CacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", appDir)
}
