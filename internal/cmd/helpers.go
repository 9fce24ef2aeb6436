package cmd

import (
	"errors"
	"fmt"

	"github.com/tabula-sh/tabula/internal/config"
	"github.com/tabula-sh/tabula/internal/sheet"
	"github.com/tabula-sh/tabula/internal/sheetfile"
)

// loadConfig reads the user config, falling back to defaults when no
// file exists.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newRegistry builds the formula function registry from config.
func newRegistry(cfg *config.Config) *sheet.Registry {
	return sheet.NewRegistry(cfg.HTTPClient())
}

// newGrid creates an empty grid with configured geometry.
func newGrid(cfg *config.Config, registry *sheet.Registry) *sheet.Grid {
	g := sheet.New(cfg.Rows, cfg.Cols, registry)
	g.SetDefaultColumnWidth(cfg.ColumnWidth)
	return g
}

// openSheet loads a sheet file, or returns a fresh grid when path is
// empty or names a file that does not exist yet.
func openSheet(path string, cfg *config.Config, registry *sheet.Registry) (*sheet.Grid, error) {
	if path == "" {
		return newGrid(cfg, registry), nil
	}
	grid, err := sheetfile.Load(path, registry)
	if err != nil {
		if errors.Is(err, sheetfile.ErrNotFound) {
			return newGrid(cfg, registry), nil
		}
		return nil, err
	}
	return grid, nil
}
