package sheetfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/tabula-sh/tabula/internal/sheet"
)

// Import growth buffer: imported data gets room to expand without an
// immediate resize.
const (
	importRowBuffer = 10
	importColBuffer = 5
)

// ErrNoData indicates an export was requested for an empty grid.
var ErrNoData = errors.New("no data to export")

// ExportCSV writes the rectangular data region of the grid as CSV.
// Only display values are written; formulas do not survive a CSV
// round trip.
func ExportCSV(path string, grid *sheet.Grid) error {
	maxRow, maxCol, ok := grid.DataBounds()
	if !ok {
		return ErrNoData
	}

	f, err := os.Create(path) //nolint:gosec // G304: path comes from the user's own command line
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, maxCol+1)
	for row := 0; row <= maxRow; row++ {
		for col := 0; col <= maxCol; col++ {
			record[col] = grid.Display(sheet.Addr(row, col))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", row+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// ImportCSV reads a CSV file into a fresh grid. Every field becomes a
// literal cell; the grid grows past the data bounds so there is room
// to keep working.
func ImportCSV(path string, registry *sheet.Registry) (*sheet.Grid, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the user's own command line
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	grid := sheet.NewDefault(registry)
	maxRow, maxCol := 0, 0
	for row, record := range records {
		for col, field := range record {
			if col > maxCol {
				maxCol = col
			}
			if field == "" {
				continue
			}
			grid.Grow(row+1, col+1)
			if err := grid.Load(sheet.Addr(row, col), field, ""); err != nil {
				return nil, fmt.Errorf("importing cell at row %d col %d: %w", row+1, col+1, err)
			}
		}
		maxRow = row
	}
	if len(records) > 0 {
		grid.Grow(maxRow+1+importRowBuffer, maxCol+1+importColBuffer)
	}
	grid.RebuildDependencies()
	return grid, nil
}
