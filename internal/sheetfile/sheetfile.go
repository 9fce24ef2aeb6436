// Package sheetfile reads and writes sheets on disk: the native JSON
// format and CSV import/export. Dependency edges are never persisted;
// loading always rebuilds them before the grid is returned.
package sheetfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/tabula-sh/tabula/internal/sheet"
)

// DefaultFileName is used when no path is given.
const DefaultFileName = "spreadsheet.tab"

var (
	// ErrNotFound indicates the sheet file does not exist.
	ErrNotFound = errors.New("sheet file not found")

	// ErrInvalidFormat indicates the file is not a valid sheet record.
	ErrInvalidFormat = errors.New("invalid sheet file format")

	// ErrLocked indicates another process holds the sheet file lock.
	ErrLocked = errors.New("sheet file locked by another process")
)

// fileCell is the persisted content of one cell.
type fileCell struct {
	Value   string `json:"value"`
	Formula string `json:"formula,omitempty"`
}

// cellRecord serializes as a [row, col, cell] triple.
type cellRecord struct {
	Row  int
	Col  int
	Cell fileCell
}

func (r cellRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Row, r.Col, r.Cell})
}

func (r *cellRecord) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("%w: cell record has %d elements, want 3", ErrInvalidFormat, len(parts))
	}
	if err := json.Unmarshal(parts[0], &r.Row); err != nil {
		return fmt.Errorf("%w: cell row: %v", ErrInvalidFormat, err)
	}
	if err := json.Unmarshal(parts[1], &r.Col); err != nil {
		return fmt.Errorf("%w: cell col: %v", ErrInvalidFormat, err)
	}
	if err := json.Unmarshal(parts[2], &r.Cell); err != nil {
		return fmt.Errorf("%w: cell data: %v", ErrInvalidFormat, err)
	}
	return nil
}

// fileSheet is the on-disk record.
type fileSheet struct {
	Cells              []cellRecord   `json:"cells"`
	Rows               int            `json:"rows"`
	Cols               int            `json:"cols"`
	ColumnWidths       map[string]int `json:"column_widths"`
	DefaultColumnWidth int            `json:"default_column_width"`
}

// Save writes the grid to path atomically: the record lands in a
// temporary file first and is renamed into place. A sidecar lock file
// serializes access with other processes.
func Save(path string, grid *sheet.Grid) error {
	record := fileSheet{
		Rows:               grid.Rows(),
		Cols:               grid.Cols(),
		ColumnWidths:       make(map[string]int),
		DefaultColumnWidth: grid.DefaultColumnWidth(),
	}
	for col, width := range grid.ColumnWidths() {
		record.ColumnWidths[strconv.Itoa(col)] = width
	}
	for _, e := range grid.Entries() {
		record.Cells = append(record.Cells, cellRecord{
			Row:  e.Addr.Row,
			Col:  e.Addr.Col,
			Cell: fileCell{Value: e.Value, Formula: e.Formula},
		})
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sheet: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}

	unlock, err := lockPath(path)
	if err != nil {
		return err
	}
	defer unlock()

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing sheet: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing sheet file: %w", err)
	}
	return nil
}

// Load reads a sheet file and returns a ready grid with dependencies
// rebuilt.
func Load(path string, registry *sheet.Registry) (*sheet.Grid, error) {
	unlock, err := lockPath(path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user's own command line
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	var record fileSheet
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if record.Rows <= 0 || record.Cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidFormat, record.Rows, record.Cols)
	}

	grid := sheet.New(record.Rows, record.Cols, registry)
	if record.DefaultColumnWidth > 0 {
		grid.SetDefaultColumnWidth(record.DefaultColumnWidth)
	}
	for key, width := range record.ColumnWidths {
		col, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: column width key %q", ErrInvalidFormat, key)
		}
		grid.SetColumnWidth(col, width)
	}
	for _, rec := range record.Cells {
		addr := sheet.Addr(rec.Row, rec.Col)
		if err := grid.Load(addr, rec.Cell.Value, rec.Cell.Formula); err != nil {
			return nil, fmt.Errorf("loading cell %s: %w", addr, err)
		}
	}
	grid.RebuildDependencies()
	return grid, nil
}

// lockPath takes the sidecar lock for a sheet path, returning the
// release function.
func lockPath(path string) (func(), error) {
	fl := flock.New(path + ".lock")
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring sheet lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return func() { _ = fl.Unlock() }, nil
}
