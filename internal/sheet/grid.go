package sheet

import (
	"strconv"
	"strings"
)

// Default sheet geometry.
const (
	DefaultRows     = 100
	DefaultCols     = 26
	DefaultColWidth = 8
	MinColWidth     = 3
	MaxColWidth     = 50
)

// cellState is the live record for a written cell. Cells are created
// lazily on first write and never physically removed; clearing resets
// one to the empty literal state.
type cellState struct {
	raw string
	ast Expr
	val Value
	err error
}

// CellData is a read-only snapshot of a cell.
type CellData struct {
	// Raw is the input as typed: literal text, or a formula
	// beginning with '='.
	Raw string
	// Value is the cached evaluation result.
	Value Value
	// Err is the last evaluation error, nil on success.
	Err error
}

// IsFormula reports whether the cell holds a formula.
func (c CellData) IsFormula() bool {
	return strings.HasPrefix(c.Raw, "=")
}

// Display returns the cell's display string: the error sentinel when
// evaluation failed, otherwise the cached value's text form.
func (c CellData) Display() string {
	if c.Err != nil {
		return ErrorSentinel
	}
	return c.Value.ToText()
}

// Entry pairs an address with its persistable cell content.
type Entry struct {
	Addr    Address
	Value   string // display value
	Formula string // formula source including '=', empty for literals
}

// Grid owns cell contents and cached results and mediates every
// mutation. It is not safe for concurrent use; callers serialize
// access.
type Grid struct {
	rows  int
	cols  int
	cells map[Address]*cellState
	graph *Graph

	registry *Registry

	colWidths       map[int]int
	defaultColWidth int
}

// New creates an empty grid with the given bounds.
func New(rows, cols int, registry *Registry) *Grid {
	return &Grid{
		rows:            rows,
		cols:            cols,
		cells:           make(map[Address]*cellState),
		graph:           NewGraph(),
		registry:        registry,
		colWidths:       make(map[int]int),
		defaultColWidth: DefaultColWidth,
	}
}

// NewDefault creates an empty grid with the default geometry.
func NewDefault(registry *Registry) *Grid {
	return New(DefaultRows, DefaultCols, registry)
}

// Rows returns the row bound.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column bound.
func (g *Grid) Cols() int { return g.cols }

// Grow extends the grid bounds. Bounds never shrink.
func (g *Grid) Grow(rows, cols int) {
	if rows > g.rows {
		g.rows = rows
	}
	if cols > g.cols {
		g.cols = cols
	}
}

// SetDims sets the grid bounds directly. Used by persistence when
// restoring a saved sheet.
func (g *Grid) SetDims(rows, cols int) {
	if rows > 0 {
		g.rows = rows
	}
	if cols > 0 {
		g.cols = cols
	}
}

// SetCell is the single mutation entry point. It parses raw, updates
// dependency edges, rejects edits that would create a cycle, and
// recalculates the affected cells in topological order. The whole
// edit is atomic: on ParseError or CircularRefError no observable
// state changes.
func (g *Grid) SetCell(a Address, raw string) error {
	if !g.inBounds(a) {
		return &RefError{Addr: a}
	}

	var ast Expr
	if strings.HasPrefix(raw, "=") {
		parsed, err := Parse(raw[1:])
		if err != nil {
			return err
		}
		ast = parsed
	}

	oldRefs := g.graph.Precedents(a)
	var newRefs []Address
	if ast != nil {
		newRefs = ExtractRefs(ast)
	}
	g.graph.SetPrecedents(a, newRefs)
	if g.graph.HasCycleThrough(a) {
		g.graph.SetPrecedents(a, oldRefs)
		return &CircularRefError{Addr: a}
	}

	cell := g.cells[a]
	if cell == nil {
		cell = &cellState{}
		g.cells[a] = cell
	}
	cell.raw = raw
	cell.ast = ast

	g.recalculate(g.graph.TopoOrder(g.graph.Affected(a)))
	return nil
}

// ClearCell resets a cell to the empty literal state and recalculates
// its dependents.
func (g *Grid) ClearCell(a Address) error {
	return g.SetCell(a, "")
}

// Cell returns a snapshot of the cell at a. Unwritten cells read as
// the empty literal.
func (g *Grid) Cell(a Address) CellData {
	cell := g.cells[a]
	if cell == nil {
		return CellData{Value: Text("")}
	}
	return CellData{Raw: cell.raw, Value: cell.val, Err: cell.err}
}

// Display returns the display string for a cell.
func (g *Grid) Display(a Address) string {
	return g.Cell(a).Display()
}

// Raw returns the cell input as typed, for editing.
func (g *Grid) Raw(a Address) string {
	if cell := g.cells[a]; cell != nil {
		return cell.raw
	}
	return ""
}

// IsEmpty reports whether the cell has no content.
func (g *Grid) IsEmpty(a Address) bool {
	cell := g.cells[a]
	return cell == nil || cell.raw == ""
}

// Precedents returns the cells a's formula reads.
func (g *Grid) Precedents(a Address) []Address {
	return g.graph.Precedents(a)
}

// Dependents returns the cells whose formulas read a.
func (g *Grid) Dependents(a Address) []Address {
	return g.graph.Dependents(a)
}

// Load installs cell content without recalculating, for bulk restore.
// value is the persisted display value and formula the formula source
// (with leading '='), empty for literals. The caller must invoke
// RebuildDependencies before any SetCell, since edges are never
// persisted.
func (g *Grid) Load(a Address, value, formula string) error {
	if !g.inBounds(a) {
		return &RefError{Addr: a}
	}
	cell := &cellState{}
	if formula != "" {
		cell.raw = formula
		ast, err := Parse(strings.TrimPrefix(formula, "="))
		if err != nil {
			cell.err = err
		} else {
			cell.ast = ast
		}
		cell.val = literalValue(value)
	} else {
		cell.raw = value
		cell.val = literalValue(value)
	}
	g.cells[a] = cell
	return nil
}

// RebuildDependencies reconstructs the whole dependency graph from
// stored ASTs and re-evaluates every cell. Cells on a pre-existing
// cycle (possible only in corrupted input) keep their loaded values.
func (g *Grid) RebuildDependencies() {
	g.graph = NewGraph()
	addrs := make([]Address, 0, len(g.cells))
	for a, cell := range g.cells {
		addrs = append(addrs, a)
		if cell.ast != nil {
			g.graph.SetPrecedents(a, ExtractRefs(cell.ast))
		}
	}
	sortAddrs(addrs)
	g.recalculate(g.graph.TopoOrder(addrs))
}

// Entries returns all non-empty cells in address order, for
// persistence and export.
func (g *Grid) Entries() []Entry {
	addrs := make([]Address, 0, len(g.cells))
	for a, cell := range g.cells {
		if cell.raw == "" {
			continue
		}
		addrs = append(addrs, a)
	}
	sortAddrs(addrs)
	entries := make([]Entry, 0, len(addrs))
	for _, a := range addrs {
		cell := g.cells[a]
		e := Entry{Addr: a, Value: cell.displayString()}
		if cell.ast != nil || strings.HasPrefix(cell.raw, "=") {
			e.Formula = cell.raw
		}
		entries = append(entries, e)
	}
	return entries
}

// DataBounds returns the maximum row and column holding content. ok
// is false for an empty grid.
func (g *Grid) DataBounds() (maxRow, maxCol int, ok bool) {
	for a, cell := range g.cells {
		if cell.raw == "" {
			continue
		}
		ok = true
		if a.Row > maxRow {
			maxRow = a.Row
		}
		if a.Col > maxCol {
			maxCol = a.Col
		}
	}
	return maxRow, maxCol, ok
}

// ColumnWidth returns the display width for a column.
func (g *Grid) ColumnWidth(col int) int {
	if w, ok := g.colWidths[col]; ok {
		return w
	}
	return g.defaultColWidth
}

// SetColumnWidth overrides a column's display width, clamped to the
// allowed range.
func (g *Grid) SetColumnWidth(col, width int) {
	g.colWidths[col] = clampWidth(width)
}

// ColumnWidths returns the explicit width overrides.
func (g *Grid) ColumnWidths() map[int]int {
	out := make(map[int]int, len(g.colWidths))
	for col, w := range g.colWidths {
		out[col] = w
	}
	return out
}

// DefaultColumnWidth returns the width used for columns without an
// override.
func (g *Grid) DefaultColumnWidth() int { return g.defaultColWidth }

// SetDefaultColumnWidth sets the fallback column width.
func (g *Grid) SetDefaultColumnWidth(width int) {
	g.defaultColWidth = clampWidth(width)
}

// WidenToFit grows a cell's column so its display value fits. It
// never narrows.
func (g *Grid) WidenToFit(a Address) {
	needed := clampWidth(len(g.Display(a)) + 2)
	if needed > g.ColumnWidth(a.Col) {
		g.colWidths[a.Col] = needed
	}
}

// AutoResizeColumn sets a column's width to fit its widest display
// value, within the allowed range.
func (g *Grid) AutoResizeColumn(col int) {
	width := MinColWidth
	for a, cell := range g.cells {
		if a.Col != col || cell.raw == "" {
			continue
		}
		if n := len(cell.displayString()) + 2; n > width {
			width = n
		}
	}
	g.colWidths[col] = clampWidth(width)
}

// recalculate re-evaluates the given cells in order, writing results
// before moving on so later cells read fresh values. Evaluation
// failures stay local to their cell.
func (g *Grid) recalculate(order []Address) {
	ev := NewEvaluator(g.registry, g.resolve, g.rows, g.cols)
	for _, a := range order {
		cell := g.cells[a]
		if cell == nil {
			continue
		}
		if cell.ast == nil {
			cell.val = literalValue(cell.raw)
			if !strings.HasPrefix(cell.raw, "=") {
				cell.err = nil
			}
			continue
		}
		val, err := ev.Eval(cell.ast)
		if err != nil {
			cell.val = Text("")
			cell.err = err
		} else {
			cell.val = val
			cell.err = nil
		}
	}
}

// resolve is the evaluator's view of cell values. Unset cells read as
// Text(""); a failed cell propagates the error sentinel as text.
func (g *Grid) resolve(a Address) Value {
	cell := g.cells[a]
	if cell == nil {
		return Text("")
	}
	if cell.err != nil {
		return Text(ErrorSentinel)
	}
	return cell.val
}

func (g *Grid) inBounds(a Address) bool {
	return a.Row >= 0 && a.Row < g.rows && a.Col >= 0 && a.Col < g.cols
}

func (c *cellState) displayString() string {
	if c.err != nil {
		return ErrorSentinel
	}
	return c.val.ToText()
}

// literalValue auto-types a literal: Number if it parses as one,
// otherwise Text.
func literalValue(raw string) Value {
	if raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(n)
		}
	}
	return Text(raw)
}

func clampWidth(w int) int {
	if w < MinColWidth {
		return MinColWidth
	}
	if w > MaxColWidth {
		return MaxColWidth
	}
	return w
}
