package sheet

import (
	"errors"
	"testing"
)

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	return NewDefault(NewRegistry(nil))
}

func set(t *testing.T, g *Grid, ref, raw string) {
	t.Helper()
	a, ok := ParseRef(ref)
	if !ok {
		t.Fatalf("bad ref %q", ref)
	}
	if err := g.SetCell(a, raw); err != nil {
		t.Fatalf("SetCell(%s, %q) failed: %v", ref, raw, err)
	}
}

func display(t *testing.T, g *Grid, ref string) string {
	t.Helper()
	a, ok := ParseRef(ref)
	if !ok {
		t.Fatalf("bad ref %q", ref)
	}
	return g.Display(a)
}

func TestSetCellLiteralTyping(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "42")
	set(t, g, "A2", "hello")
	set(t, g, "A3", "3.5")

	if v := g.Cell(Addr(0, 0)).Value; v.Kind() != KindNumber || v.ToNumber() != 42 {
		t.Errorf("literal \"42\" = %v, want Number(42)", v)
	}
	if v := g.Cell(Addr(1, 0)).Value; v.Kind() != KindText || v.ToText() != "hello" {
		t.Errorf("literal \"hello\" = %v, want Text(hello)", v)
	}
	if v := g.Cell(Addr(2, 0)).Value; v.Kind() != KindNumber || v.ToNumber() != 3.5 {
		t.Errorf("literal \"3.5\" = %v, want Number(3.5)", v)
	}
}

func TestSetCellFormula(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "10")
	set(t, g, "B1", "=A1*2")

	if got := display(t, g, "B1"); got != "20" {
		t.Errorf("B1 = %q, want \"20\"", got)
	}

	// Editing the precedent recalculates the dependent.
	set(t, g, "A1", "7")
	if got := display(t, g, "B1"); got != "14" {
		t.Errorf("B1 after A1 edit = %q, want \"14\"", got)
	}
}

func TestDiamondDependency(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "1")
	set(t, g, "B1", "=A1+1")
	set(t, g, "C1", "=A1+1")
	set(t, g, "D1", "=B1+C1")

	if got := display(t, g, "D1"); got != "4" {
		t.Errorf("D1 = %q, want \"4\"", got)
	}

	// Same result with the middle cells entered in the other order.
	g2 := newTestGrid(t)
	set(t, g2, "A1", "1")
	set(t, g2, "C1", "=A1+1")
	set(t, g2, "D1", "=B1+C1")
	set(t, g2, "B1", "=A1+1")
	if got := display(t, g2, "D1"); got != "4" {
		t.Errorf("D1 (reordered edits) = %q, want \"4\"", got)
	}
}

func TestCycleRejectionLeavesStateUntouched(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "1")
	set(t, g, "B1", "5")
	set(t, g, "A1", "=B1+1")

	err := g.SetCell(Addr(0, 1), "=A1+1")
	var cre *CircularRefError
	if !errors.As(err, &cre) {
		t.Fatalf("cyclic edit error = %v, want *CircularRefError", err)
	}

	if got := display(t, g, "B1"); got != "5" {
		t.Errorf("B1 after rejected edit = %q, want \"5\"", got)
	}
	if got := g.Raw(Addr(0, 1)); got != "5" {
		t.Errorf("B1 raw after rejected edit = %q, want \"5\"", got)
	}
	if got := display(t, g, "A1"); got != "6" {
		t.Errorf("A1 = %q, want \"6\"", got)
	}

	// The graph rolled back too: an unrelated edit still works.
	set(t, g, "B1", "10")
	if got := display(t, g, "A1"); got != "11" {
		t.Errorf("A1 after B1=10 = %q, want \"11\"", got)
	}
}

func TestSelfReferenceRejected(t *testing.T) {
	g := newTestGrid(t)
	err := g.SetCell(Addr(0, 0), "=A1+1")
	var cre *CircularRefError
	if !errors.As(err, &cre) {
		t.Errorf("self reference error = %v, want *CircularRefError", err)
	}
}

func TestParseErrorAbortsEdit(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "3")

	err := g.SetCell(Addr(0, 0), "=1+")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if got := display(t, g, "A1"); got != "3" {
		t.Errorf("A1 after rejected edit = %q, want \"3\"", got)
	}
	if got := g.Raw(Addr(0, 0)); got != "3" {
		t.Errorf("A1 raw after rejected edit = %q, want \"3\"", got)
	}
}

func TestEvalErrorIsLocal(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "=1/0")
	set(t, g, "B1", "2")
	set(t, g, "C1", "=B1*3")

	if got := display(t, g, "A1"); got != ErrorSentinel {
		t.Errorf("A1 = %q, want %q", got, ErrorSentinel)
	}
	if err := g.Cell(Addr(0, 0)).Err; !errors.Is(err, ErrDivideByZero) {
		t.Errorf("A1 error = %v, want ErrDivideByZero", err)
	}
	// Sibling cells still evaluate.
	if got := display(t, g, "C1"); got != "6" {
		t.Errorf("C1 = %q, want \"6\"", got)
	}
}

func TestErrorPropagatesAsSentinelText(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "=1/0")
	set(t, g, "B1", `=A1&"!"`)

	if got := display(t, g, "B1"); got != ErrorSentinel+"!" {
		t.Errorf("B1 = %q, want %q", got, ErrorSentinel+"!")
	}
}

func TestQuoteEscaping(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", `="Quote""Test"`)
	if got := display(t, g, "A1"); got != `Quote"Test` {
		t.Errorf("A1 = %q, want %q", got, `Quote"Test`)
	}
}

func TestEmptyCellCoercion(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "B1", "=A1+1")
	if got := display(t, g, "B1"); got != "1" {
		t.Errorf("=A1+1 with unset A1 = %q, want \"1\"", got)
	}
	set(t, g, "C1", `=A1&"x"`)
	if got := display(t, g, "C1"); got != "x" {
		t.Errorf("=A1&\"x\" with unset A1 = %q, want \"x\"", got)
	}
}

func TestClearCell(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "5")
	set(t, g, "B1", "=A1*2")

	if err := g.ClearCell(Addr(0, 0)); err != nil {
		t.Fatalf("ClearCell failed: %v", err)
	}
	if !g.IsEmpty(Addr(0, 0)) {
		t.Error("A1 not empty after clear")
	}
	// Dependent recalculates against the cleared cell.
	if got := display(t, g, "B1"); got != "0" {
		t.Errorf("B1 after clearing A1 = %q, want \"0\"", got)
	}
}

func TestOutOfBoundsEdit(t *testing.T) {
	g := New(10, 5, NewRegistry(nil))
	err := g.SetCell(Addr(10, 0), "1")
	var re *RefError
	if !errors.As(err, &re) {
		t.Errorf("error = %v, want *RefError", err)
	}
	if err := g.SetCell(Addr(0, 5), "1"); !errors.As(err, &re) {
		t.Errorf("error = %v, want *RefError", err)
	}
}

func TestChainRecalculation(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "1")
	set(t, g, "A2", "=A1+1")
	set(t, g, "A3", "=A2+1")
	set(t, g, "A4", "=A3+1")

	set(t, g, "A1", "10")
	for i, want := range []string{"10", "11", "12", "13"} {
		if got := g.Display(Addr(i, 0)); got != want {
			t.Errorf("A%d = %q, want %q", i+1, got, want)
		}
	}
}

func TestRecalculationIdempotent(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "2")
	set(t, g, "B1", "=A1*A1")
	set(t, g, "C1", "=SUM(A1:B1)")

	before := display(t, g, "C1")
	g.RebuildDependencies()
	if after := display(t, g, "C1"); after != before {
		t.Errorf("C1 after rebuild = %q, want %q", after, before)
	}
}

func TestRoundTripThroughEntries(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "10")
	set(t, g, "B1", "text")
	set(t, g, "C1", "=A1*2")
	set(t, g, "D1", "=SUM(A1:C1)")

	restored := newTestGrid(t)
	for _, e := range g.Entries() {
		if err := restored.Load(e.Addr, e.Value, e.Formula); err != nil {
			t.Fatalf("Load(%v) failed: %v", e.Addr, err)
		}
	}
	restored.RebuildDependencies()

	for _, ref := range []string{"A1", "B1", "C1", "D1"} {
		if got, want := display(t, restored, ref), display(t, g, ref); got != want {
			t.Errorf("restored %s = %q, want %q", ref, got, want)
		}
	}

	// Edits behave identically after the rebuild.
	set(t, restored, "A1", "20")
	if got := display(t, restored, "C1"); got != "40" {
		t.Errorf("restored C1 after edit = %q, want \"40\"", got)
	}
}

func TestRangeFormulaTracksAllMembers(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "D1", "=SUM(A1:A3)")
	set(t, g, "A2", "5")
	if got := display(t, g, "D1"); got != "5" {
		t.Errorf("D1 = %q, want \"5\"", got)
	}
	set(t, g, "A3", "7")
	if got := display(t, g, "D1"); got != "12" {
		t.Errorf("D1 = %q, want \"12\"", got)
	}
}

func TestColumnWidths(t *testing.T) {
	g := newTestGrid(t)
	if got := g.ColumnWidth(0); got != DefaultColWidth {
		t.Errorf("ColumnWidth(0) = %d, want %d", got, DefaultColWidth)
	}

	g.SetColumnWidth(0, 200)
	if got := g.ColumnWidth(0); got != MaxColWidth {
		t.Errorf("oversized width = %d, want clamp to %d", got, MaxColWidth)
	}
	g.SetColumnWidth(0, 1)
	if got := g.ColumnWidth(0); got != MinColWidth {
		t.Errorf("undersized width = %d, want clamp to %d", got, MinColWidth)
	}

	set(t, g, "B1", "a long cell value")
	g.WidenToFit(Addr(0, 1))
	if got := g.ColumnWidth(1); got != len("a long cell value")+2 {
		t.Errorf("WidenToFit width = %d, want %d", got, len("a long cell value")+2)
	}
}

func TestAutoResizeColumn(t *testing.T) {
	g := newTestGrid(t)
	set(t, g, "A1", "wide content here")
	set(t, g, "A2", "x")
	g.AutoResizeColumn(0)
	if got := g.ColumnWidth(0); got != len("wide content here")+2 {
		t.Errorf("AutoResizeColumn width = %d, want %d", got, len("wide content here")+2)
	}
}

func TestDataBounds(t *testing.T) {
	g := newTestGrid(t)
	if _, _, ok := g.DataBounds(); ok {
		t.Error("empty grid reported data bounds")
	}
	set(t, g, "C5", "x")
	set(t, g, "B7", "y")
	maxRow, maxCol, ok := g.DataBounds()
	if !ok || maxRow != 6 || maxCol != 2 {
		t.Errorf("DataBounds = (%d, %d, %v), want (6, 2, true)", maxRow, maxCol, ok)
	}
}
