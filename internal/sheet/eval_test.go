package sheet

import (
	"errors"
	"strings"
	"testing"
)

// evalStr parses and evaluates a formula body against a fixed cell
// map, returning the display form of the result.
func evalStr(t *testing.T, input string, cells map[Address]Value) string {
	t.Helper()
	v, err := evalValue(t, input, cells)
	if err != nil {
		t.Fatalf("eval(%q) failed: %v", input, err)
	}
	return v.ToText()
}

func evalValue(t *testing.T, input string, cells map[Address]Value) (Value, error) {
	t.Helper()
	e, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	resolve := func(a Address) Value {
		if v, ok := cells[a]; ok {
			return v
		}
		return Text("")
	}
	ev := NewEvaluator(NewRegistry(nil), resolve, 0, 0)
	return ev.Eval(e)
}

func testCells() map[Address]Value {
	return map[Address]Value{
		Addr(0, 0): Number(10), // A1
		Addr(0, 1): Number(20), // B1
		Addr(0, 2): Number(30), // C1
		Addr(1, 0): Number(5),  // A2
		Addr(1, 1): Number(15), // B2
	}
}

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2+3", "5"},
		{"10-3", "7"},
		{"4*5", "20"},
		{"15/3", "5"},
		{"2**3", "8"},
		{"3^2", "9"},
		{"10%3", "1"},
		{"2+3*4", "14"},
		{"(2+3)*4", "20"},
		{"-5+2", "-3"},
		{"2**3**2", "512"},
	}
	for _, c := range cases {
		if got := evalStr(t, c.input, nil); got != c.want {
			t.Errorf("eval(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestEvalComparisons(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"5<10", "1"},
		{"10<5", "0"},
		{"5<=5", "1"},
		{"5>=6", "0"},
		{"5=5", "1"},
		{"5<>5", "0"},
		{"5<>4", "1"},
		{`"a"="a"`, "1"},
		{`"a"="A"`, "0"},
		{`"5"=5`, "1"},
		{`"abc"<1`, "1"}, // unparsable text coerces to 0
	}
	for _, c := range cases {
		if got := evalStr(t, c.input, nil); got != c.want {
			t.Errorf("eval(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestEvalConcat(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`"Hello" & " " & "World"`, "Hello World"},
		{`"Number: " & 42`, "Number: 42"},
		{`"Result: " & (2 + 3)`, "Result: 5"},
		{`1 & 2`, "12"},
	}
	for _, c := range cases {
		if got := evalStr(t, c.input, nil); got != c.want {
			t.Errorf("eval(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestEvalCellRefs(t *testing.T) {
	cells := testCells()
	cases := []struct {
		input string
		want  string
	}{
		{"A1", "10"},
		{"A1+B1", "30"},
		{"C1-A1", "20"},
		{"B1/A2", "4"},
		{"SUM(A1:C1)", "60"},
		{"SUM(A1:B2)", "50"},
		{"AVERAGE(A1,B1,C1)", "20"},
		{"MIN(A1:C1)", "10"},
		{"MAX(A1:C1)", "30"},
	}
	for _, c := range cases {
		if got := evalStr(t, c.input, cells); got != c.want {
			t.Errorf("eval(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestEvalUnsetCellCoercion(t *testing.T) {
	if got := evalStr(t, "Z9+1", nil); got != "1" {
		t.Errorf("unset cell in numeric context = %q, want \"1\"", got)
	}
	if got := evalStr(t, `Z9&"x"`, nil); got != "x" {
		t.Errorf("unset cell in text context = %q, want \"x\"", got)
	}
}

func TestEvalDivideByZero(t *testing.T) {
	_, err := evalValue(t, "1/0", nil)
	if !errors.Is(err, ErrDivideByZero) {
		t.Errorf("1/0 error = %v, want ErrDivideByZero", err)
	}
	_, err = evalValue(t, "10%0", nil)
	if !errors.Is(err, ErrDivideByZero) {
		t.Errorf("10%%0 error = %v, want ErrDivideByZero", err)
	}
}

func TestEvalUnknownFunction(t *testing.T) {
	_, err := evalValue(t, "NOPE(1)", nil)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("error = %v, want ErrUnknownFunction", err)
	}
}

func TestEvalIfLazyBranches(t *testing.T) {
	// The untaken branch must not be evaluated: 1/0 in it would fail
	// under eager evaluation.
	if got := evalStr(t, "IF(1, 42, 1/0)", nil); got != "42" {
		t.Errorf("IF(1,42,1/0) = %q, want \"42\"", got)
	}
	if got := evalStr(t, "IF(0, 1/0, 7)", nil); got != "7" {
		t.Errorf("IF(0,1/0,7) = %q, want \"7\"", got)
	}
	// The taken branch still propagates its error.
	if _, err := evalValue(t, "IF(1, 1/0, 7)", nil); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("taken-branch error = %v, want ErrDivideByZero", err)
	}
}

func TestEvalIfWithStrings(t *testing.T) {
	cells := map[Address]Value{Addr(0, 0): Text("Hello")}
	cases := []struct {
		input string
		want  string
	}{
		{`IF(A1="Hello", "Found", "Not Found")`, "Found"},
		{`IF(A1="World", "Found", "Not Found")`, "Not Found"},
		{`IF(LEN(A1)>3, "Long", "Short")`, "Long"},
	}
	for _, c := range cases {
		if got := evalStr(t, c.input, cells); got != c.want {
			t.Errorf("eval(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestEvalLogical(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"AND(1,1)", "1"},
		{"AND(1,0)", "0"},
		{"OR(0,1)", "1"},
		{"OR(0,0)", "0"},
		{"NOT(0)", "1"},
		{"NOT(1)", "0"},
		{"AND(1>0, 2<5)", "1"},
	}
	for _, c := range cases {
		if got := evalStr(t, c.input, nil); got != c.want {
			t.Errorf("eval(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestEvalCaseInsensitiveFunctions(t *testing.T) {
	cells := testCells()
	for _, input := range []string{"SUM(A1,B1)", "sum(A1,B1)", "Sum(A1,B1)"} {
		if got := evalStr(t, input, cells); got != "30" {
			t.Errorf("eval(%q) = %q, want \"30\"", input, got)
		}
	}
}

func TestEvalBareRange(t *testing.T) {
	_, err := evalValue(t, "A1:B2", nil)
	if !errors.Is(err, ErrBareRange) {
		t.Errorf("bare range error = %v, want ErrBareRange", err)
	}
}

func TestEvalDepthLimit(t *testing.T) {
	deep := strings.Repeat("-", 300) + "1"
	_, err := evalValue(t, deep, nil)
	if !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("deep nesting error = %v, want ErrDepthExceeded", err)
	}
}

func TestEvalBoundsCheck(t *testing.T) {
	e := mustParse(t, "ZZ999")
	ev := NewEvaluator(NewRegistry(nil), func(Address) Value { return Text("") }, 100, 26)
	_, err := ev.Eval(e)
	var re *RefError
	if !errors.As(err, &re) {
		t.Errorf("out-of-bounds ref error = %v, want *RefError", err)
	}
}
