package autofill

import "testing"

func generateN(p Pattern, start, n int) []string {
	out := make([]string, 0, n)
	for i := start; i < start+n; i++ {
		out = append(out, p.Generate(i))
	}
	return out
}

func TestDetectArithmetic(t *testing.T) {
	p := Detect([]string{"1", "2", "3"})
	a, ok := p.(Arithmetic)
	if !ok {
		t.Fatalf("Detect = %T, want Arithmetic", p)
	}
	if a.Start != 1 || a.Step != 1 {
		t.Errorf("Arithmetic = {%v, %v}, want {1, 1}", a.Start, a.Step)
	}
	got := generateN(p, 3, 3)
	for i, want := range []string{"4", "5", "6"} {
		if got[i] != want {
			t.Errorf("Generate(%d) = %q, want %q", 3+i, got[i], want)
		}
	}
}

func TestDetectArithmeticStep(t *testing.T) {
	p := Detect([]string{"10", "20", "30"})
	if got := p.Generate(3); got != "40" {
		t.Errorf("Generate(3) = %q, want \"40\"", got)
	}
	p = Detect([]string{"5", "3", "1"})
	if got := p.Generate(3); got != "-1" {
		t.Errorf("descending Generate(3) = %q, want \"-1\"", got)
	}
	p = Detect([]string{"1.5", "2", "2.5"})
	if got := p.Generate(3); got != "3" {
		t.Errorf("fractional Generate(3) = %q, want \"3\"", got)
	}
}

func TestDetectDays(t *testing.T) {
	p := Detect([]string{"Mon", "Tue"})
	ks, ok := p.(KnownSequence)
	if !ok {
		t.Fatalf("Detect = %T, want KnownSequence", p)
	}
	if ks.Description() != "days sequence" {
		t.Errorf("Description() = %q, want \"days sequence\"", ks.Description())
	}
	// Wraps past the end of the week.
	if got := p.Generate(6); got != "Sun" {
		t.Errorf("Generate(6) = %q, want \"Sun\"", got)
	}
	if got := p.Generate(7); got != "Mon" {
		t.Errorf("Generate(7) = %q, want \"Mon\" (wrap)", got)
	}
}

func TestDetectMonthsMidSequence(t *testing.T) {
	p := Detect([]string{"Nov", "Dec"})
	if got := p.Generate(2); got != "Jan" {
		t.Errorf("Generate(2) = %q, want \"Jan\" (wrap)", got)
	}
	if p.Description() != "months sequence" {
		t.Errorf("Description() = %q, want \"months sequence\"", p.Description())
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	p := Detect([]string{"monday", "TUESDAY"})
	if _, ok := p.(KnownSequence); !ok {
		t.Fatalf("Detect = %T, want KnownSequence", p)
	}
	// Generated values use the canonical casing.
	if got := p.Generate(2); got != "Wednesday" {
		t.Errorf("Generate(2) = %q, want \"Wednesday\"", got)
	}
}

func TestQuartersBeatPrefixedNumbers(t *testing.T) {
	p := Detect([]string{"Q1", "Q2"})
	ks, ok := p.(KnownSequence)
	if !ok {
		t.Fatalf("Detect = %T, want KnownSequence (not PrefixedNumber)", p)
	}
	if ks.Description() != "quarters sequence" {
		t.Errorf("Description() = %q, want \"quarters sequence\"", ks.Description())
	}
	if got := p.Generate(4); got != "Q1" {
		t.Errorf("Generate(4) = %q, want \"Q1\" (wrap)", got)
	}
}

func TestDetectPrefixedNumber(t *testing.T) {
	p := Detect([]string{"Item1", "Item2"})
	pn, ok := p.(PrefixedNumber)
	if !ok {
		t.Fatalf("Detect = %T, want PrefixedNumber", p)
	}
	if pn.Prefix != "Item" || pn.Start != 1 || pn.Step != 1 {
		t.Errorf("PrefixedNumber = %+v", pn)
	}
	if got := p.Generate(2); got != "Item3" {
		t.Errorf("Generate(2) = %q, want \"Item3\"", got)
	}
}

func TestDetectPrefixedNumberWithSuffix(t *testing.T) {
	p := Detect([]string{"Row_1_data", "Row_3_data"})
	if got := p.Generate(2); got != "Row_5_data" {
		t.Errorf("Generate(2) = %q, want \"Row_5_data\"", got)
	}
}

func TestDetectCopy(t *testing.T) {
	p := Detect([]string{"hello"})
	if _, ok := p.(Copy); !ok {
		t.Fatalf("Detect = %T, want Copy", p)
	}
	if got := p.Generate(5); got != "hello" {
		t.Errorf("Generate(5) = %q, want \"hello\"", got)
	}

	// Mixed values that fit no pattern fall back to copying the first.
	p = Detect([]string{"alpha", "beta"})
	if got := p.Generate(2); got != "alpha" {
		t.Errorf("fallback Generate(2) = %q, want \"alpha\"", got)
	}
}

func TestDetectEmpty(t *testing.T) {
	p := Detect(nil)
	if got := p.Generate(0); got != "" {
		t.Errorf("Generate(0) = %q, want \"\"", got)
	}
}
