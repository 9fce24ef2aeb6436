// Package autofill detects continuation patterns in a run of cell
// values and generates the values that extend the run.
package autofill

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Known sequences, matched case-insensitively with wrap-around.
var (
	daysShort   = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	daysFull    = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	monthsShort = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	monthsFull  = []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
	quarters    = []string{"Q1", "Q2", "Q3", "Q4"}
)

const epsilon = 1e-9

// Pattern is a detected autofill rule. Generate produces the value at
// a 0-based index from the start of the source run.
type Pattern interface {
	Generate(index int) string
	// Description is the human-readable name shown in status output.
	Description() string
}

// Detect analyzes the source values and picks the strongest matching
// pattern. Priority: arithmetic, then known sequences, then prefixed
// numbers, then plain copy. Known sequences come before prefixed
// numbers so "Q1, Q2" reads as quarters rather than prefix "Q".
func Detect(values []string) Pattern {
	if len(values) == 0 {
		return Copy{}
	}
	if len(values) == 1 {
		return Copy{Value: values[0]}
	}
	if p, ok := detectArithmetic(values); ok {
		return p
	}
	if p, ok := detectKnownSequence(values); ok {
		return p
	}
	if p, ok := detectPrefixedNumber(values); ok {
		return p
	}
	return Copy{Value: values[0]}
}

// Arithmetic continues a constant-step numeric sequence.
type Arithmetic struct {
	Start float64
	Step  float64
}

// Generate returns start + step*index.
func (p Arithmetic) Generate(index int) string {
	return formatNumber(p.Start + p.Step*float64(index))
}

func (p Arithmetic) Description() string {
	if p.Step >= 0 {
		return fmt.Sprintf("arithmetic sequence (+%s)", formatNumber(p.Step))
	}
	return fmt.Sprintf("arithmetic sequence (%s)", formatNumber(p.Step))
}

// PrefixedNumber continues values like "Item1", "Item2" where the
// embedded number follows an arithmetic step.
type PrefixedNumber struct {
	Prefix string
	Suffix string
	Start  float64
	Step   float64
}

func (p PrefixedNumber) Generate(index int) string {
	return p.Prefix + formatNumber(p.Start+p.Step*float64(index)) + p.Suffix
}

func (p PrefixedNumber) Description() string {
	return fmt.Sprintf("%q sequence (+%s)", p.Prefix+"...", formatNumber(p.Step))
}

// KnownSequence cycles through a fixed list (days, months, quarters)
// starting at the matched offset.
type KnownSequence struct {
	Sequence   []string
	StartIndex int
}

func (p KnownSequence) Generate(index int) string {
	return p.Sequence[(p.StartIndex+index)%len(p.Sequence)]
}

func (p KnownSequence) Description() string {
	switch {
	case sameSequence(p.Sequence, daysShort) || sameSequence(p.Sequence, daysFull):
		return "days sequence"
	case sameSequence(p.Sequence, monthsShort) || sameSequence(p.Sequence, monthsFull):
		return "months sequence"
	case sameSequence(p.Sequence, quarters):
		return "quarters sequence"
	}
	return "known sequence"
}

// Copy repeats a single value.
type Copy struct {
	Value string
}

func (p Copy) Generate(int) string { return p.Value }

func (p Copy) Description() string { return "copy" }

func detectArithmetic(values []string) (Arithmetic, bool) {
	nums := make([]float64, len(values))
	for i, s := range values {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Arithmetic{}, false
		}
		nums[i] = n
	}
	step := nums[1] - nums[0]
	for i := 2; i < len(nums); i++ {
		if math.Abs(nums[i]-nums[i-1]-step) > epsilon {
			return Arithmetic{}, false
		}
	}
	return Arithmetic{Start: nums[0], Step: step}, true
}

func detectKnownSequence(values []string) (KnownSequence, bool) {
	for _, seq := range [][]string{daysShort, daysFull, monthsShort, monthsFull, quarters} {
		if start, ok := matchSequence(values, seq); ok {
			return KnownSequence{Sequence: seq, StartIndex: start}, true
		}
	}
	return KnownSequence{}, false
}

func matchSequence(values, seq []string) (int, bool) {
	if len(values) == 0 || len(values) > len(seq) {
		return 0, false
	}
	start := -1
	for i, s := range seq {
		if strings.EqualFold(s, values[0]) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	for i, v := range values {
		if !strings.EqualFold(v, seq[(start+i)%len(seq)]) {
			return 0, false
		}
	}
	return start, true
}

func detectPrefixedNumber(values []string) (PrefixedNumber, bool) {
	type split struct {
		prefix string
		num    float64
		suffix string
	}
	parts := make([]split, len(values))
	for i, v := range values {
		prefix, num, suffix, ok := splitPrefixedNumber(v)
		if !ok {
			return PrefixedNumber{}, false
		}
		parts[i] = split{prefix, num, suffix}
	}
	for _, p := range parts[1:] {
		if p.prefix != parts[0].prefix || p.suffix != parts[0].suffix {
			return PrefixedNumber{}, false
		}
	}
	step := parts[1].num - parts[0].num
	for i := 2; i < len(parts); i++ {
		if math.Abs(parts[i].num-parts[i-1].num-step) > epsilon {
			return PrefixedNumber{}, false
		}
	}
	return PrefixedNumber{
		Prefix: parts[0].prefix,
		Suffix: parts[0].suffix,
		Start:  parts[0].num,
		Step:   step,
	}, true
}

// splitPrefixedNumber splits "Row_5_data" into ("Row_", 5, "_data").
func splitPrefixedNumber(s string) (prefix string, num float64, suffix string, ok bool) {
	first := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if first < 0 {
		return "", 0, "", false
	}
	end := first
	for end < len(s) && (isDigit(s[end]) || s[end] == '.' || s[end] == '-') {
		end++
	}
	n, err := strconv.ParseFloat(s[first:end], 64)
	if err != nil {
		return "", 0, "", false
	}
	return s[:first], n, s[end:], true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func sameSequence(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// formatNumber renders a number the way cell values display: whole
// numbers without a decimal point, fractions without trailing zeros.
func formatNumber(n float64) string {
	if math.Abs(n-math.Round(n)) < epsilon && math.Abs(n) < math.MaxInt64 {
		return strconv.FormatInt(int64(math.Round(n)), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
