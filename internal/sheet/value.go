package sheet

import "strconv"

// ValueKind discriminates the two value variants.
type ValueKind int

const (
	// KindNumber is a floating-point numeric value.
	KindNumber ValueKind = iota
	// KindText is a character string value.
	KindText
)

// Value is the dynamic type flowing through formula evaluation.
// It is either a Number or a Text; there is no null variant. An
// unset cell resolves to Text(""), which coerces to 0 in numeric
// context and to the empty string in text context.
type Value struct {
	kind ValueKind
	num  float64
	text string
}

// Number constructs a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Text constructs a string Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Kind reports which variant this value holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// ToNumber coerces the value to a float64. Text that does not parse
// as a number coerces to 0.
func (v Value) ToNumber() float64 {
	if v.kind == KindNumber {
		return v.num
	}
	n, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0
	}
	return n
}

// ToText coerces the value to its string form. Numbers render in
// canonical decimal notation without trailing zeros.
func (v Value) ToText() string {
	if v.kind == KindText {
		return v.text
	}
	return formatNumber(v.num)
}

// Truthy reports whether the value is true in boolean context:
// nonzero for numbers, non-empty for text.
func (v Value) Truthy() bool {
	if v.kind == KindNumber {
		return v.num != 0
	}
	return v.text != ""
}

// Equal compares two values. Same-variant operands compare natively;
// mixed variants compare by their text forms.
func (v Value) Equal(o Value) bool {
	if v.kind == o.kind {
		if v.kind == KindNumber {
			return v.num == o.num
		}
		return v.text == o.text
	}
	return v.ToText() == o.ToText()
}

// String implements fmt.Stringer using the text coercion.
func (v Value) String() string {
	return v.ToText()
}

func boolValue(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
