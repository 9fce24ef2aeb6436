package sheet

import "testing"

func TestToNumber(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{Number(3.5), 3.5},
		{Text("42"), 42},
		{Text("3.25"), 3.25},
		{Text("abc"), 0},
		{Text(""), 0},
	}
	for _, c := range cases {
		if got := c.v.ToNumber(); got != c.want {
			t.Errorf("ToNumber(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestToText(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Number(5), "5"},
		{Number(0.5), "0.5"},
		{Number(-2), "-2"},
		{Number(1.25), "1.25"},
		{Text("hi"), "hi"},
		{Text(""), ""},
	}
	for _, c := range cases {
		if got := c.v.ToText(); got != c.want {
			t.Errorf("ToText(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	if Number(0).Truthy() {
		t.Error("Number(0) should be falsy")
	}
	if !Number(-1).Truthy() {
		t.Error("Number(-1) should be truthy")
	}
	if Text("").Truthy() {
		t.Error("Text(\"\") should be falsy")
	}
	if !Text("0").Truthy() {
		t.Error("Text(\"0\") should be truthy")
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{Number(1), Number(1), true},
		{Number(1), Number(2), false},
		{Text("a"), Text("a"), true},
		{Text("a"), Text("A"), false},
		{Number(5), Text("5"), true},
		{Number(5), Text("5.0"), false},
		{Number(0), Text(""), false},
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
