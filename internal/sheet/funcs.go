package sheet

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Func is a registry function: a pure mapping from argument values to
// a result value. Range arguments arrive pre-expanded.
type Func func(args []Value) (Value, error)

// Registry maps function names to implementations. Lookup is
// case-insensitive. The registry is built once and never mutated
// afterwards; evaluators share it freely.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry builds the standard function table. The HTTP client is
// used by GET; pass nil to use http.DefaultClient.
func NewRegistry(client *http.Client) *Registry {
	if client == nil {
		client = http.DefaultClient
	}
	r := &Registry{funcs: make(map[string]Func)}
	r.register("SUM", fnSum)
	r.register("AVERAGE", fnAverage)
	r.register("MIN", fnMin)
	r.register("MAX", fnMax)
	r.register("ABS", fnAbs)
	r.register("SQRT", fnSqrt)
	r.register("ROUND", fnRound)
	r.register("LEN", fnLen)
	r.register("UPPER", fnUpper)
	r.register("LOWER", fnLower)
	r.register("TRIM", fnTrim)
	r.register("LEFT", fnLeft)
	r.register("RIGHT", fnRight)
	r.register("MID", fnMid)
	r.register("FIND", fnFind)
	r.register("CONCAT", fnConcat)
	r.register("IF", fnIf)
	r.register("AND", fnAnd)
	r.register("OR", fnOr)
	r.register("NOT", fnNot)
	r.register("GET", makeGet(client))
	return r
}

func (r *Registry) register(name string, fn Func) {
	r.funcs[strings.ToUpper(name)] = fn
}

// Lookup finds a function by name, case-insensitively.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[strings.ToUpper(name)]
	return fn, ok
}

// Names lists the registered function names in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}

func fnSum(args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, fmt.Errorf("%w: SUM requires at least 1 argument", ErrArity)
	}
	total := 0.0
	for _, v := range args {
		total += v.ToNumber()
	}
	return Number(total), nil
}

func fnAverage(args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, fmt.Errorf("%w: AVERAGE requires at least 1 argument", ErrArity)
	}
	total := 0.0
	for _, v := range args {
		total += v.ToNumber()
	}
	return Number(total / float64(len(args))), nil
}

func fnMin(args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, fmt.Errorf("%w: MIN requires at least 1 argument", ErrArity)
	}
	min := args[0].ToNumber()
	for _, v := range args[1:] {
		min = math.Min(min, v.ToNumber())
	}
	return Number(min), nil
}

func fnMax(args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, fmt.Errorf("%w: MAX requires at least 1 argument", ErrArity)
	}
	max := args[0].ToNumber()
	for _, v := range args[1:] {
		max = math.Max(max, v.ToNumber())
	}
	return Number(max), nil
}

func fnAbs(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("%w: ABS requires exactly 1 argument", ErrArity)
	}
	return Number(math.Abs(args[0].ToNumber())), nil
}

func fnSqrt(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("%w: SQRT requires exactly 1 argument", ErrArity)
	}
	n := args[0].ToNumber()
	if n < 0 {
		return Value{}, fmt.Errorf("%w: SQRT of negative number", ErrDomain)
	}
	return Number(math.Sqrt(n)), nil
}

func fnRound(args []Value) (Value, error) {
	switch len(args) {
	case 1:
		return Number(math.Round(args[0].ToNumber())), nil
	case 2:
		mult := math.Pow(10, float64(int(args[1].ToNumber())))
		return Number(math.Round(args[0].ToNumber()*mult) / mult), nil
	}
	return Value{}, fmt.Errorf("%w: ROUND requires 1 or 2 arguments", ErrArity)
}

func fnLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("%w: LEN requires exactly 1 argument", ErrArity)
	}
	return Number(float64(len([]rune(args[0].ToText())))), nil
}

func fnUpper(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("%w: UPPER requires exactly 1 argument", ErrArity)
	}
	return Text(cases.Upper(language.Und).String(args[0].ToText())), nil
}

func fnLower(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("%w: LOWER requires exactly 1 argument", ErrArity)
	}
	return Text(cases.Lower(language.Und).String(args[0].ToText())), nil
}

func fnTrim(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("%w: TRIM requires exactly 1 argument", ErrArity)
	}
	return Text(strings.TrimSpace(args[0].ToText())), nil
}

func fnLeft(args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, fmt.Errorf("%w: LEFT requires exactly 2 arguments", ErrArity)
	}
	runes := []rune(args[0].ToText())
	count := int(args[1].ToNumber())
	if count < 0 {
		return Value{}, fmt.Errorf("%w: LEFT count is negative", ErrIndexOutOfRange)
	}
	if count > len(runes) {
		count = len(runes)
	}
	return Text(string(runes[:count])), nil
}

func fnRight(args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, fmt.Errorf("%w: RIGHT requires exactly 2 arguments", ErrArity)
	}
	runes := []rune(args[0].ToText())
	count := int(args[1].ToNumber())
	if count < 0 {
		return Value{}, fmt.Errorf("%w: RIGHT count is negative", ErrIndexOutOfRange)
	}
	if count > len(runes) {
		count = len(runes)
	}
	return Text(string(runes[len(runes)-count:])), nil
}

// fnMid extracts a substring by 0-based start and length.
func fnMid(args []Value) (Value, error) {
	if len(args) != 3 {
		return Value{}, fmt.Errorf("%w: MID requires exactly 3 arguments", ErrArity)
	}
	runes := []rune(args[0].ToText())
	start := int(args[1].ToNumber())
	length := int(args[2].ToNumber())
	if start < 0 || start > len(runes) {
		return Value{}, fmt.Errorf("%w: MID start %d", ErrIndexOutOfRange, start)
	}
	if length < 0 {
		return Value{}, fmt.Errorf("%w: MID length is negative", ErrIndexOutOfRange)
	}
	end := start + length
	if end > len(runes) {
		end = len(runes)
	}
	return Text(string(runes[start:end])), nil
}

// fnFind returns the 0-based position of needle in haystack, with an
// optional 0-based start offset as the third argument.
func fnFind(args []Value) (Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return Value{}, fmt.Errorf("%w: FIND requires 2 or 3 arguments", ErrArity)
	}
	needle := args[0].ToText()
	haystack := []rune(args[1].ToText())
	start := 0
	if len(args) == 3 {
		start = int(args[2].ToNumber())
		if start < 0 || start > len(haystack) {
			return Value{}, fmt.Errorf("%w: FIND start %d", ErrIndexOutOfRange, start)
		}
	}
	idx := strings.Index(string(haystack[start:]), needle)
	if idx < 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrNotFound, needle)
	}
	pos := start + len([]rune(string(haystack[start:])[:idx]))
	return Number(float64(pos)), nil
}

func fnConcat(args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, fmt.Errorf("%w: CONCAT requires at least 1 argument", ErrArity)
	}
	var b strings.Builder
	for _, v := range args {
		b.WriteString(v.ToText())
	}
	return Text(b.String()), nil
}

// fnIf is the strict fallback used when IF is called through the
// registry directly. In formula evaluation IF is a special form that
// evaluates only the selected branch; see Evaluator.
func fnIf(args []Value) (Value, error) {
	if len(args) != 3 {
		return Value{}, fmt.Errorf("%w: IF requires exactly 3 arguments", ErrArity)
	}
	if args[0].Truthy() {
		return args[1], nil
	}
	return args[2], nil
}

func fnAnd(args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, fmt.Errorf("%w: AND requires at least 1 argument", ErrArity)
	}
	for _, v := range args {
		if !v.Truthy() {
			return boolValue(false), nil
		}
	}
	return boolValue(true), nil
}

func fnOr(args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, fmt.Errorf("%w: OR requires at least 1 argument", ErrArity)
	}
	for _, v := range args {
		if v.Truthy() {
			return boolValue(true), nil
		}
	}
	return boolValue(false), nil
}

func fnNot(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("%w: NOT requires exactly 1 argument", ErrArity)
	}
	return boolValue(!args[0].Truthy()), nil
}

// makeGet builds the GET function over the given HTTP client. The
// fetch is synchronous; a hanging endpoint stalls the recalculation
// pass, bounded only by the client's timeout.
func makeGet(client *http.Client) Func {
	return func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("%w: GET requires exactly 1 argument", ErrArity)
		}
		url := args[0].ToText()
		resp, err := client.Get(url)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return Value{}, fmt.Errorf("%w: status %s", ErrFetch, resp.Status)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Value{}, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
		}
		return Text(string(body)), nil
	}
}
