package sheet

import (
	"fmt"
	"math"
	"strings"
)

// MaxEvalDepth bounds AST recursion so pathological nesting reports
// an error instead of growing the stack without limit.
const MaxEvalDepth = 256

// Resolver returns the current cached value of a cell. It must never
// trigger parsing or re-evaluation; an unset cell resolves to Text("").
type Resolver func(Address) Value

// Evaluator walks a formula AST against a cell resolver and a
// function registry. It holds no mutable state and may be reused
// across evaluations.
type Evaluator struct {
	registry *Registry
	resolve  Resolver
	rows     int
	cols     int
}

// NewEvaluator builds an evaluator. rows and cols bound reference
// checking; pass 0,0 to disable bounds checks.
func NewEvaluator(registry *Registry, resolve Resolver, rows, cols int) *Evaluator {
	return &Evaluator{registry: registry, resolve: resolve, rows: rows, cols: cols}
}

// Eval evaluates an expression to a value.
func (ev *Evaluator) Eval(e Expr) (Value, error) {
	return ev.eval(e, 0)
}

func (ev *Evaluator) eval(e Expr, depth int) (Value, error) {
	if depth > MaxEvalDepth {
		return Value{}, ErrDepthExceeded
	}
	switch n := e.(type) {
	case *NumberLit:
		return Number(n.Value), nil
	case *StringLit:
		return Text(n.Value), nil
	case *CellRef:
		if err := ev.checkBounds(n.Addr); err != nil {
			return Value{}, err
		}
		return ev.resolve(n.Addr), nil
	case *RangeRef:
		return Value{}, ErrBareRange
	case *Unary:
		x, err := ev.eval(n.X, depth+1)
		if err != nil {
			return Value{}, err
		}
		if n.Op == OpNeg {
			return Number(-x.ToNumber()), nil
		}
		return Number(x.ToNumber()), nil
	case *Binary:
		return ev.evalBinary(n, depth)
	case *Call:
		return ev.evalCall(n, depth)
	}
	return Value{}, fmt.Errorf("unhandled expression node %T", e)
}

func (ev *Evaluator) evalBinary(n *Binary, depth int) (Value, error) {
	left, err := ev.eval(n.L, depth+1)
	if err != nil {
		return Value{}, err
	}
	right, err := ev.eval(n.R, depth+1)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case OpAdd:
		return Number(left.ToNumber() + right.ToNumber()), nil
	case OpSub:
		return Number(left.ToNumber() - right.ToNumber()), nil
	case OpMul:
		return Number(left.ToNumber() * right.ToNumber()), nil
	case OpDiv:
		d := right.ToNumber()
		if d == 0 {
			return Value{}, ErrDivideByZero
		}
		return Number(left.ToNumber() / d), nil
	case OpMod:
		d := right.ToNumber()
		if d == 0 {
			return Value{}, fmt.Errorf("%w: modulo", ErrDivideByZero)
		}
		return Number(math.Mod(left.ToNumber(), d)), nil
	case OpPow:
		return Number(math.Pow(left.ToNumber(), right.ToNumber())), nil
	case OpConcat:
		return Text(left.ToText() + right.ToText()), nil
	case OpEq:
		return boolValue(left.Equal(right)), nil
	case OpNe:
		return boolValue(!left.Equal(right)), nil
	case OpLt:
		return boolValue(left.ToNumber() < right.ToNumber()), nil
	case OpLe:
		return boolValue(left.ToNumber() <= right.ToNumber()), nil
	case OpGt:
		return boolValue(left.ToNumber() > right.ToNumber()), nil
	case OpGe:
		return boolValue(left.ToNumber() >= right.ToNumber()), nil
	}
	return Value{}, fmt.Errorf("unhandled operator %v", n.Op)
}

func (ev *Evaluator) evalCall(n *Call, depth int) (Value, error) {
	// IF is a special form: only the taken branch is evaluated, so a
	// side-effecting call like GET in the untaken branch never runs.
	if strings.EqualFold(n.Name, "IF") {
		return ev.evalIf(n, depth)
	}
	fn, ok := ev.registry.Lookup(n.Name)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownFunction, n.Name)
	}
	args, err := ev.evalArgs(n.Args, depth)
	if err != nil {
		return Value{}, err
	}
	return fn(args)
}

func (ev *Evaluator) evalIf(n *Call, depth int) (Value, error) {
	if len(n.Args) != 3 {
		return Value{}, fmt.Errorf("%w: IF requires exactly 3 arguments", ErrArity)
	}
	cond, err := ev.eval(n.Args[0], depth+1)
	if err != nil {
		return Value{}, err
	}
	if cond.Truthy() {
		return ev.eval(n.Args[1], depth+1)
	}
	return ev.eval(n.Args[2], depth+1)
}

// evalArgs evaluates call arguments, flattening range references into
// their member cell values in row-major order.
func (ev *Evaluator) evalArgs(args []Expr, depth int) ([]Value, error) {
	out := make([]Value, 0, len(args))
	for _, arg := range args {
		if r, ok := arg.(*RangeRef); ok {
			for _, addr := range expandRange(r) {
				if err := ev.checkBounds(addr); err != nil {
					return nil, err
				}
				out = append(out, ev.resolve(addr))
			}
			continue
		}
		v, err := ev.eval(arg, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) checkBounds(a Address) error {
	if ev.rows == 0 && ev.cols == 0 {
		return nil
	}
	if a.Row < 0 || a.Row >= ev.rows || a.Col < 0 || a.Col >= ev.cols {
		return &RefError{Addr: a}
	}
	return nil
}
