package sheet

import "strings"

// Format renders an expression back to formula source, without the
// leading '='.
func Format(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *NumberLit:
		b.WriteString(formatNumber(n.Value))
	case *StringLit:
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(n.Value, `"`, `""`))
		b.WriteByte('"')
	case *CellRef:
		b.WriteString(n.Addr.String())
	case *RangeRef:
		b.WriteString(n.Start.String())
		b.WriteByte(':')
		b.WriteString(n.End.String())
	case *Unary:
		b.WriteString(n.Op.String())
		writeExpr(b, n.X)
	case *Binary:
		writeExpr(b, n.L)
		b.WriteString(n.Op.String())
		writeExpr(b, n.R)
	case *Call:
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			writeExpr(b, arg)
		}
		b.WriteByte(')')
	}
}

// AdjustRefs returns a copy of the expression with every cell and
// range reference shifted by the given offsets. Rows and columns
// clamp at zero.
func AdjustRefs(e Expr, rowOff, colOff int) Expr {
	switch n := e.(type) {
	case *NumberLit:
		return &NumberLit{Value: n.Value}
	case *StringLit:
		return &StringLit{Value: n.Value}
	case *CellRef:
		return &CellRef{Addr: shiftAddr(n.Addr, rowOff, colOff)}
	case *RangeRef:
		return &RangeRef{
			Start: shiftAddr(n.Start, rowOff, colOff),
			End:   shiftAddr(n.End, rowOff, colOff),
		}
	case *Unary:
		return &Unary{Op: n.Op, X: AdjustRefs(n.X, rowOff, colOff)}
	case *Binary:
		return &Binary{
			Op: n.Op,
			L:  AdjustRefs(n.L, rowOff, colOff),
			R:  AdjustRefs(n.R, rowOff, colOff),
		}
	case *Call:
		args := make([]Expr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = AdjustRefs(arg, rowOff, colOff)
		}
		return &Call{Name: n.Name, Args: args}
	}
	return e
}

// AdjustFormula shifts all references in a formula string by the
// given offsets, for copying a formula to a new position. Non-formula
// input and unparsable formulas pass through unchanged.
func AdjustFormula(formula string, rowOff, colOff int) string {
	if !strings.HasPrefix(formula, "=") {
		return formula
	}
	ast, err := Parse(formula[1:])
	if err != nil {
		return formula
	}
	return "=" + Format(AdjustRefs(ast, rowOff, colOff))
}

func shiftAddr(a Address, rowOff, colOff int) Address {
	row := a.Row + rowOff
	if row < 0 {
		row = 0
	}
	col := a.Col + colOff
	if col < 0 {
		col = 0
	}
	return Address{Row: row, Col: col}
}
