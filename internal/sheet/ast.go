package sheet

// Expr is a parsed formula expression node.
type Expr interface {
	exprNode()
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// StringLit is a double-quoted string literal, already unescaped.
type StringLit struct {
	Value string
}

// CellRef references a single cell.
type CellRef struct {
	Addr Address
}

// RangeRef references a rectangle of cells. The corners are stored as
// written; min/max per axis is normalized at expansion time.
type RangeRef struct {
	Start Address
	End   Address
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	// OpNeg is unary minus.
	OpNeg UnaryOp = iota
	// OpPos is unary plus.
	OpPos
)

// Unary applies a prefix operator to an operand.
type Unary struct {
	Op UnaryOp
	X  Expr
}

// BinaryOp is an infix operator.
type BinaryOp int

const (
	// OpAdd is addition.
	OpAdd BinaryOp = iota
	// OpSub is subtraction.
	OpSub
	// OpMul is multiplication.
	OpMul
	// OpDiv is division.
	OpDiv
	// OpPow is exponentiation.
	OpPow
	// OpMod is modulo.
	OpMod
	// OpConcat is string concatenation.
	OpConcat
	// OpEq is equality.
	OpEq
	// OpNe is inequality.
	OpNe
	// OpLt is less-than.
	OpLt
	// OpLe is less-or-equal.
	OpLe
	// OpGt is greater-than.
	OpGt
	// OpGe is greater-or-equal.
	OpGe
)

// Binary applies an infix operator to two operands.
type Binary struct {
	Op BinaryOp
	L  Expr
	R  Expr
}

// Call invokes a registry function. Name is kept as written; lookup
// is case-insensitive.
type Call struct {
	Name string
	Args []Expr
}

func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*CellRef) exprNode()   {}
func (*RangeRef) exprNode()  {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	case OpMod:
		return "%"
	case OpConcat:
		return "&"
	case OpEq:
		return "="
	case OpNe:
		return "<>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	}
	return "?"
}

func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "+"
}

// ExtractRefs returns every cell address the expression reads, with
// ranges expanded to their member addresses. Duplicates are removed.
func ExtractRefs(e Expr) []Address {
	seen := make(map[Address]struct{})
	var refs []Address
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *CellRef:
			if _, ok := seen[n.Addr]; !ok {
				seen[n.Addr] = struct{}{}
				refs = append(refs, n.Addr)
			}
		case *RangeRef:
			for _, a := range expandRange(n) {
				if _, ok := seen[a]; !ok {
					seen[a] = struct{}{}
					refs = append(refs, a)
				}
			}
		case *Unary:
			walk(n.X)
		case *Binary:
			walk(n.L)
			walk(n.R)
		case *Call:
			for _, arg := range n.Args {
				walk(arg)
			}
		}
	}
	walk(e)
	return refs
}

// expandRange lists the addresses in a range rectangle in row-major
// order, normalizing corner orientation.
func expandRange(r *RangeRef) []Address {
	r0, r1 := r.Start.Row, r.End.Row
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	c0, c1 := r.Start.Col, r.End.Col
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	addrs := make([]Address, 0, (r1-r0+1)*(c1-c0+1))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			addrs = append(addrs, Address{Row: row, Col: col})
		}
	}
	return addrs
}
