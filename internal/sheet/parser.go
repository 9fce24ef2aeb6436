package sheet

import "fmt"

// Parse turns a formula body (without the leading '=') into an AST.
// Any lexical or grammatical violation returns a *ParseError and no
// partial AST.
//
// Precedence, lowest first: equality, comparison, additive,
// concatenation, multiplicative, power (right-associative), unary.
// Logical operations are function calls, not operators.
func Parse(input string) (Expr, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, &ParseError{Pos: p.peek().pos, Msg: "unexpected trailing input"}
	}
	return e, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, &ParseError{Pos: t.pos, Msg: "expected " + what}
	}
	return p.next(), nil
}

func (p *parser) parseEquality() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.peek().kind {
		case tokEqual:
			op = OpEq
		case tokNotEqual:
			op = OpNe
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.peek().kind {
		case tokLess:
			op = OpLt
		case tokLessEq:
			op = OpLe
		case tokGreater:
			op = OpGt
		case tokGreaterEq:
			op = OpGe
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.peek().kind {
		case tokPlus:
			op = OpAdd
		case tokMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) parseConcat() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAmp {
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpConcat, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.peek().kind {
		case tokStar:
			op = OpMul
		case tokSlash:
			op = OpDiv
		case tokPercent:
			op = OpMod
		default:
			return left, nil
		}
		p.next()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPower {
		return base, nil
	}
	p.next()
	// Right-associative: 2**3**2 is 2**(3**2).
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpPow, L: base, R: exp}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNeg, X: x}, nil
	case tokPlus:
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpPos, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		return &NumberLit{Value: t.num}, nil
	case tokString:
		p.next()
		return &StringLit{Value: t.text}, nil
	case tokLParen:
		p.next()
		e, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case tokIdent:
		p.next()
		if p.peek().kind == tokLParen {
			return p.parseCallArgs(t)
		}
		addr, ok := ParseRef(t.text)
		if !ok {
			return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("invalid cell reference %q", t.text)}
		}
		if p.peek().kind == tokColon {
			p.next()
			end, err := p.expect(tokIdent, "cell reference after ':'")
			if err != nil {
				return nil, err
			}
			endAddr, ok := ParseRef(end.text)
			if !ok {
				return nil, &ParseError{Pos: end.pos, Msg: fmt.Sprintf("invalid cell reference %q", end.text)}
			}
			return &RangeRef{Start: addr, End: endAddr}, nil
		}
		return &CellRef{Addr: addr}, nil
	case tokEOF:
		return nil, &ParseError{Pos: t.pos, Msg: "unexpected end of formula"}
	}
	return nil, &ParseError{Pos: t.pos, Msg: "unexpected token"}
}

func (p *parser) parseCallArgs(name token) (Expr, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	call := &Call{Name: name.text}
	if p.peek().kind == tokRParen {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		switch p.peek().kind {
		case tokComma:
			p.next()
		case tokRParen:
			p.next()
			return call, nil
		default:
			return nil, &ParseError{Pos: p.peek().pos, Msg: "expected ',' or ')' in argument list"}
		}
	}
}
