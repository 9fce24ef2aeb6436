package sheet

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPower
	tokPercent
	tokAmp
	tokLess
	tokLessEq
	tokGreater
	tokGreaterEq
	tokEqual
	tokNotEqual
	tokLParen
	tokRParen
	tokComma
	tokColon
)

type token struct {
	kind tokenKind
	pos  int
	text string
	num  float64
}

// lex tokenizes a formula body (without the leading '=').
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(input) && input[i] >= '0' && input[i] <= '9' {
				i++
			}
			if i < len(input) && input[i] == '.' {
				i++
				for i < len(input) && input[i] >= '0' && input[i] <= '9' {
					i++
				}
			}
			n, err := strconv.ParseFloat(input[start:i], 64)
			if err != nil {
				return nil, &ParseError{Pos: start, Msg: fmt.Sprintf("invalid number %q", input[start:i])}
			}
			toks = append(toks, token{kind: tokNumber, pos: start, num: n})
		case c == '"':
			start := i
			i++
			var s []byte
			for {
				if i >= len(input) {
					return nil, &ParseError{Pos: start, Msg: "unterminated string literal"}
				}
				if input[i] == '"' {
					// A doubled quote decodes to one literal quote.
					if i+1 < len(input) && input[i+1] == '"' {
						s = append(s, '"')
						i += 2
						continue
					}
					i++
					break
				}
				s = append(s, input[i])
				i++
			}
			toks = append(toks, token{kind: tokString, pos: start, text: string(s)})
		case isLetter(c):
			start := i
			for i < len(input) && (isLetter(input[i]) || isDigit(input[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, pos: start, text: input[start:i]})
		case c == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, pos: i})
			i++
		case c == '*':
			if i+1 < len(input) && input[i+1] == '*' {
				toks = append(toks, token{kind: tokPower, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, pos: i})
				i++
			}
		case c == '^':
			toks = append(toks, token{kind: tokPower, pos: i})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, pos: i})
			i++
		case c == '%':
			toks = append(toks, token{kind: tokPercent, pos: i})
			i++
		case c == '&':
			toks = append(toks, token{kind: tokAmp, pos: i})
			i++
		case c == '<':
			switch {
			case i+1 < len(input) && input[i+1] == '=':
				toks = append(toks, token{kind: tokLessEq, pos: i})
				i += 2
			case i+1 < len(input) && input[i+1] == '>':
				toks = append(toks, token{kind: tokNotEqual, pos: i})
				i += 2
			default:
				toks = append(toks, token{kind: tokLess, pos: i})
				i++
			}
		case c == '>':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{kind: tokGreaterEq, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokGreater, pos: i})
				i++
			}
		case c == '=':
			toks = append(toks, token{kind: tokEqual, pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, pos: i})
			i++
		case c == ':':
			toks = append(toks, token{kind: tokColon, pos: i})
			i++
		default:
			return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
