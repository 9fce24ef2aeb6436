package sheet

import (
	"errors"
	"fmt"
)

// ErrorSentinel is the display token shown for a cell whose
// evaluation failed. The structured error stays on the cell.
const ErrorSentinel = "#ERROR"

var (
	// ErrUnknownFunction indicates a call to a name not in the registry.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrArity indicates a function call with the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")

	// ErrDivideByZero indicates division or modulo by zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrIndexOutOfRange indicates a string index past the end of the text.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotFound indicates FIND could not locate the needle.
	ErrNotFound = errors.New("substring not found")

	// ErrDomain indicates a numeric argument outside a function's domain.
	ErrDomain = errors.New("argument out of domain")

	// ErrDepthExceeded indicates formula nesting beyond the recursion limit.
	ErrDepthExceeded = errors.New("formula nesting too deep")

	// ErrFetch indicates a network failure inside GET.
	ErrFetch = errors.New("fetch failed")

	// ErrBareRange indicates a range used outside a function argument.
	ErrBareRange = errors.New("range not valid here")
)

// ParseError describes a lexical or grammatical violation in a
// formula. Pos is the byte offset of the offending input.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg)
}

// CircularRefError reports an edit that would create a dependency
// cycle. Addr is a cell on the cycle.
type CircularRefError struct {
	Addr Address
}

func (e *CircularRefError) Error() string {
	return fmt.Sprintf("circular reference through %s", e.Addr)
}

// RefError reports a cell or range reference outside the grid bounds.
type RefError struct {
	Addr Address
}

func (e *RefError) Error() string {
	return fmt.Sprintf("reference %s out of bounds", e.Addr)
}
