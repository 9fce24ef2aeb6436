// Package sheet implements the formula engine: values, parsing,
// evaluation, dependency tracking, and the cell grid.
package sheet

import "fmt"

// Address identifies a cell by zero-based row and column.
type Address struct {
	Row int
	Col int
}

// Addr is shorthand for constructing an Address.
func Addr(row, col int) Address {
	return Address{Row: row, Col: col}
}

// String renders the address in A1 notation.
func (a Address) String() string {
	return fmt.Sprintf("%s%d", ColumnLabel(a.Col), a.Row+1)
}

// Less orders addresses by row, then column.
func (a Address) Less(b Address) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// ColumnLabel converts a zero-based column index to its letter form
// (0 -> A, 25 -> Z, 26 -> AA).
func ColumnLabel(col int) string {
	label := make([]byte, 0, 3)
	col++
	for col > 0 {
		col--
		label = append(label, byte('A'+col%26))
		col /= 26
	}
	for i, j := 0, len(label)-1; i < j; i, j = i+1, j-1 {
		label[i], label[j] = label[j], label[i]
	}
	return string(label)
}

// ParseRef parses an A1-style reference, case-insensitively.
// The second return is false if the string is not a valid reference.
func ParseRef(s string) (Address, bool) {
	if s == "" {
		return Address{}, false
	}
	i := 0
	col := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			col = col*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			col = col*26 + int(c-'a') + 1
		default:
			goto digits
		}
		i++
	}
digits:
	if i == 0 || i == len(s) {
		return Address{}, false
	}
	row := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Address{}, false
		}
		row = row*10 + int(c-'0')
	}
	if row < 1 {
		return Address{}, false
	}
	return Address{Row: row - 1, Col: col - 1}, true
}
