package gridreport

import (
	"fmt"
	"strconv"
	"strings"
)

// Anchor is the 1-based (row, col) position of a region's top-left cell.
type Anchor struct {
	Row int
	Col int
}

func (a Anchor) String() string {
	name, err := ColumnName(a.Col)
	if err != nil {
		return fmt.Sprintf("(%d,%d)", a.Row, a.Col)
	}
	return fmt.Sprintf("%s%d", name, a.Row)
}

// ColumnNumber decodes a spreadsheet column letter code into its 1-based
// number: "A" -> 1, "Z" -> 26, "AA" -> 27. The code is case-insensitive.
func ColumnNumber(ref string) (int, error) {
	if ref == "" {
		return 0, &InvalidCoordinateError{Field: "col", Value: ref, Reason: "empty column reference"}
	}
	n := 0
	for _, r := range strings.ToUpper(ref) {
		if r < 'A' || r > 'Z' {
			return 0, &InvalidCoordinateError{Field: "col", Value: ref, Reason: "column letters must be A-Z"}
		}
		n = n*26 + int(r-'A') + 1
	}
	return n, nil
}

// ColumnName is the inverse of ColumnNumber: 1 -> "A", 27 -> "AA".
func ColumnName(n int) (string, error) {
	if n < 1 {
		return "", &InvalidCoordinateError{Field: "col", Value: n, Reason: "column number must be >= 1"}
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b), nil
}

// CellPosition decodes an "A1"-style cell reference into an Anchor.
func CellPosition(ref string) (Anchor, error) {
	i := 0
	for i < len(ref) && (ref[i] >= 'A' && ref[i] <= 'Z' || ref[i] >= 'a' && ref[i] <= 'z') {
		i++
	}
	if i == 0 || i == len(ref) {
		return Anchor{}, &InvalidCoordinateError{
			Field:  "cell",
			Value:  ref,
			Reason: "want a letter code followed by a row number",
		}
	}
	col, err := ColumnNumber(ref[:i])
	if err != nil {
		return Anchor{}, err
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return Anchor{}, &InvalidCoordinateError{Field: "cell", Value: ref, Reason: "row must be a positive integer"}
	}
	return Anchor{Row: row, Col: col}, nil
}

// ResolveAnchor converts loose column/row addressing into a canonical Anchor.
// col is a positive int or a column letter code. A non-nil shorthand must be
// a [col, row] pair and overrides the discrete col/row arguments.
func ResolveAnchor(col interface{}, row int, shorthand []int) (Anchor, error) {
	if shorthand != nil {
		if len(shorthand) != 2 {
			return Anchor{}, &InvalidCoordinateError{
				Field:  "anchor",
				Value:  shorthand,
				Reason: "shorthand must be a [col, row] pair",
			}
		}
		col, row = shorthand[0], shorthand[1]
	}

	var colNum int
	switch c := col.(type) {
	case int:
		colNum = c
	case string:
		n, err := ColumnNumber(c)
		if err != nil {
			return Anchor{}, err
		}
		colNum = n
	default:
		return Anchor{}, &InvalidCoordinateError{
			Field:  "col",
			Value:  col,
			Reason: fmt.Sprintf("column must be an int or letter code, got %T", col),
		}
	}

	if colNum < 1 {
		return Anchor{}, &InvalidCoordinateError{Field: "col", Value: colNum, Reason: "column must be >= 1"}
	}
	if row < 1 {
		return Anchor{}, &InvalidCoordinateError{Field: "row", Value: row, Reason: "row must be >= 1"}
	}
	return Anchor{Row: row, Col: colNum}, nil
}
