package gridreport

import (
	"fmt"
	"time"
)

// CellType identifies the variant stored in a Cell.
type CellType int

const (
	CellEmpty CellType = iota
	CellText
	CellNumber
	CellBool
	CellDate
	CellDateTime
)

// Cell is a single typed value in a normalized grid. Cells are value types
// and are never mutated after construction.
type Cell struct {
	Type  CellType
	Value interface{}
}

func TextCell(s string) Cell    { return Cell{Type: CellText, Value: s} }
func NumberCell(f float64) Cell { return Cell{Type: CellNumber, Value: f} }
func BoolCell(b bool) Cell      { return Cell{Type: CellBool, Value: b} }
func EmptyCell() Cell           { return Cell{Type: CellEmpty} }

// DateCell stores a calendar date (clock components ignored on write).
func DateCell(t time.Time) Cell { return Cell{Type: CellDate, Value: t} }

// DateTimeCell stores a full timestamp.
func DateTimeCell(t time.Time) Cell { return Cell{Type: CellDateTime, Value: t} }

// CellOf coerces an arbitrary Go value into the matching cell variant.
// A time.Time at midnight becomes a date, any other time a datetime; nil and
// nil pointers become empty cells; everything unrecognized is rendered as text.
func CellOf(v interface{}) Cell {
	switch x := v.(type) {
	case nil:
		return EmptyCell()
	case Cell:
		return x
	case string:
		return TextCell(x)
	case bool:
		return BoolCell(x)
	case int:
		return NumberCell(float64(x))
	case int8:
		return NumberCell(float64(x))
	case int16:
		return NumberCell(float64(x))
	case int32:
		return NumberCell(float64(x))
	case int64:
		return NumberCell(float64(x))
	case uint:
		return NumberCell(float64(x))
	case uint8:
		return NumberCell(float64(x))
	case uint16:
		return NumberCell(float64(x))
	case uint32:
		return NumberCell(float64(x))
	case uint64:
		return NumberCell(float64(x))
	case float32:
		return NumberCell(float64(x))
	case float64:
		return NumberCell(x)
	case time.Time:
		if x.IsZero() {
			return EmptyCell()
		}
		h, m, s := x.Clock()
		if h == 0 && m == 0 && s == 0 && x.Nanosecond() == 0 {
			return DateCell(x)
		}
		return DateTimeCell(x)
	case *string:
		if x == nil {
			return EmptyCell()
		}
		return TextCell(*x)
	case *float64:
		if x == nil {
			return EmptyCell()
		}
		return NumberCell(*x)
	case *int:
		if x == nil {
			return EmptyCell()
		}
		return NumberCell(float64(*x))
	case *bool:
		if x == nil {
			return EmptyCell()
		}
		return BoolCell(*x)
	case *time.Time:
		if x == nil {
			return EmptyCell()
		}
		return CellOf(*x)
	case fmt.Stringer:
		return TextCell(x.String())
	default:
		return TextCell(fmt.Sprintf("%v", x))
	}
}

// Grid is a uniform rectangular table: an optional header row plus
// equal-length data rows. Header length equals the row length when present.
type Grid struct {
	Header []string
	Rows   [][]Cell
}

// RowCount returns the number of data rows (header excluded).
func (g *Grid) RowCount() int { return len(g.Rows) }

// ColCount returns the width of the grid.
func (g *Grid) ColCount() int {
	if g.Header != nil {
		return len(g.Header)
	}
	if len(g.Rows) > 0 {
		return len(g.Rows[0])
	}
	return 0
}
