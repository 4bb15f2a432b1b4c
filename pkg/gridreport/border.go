package gridreport

import "strings"

// BorderMode selects which cell edges within a region receive a drawn line.
type BorderMode int

const (
	BorderNone BorderMode = iota
	BorderSurrounding
	BorderRows
	BorderColumns
	BorderAll
)

var borderModeNames = map[BorderMode]string{
	BorderNone:        "none",
	BorderSurrounding: "surrounding",
	BorderRows:        "rows",
	BorderColumns:     "columns",
	BorderAll:         "all",
}

func (m BorderMode) String() string {
	if s, ok := borderModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseBorderMode parses a border mode name case-insensitively. "n" is an
// accepted alias for "none".
func ParseBorderMode(s string) (BorderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "n":
		return BorderNone, nil
	case "surrounding":
		return BorderSurrounding, nil
	case "rows":
		return BorderRows, nil
	case "columns":
		return BorderColumns, nil
	case "all":
		return BorderAll, nil
	default:
		return BorderNone, &InvalidBorderModeError{Value: s}
	}
}

// EdgeSet is a bitmask of cell edges.
type EdgeSet uint8

const (
	EdgeTop EdgeSet = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e EdgeSet) Has(edge EdgeSet) bool { return e&edge != 0 }

// Count returns the number of edges in the set.
func (e EdgeSet) Count() int {
	n := 0
	for _, edge := range []EdgeSet{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight} {
		if e.Has(edge) {
			n++
		}
	}
	return n
}

// BorderInstruction asks the backend to draw the given edges of one cell.
// Coordinates are absolute worksheet positions, 1-based.
type BorderInstruction struct {
	Row   int
	Col   int
	Edges EdgeSet
}

// DecorateBorders computes the edge instructions for a rowCount x colCount
// region anchored at anchor. When the region sits beneath a written header
// row the caller passes the offset anchor of the first data row; the header
// itself is never decorated here. Internal boundaries are emitted exactly
// once (as the bottom or right edge of the earlier cell).
func DecorateBorders(anchor Anchor, rowCount, colCount int, mode BorderMode) ([]BorderInstruction, error) {
	if _, ok := borderModeNames[mode]; !ok {
		return nil, &InvalidBorderModeError{Value: mode.String()}
	}
	if mode == BorderNone || rowCount <= 0 || colCount <= 0 {
		return nil, nil
	}

	var out []BorderInstruction
	for r := 0; r < rowCount; r++ {
		for c := 0; c < colCount; c++ {
			var edges EdgeSet

			onTop := r == 0
			onBottom := r == rowCount-1
			onLeft := c == 0
			onRight := c == colCount-1

			switch mode {
			case BorderSurrounding:
				if onTop {
					edges |= EdgeTop
				}
				if onBottom {
					edges |= EdgeBottom
				}
				if onLeft {
					edges |= EdgeLeft
				}
				if onRight {
					edges |= EdgeRight
				}
			case BorderRows:
				if onTop {
					edges |= EdgeTop
				}
				edges |= EdgeBottom
				if onLeft {
					edges |= EdgeLeft
				}
				if onRight {
					edges |= EdgeRight
				}
			case BorderColumns:
				if onLeft {
					edges |= EdgeLeft
				}
				edges |= EdgeRight
				if onTop {
					edges |= EdgeTop
				}
				if onBottom {
					edges |= EdgeBottom
				}
			case BorderAll:
				edges |= EdgeBottom | EdgeRight
				if onTop {
					edges |= EdgeTop
				}
				if onLeft {
					edges |= EdgeLeft
				}
			}

			if edges != 0 {
				out = append(out, BorderInstruction{
					Row:   anchor.Row + r,
					Col:   anchor.Col + c,
					Edges: edges,
				})
			}
		}
	}
	return out, nil
}
