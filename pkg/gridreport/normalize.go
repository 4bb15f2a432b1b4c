package gridreport

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Normalize turns an input object into a uniform Grid. Dispatch is a closed
// type switch with one arm per supported kind plus a reflective fallback.
// The returned booleans are the effective colNames/rowNames flags: model-fit
// and anova inputs fold their row labels into an ordinary leading column and
// force rowNames off; the fallback has no natural labels and forces both off.
func Normalize(input interface{}, colNames, rowNames bool) (*Grid, bool, bool, error) {
	var (
		grid *Grid
		err  error
	)
	effCols, effRows := colNames, rowNames

	switch v := input.(type) {
	case *Dataset:
		grid, err = normalizeDataset(v)
	case Dataset:
		grid, err = normalizeDataset(&v)
	case *LinearModelFit:
		grid = normalizeCoefficients(v.Coefficients, "t value", "Pr(>|t|)")
		effRows = false
	case *GLMFit:
		grid = normalizeCoefficients(v.Coefficients, "z value", "Pr(>|z|)")
		effRows = false
	case *AnovaTable:
		grid = normalizeAnova(v)
		effRows = false
	case *ContingencyTable:
		// Intentionally the generic coercion path: counts only, labels
		// dropped, both name flags forced off.
		grid, err = coerceGrid(v.Counts)
		effCols, effRows = false, false
	default:
		grid, err = coerceGrid(input)
		effCols, effRows = false, false
	}
	if err != nil {
		return nil, false, false, err
	}

	if effRows {
		injectRowLabels(grid, input)
	}
	if !effCols {
		grid.Header = nil
	}
	return grid, effCols, effRows, nil
}

func normalizeDataset(d *Dataset) (*Grid, error) {
	width := len(d.Columns)
	rows := make([][]Cell, len(d.Rows))
	for i, src := range d.Rows {
		if len(src) != width {
			return nil, fmt.Errorf("dataset row %d has %d values, want %d", i+1, len(src), width)
		}
		row := make([]Cell, width)
		for j, v := range src {
			row[j] = CellOf(v)
		}
		rows[i] = row
	}
	header := make([]string, width)
	copy(header, d.Columns)
	return &Grid{Header: header, Rows: rows}, nil
}

func normalizeCoefficients(coefs []Coefficient, statHeader, pHeader string) *Grid {
	rows := make([][]Cell, len(coefs))
	for i, c := range coefs {
		rows[i] = []Cell{
			TextCell(c.Label),
			NumberCell(c.Estimate),
			NumberCell(c.StdError),
			nanCell(c.Stat),
			nanCell(c.PValue),
		}
	}
	return &Grid{
		Header: []string{"", "Estimate", "Std. Error", statHeader, pHeader},
		Rows:   rows,
	}
}

func normalizeAnova(t *AnovaTable) *Grid {
	rows := make([][]Cell, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = []Cell{
			TextCell(r.Label),
			nanCell(r.Df),
			nanCell(r.SumSq),
			nanCell(r.MeanSq),
			nanCell(r.FValue),
			nanCell(r.PValue),
		}
	}
	return &Grid{
		Header: []string{"", "Df", "Sum Sq", "Mean Sq", "F value", "Pr(>F)"},
		Rows:   rows,
	}
}

// nanCell maps NaN to an empty cell so residual rows leave their F/P columns
// blank instead of writing the string "NaN".
func nanCell(f float64) Cell {
	if math.IsNaN(f) {
		return EmptyCell()
	}
	return NumberCell(f)
}

// coerceGrid is the fallback arm: a best-effort reflective flattening of
// scalars, vectors and 2D slices. Anything of rank > 2 is rejected.
func coerceGrid(input interface{}) (*Grid, error) {
	val := reflect.ValueOf(input)
	for val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}

	if !val.IsValid() {
		return &Grid{}, nil
	}

	switch sliceRank(val.Type()) {
	case 0:
		return &Grid{Rows: [][]Cell{{CellOf(val.Interface())}}}, nil
	case 1:
		rows := make([][]Cell, val.Len())
		for i := 0; i < val.Len(); i++ {
			rows[i] = []Cell{CellOf(val.Index(i).Interface())}
		}
		return &Grid{Rows: rows}, nil
	case 2:
		width := 0
		for i := 0; i < val.Len(); i++ {
			if l := val.Index(i).Len(); l > width {
				width = l
			}
		}
		rows := make([][]Cell, val.Len())
		for i := 0; i < val.Len(); i++ {
			src := val.Index(i)
			row := make([]Cell, width)
			for j := range row {
				if j < src.Len() {
					row[j] = CellOf(src.Index(j).Interface())
				} else {
					row[j] = EmptyCell()
				}
			}
			rows[i] = row
		}
		return &Grid{Rows: rows}, nil
	default:
		return nil, &UnsupportedShapeError{Kind: val.Type().String()}
	}
}

// sliceRank counts nested slice/array levels, treating strings and byte
// slices as scalars.
func sliceRank(t reflect.Type) int {
	rank := 0
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		if t.Elem().Kind() == reflect.Uint8 {
			break
		}
		rank++
		t = t.Elem()
	}
	return rank
}

// injectRowLabels prepends an unlabeled leading column of row labels. This
// runs after kind-specific normalization and before the header is finalized.
func injectRowLabels(g *Grid, input interface{}) {
	var labels []string
	if d, ok := input.(*Dataset); ok {
		labels = d.RowLabels
	} else if d, ok := input.(Dataset); ok {
		labels = d.RowLabels
	}

	for i := range g.Rows {
		label := strconv.Itoa(i + 1)
		if i < len(labels) {
			label = labels[i]
		}
		g.Rows[i] = append([]Cell{TextCell(label)}, g.Rows[i]...)
	}
	if g.Header != nil {
		g.Header = append([]string{""}, g.Header...)
	}
}
