package gridreport

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestNormalizeDataset(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"id", "val"},
		Rows: [][]interface{}{
			{1, 10.5},
			{2, 20.1},
		},
	}

	grid, cols, rows, err := Normalize(ds, true, false)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !cols || rows {
		t.Errorf("effective flags = (%v, %v), want (true, false)", cols, rows)
	}
	if !reflect.DeepEqual(grid.Header, []string{"id", "val"}) {
		t.Errorf("header = %v", grid.Header)
	}
	want := [][]Cell{
		{NumberCell(1), NumberCell(10.5)},
		{NumberCell(2), NumberCell(20.1)},
	}
	if !reflect.DeepEqual(grid.Rows, want) {
		t.Errorf("rows = %v, want %v", grid.Rows, want)
	}
}

func TestNormalizeDatasetCellVariants(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	ds := &Dataset{
		Columns: []string{"name", "active", "count", "when", "at", "note"},
		Rows: [][]interface{}{
			{"alice", true, 3, date, stamp, nil},
		},
	}

	grid, _, _, err := Normalize(ds, true, false)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	types := []CellType{CellText, CellBool, CellNumber, CellDate, CellDateTime, CellEmpty}
	for i, want := range types {
		if grid.Rows[0][i].Type != want {
			t.Errorf("cell %d type = %v, want %v", i, grid.Rows[0][i].Type, want)
		}
	}
}

func TestNormalizeDatasetRowNames(t *testing.T) {
	ds := &Dataset{
		Columns:   []string{"x"},
		Rows:      [][]interface{}{{1.0}, {2.0}},
		RowLabels: []string{"first", "second"},
	}

	grid, _, rows, err := Normalize(ds, true, true)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !rows {
		t.Error("expected effective rowNames true for dataset")
	}
	if !reflect.DeepEqual(grid.Header, []string{"", "x"}) {
		t.Errorf("header = %v, want unlabeled leading column", grid.Header)
	}
	if grid.Rows[0][0] != TextCell("first") || grid.Rows[1][0] != TextCell("second") {
		t.Errorf("row labels not injected: %v", grid.Rows)
	}
}

func TestNormalizeDatasetSyntheticRowLabels(t *testing.T) {
	ds := &Dataset{Columns: []string{"x"}, Rows: [][]interface{}{{1.0}, {2.0}}}
	grid, _, _, err := Normalize(ds, false, true)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if grid.Header != nil {
		t.Errorf("header should be absent, got %v", grid.Header)
	}
	if grid.Rows[0][0] != TextCell("1") || grid.Rows[1][0] != TextCell("2") {
		t.Errorf("synthetic labels wrong: %v", grid.Rows)
	}
}

func TestNormalizeRaggedDataset(t *testing.T) {
	ds := &Dataset{Columns: []string{"a", "b"}, Rows: [][]interface{}{{1}}}
	if _, _, _, err := Normalize(ds, true, false); err == nil {
		t.Error("expected error for ragged dataset")
	}
}

func TestNormalizeLinearModelFit(t *testing.T) {
	fit := &LinearModelFit{
		Coefficients: []Coefficient{
			{Label: "(Intercept)", Estimate: 1.5, StdError: 0.2, Stat: 7.5, PValue: 0.001},
			{Label: "x", Estimate: 0.8, StdError: 0.1, Stat: 8.0, PValue: 0.0005},
		},
	}

	grid, cols, rows, err := Normalize(fit, true, true)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if rows {
		t.Error("model fits must force effective rowNames false")
	}
	if !cols {
		t.Error("expected effective colNames true")
	}
	wantHeader := []string{"", "Estimate", "Std. Error", "t value", "Pr(>|t|)"}
	if !reflect.DeepEqual(grid.Header, wantHeader) {
		t.Errorf("header = %v, want %v", grid.Header, wantHeader)
	}
	if grid.Rows[0][0] != TextCell("(Intercept)") {
		t.Errorf("leading label column missing: %v", grid.Rows[0])
	}
}

func TestNormalizeGLMFit(t *testing.T) {
	fit := &GLMFit{
		Coefficients: []Coefficient{{Label: "x", Estimate: 0.3, StdError: 0.05, Stat: 6.0, PValue: 0.01}},
	}
	grid, _, rows, err := Normalize(fit, true, true)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if rows {
		t.Error("expected effective rowNames false")
	}
	if grid.Header[3] != "z value" || grid.Header[4] != "Pr(>|z|)" {
		t.Errorf("glm stat headers wrong: %v", grid.Header)
	}
}

func TestNormalizeAnova(t *testing.T) {
	nan := math.NaN()
	tbl := &AnovaTable{
		Rows: []AnovaRow{
			{Label: "x", Df: 1, SumSq: 10, MeanSq: 10, FValue: 25, PValue: 0.001},
			{Label: "Residuals", Df: 8, SumSq: 3.2, MeanSq: 0.4, FValue: nan, PValue: nan},
		},
	}

	grid, _, rows, err := Normalize(tbl, true, true)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if rows {
		t.Error("expected effective rowNames false")
	}
	if grid.Rows[0][0] != TextCell("x") {
		t.Errorf("term labels not in leading column: %v", grid.Rows[0])
	}
	// Residual row leaves F and P blank rather than writing NaN.
	if grid.Rows[1][4].Type != CellEmpty || grid.Rows[1][5].Type != CellEmpty {
		t.Errorf("NaN cells should be empty, got %v", grid.Rows[1])
	}
}

func TestNormalizeContingencyTable(t *testing.T) {
	// Contingency tables flow through the generic coercion: counts only,
	// both name flags forced off.
	ct := &ContingencyTable{
		RowLabels: []string{"a", "b"},
		ColLabels: []string{"x", "y"},
		Counts:    [][]float64{{3, 4}, {5, 6}},
	}

	grid, cols, rows, err := Normalize(ct, true, true)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cols || rows {
		t.Errorf("effective flags = (%v, %v), want both false", cols, rows)
	}
	if grid.Header != nil {
		t.Errorf("header should be absent, got %v", grid.Header)
	}
	want := [][]Cell{
		{NumberCell(3), NumberCell(4)},
		{NumberCell(5), NumberCell(6)},
	}
	if !reflect.DeepEqual(grid.Rows, want) {
		t.Errorf("rows = %v, want %v", grid.Rows, want)
	}
}

func TestNormalizeFallback(t *testing.T) {
	t.Run("2d slice", func(t *testing.T) {
		grid, cols, rows, err := Normalize([][]int{{1, 2}, {3, 4}}, true, true)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if cols || rows {
			t.Error("fallback must force both name flags false")
		}
		if grid.RowCount() != 2 || grid.ColCount() != 2 {
			t.Errorf("shape = %dx%d", grid.RowCount(), grid.ColCount())
		}
	})

	t.Run("vector becomes single column", func(t *testing.T) {
		grid, _, _, err := Normalize([]string{"a", "b", "c"}, false, false)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if grid.RowCount() != 3 || grid.ColCount() != 1 {
			t.Errorf("shape = %dx%d, want 3x1", grid.RowCount(), grid.ColCount())
		}
	})

	t.Run("scalar becomes 1x1", func(t *testing.T) {
		grid, _, _, err := Normalize(42, false, false)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if grid.RowCount() != 1 || grid.ColCount() != 1 {
			t.Errorf("shape = %dx%d, want 1x1", grid.RowCount(), grid.ColCount())
		}
		if grid.Rows[0][0] != NumberCell(42) {
			t.Errorf("cell = %v", grid.Rows[0][0])
		}
	})

	t.Run("ragged rows padded", func(t *testing.T) {
		grid, _, _, err := Normalize([][]int{{1, 2, 3}, {4}}, false, false)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if grid.ColCount() != 3 {
			t.Errorf("width = %d, want 3", grid.ColCount())
		}
		if grid.Rows[1][1].Type != CellEmpty {
			t.Errorf("short row not padded: %v", grid.Rows[1])
		}
	})
}

func TestNormalizeUnsupportedShape(t *testing.T) {
	cube := [][][]float64{{{1}}}
	_, _, _, err := Normalize(cube, false, false)
	var shapeErr *UnsupportedShapeError
	if !errors.As(err, &shapeErr) {
		t.Errorf("expected UnsupportedShapeError, got %v", err)
	}
}

func TestFromRecords(t *testing.T) {
	t.Run("structs", func(t *testing.T) {
		type row struct {
			ID  int     `json:"id"`
			Val float64 `json:"val"`
		}

		ds, err := FromRecords([]row{{ID: 1, Val: 10.5}, {ID: 2, Val: 20.1}})
		if err != nil {
			t.Fatalf("FromRecords failed: %v", err)
		}
		if !reflect.DeepEqual(ds.Columns, []string{"id", "val"}) {
			t.Errorf("columns = %v", ds.Columns)
		}
		if len(ds.Rows) != 2 || ds.Rows[0][0] != 1 {
			t.Errorf("rows = %v", ds.Rows)
		}
	})

	t.Run("maps union sorted", func(t *testing.T) {
		ds, err := FromRecords([]map[string]interface{}{
			{"b": 2, "a": 1},
			{"a": 3, "c": 4},
		})
		if err != nil {
			t.Fatalf("FromRecords failed: %v", err)
		}
		if !reflect.DeepEqual(ds.Columns, []string{"a", "b", "c"}) {
			t.Errorf("columns = %v", ds.Columns)
		}
		if ds.Rows[1][1] != nil {
			t.Errorf("missing key should be nil, got %v", ds.Rows[1][1])
		}
	})

	t.Run("not a slice", func(t *testing.T) {
		if _, err := FromRecords(42); err == nil {
			t.Error("expected error")
		}
	})
}
