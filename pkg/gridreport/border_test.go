package gridreport

import (
	"errors"
	"testing"
)

func edgeTotal(instructions []BorderInstruction) int {
	total := 0
	for _, inst := range instructions {
		total += inst.Edges.Count()
	}
	return total
}

func findInstruction(instructions []BorderInstruction, row, col int) (BorderInstruction, bool) {
	for _, inst := range instructions {
		if inst.Row == row && inst.Col == col {
			return inst, true
		}
	}
	return BorderInstruction{}, false
}

func TestParseBorderMode(t *testing.T) {
	tests := []struct {
		in   string
		want BorderMode
	}{
		{"none", BorderNone},
		{"n", BorderNone},
		{"N", BorderNone},
		{"Surrounding", BorderSurrounding},
		{"ROWS", BorderRows},
		{"columns", BorderColumns},
		{"All", BorderAll},
		{" all ", BorderAll},
	}
	for _, tt := range tests {
		got, err := ParseBorderMode(tt.in)
		if err != nil {
			t.Fatalf("ParseBorderMode(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBorderMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	_, err := ParseBorderMode("diagonal")
	var modeErr *InvalidBorderModeError
	if !errors.As(err, &modeErr) {
		t.Errorf("expected InvalidBorderModeError, got %v", err)
	}
}

func TestDecorateNone(t *testing.T) {
	got, err := DecorateBorders(Anchor{Row: 1, Col: 1}, 3, 3, BorderNone)
	if err != nil {
		t.Fatalf("DecorateBorders failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no instructions, got %d", len(got))
	}
}

func TestDecorateSurrounding(t *testing.T) {
	// 3x4 region: the bounding outline is 14 edges over 10 perimeter cells.
	got, err := DecorateBorders(Anchor{Row: 1, Col: 1}, 3, 4, BorderSurrounding)
	if err != nil {
		t.Fatalf("DecorateBorders failed: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("expected 10 perimeter cells, got %d", len(got))
	}
	if edgeTotal(got) != 14 {
		t.Errorf("expected 14 edges, got %d", edgeTotal(got))
	}

	// Corners carry two edges.
	corner, ok := findInstruction(got, 1, 1)
	if !ok || corner.Edges != EdgeTop|EdgeLeft {
		t.Errorf("top-left corner edges = %v", corner.Edges)
	}
	corner, ok = findInstruction(got, 3, 4)
	if !ok || corner.Edges != EdgeBottom|EdgeRight {
		t.Errorf("bottom-right corner edges = %v", corner.Edges)
	}

	// No internal edges: the middle cell of the middle row has none.
	if _, ok := findInstruction(got, 2, 2); ok {
		t.Error("internal cell should carry no edges")
	}
}

func TestDecorateRows(t *testing.T) {
	// 3 rows x 2 cols: horizontal boundaries above row 1, between each pair
	// of adjacent rows, and below row 3; verticals only on the outer columns.
	got, err := DecorateBorders(Anchor{Row: 1, Col: 1}, 3, 2, BorderRows)
	if err != nil {
		t.Fatalf("DecorateBorders failed: %v", err)
	}

	for col := 1; col <= 2; col++ {
		inst, ok := findInstruction(got, 1, col)
		if !ok || !inst.Edges.Has(EdgeTop) {
			t.Errorf("row 1 col %d missing top edge", col)
		}
		for row := 1; row <= 3; row++ {
			inst, ok := findInstruction(got, row, col)
			if !ok || !inst.Edges.Has(EdgeBottom) {
				t.Errorf("row %d col %d missing bottom edge", row, col)
			}
		}
	}
	for row := 1; row <= 3; row++ {
		left, ok := findInstruction(got, row, 1)
		if !ok || !left.Edges.Has(EdgeLeft) {
			t.Errorf("row %d missing left edge", row)
		}
		right, ok := findInstruction(got, row, 2)
		if !ok || !right.Edges.Has(EdgeRight) {
			t.Errorf("row %d missing right edge", row)
		}
		// No internal vertical edges.
		if left.Edges.Has(EdgeRight) || right.Edges.Has(EdgeLeft) {
			t.Errorf("row %d has internal vertical edge", row)
		}
	}
}

func TestDecorateColumns(t *testing.T) {
	got, err := DecorateBorders(Anchor{Row: 1, Col: 1}, 2, 3, BorderColumns)
	if err != nil {
		t.Fatalf("DecorateBorders failed: %v", err)
	}

	for row := 1; row <= 2; row++ {
		for col := 1; col <= 3; col++ {
			inst, ok := findInstruction(got, row, col)
			if !ok || !inst.Edges.Has(EdgeRight) {
				t.Errorf("row %d col %d missing right edge", row, col)
			}
		}
	}
	top, _ := findInstruction(got, 1, 2)
	if !top.Edges.Has(EdgeTop) {
		t.Error("top boundary missing on interior column")
	}
	if top.Edges.Has(EdgeBottom) {
		t.Error("interior column top row should not carry a bottom edge")
	}
}

func TestDecorateAll(t *testing.T) {
	// Every edge drawn exactly once: for an R x C region that is
	// R*(C+1) vertical plus C*(R+1) horizontal edges.
	got, err := DecorateBorders(Anchor{Row: 2, Col: 3}, 3, 4, BorderAll)
	if err != nil {
		t.Fatalf("DecorateBorders failed: %v", err)
	}
	wantEdges := 3*(4+1) + 4*(3+1)
	if edgeTotal(got) != wantEdges {
		t.Errorf("expected %d edges, got %d", wantEdges, edgeTotal(got))
	}
	if len(got) != 12 {
		t.Errorf("expected 12 instructions, got %d", len(got))
	}
}

func TestDecorateAnchorOffset(t *testing.T) {
	got, err := DecorateBorders(Anchor{Row: 2, Col: 1}, 2, 2, BorderSurrounding)
	if err != nil {
		t.Fatalf("DecorateBorders failed: %v", err)
	}
	for _, inst := range got {
		if inst.Row < 2 || inst.Row > 3 || inst.Col < 1 || inst.Col > 2 {
			t.Errorf("instruction outside region: %+v", inst)
		}
	}
	if edgeTotal(got) != 8 {
		t.Errorf("2x2 outline should have 8 edges, got %d", edgeTotal(got))
	}
}

func TestDecorateEmptyRegion(t *testing.T) {
	got, err := DecorateBorders(Anchor{Row: 1, Col: 1}, 0, 4, BorderAll)
	if err != nil {
		t.Fatalf("DecorateBorders failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no instructions for empty region, got %d", len(got))
	}
}

func TestDecorateInvalidMode(t *testing.T) {
	_, err := DecorateBorders(Anchor{Row: 1, Col: 1}, 2, 2, BorderMode(99))
	var modeErr *InvalidBorderModeError
	if !errors.As(err, &modeErr) {
		t.Errorf("expected InvalidBorderModeError, got %v", err)
	}
}
