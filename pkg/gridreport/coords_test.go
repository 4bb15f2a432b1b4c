package gridreport

import (
	"errors"
	"testing"
)

func TestColumnNumber(t *testing.T) {
	tests := []struct {
		ref  string
		want int
	}{
		{"A", 1},
		{"Z", 26},
		{"AA", 27},
		{"AZ", 52},
		{"BA", 53},
		{"ZZ", 702},
		{"AAA", 703},
		{"a", 1}, // case-insensitive
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ColumnNumber(tt.ref)
			if err != nil {
				t.Fatalf("ColumnNumber(%q) failed: %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("ColumnNumber(%q) = %d, want %d", tt.ref, got, tt.want)
			}
		})
	}
}

func TestColumnNumberInvalid(t *testing.T) {
	for _, ref := range []string{"", "A1", "Ä", "-", "A B"} {
		if _, err := ColumnNumber(ref); err == nil {
			t.Errorf("ColumnNumber(%q) succeeded, want error", ref)
		}
	}
}

func TestColumnRoundTrip(t *testing.T) {
	// Decoding is a bijection onto positive integers.
	for n := 1; n <= 1000; n++ {
		name, err := ColumnName(n)
		if err != nil {
			t.Fatalf("ColumnName(%d) failed: %v", n, err)
		}
		back, err := ColumnNumber(name)
		if err != nil {
			t.Fatalf("ColumnNumber(%q) failed: %v", name, err)
		}
		if back != n {
			t.Fatalf("round trip %d -> %q -> %d", n, name, back)
		}
	}
}

func TestCellPosition(t *testing.T) {
	tests := []struct {
		ref     string
		wantRow int
		wantCol int
	}{
		{"A1", 1, 1},
		{"b2", 2, 2},
		{"AA10", 10, 27},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			a, err := CellPosition(tt.ref)
			if err != nil {
				t.Fatalf("CellPosition(%q) failed: %v", tt.ref, err)
			}
			if a.Row != tt.wantRow || a.Col != tt.wantCol {
				t.Errorf("got %+v, want row %d col %d", a, tt.wantRow, tt.wantCol)
			}
		})
	}

	for _, ref := range []string{"", "A", "1", "1A", "A0", "A-1", "A1B"} {
		if _, err := CellPosition(ref); err == nil {
			t.Errorf("CellPosition(%q) succeeded, want error", ref)
		} else {
			var coordErr *InvalidCoordinateError
			if !errors.As(err, &coordErr) {
				t.Errorf("CellPosition(%q) error type = %T", ref, err)
			}
		}
	}
}

func TestResolveAnchor(t *testing.T) {
	t.Run("numeric column", func(t *testing.T) {
		a, err := ResolveAnchor(3, 2, nil)
		if err != nil {
			t.Fatalf("ResolveAnchor failed: %v", err)
		}
		if a.Row != 2 || a.Col != 3 {
			t.Errorf("got %+v, want row 2 col 3", a)
		}
	})

	t.Run("letter column", func(t *testing.T) {
		a, err := ResolveAnchor("AA", 1, nil)
		if err != nil {
			t.Fatalf("ResolveAnchor failed: %v", err)
		}
		if a.Col != 27 {
			t.Errorf("col = %d, want 27", a.Col)
		}
	})

	t.Run("shorthand overrides", func(t *testing.T) {
		a, err := ResolveAnchor(1, 1, []int{5, 9})
		if err != nil {
			t.Fatalf("ResolveAnchor failed: %v", err)
		}
		if a.Row != 9 || a.Col != 5 {
			t.Errorf("got %+v, want row 9 col 5", a)
		}
	})

	t.Run("errors", func(t *testing.T) {
		cases := []struct {
			name      string
			col       interface{}
			row       int
			shorthand []int
		}{
			{"row below one", 1, 0, nil},
			{"col below one", 0, 1, nil},
			{"bad letter code", "A1", 1, nil},
			{"short shorthand", 1, 1, []int{3}},
			{"long shorthand", 1, 1, []int{1, 2, 3}},
			{"shorthand col below one", 1, 1, []int{0, 1}},
			{"unsupported col type", 1.5, 1, nil},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ResolveAnchor(tc.col, tc.row, tc.shorthand)
				if err == nil {
					t.Fatal("expected error")
				}
				var coordErr *InvalidCoordinateError
				if !errors.As(err, &coordErr) {
					t.Errorf("expected InvalidCoordinateError, got %T", err)
				}
			})
		}
	})
}
