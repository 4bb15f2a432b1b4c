package gridreport

import "strings"

// SheetProtection locks a worksheet against edits. Ranges listed in
// UnlockedRanges stay editable under protection; everything else is locked,
// which is the spreadsheet default.
type SheetProtection struct {
	Password string

	// Cell ranges in "A2:B10" notation that remain editable.
	UnlockedRanges []string

	AllowFormatCells   bool
	AllowFormatColumns bool
	AllowFormatRows    bool
	AllowInsertRows    bool
	AllowDeleteRows    bool
	AllowSort          bool
	AllowFilter        bool
}

// NewSheetProtection returns a protection that locks everything while still
// allowing filtering.
func NewSheetProtection() *SheetProtection {
	return &SheetProtection{AllowFilter: true}
}

func validRangeRef(s string) bool {
	start, end, ok := strings.Cut(s, ":")
	if !ok {
		return false
	}
	if _, err := CellPosition(start); err != nil {
		return false
	}
	if _, err := CellPosition(end); err != nil {
		return false
	}
	return true
}
