package gridreport

// Span is an inclusive 1-based range of rows or columns.
type Span struct {
	First int
	Last  int
}

// BorderSpec is a resolved border request: mode plus drawing attributes.
type BorderSpec struct {
	Mode   BorderMode
	Colour string // RRGGBB
	Style  string // line style name
}

// TableSpec asks the backend to register a region as a worksheet table.
type TableSpec struct {
	Name       string
	Anchor     Anchor
	RowCount   int // data rows plus header
	ColCount   int
	WithFilter bool
}

// Backend is the document-encoding layer the orchestrator drives. It owns
// all accumulating workbook state; the core only issues calls. A Backend
// instance must not be shared between concurrent exports.
type Backend interface {
	// CreateSheet adds a worksheet with the requested gridline visibility.
	CreateSheet(name string, gridlines bool) error

	// WriteGrid places the grid (header first when present) with its
	// top-left cell at anchor.
	WriteGrid(sheet string, grid *Grid, anchor Anchor) error

	// ApplyStyle applies a style over the row/column spans.
	ApplyStyle(sheet string, style *CellStyle, rows, cols Span) error

	// DrawBorders draws the given cell-edge instructions.
	DrawBorders(sheet string, spec BorderSpec, instructions []BorderInstruction) error

	// AddTable registers a region as a table; the table feature supplies
	// its own header styling and filtering.
	AddTable(sheet string, table TableSpec) error

	// AutoFilter enables a filter over the header span.
	AutoFilter(sheet string, headerRow int, cols Span) error

	// FitColumns sizes the grid's columns to their longest rendered value,
	// capped at maxWidth characters.
	FitColumns(sheet string, grid *Grid, anchor Anchor, maxWidth int) error

	// FreezeBelow freezes panes so rows above the given row stay visible.
	FreezeBelow(sheet string, row int) error

	// ProtectSheet locks the worksheet against edits, leaving the
	// protection's unlocked ranges editable.
	ProtectSheet(sheet string, p *SheetProtection) error

	// Persist writes the document to path. With overwrite false an
	// existing file is an error.
	Persist(path string, overwrite bool) error
}
