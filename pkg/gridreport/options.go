package gridreport

// Sheet pairs one input object with its destination worksheet name. An empty
// Name is synthesized during validation.
type Sheet struct {
	Name string
	Data interface{}
}

// Defaults are the process-wide fallbacks resolved once at the entry point
// and threaded through the configuration. The core never reads the
// environment itself; internal/config builds a Defaults from env vars.
type Defaults struct {
	BorderColour   string
	BorderStyle    string
	DateFormat     string
	DateTimeFormat string
	Overwrite      bool
}

// StandardDefaults returns the built-in fallbacks used when the caller does
// not thread environment-resolved defaults.
func StandardDefaults() Defaults {
	return Defaults{
		BorderColour:   "black",
		BorderStyle:    "thin",
		DateFormat:     "yyyy-mm-dd",
		DateTimeFormat: "yyyy-mm-dd hh:mm:ss",
		Overwrite:      true,
	}
}

// ExportConfig holds every per-call knob. Vector-valued fields broadcast
// over the target list during validation; scalar fields apply to the whole
// export.
type ExportConfig struct {
	SheetNames []string

	StartRows []int
	StartCols []interface{} // positive int or column letter code
	Anchors   [][]int       // optional [col,row] shorthand, overrides StartRows/StartCols

	Gridlines []bool
	ColNames  []bool
	RowNames  []bool

	AsTable    []bool
	WithFilter []bool
	TableNames []string

	BorderModes   []string
	BorderColours []string
	BorderStyles  []string

	HeaderStyles []*CellStyle

	FreezeHeader []bool
	AutoWidths   []bool
	Protections  []*SheetProtection

	Overwrite      bool
	MaxColumnWidth int
	DateFormat     string
	DateTimeFormat string
}

// NewExportConfig builds a config seeded from defaults.
func NewExportConfig(defs Defaults) *ExportConfig {
	return &ExportConfig{
		StartRows:     []int{1},
		StartCols:     []interface{}{1},
		Gridlines:     []bool{true},
		ColNames:      []bool{true},
		RowNames:      []bool{false},
		AsTable:       []bool{false},
		WithFilter:    []bool{false},
		BorderModes:   []string{"none"},
		BorderColours: []string{defs.BorderColour},
		BorderStyles:  []string{defs.BorderStyle},
		HeaderStyles:  []*CellStyle{nil},
		FreezeHeader:  []bool{false},
		AutoWidths:    []bool{false},
		Protections:   []*SheetProtection{nil},

		Overwrite:      defs.Overwrite,
		MaxColumnWidth: 50,
		DateFormat:     defs.DateFormat,
		DateTimeFormat: defs.DateTimeFormat,
	}
}

// ExportOption mutates the export configuration.
type ExportOption func(*ExportConfig) error

// WithDefaults reseeds the configuration from externally resolved defaults
// (for example internal/config's env-backed set). Apply it before any other
// option; it resets the whole configuration.
func WithDefaults(d Defaults) ExportOption {
	return func(cfg *ExportConfig) error {
		*cfg = *NewExportConfig(d)
		return nil
	}
}

// WithSheetNames overrides the names carried on the Sheet values.
func WithSheetNames(names ...string) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.SheetNames = names
		return nil
	}
}

// WithStartRow sets the anchor row per target.
func WithStartRow(rows ...int) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.StartRows = rows
		return nil
	}
}

// WithStartCol sets the anchor column per target; each value is a positive
// int or a column letter code such as "C" or "AA".
func WithStartCol(cols ...interface{}) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.StartCols = cols
		return nil
	}
}

// WithAnchors supplies [col,row] shorthand pairs that override the discrete
// start row/col knobs for the matching targets.
func WithAnchors(pairs ...[]int) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.Anchors = pairs
		return nil
	}
}

// WithGridlines controls worksheet gridline visibility per target.
func WithGridlines(visible ...bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.Gridlines = visible
		return nil
	}
}

// WithColNames controls whether a header row is written per target.
func WithColNames(v ...bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.ColNames = v
		return nil
	}
}

// WithRowNames controls whether a leading row-label column is written.
func WithRowNames(v ...bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.RowNames = v
		return nil
	}
}

// AsTable renders targets through the backend's table feature instead of the
// plain grid path.
func AsTable(v ...bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.AsTable = v
		return nil
	}
}

// WithFilter enables an auto filter on the header row.
func WithFilter(v ...bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.WithFilter = v
		return nil
	}
}

// WithTableNames supplies explicit table names for AsTable targets. Empty
// entries get workbook-unique generated names.
func WithTableNames(names ...string) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.TableNames = names
		return nil
	}
}

// WithBorders sets the border mode per target: none ("n"), surrounding,
// rows, columns or all, case-insensitive.
func WithBorders(modes ...string) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.BorderModes = modes
		return nil
	}
}

// WithBorderColour sets the border colour per target (name or hex code).
func WithBorderColour(colours ...string) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.BorderColours = colours
		return nil
	}
}

// WithBorderStyle sets the border line style per target.
func WithBorderStyle(styles ...string) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.BorderStyles = styles
		return nil
	}
}

// WithHeaderStyle sets the header row style per target.
func WithHeaderStyle(styles ...*CellStyle) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.HeaderStyles = styles
		return nil
	}
}

// WithFreezeHeader freezes the pane beneath the header row per target.
func WithFreezeHeader(v ...bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.FreezeHeader = v
		return nil
	}
}

// WithProtection locks worksheets against edits per target; nil entries
// leave the matching worksheet unprotected.
func WithProtection(p ...*SheetProtection) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.Protections = p
		return nil
	}
}

// WithAutoWidth sizes each written column to its longest rendered value,
// capped at the configured maximum width.
func WithAutoWidth(v ...bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.AutoWidths = v
		return nil
	}
}

// WithMaxColumnWidth caps auto-fitted column widths at w characters.
func WithMaxColumnWidth(w int) ExportOption {
	return func(cfg *ExportConfig) error {
		if w < 1 {
			return &InvalidParameterError{Knob: "maxColumnWidth", Value: w}
		}
		cfg.MaxColumnWidth = w
		return nil
	}
}

// WithOverwrite controls whether Persist may replace an existing file.
func WithOverwrite(overwrite bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.Overwrite = overwrite
		return nil
	}
}

// WithDateFormats overrides the number formats applied to date and datetime
// cells.
func WithDateFormats(dateFormat, dateTimeFormat string) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.DateFormat = dateFormat
		cfg.DateTimeFormat = dateTimeFormat
		return nil
	}
}
