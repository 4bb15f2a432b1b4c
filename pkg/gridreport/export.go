package gridreport

import (
	"context"
	"fmt"
	"io"

	"github.com/locvowork/gridreport/internal/logger"
)

// SheetTarget is one fully validated (input, worksheet, parameters) unit.
// Targets are built by BuildTargets, consumed once by Export, then discarded.
type SheetTarget struct {
	Name      string
	Grid      *Grid
	HasHeader bool
	Anchor    Anchor

	Gridlines    bool
	HeaderStyle  *CellStyle
	Border       *BorderSpec
	FreezeHeader bool
	AutoWidth    bool
	MaxColWidth  int
	Protection   *SheetProtection

	AsTable    bool
	TableName  string
	WithFilter bool
}

// BuildTargets runs the complete validation phase: it broadcasts every knob
// over the sheet list, validates knob domains, resolves anchors, parses
// border specs, synthesizes worksheet names and normalizes every input.
// No backend call happens before this returns; any failure here aborts the
// whole batch with nothing created.
func BuildTargets(sheets []Sheet, cfg *ExportConfig) ([]SheetTarget, error) {
	n := len(sheets)
	if n == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	requested := cfg.SheetNames
	if requested == nil {
		requested = make([]string, n)
		for i, s := range sheets {
			requested[i] = s.Name
		}
	}
	names, err := SheetNames(requested, n)
	if err != nil {
		return nil, err
	}

	for _, r := range cfg.StartRows {
		if r < 1 {
			return nil, &InvalidParameterError{Knob: "startRow", Value: r}
		}
	}
	for _, c := range cfg.StartCols {
		if ci, ok := c.(int); ok && ci < 1 {
			return nil, &InvalidParameterError{Knob: "startCol", Value: ci}
		}
	}

	startRows, err := Broadcast(cfg.StartRows, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "startRow", Value: cfg.StartRows}
	}
	startCols, err := Broadcast(cfg.StartCols, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "startCol", Value: cfg.StartCols}
	}
	gridlines, err := Broadcast(cfg.Gridlines, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "gridlines", Value: cfg.Gridlines}
	}
	colNames, err := Broadcast(cfg.ColNames, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "colNames", Value: cfg.ColNames}
	}
	rowNames, err := Broadcast(cfg.RowNames, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "rowNames", Value: cfg.RowNames}
	}
	asTable, err := Broadcast(cfg.AsTable, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "asTable", Value: cfg.AsTable}
	}
	withFilter, err := Broadcast(cfg.WithFilter, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "withFilter", Value: cfg.WithFilter}
	}
	borderModes, err := Broadcast(cfg.BorderModes, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "borderMode", Value: cfg.BorderModes}
	}
	borderColours, err := Broadcast(cfg.BorderColours, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "borderColour", Value: cfg.BorderColours}
	}
	borderStyles, err := Broadcast(cfg.BorderStyles, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "borderStyle", Value: cfg.BorderStyles}
	}
	headerStyles, err := Broadcast(cfg.HeaderStyles, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "headerStyle", Value: cfg.HeaderStyles}
	}
	freezeHeader, err := Broadcast(cfg.FreezeHeader, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "freezeHeader", Value: cfg.FreezeHeader}
	}
	autoWidths, err := Broadcast(cfg.AutoWidths, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "autoWidth", Value: cfg.AutoWidths}
	}
	protections, err := Broadcast(cfg.Protections, n)
	if err != nil {
		return nil, &InvalidParameterError{Knob: "protection", Value: cfg.Protections}
	}

	var tableNames []string
	if len(cfg.TableNames) > 0 {
		tableNames, err = Broadcast(cfg.TableNames, n)
		if err != nil {
			return nil, &InvalidParameterError{Knob: "tableName", Value: cfg.TableNames}
		}
	} else {
		tableNames = make([]string, n)
	}

	targets := make([]SheetTarget, n)
	for i, sheet := range sheets {
		var shorthand []int
		if i < len(cfg.Anchors) {
			shorthand = cfg.Anchors[i]
		}
		anchor, err := ResolveAnchor(startCols[i], startRows[i], shorthand)
		if err != nil {
			return nil, err
		}

		mode, err := ParseBorderMode(borderModes[i])
		if err != nil {
			return nil, err
		}

		// Border knobs validate regardless of mode; the resolved values are
		// only carried when a border is actually drawn.
		colour, err := NormalizeColour(borderColours[i])
		if err != nil {
			return nil, &InvalidParameterError{Knob: "borderColour", Value: borderColours[i]}
		}
		if !ValidLineStyle(borderStyles[i]) {
			return nil, &InvalidParameterError{Knob: "borderStyle", Value: borderStyles[i]}
		}
		var border *BorderSpec
		if mode != BorderNone {
			border = &BorderSpec{Mode: mode, Colour: colour, Style: borderStyles[i]}
		}

		if p := protections[i]; p != nil {
			for _, rng := range p.UnlockedRanges {
				if !validRangeRef(rng) {
					return nil, &InvalidParameterError{Knob: "protection", Value: rng}
				}
			}
		}

		grid, effCols, _, err := Normalize(sheet.Data, colNames[i], rowNames[i])
		if err != nil {
			return nil, err
		}

		targets[i] = SheetTarget{
			Name:         names[i],
			Grid:         grid,
			HasHeader:    effCols && grid.Header != nil,
			Anchor:       anchor,
			Gridlines:    gridlines[i],
			HeaderStyle:  headerStyles[i],
			Border:       border,
			FreezeHeader: freezeHeader[i],
			AutoWidth:    autoWidths[i],
			MaxColWidth:  cfg.MaxColumnWidth,
			Protection:   protections[i],
			AsTable:      asTable[i],
			TableName:    tableNames[i],
			WithFilter:   withFilter[i],
		}
	}
	return targets, nil
}

// Export drives the backend over the target list, strictly in order.
// Worksheet creation order is document order and is never reordered or
// parallelized. The caller persists afterwards; Export itself issues no
// Persist call.
func Export(ctx context.Context, targets []SheetTarget, b Backend) error {
	tableSeq := 0

	for _, t := range targets {
		logger.DebugLog(ctx, "exporting sheet %q (%d rows x %d cols at %s)",
			t.Name, t.Grid.RowCount(), t.Grid.ColCount(), t.Anchor)

		if err := b.CreateSheet(t.Name, t.Gridlines); err != nil {
			return &BackendError{Op: "create-sheet", Err: err}
		}
		if err := b.WriteGrid(t.Name, t.Grid, t.Anchor); err != nil {
			return &BackendError{Op: "write-grid", Err: err}
		}
		if t.AutoWidth {
			if err := b.FitColumns(t.Name, t.Grid, t.Anchor, t.MaxColWidth); err != nil {
				return &BackendError{Op: "fit-columns", Err: err}
			}
		}

		cols := Span{First: t.Anchor.Col, Last: t.Anchor.Col + t.Grid.ColCount() - 1}
		dataAnchor := t.Anchor
		if t.HasHeader {
			dataAnchor.Row++
		}

		if t.AsTable {
			name := t.TableName
			if name == "" {
				tableSeq++
				name = fmt.Sprintf("Table%d", tableSeq)
			}
			rowCount := t.Grid.RowCount()
			if t.HasHeader {
				rowCount++
			}
			spec := TableSpec{
				Name:       name,
				Anchor:     t.Anchor,
				RowCount:   rowCount,
				ColCount:   t.Grid.ColCount(),
				WithFilter: t.WithFilter,
			}
			if err := b.AddTable(t.Name, spec); err != nil {
				return &BackendError{Op: "add-table", Err: err}
			}
		} else {
			if t.HasHeader && t.HeaderStyle != nil {
				headerRow := Span{First: t.Anchor.Row, Last: t.Anchor.Row}
				if err := b.ApplyStyle(t.Name, t.HeaderStyle, headerRow, cols); err != nil {
					return &BackendError{Op: "apply-style", Err: err}
				}
			}
			if t.HasHeader && t.WithFilter {
				if err := b.AutoFilter(t.Name, t.Anchor.Row, cols); err != nil {
					return &BackendError{Op: "auto-filter", Err: err}
				}
			}
			if t.Border != nil && t.Border.Mode != BorderNone {
				instructions, err := DecorateBorders(dataAnchor, t.Grid.RowCount(), t.Grid.ColCount(), t.Border.Mode)
				if err != nil {
					return err
				}
				if len(instructions) > 0 {
					if err := b.DrawBorders(t.Name, *t.Border, instructions); err != nil {
						return &BackendError{Op: "draw-border", Err: err}
					}
				}
			}
		}

		if t.FreezeHeader && t.HasHeader {
			if err := b.FreezeBelow(t.Name, dataAnchor.Row); err != nil {
				return &BackendError{Op: "freeze-panes", Err: err}
			}
		}

		if t.Protection != nil {
			if err := b.ProtectSheet(t.Name, t.Protection); err != nil {
				return &BackendError{Op: "protect-sheet", Err: err}
			}
		}
	}
	return nil
}

// WriteWorkbook fans a list of inputs out to worksheets of a single xlsx
// document and persists it, all-or-nothing: every target is validated before
// the first worksheet is created, and Persist runs exactly once at the end.
func WriteWorkbook(ctx context.Context, path string, sheets []Sheet, opts ...ExportOption) error {
	cfg, targets, err := prepare(sheets, opts)
	if err != nil {
		return err
	}

	b := NewExcelBackend(cfg.DateFormat, cfg.DateTimeFormat)
	defer b.Close()

	if err := Export(ctx, targets, b); err != nil {
		return err
	}
	if err := b.Persist(path, cfg.Overwrite); err != nil {
		return &BackendError{Op: "persist", Err: err}
	}
	logger.InfoLog(ctx, "workbook written to %s (%d sheets)", path, len(targets))
	return nil
}

// WriteWorkbookTo runs the same pipeline but streams the document to w
// instead of persisting to a path.
func WriteWorkbookTo(ctx context.Context, w io.Writer, sheets []Sheet, opts ...ExportOption) error {
	cfg, targets, err := prepare(sheets, opts)
	if err != nil {
		return err
	}

	b := NewExcelBackend(cfg.DateFormat, cfg.DateTimeFormat)
	defer b.Close()

	if err := Export(ctx, targets, b); err != nil {
		return err
	}
	if err := b.WriteTo(w); err != nil {
		return &BackendError{Op: "persist", Err: err}
	}
	return nil
}

func prepare(sheets []Sheet, opts []ExportOption) (*ExportConfig, []SheetTarget, error) {
	cfg := NewExportConfig(StandardDefaults())
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, nil, err
		}
	}
	targets, err := BuildTargets(sheets, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, targets, nil
}
