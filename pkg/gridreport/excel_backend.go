package gridreport

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// excelize border style indexes by line style name.
var borderStyleIndex = map[string]int{
	"thin":             1,
	"medium":           2,
	"dashed":           3,
	"dotted":           4,
	"thick":            5,
	"double":           6,
	"hair":             7,
	"mediumDashed":     8,
	"dashDot":          9,
	"mediumDashDot":    10,
	"dashDotDot":       11,
	"mediumDashDotDot": 12,
	"slantDashDot":     13,
}

// ExcelBackend implements Backend on top of excelize. It owns one workbook;
// do not share an instance between concurrent exports.
type ExcelBackend struct {
	file           *excelize.File
	dateFormat     string
	dateTimeFormat string

	sheetCount int
	styleCache map[string]int
	// number formats recorded per cell so border styling can re-apply them
	cellFormats map[string]map[string]string
}

// NewExcelBackend creates a backend around a fresh workbook. The format
// strings are the number formats applied to date and datetime cells.
func NewExcelBackend(dateFormat, dateTimeFormat string) *ExcelBackend {
	return &ExcelBackend{
		file:           excelize.NewFile(),
		dateFormat:     dateFormat,
		dateTimeFormat: dateTimeFormat,
		styleCache:     make(map[string]int),
		cellFormats:    make(map[string]map[string]string),
	}
}

// File exposes the underlying workbook for callers that need excelize
// features the Backend interface does not cover.
func (b *ExcelBackend) File() *excelize.File { return b.file }

// Close releases the workbook resources.
func (b *ExcelBackend) Close() error { return b.file.Close() }

func (b *ExcelBackend) CreateSheet(name string, gridlines bool) error {
	if b.sheetCount == 0 {
		if err := b.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("renaming default sheet: %w", err)
		}
	} else {
		if _, err := b.file.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet: %w", err)
		}
	}
	b.sheetCount++

	if !gridlines {
		show := false
		if err := b.file.SetSheetView(name, 0, &excelize.ViewOptions{ShowGridLines: &show}); err != nil {
			return fmt.Errorf("hiding gridlines: %w", err)
		}
	}
	return nil
}

func (b *ExcelBackend) WriteGrid(sheet string, grid *Grid, anchor Anchor) error {
	row := anchor.Row
	if grid.Header != nil {
		for j, h := range grid.Header {
			cell, err := excelize.CoordinatesToCellName(anchor.Col+j, row)
			if err != nil {
				return err
			}
			if err := b.file.SetCellValue(sheet, cell, h); err != nil {
				return fmt.Errorf("writing header cell %s: %w", cell, err)
			}
		}
		row++
	}

	for _, cells := range grid.Rows {
		for j, c := range cells {
			cell, err := excelize.CoordinatesToCellName(anchor.Col+j, row)
			if err != nil {
				return err
			}
			if err := b.writeCell(sheet, cell, c); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

func (b *ExcelBackend) writeCell(sheet, cell string, c Cell) error {
	switch c.Type {
	case CellEmpty:
		return nil
	case CellDate, CellDateTime:
		if err := b.file.SetCellValue(sheet, cell, c.Value); err != nil {
			return fmt.Errorf("writing cell %s: %w", cell, err)
		}
		format := b.dateFormat
		if c.Type == CellDateTime {
			format = b.dateTimeFormat
		}
		styleID, err := b.numFmtStyle(format)
		if err != nil {
			return err
		}
		if err := b.file.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return fmt.Errorf("styling cell %s: %w", cell, err)
		}
		b.recordFormat(sheet, cell, format)
		return nil
	default:
		if err := b.file.SetCellValue(sheet, cell, c.Value); err != nil {
			return fmt.Errorf("writing cell %s: %w", cell, err)
		}
		return nil
	}
}

func (b *ExcelBackend) recordFormat(sheet, cell, format string) {
	if b.cellFormats[sheet] == nil {
		b.cellFormats[sheet] = make(map[string]string)
	}
	b.cellFormats[sheet][cell] = format
}

func (b *ExcelBackend) numFmtStyle(format string) (int, error) {
	key := "numfmt:" + format
	if id, ok := b.styleCache[key]; ok {
		return id, nil
	}
	id, err := b.file.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return 0, fmt.Errorf("creating number format style: %w", err)
	}
	b.styleCache[key] = id
	return id, nil
}

func (b *ExcelBackend) ApplyStyle(sheet string, style *CellStyle, rows, cols Span) error {
	if style == nil {
		return nil
	}
	styleID, err := b.cellStyle(style)
	if err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(cols.First, rows.First)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols.Last, rows.Last)
	if err != nil {
		return err
	}
	if err := b.file.SetCellStyle(sheet, start, end, styleID); err != nil {
		return fmt.Errorf("applying style to %s:%s: %w", start, end, err)
	}
	return nil
}

func (b *ExcelBackend) cellStyle(style *CellStyle) (int, error) {
	key := fmt.Sprintf("cell:%+v", *style)
	if id, ok := b.styleCache[key]; ok {
		return id, nil
	}

	s := &excelize.Style{
		Font: &excelize.Font{
			Bold:   style.FontBold,
			Italic: style.FontItalic,
			Size:   style.FontSize,
			Family: style.FontName,
			Color:  strings.TrimPrefix(style.FontColor, "#"),
		},
		Alignment: &excelize.Alignment{
			Horizontal: style.Alignment,
			Vertical:   style.VerticalAlign,
			WrapText:   style.WrapText,
		},
	}
	if style.FillColor != "" {
		s.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(style.FillColor, "#")},
		}
	}
	if style.NumberFormat != "" {
		s.CustomNumFmt = &style.NumberFormat
	}

	id, err := b.file.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("creating style: %w", err)
	}
	b.styleCache[key] = id
	return id, nil
}

func (b *ExcelBackend) DrawBorders(sheet string, spec BorderSpec, instructions []BorderInstruction) error {
	lineIdx, ok := borderStyleIndex[spec.Style]
	if !ok {
		return fmt.Errorf("unknown border line style %q", spec.Style)
	}

	for _, inst := range instructions {
		cell, err := excelize.CoordinatesToCellName(inst.Col, inst.Row)
		if err != nil {
			return err
		}
		numFmt := b.cellFormats[sheet][cell]
		styleID, err := b.borderStyle(spec.Colour, lineIdx, inst.Edges, numFmt)
		if err != nil {
			return err
		}
		if err := b.file.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return fmt.Errorf("bordering cell %s: %w", cell, err)
		}
	}
	return nil
}

func (b *ExcelBackend) borderStyle(colour string, lineIdx int, edges EdgeSet, numFmt string) (int, error) {
	key := fmt.Sprintf("border:%s:%d:%d:%s", colour, lineIdx, edges, numFmt)
	if id, ok := b.styleCache[key]; ok {
		return id, nil
	}

	var borders []excelize.Border
	for _, e := range []struct {
		edge EdgeSet
		name string
	}{
		{EdgeTop, "top"},
		{EdgeBottom, "bottom"},
		{EdgeLeft, "left"},
		{EdgeRight, "right"},
	} {
		if edges.Has(e.edge) {
			borders = append(borders, excelize.Border{
				Type:  e.name,
				Color: colour,
				Style: lineIdx,
			})
		}
	}

	s := &excelize.Style{Border: borders}
	if numFmt != "" {
		s.CustomNumFmt = &numFmt
	}
	id, err := b.file.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("creating border style: %w", err)
	}
	b.styleCache[key] = id
	return id, nil
}

func (b *ExcelBackend) AddTable(sheet string, table TableSpec) error {
	start, err := excelize.CoordinatesToCellName(table.Anchor.Col, table.Anchor.Row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(
		table.Anchor.Col+table.ColCount-1,
		table.Anchor.Row+table.RowCount-1,
	)
	if err != nil {
		return err
	}

	showHeader := true
	if err := b.file.AddTable(sheet, &excelize.Table{
		Range:             fmt.Sprintf("%s:%s", start, end),
		Name:              table.Name,
		StyleName:         "TableStyleMedium2",
		ShowHeaderRow:     &showHeader,
		ShowRowStripes:    boolPtr(true),
		ShowColumnStripes: false,
	}); err != nil {
		return fmt.Errorf("adding table %s: %w", table.Name, err)
	}
	return nil
}

func (b *ExcelBackend) AutoFilter(sheet string, headerRow int, cols Span) error {
	start, err := excelize.CoordinatesToCellName(cols.First, headerRow)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols.Last, headerRow)
	if err != nil {
		return err
	}
	rangeRef := fmt.Sprintf("%s:%s", start, end)
	if err := b.file.AutoFilter(sheet, rangeRef, []excelize.AutoFilterOptions{}); err != nil {
		return fmt.Errorf("adding auto filter on %s: %w", rangeRef, err)
	}
	return nil
}

func (b *ExcelBackend) FitColumns(sheet string, grid *Grid, anchor Anchor, maxWidth int) error {
	widths := make([]float64, grid.ColCount())
	for j, h := range grid.Header {
		widths[j] = float64(len(h))
	}
	for _, row := range grid.Rows {
		for j, c := range row {
			if w := float64(b.displayWidth(c)); w > widths[j] {
				widths[j] = w
			}
		}
	}

	for j, w := range widths {
		if w == 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(anchor.Col + j)
		if err != nil {
			return err
		}
		adjusted := w * 1.2
		if adjusted > float64(maxWidth) {
			adjusted = float64(maxWidth)
		}
		if err := b.file.SetColWidth(sheet, name, name, adjusted); err != nil {
			return fmt.Errorf("setting width of column %s: %w", name, err)
		}
	}
	return nil
}

// displayWidth approximates the rendered width of a cell in characters.
// Date cells render through their number format, so the format length is
// the best estimate available before layout.
func (b *ExcelBackend) displayWidth(c Cell) int {
	switch c.Type {
	case CellEmpty:
		return 0
	case CellDate:
		return len(b.dateFormat)
	case CellDateTime:
		return len(b.dateTimeFormat)
	default:
		return len(fmt.Sprintf("%v", c.Value))
	}
}

func (b *ExcelBackend) FreezeBelow(sheet string, row int) error {
	topLeft, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := b.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      row - 1,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing panes: %w", err)
	}
	return nil
}

func (b *ExcelBackend) ProtectSheet(sheet string, p *SheetProtection) error {
	if len(p.UnlockedRanges) > 0 {
		styleID, err := b.unlockedStyle()
		if err != nil {
			return err
		}
		for _, rng := range p.UnlockedRanges {
			start, end, _ := strings.Cut(rng, ":")
			if err := b.file.SetCellStyle(sheet, start, end, styleID); err != nil {
				return fmt.Errorf("unlocking range %s: %w", rng, err)
			}
		}
	}

	if err := b.file.ProtectSheet(sheet, &excelize.SheetProtectionOptions{
		Password:            p.Password,
		SelectLockedCells:   true,
		SelectUnlockedCells: true,
		FormatCells:         p.AllowFormatCells,
		FormatColumns:       p.AllowFormatColumns,
		FormatRows:          p.AllowFormatRows,
		InsertRows:          p.AllowInsertRows,
		DeleteRows:          p.AllowDeleteRows,
		Sort:                p.AllowSort,
		AutoFilter:          p.AllowFilter,
	}); err != nil {
		return fmt.Errorf("protecting sheet: %w", err)
	}
	return nil
}

func (b *ExcelBackend) unlockedStyle() (int, error) {
	const key = "unlocked"
	if id, ok := b.styleCache[key]; ok {
		return id, nil
	}
	id, err := b.file.NewStyle(&excelize.Style{
		Protection: &excelize.Protection{Locked: false},
	})
	if err != nil {
		return 0, fmt.Errorf("creating unlocked style: %w", err)
	}
	b.styleCache[key] = id
	return id, nil
}

func (b *ExcelBackend) Persist(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file %s already exists and overwrite is disabled", path)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	if err := b.file.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// WriteTo streams the workbook to w.
func (b *ExcelBackend) WriteTo(w io.Writer) error {
	if _, err := b.file.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }
