package gridreport

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkbookTemplate is the YAML description of an export: a destination path
// plus per-sheet knobs. Sheet data is bound at runtime by id.
type WorkbookTemplate struct {
	Path      string          `yaml:"path"`
	Overwrite *bool           `yaml:"overwrite"`
	Sheets    []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate is one worksheet entry in a workbook template. Pointer
// fields distinguish "unset" from an explicit false.
type SheetTemplate struct {
	Name   string `yaml:"name"`
	DataID string `yaml:"data"`

	StartRow int    `yaml:"start_row"`
	StartCol string `yaml:"start_col"`

	Gridlines *bool `yaml:"gridlines"`
	ColNames  *bool `yaml:"col_names"`
	RowNames  *bool `yaml:"row_names"`

	AsTable      bool   `yaml:"as_table"`
	WithFilter   bool   `yaml:"with_filter"`
	TableName    string `yaml:"table_name"`
	FreezeHeader bool   `yaml:"freeze_header"`
	AutoWidth    bool   `yaml:"auto_width"`

	Border      *BorderTemplate     `yaml:"border"`
	HeaderStyle *StyleTemplate      `yaml:"header_style"`
	Protection  *ProtectionTemplate `yaml:"protection"`
}

// BorderTemplate configures the border decoration of a sheet's data region.
type BorderTemplate struct {
	Mode   string `yaml:"mode"`
	Colour string `yaml:"colour"`
	Style  string `yaml:"style"`
}

// ProtectionTemplate is the YAML shape of a SheetProtection.
type ProtectionTemplate struct {
	Password       string   `yaml:"password"`
	UnlockedRanges []string `yaml:"unlocked_ranges"`

	AllowFormatCells   bool `yaml:"allow_format_cells"`
	AllowFormatColumns bool `yaml:"allow_format_columns"`
	AllowFormatRows    bool `yaml:"allow_format_rows"`
	AllowInsertRows    bool `yaml:"allow_insert_rows"`
	AllowDeleteRows    bool `yaml:"allow_delete_rows"`
	AllowSort          bool `yaml:"allow_sort"`
	AllowFilter        bool `yaml:"allow_filter"`
}

// ToSheetProtection converts the template protection to the backend-neutral
// form.
func (p *ProtectionTemplate) ToSheetProtection() *SheetProtection {
	if p == nil {
		return nil
	}
	return &SheetProtection{
		Password:           p.Password,
		UnlockedRanges:     p.UnlockedRanges,
		AllowFormatCells:   p.AllowFormatCells,
		AllowFormatColumns: p.AllowFormatColumns,
		AllowFormatRows:    p.AllowFormatRows,
		AllowInsertRows:    p.AllowInsertRows,
		AllowDeleteRows:    p.AllowDeleteRows,
		AllowSort:          p.AllowSort,
		AllowFilter:        p.AllowFilter,
	}
}

// StyleTemplate is the YAML shape of a CellStyle.
type StyleTemplate struct {
	FontName  string  `yaml:"font_name"`
	FontSize  float64 `yaml:"font_size"`
	Bold      bool    `yaml:"bold"`
	Italic    bool    `yaml:"italic"`
	FontColor string  `yaml:"font_color"`
	FillColor string  `yaml:"fill_color"`
	Align     string  `yaml:"align"`
	WrapText  bool    `yaml:"wrap_text"`
}

// ToCellStyle converts the template style to the backend-neutral form.
func (s *StyleTemplate) ToCellStyle() *CellStyle {
	if s == nil {
		return nil
	}
	return &CellStyle{
		FontName:   s.FontName,
		FontSize:   s.FontSize,
		FontBold:   s.Bold,
		FontItalic: s.Italic,
		FontColor:  s.FontColor,
		FillColor:  s.FillColor,
		Alignment:  s.Align,
		WrapText:   s.WrapText,
	}
}

// LoadTemplate reads a workbook template from a YAML file.
func LoadTemplate(path string) (*WorkbookTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()
	return ParseTemplate(f)
}

// ParseTemplate decodes a workbook template from a reader.
func ParseTemplate(r io.Reader) (*WorkbookTemplate, error) {
	var tmpl WorkbookTemplate
	if err := yaml.NewDecoder(r).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	if len(tmpl.Sheets) == 0 {
		return nil, fmt.Errorf("template declares no sheets")
	}
	return &tmpl, nil
}

// TemplateExporter binds runtime data to a workbook template and runs the
// export pipeline over it.
type TemplateExporter struct {
	tmpl     *WorkbookTemplate
	bindings map[string]interface{}
	defaults Defaults
}

// NewTemplateExporter wraps a loaded template. Defaults follow
// StandardDefaults until overridden with WithTemplateDefaults.
func NewTemplateExporter(tmpl *WorkbookTemplate) *TemplateExporter {
	return &TemplateExporter{
		tmpl:     tmpl,
		bindings: make(map[string]interface{}),
		defaults: StandardDefaults(),
	}
}

// WithTemplateDefaults threads externally resolved defaults through the
// template export.
func (e *TemplateExporter) WithTemplateDefaults(d Defaults) *TemplateExporter {
	e.defaults = d
	return e
}

// Bind attaches data to the sheet declared with the given id.
func (e *TemplateExporter) Bind(id string, data interface{}) *TemplateExporter {
	e.bindings[id] = data
	return e
}

// Export runs the pipeline and persists to the template's path.
func (e *TemplateExporter) Export(ctx context.Context) error {
	if e.tmpl.Path == "" {
		return fmt.Errorf("template has no output path")
	}
	sheets, opts, err := e.assemble()
	if err != nil {
		return err
	}
	return WriteWorkbook(ctx, e.tmpl.Path, sheets, opts...)
}

// ExportTo runs the pipeline into a writer, ignoring the template's path.
func (e *TemplateExporter) ExportTo(ctx context.Context, w io.Writer) error {
	sheets, opts, err := e.assemble()
	if err != nil {
		return err
	}
	return WriteWorkbookTo(ctx, w, sheets, opts...)
}

func (e *TemplateExporter) assemble() ([]Sheet, []ExportOption, error) {
	n := len(e.tmpl.Sheets)
	sheets := make([]Sheet, n)

	startRows := make([]int, n)
	startCols := make([]interface{}, n)
	gridlines := make([]bool, n)
	colNames := make([]bool, n)
	rowNames := make([]bool, n)
	asTable := make([]bool, n)
	withFilter := make([]bool, n)
	tableNames := make([]string, n)
	freeze := make([]bool, n)
	autoWidths := make([]bool, n)
	borderModes := make([]string, n)
	borderColours := make([]string, n)
	borderStyles := make([]string, n)
	headerStyles := make([]*CellStyle, n)
	protections := make([]*SheetProtection, n)

	for i, st := range e.tmpl.Sheets {
		data, ok := e.bindings[st.DataID]
		if !ok {
			return nil, nil, fmt.Errorf("no data bound for sheet %q (id %q)", st.Name, st.DataID)
		}
		sheets[i] = Sheet{Name: st.Name, Data: data}

		startRows[i] = st.StartRow
		if startRows[i] == 0 {
			startRows[i] = 1
		}
		if st.StartCol != "" {
			startCols[i] = st.StartCol
		} else {
			startCols[i] = 1
		}

		gridlines[i] = boolOr(st.Gridlines, true)
		colNames[i] = boolOr(st.ColNames, true)
		rowNames[i] = boolOr(st.RowNames, false)

		asTable[i] = st.AsTable
		withFilter[i] = st.WithFilter
		tableNames[i] = st.TableName
		freeze[i] = st.FreezeHeader
		autoWidths[i] = st.AutoWidth

		borderModes[i] = "none"
		borderColours[i] = e.defaults.BorderColour
		borderStyles[i] = e.defaults.BorderStyle
		if st.Border != nil {
			if st.Border.Mode != "" {
				borderModes[i] = st.Border.Mode
			}
			if st.Border.Colour != "" {
				borderColours[i] = st.Border.Colour
			}
			if st.Border.Style != "" {
				borderStyles[i] = st.Border.Style
			}
		}
		headerStyles[i] = st.HeaderStyle.ToCellStyle()
		protections[i] = st.Protection.ToSheetProtection()
	}

	opts := []ExportOption{
		WithDefaults(e.defaults),
		WithStartRow(startRows...),
		WithStartCol(startCols...),
		WithGridlines(gridlines...),
		WithColNames(colNames...),
		WithRowNames(rowNames...),
		AsTable(asTable...),
		WithFilter(withFilter...),
		WithTableNames(tableNames...),
		WithFreezeHeader(freeze...),
		WithAutoWidth(autoWidths...),
		WithBorders(borderModes...),
		WithBorderColour(borderColours...),
		WithBorderStyle(borderStyles...),
		WithHeaderStyle(headerStyles...),
		WithProtection(protections...),
	}
	if e.tmpl.Overwrite != nil {
		opts = append(opts, WithOverwrite(*e.tmpl.Overwrite))
	}
	return sheets, opts, nil
}

func boolOr(p *bool, fallback bool) bool {
	if p != nil {
		return *p
	}
	return fallback
}
