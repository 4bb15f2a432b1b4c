package gridreport

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleTemplate = `
path: report.xlsx
sheets:
  - name: Summary
    data: summary
    start_row: 2
    start_col: B
    freeze_header: true
    border:
      mode: surrounding
      colour: navy
    header_style:
      font_name: Arial
      bold: true
      fill_color: "#4472C4"
    protection:
      password: s3cret
      unlocked_ranges: ["C3:D4"]
      allow_sort: true
      allow_filter: true
  - name: Raw
    data: raw
    col_names: false
    gridlines: false
`

func TestParseTemplate(t *testing.T) {
	tmpl, err := ParseTemplate(strings.NewReader(sampleTemplate))
	require.NoError(t, err)

	assert.Equal(t, "report.xlsx", tmpl.Path)
	require.Len(t, tmpl.Sheets, 2)

	summary := tmpl.Sheets[0]
	assert.Equal(t, "Summary", summary.Name)
	assert.Equal(t, "summary", summary.DataID)
	assert.Equal(t, 2, summary.StartRow)
	assert.Equal(t, "B", summary.StartCol)
	assert.True(t, summary.FreezeHeader)
	require.NotNil(t, summary.Border)
	assert.Equal(t, "surrounding", summary.Border.Mode)
	assert.Equal(t, "navy", summary.Border.Colour)
	require.NotNil(t, summary.HeaderStyle)
	assert.True(t, summary.HeaderStyle.Bold)
	require.NotNil(t, summary.Protection)
	prot := summary.Protection.ToSheetProtection()
	assert.Equal(t, "s3cret", prot.Password)
	assert.Equal(t, []string{"C3:D4"}, prot.UnlockedRanges)
	assert.True(t, prot.AllowSort)
	assert.True(t, prot.AllowFilter)
	assert.False(t, prot.AllowDeleteRows)

	raw := tmpl.Sheets[1]
	assert.Nil(t, raw.Border)
	// No protection block leaves the worksheet unprotected.
	assert.Nil(t, raw.Protection.ToSheetProtection())
	require.NotNil(t, raw.ColNames)
	assert.False(t, *raw.ColNames)
	require.NotNil(t, raw.Gridlines)
	assert.False(t, *raw.Gridlines)
	// Unset booleans stay distinguishable from explicit false.
	assert.Nil(t, raw.RowNames)
}

func TestParseTemplateRejectsEmpty(t *testing.T) {
	_, err := ParseTemplate(strings.NewReader("path: out.xlsx\nsheets: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sheets")
}

func TestTemplateExporterUnboundData(t *testing.T) {
	tmpl, err := ParseTemplate(strings.NewReader(sampleTemplate))
	require.NoError(t, err)

	var buf bytes.Buffer
	exp := NewTemplateExporter(tmpl).Bind("summary", sampleDataset())
	err = exp.ExportTo(context.Background(), &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `id "raw"`)
}

func TestTemplateExporterExportTo(t *testing.T) {
	tmpl, err := ParseTemplate(strings.NewReader(sampleTemplate))
	require.NoError(t, err)

	exp := NewTemplateExporter(tmpl).
		Bind("summary", sampleDataset()).
		Bind("raw", [][]int{{1, 2}, {3, 4}})

	var buf bytes.Buffer
	require.NoError(t, exp.ExportTo(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Raw"}, f.GetSheetList())

	// Summary anchors at B2 with its header row.
	h, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "id", h)

	// Raw has no header and starts at A1.
	v, err := f.GetCellValue("Raw", "A1")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestTemplateExporterNeedsPath(t *testing.T) {
	tmpl, err := ParseTemplate(strings.NewReader("sheets:\n  - name: s\n    data: d\n"))
	require.NoError(t, err)

	exp := NewTemplateExporter(tmpl).Bind("d", sampleDataset())
	err = exp.Export(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output path")
}
