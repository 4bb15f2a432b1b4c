package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/locvowork/gridreport/internal/config"
	"github.com/locvowork/gridreport/pkg/gridreport"
)

func newExportCmd() *cobra.Command {
	var (
		inputs       []string
		sheetNames   []string
		templatePath string
		bindings     []string
		startRows    []int
		startCols    []string
		borders      []string
		borderColour []string
		asTable      bool
		withFilter   bool
		autoWidth    bool
		noHeader     bool
		noOverwrite  bool
	)

	cmd := &cobra.Command{
		Use:   "export [output.xlsx]",
		Short: "Export JSON record files to an xlsx workbook",
		Long: `Export one or more JSON files (each an array of flat objects) to an
xlsx workbook, one file per worksheet, or drive a YAML workbook template
with --template and --bind id=file.json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := config.ExportDefaults()

			if templatePath != "" {
				return runTemplateExport(cmd, templatePath, bindings, defaults)
			}

			if len(args) != 1 {
				return fmt.Errorf("output path required")
			}
			if len(inputs) == 0 {
				return fmt.Errorf("at least one --input file required")
			}

			sheets := make([]gridreport.Sheet, len(inputs))
			for i, path := range inputs {
				ds, err := loadRecords(path)
				if err != nil {
					return err
				}
				name := ""
				if i < len(sheetNames) {
					name = sheetNames[i]
				}
				sheets[i] = gridreport.Sheet{Name: name, Data: ds}
			}

			opts := []gridreport.ExportOption{gridreport.WithDefaults(defaults)}
			if len(startRows) > 0 {
				opts = append(opts, gridreport.WithStartRow(startRows...))
			}
			if len(startCols) > 0 {
				cols := make([]interface{}, len(startCols))
				for i, c := range startCols {
					cols[i] = c
				}
				opts = append(opts, gridreport.WithStartCol(cols...))
			}
			if len(borders) > 0 {
				opts = append(opts, gridreport.WithBorders(borders...))
			}
			if len(borderColour) > 0 {
				opts = append(opts, gridreport.WithBorderColour(borderColour...))
			}
			if asTable {
				opts = append(opts, gridreport.AsTable(true))
			}
			if withFilter {
				opts = append(opts, gridreport.WithFilter(true))
			}
			if autoWidth {
				opts = append(opts, gridreport.WithAutoWidth(true))
			}
			if noHeader {
				opts = append(opts, gridreport.WithColNames(false))
			}
			if noOverwrite {
				opts = append(opts, gridreport.WithOverwrite(false))
			}

			return gridreport.WriteWorkbook(cmd.Context(), args[0], sheets, opts...)
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "JSON input file (repeatable, one worksheet each)")
	cmd.Flags().StringArrayVarP(&sheetNames, "sheet", "s", nil, "Worksheet name for the matching --input (repeatable)")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "YAML workbook template")
	cmd.Flags().StringArrayVar(&bindings, "bind", nil, "Template data binding id=file.json (repeatable)")
	cmd.Flags().IntSliceVar(&startRows, "start-row", nil, "Anchor row per worksheet")
	cmd.Flags().StringArrayVar(&startCols, "start-col", nil, "Anchor column per worksheet (number or letters)")
	cmd.Flags().StringArrayVar(&borders, "border", nil, "Border mode per worksheet: none, surrounding, rows, columns, all")
	cmd.Flags().StringArrayVar(&borderColour, "border-colour", nil, "Border colour per worksheet (name or hex)")
	cmd.Flags().BoolVar(&asTable, "as-table", false, "Render worksheets as Excel tables")
	cmd.Flags().BoolVar(&withFilter, "with-filter", false, "Add an auto filter on the header row")
	cmd.Flags().BoolVar(&autoWidth, "auto-width", false, "Fit column widths to their content")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Omit the header row")
	cmd.Flags().BoolVar(&noOverwrite, "no-overwrite", false, "Fail if the output file already exists")

	return cmd
}

func runTemplateExport(cmd *cobra.Command, templatePath string, bindings []string, defaults gridreport.Defaults) error {
	tmpl, err := gridreport.LoadTemplate(templatePath)
	if err != nil {
		return err
	}
	exporter := gridreport.NewTemplateExporter(tmpl).WithTemplateDefaults(defaults)

	for _, b := range bindings {
		id, path, ok := strings.Cut(b, "=")
		if !ok {
			return fmt.Errorf("invalid binding %q, want id=file.json", b)
		}
		ds, err := loadRecords(path)
		if err != nil {
			return err
		}
		exporter.Bind(id, ds)
	}
	return exporter.Export(cmd.Context())
}

// loadRecords reads a JSON array of flat objects into a Dataset.
func loadRecords(path string) (*gridreport.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var records []map[string]interface{}
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return gridreport.FromRecords(records)
}
