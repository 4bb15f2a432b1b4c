package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locvowork/gridreport/internal/config"
	"github.com/locvowork/gridreport/internal/database"
	"github.com/locvowork/gridreport/pkg/gridreport"
)

func newPgCmd() *cobra.Command {
	var (
		queries    []string
		sheetNames []string
		asTable    bool
	)

	cmd := &cobra.Command{
		Use:   "pg [output.xlsx]",
		Short: "Export PostgreSQL query results to an xlsx workbook",
		Long: `Run one or more SQL queries against the database configured via the
DB_* environment variables and export each result set to its own worksheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(queries) == 0 {
				return fmt.Errorf("at least one --query required")
			}

			ctx := cmd.Context()
			env := config.DefaultEnvConfig
			db, err := database.NewPostgresDB(ctx, database.Config{
				Host:     env.DB_HOST,
				Port:     env.DB_PORT,
				User:     env.DB_USER,
				Password: env.DB_PASSWORD,
				DBName:   env.DB_NAME,
				SSLMode:  env.DB_SSL_MODE,
			})
			if err != nil {
				return err
			}
			defer db.Close()

			sheets := make([]gridreport.Sheet, len(queries))
			for i, q := range queries {
				rows, err := db.QueryContext(ctx, q)
				if err != nil {
					return fmt.Errorf("executing query %d: %w", i+1, err)
				}
				ds, err := gridreport.FromSQLRows(rows)
				rows.Close()
				if err != nil {
					return err
				}
				name := ""
				if i < len(sheetNames) {
					name = sheetNames[i]
				}
				sheets[i] = gridreport.Sheet{Name: name, Data: ds}
			}

			opts := []gridreport.ExportOption{
				gridreport.WithDefaults(config.ExportDefaults()),
				gridreport.WithHeaderStyle(gridreport.DefaultHeaderStyle()),
				gridreport.WithAutoWidth(true),
			}
			if asTable {
				opts = append(opts, gridreport.AsTable(true))
			}
			return gridreport.WriteWorkbook(ctx, args[0], sheets, opts...)
		},
	}

	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "SQL query (repeatable, one worksheet each)")
	cmd.Flags().StringArrayVarP(&sheetNames, "sheet", "s", nil, "Worksheet name for the matching --query (repeatable)")
	cmd.Flags().BoolVar(&asTable, "as-table", false, "Render result sets as Excel tables")

	return cmd
}
