// Package main provides the gridreport CLI: export JSON or database query
// results to styled xlsx workbooks, drive YAML workbook templates, or run
// the HTTP export server.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/locvowork/gridreport/internal/config"
	"github.com/locvowork/gridreport/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridreport",
		Short: "Export tabular data to styled Excel workbooks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvConfig(); err != nil {
				return err
			}
			logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
			return nil
		},
	}

	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newPgCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
