package main

import (
	"github.com/spf13/cobra"

	"github.com/locvowork/gridreport/internal/config"
	"github.com/locvowork/gridreport/internal/server"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP export server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = config.DefaultEnvConfig.SERVER_PORT
			}
			srv := server.New(config.ExportDefaults())
			return srv.Start(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from SERVER_PORT)")
	return cmd
}
