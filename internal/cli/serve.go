package cli

import (
	"github.com/farellandr/travel-maker/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return server.Start(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (overrides PORT)")
	return cmd
}
