package cli

import (
	"fmt"

	"github.com/farellandr/travel-maker/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	failureColor = color.New(color.FgRed, color.Bold)
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := config.InitDatabase(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := config.Ping(cmd.Context(), db); err != nil {
				failureColor.Fprintln(cmd.ErrOrStderr(), "database unreachable")
				return fmt.Errorf("ping %s database: %w", cfg.DBDriver, err)
			}
			if err := config.Migrate(db); err != nil {
				failureColor.Fprintln(cmd.ErrOrStderr(), "migration failed")
				return err
			}

			successColor.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", cfg.DBDriver)
			return nil
		},
	}
}
