package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"credit-score/repository"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return errNoDatabase
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			return err
		}
		logger.Info("migrations applied", "source", cfg.MigrationsDir)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return errNoDatabase
		}
		if err := repository.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "source", cfg.MigrationsDir)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
