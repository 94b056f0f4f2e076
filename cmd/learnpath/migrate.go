package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/learnpath/internal/bootstrap"
	"github.com/at-ishikawa/learnpath/internal/config"
	"github.com/at-ishikawa/learnpath/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), cfg, cmd)
		},
	}
}

func runMigrate(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
	switch cfg.Storage.Driver {
	case config.StorageDriverMySQL, config.StorageDriverSQLite:
	default:
		return fmt.Errorf("storage driver %q has no database schema", cfg.Storage.Driver)
	}

	db, err := bootstrap.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("database.Migrate() > %w", err)
	}
	_, err = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Schema of %s is up to date\n", db.DriverName())
	return err
}
