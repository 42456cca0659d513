package cli

import (
	"context"
	"fmt"

	"wow-campus/internal/config"
	"wow-campus/internal/database"
	"wow-campus/internal/database/migration"
	dbpostgres "wow-campus/internal/database/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			db, err := dbpostgres.Connect(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			return runMigrations(ctx, cfg, db, log)
		},
	}
}

func runMigrations(ctx context.Context, cfg config.Config, db database.DB, log *zap.Logger) error {
	r := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: log}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
