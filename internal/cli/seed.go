package cli

import (
	"errors"

	dbpostgres "wow-campus/internal/database/postgres"
	"wow-campus/internal/database/seeder"

	"github.com/spf13/cobra"
)

var errNoAdminPassword = errors.New("SEED_ADMIN_PASSWORD is required to seed the admin account")

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and optional demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cfg.Seed.AdminPassword == "" {
				return errNoAdminPassword
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			db, err := dbpostgres.Connect(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			admin := seeder.AdminSeeder{
				Email:       cfg.Seed.AdminEmail,
				Password:    cfg.Seed.AdminPassword,
				DisplayName: cfg.Seed.AdminName,
			}
			r := seeder.Runner{Seeders: seeder.Defaults(admin, demo), Logger: log}
			return r.Run(ctx, db)
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "also insert a demo company, postings and jobseekers")
	return cmd
}
