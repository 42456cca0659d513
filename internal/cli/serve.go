package cli

import (
	"wow-campus/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, websocket hub and scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			a, cleanup, err := app.Bootstrap(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := cleanup(); err != nil {
					log.Warn("cleanup failed", zap.Error(err))
				}
			}()

			if migrate {
				if err := runMigrations(ctx, cfg, a.Container.DB, log); err != nil {
					return err
				}
			}

			log.Info("starting server", zap.String("port", cfg.App.HTTPPort))
			return a.Serve(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
