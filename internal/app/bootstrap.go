package app

import (
	"context"
	"errors"
	"time"

	"wow-campus/internal/config"
	"wow-campus/internal/delivery/http/handler"
	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/delivery/http/routes"
	"wow-campus/internal/scheduler"
	"wow-campus/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Fiber     *fiber.App
	Container *Container
	Scheduler *scheduler.Scheduler
}

// New builds the HTTP application on top of an initialized container.
func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{
		Fiber:     f,
		Container: c,
		Scheduler: scheduler.New(c.Usecases.Statistics, cfg.Scheduler.StatsSnapshotCron, c.Logger).WithLock(c.Cache),
	}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.Locale())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	cfg := c.Config
	uc := c.Usecases

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	h := routes.Handlers{
		Health:       handler.NewHealthHandler(c.DB, c.Cache),
		Auth:         handler.NewAuthHandler(uc.Auth, cfg.JWT.AccessExpiresIn, cfg.App.Environment == "production"),
		Jobs:         handler.NewJobsHandler(uc.Jobs),
		Jobseekers:   handler.NewJobseekersHandler(uc.Jobseekers),
		Companies:    handler.NewCompanyHandler(uc.Companies),
		Agents:       handler.NewAgentHandler(uc.Agents),
		Applications: handler.NewApplicationsHandler(uc.Applications),
		Matching:     handler.NewMatchingHandler(uc.Matching),
		Admin:        handler.NewAdminHandler(uc.Admin, uc.Statistics),
		Contact:      handler.NewContactHandler(uc.Contact),
		Notify:       ws.NewHandler(c.Hub, c.Logger),
	}
	auth := middleware.NewAuthMiddleware(c.JWT, c.Repos.Users)
	routes.NewRegistry(h, auth, limiter).Register(app)
}

// Serve starts the hub, the scheduler and the listener, and shuts all of them
// down when ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	addr, err := a.Container.Config.App.ListenAddr()
	if err != nil {
		return err
	}
	logger := a.Container.Logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.Container.Hub.Run(ctx)
	if err := a.Scheduler.Start(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	logger.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		cancel()
		a.Scheduler.Stop(context.Background())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()

	a.Scheduler.Stop(sctx)
	if err := a.Fiber.ShutdownWithContext(sctx); err != nil {
		return err
	}
	return nil
}
