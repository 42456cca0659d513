package app

import (
	"context"
	"time"

	"wow-campus/internal/config"
	"wow-campus/internal/database"
	dbpostgres "wow-campus/internal/database/postgres"
	"wow-campus/internal/infrastructure/cache"
	"wow-campus/internal/infrastructure/mail"
	applog "wow-campus/internal/logger"
	"wow-campus/internal/pkg/jwt"
	"wow-campus/internal/repository"
	"wow-campus/internal/usecase"
	"wow-campus/internal/ws"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

type Repositories struct {
	Users        *repository.PostgresUserRepository
	Companies    *repository.PostgresCompanyRepository
	Agents       *repository.PostgresAgentRepository
	Jobseekers   *repository.PostgresJobseekerRepository
	Jobs         *repository.PostgresJobRepository
	Applications *repository.PostgresApplicationRepository
	Statistics   *repository.PostgresStatisticsRepository
	Contacts     *repository.PostgresContactRepository
}

type Usecases struct {
	Auth         *usecase.Auth
	Jobs         *usecase.Jobs
	Jobseekers   *usecase.Jobseekers
	Companies    *usecase.Companies
	Agents       *usecase.Agents
	Applications *usecase.Applications
	Matching     *usecase.Matching
	Admin        *usecase.Admin
	Statistics   *usecase.Statistics
	Contact      *usecase.Contact
}

// Container owns every long-lived dependency of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    *jwt.HMACService

	Repos    Repositories
	Usecases Usecases
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	logger = applog.OrNop(logger)

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(cctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	return NewContainerWith(cfg, db, cache.NewRedis(cctx, cfg.Redis, logger), logger), nil
}

// NewContainerWith wires repositories and usecases over existing connections.
func NewContainerWith(cfg config.Config, db database.DB, rc *cache.Redis, logger *zap.Logger) *Container {
	logger = applog.OrNop(logger)
	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  rc,
		Hub:    ws.NewHub(logger),
		JWT:    jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn),
	}
	c.Repos = newRepositories(db, logger)
	c.Usecases = newUsecases(cfg, c.Repos, c.Cache, c.Hub, c.JWT, logger)
	return c
}

func newRepositories(db database.DB, logger *zap.Logger) Repositories {
	return Repositories{
		Users:        repository.NewPostgresUserRepository(db),
		Companies:    repository.NewPostgresCompanyRepository(db),
		Agents:       repository.NewPostgresAgentRepository(db, logger),
		Jobseekers:   repository.NewPostgresJobseekerRepository(db, logger),
		Jobs:         repository.NewPostgresJobRepository(db, logger),
		Applications: repository.NewPostgresApplicationRepository(db),
		Statistics:   repository.NewPostgresStatisticsRepository(db),
		Contacts:     repository.NewPostgresContactRepository(db),
	}
}

func newUsecases(cfg config.Config, r Repositories, c usecase.Cache, hub *ws.Hub, jwtSvc jwt.Service, logger *zap.Logger) Usecases {
	matching := usecase.NewMatchingUsecase(r.Jobs, r.Jobseekers, r.Statistics, c, logger.Named("matching"), usecase.MatchingOptions{
		TopN:     cfg.Matching.TopN,
		CacheTTL: cfg.Matching.CacheTTL,
	})
	return Usecases{
		Auth:         usecase.NewAuthUsecase(r.Users, jwtSvc, matching),
		Jobs:         usecase.NewJobUsecase(r.Jobs, r.Companies, r.Jobseekers, r.Applications, hub, matching, logger),
		Jobseekers:   usecase.NewJobseekerUsecase(r.Jobseekers, matching, logger),
		Companies:    usecase.NewCompanyUsecase(r.Companies, logger),
		Agents:       usecase.NewAgentUsecase(r.Agents, r.Jobseekers, logger.Named("agents")),
		Applications: usecase.NewApplicationUsecase(r.Applications, r.Jobs, r.Jobseekers, hub, logger),
		Matching:     matching,
		Admin:        usecase.NewAdminUsecase(r.Users, matching, logger),
		Statistics:   usecase.NewStatisticsUsecase(r.Statistics, logger),
		Contact:      usecase.NewContactUsecase(r.Contacts, contactMail(cfg.Mail), logger.Named("contact")),
	}
}

func contactMail(cfg config.MailConfig) usecase.ContactMail {
	m := usecase.ContactMail{From: cfg.ContactFrom, To: cfg.ContactTo}
	if r := mail.NewResend(cfg, nil); r != nil {
		m.Sender = r
	}
	return m
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
