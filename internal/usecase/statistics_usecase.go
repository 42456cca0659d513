package usecase

import (
	"context"
	"time"

	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Overview struct {
	UsersByType       map[string]int       `json:"users_by_type"`
	ActiveJobs        int                  `json:"active_jobs"`
	TotalApplications int                  `json:"total_applications"`
	ApprovedUsers     int                  `json:"approved_users"`
	LatestSnapshot    *repository.Snapshot `json:"latest_snapshot"`
	GeneratedAt       time.Time            `json:"generated_at"`
}

type StatisticsUsecase interface {
	Overview(ctx context.Context) (Overview, error)
	TakeSnapshot(ctx context.Context) (repository.Snapshot, error)
}

type Statistics struct {
	stats  repository.StatisticsRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewStatisticsUsecase(stats repository.StatisticsRepository, logger *zap.Logger) *Statistics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Statistics{stats: stats, logger: logger, now: time.Now}
}

type liveCounts struct {
	byType       map[string]int
	activeJobs   int
	applications int
	approved     int
}

func (u *Statistics) live(ctx context.Context) (liveCounts, error) {
	var c liveCounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.byType, err = u.stats.CountUsersByType(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.activeJobs, err = u.stats.CountActiveJobs(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.applications, err = u.stats.CountApplications(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.approved, err = u.stats.CountApprovedUsers(gctx)
		return err
	})
	return c, g.Wait()
}

func (u *Statistics) Overview(ctx context.Context) (Overview, error) {
	c, err := u.live(ctx)
	if err != nil {
		u.logger.Error("admin statistics", zap.Error(err))
		return Overview{}, ErrInternal
	}
	snap, err := u.stats.LatestSnapshot(ctx)
	if err != nil {
		u.logger.Warn("latest statistics snapshot", zap.Error(err))
		snap = nil
	}
	return Overview{
		UsersByType:       c.byType,
		ActiveJobs:        c.activeJobs,
		TotalApplications: c.applications,
		ApprovedUsers:     c.approved,
		LatestSnapshot:    snap,
		GeneratedAt:       u.now().UTC(),
	}, nil
}

// TakeSnapshot records today's counts, replacing an earlier snapshot of the
// same day.
func (u *Statistics) TakeSnapshot(ctx context.Context) (repository.Snapshot, error) {
	c, err := u.live(ctx)
	if err != nil {
		return repository.Snapshot{}, err
	}

	total := 0
	for _, n := range c.byType {
		total += n
	}
	now := u.now().UTC()
	s := repository.Snapshot{
		StatDate:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TotalUsers:        total,
		TotalCompanies:    c.byType[string(user.TypeCompany)],
		TotalJobseekers:   c.byType[string(user.TypeJobseeker)],
		TotalAgents:       c.byType[string(user.TypeAgent)],
		ActiveJobPostings: c.activeJobs,
		TotalApplications: c.applications,
		UpdatedAt:         now,
	}
	if err := u.stats.UpsertSnapshot(ctx, s); err != nil {
		return repository.Snapshot{}, err
	}
	return s, nil
}
