// Package scheduler runs the periodic statistics snapshot.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	applog "wow-campus/internal/logger"
	"wow-campus/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultSpec     = "@daily"
	snapshotTimeout = 30 * time.Second
	lockKeyPrefix   = "lock:stats_snapshot:"
	lockTTL         = time.Hour
)

type Snapshotter interface {
	TakeSnapshot(ctx context.Context) (repository.Snapshot, error)
}

// Locker claims a run across replicas.
type Locker interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type Scheduler struct {
	cron   *cron.Cron
	stats  Snapshotter
	lock   Locker
	logger *zap.Logger
	spec   string
	now    func() time.Time
}

func New(stats Snapshotter, spec string, logger *zap.Logger) *Scheduler {
	logger = applog.OrNop(logger).Named("scheduler")
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = DefaultSpec
	}
	cl := cronLogger{l: logger.Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		stats:  stats,
		logger: logger,
		spec:   spec,
		now:    time.Now,
	}
}

// WithLock makes each run claim a per-day key first, so only one replica
// writes the snapshot.
func (s *Scheduler) WithLock(l Locker) *Scheduler {
	s.lock = l
	return s
}

// Start registers the snapshot job. ctx bounds every run.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule stats snapshot %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("cron started", zap.String("spec", s.spec))
	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("cron stop timed out")
	}
}

func (s *Scheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	if s.lock != nil {
		key := lockKeyPrefix + s.now().UTC().Format(time.DateOnly)
		ok, err := s.lock.SetIfNotExists(ctx, key, "1", lockTTL)
		if err != nil {
			s.logger.Warn("stats snapshot lock failed, running anyway", zap.Error(err))
		} else if !ok {
			s.logger.Debug("stats snapshot already claimed", zap.String("key", key))
			return
		}
	}

	snap, err := s.stats.TakeSnapshot(ctx)
	if err != nil {
		s.logger.Error("stats snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("stats snapshot stored",
		zap.Time("date", snap.StatDate),
		zap.Int("total_users", snap.TotalUsers),
		zap.Int("active_job_postings", snap.ActiveJobPostings),
	)
}

type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
