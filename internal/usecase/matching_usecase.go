package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"wow-campus/internal/domain/job"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/domain/matching"
	"wow-campus/internal/i18n"
	"wow-campus/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type SeekerSummary struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Skills     []string `json:"skills"`
	Location   string   `json:"location"`
	Experience *int     `json:"experience"`
	VisaStatus string   `json:"visa_status"`
}

type JobSummary struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	SkillsRequired  []string `json:"skills_required"`
	ExperienceLevel *string  `json:"experience_level"`
}

type JobMatch struct {
	ID              int64    `json:"id"`
	CompanyID       int64    `json:"company_id"`
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	Industry        string   `json:"industry"`
	CompanySize     string   `json:"company_size"`
	JobType         string   `json:"job_type"`
	JobCategory     string   `json:"job_category"`
	Location        string   `json:"location"`
	SalaryMin       *int64   `json:"salary_min"`
	SalaryMax       *int64   `json:"salary_max"`
	VisaSponsorship bool     `json:"visa_sponsorship"`
	ExperienceLevel *string  `json:"experience_level"`
	SkillsRequired  []string `json:"skills_required"`
	MatchingScore   int      `json:"matching_score"`
	MatchReasons    []string `json:"match_reasons"`
}

type SeekerMatch struct {
	ID                int64    `json:"id"`
	UserID            int64    `json:"user_id"`
	Name              string   `json:"name"`
	Nationality       string   `json:"nationality"`
	VisaStatus        string   `json:"visa_status"`
	KoreanLevel       string   `json:"korean_level"`
	ExperienceYears   *int     `json:"experience_years"`
	PreferredLocation string   `json:"preferred_location"`
	Skills            []string `json:"skills"`
	MatchingScore     int      `json:"matching_score"`
	MatchReasons      []string `json:"match_reasons"`
}

type JobMatches struct {
	Jobseeker    SeekerSummary `json:"jobseeker"`
	Matches      []JobMatch    `json:"matches"`
	TotalMatches int           `json:"total_matches"`
	AverageScore int           `json:"average_score"`
	Candidates   int           `json:"candidates_evaluated"`
}

type SeekerMatches struct {
	Job          JobSummary    `json:"job"`
	Matches      []SeekerMatch `json:"matches"`
	TotalMatches int           `json:"total_matches"`
	AverageScore int           `json:"average_score"`
	Candidates   int           `json:"candidates_evaluated"`
}

// MatchingStatistics mixes live counts with a simulated score distribution.
// The distribution is a fixed split of jobs*seekers, not measured data.
type MatchingStatistics struct {
	ActiveJobs            int       `json:"active_jobs"`
	TotalJobseekers       int       `json:"total_jobseekers"`
	ApprovedUsers         int       `json:"approved_users"`
	ApprovedCompanies     int       `json:"approved_companies"`
	TotalMatchesGenerated int       `json:"total_matches_generated"`
	HighScoreMatches      int       `json:"high_score_matches"`
	MediumScoreMatches    int       `json:"medium_score_matches"`
	LowScoreMatches       int       `json:"low_score_matches"`
	AverageMatchingScore  int       `json:"average_matching_score"`
	LastUpdated           time.Time `json:"last_updated"`
}

const simulatedAverageScore = 67

type MatchingUsecase interface {
	MatchJobsForSeeker(ctx context.Context, seekerID int64, loc i18n.Localizer) (JobMatches, error)
	MatchSeekersForJob(ctx context.Context, jobID int64, loc i18n.Localizer) (SeekerMatches, error)
	Statistics(ctx context.Context) (MatchingStatistics, error)
	Invalidate(ctx context.Context)
}

type MatchingOptions struct {
	TopN     int
	CacheTTL time.Duration
}

type Matching struct {
	jobs    repository.JobRepository
	seekers repository.JobseekerRepository
	stats   repository.StatisticsRepository
	cache   Cache
	logger  *zap.Logger
	opts    MatchingOptions

	now func() time.Time
}

func NewMatchingUsecase(
	jobs repository.JobRepository,
	seekers repository.JobseekerRepository,
	stats repository.StatisticsRepository,
	cache Cache,
	logger *zap.Logger,
	opts MatchingOptions,
) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TopN <= 0 {
		opts.TopN = matching.DefaultTopN
	}
	return &Matching{
		jobs:    jobs,
		seekers: seekers,
		stats:   stats,
		cache:   cache,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

func (u *Matching) MatchJobsForSeeker(ctx context.Context, seekerID int64, loc i18n.Localizer) (JobMatches, error) {
	if seekerID <= 0 {
		return JobMatches{}, ErrJobseekerNotFound
	}

	key := MatchJobsCacheKey(seekerID, loc.Locale())
	var cached JobMatches
	if u.getCached(ctx, key, &cached) {
		return cached, nil
	}

	seeker, err := u.seekers.GetByID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, jobseeker.ErrNotFound) {
			return JobMatches{}, ErrJobseekerNotFound
		}
		u.logger.Error("load jobseeker for matching", zap.Int64("jobseeker_id", seekerID), zap.Error(err))
		return JobMatches{}, ErrInternal
	}

	jobs, err := u.jobs.ListActive(ctx)
	if err != nil {
		u.logger.Error("list active jobs for matching", zap.Error(err))
		return JobMatches{}, ErrInternal
	}

	target := ScoringSeeker(seeker)
	scored := matching.ScoreAll(jobs,
		func(p job.Posting) (matching.Match, error) {
			return matching.Compute(ScoringJob(p), target, loc)
		},
		loc,
		func(p job.Posting, err error) {
			u.logger.Warn("job scoring failed",
				zap.Int64("jobseeker_id", seekerID), zap.Int64("job_id", p.ID), zap.Error(err))
		},
	)
	ranking := matching.Rank(scored, u.opts.TopN)

	out := JobMatches{
		Jobseeker: SeekerSummary{
			ID:         seeker.ID,
			Name:       seeker.DisplayName(),
			Skills:     seeker.Skills,
			Location:   seeker.PreferredLocation,
			Experience: seeker.ExperienceYears,
			VisaStatus: seeker.VisaStatus,
		},
		Matches:      make([]JobMatch, 0, len(ranking.Matches)),
		TotalMatches: ranking.Total,
		AverageScore: ranking.Average,
		Candidates:   len(jobs),
	}
	for _, m := range ranking.Matches {
		out.Matches = append(out.Matches, toJobMatch(m))
	}

	u.setCached(ctx, key, out)
	return out, nil
}

func (u *Matching) MatchSeekersForJob(ctx context.Context, jobID int64, loc i18n.Localizer) (SeekerMatches, error) {
	if jobID <= 0 {
		return SeekerMatches{}, ErrJobNotFound
	}

	key := MatchSeekersCacheKey(jobID, loc.Locale())
	var cached SeekerMatches
	if u.getCached(ctx, key, &cached) {
		return cached, nil
	}

	posting, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return SeekerMatches{}, ErrJobNotFound
		}
		u.logger.Error("load job for matching", zap.Int64("job_id", jobID), zap.Error(err))
		return SeekerMatches{}, ErrInternal
	}

	seekers, err := u.seekers.ListApproved(ctx)
	if err != nil {
		u.logger.Error("list approved jobseekers for matching", zap.Error(err))
		return SeekerMatches{}, ErrInternal
	}

	target := ScoringJob(posting)
	scored := matching.ScoreAll(seekers,
		func(p jobseeker.Profile) (matching.Match, error) {
			return matching.Compute(target, ScoringSeeker(p), loc)
		},
		loc,
		func(p jobseeker.Profile, err error) {
			u.logger.Warn("jobseeker scoring failed",
				zap.Int64("job_id", jobID), zap.Int64("jobseeker_id", p.ID), zap.Error(err))
		},
	)
	ranking := matching.Rank(scored, u.opts.TopN)

	out := SeekerMatches{
		Job: JobSummary{
			ID:              posting.ID,
			Title:           posting.Title,
			Company:         posting.CompanyName,
			Location:        posting.Location,
			SkillsRequired:  posting.SkillsRequired,
			ExperienceLevel: posting.ExperienceLevel,
		},
		Matches:      make([]SeekerMatch, 0, len(ranking.Matches)),
		TotalMatches: ranking.Total,
		AverageScore: ranking.Average,
		Candidates:   len(seekers),
	}
	for _, m := range ranking.Matches {
		out.Matches = append(out.Matches, toSeekerMatch(m))
	}

	u.setCached(ctx, key, out)
	return out, nil
}

func (u *Matching) Statistics(ctx context.Context) (MatchingStatistics, error) {
	var cached MatchingStatistics
	if u.getCached(ctx, statisticsKey, &cached) {
		return cached, nil
	}

	var out MatchingStatistics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ActiveJobs, err = u.stats.CountActiveJobs(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalJobseekers, err = u.stats.CountJobseekers(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ApprovedUsers, err = u.stats.CountApprovedUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ApprovedCompanies, err = u.stats.CountApprovedCompanies(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("matching statistics", zap.Error(err))
		return MatchingStatistics{}, ErrInternal
	}

	pairs := out.ActiveJobs * out.TotalJobseekers
	out.TotalMatchesGenerated = pairs
	out.HighScoreMatches = share(pairs, 0.15)
	out.MediumScoreMatches = share(pairs, 0.35)
	out.LowScoreMatches = share(pairs, 0.50)
	out.AverageMatchingScore = simulatedAverageScore
	out.LastUpdated = u.now().UTC()

	u.setCached(ctx, statisticsKey, out)
	return out, nil
}

// Invalidate drops every cached ranking. Called after writes to postings or
// profiles.
func (u *Matching) Invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	for _, p := range matchInvalidationPatterns() {
		if err := u.cache.DeleteByPattern(ctx, p); err != nil {
			u.logger.Warn("matching cache invalidation failed", zap.String("pattern", p), zap.Error(err))
		}
	}
}

func (u *Matching) getCached(ctx context.Context, key string, out any) bool {
	if u.cache == nil || u.opts.CacheTTL <= 0 {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	if err != nil {
		u.logger.Debug("matching cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (u *Matching) setCached(ctx context.Context, key string, v any) {
	if u.cache == nil || u.opts.CacheTTL <= 0 {
		return
	}
	if err := u.cache.SetJSON(ctx, key, v, u.opts.CacheTTL); err != nil {
		u.logger.Debug("matching cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func share(n int, ratio float64) int {
	return int(math.Round(float64(n) * ratio))
}

// ScoringJob projects a stored posting onto the scorer's input.
func ScoringJob(p job.Posting) matching.Job {
	j := matching.Job{
		ID:              p.ID,
		Title:           p.Title,
		Location:        p.Location,
		Skills:          p.SkillsRequired,
		VisaSponsorship: p.VisaSponsorship,
	}
	if p.ExperienceLevel != nil {
		j.ExperienceLevel = *p.ExperienceLevel
	}
	if p.SalaryMin != nil {
		j.SalaryMin = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		j.SalaryMax = *p.SalaryMax
	}
	return j
}

// ScoringSeeker projects a stored profile onto the scorer's input.
func ScoringSeeker(p jobseeker.Profile) matching.Seeker {
	s := matching.Seeker{
		ID:                p.ID,
		Skills:            p.Skills,
		PreferredLocation: p.PreferredLocation,
		ExperienceYears:   p.ExperienceYears,
		VisaStatus:        p.VisaStatus,
	}
	if p.SalaryExpectation != nil {
		s.SalaryExpectation = *p.SalaryExpectation
	}
	return s
}

func toJobMatch(m matching.Scored[job.Posting]) JobMatch {
	p := m.Candidate
	return JobMatch{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Title:           p.Title,
		CompanyName:     p.CompanyName,
		Industry:        p.Industry,
		CompanySize:     p.CompanySize,
		JobType:         string(p.JobType),
		JobCategory:     p.JobCategory,
		Location:        p.Location,
		SalaryMin:       p.SalaryMin,
		SalaryMax:       p.SalaryMax,
		VisaSponsorship: p.VisaSponsorship,
		ExperienceLevel: p.ExperienceLevel,
		SkillsRequired:  p.SkillsRequired,
		MatchingScore:   m.Score,
		MatchReasons:    m.Reasons,
	}
}

func toSeekerMatch(m matching.Scored[jobseeker.Profile]) SeekerMatch {
	p := m.Candidate
	return SeekerMatch{
		ID:                p.ID,
		UserID:            p.UserID,
		Name:              p.DisplayName(),
		Nationality:       p.Nationality,
		VisaStatus:        p.VisaStatus,
		KoreanLevel:       p.KoreanLevel,
		ExperienceYears:   p.ExperienceYears,
		PreferredLocation: p.PreferredLocation,
		Skills:            p.Skills,
		MatchingScore:     m.Score,
		MatchReasons:      m.Reasons,
	}
}
