package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wow-campus/internal/domain/job"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/i18n"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func activeJob(id int64, title, location string, skills []string, level string, visa bool, lo, hi int64) job.Posting {
	p := job.Posting{
		ID:              id,
		CompanyID:       1,
		Title:           title,
		Location:        location,
		SkillsRequired:  skills,
		VisaSponsorship: visa,
		Status:          job.StatusActive,
		CompanyName:     "WOW Tech",
	}
	if level != "" {
		p.ExperienceLevel = ptr(level)
	}
	if lo > 0 {
		p.SalaryMin = ptr(lo)
	}
	if hi > 0 {
		p.SalaryMax = ptr(hi)
	}
	return p
}

func sampleProfile() jobseeker.Profile {
	return jobseeker.Profile{
		ID:                7,
		UserID:            70,
		FirstName:         "Minh",
		Name:              "Nguyen Van Minh",
		VisaStatus:        "E-7",
		ExperienceYears:   ptr(5),
		PreferredLocation: "서울/경기",
		SalaryExpectation: ptr(int64(4500)),
		Skills:            []string{"react", "vue"},
		UserStatus:        "approved",
	}
}

func newMatching(jobs *fakeJobs, seekers *fakeSeekers, stats *fakeStats, cache Cache, logger *zap.Logger) *Matching {
	return NewMatchingUsecase(jobs, seekers, stats, cache, logger, MatchingOptions{TopN: 20, CacheTTL: time.Minute})
}

func TestMatchJobsForSeeker_RanksAndFilters(t *testing.T) {
	jobs := newFakeJobs(
		activeJob(1, "Frontend", "서울", []string{"React", "Node"}, "mid", true, 3000, 4000),
		activeJob(2, "Backend", "부산", []string{"Java"}, "", false, 0, 0),
		activeJob(3, "React Lead", "서울 강남구", []string{"React"}, "mid", true, 4000, 5000),
	)
	closed := activeJob(4, "Closed", "서울", []string{"React"}, "mid", true, 4000, 5000)
	closed.Status = job.StatusClosed
	jobs.items[4] = closed

	uc := newMatching(jobs, newFakeSeekers(sampleProfile()), &fakeStats{}, nil, nil)

	res, err := uc.MatchJobsForSeeker(context.Background(), 7, i18n.New(i18n.KO))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if res.Jobseeker.ID != 7 || res.Jobseeker.Name != "Nguyen Van Minh" {
		t.Fatalf("unexpected jobseeker summary: %+v", res.Jobseeker)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	if res.Matches[0].ID != 3 || res.Matches[0].MatchingScore != 100 {
		t.Fatalf("expected job 3 first with 100, got %+v", res.Matches[0])
	}
	if res.Matches[1].ID != 1 || res.Matches[1].MatchingScore != 78 {
		t.Fatalf("expected job 1 second with 78, got %+v", res.Matches[1])
	}
	if res.TotalMatches != 2 || res.AverageScore != 89 {
		t.Fatalf("expected total 2 avg 89, got %d/%d", res.TotalMatches, res.AverageScore)
	}
	if res.Candidates != 3 {
		t.Fatalf("expected 3 active candidates, got %d", res.Candidates)
	}
	if len(res.Matches[1].MatchReasons) == 0 || !strings.Contains(res.Matches[1].MatchReasons[0], "React") {
		t.Fatalf("expected skills reason first, got %v", res.Matches[1].MatchReasons)
	}
}

func TestMatchJobsForSeeker_NotFoundAndFailure(t *testing.T) {
	uc := newMatching(newFakeJobs(), newFakeSeekers(), &fakeStats{}, nil, nil)
	if _, err := uc.MatchJobsForSeeker(context.Background(), 99, i18n.Localizer{}); !errors.Is(err, ErrJobseekerNotFound) {
		t.Fatalf("expected ErrJobseekerNotFound, got %v", err)
	}

	jobs := newFakeJobs()
	jobs.err = errDB
	uc = newMatching(jobs, newFakeSeekers(sampleProfile()), &fakeStats{}, nil, nil)
	if _, err := uc.MatchJobsForSeeker(context.Background(), 7, i18n.Localizer{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestMatchJobsForSeeker_NoActiveJobs(t *testing.T) {
	uc := newMatching(newFakeJobs(), newFakeSeekers(sampleProfile()), &fakeStats{}, nil, nil)

	res, err := uc.MatchJobsForSeeker(context.Background(), 7, i18n.Localizer{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Candidates != 0 || res.TotalMatches != 0 || res.AverageScore != 0 || res.Matches == nil {
		t.Fatalf("expected empty non-nil result, got %+v", res)
	}
}

func TestMatchJobsForSeeker_IsolatesBadCandidate(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	jobs := newFakeJobs(
		activeJob(1, "Frontend", "서울", []string{"React", "Node"}, "mid", true, 3000, 4000),
		activeJob(2, "Broken", "서울", []string{"React"}, "mid", true, 5000, 4000),
	)
	uc := newMatching(jobs, newFakeSeekers(sampleProfile()), &fakeStats{}, nil, zap.New(core))

	res, err := uc.MatchJobsForSeeker(context.Background(), 7, i18n.Localizer{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Matches) != 1 || res.Matches[0].ID != 1 {
		t.Fatalf("expected only job 1 to match, got %+v", res.Matches)
	}
	if logs.FilterMessage("job scoring failed").Len() != 1 {
		t.Fatalf("expected one scoring failure logged, got %d", logs.Len())
	}
}

func TestMatchJobsForSeeker_TruncatesKeepingTotal(t *testing.T) {
	jobs := newFakeJobs()
	for i := int64(1); i <= 25; i++ {
		jobs.items[i] = activeJob(i, "Same", "서울", []string{"React"}, "mid", true, 4000, 5000)
	}
	uc := newMatching(jobs, newFakeSeekers(sampleProfile()), &fakeStats{}, nil, nil)

	res, err := uc.MatchJobsForSeeker(context.Background(), 7, i18n.Localizer{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Matches) != 20 || res.TotalMatches != 25 {
		t.Fatalf("expected 20 of 25, got %d of %d", len(res.Matches), res.TotalMatches)
	}
	for i, m := range res.Matches {
		if m.ID != int64(i+1) {
			t.Fatalf("ties must keep input order: position %d has job %d", i, m.ID)
		}
	}
}

func TestMatchSeekersForJob(t *testing.T) {
	pending := sampleProfile()
	pending.ID, pending.UserID, pending.UserStatus = 8, 80, "pending"

	weak := sampleProfile()
	weak.ID, weak.UserID = 9, 90
	weak.Skills = []string{"Photoshop"}
	weak.PreferredLocation = "부산"
	weak.ExperienceYears = ptr(0)

	jobs := newFakeJobs(activeJob(1, "Frontend", "서울", []string{"React", "Node"}, "mid", true, 3000, 4000))
	uc := newMatching(jobs, newFakeSeekers(sampleProfile(), pending, weak), &fakeStats{}, nil, nil)

	res, err := uc.MatchSeekersForJob(context.Background(), 1, i18n.New(i18n.EN))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Job.ID != 1 || res.Job.Company != "WOW Tech" {
		t.Fatalf("unexpected job summary: %+v", res.Job)
	}
	if res.Candidates != 2 {
		t.Fatalf("pending profiles must not be candidates, got %d", res.Candidates)
	}
	if len(res.Matches) != 2 || res.Matches[0].ID != 7 || res.Matches[0].MatchingScore != 78 {
		t.Fatalf("unexpected matches: %+v", res.Matches)
	}
	if res.Matches[1].MatchingScore >= res.Matches[0].MatchingScore {
		t.Fatalf("matches must be ordered by score")
	}
	if !strings.HasPrefix(res.Matches[0].MatchReasons[0], "Required skills matched") {
		t.Fatalf("expected English reasons, got %v", res.Matches[0].MatchReasons)
	}

	if _, err := uc.MatchSeekersForJob(context.Background(), 42, i18n.Localizer{}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestMatching_CachePerLocaleAndInvalidate(t *testing.T) {
	cache := newMemCache()
	jobs := newFakeJobs(activeJob(1, "Frontend", "서울", []string{"React", "Node"}, "mid", true, 3000, 4000))
	uc := newMatching(jobs, newFakeSeekers(sampleProfile()), &fakeStats{}, cache, nil)
	ctx := context.Background()

	if _, err := uc.MatchJobsForSeeker(ctx, 7, i18n.New(i18n.KO)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := cache.data[MatchJobsCacheKey(7, i18n.KO)]; !ok {
		t.Fatalf("expected ko result cached")
	}

	jobs.items[2] = activeJob(2, "New", "서울", []string{"React"}, "mid", true, 4000, 5000)
	res, err := uc.MatchJobsForSeeker(ctx, 7, i18n.New(i18n.KO))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.TotalMatches != 1 {
		t.Fatalf("expected cached result with 1 match, got %d", res.TotalMatches)
	}

	uc.Invalidate(ctx)
	res, err = uc.MatchJobsForSeeker(ctx, 7, i18n.New(i18n.KO))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.TotalMatches != 2 {
		t.Fatalf("expected fresh result with 2 matches, got %d", res.TotalMatches)
	}
	if _, ok := cache.data[MatchJobsCacheKey(7, i18n.EN)]; ok {
		t.Fatalf("en key must not be filled by a ko request")
	}
}

func TestMatching_CacheErrorFallsBackToRepository(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("redis down")
	jobs := newFakeJobs(activeJob(1, "Frontend", "서울", []string{"React", "Node"}, "mid", true, 3000, 4000))
	uc := newMatching(jobs, newFakeSeekers(sampleProfile()), &fakeStats{}, cache, nil)

	res, err := uc.MatchJobsForSeeker(context.Background(), 7, i18n.Localizer{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.TotalMatches != 1 {
		t.Fatalf("expected 1 match, got %d", res.TotalMatches)
	}
}

func TestMatching_Statistics(t *testing.T) {
	stats := &fakeStats{activeJobs: 3, seekers: 10, approvedUsers: 12, approvedCompanies: 2}
	uc := newMatching(newFakeJobs(), newFakeSeekers(), stats, nil, nil)
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	got, err := uc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := MatchingStatistics{
		ActiveJobs:            3,
		TotalJobseekers:       10,
		ApprovedUsers:         12,
		ApprovedCompanies:     2,
		TotalMatchesGenerated: 30,
		HighScoreMatches:      5,
		MediumScoreMatches:    11,
		LowScoreMatches:       15,
		AverageMatchingScore:  67,
		LastUpdated:           fixed,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	stats.err = errDB
	if _, err := uc.Statistics(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
