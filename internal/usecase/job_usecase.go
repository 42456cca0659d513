package usecase

import (
	"context"
	"errors"

	"wow-campus/internal/domain/company"
	"wow-campus/internal/domain/job"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"
	"wow-campus/internal/search"

	"go.uber.org/zap"
)

type JobDetail struct {
	job.Posting
	HasApplied bool
}

type JobUsecase interface {
	Search(ctx context.Context, f job.SearchFilter, p PageRequest) (Page[job.Posting], error)
	Get(ctx context.Context, id int64, viewer *Actor) (JobDetail, error)
	Create(ctx context.Context, actor Actor, in job.Posting) (job.Posting, error)
	Update(ctx context.Context, actor Actor, id int64, p job.Patch) (job.Posting, error)
	Close(ctx context.Context, actor Actor, id int64) error
	ListByCompany(ctx context.Context, companyID int64, status string, p PageRequest) (Page[job.Posting], error)
}

type Jobs struct {
	jobs         repository.JobRepository
	companies    repository.CompanyRepository
	seekers      repository.JobseekerRepository
	applications repository.ApplicationRepository
	notifier     Notifier
	invalidator  Invalidator
	logger       *zap.Logger
}

func NewJobUsecase(
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	seekers repository.JobseekerRepository,
	applications repository.ApplicationRepository,
	notifier Notifier,
	invalidator Invalidator,
	logger *zap.Logger,
) *Jobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobs{
		jobs:         jobs,
		companies:    companies,
		seekers:      seekers,
		applications: applications,
		notifier:     notifier,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// Search lists active postings only.
func (u *Jobs) Search(ctx context.Context, f job.SearchFilter, p PageRequest) (Page[job.Posting], error) {
	if f.SalaryMin != nil && f.SalaryMax != nil && *f.SalaryMin > *f.SalaryMax {
		return Page[job.Posting]{}, invalid("salary_min must not exceed salary_max")
	}
	page, limit, offset := p.normalize()
	f.Statuses = []job.Status{job.StatusActive}
	f.CompanyID = 0
	f.Limit, f.Offset = limit, offset
	if f.Keyword != "" {
		f.KeywordAny = search.ExpandQuery(f.Keyword)
	}

	items, total, err := u.jobs.Search(ctx, f)
	if err != nil {
		u.logger.Error("search job postings", zap.Error(err))
		return Page[job.Posting]{}, ErrInternal
	}
	return newPage(items, total, page, limit), nil
}

// Get returns an active posting and counts the view. Owners and admins can
// also read their non-active postings.
func (u *Jobs) Get(ctx context.Context, id int64, viewer *Actor) (JobDetail, error) {
	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return JobDetail{}, ErrJobNotFound
		}
		return JobDetail{}, ErrInternal
	}
	if p.Status != job.StatusActive && !u.canManage(viewer, p) {
		return JobDetail{}, ErrJobNotFound
	}

	if err := u.jobs.IncrementViews(ctx, id); err != nil {
		u.logger.Warn("increment job views", zap.Int64("job_id", id), zap.Error(err))
	} else {
		p.ViewsCount++
	}

	out := JobDetail{Posting: p}
	if viewer != nil && viewer.Type == user.TypeJobseeker {
		out.HasApplied = u.hasApplied(ctx, viewer.UserID, id)
	}
	return out, nil
}

func (u *Jobs) hasApplied(ctx context.Context, userID, jobID int64) bool {
	seeker, err := u.seekers.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, jobseeker.ErrNotFound) {
			u.logger.Warn("load jobseeker for has_applied", zap.Int64("user_id", userID), zap.Error(err))
		}
		return false
	}
	ok, err := u.applications.Exists(ctx, jobID, seeker.ID)
	if err != nil {
		u.logger.Warn("check application", zap.Int64("job_id", jobID), zap.Error(err))
		return false
	}
	return ok
}

func (u *Jobs) Create(ctx context.Context, actor Actor, in job.Posting) (job.Posting, error) {
	switch actor.Type {
	case user.TypeCompany:
		c, err := u.companies.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, company.ErrNotFound) {
				return job.Posting{}, ErrCompanyNotFound
			}
			return job.Posting{}, ErrInternal
		}
		in.CompanyID = c.ID
	case user.TypeAdmin:
		if in.CompanyID <= 0 {
			return job.Posting{}, invalid("company_id is required for admin")
		}
		if _, err := u.companies.GetByID(ctx, in.CompanyID); err != nil {
			if errors.Is(err, company.ErrNotFound) {
				return job.Posting{}, ErrCompanyNotFound
			}
			return job.Posting{}, ErrInternal
		}
	default:
		return job.Posting{}, ErrForbidden
	}

	if err := validatePosting(&in); err != nil {
		return job.Posting{}, err
	}

	created, err := u.jobs.Create(ctx, in)
	if err != nil {
		u.logger.Error("create job posting", zap.Int64("company_id", in.CompanyID), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.afterWrite(ctx)
	if created.Status == job.StatusActive && u.notifier != nil {
		u.notifier.Publish(EventJobPosted, created.ID, created.Title)
	}
	return created, nil
}

func (u *Jobs) Update(ctx context.Context, actor Actor, id int64, p job.Patch) (job.Posting, error) {
	existing, err := u.load(ctx, id)
	if err != nil {
		return job.Posting{}, err
	}
	if !u.canManage(&actor, existing) {
		return job.Posting{}, ErrForbidden
	}
	if err := validatePatch(existing, &p); err != nil {
		return job.Posting{}, err
	}

	updated, err := u.jobs.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		u.logger.Error("update job posting", zap.Int64("job_id", id), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.afterWrite(ctx)
	if existing.Status != job.StatusActive && updated.Status == job.StatusActive && u.notifier != nil {
		u.notifier.Publish(EventJobPosted, updated.ID, updated.Title)
	}
	return updated, nil
}

// Close is the soft delete: the posting stays but stops matching.
func (u *Jobs) Close(ctx context.Context, actor Actor, id int64) error {
	existing, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if !u.canManage(&actor, existing) {
		return ErrForbidden
	}
	if err := u.jobs.SetStatus(ctx, id, job.StatusClosed); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrJobNotFound
		}
		u.logger.Error("close job posting", zap.Int64("job_id", id), zap.Error(err))
		return ErrInternal
	}
	u.afterWrite(ctx)
	return nil
}

// ListByCompany filters by status; "all" or empty means every status, and
// anything unknown falls back to active.
func (u *Jobs) ListByCompany(ctx context.Context, companyID int64, status string, p PageRequest) (Page[job.Posting], error) {
	if companyID <= 0 {
		return Page[job.Posting]{}, ErrCompanyNotFound
	}
	page, limit, offset := p.normalize()

	f := job.SearchFilter{CompanyID: companyID, Limit: limit, Offset: offset}
	switch s := trim(status); s {
	case "", "all":
	default:
		st, ok := job.ParseStatus(s)
		if !ok {
			st = job.StatusActive
		}
		f.Statuses = []job.Status{st}
	}

	items, total, err := u.jobs.Search(ctx, f)
	if err != nil {
		u.logger.Error("list company job postings", zap.Int64("company_id", companyID), zap.Error(err))
		return Page[job.Posting]{}, ErrInternal
	}
	return newPage(items, total, page, limit), nil
}

func (u *Jobs) load(ctx context.Context, id int64) (job.Posting, error) {
	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

func (u *Jobs) canManage(actor *Actor, p job.Posting) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.Type == user.TypeCompany && actor.UserID == p.CompanyUserID
}

func (u *Jobs) afterWrite(ctx context.Context) {
	if u.invalidator != nil {
		u.invalidator.Invalidate(ctx)
	}
}

func validatePosting(p *job.Posting) error {
	p.Title = trim(p.Title)
	p.Description = trim(p.Description)
	p.JobCategory = trim(p.JobCategory)
	p.Location = trim(p.Location)
	if p.Title == "" || p.Description == "" || p.JobType == "" || p.JobCategory == "" || p.Location == "" {
		return invalid("Title, description, job_type, job_category, and location are required")
	}
	if _, ok := job.ParseType(string(p.JobType)); !ok {
		return invalid("invalid job_type")
	}

	switch p.Status {
	case "":
		p.Status = job.StatusActive
	case job.StatusDraft, job.StatusActive:
	default:
		return invalid("status must be draft or active")
	}

	if p.ExperienceLevel != nil && trim(*p.ExperienceLevel) != "" && !job.ValidExperienceLevel(*p.ExperienceLevel) {
		return invalid("invalid experience_level")
	}
	if err := validateSalary(p.SalaryMin, p.SalaryMax); err != nil {
		return err
	}
	p.SkillsRequired = repository.NormalizeSkills(p.SkillsRequired)
	return nil
}

func validatePatch(existing job.Posting, p *job.Patch) error {
	for _, f := range []*string{p.Title, p.Description, p.JobCategory, p.Location} {
		if f != nil && trim(*f) == "" {
			return invalid("Title, description, job_type, job_category, and location are required")
		}
	}
	if p.JobType != nil {
		if _, ok := job.ParseType(string(*p.JobType)); !ok {
			return invalid("invalid job_type")
		}
	}
	if p.Status != nil {
		if _, ok := job.ParseStatus(string(*p.Status)); !ok {
			return invalid("invalid status")
		}
	}
	if p.ExperienceLevel != nil && trim(*p.ExperienceLevel) != "" && !job.ValidExperienceLevel(*p.ExperienceLevel) {
		return invalid("invalid experience_level")
	}

	lo, hi := existing.SalaryMin, existing.SalaryMax
	if p.SalaryMin != nil {
		lo = p.SalaryMin
	}
	if p.SalaryMax != nil {
		hi = p.SalaryMax
	}
	if err := validateSalary(lo, hi); err != nil {
		return err
	}

	if p.SkillsRequired != nil {
		norm := repository.NormalizeSkills(*p.SkillsRequired)
		p.SkillsRequired = &norm
	}
	return nil
}

func validateSalary(lo, hi *int64) error {
	if (lo != nil && *lo < 0) || (hi != nil && *hi < 0) {
		return invalid("salary must not be negative")
	}
	if lo != nil && hi != nil && *lo > 0 && *hi > 0 && *lo > *hi {
		return invalid("salary_min must not exceed salary_max")
	}
	return nil
}
