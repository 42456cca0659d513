package usecase

import (
	"context"
	"errors"

	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/domain/permission"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"

	"go.uber.org/zap"
)

type JobseekerUsecase interface {
	Search(ctx context.Context, actor Actor, f jobseeker.SearchFilter, p PageRequest) (Page[jobseeker.Profile], error)
	Get(ctx context.Context, actor Actor, id int64) (jobseeker.Profile, error)
	Update(ctx context.Context, actor Actor, id int64, p jobseeker.Patch) (jobseeker.Profile, error)
}

type Jobseekers struct {
	seekers     repository.JobseekerRepository
	invalidator Invalidator
	logger      *zap.Logger
}

func NewJobseekerUsecase(seekers repository.JobseekerRepository, invalidator Invalidator, logger *zap.Logger) *Jobseekers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobseekers{seekers: seekers, invalidator: invalidator, logger: logger}
}

func (u *Jobseekers) Search(ctx context.Context, actor Actor, f jobseeker.SearchFilter, p PageRequest) (Page[jobseeker.Profile], error) {
	if !permission.CanViewJobseekerData(permission.RoleOf(actor.Type)) {
		return Page[jobseeker.Profile]{}, ErrForbidden
	}
	page, limit, offset := p.normalize()
	f.Limit, f.Offset = limit, offset

	items, total, err := u.seekers.Search(ctx, f)
	if err != nil {
		u.logger.Error("search jobseekers", zap.Error(err))
		return Page[jobseeker.Profile]{}, ErrInternal
	}
	return newPage(items, total, page, limit), nil
}

func (u *Jobseekers) Get(ctx context.Context, actor Actor, id int64) (jobseeker.Profile, error) {
	if !permission.CanViewJobseekerData(permission.RoleOf(actor.Type)) {
		return jobseeker.Profile{}, ErrForbidden
	}
	return u.load(ctx, id)
}

// Update lets a jobseeker edit their own profile; admins may edit any.
func (u *Jobseekers) Update(ctx context.Context, actor Actor, id int64, p jobseeker.Patch) (jobseeker.Profile, error) {
	existing, err := u.load(ctx, id)
	if err != nil {
		return jobseeker.Profile{}, err
	}
	if !actor.IsAdmin() && !(actor.Type == user.TypeJobseeker && actor.UserID == existing.UserID) {
		return jobseeker.Profile{}, ErrForbidden
	}

	if p.FirstName != nil && trim(*p.FirstName) == "" {
		return jobseeker.Profile{}, invalid("First name is required")
	}
	if p.ExperienceYears != nil && *p.ExperienceYears < 0 {
		return jobseeker.Profile{}, invalid("experience_years must not be negative")
	}
	if p.SalaryExpectation != nil && *p.SalaryExpectation < 0 {
		return jobseeker.Profile{}, invalid("salary_expectation must not be negative")
	}
	if p.Skills != nil {
		norm := repository.NormalizeSkills(*p.Skills)
		p.Skills = &norm
	}

	updated, err := u.seekers.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, jobseeker.ErrNotFound) {
			return jobseeker.Profile{}, ErrJobseekerNotFound
		}
		u.logger.Error("update jobseeker", zap.Int64("jobseeker_id", id), zap.Error(err))
		return jobseeker.Profile{}, ErrInternal
	}

	if u.invalidator != nil {
		u.invalidator.Invalidate(ctx)
	}
	return updated, nil
}

func (u *Jobseekers) load(ctx context.Context, id int64) (jobseeker.Profile, error) {
	p, err := u.seekers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, jobseeker.ErrNotFound) {
			return jobseeker.Profile{}, ErrJobseekerNotFound
		}
		return jobseeker.Profile{}, ErrInternal
	}
	return p, nil
}
