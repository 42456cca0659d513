package usecase

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"wow-campus/internal/domain/application"
	"wow-campus/internal/domain/job"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"

	"go.uber.org/zap"
)

const maxCoverLetterLen = 5000

var ErrNoJobseekerProfile = errors.New("jobseeker profile missing")

type ApplyInput struct {
	JobPostingID int64
	CoverLetter  string
}

type ReviewInput struct {
	Status          string
	InterviewDate   *time.Time
	Feedback        *string
	RejectionReason *string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor Actor, in ApplyInput) (application.Application, error)
	List(ctx context.Context, actor Actor, status string, p PageRequest) (Page[application.Application], error)
	Get(ctx context.Context, actor Actor, id int64) (application.Application, error)
	UpdateStatus(ctx context.Context, actor Actor, id int64, in ReviewInput) (application.Application, error)
}

type Applications struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	seekers      repository.JobseekerRepository
	notifier     Notifier
	logger       *zap.Logger
}

func NewApplicationUsecase(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	seekers repository.JobseekerRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Applications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applications{applications: applications, jobs: jobs, seekers: seekers, notifier: notifier, logger: logger}
}

func (u *Applications) Apply(ctx context.Context, actor Actor, in ApplyInput) (application.Application, error) {
	if actor.Type != user.TypeJobseeker {
		return application.Application{}, ErrForbidden
	}
	if in.JobPostingID <= 0 {
		return application.Application{}, invalid("지원할 공고를 선택해주세요.")
	}
	if utf8.RuneCountInString(in.CoverLetter) > maxCoverLetterLen {
		return application.Application{}, invalid("cover letter is too long")
	}

	seeker, err := u.seekers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, jobseeker.ErrNotFound) {
			return application.Application{}, ErrNoJobseekerProfile
		}
		return application.Application{}, ErrInternal
	}

	posting, err := u.jobs.GetByID(ctx, in.JobPostingID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrJobNotOpen
		}
		return application.Application{}, ErrInternal
	}
	if posting.Status != job.StatusActive {
		return application.Application{}, ErrJobNotOpen
	}

	created, err := u.applications.Create(ctx, posting.ID, seeker.ID, trim(in.CoverLetter))
	if err != nil {
		if errors.Is(err, application.ErrAlreadyApplied) {
			return application.Application{}, ErrConflict
		}
		u.logger.Error("create application",
			zap.Int64("job_id", posting.ID), zap.Int64("jobseeker_id", seeker.ID), zap.Error(err))
		return application.Application{}, ErrInternal
	}
	return created, nil
}

// List scopes by caller: jobseekers see their own, companies see those to
// their postings, admins see all.
func (u *Applications) List(ctx context.Context, actor Actor, status string, p PageRequest) (Page[application.Application], error) {
	page, limit, offset := p.normalize()
	f := application.ListFilter{Limit: limit, Offset: offset}

	if s := trim(status); s != "" && s != "all" {
		st, err := application.ParseStatus(s)
		if err != nil {
			return Page[application.Application]{}, invalid("invalid status")
		}
		f.Status = st
	}

	switch actor.Type {
	case user.TypeAdmin:
	case user.TypeCompany:
		f.CompanyUserID = actor.UserID
	case user.TypeJobseeker:
		seeker, err := u.seekers.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, jobseeker.ErrNotFound) {
				return newPage[application.Application](nil, 0, page, limit), nil
			}
			return Page[application.Application]{}, ErrInternal
		}
		f.JobseekerID = seeker.ID
	default:
		return Page[application.Application]{}, ErrForbidden
	}

	items, total, err := u.applications.List(ctx, f)
	if err != nil {
		u.logger.Error("list applications", zap.Int64("user_id", actor.UserID), zap.Error(err))
		return Page[application.Application]{}, ErrInternal
	}
	return newPage(items, total, page, limit), nil
}

func (u *Applications) Get(ctx context.Context, actor Actor, id int64) (application.Application, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if !canView(actor, a) {
		return application.Application{}, ErrForbidden
	}
	return a, nil
}

// UpdateStatus applies a reviewer decision or an applicant withdrawal. Only
// moves allowed by the status graph are accepted.
func (u *Applications) UpdateStatus(ctx context.Context, actor Actor, id int64, in ReviewInput) (application.Application, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	to, err := application.ParseStatus(in.Status)
	if err != nil {
		return application.Application{}, invalid("invalid status")
	}

	isOwner := actor.Type == user.TypeJobseeker && actor.UserID == a.SeekerUserID
	isReviewer := actor.IsAdmin() || (actor.Type == user.TypeCompany && actor.UserID == a.CompanyUserID)

	var updated application.Application
	switch {
	case to == application.StatusWithdrawn && isOwner:
		if !application.CanWithdraw(a.Status) {
			return application.Application{}, application.ErrInvalidTransition
		}
		updated, err = u.applications.SetStatus(ctx, id, to)
	case isReviewer:
		if !application.IsTransitionAllowed(a.Status, to) {
			return application.Application{}, application.ErrInvalidTransition
		}
		if to == application.StatusInterviewScheduled && in.InterviewDate == nil {
			return application.Application{}, invalid("interview_date is required")
		}
		updated, err = u.applications.ApplyReview(ctx, id, application.Review{
			Status:          to,
			InterviewDate:   in.InterviewDate,
			Feedback:        in.Feedback,
			RejectionReason: in.RejectionReason,
			ReviewedBy:      actor.UserID,
		})
	default:
		return application.Application{}, ErrForbidden
	}
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		u.logger.Error("update application status", zap.Int64("application_id", id), zap.Error(err))
		return application.Application{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.Publish(EventApplicationUpdated, updated.ID, updated.JobTitle)
	}
	return updated, nil
}

func (u *Applications) load(ctx context.Context, id int64) (application.Application, error) {
	a, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}

func canView(actor Actor, a application.Application) bool {
	switch actor.Type {
	case user.TypeAdmin:
		return true
	case user.TypeCompany:
		return actor.UserID == a.CompanyUserID
	case user.TypeJobseeker:
		return actor.UserID == a.SeekerUserID
	}
	return false
}
