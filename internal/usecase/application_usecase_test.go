package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"wow-campus/internal/domain/application"
	"wow-campus/internal/domain/job"
	"wow-campus/internal/domain/user"
)

var (
	seekerActor  = Actor{UserID: 70, Type: user.TypeJobseeker}
	companyActor = Actor{UserID: 10, Type: user.TypeCompany}
	adminActor   = Actor{UserID: 1, Type: user.TypeAdmin}
)

func TestApply(t *testing.T) {
	jobs := newFakeJobs(activeJob(1, "Frontend", "서울", nil, "", false, 0, 0))
	paused := activeJob(2, "Paused", "서울", nil, "", false, 0, 0)
	paused.Status = job.StatusPaused
	jobs.items[2] = paused

	apps := newFakeApps()
	uc := NewApplicationUsecase(apps, jobs, newFakeSeekers(sampleProfile()), nil, nil)
	ctx := context.Background()

	a, err := uc.Apply(ctx, seekerActor, ApplyInput{JobPostingID: 1, CoverLetter: "  hello "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != application.StatusSubmitted || a.JobseekerID != 7 || a.CoverLetter != "hello" {
		t.Fatalf("unexpected application: %+v", a)
	}

	if _, err := uc.Apply(ctx, seekerActor, ApplyInput{JobPostingID: 1}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate, got %v", err)
	}
	if _, err := uc.Apply(ctx, seekerActor, ApplyInput{JobPostingID: 2}); !errors.Is(err, ErrJobNotOpen) {
		t.Fatalf("expected ErrJobNotOpen for paused posting, got %v", err)
	}
	if _, err := uc.Apply(ctx, seekerActor, ApplyInput{JobPostingID: 404}); !errors.Is(err, ErrJobNotOpen) {
		t.Fatalf("expected ErrJobNotOpen for missing posting, got %v", err)
	}
	if _, err := uc.Apply(ctx, companyActor, ApplyInput{JobPostingID: 1}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for company, got %v", err)
	}
	if _, err := uc.Apply(ctx, Actor{UserID: 555, Type: user.TypeJobseeker}, ApplyInput{JobPostingID: 1}); !errors.Is(err, ErrNoJobseekerProfile) {
		t.Fatalf("expected ErrNoJobseekerProfile, got %v", err)
	}
	if _, err := uc.Apply(ctx, seekerActor, ApplyInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func existingApplication(status application.Status) application.Application {
	return application.Application{
		ID:            5,
		JobPostingID:  1,
		JobseekerID:   7,
		Status:        status,
		JobTitle:      "Frontend",
		CompanyUserID: companyActor.UserID,
		SeekerUserID:  seekerActor.UserID,
	}
}

func TestUpdateStatus_ReviewerFlow(t *testing.T) {
	apps := newFakeApps(existingApplication(application.StatusSubmitted))
	notifier := &recordingNotifier{}
	uc := NewApplicationUsecase(apps, newFakeJobs(), newFakeSeekers(), notifier, nil)
	ctx := context.Background()

	got, err := uc.UpdateStatus(ctx, companyActor, 5, ReviewInput{Status: "reviewed", Feedback: ptr("good")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != application.StatusReviewed || *got.ReviewedBy != companyActor.UserID {
		t.Fatalf("unexpected application: %+v", got)
	}

	if _, err := uc.UpdateStatus(ctx, companyActor, 5, ReviewInput{Status: "interview_scheduled"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected interview_date requirement, got %v", err)
	}
	when := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	if _, err := uc.UpdateStatus(ctx, companyActor, 5, ReviewInput{Status: "interview_scheduled", InterviewDate: &when}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, companyActor, 5, ReviewInput{Status: "accepted"}); !errors.Is(err, application.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for skipping ahead, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, adminActor, 5, ReviewInput{Status: "rejected", RejectionReason: ptr("filled")}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, adminActor, 5, ReviewInput{Status: "reviewed"}); !errors.Is(err, application.ErrInvalidTransition) {
		t.Fatalf("rejected is terminal, got %v", err)
	}

	if len(notifier.events) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifier.events))
	}
	if notifier.events[0].kind != EventApplicationUpdated || notifier.events[0].title != "Frontend" {
		t.Fatalf("unexpected event: %+v", notifier.events[0])
	}
}

func TestUpdateStatus_Access(t *testing.T) {
	ctx := context.Background()

	apps := newFakeApps(existingApplication(application.StatusReviewed))
	uc := NewApplicationUsecase(apps, newFakeJobs(), newFakeSeekers(), nil, nil)

	other := Actor{UserID: 11, Type: user.TypeCompany}
	if _, err := uc.UpdateStatus(ctx, other, 5, ReviewInput{Status: "rejected"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign company, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, seekerActor, 5, ReviewInput{Status: "offered"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("applicant cannot review, got %v", err)
	}

	got, err := uc.UpdateStatus(ctx, seekerActor, 5, ReviewInput{Status: "withdrawn"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != application.StatusWithdrawn {
		t.Fatalf("expected withdrawn, got %s", got.Status)
	}
	if _, err := uc.UpdateStatus(ctx, seekerActor, 5, ReviewInput{Status: "withdrawn"}); !errors.Is(err, application.ErrInvalidTransition) {
		t.Fatalf("withdrawn is terminal, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, adminActor, 404, ReviewInput{Status: "reviewed"}); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationsList_ScopesByCaller(t *testing.T) {
	ctx := context.Background()
	apps := newFakeApps(existingApplication(application.StatusSubmitted))
	uc := NewApplicationUsecase(apps, newFakeJobs(), newFakeSeekers(sampleProfile()), nil, nil)

	if _, err := uc.List(ctx, seekerActor, "", PageRequest{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if apps.last.JobseekerID != 7 || apps.last.CompanyUserID != 0 {
		t.Fatalf("jobseeker scope not applied: %+v", apps.last)
	}

	if _, err := uc.List(ctx, companyActor, "submitted", PageRequest{Page: 2, Limit: 5}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if apps.last.CompanyUserID != companyActor.UserID || apps.last.Status != application.StatusSubmitted || apps.last.Offset != 5 {
		t.Fatalf("company scope not applied: %+v", apps.last)
	}

	if _, err := uc.List(ctx, companyActor, "bogus", PageRequest{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.List(ctx, Actor{UserID: 3, Type: user.TypeAgent}, "", PageRequest{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for agent, got %v", err)
	}

	if _, err := uc.Get(ctx, Actor{UserID: 71, Type: user.TypeJobseeker}, 5); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other jobseeker, got %v", err)
	}
	if _, err := uc.Get(ctx, companyActor, 5); err != nil {
		t.Fatalf("owner company should read application: %v", err)
	}
}
