package usecase

import (
	"context"
	"errors"
	"testing"

	"wow-campus/internal/domain/company"
	"wow-campus/internal/domain/job"
	"wow-campus/internal/domain/user"
)

func newJobUsecase(jobs *fakeJobs, notifier Notifier, inv Invalidator) *Jobs {
	companies := newFakeCompanies(company.Company{ID: 1, UserID: companyActor.UserID, CompanyName: "WOW Tech"})
	return NewJobUsecase(jobs, companies, newFakeSeekers(sampleProfile()), newFakeApps(), notifier, inv, nil)
}

func draftInput() job.Posting {
	return job.Posting{
		Title:          " Frontend Developer ",
		Description:    "Build the web app",
		JobType:        job.TypeFullTime,
		JobCategory:    "IT",
		Location:       "서울",
		SkillsRequired: []string{" React", "react", "", "Node"},
	}
}

func TestJobsCreate_CompanyPublishesAndInvalidates(t *testing.T) {
	jobs := newFakeJobs()
	notifier := &recordingNotifier{}
	inv := &countingInvalidator{}
	uc := newJobUsecase(jobs, notifier, inv)

	created, err := uc.Create(context.Background(), companyActor, draftInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.CompanyID != 1 || created.Status != job.StatusActive || created.Title != "Frontend Developer" {
		t.Fatalf("unexpected posting: %+v", created)
	}
	if len(created.SkillsRequired) != 2 {
		t.Fatalf("expected normalized skills, got %v", created.SkillsRequired)
	}
	if inv.n != 1 {
		t.Fatalf("expected matching cache invalidation")
	}
	if len(notifier.events) != 1 || notifier.events[0].kind != EventJobPosted {
		t.Fatalf("expected job_posted event, got %+v", notifier.events)
	}
}

func TestJobsCreate_Validation(t *testing.T) {
	uc := newJobUsecase(newFakeJobs(), nil, nil)
	ctx := context.Background()

	in := draftInput()
	in.Location = ""
	if _, err := uc.Create(ctx, companyActor, in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	in = draftInput()
	in.SalaryMin, in.SalaryMax = ptr(int64(5000)), ptr(int64(3000))
	if _, err := uc.Create(ctx, companyActor, in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted salary, got %v", err)
	}

	in = draftInput()
	in.Status = job.StatusClosed
	if _, err := uc.Create(ctx, companyActor, in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for closed status, got %v", err)
	}

	if _, err := uc.Create(ctx, adminActor, draftInput()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("admin must name a company, got %v", err)
	}
	if _, err := uc.Create(ctx, seekerActor, draftInput()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for jobseeker, got %v", err)
	}
}

func TestJobsCreate_DraftIsNotAnnounced(t *testing.T) {
	notifier := &recordingNotifier{}
	uc := newJobUsecase(newFakeJobs(), notifier, nil)

	in := draftInput()
	in.Status = job.StatusDraft
	if _, err := uc.Create(context.Background(), companyActor, in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("draft postings must not be broadcast")
	}
}

func TestJobsUpdateAndClose_Ownership(t *testing.T) {
	p := activeJob(1, "Frontend", "서울", nil, "", false, 0, 0)
	p.CompanyUserID = companyActor.UserID
	jobs := newFakeJobs(p)
	inv := &countingInvalidator{}
	uc := newJobUsecase(jobs, nil, inv)
	ctx := context.Background()

	stranger := Actor{UserID: 99, Type: user.TypeCompany}
	if _, err := uc.Update(ctx, stranger, 1, job.Patch{Title: ptr("x")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, err := uc.Update(ctx, companyActor, 1, job.Patch{Title: ptr("Senior Frontend")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Title != "Senior Frontend" {
		t.Fatalf("expected title updated, got %q", got.Title)
	}
	if _, err := uc.Update(ctx, companyActor, 1, job.Patch{Title: ptr("  ")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}

	if err := uc.Close(ctx, stranger, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.Close(ctx, adminActor, 1); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if jobs.items[1].Status != job.StatusClosed {
		t.Fatalf("expected closed, got %s", jobs.items[1].Status)
	}
	if inv.n != 2 {
		t.Fatalf("expected 2 invalidations, got %d", inv.n)
	}
	if err := uc.Close(ctx, adminActor, 404); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobsGet_VisibilityAndHasApplied(t *testing.T) {
	active := activeJob(1, "Frontend", "서울", nil, "", false, 0, 0)
	draft := activeJob(2, "Draft", "서울", nil, "", false, 0, 0)
	draft.Status = job.StatusDraft
	draft.CompanyUserID = companyActor.UserID
	jobs := newFakeJobs(active, draft)

	companies := newFakeCompanies(company.Company{ID: 1, UserID: companyActor.UserID})
	apps := newFakeApps()
	apps.dupes[[2]int64{1, 7}] = true
	uc := NewJobUsecase(jobs, companies, newFakeSeekers(sampleProfile()), apps, nil, nil, nil)
	ctx := context.Background()

	d, err := uc.Get(ctx, 1, &seekerActor)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !d.HasApplied || d.ViewsCount != 1 {
		t.Fatalf("expected has_applied and a counted view, got %+v", d)
	}

	if _, err := uc.Get(ctx, 2, nil); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("anonymous callers must not see drafts, got %v", err)
	}
	if _, err := uc.Get(ctx, 2, &companyActor); err != nil {
		t.Fatalf("owner should see draft: %v", err)
	}
}

func TestJobsSearch_ForcesActiveAndPaging(t *testing.T) {
	jobs := newFakeJobs(activeJob(1, "Frontend", "서울", nil, "", false, 0, 0))
	uc := newJobUsecase(jobs, nil, nil)

	page, err := uc.Search(context.Background(), job.SearchFilter{CompanyID: 5, Keyword: "front"}, PageRequest{Page: 3, Limit: 500})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	q := jobs.lastQuery
	if len(q.Statuses) != 1 || q.Statuses[0] != job.StatusActive || q.CompanyID != 0 {
		t.Fatalf("search must be limited to active postings: %+v", q)
	}
	if q.Limit != 100 || q.Offset != 200 || page.Page != 3 || page.Limit != 100 {
		t.Fatalf("unexpected paging: query %+v page %+v", q, page)
	}
	if page.TotalPages != 1 {
		t.Fatalf("expected 1 total page, got %d", page.TotalPages)
	}
	if len(q.KeywordAny) != 1 || q.KeywordAny[0] != "front" {
		t.Fatalf("expected normalized keyword variants, got %v", q.KeywordAny)
	}

	if _, err := uc.ListByCompany(context.Background(), 1, "all", PageRequest{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs.lastQuery.Statuses) != 0 || jobs.lastQuery.CompanyID != 1 {
		t.Fatalf("status=all must not filter: %+v", jobs.lastQuery)
	}
}
