package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	items map[int64]user.User
}

func newMemUsers(items ...user.User) *memUsers {
	m := &memUsers{items: map[int64]user.User{}}
	for _, u := range items {
		m.items[u.ID] = u
	}
	return m
}

func (m *memUsers) CreateWithProfile(_ context.Context, u user.User, _ user.ProfileSeed) (user.User, error) {
	u.ID = int64(len(m.items) + 1)
	m.items[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := m.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) UpdateLastLogin(context.Context, int64, time.Time) error { return nil }

func (m *memUsers) UpdateProfile(_ context.Context, id int64, name, phone *string) (user.User, error) {
	u, ok := m.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = *phone
	}
	m.items[id] = u
	return u, nil
}

func (m *memUsers) UpdateStatus(_ context.Context, id int64, st user.Status) error {
	u, ok := m.items[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Status = st
	m.items[id] = u
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := m.items[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	m.items[id] = u
	return nil
}

func (m *memUsers) List(context.Context, user.ListFilter) ([]user.User, int, error) {
	out := make([]user.User, 0, len(m.items))
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, len(out), nil
}

func TestAdminSetStatus(t *testing.T) {
	users := newMemUsers(user.User{ID: 1, UserType: user.TypeAdmin}, user.User{ID: 2, UserType: user.TypeCompany, Status: user.StatusPending, PasswordHash: "h"})
	uc := NewAdminUsecase(users, nil, nil)
	ctx := context.Background()

	got, err := uc.SetStatus(ctx, adminActor, 2, user.StatusApproved)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != user.StatusApproved || got.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := uc.SetStatus(ctx, adminActor, 1, user.StatusSuspended); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("admin must not change own status, got %v", err)
	}
	if _, err := uc.SetStatus(ctx, adminActor, 2, "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.SetStatus(ctx, adminActor, 99, user.StatusApproved); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := uc.SetStatus(ctx, companyActor, 2, user.StatusApproved); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminResetPassword(t *testing.T) {
	users := newMemUsers(user.User{ID: 2, UserType: user.TypeJobseeker})
	uc := NewAdminUsecase(users, nil, nil)
	uc.generate = func() (string, error) { return "Tmp7pass9abc", nil }

	pw, err := uc.ResetPassword(context.Background(), adminActor, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pw != "Tmp7pass9abc" {
		t.Fatalf("unexpected password %q", pw)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users.items[2].PasswordHash), []byte(pw)); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := generateTempPassword()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pw) != tempPasswordLen {
		t.Fatalf("expected %d characters, got %q", tempPasswordLen, pw)
	}
}

func TestStatisticsTakeSnapshot(t *testing.T) {
	stats := &fakeStats{
		activeJobs:   12,
		applications: 40,
		byType:       map[string]int{"company": 3, "jobseeker": 20, "agent": 2, "admin": 1},
	}
	uc := NewStatisticsUsecase(stats, nil)
	uc.now = func() time.Time { return time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC) }

	s, err := uc.TakeSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := repository.Snapshot{
		StatDate:          time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		TotalUsers:        26,
		TotalCompanies:    3,
		TotalJobseekers:   20,
		TotalAgents:       2,
		ActiveJobPostings: 12,
		TotalApplications: 40,
		UpdatedAt:         uc.now(),
	}
	if s != want {
		t.Fatalf("unexpected snapshot:\n got %+v\nwant %+v", s, want)
	}

	ov, err := uc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ov.LatestSnapshot == nil || ov.LatestSnapshot.TotalUsers != 26 || ov.ActiveJobs != 12 {
		t.Fatalf("unexpected overview: %+v", ov)
	}

	stats.err = errDB
	if _, err := uc.Overview(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
