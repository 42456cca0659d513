package permission

import (
	"testing"

	"wow-campus/internal/domain/user"
)

func TestRoleOf(t *testing.T) {
	if RoleOf("") != RoleGuest {
		t.Fatalf("empty type should be guest")
	}
	if RoleOf(user.TypeCompany) != RoleCompany {
		t.Fatalf("company type should map to company role")
	}
}

func TestCanAccessPage(t *testing.T) {
	cases := []struct {
		role Role
		page string
		want bool
	}{
		{RoleGuest, "/jobs", true},
		{RoleGuest, "/profile", false},
		{RoleJobseeker, "/study", true},
		{RoleCompany, "/study", false},
		{RoleAgent, "/agents", true},
		{RoleCompany, "/admin", false},
		{RoleAdmin, "/admin", true},
		{RoleAdmin, "/anything", true},
		{Role("robot"), "/", false},
	}
	for _, tc := range cases {
		if got := CanAccessPage(tc.role, tc.page); got != tc.want {
			t.Fatalf("%s %s: expected %v, got %v", tc.role, tc.page, tc.want, got)
		}
	}
}

func TestCanPerformAction(t *testing.T) {
	cases := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleJobseeker, ActionApplyJob, true},
		{RoleCompany, ActionApplyJob, false},
		{RoleCompany, ActionPostJobs, true},
		{RoleAgent, ActionPostJobs, false},
		{RoleGuest, ActionUseMatching, false},
		{RoleAdmin, ActionManageClients, true},
	}
	for _, tc := range cases {
		if got := CanPerformAction(tc.role, tc.action); got != tc.want {
			t.Fatalf("%s %s: expected %v, got %v", tc.role, tc.action, tc.want, got)
		}
	}
}
