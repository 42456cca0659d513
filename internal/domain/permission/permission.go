package permission

import "wow-campus/internal/domain/user"

type Role string

const (
	RoleGuest     Role = "guest"
	RoleJobseeker Role = "jobseeker"
	RoleCompany   Role = "company"
	RoleAgent     Role = "agent"
	RoleAdmin     Role = "admin"
)

type Action string

const (
	ActionViewJobs           Action = "view_jobs"
	ActionViewStudyInfo      Action = "view_study_info"
	ActionViewPublicMatching Action = "view_public_matching"
	ActionApplyJob           Action = "apply_job"
	ActionManageProfile      Action = "manage_profile"
	ActionViewMatches        Action = "view_matches"
	ActionUseMatching        Action = "use_matching_system"
	ActionViewJobseekers     Action = "view_jobseekers"
	ActionPostJobs           Action = "post_jobs"
	ActionManageJobs         Action = "manage_jobs"
	ActionViewApplicants     Action = "view_applicants"
	ActionManageClients      Action = "manage_clients"
	ActionFacilitateMatching Action = "facilitate_matching"
)

type grant struct {
	pages   []string
	actions []Action
	all     bool
}

var matrix = map[Role]grant{
	RoleGuest: {
		pages:   []string{"/", "/jobs", "/study", "/terms", "/privacy", "/cookies", "/matching"},
		actions: []Action{ActionViewJobs, ActionViewStudyInfo, ActionViewPublicMatching},
	},
	RoleJobseeker: {
		pages:   []string{"/", "/jobs", "/study", "/jobseekers", "/matching", "/profile", "/terms", "/privacy", "/cookies"},
		actions: []Action{ActionViewJobs, ActionApplyJob, ActionManageProfile, ActionViewMatches, ActionUseMatching},
	},
	RoleCompany: {
		pages:   []string{"/", "/jobs", "/jobseekers", "/matching", "/profile", "/terms", "/privacy", "/cookies"},
		actions: []Action{ActionViewJobseekers, ActionPostJobs, ActionManageJobs, ActionViewApplicants, ActionUseMatching},
	},
	RoleAgent: {
		pages:   []string{"/", "/jobs", "/jobseekers", "/agents", "/matching", "/profile", "/terms", "/privacy", "/cookies"},
		actions: []Action{ActionViewJobs, ActionViewJobseekers, ActionManageClients, ActionFacilitateMatching, ActionUseMatching},
	},
	RoleAdmin: {all: true},
}

var adminOnlyPages = map[string]struct{}{
	"/statistics":      {},
	"/admin":           {},
	"/user-management": {},
}

// RoleOf maps an account type to its role; a nil-like empty type is a guest.
func RoleOf(t user.Type) Role {
	switch t {
	case user.TypeJobseeker:
		return RoleJobseeker
	case user.TypeCompany:
		return RoleCompany
	case user.TypeAgent:
		return RoleAgent
	case user.TypeAdmin:
		return RoleAdmin
	default:
		return RoleGuest
	}
}

func CanAccessPage(r Role, page string) bool {
	g, ok := matrix[r]
	if !ok {
		return false
	}
	if g.all {
		return true
	}
	if _, adminOnly := adminOnlyPages[page]; adminOnly {
		return false
	}
	for _, p := range g.pages {
		if p == page {
			return true
		}
	}
	return false
}

func CanPerformAction(r Role, a Action) bool {
	g, ok := matrix[r]
	if !ok {
		return false
	}
	if g.all {
		return true
	}
	for _, x := range g.actions {
		if x == a {
			return true
		}
	}
	return false
}

// CanViewJobseekerData covers profile and listing reads of jobseeker data.
func CanViewJobseekerData(r Role) bool {
	switch r {
	case RoleAdmin, RoleJobseeker, RoleCompany, RoleAgent:
		return true
	}
	return false
}
