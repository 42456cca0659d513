package dto

import (
	"time"

	"wow-campus/internal/domain/agent"
)

type CreateAgentRequest struct {
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	ContactName      string   `json:"contact_name"`
	Phone            string   `json:"phone"`
	AgencyName       string   `json:"agency_name"`
	LicenseNumber    string   `json:"license_number"`
	Specialization   []string `json:"specialization"`
	CountriesCovered []string `json:"countries_covered"`
	Languages        []string `json:"languages"`
	CommissionRate   float64  `json:"commission_rate"`
	ExperienceYears  int      `json:"experience_years"`
	Introduction     string   `json:"introduction"`
}

func (r CreateAgentRequest) Agent() agent.Agent {
	return agent.Agent{
		AgencyName:       r.AgencyName,
		LicenseNumber:    r.LicenseNumber,
		Specialization:   r.Specialization,
		CountriesCovered: r.CountriesCovered,
		Languages:        r.Languages,
		CommissionRate:   r.CommissionRate,
		ExperienceYears:  r.ExperienceYears,
		Introduction:     r.Introduction,
	}
}

type AgentPatchRequest struct {
	ContactName      *string   `json:"contact_name"`
	Phone            *string   `json:"phone"`
	Status           *string   `json:"status"`
	AgencyName       *string   `json:"agency_name"`
	LicenseNumber    *string   `json:"license_number"`
	Specialization   *[]string `json:"specialization"`
	CountriesCovered *[]string `json:"countries_covered"`
	Languages        *[]string `json:"languages"`
	CommissionRate   *float64  `json:"commission_rate"`
	ExperienceYears  *int      `json:"experience_years"`
	Introduction     *string   `json:"introduction"`
}

func (r AgentPatchRequest) Patch() agent.Patch {
	return agent.Patch{
		AgencyName:       r.AgencyName,
		LicenseNumber:    r.LicenseNumber,
		Specialization:   r.Specialization,
		CountriesCovered: r.CountriesCovered,
		Languages:        r.Languages,
		CommissionRate:   r.CommissionRate,
		ExperienceYears:  r.ExperienceYears,
		Introduction:     r.Introduction,
		ContactName:      r.ContactName,
		Phone:            r.Phone,
		UserStatus:       r.Status,
	}
}

type AgentResponse struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	ContactName      string    `json:"contact_name"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Status           string    `json:"status,omitempty"`
	AgencyName       string    `json:"agency_name"`
	LicenseNumber    string    `json:"license_number"`
	Specialization   []string  `json:"specialization"`
	CountriesCovered []string  `json:"countries_covered"`
	Languages        []string  `json:"languages"`
	CommissionRate   float64   `json:"commission_rate"`
	ExperienceYears  int       `json:"experience_years"`
	TotalPlacements  int       `json:"total_placements"`
	SuccessRate      float64   `json:"success_rate"`
	Introduction     string    `json:"introduction"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewAgentResponse(a agent.Agent) AgentResponse {
	return AgentResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		ContactName:      a.ContactName,
		Email:            a.Email,
		Phone:            a.Phone,
		Status:           a.UserStatus,
		AgencyName:       a.AgencyName,
		LicenseNumber:    a.LicenseNumber,
		Specialization:   orEmpty(a.Specialization),
		CountriesCovered: orEmpty(a.CountriesCovered),
		Languages:        orEmpty(a.Languages),
		CommissionRate:   a.CommissionRate,
		ExperienceYears:  a.ExperienceYears,
		TotalPlacements:  a.TotalPlacements,
		SuccessRate:      a.SuccessRate,
		Introduction:     a.Introduction,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func NewAgentResponses(in []agent.Agent) []AgentResponse {
	out := make([]AgentResponse, 0, len(in))
	for _, a := range in {
		out = append(out, NewAgentResponse(a))
	}
	return out
}

// CreatedAgentResponse carries the generated password exactly once.
type CreatedAgentResponse struct {
	Agent             AgentResponse `json:"agent"`
	TemporaryPassword string        `json:"temporary_password,omitempty"`
}

type AssignRequest struct {
	Notes string `json:"notes"`
}

type AssignmentPatchRequest struct {
	Notes            *string `json:"notes"`
	Status           *string `json:"status"`
	CommissionEarned *int64  `json:"commission_earned"`
	// PlacementDate is YYYY-MM-DD.
	PlacementDate *string `json:"placement_date"`
}

type AssignmentResponse struct {
	ID               int64             `json:"id"`
	AgentID          int64             `json:"agent_id"`
	JobseekerID      int64             `json:"jobseeker_id"`
	Status           string            `json:"status"`
	Notes            string            `json:"notes"`
	CommissionEarned int64             `json:"commission_earned"`
	PlacementDate    string            `json:"placement_date,omitempty"`
	AssignedAt       time.Time         `json:"assigned_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	Jobseeker        JobseekerResponse `json:"jobseeker"`
}

func NewAssignmentResponse(a agent.Assignment) AssignmentResponse {
	out := AssignmentResponse{
		ID:               a.ID,
		AgentID:          a.AgentID,
		JobseekerID:      a.JobseekerID,
		Status:           string(a.Status),
		Notes:            a.Notes,
		CommissionEarned: a.CommissionEarned,
		AssignedAt:       a.AssignedAt,
		UpdatedAt:        a.UpdatedAt,
		Jobseeker:        NewJobseekerResponse(a.Jobseeker),
	}
	if a.PlacementDate != nil {
		out.PlacementDate = a.PlacementDate.Format(time.DateOnly)
	}
	return out
}

func NewAssignmentResponses(in []agent.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(in))
	for _, a := range in {
		out = append(out, NewAssignmentResponse(a))
	}
	return out
}

type AgentStatsResponse struct {
	TotalPlacements      int     `json:"total_placements"`
	SuccessRate          float64 `json:"success_rate"`
	CommissionRate       float64 `json:"commission_rate"`
	TotalAssigned        int     `json:"total_assigned"`
	ActiveAssignments    int     `json:"active_assignments"`
	InactiveAssignments  int     `json:"inactive_assignments"`
	CompletedAssignments int     `json:"completed_assignments"`
	TotalCommission      int64   `json:"total_commission"`
}

func NewAgentStatsResponse(s agent.Stats) AgentStatsResponse {
	return AgentStatsResponse(s)
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
