package agent

import (
	"errors"
	"strings"
	"time"

	"wow-campus/internal/domain/jobseeker"
)

var (
	ErrNotFound           = errors.New("agent not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrAssignedElsewhere is returned when the jobseeker already has an
	// active assignment with another agent.
	ErrAssignedElsewhere = errors.New("jobseeker assigned to another agent")
)

const DefaultCommissionRate = 10.0

type Agent struct {
	ID               int64
	UserID           int64
	AgencyName       string
	LicenseNumber    string
	Specialization   []string
	CountriesCovered []string
	Languages        []string
	CommissionRate   float64
	ExperienceYears  int
	TotalPlacements  int
	SuccessRate      float64
	Introduction     string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	ContactName string
	Email       string
	Phone       string
	UserStatus  string
}

type ListFilter struct {
	Status         string
	Specialization string
}

// Patch updates the agency profile. ContactName, Phone and UserStatus live on
// the owning account.
type Patch struct {
	AgencyName       *string
	LicenseNumber    *string
	Specialization   *[]string
	CountriesCovered *[]string
	Languages        *[]string
	CommissionRate   *float64
	ExperienceYears  *int
	Introduction     *string

	ContactName *string
	Phone       *string
	UserStatus  *string
}

type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentInactive  AssignmentStatus = "inactive"
	AssignmentCompleted AssignmentStatus = "completed"
)

func ParseAssignmentStatus(s string) (AssignmentStatus, bool) {
	st := AssignmentStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case AssignmentActive, AssignmentInactive, AssignmentCompleted:
		return st, true
	}
	return "", false
}

type Assignment struct {
	ID               int64
	AgentID          int64
	JobseekerID      int64
	Status           AssignmentStatus
	Notes            string
	CommissionEarned int64
	PlacementDate    *time.Time
	AssignedAt       time.Time
	UpdatedAt        time.Time

	Jobseeker jobseeker.Profile
}

type AssignmentPatch struct {
	Notes            *string
	Status           *AssignmentStatus
	CommissionEarned *int64
	PlacementDate    *time.Time
}

func (p AssignmentPatch) Empty() bool {
	return p.Notes == nil && p.Status == nil && p.CommissionEarned == nil && p.PlacementDate == nil
}

type Stats struct {
	TotalPlacements      int
	SuccessRate          float64
	CommissionRate       float64
	TotalAssigned        int
	ActiveAssignments    int
	InactiveAssignments  int
	CompletedAssignments int
	TotalCommission      int64
}

// SuccessRateOf is the share of completed assignments, in percent.
func SuccessRateOf(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
