package job

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("job posting not found")
	ErrInvalidInput = errors.New("invalid job posting input")
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusPaused  Status = "paused"
	StatusClosed  Status = "closed"
	StatusExpired Status = "expired"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusDraft, StatusActive, StatusPaused, StatusClosed, StatusExpired:
		return st, true
	}
	return "", false
}

type Type string

const (
	TypeFullTime   Type = "full_time"
	TypePartTime   Type = "part_time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
)

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return t, true
	}
	return "", false
}

func ValidExperienceLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "junior", "mid", "senior", "executive":
		return true
	}
	return false
}

type Posting struct {
	ID                  int64
	CompanyID           int64
	Title               string
	Description         string
	Requirements        *string
	Responsibilities    *string
	JobType             Type
	JobCategory         string
	Location            string
	SalaryMin           *int64
	SalaryMax           *int64
	Currency            string
	VisaSponsorship     bool
	KoreanRequired      bool
	ExperienceLevel     *string
	EducationRequired   *string
	SkillsRequired      []string
	Benefits            *string
	ApplicationDeadline *time.Time
	PositionsAvailable  int
	Status              Status
	ViewsCount          int
	ApplicationsCount   int
	CreatedAt           time.Time
	UpdatedAt           time.Time

	CompanyUserID int64
	CompanyName   string
	Industry      string
	CompanySize   string
}

type SearchFilter struct {
	Keyword         string
	KeywordAny      []string
	Location        string
	JobCategory     string
	JobType         Type
	ExperienceLevel string
	SalaryMin       *int64
	SalaryMax       *int64
	VisaSponsorship *bool
	CompanyID       int64
	Statuses        []Status
	Sort            string
	Order           string
	Limit           int
	Offset          int
}

// Patch holds the fields of a partial update; nil means unchanged.
type Patch struct {
	Title               *string
	Description         *string
	Requirements        *string
	Responsibilities    *string
	JobType             *Type
	JobCategory         *string
	Location            *string
	SalaryMin           *int64
	SalaryMax           *int64
	VisaSponsorship     *bool
	KoreanRequired      *bool
	ExperienceLevel     *string
	EducationRequired   *string
	SkillsRequired      *[]string
	Benefits            *string
	ApplicationDeadline *time.Time
	PositionsAvailable  *int
	Status              *Status
}
