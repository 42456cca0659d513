package jobseeker

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("jobseeker not found")

type Profile struct {
	ID                int64
	UserID            int64
	FirstName         string
	LastName          string
	Nationality       string
	VisaStatus        string
	KoreanLevel       string
	EnglishLevel      string
	EducationLevel    string
	Major             string
	ExperienceYears   *int
	CurrentLocation   string
	PreferredLocation string
	SalaryExpectation *int64
	Bio               string
	Skills            []string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Name       string
	Email      string
	UserStatus string
}

// DisplayName prefers the account name and falls back to the profile names.
func (p Profile) DisplayName() string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

type SearchFilter struct {
	Nationality string
	VisaStatus  string
	KoreanLevel string
	Keyword     string
	Limit       int
	Offset      int
}

type Patch struct {
	FirstName         *string
	LastName          *string
	Nationality       *string
	VisaStatus        *string
	KoreanLevel       *string
	EnglishLevel      *string
	EducationLevel    *string
	Major             *string
	ExperienceYears   *int
	CurrentLocation   *string
	PreferredLocation *string
	SalaryExpectation *int64
	Bio               *string
	Skills            *[]string
}
