package dto

import (
	"time"

	"wow-campus/internal/domain/jobseeker"
)

type JobseekerPatchRequest struct {
	FirstName         *string   `json:"first_name"`
	LastName          *string   `json:"last_name"`
	Nationality       *string   `json:"nationality"`
	VisaStatus        *string   `json:"visa_status"`
	KoreanLevel       *string   `json:"korean_level"`
	EnglishLevel      *string   `json:"english_level"`
	EducationLevel    *string   `json:"education_level"`
	Major             *string   `json:"major"`
	ExperienceYears   *int      `json:"experience_years"`
	CurrentLocation   *string   `json:"current_location"`
	PreferredLocation *string   `json:"preferred_location"`
	SalaryExpectation *int64    `json:"salary_expectation"`
	Bio               *string   `json:"bio"`
	Skills            *[]string `json:"skills"`
}

func (r JobseekerPatchRequest) Patch() jobseeker.Patch {
	return jobseeker.Patch{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Nationality:       r.Nationality,
		VisaStatus:        r.VisaStatus,
		KoreanLevel:       r.KoreanLevel,
		EnglishLevel:      r.EnglishLevel,
		EducationLevel:    r.EducationLevel,
		Major:             r.Major,
		ExperienceYears:   r.ExperienceYears,
		CurrentLocation:   r.CurrentLocation,
		PreferredLocation: r.PreferredLocation,
		SalaryExpectation: r.SalaryExpectation,
		Bio:               r.Bio,
		Skills:            r.Skills,
	}
}

type JobseekerResponse struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email,omitempty"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Nationality       string    `json:"nationality"`
	VisaStatus        string    `json:"visa_status"`
	KoreanLevel       string    `json:"korean_level"`
	EnglishLevel      string    `json:"english_level"`
	EducationLevel    string    `json:"education_level"`
	Major             string    `json:"major"`
	ExperienceYears   *int      `json:"experience_years"`
	CurrentLocation   string    `json:"current_location"`
	PreferredLocation string    `json:"preferred_location"`
	SalaryExpectation *int64    `json:"salary_expectation"`
	Bio               string    `json:"bio"`
	Skills            []string  `json:"skills"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewJobseekerResponse(p jobseeker.Profile) JobseekerResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return JobseekerResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		Name:              p.DisplayName(),
		Email:             p.Email,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Nationality:       p.Nationality,
		VisaStatus:        p.VisaStatus,
		KoreanLevel:       p.KoreanLevel,
		EnglishLevel:      p.EnglishLevel,
		EducationLevel:    p.EducationLevel,
		Major:             p.Major,
		ExperienceYears:   p.ExperienceYears,
		CurrentLocation:   p.CurrentLocation,
		PreferredLocation: p.PreferredLocation,
		SalaryExpectation: p.SalaryExpectation,
		Bio:               p.Bio,
		Skills:            skills,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func NewJobseekerResponses(in []jobseeker.Profile) []JobseekerResponse {
	out := make([]JobseekerResponse, 0, len(in))
	for _, p := range in {
		out = append(out, NewJobseekerResponse(p))
	}
	return out
}
