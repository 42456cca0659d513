package dto

import (
	"time"

	"wow-campus/internal/domain/job"
)

type JobRequest struct {
	CompanyID           int64      `json:"company_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        *string    `json:"requirements"`
	Responsibilities    *string    `json:"responsibilities"`
	JobType             string     `json:"job_type"`
	JobCategory         string     `json:"job_category"`
	Location            string     `json:"location"`
	SalaryMin           *int64     `json:"salary_min"`
	SalaryMax           *int64     `json:"salary_max"`
	Currency            string     `json:"currency"`
	VisaSponsorship     bool       `json:"visa_sponsorship"`
	KoreanRequired      bool       `json:"korean_required"`
	ExperienceLevel     *string    `json:"experience_level"`
	EducationRequired   *string    `json:"education_required"`
	SkillsRequired      []string   `json:"skills_required"`
	Benefits            *string    `json:"benefits"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	PositionsAvailable  int        `json:"positions_available"`
	Status              string     `json:"status"`
}

func (r JobRequest) Posting() job.Posting {
	return job.Posting{
		CompanyID:           r.CompanyID,
		Title:               r.Title,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		JobType:             job.Type(r.JobType),
		JobCategory:         r.JobCategory,
		Location:            r.Location,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		Currency:            r.Currency,
		VisaSponsorship:     r.VisaSponsorship,
		KoreanRequired:      r.KoreanRequired,
		ExperienceLevel:     r.ExperienceLevel,
		EducationRequired:   r.EducationRequired,
		SkillsRequired:      r.SkillsRequired,
		Benefits:            r.Benefits,
		ApplicationDeadline: r.ApplicationDeadline,
		PositionsAvailable:  r.PositionsAvailable,
		Status:              job.Status(r.Status),
	}
}

type JobPatchRequest struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	Requirements        *string    `json:"requirements"`
	Responsibilities    *string    `json:"responsibilities"`
	JobType             *string    `json:"job_type"`
	JobCategory         *string    `json:"job_category"`
	Location            *string    `json:"location"`
	SalaryMin           *int64     `json:"salary_min"`
	SalaryMax           *int64     `json:"salary_max"`
	VisaSponsorship     *bool      `json:"visa_sponsorship"`
	KoreanRequired      *bool      `json:"korean_required"`
	ExperienceLevel     *string    `json:"experience_level"`
	EducationRequired   *string    `json:"education_required"`
	SkillsRequired      *[]string  `json:"skills_required"`
	Benefits            *string    `json:"benefits"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	PositionsAvailable  *int       `json:"positions_available"`
	Status              *string    `json:"status"`
}

func (r JobPatchRequest) Patch() job.Patch {
	p := job.Patch{
		Title:               r.Title,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		JobCategory:         r.JobCategory,
		Location:            r.Location,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		VisaSponsorship:     r.VisaSponsorship,
		KoreanRequired:      r.KoreanRequired,
		ExperienceLevel:     r.ExperienceLevel,
		EducationRequired:   r.EducationRequired,
		SkillsRequired:      r.SkillsRequired,
		Benefits:            r.Benefits,
		ApplicationDeadline: r.ApplicationDeadline,
		PositionsAvailable:  r.PositionsAvailable,
	}
	if r.JobType != nil {
		t := job.Type(*r.JobType)
		p.JobType = &t
	}
	if r.Status != nil {
		s := job.Status(*r.Status)
		p.Status = &s
	}
	return p
}

type JobResponse struct {
	ID                  int64      `json:"id"`
	CompanyID           int64      `json:"company_id"`
	CompanyName         string     `json:"company_name"`
	Industry            string     `json:"industry,omitempty"`
	CompanySize         string     `json:"company_size,omitempty"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        *string    `json:"requirements"`
	Responsibilities    *string    `json:"responsibilities"`
	JobType             string     `json:"job_type"`
	JobCategory         string     `json:"job_category"`
	Location            string     `json:"location"`
	SalaryMin           *int64     `json:"salary_min"`
	SalaryMax           *int64     `json:"salary_max"`
	Currency            string     `json:"currency"`
	VisaSponsorship     bool       `json:"visa_sponsorship"`
	KoreanRequired      bool       `json:"korean_required"`
	ExperienceLevel     *string    `json:"experience_level"`
	EducationRequired   *string    `json:"education_required"`
	SkillsRequired      []string   `json:"skills_required"`
	Benefits            *string    `json:"benefits"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	PositionsAvailable  int        `json:"positions_available"`
	Status              string     `json:"status"`
	ViewsCount          int        `json:"views_count"`
	ApplicationsCount   int        `json:"applications_count"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	HasApplied          *bool      `json:"has_applied,omitempty"`
}

func NewJobResponse(p job.Posting) JobResponse {
	skills := p.SkillsRequired
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:                  p.ID,
		CompanyID:           p.CompanyID,
		CompanyName:         p.CompanyName,
		Industry:            p.Industry,
		CompanySize:         p.CompanySize,
		Title:               p.Title,
		Description:         p.Description,
		Requirements:        p.Requirements,
		Responsibilities:    p.Responsibilities,
		JobType:             string(p.JobType),
		JobCategory:         p.JobCategory,
		Location:            p.Location,
		SalaryMin:           p.SalaryMin,
		SalaryMax:           p.SalaryMax,
		Currency:            p.Currency,
		VisaSponsorship:     p.VisaSponsorship,
		KoreanRequired:      p.KoreanRequired,
		ExperienceLevel:     p.ExperienceLevel,
		EducationRequired:   p.EducationRequired,
		SkillsRequired:      skills,
		Benefits:            p.Benefits,
		ApplicationDeadline: p.ApplicationDeadline,
		PositionsAvailable:  p.PositionsAvailable,
		Status:              string(p.Status),
		ViewsCount:          p.ViewsCount,
		ApplicationsCount:   p.ApplicationsCount,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func NewJobResponses(in []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(in))
	for _, p := range in {
		out = append(out, NewJobResponse(p))
	}
	return out
}
