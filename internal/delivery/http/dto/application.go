package dto

import (
	"time"

	"wow-campus/internal/domain/application"
)

type ApplyRequest struct {
	JobPostingID int64  `json:"job_posting_id"`
	CoverLetter  string `json:"cover_letter"`
}

type ApplicationStatusRequest struct {
	Status          string     `json:"status"`
	InterviewDate   *time.Time `json:"interview_date"`
	Feedback        *string    `json:"feedback"`
	RejectionReason *string    `json:"rejection_reason"`
}

type ApplicationResponse struct {
	ID              int64      `json:"id"`
	JobPostingID    int64      `json:"job_posting_id"`
	JobseekerID     int64      `json:"jobseeker_id"`
	Status          string     `json:"status"`
	CoverLetter     string     `json:"cover_letter"`
	InterviewDate   *time.Time `json:"interview_date"`
	Feedback        string     `json:"feedback,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedBy      *int64     `json:"reviewed_by"`
	AppliedAt       time.Time  `json:"applied_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	JobTitle        string     `json:"job_title"`
	CompanyName     string     `json:"company_name"`
	JobseekerName   string     `json:"jobseeker_name"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:              a.ID,
		JobPostingID:    a.JobPostingID,
		JobseekerID:     a.JobseekerID,
		Status:          string(a.Status),
		CoverLetter:     a.CoverLetter,
		InterviewDate:   a.InterviewDate,
		Feedback:        a.Feedback,
		RejectionReason: a.RejectionReason,
		ReviewedBy:      a.ReviewedBy,
		AppliedAt:       a.AppliedAt,
		UpdatedAt:       a.UpdatedAt,
		JobTitle:        a.JobTitle,
		CompanyName:     a.CompanyName,
		JobseekerName:   a.SeekerName,
	}
}

func NewApplicationResponses(in []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(in))
	for _, a := range in {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
