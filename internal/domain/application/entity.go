package application

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrAlreadyApplied    = errors.New("already applied to this posting")
	ErrInvalidTransition = errors.New("invalid application status transition")
)

type Application struct {
	ID              int64
	JobPostingID    int64
	JobseekerID     int64
	Status          Status
	CoverLetter     string
	InterviewDate   *time.Time
	Feedback        string
	RejectionReason string
	ReviewedBy      *int64
	AppliedAt       time.Time
	UpdatedAt       time.Time

	JobTitle      string
	CompanyName   string
	CompanyUserID int64
	SeekerName    string
	SeekerUserID  int64
}

type ListFilter struct {
	JobseekerID   int64
	CompanyUserID int64
	JobPostingID  int64
	Status        Status
	Limit         int
	Offset        int
}

// Review is a status change plus the reviewer notes that travel with it.
type Review struct {
	Status          Status
	InterviewDate   *time.Time
	Feedback        *string
	RejectionReason *string
	ReviewedBy      int64
}
