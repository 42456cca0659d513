// Package application holds job applications and their review workflow.
//
// Status graph:
//
//	submitted -> reviewed -> interview_scheduled -> interview_completed -> offered -> accepted
//
// Any non-terminal status may move to rejected (reviewer) or withdrawn
// (applicant). accepted, rejected and withdrawn are terminal.
package application

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusReviewed           Status = "reviewed"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusInterviewCompleted Status = "interview_completed"
	StatusOffered            Status = "offered"
	StatusAccepted           Status = "accepted"
	StatusRejected           Status = "rejected"
	StatusWithdrawn          Status = "withdrawn"
)

var forward = map[Status]Status{
	StatusSubmitted:          StatusReviewed,
	StatusReviewed:           StatusInterviewScheduled,
	StatusInterviewScheduled: StatusInterviewCompleted,
	StatusInterviewCompleted: StatusOffered,
	StatusOffered:            StatusAccepted,
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusSubmitted, StatusReviewed, StatusInterviewScheduled, StatusInterviewCompleted,
		StatusOffered, StatusAccepted, StatusRejected, StatusWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// IsTransitionAllowed reports whether a reviewer may move from -> to.
// Reviewers may also skip the review step and schedule an interview directly.
func IsTransitionAllowed(from, to Status) bool {
	if IsTerminal(from) || from == to {
		return false
	}
	if to == StatusRejected {
		return true
	}
	if from == StatusSubmitted && to == StatusInterviewScheduled {
		return true
	}
	return forward[from] == to
}

// CanWithdraw reports whether the applicant may still pull out.
func CanWithdraw(from Status) bool {
	return !IsTerminal(from)
}
