package user

import (
	"strings"
	"time"
)

type Type string

const (
	TypeCompany   Type = "company"
	TypeJobseeker Type = "jobseeker"
	TypeAgent     Type = "agent"
	TypeAdmin     Type = "admin"
)

// ParseRegistrableType accepts the types a visitor may sign up as. Admins are
// created by the seeder only.
func ParseRegistrableType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeCompany, TypeJobseeker, TypeAgent:
		return t, true
	}
	return "", false
}

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeCompany, TypeJobseeker, TypeAgent, TypeAdmin:
		return t, true
	}
	return "", false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return st, true
	}
	return "", false
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	UserType     Type
	Status       Status
	Name         string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// ProfileSeed carries what registration knows about the type-specific
// profile row created together with the user.
type ProfileSeed struct {
	Location string
}

type ListFilter struct {
	UserType Type
	Status   Status
	Keyword  string
	Limit    int
	Offset   int
}
