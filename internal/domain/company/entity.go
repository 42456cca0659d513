package company

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("company not found")

type Size string

const (
	SizeStartup Size = "startup"
	SizeSmall   Size = "small"
	SizeMedium  Size = "medium"
	SizeLarge   Size = "large"
)

func ParseSize(s string) (Size, bool) {
	sz := Size(strings.ToLower(strings.TrimSpace(s)))
	switch sz {
	case SizeStartup, SizeSmall, SizeMedium, SizeLarge:
		return sz, true
	}
	return "", false
}

type Company struct {
	ID             int64
	UserID         int64
	CompanyName    string
	BusinessNumber string
	Industry       string
	CompanySize    Size
	Address        string
	Website        string
	Description    string
	FoundedYear    *int
	EmployeeCount  *int
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Email      string
	UserStatus string
}

type Patch struct {
	CompanyName    *string
	BusinessNumber *string
	Industry       *string
	CompanySize    *Size
	Address        *string
	Website        *string
	Description    *string
	FoundedYear    *int
	EmployeeCount  *int
}
