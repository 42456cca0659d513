package usecase

import (
	"context"
	"strings"

	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"
)

// Actor is the authenticated caller as seen by the usecases.
type Actor struct {
	UserID int64
	Type   user.Type
}

func (a Actor) IsAdmin() bool { return a.Type == user.TypeAdmin }

type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) normalize() (page, limit, offset int) {
	page, limit = p.Page, p.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = repository.DefaultPageSize
	}
	if limit > repository.MaxPageSize {
		limit = repository.MaxPageSize
	}
	return page, limit, (page - 1) * limit
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

func newPage[T any](items []T, total, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Page[T]{Items: items, Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// Notifier fans events out to connected websocket clients.
type Notifier interface {
	Publish(eventType string, id int64, title string)
}

// Invalidator drops derived data after writes. The matching usecase is the
// only implementation.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

const (
	EventJobPosted          = "job_posted"
	EventApplicationUpdated = "application_updated"
)

func trim(s string) string { return strings.TrimSpace(s) }
