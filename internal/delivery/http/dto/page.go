package dto

import "wow-campus/internal/usecase"

type PageResponse[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// MapPage converts a usecase page with the given item mapper.
func MapPage[S, T any](p usecase.Page[S], conv func([]S) []T) PageResponse[T] {
	return PageResponse[T]{
		Items:      conv(p.Items),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
