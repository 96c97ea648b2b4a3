package repository

import "strings"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListQuery carries page, page size and an optional free-text search.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Normalize clamps page and limit to sane values.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pattern returns the ILIKE pattern for Search.
func (q ListQuery) Pattern() string {
	return "%" + q.Search + "%"
}

// Page is one page of a listing.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
}

func NewPage[T any](items []T, total int64, q ListQuery) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return &Page[T]{Items: items, Total: total, TotalPages: pages, CurrentPage: q.Page}
}
