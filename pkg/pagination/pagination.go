package pagination

import (
	"net/http"
	"strconv"
)

// Params holds page/per-page values parsed from a query string.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// FromRequest extracts pagination params, clamping to sane bounds.
func FromRequest(r *http.Request, defaultPerPage, maxPerPage int) Params {
	p := Params{Page: 1, PerPage: defaultPerPage}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPerPage {
			p.PerPage = n
		}
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Result is a paginated list envelope.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewResult builds a Result, computing TotalPages as ceil(total/perPage).
func NewResult[T any](data []T, totalCount int, p Params) Result[T] {
	totalPages := totalCount / p.PerPage
	if totalCount%p.PerPage > 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}
	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
	}
}
