package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns the first page with the default page size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: defaultPerPage}
}

// FromRequest extracts page and per_page from an HTTP request. Missing or
// out-of-range values fall back to the defaults. page is capped so the offset
// cannot overflow.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= maxPerPage {
			p.PerPage = v
		}
	}

	if maxPage := math.MaxInt / p.PerPage; p.Page > maxPage {
		p.Page = maxPage
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Result is one page of an in-memory sequence.
type Result[T any] struct {
	Items      []T  `json:"items"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate returns the page of items selected by params, preserving order.
// A page past the end, or a negative offset, yields an empty, non-nil Items
// slice. A PerPage below 1 is treated as the default page size.
func Paginate[T any](items []T, params Params) Result[T] {
	total := len(items)
	if params.PerPage < 1 {
		params.PerPage = defaultPerPage
	}

	start := params.Offset
	if start < 0 || start > total {
		start = total
	}
	end := total
	if params.PerPage < total-start {
		end = start + params.PerPage
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	totalPages := total / params.PerPage
	if total%params.PerPage > 0 {
		totalPages++
	}

	return Result[T]{
		Items:      page,
		TotalCount: total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
