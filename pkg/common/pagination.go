package common

import (
	"net/http"
	"strconv"
)

// PaginationParams are the page controls accepted by list endpoints. All
// listing is done on scanned result sets in process, so pagination is just
// slice arithmetic.
type PaginationParams struct {
	Page     int
	PageSize int
}

// PaginationInfo describes the page that was returned.
type PaginationInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ExtractPaginationParams reads page/page_size query parameters, clamping
// to sane bounds.
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := PaginationParams{Page: 1, PageSize: defaultPageSize}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}
	if size := r.URL.Query().Get("page_size"); size != "" {
		if s, err := strconv.Atoi(size); err == nil && s > 0 {
			if s > maxPageSize {
				s = maxPageSize
			}
			params.PageSize = s
		}
	}

	return params
}

// Bounds returns the [start, end) slice indexes for a collection of the
// given length, plus the filled-in PaginationInfo.
func (p PaginationParams) Bounds(total int) (int, int, *PaginationInfo) {
	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}

	totalPages := (total + p.PageSize - 1) / p.PageSize
	info := &PaginationInfo{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1 && start < total,
	}
	return start, end, info
}
