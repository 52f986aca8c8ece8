// Package pagination provides the paginated response envelope shared by
// every list endpoint.
package pagination

import "math"

// DefaultLimit is used when a request supplies no page size.
const DefaultLimit = 10

// Page holds one page of items along with pagination metadata.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPage assembles the envelope. Pages is ceil(total/limit).
func NewPage[T any](items []T, total int64, page, limit int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))

	return &Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

// MapPage converts a page of source items into a page of response items,
// preserving all pagination metadata.
func MapPage[S any, D any](src *Page[S], mapper func(S) D) *Page[D] {
	items := make([]D, len(src.Items))
	for i, item := range src.Items {
		items[i] = mapper(item)
	}

	return &Page[D]{
		Items: items,
		Total: src.Total,
		Page:  src.Page,
		Limit: src.Limit,
		Pages: src.Pages,
	}
}

// Clamp normalizes raw page/limit query values: page is at least 1, limit
// falls back to the default when non-positive and is capped at max.
func Clamp(page, limit, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if max > 0 && limit > max {
		limit = max
	}
	return page, limit
}
