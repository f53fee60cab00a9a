// ABOUTME: List parameters and paged results for record store queries
// ABOUTME: Supports optional server-side search, sort and paging
package models

import (
	"slices"
	"strings"
)

// ListParams narrows a store listing. Stores may ignore any field; callers
// must still filter client-side when they need exact results.
type ListParams struct {
	Search string
	SortBy string
	Desc   bool
	Page   int // zero-based
	Limit  int // 0 = no limit
}

// Offset returns the first record index of the requested page.
func (p ListParams) Offset() int {
	if p.Limit <= 0 || p.Page <= 0 {
		return 0
	}
	return p.Page * p.Limit
}

// Page is one slice of a listing plus the total number of matching records.
// Queried reports that the store applied the search, sort and paging of the
// request; when false Records is the full collection.
type Page[T any] struct {
	Records []T
	Total   int
	Queried bool
}

// Pages returns how many pages of size limit the total spans.
func (p Page[T]) Pages(limit int) int {
	if limit <= 0 {
		if p.Total > 0 {
			return 1
		}
		return 0
	}
	return (p.Total + limit - 1) / limit
}

// Paginate applies p's offset and limit to an already-ordered slice.
func Paginate[T any](records []T, p ListParams) []T {
	start := p.Offset()
	if start >= len(records) {
		return []T{}
	}
	end := len(records)
	if p.Limit > 0 && start+p.Limit < end {
		end = start + p.Limit
	}
	return records[start:end]
}

// Query applies p to an in-memory collection using the kind's search
// fields and orderings. Unknown sort fields keep the input order.
func (k Kind[T]) Query(records []T, p ListParams) Page[T] {
	var matched []T
	q := strings.ToLower(strings.TrimSpace(p.Search))
	if q != "" && k.Search != nil {
		matched = make([]T, 0, len(records))
		for _, rec := range records {
			if matchesAny(k.Search(rec), q) {
				matched = append(matched, rec)
			}
		}
	} else {
		matched = slices.Clone(records)
	}

	if less, ok := k.Order[p.SortBy]; ok {
		slices.SortStableFunc(matched, func(a, b T) int {
			if p.Desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}

	return Page[T]{
		Records: Paginate(matched, p),
		Total:   len(matched),
		Queried: q == "" || k.Search != nil,
	}
}

func matchesAny(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
