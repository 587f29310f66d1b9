package view

import (
	"sort"
	"time"
)

type sortFields struct {
	updated time.Time
	created time.Time
	amount  float64
}

// sortSlice orders items by the selected key. The sort is stable; ties keep
// insertion order.
func sortSlice[T any](items []T, key SortKey, fields func(T) sortFields) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := fields(items[i]), fields(items[j])
		switch key {
		case SortUpdatedDesc:
			return a.updated.After(b.updated)
		case SortUpdatedAsc:
			return a.updated.Before(b.updated)
		case SortAmountDesc:
			return a.amount > b.amount
		case SortAmountAsc:
			return a.amount < b.amount
		case SortCreatedDesc:
			return a.created.After(b.created)
		case SortCreatedAsc:
			return a.created.Before(b.created)
		}
		return false
	})
}

// paginate slices out the requested 1-indexed page. Pages beyond the end
// yield an empty slice, never an error.
func paginate[T any](items []T, p Params) Page[T] {
	total := len(items)
	pages := 0
	if total > 0 {
		pages = (total + p.PageSize - 1) / p.PageSize
	}

	start := (p.Page - 1) * p.PageSize
	if start >= total {
		return Page[T]{Items: []T{}, Page: p.Page, PageSize: p.PageSize, TotalCount: total, TotalPages: pages}
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return Page[T]{Items: items[start:end], Page: p.Page, PageSize: p.PageSize, TotalCount: total, TotalPages: pages}
}
