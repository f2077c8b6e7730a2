package services

import (
	"fmt"

	"preschool-finder/models"
)

// Paginate slices items into the 1-based page of the given size. A page past
// the end yields no items but still reports the true totals.
func Paginate[T any](items []T, page, limit int) (models.Page[T], error) {
	if limit <= 0 {
		return models.Page[T]{}, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}
	if page < 1 {
		return models.Page[T]{}, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidArgument, page)
	}

	total := len(items)
	start, end := total, total
	if page-1 <= total/limit {
		start = (page - 1) * limit
		end = start + min(limit, total-start)
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	slice := make([]T, end-start)
	copy(slice, items[start:end])

	return models.Page[T]{
		Items:      slice,
		TotalCount: total,
		Page:       page,
		TotalPages: pages,
	}, nil
}

// takeFirst truncates items to at most n entries.
func takeFirst[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
