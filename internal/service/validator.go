package service

import (
	"strings"

	"github.com/boltayevjahongir/task-manager/internal/domain"
)

const (
	maxTitleLength = 255

	minPerPage = 1
	maxPerPage = 100
)

// sortColumns whitelists the task attributes accepted by sort_by and maps
// them to columns. Anything else falls back to created_at.
var sortColumns = map[string]string{
	"id":           "id",
	"title":        "title",
	"status":       "status",
	"priority":     "priority",
	"assignee_id":  "assignee_id",
	"creator_id":   "creator_id",
	"deadline":     "deadline",
	"completed_at": "completed_at",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

// ValidateTitle checks the task title bounds.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return domain.ErrTitleTooLong
	}
	return nil
}

// ValidatePagination enforces the strict pagination bounds: page >= 1 and
// per_page within [1, 100].
func ValidatePagination(page, perPage int) error {
	if page < 1 {
		return domain.ErrInvalidPage
	}
	if perPage < minPerPage || perPage > maxPerPage {
		return domain.ErrInvalidPerPage
	}
	return nil
}

// ResolveSort maps a requested sort attribute and order to a column and
// direction. Unrecognized values silently fall back to created_at and
// descending; sort inputs are never an error.
func ResolveSort(sortBy, order string) (column string, desc bool) {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	return column, order != "asc"
}

// TotalPages computes ceil(total / perPage), with a minimum of one page so
// an empty result is still page 1 of 1.
func TotalPages(total, perPage int) int {
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
