package model

import (
	"strings"
	"time"
)

// StatusFilter narrows a service listing by active state
type StatusFilter string

const (
	StatusFilterAll      StatusFilter = "all"
	StatusFilterActive   StatusFilter = "true"
	StatusFilterInactive StatusFilter = "false"
)

// ParseStatusFilter maps a raw query parameter onto a StatusFilter.
// Anything that is not exactly "true" or "false" after trimming,
// including the empty string, means no status constraint.
func ParseStatusFilter(raw string) StatusFilter {
	switch strings.TrimSpace(raw) {
	case string(StatusFilterActive):
		return StatusFilterActive
	case string(StatusFilterInactive):
		return StatusFilterInactive
	default:
		return StatusFilterAll
	}
}

// Service is a catalog entry offered to customers
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListQuery describes the constraints of a service listing
type ListQuery struct {
	Search string
	Status StatusFilter
}

// HasSearch reports whether the query carries a usable search term.
// A blank or whitespace-only term applies no text constraint.
func (q ListQuery) HasSearch() bool {
	return strings.TrimSpace(q.Search) != ""
}

// Matches reports whether a service satisfies the query. The status
// and text constraints combine with AND; within the text constraint,
// name and description combine with OR, case-insensitively.
func (q ListQuery) Matches(svc *Service) bool {
	switch q.Status {
	case StatusFilterActive:
		if !svc.IsActive {
			return false
		}
	case StatusFilterInactive:
		if svc.IsActive {
			return false
		}
	}

	if !q.HasSearch() {
		return true
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	return strings.Contains(strings.ToLower(svc.Name), needle) ||
		strings.Contains(strings.ToLower(svc.Description), needle)
}
