package usecase

import (
	"strings"

	"task_backend/internal/feature/tasks/domain/entity"
)

// List defaults and bounds.
const (
	defaultLimit     = 50
	maxLimit         = 100
	defaultSortBy    = "created_at"
	defaultSortOrder = "DESC"
)

// sortColumns is the closed allow-list of columns a caller may sort by.
// A sort column is the one piece of user input that ends up in query text
// as an identifier rather than a bound parameter, so it must only ever be
// chosen from this set.
var sortColumns = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"due_date":   {},
	"title":      {},
	"status":     {},
}

// TaskFilter carries untrusted list parameters exactly as received.
// Limit and Offset are pointers so an absent value is distinguishable
// from an explicit zero.
type TaskFilter struct {
	Status     string
	SearchTerm string
	SortBy     string
	SortOrder  string
	Limit      *int
	Offset     *int
}

// ListQuery is the validated execution plan derived from a TaskFilter.
// SortBy is guaranteed to come from the sortColumns allow-list and
// SortOrder is either "ASC" or "DESC", so both are safe to place into
// query text. All remaining fields are passed as bound parameters.
type ListQuery struct {
	Status     string
	SearchTerm string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// Validate checks a TaskFilter and produces the execution plan.
//
// Policy, preserved as observed in the original service: status, limit and
// offset are validated strictly and reject the request, while an unknown
// sortBy or sortOrder silently falls back to created_at DESC instead of
// erroring.
func (f TaskFilter) Validate() (ListQuery, error) {
	q := ListQuery{
		SearchTerm: f.SearchTerm,
		SortBy:     defaultSortBy,
		SortOrder:  defaultSortOrder,
		Limit:      defaultLimit,
	}

	if f.Status != "" {
		if !entity.ValidStatus(f.Status) {
			return ListQuery{}, ErrInvalidStatus
		}
		q.Status = f.Status
	}

	if _, ok := sortColumns[f.SortBy]; ok {
		q.SortBy = f.SortBy
	}
	if strings.EqualFold(f.SortOrder, "ASC") {
		q.SortOrder = "ASC"
	}

	if f.Limit != nil {
		if *f.Limit < 1 || *f.Limit > maxLimit {
			return ListQuery{}, ErrInvalidLimit
		}
		q.Limit = *f.Limit
	}
	if f.Offset != nil {
		if *f.Offset < 0 {
			return ListQuery{}, ErrInvalidOffset
		}
		q.Offset = *f.Offset
	}

	return q, nil
}
