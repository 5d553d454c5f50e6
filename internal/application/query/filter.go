// Package query implements the shared filter, sort and pagination pipeline
// used by every list operation. The same semantics are evaluated here for the
// in-memory backend and pushed down into SQL by the persistent backend; both
// must produce identical counts, metadata and ordering.
package query

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Filterable is the capability a record exposes to the query pipeline.
type Filterable interface {
	// FilterName returns the record name matched by substring filtering.
	FilterName() string

	// FilterValue returns the monetary value in minor units.
	FilterValue() int64

	// FilterCategoryID returns the category reference, nil when absent.
	FilterCategoryID() *uuid.UUID

	// FilterCreatedAt returns the creation timestamp.
	FilterCreatedAt() time.Time

	// FilterUpdatedAt returns the last-update timestamp.
	FilterUpdatedAt() time.Time

	// FilterID returns the record identifier used as the sort tie-break.
	FilterID() uuid.UUID
}

// DateRange selects timestamps between two optional calendar dates.
//
// With only From set, the range covers that single calendar day. With both
// set, it covers [start-of-day(From), end-of-day(To)] inclusive. With
// neither set, every timestamp matches. To without From is rejected at the
// request boundary and never reaches the engine.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether the range has no bounds and matches everything.
func (r DateRange) IsZero() bool {
	return r.From == nil
}

// Bounds returns the inclusive timestamp bounds of the range. The second
// return value is false when the range is unbounded.
func (r DateRange) Bounds() (lo, hi time.Time, ok bool) {
	if r.From == nil {
		return time.Time{}, time.Time{}, false
	}

	lo = startOfDay(*r.From)
	last := lo
	if r.To != nil {
		last = startOfDay(*r.To)
	}
	hi = last.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return lo, hi, true
}

// Contains reports whether the timestamp falls inside the range, bounds
// inclusive.
func (r DateRange) Contains(t time.Time) bool {
	lo, hi, ok := r.Bounds()
	if !ok {
		return true
	}
	return !t.Before(lo) && !t.After(hi)
}

// startOfDay truncates a timestamp to midnight UTC of its calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Filter is the closed set of predicates a list request may carry. Absent
// predicates are vacuously true; present predicates AND together.
type Filter struct {
	// Name matches by case-sensitive substring containment.
	Name string

	// Value matches by exact equality in minor currency units.
	Value *int64

	// CategoryID matches by exact equality.
	CategoryID *uuid.UUID

	// CreatedAt and UpdatedAt match by calendar date range.
	CreatedAt DateRange
	UpdatedAt DateRange
}

// IsZero reports whether no predicate is present.
func (f Filter) IsZero() bool {
	return f.Name == "" &&
		f.Value == nil &&
		f.CategoryID == nil &&
		f.CreatedAt.IsZero() &&
		f.UpdatedAt.IsZero()
}

// Matches reports whether the record satisfies every present predicate.
func Matches(record Filterable, filter Filter) bool {
	if filter.Name != "" && !strings.Contains(record.FilterName(), filter.Name) {
		return false
	}
	if filter.Value != nil && record.FilterValue() != *filter.Value {
		return false
	}
	if filter.CategoryID != nil {
		categoryID := record.FilterCategoryID()
		if categoryID == nil || *categoryID != *filter.CategoryID {
			return false
		}
	}
	if !filter.CreatedAt.Contains(record.FilterCreatedAt()) {
		return false
	}
	if !filter.UpdatedAt.Contains(record.FilterUpdatedAt()) {
		return false
	}
	return true
}
