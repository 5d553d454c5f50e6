// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"gorm.io/gorm"

	"github.com/finance-records/backend/internal/application/query"
)

// applyFilter pushes the query package's filter semantics down into SQL. The
// generated predicates must match query.Matches exactly; the contract test
// suite asserts this against the in-memory backend.
func applyFilter(q *gorm.DB, filter query.Filter) *gorm.DB {
	q = applyNameFilter(q, filter.Name)
	if filter.Value != nil {
		q = q.Where("value = ?", *filter.Value)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	return applyDateFilters(q, filter)
}

// applyCategoryFilter pushes the filter down for category listings. The
// categories table has no value or category_id column; the entity reports a
// fixed zero value and a nil category reference, so a non-zero value filter
// and any category filter match nothing, exactly as the in-memory backend
// evaluates them.
func applyCategoryFilter(q *gorm.DB, filter query.Filter) *gorm.DB {
	q = applyNameFilter(q, filter.Name)
	if filter.Value != nil && *filter.Value != 0 {
		q = q.Where("1 = 0")
	}
	if filter.CategoryID != nil {
		q = q.Where("1 = 0")
	}
	return applyDateFilters(q, filter)
}

func applyNameFilter(q *gorm.DB, name string) *gorm.DB {
	if name == "" {
		return q
	}
	// Substring containment is case-sensitive. LIKE is not portable
	// here: SQLite matches ASCII case-insensitively by default.
	if q.Dialector.Name() == "sqlite" {
		return q.Where("instr(name, ?) > 0", name)
	}
	return q.Where("strpos(name, ?) > 0", name)
}

func applyDateFilters(q *gorm.DB, filter query.Filter) *gorm.DB {
	if lo, hi, ok := filter.CreatedAt.Bounds(); ok {
		q = q.Where("created_at BETWEEN ? AND ?", lo, hi)
	}
	if lo, hi, ok := filter.UpdatedAt.Bounds(); ok {
		q = q.Where("updated_at BETWEEN ? AND ?", lo, hi)
	}
	return q
}

// applyOrder pushes the sort direction down into SQL with the deterministic
// ID tie-break shared with the in-memory backend.
func applyOrder(q *gorm.DB, direction query.Direction) *gorm.DB {
	if direction == query.DirectionAsc {
		return q.Order("created_at ASC, id ASC")
	}
	return q.Order("created_at DESC, id ASC")
}

// paginate counts the filtered collection, computes the shared pagination
// metadata and applies offset and limit. The returned query is ready for a
// Find call; the metadata describes the page it will produce.
func paginate(q *gorm.DB, page query.Page) (*gorm.DB, *query.Meta, error) {
	var total int64
	countQuery := q.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	meta, err := query.Metadata(total, page)
	if err != nil {
		return nil, nil, err
	}

	return q.Offset(meta.Offset).Limit(meta.Limit), meta, nil
}
