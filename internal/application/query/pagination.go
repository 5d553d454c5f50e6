package query

import (
	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// Default pagination parameters applied when a request leaves them unset.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Page carries the pagination parameters of a list request.
type Page struct {
	// Number is the 1-based page index.
	Number int

	// PerPage is the page size. Must be positive unless Disabled is set.
	PerPage int

	// Disabled returns the entire filtered collection as a single page.
	Disabled bool
}

// DefaultPagination returns the pagination applied to requests that carry no
// explicit parameters.
func DefaultPagination() Page {
	return Page{Number: DefaultPage, PerPage: DefaultPerPage}
}

// Meta is the pagination metadata computed for a list response. Count always
// reflects the pre-slice, post-filter total, never the page size.
type Meta struct {
	Count      int64
	Next       *int
	Previous   *int
	Page       int
	TotalPages int
	PerPage    int
	Disabled   bool

	// Offset and Limit describe the slice of the sorted collection this page
	// covers. Limit is -1 when pagination is disabled.
	Offset int
	Limit  int
}

// Metadata computes pagination metadata for a collection of total matching
// records. Both backends derive their page math from this single function.
func Metadata(total int64, page Page) (*Meta, error) {
	if page.Disabled {
		return &Meta{
			Count:      total,
			Page:       1,
			TotalPages: 1,
			PerPage:    int(total),
			Disabled:   true,
			Offset:     0,
			Limit:      -1,
		}, nil
	}

	if page.PerPage <= 0 {
		return nil, domainerror.NewQueryError(
			domainerror.ErrCodeInvalidPerPage,
			"per_page must be a positive integer",
			domainerror.ErrInvalidPerPage,
		)
	}

	number := page.Number
	if number < 1 {
		number = DefaultPage
	}

	totalPages := int((total + int64(page.PerPage) - 1) / int64(page.PerPage))
	if totalPages == 0 {
		totalPages = 1
	}

	meta := &Meta{
		Count:      total,
		Page:       number,
		TotalPages: totalPages,
		PerPage:    page.PerPage,
		Offset:     (number - 1) * page.PerPage,
		Limit:      page.PerPage,
	}

	if number != totalPages {
		next := number + 1
		meta.Next = &next
	}
	if number != 1 {
		previous := number - 1
		meta.Previous = &previous
	}

	return meta, nil
}

// Result is a single page of a filtered, sorted collection together with its
// pagination metadata.
type Result[T any] struct {
	Count              int64
	Next               *int
	Previous           *int
	Page               int
	TotalPages         int
	PerPage            int
	PaginationDisabled bool
	Results            []T
}

// NewResult combines computed metadata with the records of one page.
func NewResult[T any](meta *Meta, results []T) *Result[T] {
	return &Result[T]{
		Count:              meta.Count,
		Next:               meta.Next,
		Previous:           meta.Previous,
		Page:               meta.Page,
		TotalPages:         meta.TotalPages,
		PerPage:            meta.PerPage,
		PaginationDisabled: meta.Disabled,
		Results:            results,
	}
}

// Paginate slices an already filtered and sorted collection and computes its
// metadata. A page beyond the last yields empty results with metadata still
// derived from the full count.
func Paginate[T any](records []T, page Page) (*Result[T], error) {
	meta, err := Metadata(int64(len(records)), page)
	if err != nil {
		return nil, err
	}

	if meta.Disabled {
		return NewResult(meta, records), nil
	}

	results := []T{}
	if meta.Offset < len(records) {
		end := meta.Offset + meta.Limit
		if end > len(records) {
			end = len(records)
		}
		results = records[meta.Offset:end]
	}

	return NewResult(meta, results), nil
}

// Apply runs the full filter, sort and paginate pipeline over a snapshot of
// records. This is the in-memory rendition of the semantics the persistent
// backend pushes down into SQL.
func Apply[T Filterable](records []T, filter Filter, direction Direction, page Page) (*Result[T], error) {
	if !direction.IsValid() {
		direction = DefaultDirection
	}

	matched := make([]T, 0, len(records))
	for _, record := range records {
		if Matches(record, filter) {
			matched = append(matched, record)
		}
	}

	Sort(matched, direction)

	return Paginate(matched, page)
}
