// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/query"
	domainerror "github.com/finance-records/backend/internal/domain/error"
	"github.com/finance-records/backend/internal/domain/valueobject"
)

// maxNameFilterLength caps the name query parameter.
const maxNameFilterLength = 40

// dateLayout is the wire format for calendar date parameters.
const dateLayout = "2006-01-02"

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ListResponse is the envelope returned by every list endpoint.
type ListResponse[T any] struct {
	Count              int64 `json:"count"`
	Next               *int  `json:"next"`
	Previous           *int  `json:"previous"`
	Page               int   `json:"page"`
	TotalPages         int   `json:"total_pages"`
	PerPage            int   `json:"per_page"`
	PaginationDisabled bool  `json:"pagination_disabled"`
	Results            []T   `json:"results"`
}

// ToListResponse converts an engine result into the wire envelope, mapping
// each record through convert.
func ToListResponse[T, R any](result *query.Result[T], convert func(T) R) ListResponse[R] {
	results := make([]R, len(result.Results))
	for i, record := range result.Results {
		results[i] = convert(record)
	}
	return ListResponse[R]{
		Count:              result.Count,
		Next:               result.Next,
		Previous:           result.Previous,
		Page:               result.Page,
		TotalPages:         result.TotalPages,
		PerPage:            result.PerPage,
		PaginationDisabled: result.PaginationDisabled,
		Results:            results,
	}
}

// ListQuery carries the parsed query parameters of a list request.
type ListQuery struct {
	Filter    query.Filter
	Direction query.Direction
	Page      query.Page
}

// ParseListQuery validates and parses the shared list query vocabulary. All
// violations surface as coded query errors so controllers map them to 400.
func ParseListQuery(ctx *gin.Context) (*ListQuery, error) {
	parsed := &ListQuery{
		Direction: query.DefaultDirection,
		Page:      query.DefaultPagination(),
	}

	if pageStr := ctx.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, domainerror.NewQueryError(
				domainerror.ErrCodeInvalidPage,
				"page must be a positive integer",
				domainerror.ErrInvalidPage,
			)
		}
		parsed.Page.Number = page
	}

	if perPageStr := ctx.Query("per_page"); perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil || perPage < 1 {
			return nil, domainerror.NewQueryError(
				domainerror.ErrCodeInvalidPerPage,
				"per_page must be a positive integer",
				domainerror.ErrInvalidPerPage,
			)
		}
		parsed.Page.PerPage = perPage
	}

	if disabledStr := ctx.Query("pagination_disabled"); disabledStr != "" {
		disabled, err := strconv.ParseBool(disabledStr)
		if err != nil {
			return nil, domainerror.NewQueryError(
				domainerror.ErrCodeInvalidQueryParams,
				"pagination_disabled must be a boolean",
				domainerror.ErrInvalidQueryParams,
			)
		}
		parsed.Page.Disabled = disabled
	}

	if name := ctx.Query("name"); name != "" {
		if len(name) > maxNameFilterLength {
			return nil, domainerror.NewQueryError(
				domainerror.ErrCodeInvalidQueryParams,
				"name filter exceeds 40 characters",
				domainerror.ErrInvalidQueryParams,
			)
		}
		parsed.Filter.Name = name
	}

	if valueStr := ctx.Query("value"); valueStr != "" {
		// The same decimal-to-cents conversion used on writes, so filtering
		// by "1000.00" matches records stored as 100000.
		value := valueobject.CentsFromString(valueStr)
		parsed.Filter.Value = &value
	}

	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			return nil, domainerror.NewQueryError(
				domainerror.ErrCodeInvalidQueryParams,
				"category_id must be a valid id",
				domainerror.ErrInvalidQueryParams,
			)
		}
		parsed.Filter.CategoryID = &categoryID
	}

	createdAt, err := parseDateRange(ctx, "created_at_from", "created_at_to")
	if err != nil {
		return nil, err
	}
	parsed.Filter.CreatedAt = createdAt

	updatedAt, err := parseDateRange(ctx, "updated_at_from", "updated_at_to")
	if err != nil {
		return nil, err
	}
	parsed.Filter.UpdatedAt = updatedAt

	if sort := ctx.Query("sort"); sort != "" {
		direction := query.Direction(sort)
		if !direction.IsValid() {
			return nil, domainerror.NewQueryError(
				domainerror.ErrCodeInvalidSortDirection,
				"sort must be asc or desc",
				domainerror.ErrInvalidSortDirection,
			)
		}
		parsed.Direction = direction
	}

	return parsed, nil
}

// parseDateRange reads an optional {from, to} pair of calendar dates. A "to"
// without a "from" is rejected: a range needs a start before it has an end.
func parseDateRange(ctx *gin.Context, fromParam, toParam string) (query.DateRange, error) {
	var dateRange query.DateRange

	fromStr := ctx.Query(fromParam)
	toStr := ctx.Query(toParam)

	if toStr != "" && fromStr == "" {
		return dateRange, domainerror.NewQueryError(
			domainerror.ErrCodeInvalidDateRange,
			toParam+" requires "+fromParam,
			domainerror.ErrInvalidDateRange,
		)
	}

	if fromStr != "" {
		from, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return dateRange, domainerror.NewQueryError(
				domainerror.ErrCodeInvalidDateRange,
				fromParam+" must be a YYYY-MM-DD date",
				domainerror.ErrInvalidDateRange,
			)
		}
		dateRange.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return dateRange, domainerror.NewQueryError(
				domainerror.ErrCodeInvalidDateRange,
				toParam+" must be a YYYY-MM-DD date",
				domainerror.ErrInvalidDateRange,
			)
		}
		dateRange.To = &to
	}

	return dateRange, nil
}
