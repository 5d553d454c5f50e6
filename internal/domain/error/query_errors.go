// Package error defines domain-specific errors for the Finance Records application.
package error

import "errors"

// Query engine errors, raised for malformed filter or pagination parameters.
var (
	// ErrInvalidPerPage is returned when per_page is zero or negative.
	ErrInvalidPerPage = errors.New("per_page must be a positive integer")

	// ErrInvalidPage is returned when page is zero or negative.
	ErrInvalidPage = errors.New("page must be a positive integer")

	// ErrInvalidDateRange is returned when a range end is given without a range start.
	ErrInvalidDateRange = errors.New("date range end requires a range start")

	// ErrInvalidSortDirection is returned when sort is neither asc nor desc.
	ErrInvalidSortDirection = errors.New("sort must be asc or desc")

	// ErrInvalidQueryParams is returned for any other malformed list parameter.
	ErrInvalidQueryParams = errors.New("invalid query parameters")
)

// QueryErrorCode defines error codes for query errors.
// Format: QRY-XXYYYY where XX is category and YYYY is specific error.
type QueryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPerPage       QueryErrorCode = "QRY-010001"
	ErrCodeInvalidPage          QueryErrorCode = "QRY-010002"
	ErrCodeInvalidDateRange     QueryErrorCode = "QRY-010003"
	ErrCodeInvalidSortDirection QueryErrorCode = "QRY-010004"
	ErrCodeInvalidQueryParams   QueryErrorCode = "QRY-010005"
)

// QueryError represents a query parameter error with code and message.
type QueryError struct {
	Code    QueryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError with the given code and message.
func NewQueryError(code QueryErrorCode, message string, err error) *QueryError {
	return &QueryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
