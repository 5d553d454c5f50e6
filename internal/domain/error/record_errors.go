// Package error defines domain-specific errors for the Finance Records application.
package error

import "errors"

// Record domain errors, shared by incomes and expenses.
var (
	// ErrRecordNotFound is returned when an income or expense is not found in the system.
	ErrRecordNotFound = errors.New("record not found")

	// ErrNotAuthorizedToModifyRecord is returned when user is not authorized to modify a record.
	ErrNotAuthorizedToModifyRecord = errors.New("not authorized to modify record")

	// ErrInvalidRecordValue is returned when the record value is negative.
	ErrInvalidRecordValue = errors.New("record value must not be negative")

	// ErrRecordNameTooLong is returned when the record name exceeds the maximum length.
	ErrRecordNameTooLong = errors.New("record name too long")

	// ErrCategoryNotFoundForRecord is returned when the referenced category is not found.
	ErrCategoryNotFoundForRecord = errors.New("category not found")

	// ErrCategoryNotOwnedByUser is returned when the referenced category belongs to another owner.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")
)

// RecordErrorCode defines error codes for record errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRecordNotFound         RecordErrorCode = "REC-010001"
	ErrCodeInvalidRecordValue     RecordErrorCode = "REC-010002"
	ErrCodeRecordNameTooLong      RecordErrorCode = "REC-010003"
	ErrCodeRecordCategoryNotFound RecordErrorCode = "REC-010004"
	ErrCodeRecordCategoryNotOwned RecordErrorCode = "REC-010005"
	ErrCodeNotAuthorizedRecord    RecordErrorCode = "REC-010006"
	ErrCodeMissingRecordFields    RecordErrorCode = "REC-010007"
)

// RecordError represents a record error with code and message.
type RecordError struct {
	Code    RecordErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError with the given code and message.
func NewRecordError(code RecordErrorCode, message string, err error) *RecordError {
	return &RecordError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
