// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-records/backend/internal/domain/error"
	"github.com/finance-records/backend/internal/integration/entrypoint/dto"
)

// respondError maps a domain error onto an HTTP status and the coded error
// body. Status codes live only here; use cases stay transport-agnostic.
func respondError(ctx *gin.Context, err error) {
	status := statusFor(err)

	message := "Internal server error"
	if status != http.StatusInternalServerError {
		message = err.Error()
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  codeFor(err),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainerror.ErrCategoryNotFound),
		errors.Is(err, domainerror.ErrRecordNotFound),
		errors.Is(err, domainerror.ErrUserNotFound),
		errors.Is(err, domainerror.ErrNotAuthorizedToModifyCategory),
		errors.Is(err, domainerror.ErrNotAuthorizedToModifyRecord):
		// Ownership violations answer exactly like a missing resource, so
		// probing another user's ids reveals nothing.
		return http.StatusNotFound

	case errors.Is(err, domainerror.ErrCategoryNameExists),
		errors.Is(err, domainerror.ErrEmailAlreadyExists):
		return http.StatusConflict

	case errors.Is(err, domainerror.ErrInvalidCredentials),
		errors.Is(err, domainerror.ErrInvalidToken),
		errors.Is(err, domainerror.ErrExpiredToken):
		return http.StatusUnauthorized

	case errors.Is(err, domainerror.ErrCategoryNameTooLong),
		errors.Is(err, domainerror.ErrRecordNameTooLong),
		errors.Is(err, domainerror.ErrInvalidRecordValue),
		errors.Is(err, domainerror.ErrCategoryNotFoundForRecord),
		errors.Is(err, domainerror.ErrCategoryNotOwnedByUser),
		errors.Is(err, domainerror.ErrWeakPassword),
		errors.Is(err, domainerror.ErrInvalidEmail),
		errors.Is(err, domainerror.ErrInvalidPage),
		errors.Is(err, domainerror.ErrInvalidPerPage),
		errors.Is(err, domainerror.ErrInvalidDateRange),
		errors.Is(err, domainerror.ErrInvalidSortDirection),
		errors.Is(err, domainerror.ErrInvalidQueryParams):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func codeFor(err error) string {
	var categoryErr *domainerror.CategoryError
	if errors.As(err, &categoryErr) {
		return string(categoryErr.Code)
	}
	var recordErr *domainerror.RecordError
	if errors.As(err, &recordErr) {
		return string(recordErr.Code)
	}
	var queryErr *domainerror.QueryError
	if errors.As(err, &queryErr) {
		return string(queryErr.Code)
	}
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return string(authErr.Code)
	}
	return ""
}
