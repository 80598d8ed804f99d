package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidToken = New(
		CodeUnauthorized,
		"Invalid authentication token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = New(
		CodeUnauthorized,
		"Authentication token has expired",
		http.StatusUnauthorized,
	)
)

// RequiredField builds an INVALID_INPUT error naming the missing field.
func RequiredField(field string) *AppError {
	err := New(CodeInvalidInput, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
	err.Details = map[string]string{"field": field}
	return err
}

// InvalidField builds an INVALID_INPUT error naming the rejected field.
func InvalidField(field string) *AppError {
	err := New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
	err.Details = map[string]string{"field": field}
	return err
}

// Unavailable marks a collaborator fetch that failed or timed out. Batch
// aggregations recover from it locally; it is never fatal to the batch.
func Unavailable(source string, err error) *AppError {
	return Wrap(err, CodeServiceUnavailable,
		fmt.Sprintf("%s is unavailable", source), http.StatusServiceUnavailable)
}
