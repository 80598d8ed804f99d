package debterrors

import (
	"net/http"

	"rahalatek/internal/shared/apperror"
)

var (
	ErrDebtNotFound = apperror.New(
		apperror.CodeNotFound,
		"debt record not found",
		http.StatusNotFound,
	)
	ErrAlreadyClosed = apperror.New(
		apperror.CodeInvalidState,
		"debt record is already closed",
		http.StatusBadRequest,
	)
	ErrNotClosed = apperror.New(
		apperror.CodeInvalidState,
		"only a closed debt record can be reopened",
		http.StatusBadRequest,
	)
	ErrInvalidDebtType = apperror.New(
		apperror.CodeInvalidInput,
		"debt type must be OWED_TO_OFFICE or OWED_FROM_OFFICE",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid debt status filter",
		http.StatusBadRequest,
	)
)
