package compensationerrors

import (
	"net/http"

	"rahalatek/internal/shared/apperror"
)

var (
	ErrEntryMonthOccupied = apperror.New(
		apperror.CodeConflict,
		"An entry already exists for this user and month",
		http.StatusConflict,
	)

	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"No entry exists for this user and month",
		http.StatusNotFound,
	)
)
