package dto

import (
	"errors"
	"net/http"

	"github.com/stockledger/backend/internal/domain/shared"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// The API contract is deliberately coarse: input contract violations are
// the client's fault (400), everything else is reported as a server
// failure (500) - including rejected reversals and insufficient stock.
var ErrorCodeHTTPStatus = map[string]int{
	"VALIDATION_FAILED": http.StatusBadRequest,

	"INSUFFICIENT_STOCK":    http.StatusInternalServerError,
	"NOT_FOUND":             http.StatusInternalServerError,
	"UNSUPPORTED_OPERATION": http.StatusInternalServerError,
	"STORAGE_FAILURE":       http.StatusInternalServerError,
}

// StatusForError returns the HTTP status code for an error.
// Unknown errors map to 500 Internal Server Error.
func StatusForError(err error) int {
	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if status, ok := ErrorCodeHTTPStatus[domainErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
