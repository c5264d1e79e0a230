package dto

import (
	"net/http"

	"github.com/erp/erpcore/internal/domain/shared"
)

// Transport error codes. Domain codes live in the shared package.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeRouteNotFound   = "ROUTE_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRouteNotFound:   http.StatusNotFound,

	// Request binding failures use 400; a domain VALIDATION_ERROR means the
	// request was well formed but broke a business rule.
	shared.CodeValidation:                  http.StatusUnprocessableEntity,
	shared.CodeMissingAccountConfiguration: http.StatusUnprocessableEntity,
	shared.CodeInvalidAccount:              http.StatusUnprocessableEntity,
	shared.CodeInvalidAmount:               http.StatusUnprocessableEntity,
	shared.CodeInvalidState:                http.StatusUnprocessableEntity,
	shared.CodeInsufficientStock:           http.StatusUnprocessableEntity,

	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeAlreadyExists: http.StatusConflict,

	shared.CodeUnauthorized: http.StatusUnauthorized,
	shared.CodeForbidden:    http.StatusForbidden,

	shared.CodeUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
