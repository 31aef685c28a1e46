package dto

import (
	"net/http"

	"github.com/shivaccounts/backend/internal/domain/shared"
)

// Transport-level error codes, used when a request fails before reaching
// the domain
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps the engine's error taxonomy to HTTP status codes.
// Malformed input is a 400, missing targets a 404, conflicts with current
// state a 409, and business rule violations a 422.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeInvalidInput: http.StatusBadRequest,
	shared.CodeInvalidRange: http.StatusBadRequest,

	shared.CodeNotFound: http.StatusNotFound,

	shared.CodeEntityInUse:       http.StatusConflict,
	shared.CodeInvalidTransition: http.StatusConflict,

	shared.CodeReferentialIntegrity: http.StatusUnprocessableEntity,
	shared.CodeOrderLocked:          http.StatusUnprocessableEntity,
	shared.CodeEmptyOrder:           http.StatusUnprocessableEntity,
	shared.CodeOverpayment:          http.StatusUnprocessableEntity,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
