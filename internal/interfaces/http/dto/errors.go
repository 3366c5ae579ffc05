package dto

import "net/http"

// Error codes raised by the interface layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map fall through to 500.
var errorCodeHTTPStatus = map[string]int{
	// Intake validation -> 400 Bad Request
	"MISSING_FIELDS":       http.StatusBadRequest,
	"INVALID_PHONE":        http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_PRODUCT":      http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_AMOUNT":       http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_UNIT_COST":    http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_INPUT":        http.StatusBadRequest,
	"NO_PLAUSIBLE_PHONES":  http.StatusBadRequest,
	"EMPTY_FILE":           http.StatusBadRequest,
	"INVALID_ENCODING":     http.StatusBadRequest,
	"INVALID_COLUMN":       http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	"SOURCE_CODE_REQUIRED": http.StatusBadRequest,
	"SOURCE_PRODUCT_REQUIRED": http.StatusBadRequest,
	"SUPPLIER_NAME_REQUIRED":  http.StatusBadRequest,

	// Auth
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,

	// Resources
	ErrCodeNotFound:  http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	// Business state -> 422 Unprocessable Entity
	"INVALID_STATE":     http.StatusUnprocessableEntity,
	"PURCHASE_RECEIVED": http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
