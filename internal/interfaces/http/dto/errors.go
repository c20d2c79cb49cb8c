package dto

import "net/http"

// Standard error codes returned by the API
const (
	// General
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeAlreadyExists   = "ALREADY_EXISTS"
	ErrCodeValidationError = "VALIDATION_ERROR"

	// Auth
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenRevoked       = "TOKEN_REVOKED"
	ErrCodeAccountLocked      = "ACCOUNT_LOCKED"

	// Rate limiting
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	// Not found
	ErrCodeNotFound:    http.StatusNotFound,
	"USER_NOT_FOUND":   http.StatusNotFound,
	"UPLOAD_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	ErrCodeAlreadyExists:    http.StatusConflict,
	"DUPLICATE_PERIOD":      http.StatusConflict,
	"CEDULA_EXISTS":         http.StatusConflict,
	"USERNAME_EXISTS":       http.StatusConflict,
	"PLAN_IN_USE":           http.StatusConflict,
	"HAS_PAYMENTS":          http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,

	// Unprocessable state transitions
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":  http.StatusUnprocessableEntity,
	"INVALID_STOCK":       http.StatusUnprocessableEntity,
	"PLAN_INACTIVE":       http.StatusUnprocessableEntity,
	"ALREADY_PAID":        http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_DEACTIVATED": http.StatusUnprocessableEntity,

	// Auth
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	"ACCOUNT_LOCKED":          http.StatusLocked,
	"ACCOUNT_DEACTIVATED":     http.StatusForbidden,
	"ACCOUNT_INACTIVE":        http.StatusForbidden,
	"USER_DEACTIVATED":        http.StatusForbidden,

	// Rate limiting
	ErrCodeRateLimitExceeded: http.StatusTooManyRequests,

	// Infrastructure
	"DB_ERROR":             http.StatusInternalServerError,
	"UPLOAD_URL_FAILED":    http.StatusBadGateway,
	"STORAGE_CHECK_FAILED": http.StatusBadGateway,

	// Validation
	ErrCodeInvalidRequest:  http.StatusBadRequest,
	ErrCodeValidationError: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for an error code. Codes with an
// INVALID_ prefix that are not explicitly mapped are treated as bad input.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
