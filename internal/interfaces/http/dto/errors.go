package dto

import (
	"net/http"
	"strings"
)

// General error codes emitted by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation codes are handled by prefix below, so only codes with a
// non-obvious status need an entry here.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest: http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,

	// Resources
	ErrCodeNotFound:  http.StatusNotFound,
	"RATE_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	ErrCodeConflict:        http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"SLOT_UNAVAILABLE":     http.StatusConflict,

	// Business rules
	"INVALID_STATE":     http.StatusUnprocessableEntity,
	"CLIENT_ARCHIVED":   http.StatusUnprocessableEntity,
	"COLUMN_NOT_EMPTY":  http.StatusUnprocessableEntity,
	"NO_EMAIL":          http.StatusUnprocessableEntity,
	"DOCUMENT_LIMIT":    http.StatusUnprocessableEntity,
	"ALREADY_CANCELLED": http.StatusUnprocessableEntity,
	"ALREADY_ARCHIVED":  http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":  http.StatusUnprocessableEntity,
	"PERSON_REQUIRED":   http.StatusUnprocessableEntity,
	"TITLE_REQUIRED":    http.StatusUnprocessableEntity,
	"DETAILS_REQUIRED":  http.StatusUnprocessableEntity,

	"DOCUMENT_TOO_LARGE": http.StatusRequestEntityTooLarge,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	"STORAGE_ERROR": http.StatusBadGateway,
	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_* codes are request validation failures; everything unknown
// maps to 500 so unclassified errors never leak as client errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
