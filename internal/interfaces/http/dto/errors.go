package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when the agency scope is missing or invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks access to the resource
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeDuplicateRequest is used when an idempotency key is replayed
	// with a different request body
	ErrCodeDuplicateRequest = "ERR_DUPLICATE_REQUEST"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeAmountMismatch is used when component amounts do not add up
	ErrCodeAmountMismatch = "ERR_AMOUNT_MISMATCH"
	// ErrCodeOverAllocated is used when allocations would exceed a collection total
	ErrCodeOverAllocated = "ERR_OVER_ALLOCATED"
	// ErrCodeExceedsInvoiceTotal is used when returns would exceed the invoiced amount
	ErrCodeExceedsInvoiceTotal = "ERR_EXCEEDS_INVOICE_TOTAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeTooManyRequests is an alias for rate limiting
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:        http.StatusUnprocessableEntity,
	ErrCodeAmountMismatch:      http.StatusUnprocessableEntity,
	ErrCodeOverAllocated:       http.StatusUnprocessableEntity,
	ErrCodeExceedsInvoiceTotal: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to standardized codes.
// Domain aggregates raise vocabulary like CUSTOMER_NOT_FOUND or
// OVER_ALLOCATED; this table decides how each surfaces over HTTP.
var LegacyErrorCodeMapping = map[string]string{
	// Lookups
	"NOT_FOUND":          ErrCodeNotFound,
	"CUSTOMER_NOT_FOUND": ErrCodeNotFound,
	"INVOICE_NOT_FOUND":  ErrCodeNotFound,
	"CHEQUE_NOT_FOUND":   ErrCodeNotFound,

	// Conflicts
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"DUPLICATE_REQUEST":    ErrCodeDuplicateRequest,

	// Input
	"INVALID_INPUT":    ErrCodeInvalidInput,
	"BAD_REQUEST":      ErrCodeBadRequest,
	"VALIDATION_ERROR": ErrCodeValidation,
	"NO_ITEMS":         ErrCodeValidation,

	// Auth
	"UNAUTHORIZED": ErrCodeUnauthorized,
	"FORBIDDEN":    ErrCodeForbidden,

	// Business rules
	"INVALID_STATE":             ErrCodeInvalidState,
	"AMOUNT_MISMATCH":           ErrCodeAmountMismatch,
	"OVER_ALLOCATED":            ErrCodeOverAllocated,
	"EXCEEDS_INVOICE_TOTAL":     ErrCodeExceedsInvoiceTotal,
	"INVOICE_CUSTOMER_MISMATCH": ErrCodeBusinessRule,
	"NOTHING_TO_ALLOCATE":       ErrCodeBusinessRule,
	"NO_OPEN_INVOICES":          ErrCodeBusinessRule,
	"ALREADY_ALLOCATED":         ErrCodeBusinessRule,
	"ALREADY_ACTIVE":            ErrCodeBusinessRule,
	"ALREADY_INACTIVE":          ErrCodeBusinessRule,
	"HAS_INVOICES":              ErrCodeBusinessRule,

	// Internal
	"INTERNAL_ERROR":       ErrCodeInternal,
	"INVOICE_CHECK_FAILED": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized
// format. Codes in the INVALID_ family come from aggregate constructor
// validation and normalize to ERR_VALIDATION unless mapped explicitly.
// Codes already in the new format or otherwise unknown pass through.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeValidation
	}
	return code
}
