package dto

import "net/http"

// Error code constants. Format: ERR_<CATEGORY>
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeNotFound is used when a sheet, order, or invoice is unknown
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeIndexOutOfRange is used when a row index misses the sheet
	ErrCodeIndexOutOfRange = "ERR_INDEX_OUT_OF_RANGE"
	// ErrCodeParse is used when CSV input cannot be imported
	ErrCodeParse = "ERR_PARSE"
	// ErrCodePersistence is used when the durable envelope save fails
	ErrCodePersistence = "ERR_PERSISTENCE"
	// ErrCodeUnavailable is used when an optional collaborator is not configured
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:         http.StatusInternalServerError,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeIndexOutOfRange: http.StatusBadRequest,
	ErrCodeParse:           http.StatusUnprocessableEntity,
	ErrCodePersistence:     http.StatusInternalServerError,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for codes it does not know
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to wire codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"INDEX_OUT_OF_RANGE": ErrCodeIndexOutOfRange,
	"PARSE_ERROR":        ErrCodeParse,
	"PERSISTENCE_ERROR":  ErrCodePersistence,
	"INVALID_INPUT":      ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Codes already in wire format or unknown pass through unchanged.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := domainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
