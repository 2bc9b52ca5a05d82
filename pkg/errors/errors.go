package errors

import "fmt"

// ErrorType classifies failures at the transport boundary.
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypePersistence ErrorType = "persistence"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents an API or persistence error with type information.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Cause   error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ClassifyStatus maps an HTTP status code to an error type.
func ClassifyStatus(statusCode int) ErrorType {
	switch {
	case statusCode == 401 || statusCode == 403:
		return ErrorTypeAuth
	case statusCode == 429:
		return ErrorTypeRateLimit
	case statusCode >= 500:
		return ErrorTypeServerError
	case statusCode == 0:
		return ErrorTypeNetwork
	default:
		return ErrorTypeUnknown
	}
}
