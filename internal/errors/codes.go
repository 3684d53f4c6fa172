// Package errors provides structured, coded errors for collaborator faults
// so callers can map fault classes to user-facing diagnostics.
package errors

import (
	"fmt"
)

// ErrorCode represents a specific fault class.
type ErrorCode string

const (
	// ErrCodeConnectivity indicates the collaborator could not be reached.
	ErrCodeConnectivity ErrorCode = "CONNECTIVITY"
	// ErrCodeBadStatus indicates the collaborator answered with a non-success status.
	ErrCodeBadStatus ErrorCode = "BAD_STATUS"
	// ErrCodeBadPayload indicates the collaborator response could not be decoded.
	ErrCodeBadPayload ErrorCode = "BAD_PAYLOAD"
	// ErrCodeEmptyCompletion indicates the completion response carried no content.
	ErrCodeEmptyCompletion ErrorCode = "EMPTY_COMPLETION"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeInternal indicates an unexpected internal fault.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// CodedError represents a structured error with a fault class.
type CodedError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// HTTPStatus carries the collaborator status code for ErrCodeBadStatus.
	HTTPStatus int
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CodedError) Unwrap() error {
	return e.Cause
}

// Connectivity creates a connectivity error.
func Connectivity(cause error) *CodedError {
	return &CodedError{Code: ErrCodeConnectivity, Message: "collaborator unreachable", Cause: cause}
}

// BadStatus creates a non-success status error.
func BadStatus(status int, cause error) *CodedError {
	return &CodedError{
		Code:       ErrCodeBadStatus,
		Message:    fmt.Sprintf("collaborator returned status %d", status),
		Cause:      cause,
		HTTPStatus: status,
	}
}

// BadPayload creates an undecodable response error.
func BadPayload(cause error) *CodedError {
	return &CodedError{Code: ErrCodeBadPayload, Message: "cannot decode collaborator response", Cause: cause}
}

// EmptyCompletion creates an empty completion error.
func EmptyCompletion() *CodedError {
	return &CodedError{Code: ErrCodeEmptyCompletion, Message: "completion response has no content"}
}

// ContextCanceled creates a context canceled error.
func ContextCanceled(cause error) *CodedError {
	return &CodedError{Code: ErrCodeContextCanceled, Message: "operation canceled", Cause: cause}
}

// Internal creates an internal fault error.
func Internal(msg string, cause error) *CodedError {
	return &CodedError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if cerr, ok := err.(*CodedError); ok {
		return cerr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a CodedError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if cerr, ok := err.(*CodedError); ok {
		return cerr.Code
	}
	return defaultCode
}

// StatusFromError extracts the collaborator HTTP status, or 0.
func StatusFromError(err error) int {
	if cerr, ok := err.(*CodedError); ok {
		return cerr.HTTPStatus
	}
	return 0
}
