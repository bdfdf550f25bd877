// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Dialog errors
	ErrCodeUnrecognizedIntent ErrorCode = "UNRECOGNIZED_INTENT"
	ErrCodeParseError         ErrorCode = "PARSE_ERROR"

	// Normalization errors
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidFieldType     ErrorCode = "INVALID_FIELD_TYPE"

	// Collaborator errors
	ErrCodeSearchQueryFailed      ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeRecordLookupFailed     ErrorCode = "RECORD_LOOKUP_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewUnrecognizedIntentError creates a non-retryable dialog dispatch error.
func NewUnrecognizedIntentError(intentName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnrecognizedIntent,
		Message:   "Intent is not handled by this dialog",
		Details:   fmt.Sprintf("intent: %s", intentName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError creates a non-retryable payload parse error.
func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Malformed event payload",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredFieldError creates a non-retryable normalization error
// naming the field no accepted key yielded a value for.
func NewMissingRequiredFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Message:   "Required field missing from payload",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFieldTypeError creates a non-retryable normalization error for a
// field whose raw value cannot be coerced to its declared type.
func NewInvalidFieldTypeError(field, rawValue string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFieldType,
		Message:   "Field value has invalid type",
		Details:   fmt.Sprintf("field: %s, value: %q", field, rawValue),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search collaborator error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search index query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordLookupFailedError creates a retryable record-store error.
func NewRecordLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordLookupFailed,
		Message:   "Record store lookup error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the error code from err, or "INTERNAL_ERROR" when err is
// not a StandardError. Used at the turn and job boundaries so the original
// failure cause is logged before it is coalesced into a generic outcome.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return "INTERNAL_ERROR"
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INTENT") || strings.Contains(codeStr, "PARSE"):
		return "DIALOG"
	case strings.Contains(codeStr, "FIELD"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "RECORD"):
		return "STORE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
