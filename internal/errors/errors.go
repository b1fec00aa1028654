package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an error so chat adapters can pick a reply without parsing messages
type Code string

const (
	// CodeUnknown is used for errors that did not originate in this module
	CodeUnknown Code = "unknown"

	// CodeUnknownAttribute means the caller named an action or attribute outside the fixed set
	CodeUnknownAttribute Code = "unknown_attribute"

	// CodeStorage means the attribute store failed to read or write
	CodeStorage Code = "storage"

	// CodeInvalidArgument indicates the caller broke an input contract (nil input, negative dice)
	CodeInvalidArgument Code = "invalid_argument"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"
)

// Error is the module's error type: a code, a message, an optional cause and metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error, keeping the code of an inner *Error when there is one
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var inner *Error
	if errors.As(err, &inner) {
		return &Error{
			Code:    inner.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(inner.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error and forces the given code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// UnknownAttribute reports a name that is not one of the known actions or attributes
func UnknownAttribute(name string) *Error {
	return Newf(CodeUnknownAttribute, "unknown action or attribute %q", name).
		WithMeta("name", name)
}

// Storage wraps a persistence failure. The cause is kept for logging
func Storage(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return WrapWithCode(err, CodeStorage, message)
}

// Storagef wraps a persistence failure with a formatted message
func Storagef(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return WrapWithCode(err, CodeStorage, fmt.Sprintf(format, args...))
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// IsUnknownAttribute checks if the error names an unknown action or attribute
func IsUnknownAttribute(err error) bool {
	return Is(err, CodeUnknownAttribute)
}

// IsStorage checks if the error is a storage failure
func IsStorage(err error) bool {
	return Is(err, CodeStorage)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
