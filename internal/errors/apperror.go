package errors

import (
	"errors"
	"fmt"
)

// AppError is the typed error carried across internal layers. It pairs a
// stable error code with a caller-safe message and keeps the underlying
// cause available for logging via Unwrap.
type AppError struct {
	Code    ErrorCode
	Message string
	TraceID string
	Err     error
}

// New creates an AppError with the code's default message
func New(code ErrorCode, traceID string) *AppError {
	return &AppError{
		Code:    code,
		Message: GetErrorMessage(code),
		TraceID: traceID,
	}
}

// Newf creates an AppError with a custom caller-safe message
func Newf(code ErrorCode, traceID string, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		TraceID: traceID,
	}
}

// Wrap creates an AppError that records err as its cause
func Wrap(code ErrorCode, traceID string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: GetErrorMessage(code),
		TraceID: traceID,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so callers can compare against sentinel
// instances without caring about trace IDs or wrapped causes.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// CodeOf extracts the error code from err, or SystemInternalError when err
// is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return SystemInternalError
}

// IsCode reports whether err carries the given error code
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
