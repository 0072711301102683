package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorResponse represents the standardized error payload returned to the
// tool-dispatch layer
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the detailed error information
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithDetails adds detail messages to the error response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// NewErrorResponse creates a standardized error response with the given error
// code and trace ID. Optional details can be added using functional options.
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
			Details: []string{},
		},
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// ResponseFromError converts any error into an ErrorResponse. AppErrors keep
// their code and message; everything else becomes a generic system error so
// internal details never reach the caller.
func ResponseFromError(err error, traceID string) *ErrorResponse {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.TraceID != "" {
			traceID = appErr.TraceID
		}
		return &ErrorResponse{
			Error: ErrorDetail{
				Code:    string(appErr.Code),
				Message: appErr.Message,
				TraceID: traceID,
				Details: []string{},
			},
		}
	}
	return NewErrorResponse(SystemInternalError, traceID)
}

// NewValidationErrorFromList creates a filter validation error from a list of
// detail messages
func NewValidationErrorFromList(details []string, traceID string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(FilterValidationFailed),
			Message: GetErrorMessage(FilterValidationFailed),
			Details: details,
			TraceID: traceID,
		},
	}
}

// ToJSON serializes the error response to JSON bytes
func (er *ErrorResponse) ToJSON() ([]byte, error) {
	return json.Marshal(er)
}

// String returns a string representation of the error response
func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Error.Code, er.Error.Message, er.Error.TraceID)
}
