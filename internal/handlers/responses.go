package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
)

// toolResult marshals a successful payload into a text tool result
func toolResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// toolError converts an internal error into a structured error result. The
// error travels inside the tool result rather than as a protocol failure so
// the assistant can read the code and adjust its request.
func toolError(ctx context.Context, tool string, traceID string, err error) (*mcp.CallToolResult, error) {
	response := errors.ResponseFromError(err, traceID)

	logLevel := slog.LevelWarn
	if errors.IsFatal(errors.CodeOf(err)) {
		logLevel = slog.LevelError
	}
	slog.Log(ctx, logLevel, "tool call failed",
		"tool", tool,
		"trace_id", traceID,
		"error_code", response.Error.Code,
		"error", err.Error(),
	)

	payload, marshalErr := response.ToJSON()
	if marshalErr != nil {
		return mcp.NewToolResultError(response.String()), nil
	}
	return mcp.NewToolResultError(string(payload)), nil
}

// validationError builds an error result from field-level validation
// failures, mapping well-known fields onto their dedicated error codes
func validationError(tool string, traceID string, fieldErrors map[string]string) (*mcp.CallToolResult, error) {
	code := errors.FilterValidationFailed
	details := make([]string, 0, len(fieldErrors))
	for field, msg := range fieldErrors {
		details = append(details, field+": "+msg)
		if mapped, ok := fieldErrorCodes[rootField(field)]; ok {
			code = mapped
		}
	}
	sort.Strings(details)

	slog.Warn("tool arguments rejected",
		"tool", tool,
		"trace_id", traceID,
		"error_code", string(code),
		"details", details,
	)

	response := errors.NewErrorResponse(code, traceID, errors.WithDetails(details...))
	payload, err := response.ToJSON()
	if err != nil {
		return mcp.NewToolResultError(response.String()), nil
	}
	return mcp.NewToolResultError(string(payload)), nil
}
