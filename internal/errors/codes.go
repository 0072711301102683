package errors

// ErrorCode represents a standardized error code surfaced through the tool boundary
type ErrorCode string

// Store error codes (STORE_*)
const (
	StoreUnavailable     ErrorCode = "STORE_001"
	StoreLocked          ErrorCode = "STORE_002"
	StoreMalformedRecord ErrorCode = "STORE_003"
	StoreQueryFailed     ErrorCode = "STORE_004"
)

// Filter error codes (FILTER_*)
const (
	FilterInvalidDateRange   ErrorCode = "FILTER_001"
	FilterUnknownSubtype     ErrorCode = "FILTER_002"
	FilterInvalidAmountRange ErrorCode = "FILTER_003"
	FilterInvalidLimit       ErrorCode = "FILTER_004"
	FilterUnknownPeriod      ErrorCode = "FILTER_005"
	FilterUnknownGranularity ErrorCode = "FILTER_006"
	FilterValidationFailed   ErrorCode = "FILTER_007"
)

// Account error codes (ACCOUNT_*). ACCOUNT_002 is retired: a kind-mismatched
// id is reported as ACCOUNT_001, indistinguishable from absence.
const (
	AccountNotFound       ErrorCode = "ACCOUNT_001"
	AccountUnknownSubtype ErrorCode = "ACCOUNT_003"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound ErrorCode = "CATEGORY_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError ErrorCode = "SYSTEM_001"
)

// errorMessages maps error codes to their default human-readable messages.
// Messages never leak store internals (table or column names) to the caller.
var errorMessages = map[ErrorCode]string{
	StoreUnavailable:     "Database file is missing or unreadable",
	StoreLocked:          "Database is locked by another process; retry later",
	StoreMalformedRecord: "Record does not match the expected shape for its type",
	StoreQueryFailed:     "Database query failed",

	FilterInvalidDateRange:   "End date must not be before start date",
	FilterUnknownSubtype:     "Unsupported transaction subtype",
	FilterInvalidAmountRange: "Minimum amount must not exceed maximum amount",
	FilterInvalidLimit:       "Result limit must be a positive integer",
	FilterUnknownPeriod:      "Unrecognized time period phrase",
	FilterUnknownGranularity: "Unsupported trend granularity",
	FilterValidationFailed:   "Filter validation failed",

	AccountNotFound:       "Account not found",
	AccountUnknownSubtype: "Account has an unsupported subtype",

	CategoryNotFound: "Category not found",

	SystemInternalError: "An internal error occurred",
}

// GetErrorMessage returns the default message for an error code
func GetErrorMessage(code ErrorCode) string {
	if message, exists := errorMessages[code]; exists {
		return message
	}
	return "An unexpected error occurred"
}

// IsFatal reports whether an error code aborts the whole tool call.
// Malformed records are the only recoverable case: the offending row is
// logged and skipped while the batch continues.
func IsFatal(code ErrorCode) bool {
	return code != StoreMalformedRecord
}
