package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
)

// dateLayout is the wire format for explicit tool date arguments
const dateLayout = "2006-01-02"

// fieldErrorCodes maps argument fields with dedicated error codes so a bad
// period phrase surfaces as FILTER_005 rather than a generic validation
// failure
var fieldErrorCodes = map[string]errors.ErrorCode{
	"period":      errors.FilterUnknownPeriod,
	"subtypes":    errors.FilterUnknownSubtype,
	"granularity": errors.FilterUnknownGranularity,
	"limit":       errors.FilterInvalidLimit,
	"subtype":     errors.FilterValidationFailed,
}

// rootField strips the index from dive-validated fields such as subtypes[2]
func rootField(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}

// newTraceID returns the identifier that ties one tool invocation's log
// lines and error payload together
func newTraceID() string {
	return uuid.New().String()
}

// decodeArgs binds the raw argument map onto a typed argument struct. The
// JSON round trip applies the same coercion rules as any other JSON client
// payload, so a fractional account id fails instead of silently truncating.
func decodeArgs(request mcp.CallToolRequest, dst any) error {
	raw, err := json.Marshal(request.GetArguments())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// parseDate parses an explicit date argument. End dates extend to the last
// second of the day so the range stays inclusive.
func parseDate(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	if endOfDay {
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	return t, nil
}

// decimalPtr converts an optional float argument to a decimal pointer
func decimalPtr(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
