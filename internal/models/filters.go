package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultResultLimit applies when a filter does not request a limit
	DefaultResultLimit = 1000
	// MaxResultLimit is the hard ceiling enforced regardless of the caller's
	// request
	MaxResultLimit = 1000
	// DefaultPeriod applies when a filter carries neither dates nor a phrase
	DefaultPeriod = "last 3 months"
)

// TransactionFilter carries the search criteria for transaction assembly.
// Either Start/End or Period may be set; Period wins when both are present.
type TransactionFilter struct {
	Start  time.Time `json:"start,omitempty"`
	End    time.Time `json:"end,omitempty"`
	Period string    `json:"period,omitempty"`

	// AccountIDs defaults to every non-hidden account when empty
	AccountIDs []int64 `json:"account_ids,omitempty"`

	// Category and Payee are case-insensitive substring matches applied
	// after resolution
	Category string `json:"category,omitempty"`
	Payee    string `json:"payee,omitempty"`

	MinAmount *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`

	Subtypes []string `json:"subtypes,omitempty"`

	Limit int `json:"limit,omitempty" validate:"omitempty,min=0"`
}

// Resolve normalizes the filter against a reference date: natural-language
// periods become explicit dates, missing dates get the default period, and
// the limit is defaulted and clamped to the hard ceiling.
func (f *TransactionFilter) Resolve(ref time.Time) error {
	if f.Period == "" && f.Start.IsZero() && f.End.IsZero() {
		f.Period = DefaultPeriod
	}

	if f.Period != "" {
		r, err := ResolvePeriod(f.Period, ref)
		if err != nil {
			return err
		}
		f.Start, f.End = r.Start, r.End
	} else {
		if f.End.IsZero() {
			f.End = ref
		}
		if f.Start.IsZero() {
			// An end-only filter must not reach back to the zero time; it
			// gets the default period anchored at its end date instead
			r, err := ResolvePeriod(DefaultPeriod, f.End)
			if err != nil {
				return err
			}
			f.Start = r.Start
		}
	}

	if f.Limit <= 0 {
		f.Limit = DefaultResultLimit
	}
	if f.Limit > MaxResultLimit {
		f.Limit = MaxResultLimit
	}

	return nil
}

// Range returns the resolved date range
func (f *TransactionFilter) Range() DateRange {
	return DateRange{Start: f.Start, End: f.End}
}

// Expense grouping keys for category analytics
const (
	GroupByCategory = "category"
	GroupByPayee    = "payee"
)

// AnalyticsRequest carries the shared criteria for aggregate analyses
type AnalyticsRequest struct {
	Start  time.Time `json:"start,omitempty"`
	End    time.Time `json:"end,omitempty"`
	Period string    `json:"period,omitempty"`

	AccountIDs []int64 `json:"account_ids,omitempty"`

	// GroupBy selects category (default) or payee grouping for expense
	// breakdowns
	GroupBy string `json:"group_by,omitempty" validate:"omitempty,oneof=category payee"`
}

// TrendRequest carries the criteria for trend series
type TrendRequest struct {
	Start  time.Time `json:"start,omitempty"`
	End    time.Time `json:"end,omitempty"`
	Period string    `json:"period,omitempty"`

	AccountIDs  []int64     `json:"account_ids,omitempty"`
	Granularity Granularity `json:"granularity,omitempty"`
}
