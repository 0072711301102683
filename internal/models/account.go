package models

import (
	"github.com/shopspring/decimal"
)

// Account is a read-only projection over one account row. Balance is never
// stored in the source; it is recomputed from the opening balance plus the
// signed transaction sum on every call.
type Account struct {
	ID             int64           `json:"id"`
	ExternalID     string          `json:"external_id,omitempty"`
	Name           string          `json:"name"`
	Subtype        string          `json:"subtype"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Balance        decimal.Decimal `json:"balance"`
	Hidden         bool            `json:"hidden"`
	Institution    string          `json:"institution,omitempty"`
	LastFourDigits string          `json:"last_four_digits,omitempty"`

	// DataQualityNotes flags conditions such as mixed-currency legs summed
	// without conversion. Informational only, never an error.
	DataQualityNotes []string `json:"data_quality_notes,omitempty"`
}

// AccountListOptions controls account listing
type AccountListOptions struct {
	IncludeHidden bool   `json:"include_hidden"`
	Subtype       string `json:"subtype,omitempty"`
}

// AccountList is the account-listing result
type AccountList struct {
	Accounts   []Account `json:"accounts"`
	TotalCount int       `json:"total_count"`
}
