package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
)

// Transaction is a fully resolved transaction record. Amount is the signed
// effect on the linked account: negative for withdrawals and outgoing
// transfer legs, positive for deposits and incoming ones. The sign comes
// from the stored account-side field, never re-derived from the subtype.
type Transaction struct {
	ID          int64           `json:"id"`
	Subtype     string          `json:"subtype"`
	AccountID   int64           `json:"account_id"`
	AccountName string          `json:"account_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Category    string          `json:"category"`
	CategoryID  int64           `json:"category_id,omitempty"`
	// CategoryPath is the parent-to-leaf hierarchy, e.g. "Food ▶ Groceries"
	CategoryPath string `json:"category_path,omitempty"`
	Payee        string `json:"payee,omitempty"`
	Currency     string `json:"currency"`
	Reconciled   bool   `json:"reconciled"`

	// Set when the transaction posted in a currency other than the account's
	OriginalCurrency string           `json:"original_currency,omitempty"`
	OriginalAmount   *decimal.Decimal `json:"original_amount,omitempty"`
}

// IsExpense reports whether the transaction counts as spending: a negative
// amount on a non-transfer subtype. Transfer legs move money between owned
// accounts and count as neither expense nor income.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative() && !t.IsTransfer()
}

// IsIncome reports whether the transaction counts as income: a positive
// amount on a non-transfer subtype
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive() && !t.IsTransfer()
}

// IsTransfer reports whether the transaction is one leg of a move between
// owned accounts. Transfers are excluded from income/expense analytics.
func (t *Transaction) IsTransfer() bool {
	return catalog.IsTransferSubtype(t.Subtype)
}

// TransactionSearchResult carries assembled transactions plus the batch
// bookkeeping the assembler is required to report: rows skipped for shape
// violations and rows dropped because their account could not be resolved.
type TransactionSearchResult struct {
	Transactions     []Transaction `json:"transactions"`
	TotalCount       int           `json:"total_count"`
	Period           DateRange     `json:"period"`
	SkippedMalformed int           `json:"skipped_malformed,omitempty"`
	OrphansDropped   int           `json:"orphans_dropped,omitempty"`
}
