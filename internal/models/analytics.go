package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryBreakdown contains aggregated expense data for one group
type CategoryBreakdown struct {
	Category         string          `json:"category"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int64           `json:"transaction_count"`
	AverageAmount    decimal.Decimal `json:"average_amount"`
	// PercentageOfTotal is 0..100 relative to the period's grand total
	PercentageOfTotal decimal.Decimal `json:"percentage_of_total"`
}

// ExpenseAnalysis is the category/payee breakdown result for a period
type ExpenseAnalysis struct {
	Period        DateRange           `json:"period"`
	GroupBy       string              `json:"group_by"`
	TotalExpenses decimal.Decimal     `json:"total_expenses"`
	Breakdown     []CategoryBreakdown `json:"breakdown"`
}

// IncomeExpenseSummary summarizes one period. SavingsRate is a percentage
// of gross income; nil means undefined (income was zero), which is a normal
// result and never an error.
type IncomeExpenseSummary struct {
	Period           DateRange           `json:"period"`
	TotalIncome      decimal.Decimal     `json:"total_income"`
	TotalExpenses    decimal.Decimal     `json:"total_expenses"`
	NetSavings       decimal.Decimal     `json:"net_savings"`
	SavingsRate      *decimal.Decimal    `json:"savings_rate,omitempty"`
	IncomeCount      int64               `json:"income_count"`
	ExpenseCount     int64               `json:"expense_count"`
	ExpenseBreakdown []CategoryBreakdown `json:"expense_breakdown,omitempty"`
}

// TrendPoint is one calendar bucket in a trend series. Buckets with no
// transactions still appear with zero values.
type TrendPoint struct {
	Label            string           `json:"label"`
	Start            time.Time        `json:"start"`
	End              time.Time        `json:"end"`
	Income           decimal.Decimal  `json:"income"`
	Expenses         decimal.Decimal  `json:"expenses"`
	Net              decimal.Decimal  `json:"net"`
	SavingsRate      *decimal.Decimal `json:"savings_rate,omitempty"`
	TransactionCount int64            `json:"transaction_count"`
}

// TrendAnalysis is a gap-free series of calendar buckets over a period
type TrendAnalysis struct {
	Period      DateRange    `json:"period"`
	Granularity Granularity  `json:"granularity"`
	Points      []TrendPoint `json:"points"`
}
