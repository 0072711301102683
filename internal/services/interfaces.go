package services

import (
	"context"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
)

// AccountServiceInterface lists accounts and computes balances
type AccountServiceInterface interface {
	ListAccounts(ctx context.Context, opts models.AccountListOptions) (*models.AccountList, error)
	GetAccount(ctx context.Context, accountID int64) (*models.Account, error)
}

// TransactionServiceInterface assembles fully resolved transactions from
// raw store rows
type TransactionServiceInterface interface {
	SearchTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionSearchResult, error)
}

// AnalyticsServiceInterface derives aggregate financial facts from
// assembled transactions
type AnalyticsServiceInterface interface {
	ExpensesByCategory(ctx context.Context, req models.AnalyticsRequest) (*models.ExpenseAnalysis, error)
	IncomeVsExpenses(ctx context.Context, req models.AnalyticsRequest) (*models.IncomeExpenseSummary, error)
	TrendSeries(ctx context.Context, req models.TrendRequest) (*models.TrendAnalysis, error)
}
