package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/validation"
)

// UnknownPayee groups expenses whose transaction carries no payee when
// breakdowns are grouped by payee
const UnknownPayee = "Unknown"

var oneHundred = decimal.NewFromInt(100)

type analyticsService struct {
	tx TransactionServiceInterface
}

// NewAnalyticsService creates a new AnalyticsServiceInterface instance.
// All aggregates are derived from assembled transactions so that every
// analysis shares the assembler's resolution and orphan-handling rules.
func NewAnalyticsService(tx TransactionServiceInterface) AnalyticsServiceInterface {
	return &analyticsService{tx: tx}
}

// ExpensesByCategory breaks spending down by category or payee over the
// requested period. Amounts are reported as positive magnitudes.
func (s *analyticsService) ExpensesByCategory(ctx context.Context, req models.AnalyticsRequest) (*models.ExpenseAnalysis, error) {
	if req.GroupBy == "" {
		req.GroupBy = models.GroupByCategory
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.tx.SearchTransactions(ctx, analyticsFilter(req.Start, req.End, req.Period, req.AccountIDs))
	if err != nil {
		return nil, err
	}

	total, breakdown := aggregateExpenses(result.Transactions, req.GroupBy)

	slog.Info("expense analysis complete",
		"group_by", req.GroupBy,
		"groups", len(breakdown),
		"total", total.String(),
		"period", result.Period.String())

	return &models.ExpenseAnalysis{
		Period:        result.Period,
		GroupBy:       req.GroupBy,
		TotalExpenses: total,
		Breakdown:     breakdown,
	}, nil
}

// IncomeVsExpenses summarizes income against expenses for a period.
// Transfers move money between the user's own accounts and count as
// neither. A period with no income has an undefined savings rate, not a
// zero one.
func (s *analyticsService) IncomeVsExpenses(ctx context.Context, req models.AnalyticsRequest) (*models.IncomeExpenseSummary, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.tx.SearchTransactions(ctx, analyticsFilter(req.Start, req.End, req.Period, req.AccountIDs))
	if err != nil {
		return nil, err
	}

	var income, expenses decimal.Decimal
	var incomeCount, expenseCount int64
	for i := range result.Transactions {
		tx := &result.Transactions[i]
		switch {
		case tx.IsIncome():
			income = income.Add(tx.Amount)
			incomeCount++
		case tx.IsExpense():
			expenses = expenses.Add(tx.Amount.Abs())
			expenseCount++
		}
	}

	net := income.Sub(expenses)
	_, breakdown := aggregateExpenses(result.Transactions, models.GroupByCategory)

	return &models.IncomeExpenseSummary{
		Period:           result.Period,
		TotalIncome:      income,
		TotalExpenses:    expenses,
		NetSavings:       net,
		SavingsRate:      savingsRate(income, net),
		IncomeCount:      incomeCount,
		ExpenseCount:     expenseCount,
		ExpenseBreakdown: breakdown,
	}, nil
}

// TrendSeries produces a gap-free calendar-aligned series of income,
// expense, and net figures. Buckets with no transactions still appear
// with zero values so consumers can plot a continuous series.
func (s *analyticsService) TrendSeries(ctx context.Context, req models.TrendRequest) (*models.TrendAnalysis, error) {
	granularity := req.Granularity
	if granularity == "" {
		granularity = models.GranularityMonth
	}
	if _, err := models.ParseGranularity(string(granularity)); err != nil {
		return nil, apperrors.Wrap(apperrors.FilterUnknownGranularity, "", err)
	}

	result, err := s.tx.SearchTransactions(ctx, analyticsFilter(req.Start, req.End, req.Period, req.AccountIDs))
	if err != nil {
		return nil, err
	}

	buckets := models.Buckets(result.Period.Start, result.Period.End, granularity)
	points := make([]models.TrendPoint, len(buckets))
	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		label := models.BucketLabel(b.Start, granularity)
		points[i] = models.TrendPoint{Label: label, Start: b.Start, End: b.End}
		index[label] = i
	}

	for i := range result.Transactions {
		tx := &result.Transactions[i]
		pos, ok := index[models.BucketLabel(models.BucketStart(tx.Date, granularity), granularity)]
		if !ok {
			continue
		}
		point := &points[pos]
		point.TransactionCount++
		switch {
		case tx.IsIncome():
			point.Income = point.Income.Add(tx.Amount)
		case tx.IsExpense():
			point.Expenses = point.Expenses.Add(tx.Amount.Abs())
		}
	}

	for i := range points {
		points[i].Net = points[i].Income.Sub(points[i].Expenses)
		points[i].SavingsRate = savingsRate(points[i].Income, points[i].Net)
	}

	return &models.TrendAnalysis{
		Period:      result.Period,
		Granularity: granularity,
		Points:      points,
	}, nil
}

// aggregateExpenses groups expense transactions and computes per-group
// totals, averages, and shares of the grand total.
func aggregateExpenses(transactions []models.Transaction, groupBy string) (decimal.Decimal, []models.CategoryBreakdown) {
	type group struct {
		total decimal.Decimal
		count int64
	}
	groups := make(map[string]*group)

	var grand decimal.Decimal
	for i := range transactions {
		tx := &transactions[i]
		if !tx.IsExpense() {
			continue
		}

		key := tx.Category
		if groupBy == models.GroupByPayee {
			key = tx.Payee
			if key == "" {
				key = UnknownPayee
			}
		}

		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
		}
		amount := tx.Amount.Abs()
		g.total = g.total.Add(amount)
		g.count++
		grand = grand.Add(amount)
	}

	breakdown := make([]models.CategoryBreakdown, 0, len(groups))
	for name, g := range groups {
		entry := models.CategoryBreakdown{
			Category:         name,
			TotalAmount:      g.total,
			TransactionCount: g.count,
			AverageAmount:    g.total.Div(decimal.NewFromInt(g.count)).Round(2),
		}
		if grand.IsPositive() {
			entry.PercentageOfTotal = g.total.Div(grand).Mul(oneHundred).Round(2)
		}
		breakdown = append(breakdown, entry)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].TotalAmount.Equal(breakdown[j].TotalAmount) {
			return breakdown[i].TotalAmount.GreaterThan(breakdown[j].TotalAmount)
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return grand, breakdown
}

// savingsRate returns net as a percentage of gross income, or nil when
// income is zero or negative and the rate is undefined
func savingsRate(income, net decimal.Decimal) *decimal.Decimal {
	if !income.IsPositive() {
		return nil
	}
	rate := net.Div(income).Mul(oneHundred).Round(2)
	return &rate
}

func analyticsFilter(start, end time.Time, period string, accountIDs []int64) models.TransactionFilter {
	return models.TransactionFilter{
		Start:      start,
		End:        end,
		Period:     period,
		AccountIDs: accountIDs,
		Limit:      models.MaxResultLimit,
	}
}

func validateRequest(req models.AnalyticsRequest) error {
	if fieldErrors := validation.GetValidator().ValidateStruct(req); fieldErrors != nil {
		parts := make([]string, 0, len(fieldErrors))
		for field, msg := range fieldErrors {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
		sort.Strings(parts)
		return apperrors.Newf(apperrors.FilterValidationFailed, "", "invalid analytics request: %s", strings.Join(parts, "; "))
	}
	return nil
}
