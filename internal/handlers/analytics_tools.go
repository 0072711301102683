package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/validation"
)

type analyticsArgs struct {
	StartDate  string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Period     string  `json:"period" validate:"omitempty,period_phrase"`
	AccountIDs []int64 `json:"account_ids"`
	GroupBy    string  `json:"group_by" validate:"omitempty,oneof=category payee"`
}

type trendArgs struct {
	StartDate   string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Period      string  `json:"period" validate:"omitempty,period_phrase"`
	AccountIDs  []int64 `json:"account_ids"`
	Granularity string  `json:"granularity" validate:"omitempty,granularity"`
}

func (h *Handler) registerAnalyticsTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("analyze_expenses_by_category",
		mcp.WithDescription("Break spending down by category or payee over a period. "+
			"Amounts are positive magnitudes with each group's share of the total."),
		mcp.WithString("start_date", mcp.Description("Start date, YYYY-MM-DD, inclusive")),
		mcp.WithString("end_date", mcp.Description("End date, YYYY-MM-DD, inclusive")),
		mcp.WithString("period", mcp.Description("Natural-language period, defaults to last 3 months")),
		mcp.WithArray("account_ids",
			mcp.Description("Restrict to these account ids; defaults to every non-hidden account"),
			mcp.Items(map[string]any{"type": "number"}),
		),
		mcp.WithString("group_by", mcp.Description("Group by category (default) or payee")),
	), h.handleExpensesByCategory)

	s.AddTool(mcp.NewTool("analyze_income_vs_expenses",
		mcp.WithDescription("Summarize income against expenses for a period, including net savings "+
			"and savings rate. Transfers between the user's own accounts count as neither."),
		mcp.WithString("start_date", mcp.Description("Start date, YYYY-MM-DD, inclusive")),
		mcp.WithString("end_date", mcp.Description("End date, YYYY-MM-DD, inclusive")),
		mcp.WithString("period", mcp.Description("Natural-language period, defaults to last 3 months")),
		mcp.WithArray("account_ids",
			mcp.Description("Restrict to these account ids; defaults to every non-hidden account"),
			mcp.Items(map[string]any{"type": "number"}),
		),
	), h.handleIncomeVsExpenses)

	s.AddTool(mcp.NewTool("analyze_trends",
		mcp.WithDescription("Produce a gap-free calendar-aligned series of income, expense, and net "+
			"figures. Empty periods appear with zero values."),
		mcp.WithString("start_date", mcp.Description("Start date, YYYY-MM-DD, inclusive")),
		mcp.WithString("end_date", mcp.Description("End date, YYYY-MM-DD, inclusive")),
		mcp.WithString("period", mcp.Description("Natural-language period, defaults to last 3 months")),
		mcp.WithArray("account_ids",
			mcp.Description("Restrict to these account ids; defaults to every non-hidden account"),
			mcp.Items(map[string]any{"type": "number"}),
		),
		mcp.WithString("granularity", mcp.Description("Bucket size: day, week, month (default), or year")),
	), h.handleTrends)
}

func (h *Handler) handleExpensesByCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	traceID := newTraceID()

	var args analyticsArgs
	if err := decodeArgs(request, &args); err != nil {
		return toolError(ctx, "analyze_expenses_by_category", traceID, errors.Wrap(errors.FilterValidationFailed, traceID, err))
	}
	if fieldErrors := validation.GetValidator().ValidateStruct(args); fieldErrors != nil {
		return validationError("analyze_expenses_by_category", traceID, fieldErrors)
	}

	req, err := args.toRequest()
	if err != nil {
		return toolError(ctx, "analyze_expenses_by_category", traceID, errors.Wrap(errors.FilterInvalidDateRange, traceID, err))
	}

	analysis, err := h.analytics.ExpensesByCategory(ctx, req)
	if err != nil {
		return toolError(ctx, "analyze_expenses_by_category", traceID, err)
	}

	return toolResult(analysis)
}

func (h *Handler) handleIncomeVsExpenses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	traceID := newTraceID()

	var args analyticsArgs
	if err := decodeArgs(request, &args); err != nil {
		return toolError(ctx, "analyze_income_vs_expenses", traceID, errors.Wrap(errors.FilterValidationFailed, traceID, err))
	}
	if fieldErrors := validation.GetValidator().ValidateStruct(args); fieldErrors != nil {
		return validationError("analyze_income_vs_expenses", traceID, fieldErrors)
	}

	req, err := args.toRequest()
	if err != nil {
		return toolError(ctx, "analyze_income_vs_expenses", traceID, errors.Wrap(errors.FilterInvalidDateRange, traceID, err))
	}

	summary, err := h.analytics.IncomeVsExpenses(ctx, req)
	if err != nil {
		return toolError(ctx, "analyze_income_vs_expenses", traceID, err)
	}

	return toolResult(summary)
}

func (h *Handler) handleTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	traceID := newTraceID()

	var args trendArgs
	if err := decodeArgs(request, &args); err != nil {
		return toolError(ctx, "analyze_trends", traceID, errors.Wrap(errors.FilterValidationFailed, traceID, err))
	}
	if fieldErrors := validation.GetValidator().ValidateStruct(args); fieldErrors != nil {
		return validationError("analyze_trends", traceID, fieldErrors)
	}

	start, err := parseDate(args.StartDate, false)
	if err != nil {
		return toolError(ctx, "analyze_trends", traceID, errors.Wrap(errors.FilterInvalidDateRange, traceID, err))
	}
	end, err := parseDate(args.EndDate, true)
	if err != nil {
		return toolError(ctx, "analyze_trends", traceID, errors.Wrap(errors.FilterInvalidDateRange, traceID, err))
	}

	analysis, err := h.analytics.TrendSeries(ctx, models.TrendRequest{
		Start:       start,
		End:         end,
		Period:      args.Period,
		AccountIDs:  args.AccountIDs,
		Granularity: models.Granularity(args.Granularity),
	})
	if err != nil {
		return toolError(ctx, "analyze_trends", traceID, err)
	}

	return toolResult(analysis)
}

func (a *analyticsArgs) toRequest() (models.AnalyticsRequest, error) {
	start, err := parseDate(a.StartDate, false)
	if err != nil {
		return models.AnalyticsRequest{}, err
	}
	end, err := parseDate(a.EndDate, true)
	if err != nil {
		return models.AnalyticsRequest{}, err
	}

	return models.AnalyticsRequest{
		Start:      start,
		End:        end,
		Period:     a.Period,
		AccountIDs: a.AccountIDs,
		GroupBy:    a.GroupBy,
	}, nil
}
