package handlers

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/validation"
)

type searchTransactionsArgs struct {
	StartDate  string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Period     string   `json:"period" validate:"omitempty,period_phrase"`
	AccountIDs []int64  `json:"account_ids"`
	Category   string   `json:"category"`
	Payee      string   `json:"payee"`
	MinAmount  *float64 `json:"min_amount"`
	MaxAmount  *float64 `json:"max_amount"`
	Subtypes   []string `json:"subtypes" validate:"omitempty,dive,transaction_subtype"`
	Limit      int      `json:"limit" validate:"omitempty,min=1"`
}

func (h *Handler) registerTransactionTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("search_transactions",
		mcp.WithDescription("Search transactions with full category, payee, and account resolution. "+
			"Dates come from start_date/end_date or a natural-language period such as \"last 3 months\"; "+
			"the period wins when both are given. Defaults to the last 3 months across all visible accounts."),
		mcp.WithString("start_date", mcp.Description("Start date, YYYY-MM-DD, inclusive")),
		mcp.WithString("end_date", mcp.Description("End date, YYYY-MM-DD, inclusive")),
		mcp.WithString("period", mcp.Description("Natural-language period: last N days, last N months, this month, this year, last year")),
		mcp.WithArray("account_ids",
			mcp.Description("Restrict to these account ids; defaults to every non-hidden account"),
			mcp.Items(map[string]any{"type": "number"}),
		),
		mcp.WithString("category", mcp.Description("Case-insensitive substring match on category name or path")),
		mcp.WithString("payee", mcp.Description("Case-insensitive substring match on payee name")),
		mcp.WithNumber("min_amount", mcp.Description("Minimum signed amount; expenses are negative")),
		mcp.WithNumber("max_amount", mcp.Description("Maximum signed amount")),
		mcp.WithArray("subtypes",
			mcp.Description("Restrict to transaction types: "+strings.Join(catalog.TransactionSubtypes(), ", ")),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("limit", mcp.Description("Maximum results, up to 1000")),
	), h.handleSearchTransactions)
}

func (h *Handler) handleSearchTransactions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	traceID := newTraceID()

	var args searchTransactionsArgs
	if err := decodeArgs(request, &args); err != nil {
		return toolError(ctx, "search_transactions", traceID, errors.Wrap(errors.FilterValidationFailed, traceID, err))
	}
	if fieldErrors := validation.GetValidator().ValidateStruct(args); fieldErrors != nil {
		return validationError("search_transactions", traceID, fieldErrors)
	}

	filter, err := args.toFilter()
	if err != nil {
		return toolError(ctx, "search_transactions", traceID, errors.Wrap(errors.FilterInvalidDateRange, traceID, err))
	}

	result, err := h.transactions.SearchTransactions(ctx, filter)
	if err != nil {
		return toolError(ctx, "search_transactions", traceID, err)
	}

	return toolResult(result)
}

func (a *searchTransactionsArgs) toFilter() (models.TransactionFilter, error) {
	start, err := parseDate(a.StartDate, false)
	if err != nil {
		return models.TransactionFilter{}, err
	}
	end, err := parseDate(a.EndDate, true)
	if err != nil {
		return models.TransactionFilter{}, err
	}

	subtypes := make([]string, len(a.Subtypes))
	for i, s := range a.Subtypes {
		subtypes[i] = strings.ToLower(s)
	}
	if len(subtypes) == 0 {
		subtypes = nil
	}

	return models.TransactionFilter{
		Start:      start,
		End:        end,
		Period:     a.Period,
		AccountIDs: a.AccountIDs,
		Category:   a.Category,
		Payee:      a.Payee,
		MinAmount:  decimalPtr(a.MinAmount),
		MaxAmount:  decimalPtr(a.MaxAmount),
		Subtypes:   subtypes,
		Limit:      a.Limit,
	}, nil
}
