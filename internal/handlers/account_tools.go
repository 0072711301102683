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

type listAccountsArgs struct {
	IncludeHidden bool   `json:"include_hidden"`
	Subtype       string `json:"subtype" validate:"omitempty,account_subtype"`
}

type getAccountArgs struct {
	AccountID int64 `json:"account_id" validate:"required,min=1"`
}

func (h *Handler) registerAccountTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_accounts",
		mcp.WithDescription("List MoneyWiz accounts with computed balances. Hidden accounts are excluded unless include_hidden is set."),
		mcp.WithBoolean("include_hidden",
			mcp.Description("Include accounts the user has archived"),
		),
		mcp.WithString("subtype",
			mcp.Description("Restrict to one account type: "+strings.Join(catalog.AccountSubtypes(), ", ")),
		),
	), h.handleListAccounts)

	s.AddTool(mcp.NewTool("get_account",
		mcp.WithDescription("Fetch a single account by its id, with computed balance and data quality notes."),
		mcp.WithNumber("account_id",
			mcp.Description("The account's numeric id as returned by list_accounts"),
			mcp.Required(),
		),
	), h.handleGetAccount)
}

func (h *Handler) handleListAccounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	traceID := newTraceID()

	var args listAccountsArgs
	if err := decodeArgs(request, &args); err != nil {
		return toolError(ctx, "list_accounts", traceID, errors.Wrap(errors.FilterValidationFailed, traceID, err))
	}
	if fieldErrors := validation.GetValidator().ValidateStruct(args); fieldErrors != nil {
		return validationError("list_accounts", traceID, fieldErrors)
	}

	accounts, err := h.accounts.ListAccounts(ctx, models.AccountListOptions{
		IncludeHidden: args.IncludeHidden,
		Subtype:       args.Subtype,
	})
	if err != nil {
		return toolError(ctx, "list_accounts", traceID, err)
	}

	return toolResult(accounts)
}

func (h *Handler) handleGetAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	traceID := newTraceID()

	var args getAccountArgs
	if err := decodeArgs(request, &args); err != nil {
		return toolError(ctx, "get_account", traceID, errors.Wrap(errors.FilterValidationFailed, traceID, err))
	}
	if fieldErrors := validation.GetValidator().ValidateStruct(args); fieldErrors != nil {
		return validationError("get_account", traceID, fieldErrors)
	}

	account, err := h.accounts.GetAccount(ctx, args.AccountID)
	if err != nil {
		return toolError(ctx, "get_account", traceID, err)
	}

	return toolResult(account)
}
