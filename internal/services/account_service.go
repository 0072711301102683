package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
	apperrors "github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/resolve"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/store"
)

var (
	ErrUnknownAccountSubtype = errors.New("unknown account subtype")
)

type accountService struct {
	store    *store.Store
	resolver *resolve.Resolver
}

// NewAccountService creates a new AccountServiceInterface instance
func NewAccountService(st *store.Store, resolver *resolve.Resolver) AccountServiceInterface {
	return &accountService{store: st, resolver: resolver}
}

// ListAccounts returns accounts with freshly computed balances. Hidden
// accounts are excluded unless requested; rows with unknown entity codes
// are skipped.
func (s *accountService) ListAccounts(ctx context.Context, opts models.AccountListOptions) (*models.AccountList, error) {
	if opts.Subtype != "" && !isValidAccountSubtype(opts.Subtype) {
		return nil, apperrors.Wrap(apperrors.AccountUnknownSubtype, "",
			fmt.Errorf("%w: %q", ErrUnknownAccountSubtype, opts.Subtype))
	}

	rows, err := s.store.AccountRows(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]models.Account, 0, len(rows))
	for _, row := range rows {
		ent, ok := row.Ent()
		if !ok {
			continue
		}
		entry, ok := catalog.Classify(ent)
		if !ok || entry.Kind != catalog.KindAccount {
			continue
		}

		account, err := resolve.AccountFromRow(row, entry)
		if err != nil {
			pk, _ := row.PK()
			slog.Warn("skipping malformed account row", "account_id", pk, "error", err)
			continue
		}

		if account.Hidden && !opts.IncludeHidden {
			continue
		}
		if opts.Subtype != "" && account.Subtype != opts.Subtype {
			continue
		}

		if err := s.fillBalance(ctx, &account); err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	slog.Info("accounts listed",
		"count", len(accounts),
		"include_hidden", opts.IncludeHidden,
		"subtype", opts.Subtype)

	return &models.AccountList{Accounts: accounts, TotalCount: len(accounts)}, nil
}

// GetAccount returns one account with its computed balance. Unlike bulk
// assembly, a miss here is fatal to the call.
func (s *accountService) GetAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := s.resolver.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.fillBalance(ctx, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

// fillBalance computes the current balance from first principles: opening
// balance plus the signed sum of every linked core transaction. The source
// has no durable current-balance field worth trusting, so this is a full
// scan on every call. Summation runs in decimal arithmetic to avoid
// cent-level drift over thousands of transactions.
func (s *accountService) fillBalance(ctx context.Context, account *models.Account) error {
	amounts, err := s.store.AccountAmounts(ctx, account.ID, catalog.CoreTransactionEntityIDs())
	if err != nil {
		return err
	}

	total := account.OpeningBalance
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromFloat(amount))
	}
	account.Balance = total

	// Mixed-currency legs are summed without conversion; flag them rather
	// than silently misreport
	foreign, err := s.store.ForeignCurrencyCount(ctx, account.ID, account.Currency)
	if err != nil {
		return err
	}
	if foreign > 0 {
		account.DataQualityNotes = append(account.DataQualityNotes, fmt.Sprintf(
			"%d transaction(s) posted in a currency other than %s were summed without conversion",
			foreign, account.Currency))
	}

	return nil
}

func isValidAccountSubtype(subtype string) bool {
	for _, s := range catalog.AccountSubtypes() {
		if s == subtype {
			return true
		}
	}
	return false
}
