package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
	apperrors "github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/resolve"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/store"
)

type transactionService struct {
	store      *store.Store
	resolver   *resolve.Resolver
	maxResults int
	now        func() time.Time
}

// NewTransactionService creates a new TransactionServiceInterface instance.
// maxResults is the configured ceiling; zero falls back to the model default.
func NewTransactionService(st *store.Store, resolver *resolve.Resolver, maxResults int) TransactionServiceInterface {
	return &transactionService{
		store:      st,
		resolver:   resolver,
		maxResults: maxResults,
		now:        time.Now,
	}
}

// SearchTransactions assembles fully resolved transactions matching the
// filter. Rows that fail category or payee resolution keep their sentinel
// values; rows whose account cannot be resolved are dropped and counted,
// since an orphaned transaction cannot be attributed to any account-level
// analysis. Malformed rows are logged and skipped without failing the batch.
func (s *transactionService) SearchTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionSearchResult, error) {
	if err := s.prepareFilter(&filter); err != nil {
		return nil, err
	}

	entIDs, err := catalog.TransactionEntityIDs(filter.Subtypes)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.FilterUnknownSubtype, "", err)
	}

	accountIDs := filter.AccountIDs
	if len(accountIDs) == 0 {
		// Default scope is every non-hidden account
		accountIDs, err = s.visibleAccountIDs(ctx)
		if err != nil {
			return nil, err
		}
		if len(accountIDs) == 0 {
			return &models.TransactionSearchResult{
				Transactions: []models.Transaction{},
				Period:       filter.Range(),
			}, nil
		}
	}

	// The limit applies after assembly: a store-level cap would count
	// malformed and orphaned rows against it and under-fill the result
	rows, err := s.store.TransactionRows(ctx, entIDs,
		models.TimeToCoreData(filter.Start), models.TimeToCoreData(filter.End),
		accountIDs)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(rows))
	skipped := 0
	orphans := 0

	for _, row := range rows {
		tx, err := s.assemble(ctx, row)
		switch {
		case err == nil:
		case apperrors.IsCode(err, apperrors.StoreMalformedRecord):
			pk, _ := row.PK()
			slog.Warn("skipping malformed transaction row", "transaction_id", pk, "error", err)
			skipped++
			continue
		case apperrors.IsCode(err, apperrors.AccountNotFound):
			pk, _ := row.PK()
			slog.Warn("dropping transaction with unresolvable account", "transaction_id", pk)
			orphans++
			continue
		default:
			return nil, err
		}

		if !matchesPostFilters(&tx, &filter) {
			continue
		}

		transactions = append(transactions, tx)
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	if len(transactions) > filter.Limit {
		transactions = transactions[:filter.Limit]
	}

	slog.Info("transactions assembled",
		"count", len(transactions),
		"skipped_malformed", skipped,
		"orphans_dropped", orphans,
		"period", filter.Range().String())

	return &models.TransactionSearchResult{
		Transactions:     transactions,
		TotalCount:       len(transactions),
		Period:           filter.Range(),
		SkippedMalformed: skipped,
		OrphansDropped:   orphans,
	}, nil
}

// prepareFilter normalizes and validates the filter. Every rejection
// happens before any store access.
func (s *transactionService) prepareFilter(filter *models.TransactionFilter) error {
	if filter.Limit < 0 {
		return apperrors.New(apperrors.FilterInvalidLimit, "")
	}

	if err := filter.Resolve(s.now()); err != nil {
		var unknown *models.ErrUnknownPeriod
		if errors.As(err, &unknown) {
			return apperrors.Wrap(apperrors.FilterUnknownPeriod, "", err)
		}
		return apperrors.Wrap(apperrors.FilterValidationFailed, "", err)
	}

	if s.maxResults > 0 && filter.Limit > s.maxResults {
		filter.Limit = s.maxResults
	}

	if !filter.Range().Valid() {
		return apperrors.New(apperrors.FilterInvalidDateRange, "")
	}

	if filter.MinAmount != nil && filter.MaxAmount != nil && filter.MinAmount.GreaterThan(*filter.MaxAmount) {
		return apperrors.New(apperrors.FilterInvalidAmountRange, "")
	}

	return nil
}

// assemble builds one resolved transaction from a raw row. The amount is
// read from the column the catalog maps for the account-linked leg; a
// transfer's other leg lives elsewhere and must never be read here.
func (s *transactionService) assemble(ctx context.Context, row store.Row) (models.Transaction, error) {
	ent, ok := row.Ent()
	if !ok {
		return models.Transaction{}, apperrors.New(apperrors.StoreMalformedRecord, "")
	}
	entry, ok := catalog.Classify(ent)
	if !ok || entry.Kind != catalog.KindTransaction {
		return models.Transaction{}, apperrors.New(apperrors.StoreMalformedRecord, "")
	}

	pk, ok := row.PK()
	if !ok {
		return models.Transaction{}, apperrors.New(apperrors.StoreMalformedRecord, "")
	}

	amount, ok := row.Float64(entry.Attr[catalog.AttrAmount])
	if !ok {
		return models.Transaction{}, apperrors.New(apperrors.StoreMalformedRecord, "")
	}

	dateTS, ok := row.Float64(entry.Attr[catalog.AttrDate])
	if !ok {
		return models.Transaction{}, apperrors.New(apperrors.StoreMalformedRecord, "")
	}

	accountID, ok := row.Int64(entry.Attr[catalog.AttrAccount])
	if !ok || accountID == 0 {
		return models.Transaction{}, apperrors.New(apperrors.AccountNotFound, "")
	}

	account, err := s.resolver.Account(ctx, accountID)
	if err != nil {
		return models.Transaction{}, err
	}

	category, categoryID, err := s.resolver.Category(ctx, pk)
	if err != nil {
		return models.Transaction{}, err
	}

	categoryPath := ""
	if categoryID != 0 {
		categoryPath, err = s.resolver.CategoryPath(ctx, categoryID)
		if err != nil {
			return models.Transaction{}, err
		}
	}

	payeeID, _ := row.Int64(entry.Attr[catalog.AttrPayee])
	payee, err := s.resolver.Payee(ctx, payeeID)
	if err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:           pk,
		Subtype:      entry.Subtype,
		AccountID:    accountID,
		AccountName:  account.Name,
		Amount:       decimal.NewFromFloat(amount),
		Date:         models.CoreDataToTime(dateTS),
		Category:     category,
		CategoryID:   categoryID,
		CategoryPath: categoryPath,
		Payee:        payee,
		Currency:     account.Currency,
		Reconciled:   row.Bool(entry.Attr[catalog.AttrReconciled]),
	}

	if desc, ok := row.String(entry.Attr[catalog.AttrDescription]); ok {
		tx.Description = desc
	}
	if notes, ok := row.String(entry.Attr[catalog.AttrNotes]); ok {
		tx.Notes = notes
	}
	if origCurrency, ok := row.String(entry.Attr[catalog.AttrOrigCurrency]); ok && origCurrency != "" && origCurrency != account.Currency {
		tx.OriginalCurrency = origCurrency
		if origAmount, ok := row.Float64(entry.Attr[catalog.AttrOrigAmount]); ok {
			d := decimal.NewFromFloat(origAmount)
			tx.OriginalAmount = &d
		}
	}

	return tx, nil
}

// visibleAccountIDs returns the ids of every non-hidden account
func (s *transactionService) visibleAccountIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.store.AccountRows(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ent, ok := row.Ent()
		if !ok {
			continue
		}
		entry, ok := catalog.Classify(ent)
		if !ok || entry.Kind != catalog.KindAccount {
			continue
		}
		if row.Bool(entry.Attr[catalog.AttrHidden]) {
			continue
		}
		if pk, ok := row.PK(); ok {
			ids = append(ids, pk)
		}
	}
	return ids, nil
}

func matchesPostFilters(tx *models.Transaction, filter *models.TransactionFilter) bool {
	if filter.Category != "" {
		needle := strings.ToLower(filter.Category)
		if !strings.Contains(strings.ToLower(tx.Category), needle) &&
			!strings.Contains(strings.ToLower(tx.CategoryPath), needle) {
			return false
		}
	}

	if filter.Payee != "" {
		if !strings.Contains(strings.ToLower(tx.Payee), strings.ToLower(filter.Payee)) {
			return false
		}
	}

	if filter.MinAmount != nil && tx.Amount.LessThan(*filter.MinAmount) {
		return false
	}
	if filter.MaxAmount != nil && tx.Amount.GreaterThan(*filter.MaxAmount) {
		return false
	}

	return true
}
