// Package resolve turns raw object-table ids into human-readable domain
// values. The joins behind category and payee names cross independently
// evolving tables, so every lookup is defensive: a dangling or mismatched
// id degrades to a sentinel value instead of failing the batch.
package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
	apperrors "github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/store"
)

// Uncategorized is the literal sentinel for transactions without a
// resolvable category. Always this exact string, never empty or nil.
const Uncategorized = "Uncategorized"

// PathSeparator joins category hierarchy levels for display
const PathSeparator = " ▶ "

// Resolver resolves category, payee and account references against one
// store connection, memoizing through a session scoped to that connection.
type Resolver struct {
	store   *store.Store
	session *Session
}

// New creates a resolver bound to a store connection and its session
func New(st *store.Store, session *Session) *Resolver {
	return &Resolver{store: st, session: session}
}

// Category resolves a transaction's category through the assignment table.
// Returns the category name and id, or the Uncategorized sentinel with a
// zero id when no assignment exists, the category row is missing, or the
// referenced row is not actually a category.
func (r *Resolver) Category(ctx context.Context, transactionID int64) (string, int64, error) {
	categoryID, assigned, err := r.store.AssignedCategoryID(ctx, transactionID)
	if err != nil {
		return Uncategorized, 0, err
	}
	if !assigned {
		return Uncategorized, 0, nil
	}

	name, err := r.categoryName(ctx, categoryID)
	if err != nil {
		return Uncategorized, 0, err
	}
	if name == Uncategorized {
		return Uncategorized, 0, nil
	}
	return name, categoryID, nil
}

func (r *Resolver) categoryName(ctx context.Context, categoryID int64) (string, error) {
	if name, ok := r.session.category(categoryID); ok {
		return name, nil
	}

	row, entry, err := r.store.FetchByID(ctx, categoryID, catalog.KindCategory)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.session.setCategory(categoryID, Uncategorized)
			return Uncategorized, nil
		}
		return Uncategorized, err
	}

	name, ok := row.String(entry.Attr[catalog.AttrName])
	if !ok || name == "" {
		name = Uncategorized
	}
	r.session.setCategory(categoryID, name)
	return name, nil
}

// CategoryPath walks parent links to build the full hierarchy path,
// parent first (e.g. "Food ▶ Groceries"). Cycle-guarded: a corrupt parent
// chain terminates at the first repeated id.
func (r *Resolver) CategoryPath(ctx context.Context, categoryID int64) (string, error) {
	var parts []string
	visited := make(map[int64]bool)

	currentID := categoryID
	for currentID != 0 && !visited[currentID] {
		visited[currentID] = true

		row, entry, err := r.store.FetchByID(ctx, currentID, catalog.KindCategory)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				break
			}
			return "", err
		}

		if name, ok := row.String(entry.Attr[catalog.AttrName]); ok && name != "" {
			parts = append([]string{name}, parts...)
		}

		parentID, ok := row.Int64(entry.Attr[catalog.AttrParentCategory])
		if !ok {
			break
		}
		currentID = parentID
	}

	return strings.Join(parts, PathSeparator), nil
}

// Payee resolves a payee id to its name. Absent payees are a normal state
// for many transaction subtypes, so misses yield an empty string rather
// than a sentinel word.
func (r *Resolver) Payee(ctx context.Context, payeeID int64) (string, error) {
	if payeeID == 0 {
		return "", nil
	}
	if name, ok := r.session.payee(payeeID); ok {
		return name, nil
	}

	row, entry, err := r.store.FetchByID(ctx, payeeID, catalog.KindPayee)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.session.setPayee(payeeID, "")
			return "", nil
		}
		return "", err
	}

	name, _ := row.String(entry.Attr[catalog.AttrName])
	r.session.setPayee(payeeID, name)
	return name, nil
}

// Account resolves an account id to its projection, reading attributes
// through the catalog's per-subtype column map. Fails with AccountNotFound
// when the id is missing or refers to a non-account kind.
func (r *Resolver) Account(ctx context.Context, accountID int64) (models.Account, error) {
	if account, ok := r.session.account(accountID); ok {
		return account, nil
	}

	row, entry, err := r.store.FetchByID(ctx, accountID, catalog.KindAccount)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Account{}, apperrors.Wrap(apperrors.AccountNotFound, "", err)
		}
		return models.Account{}, err
	}

	account, err := AccountFromRow(row, entry)
	if err != nil {
		return models.Account{}, err
	}

	r.session.setAccount(accountID, account)
	return account, nil
}

// AccountFromRow builds an account projection from a classified row. The
// column for each attribute comes from the catalog entry: attribute names
// are a per-subtype concern, never hardcoded at call sites.
func AccountFromRow(row store.Row, entry catalog.Entry) (models.Account, error) {
	pk, ok := row.PK()
	if !ok {
		return models.Account{}, apperrors.New(apperrors.StoreMalformedRecord, "")
	}

	name, ok := row.String(entry.Attr[catalog.AttrName])
	if !ok || name == "" {
		slog.Warn("account row has no name", "account_id", pk)
		name = "Unnamed Account"
	}

	currency, ok := row.String(entry.Attr[catalog.AttrCurrency])
	if !ok || currency == "" {
		currency = "USD"
	}

	opening := decimal.Zero
	if v, ok := row.Float64(entry.Attr[catalog.AttrOpeningBalance]); ok {
		opening = decimal.NewFromFloat(v)
	}

	account := models.Account{
		ID:             pk,
		Name:           name,
		Subtype:        entry.Subtype,
		Currency:       currency,
		OpeningBalance: opening,
		Hidden:         row.Bool(entry.Attr[catalog.AttrHidden]),
	}

	if gid, ok := row.String(entry.Attr[catalog.AttrExternalID]); ok {
		account.ExternalID = gid
	}
	if institution, ok := row.String(entry.Attr[catalog.AttrInstitution]); ok {
		account.Institution = institution
	}
	if lastFour, ok := row.String(entry.Attr[catalog.AttrLastFour]); ok {
		account.LastFourDigits = lastFour
	}

	return account, nil
}
