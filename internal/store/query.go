package store

import (
	"context"
	"errors"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
)

// ErrNotFound is returned when an id does not exist or does not carry the
// expected domain kind. Kind mismatches are deliberately indistinguishable
// from absence: the id space is shared across all kinds, so a mismatched id
// is as meaningless as a dangling one.
var ErrNotFound = errors.New("object not found")

const objectTable = "ZSYNCOBJECT"

// FetchByID fetches one row constrained to a domain kind
func (s *Store) FetchByID(ctx context.Context, id int64, kind catalog.Kind) (Row, catalog.Entry, error) {
	rows, err := s.scan(ctx, "SELECT * FROM "+objectTable+" WHERE Z_PK = ? LIMIT 1", id)
	if err != nil {
		return nil, catalog.Entry{}, err
	}
	if len(rows) == 0 {
		return nil, catalog.Entry{}, ErrNotFound
	}

	row := rows[0]
	ent, ok := row.Ent()
	if !ok {
		return nil, catalog.Entry{}, ErrNotFound
	}
	entry, ok := catalog.Classify(ent)
	if !ok || entry.Kind != kind {
		return nil, catalog.Entry{}, ErrNotFound
	}

	return row, entry, nil
}

// AccountRows returns every account row regardless of subtype or hidden flag
func (s *Store) AccountRows(ctx context.Context) ([]Row, error) {
	return s.scan(ctx,
		"SELECT * FROM "+objectTable+" WHERE Z_ENT IN ? ORDER BY Z_PK",
		catalog.AccountEntityIDs())
}

// TransactionRows returns raw transaction rows for the given entity codes
// within [startTS, endTS] on the store's native date encoding, newest first.
// Truncation belongs to the caller: result limits only apply to assembled
// transactions, never to raw rows that may yet be skipped or dropped.
func (s *Store) TransactionRows(ctx context.Context, entIDs []int, startTS, endTS float64, accountIDs []int64) ([]Row, error) {
	query := "SELECT * FROM " + objectTable + " WHERE Z_ENT IN ? AND ZDATE1 >= ? AND ZDATE1 <= ?"
	args := []any{entIDs, startTS, endTS}

	if len(accountIDs) > 0 {
		query += " AND ZACCOUNT2 IN ?"
		args = append(args, accountIDs)
	}

	query += " ORDER BY ZDATE1 DESC"

	return s.scan(ctx, query, args...)
}

// AssignedCategoryID returns the category id linked to a transaction via
// the assignment table. First match wins; the second return value is false
// when no assignment exists.
func (s *Store) AssignedCategoryID(ctx context.Context, transactionID int64) (int64, bool, error) {
	rows, err := s.scan(ctx,
		"SELECT ZCATEGORY FROM ZCATEGORYASSIGMENT WHERE ZTRANSACTION = ? ORDER BY Z_PK LIMIT 1",
		transactionID)
	if err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}

	id, ok := rows[0].Int64("ZCATEGORY")
	if !ok {
		return 0, false, nil
	}
	return id, true, nil
}

// AccountAmounts returns the signed account-side amount of every transaction
// linked to accountID across the given entity codes. Summation happens in
// the caller's decimal arithmetic, not in SQL floating point.
func (s *Store) AccountAmounts(ctx context.Context, accountID int64, entIDs []int) ([]float64, error) {
	rows, err := s.scan(ctx,
		"SELECT ZAMOUNT1 FROM "+objectTable+" WHERE Z_ENT IN ? AND ZACCOUNT2 = ? AND ZAMOUNT1 IS NOT NULL",
		entIDs, accountID)
	if err != nil {
		return nil, err
	}

	amounts := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := row.Float64("ZAMOUNT1"); ok {
			amounts = append(amounts, v)
		}
	}
	return amounts, nil
}

// ForeignCurrencyCount counts transactions linked to accountID that posted
// in a currency other than the account's own
func (s *Store) ForeignCurrencyCount(ctx context.Context, accountID int64, currency string) (int64, error) {
	rows, err := s.scan(ctx,
		"SELECT COUNT(*) AS n FROM "+objectTable+
			" WHERE Z_ENT IN ? AND ZACCOUNT2 = ? AND ZORIGINALCURRENCY IS NOT NULL AND ZORIGINALCURRENCY <> '' AND ZORIGINALCURRENCY <> ?",
		catalog.CoreTransactionEntityIDs(), accountID, currency)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	n, _ := rows[0].Int64("n")
	return n, nil
}

// scan executes a SELECT and returns the result set as Rows
func (s *Store) scan(ctx context.Context, query string, args ...any) ([]Row, error) {
	var raw []map[string]any
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&raw).Error; err != nil {
		return nil, classify(err)
	}

	rows := make([]Row, len(raw))
	for i, m := range raw {
		rows[i] = Row(m)
	}
	return rows, nil
}
