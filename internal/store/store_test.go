package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
	apperrors "github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
)

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.sqlite"), true)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.StoreUnavailable))
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir(), true)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.StoreUnavailable))
}

func TestOpen_ReadOnlyRejectsWrites(t *testing.T) {
	st, _ := SetupTestStore(t)
	require.True(t, st.ReadOnly())

	err := st.db.Exec("INSERT INTO ZSYNCOBJECT (Z_PK, Z_ENT) VALUES (9999, 10)").Error
	assert.Error(t, err, "query_only connection must reject mutation")
}

func TestFetchByID(t *testing.T) {
	st, seed := SetupTestStore(t)
	ctx := context.Background()

	InsertAccount(t, seed, 10, 1, "Everyday Checking", "USD", 1000, false)
	InsertCategory(t, seed, 50, "Groceries", 0)

	t.Run("account by kind", func(t *testing.T) {
		row, entry, err := st.FetchByID(ctx, 1, catalog.KindAccount)
		require.NoError(t, err)

		assert.Equal(t, catalog.AccountChecking, entry.Subtype)
		name, ok := row.String(entry.Attr[catalog.AttrName])
		require.True(t, ok)
		assert.Equal(t, "Everyday Checking", name)
	})

	t.Run("missing id", func(t *testing.T) {
		_, _, err := st.FetchByID(ctx, 404, catalog.KindAccount)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("kind mismatch is absence", func(t *testing.T) {
		// Z_PK 50 exists but is a category, not an account
		_, _, err := st.FetchByID(ctx, 50, catalog.KindAccount)
		assert.ErrorIs(t, err, ErrNotFound)

		_, _, err = st.FetchByID(ctx, 50, catalog.KindCategory)
		assert.NoError(t, err)
	})
}

func TestAccountRows(t *testing.T) {
	st, seed := SetupTestStore(t)
	ctx := context.Background()

	InsertAccount(t, seed, 10, 1, "Checking", "USD", 100, false)
	InsertAccount(t, seed, 11, 2, "Savings", "USD", 5000, true)
	InsertAccount(t, seed, 13, 3, "Visa", "USD", 0, false)
	// Non-account rows must not surface
	InsertCategory(t, seed, 4, "Rent", 0)
	InsertPayee(t, seed, 5, "Landlord")

	rows, err := st.AccountRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3, "hidden accounts are still returned; filtering is the service's job")

	pks := make([]int64, 0, len(rows))
	for _, row := range rows {
		pk, ok := row.PK()
		require.True(t, ok)
		pks = append(pks, pk)
	}
	assert.Equal(t, []int64{1, 2, 3}, pks)
}

func TestTransactionRows(t *testing.T) {
	st, seed := SetupTestStore(t)
	ctx := context.Background()

	InsertAccount(t, seed, 10, 1, "Checking", "USD", 0, false)
	InsertAccount(t, seed, 10, 2, "Other", "USD", 0, false)

	jan := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	InsertTransaction(t, seed, 47, 10, 1, -25, jan, "coffee", 0)
	InsertTransaction(t, seed, 37, 11, 1, 2000, feb, "salary", 0)
	InsertTransaction(t, seed, 47, 12, 2, -75, feb, "gas", 0)
	InsertTransaction(t, seed, 47, 13, 1, -110, mar, "utilities", 0)

	start := models.TimeToCoreData(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	end := models.TimeToCoreData(time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC))

	t.Run("date window newest first", func(t *testing.T) {
		rows, err := st.TransactionRows(ctx, catalog.AllTransactionEntityIDs(), start, end, nil)
		require.NoError(t, err)
		require.Len(t, rows, 3, "march row is outside the window")

		first, _ := rows[0].PK()
		assert.Contains(t, []int64{11, 12}, first, "february rows come before january")
		last, _ := rows[2].PK()
		assert.Equal(t, int64(10), last)
	})

	t.Run("account filter", func(t *testing.T) {
		rows, err := st.TransactionRows(ctx, catalog.AllTransactionEntityIDs(), start, end, []int64{2})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		pk, _ := rows[0].PK()
		assert.Equal(t, int64(12), pk)
	})

	t.Run("entity filter", func(t *testing.T) {
		rows, err := st.TransactionRows(ctx, []int{37}, start, end, nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		pk, _ := rows[0].PK()
		assert.Equal(t, int64(11), pk)
	})

}

func TestAssignedCategoryID(t *testing.T) {
	st, seed := SetupTestStore(t)
	ctx := context.Background()

	InsertAccount(t, seed, 10, 1, "Checking", "USD", 0, false)
	InsertTransaction(t, seed, 47, 10, 1, -30, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), "", 0)
	InsertCategory(t, seed, 20, "Food", 0)
	InsertCategory(t, seed, 21, "Travel", 0)
	AssignCategory(t, seed, 100, 10, 20)
	AssignCategory(t, seed, 101, 10, 21)

	id, ok, err := st.AssignedCategoryID(ctx, 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(20), id, "first assignment wins")

	_, ok, err = st.AssignedCategoryID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountAmounts(t *testing.T) {
	st, seed := SetupTestStore(t)
	ctx := context.Background()

	InsertAccount(t, seed, 10, 1, "Checking", "USD", 1000, false)
	day := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	InsertTransaction(t, seed, 47, 10, 1, -50, day, "", 0)
	InsertTransaction(t, seed, 47, 11, 1, -25.50, day, "", 0)
	InsertTransaction(t, seed, 37, 12, 1, 200, day, "", 0)
	// Secondary subtype must not post against the balance
	InsertTransaction(t, seed, 40, 13, 1, -500, day, "", 0)
	// Different account
	InsertTransaction(t, seed, 47, 14, 2, -999, day, "", 0)

	amounts, err := st.AccountAmounts(ctx, 1, catalog.CoreTransactionEntityIDs())
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{-50, -25.50, 200}, amounts)
}

func TestForeignCurrencyCount(t *testing.T) {
	st, seed := SetupTestStore(t)
	ctx := context.Background()

	InsertAccount(t, seed, 10, 1, "Checking", "USD", 0, false)
	day := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	InsertTransaction(t, seed, 47, 10, 1, -50, day, "", 0)
	InsertObject(t, seed, map[string]any{
		"Z_PK":              11,
		"Z_ENT":             47,
		"ZACCOUNT2":         1,
		"ZAMOUNT1":          -60.0,
		"ZDATE1":            models.TimeToCoreData(day),
		"ZORIGINALCURRENCY": "EUR",
		"ZORIGINALAMOUNT":   -55.0,
	})

	n, err := st.ForeignCurrencyCount(ctx, 1, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = st.ForeignCurrencyCount(ctx, 2, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRowAccessors(t *testing.T) {
	row := Row{
		"Z_PK":     int64(7),
		"Z_ENT":    int64(37),
		"ZNAME":    "Checking",
		"ZGID":     []byte("abc-123"),
		"ZAMOUNT1": -12.5,
		"ZDATE1":   int64(1000),
		"ZHIDDEN":  int64(1),
	}

	pk, ok := row.PK()
	assert.True(t, ok)
	assert.Equal(t, int64(7), pk)

	ent, ok := row.Ent()
	assert.True(t, ok)
	assert.Equal(t, 37, ent)

	name, ok := row.String("ZNAME")
	assert.True(t, ok)
	assert.Equal(t, "Checking", name)

	gid, ok := row.String("ZGID")
	assert.True(t, ok)
	assert.Equal(t, "abc-123", gid, "blob-typed text is normalized")

	amount, ok := row.Float64("ZAMOUNT1")
	assert.True(t, ok)
	assert.Equal(t, -12.5, amount)

	// Integers widen to float, floats truncate to int
	date, ok := row.Float64("ZDATE1")
	assert.True(t, ok)
	assert.Equal(t, float64(1000), date)
	truncated, ok := row.Int64("ZAMOUNT1")
	assert.True(t, ok)
	assert.Equal(t, int64(-12), truncated)

	assert.True(t, row.Bool("ZHIDDEN"))
	assert.False(t, row.Bool("ZMISSING"))

	_, ok = row.String("ZMISSING")
	assert.False(t, ok)
	_, ok = row.Int64("ZNAME")
	assert.False(t, ok)
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		message string
		code    apperrors.ErrorCode
	}{
		{"database is locked", apperrors.StoreLocked},
		{"database table is locked: ZSYNCOBJECT", apperrors.StoreLocked},
		{"unable to open database file", apperrors.StoreUnavailable},
		{"file is not a database", apperrors.StoreUnavailable},
		{"open /x/y.sqlite: permission denied", apperrors.StoreUnavailable},
		{"no such column: ZBOGUS", apperrors.StoreQueryFailed},
	}

	for _, tt := range tests {
		classified := classify(errorWithMessage(tt.message))
		assert.True(t, apperrors.IsCode(classified, tt.code), "message %q should map to %s", tt.message, tt.code)
	}
}

type errorWithMessage string

func (e errorWithMessage) Error() string { return string(e) }
