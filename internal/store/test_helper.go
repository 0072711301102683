package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
)

// fixtureSchema mirrors the slice of the Core Data layout the accessor
// touches. One polymorphic object table plus the category-assignment link
// table.
var fixtureSchema = []string{
	`CREATE TABLE ZSYNCOBJECT (
		Z_PK INTEGER PRIMARY KEY,
		Z_ENT INTEGER,
		Z_OPT INTEGER,
		ZGID VARCHAR,
		ZNAME VARCHAR,
		ZNAME2 VARCHAR,
		ZCURRENCYNAME VARCHAR,
		ZOPENINGBALANCE FLOAT,
		ZARCHIVED INTEGER,
		ZINSTITUTIONNAME VARCHAR,
		ZLASTFOURDIGITS VARCHAR,
		ZACCOUNT2 INTEGER,
		ZAMOUNT1 FLOAT,
		ZDATE1 TIMESTAMP,
		ZDESC2 VARCHAR,
		ZNOTES1 VARCHAR,
		ZRECONCILED INTEGER,
		ZPAYEE2 INTEGER,
		ZPARENTCATEGORY INTEGER,
		ZORIGINALAMOUNT FLOAT,
		ZORIGINALCURRENCY VARCHAR
	)`,
	`CREATE TABLE ZCATEGORYASSIGMENT (
		Z_PK INTEGER PRIMARY KEY,
		Z_ENT INTEGER,
		ZCATEGORY INTEGER,
		ZTRANSACTION INTEGER
	)`,
	`CREATE INDEX idx_syncobject_ent ON ZSYNCOBJECT(Z_ENT)`,
	`CREATE INDEX idx_syncobject_account ON ZSYNCOBJECT(ZACCOUNT2)`,
	`CREATE INDEX idx_catassign_transaction ON ZCATEGORYASSIGMENT(ZTRANSACTION)`,
}

// SetupTestStore creates a fixture database in a temp dir and opens a
// read-only Store over it. The returned seed handle stays writable so tests
// can insert rows; the Store sees every committed write.
func SetupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "moneywiz.sqlite")

	seed, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create fixture database: %v", err)
	}

	for _, ddl := range fixtureSchema {
		if err := seed.Exec(ddl).Error; err != nil {
			t.Fatalf("failed to create fixture schema: %v", err)
		}
	}

	st, err := Open(path, true)
	if err != nil {
		t.Fatalf("failed to open read-only store: %v", err)
	}

	t.Cleanup(func() {
		_ = st.Close()
		if sqlDB, err := seed.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return st, seed
}

// InsertAccount inserts one account row of the given entity code
func InsertAccount(t *testing.T, db *gorm.DB, ent int, pk int64, name, currency string, opening float64, archived bool) {
	t.Helper()

	archivedFlag := 0
	if archived {
		archivedFlag = 1
	}

	InsertObject(t, db, map[string]any{
		"Z_PK":             pk,
		"Z_ENT":            ent,
		"ZGID":             gofakeit.UUID(),
		"ZNAME":            name,
		"ZCURRENCYNAME":    currency,
		"ZOPENINGBALANCE":  opening,
		"ZARCHIVED":        archivedFlag,
		"ZINSTITUTIONNAME": gofakeit.Company(),
		"ZLASTFOURDIGITS":  gofakeit.Numerify("####"),
	})
}

// InsertTransaction inserts one transaction row linked to an account.
// A zero payeeID leaves the payee column NULL.
func InsertTransaction(t *testing.T, db *gorm.DB, ent int, pk, accountID int64, amount float64, date time.Time, desc string, payeeID int64) {
	t.Helper()

	cols := map[string]any{
		"Z_PK":      pk,
		"Z_ENT":     ent,
		"ZGID":      gofakeit.UUID(),
		"ZACCOUNT2": accountID,
		"ZAMOUNT1":  amount,
		"ZDATE1":    models.TimeToCoreData(date),
		"ZDESC2":    desc,
	}
	if payeeID != 0 {
		cols["ZPAYEE2"] = payeeID
	}

	InsertObject(t, db, cols)
}

// InsertCategory inserts one category row; a zero parent means top-level
func InsertCategory(t *testing.T, db *gorm.DB, pk int64, name string, parent int64) {
	t.Helper()

	cols := map[string]any{
		"Z_PK":   pk,
		"Z_ENT":  19,
		"ZGID":   gofakeit.UUID(),
		"ZNAME2": name,
	}
	if parent != 0 {
		cols["ZPARENTCATEGORY"] = parent
	}

	InsertObject(t, db, cols)
}

// InsertPayee inserts one payee row
func InsertPayee(t *testing.T, db *gorm.DB, pk int64, name string) {
	t.Helper()

	InsertObject(t, db, map[string]any{
		"Z_PK":  pk,
		"Z_ENT": 28,
		"ZGID":  gofakeit.UUID(),
		"ZNAME": name,
	})
}

// AssignCategory links a transaction to a category
func AssignCategory(t *testing.T, db *gorm.DB, pk, transactionID, categoryID int64) {
	t.Helper()

	err := db.Exec(
		"INSERT INTO ZCATEGORYASSIGMENT (Z_PK, Z_ENT, ZCATEGORY, ZTRANSACTION) VALUES (?, ?, ?, ?)",
		pk, 29, categoryID, transactionID,
	).Error
	if err != nil {
		t.Fatalf("failed to assign category: %v", err)
	}
}

// InsertObject inserts an arbitrary object-table row. Tests use it directly
// to build malformed rows that violate the expected attribute shape.
func InsertObject(t *testing.T, db *gorm.DB, cols map[string]any) {
	t.Helper()

	names := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for name, value := range cols {
		names = append(names, name)
		placeholders = append(placeholders, "?")
		args = append(args, value)
	}

	query := "INSERT INTO ZSYNCOBJECT (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	if err := db.Exec(query, args...).Error; err != nil {
		t.Fatalf("failed to insert fixture row: %v", err)
	}
}
