// Package store is the read-only accessor over the MoneyWiz object table.
// All domain records live in one polymorphic table (ZSYNCOBJECT) tagged by
// entity code; this package executes the raw queries and hands back untyped
// rows for the catalog to classify. It never issues a mutating statement,
// and in read-only mode the storage layer itself rejects writes.
package store

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
)

// Store wraps one connection to the backing SQLite file. One Store per tool
// invocation; Close must run on every exit path.
type Store struct {
	db       *gorm.DB
	path     string
	readOnly bool
}

// Open opens the backing store. With readOnly the SQLite driver is handed
// mode=ro plus the query_only pragma, so mutation is impossible at the
// storage layer, not merely by convention of the calling code.
func Open(path string, readOnly bool) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "", err)
	}
	if info.IsDir() {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "",
			fmt.Errorf("%s is a directory, not a database file", path))
	}

	dsn := fmt.Sprintf("file:%s", path)
	if readOnly {
		dsn += "?mode=ro&_query_only=true"
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, classify(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "", err)
	}

	// One invocation, one connection: no pooling across concurrent calls
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, classify(err)
	}

	return &Store{db: db, path: path, readOnly: readOnly}, nil
}

// NewFromDB wraps an existing gorm connection. Test seam for failure
// injection; production code always goes through Open.
func NewFromDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ReadOnly reports whether the storage layer rejects writes
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// classify maps driver errors onto the store error taxonomy
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "database table is locked"),
		strings.Contains(msg, "database is busy"):
		return apperrors.Wrap(apperrors.StoreLocked, "", err)
	case strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "no such file"),
		strings.Contains(msg, "not a database"),
		strings.Contains(msg, "permission denied"):
		return apperrors.Wrap(apperrors.StoreUnavailable, "", err)
	default:
		return apperrors.Wrap(apperrors.StoreQueryFailed, "", err)
	}
}
