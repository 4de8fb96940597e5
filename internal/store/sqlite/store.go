// Package sqlite provides the SQLite-backed catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/agentstation/menumap/internal/store"
	"github.com/agentstation/menumap/internal/store/sqlite/migrations"
	"github.com/agentstation/menumap/internal/store/sqlitemigrate"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/menu"
)

const backend = constants.BackendSQLite

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var _ store.Store = (*Store)(nil)

// Store persists the menu catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
	path  string
}

// Open opens the SQLite database at path. The schema is not touched until
// EnsureSchema is called.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.NewStorageError("open", backend, fmt.Errorf("storage path is required"))
	}

	dsn := buildDSN(path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewStorageError("open", backend, err)
	}
	if path == MemoryPath {
		// each connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, errors.NewStorageError("open", backend, err)
	}
	return &Store{sqlDB: sqlDB, path: path}, nil
}

func buildDSN(path string) string {
	if path == MemoryPath {
		return path
	}
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", constants.StoreBusyTimeout.Milliseconds()))
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "synchronous(NORMAL)")
	return "file:" + filepath.Clean(path) + "?" + params.Encode()
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Backend names the implementation.
func (s *Store) Backend() string {
	return backend
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return errors.WrapStorage("close", backend, s.sqlDB.Close())
}

// EnsureSchema applies the embedded migrations.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return errors.WrapStorage("schema", backend, err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, s.sqlDB, migrations.FS, "."); err != nil {
		return errors.NewStorageError("schema", backend, err)
	}
	return nil
}

// BulkInsert appends items in one transaction.
func (s *Store) BulkInsert(ctx context.Context, items []menu.Item) ([]menu.Item, error) {
	if err := s.check(ctx); err != nil {
		return nil, errors.WrapStorage("insert", backend, err)
	}
	if err := menu.ValidateAll(items); err != nil {
		return nil, errors.NewStorageError("insert", backend, err)
	}

	var stored []menu.Item
	err := withTx(ctx, s.sqlDB, func(tx *sql.Tx) error {
		var err error
		stored, err = insertItems(ctx, tx, items)
		return err
	})
	if err != nil {
		return nil, errors.NewStorageError("insert", backend, err)
	}
	return stored, nil
}

// ReplaceAll clears the table and inserts items in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, items []menu.Item) ([]menu.Item, error) {
	if err := s.check(ctx); err != nil {
		return nil, errors.WrapStorage("replace", backend, err)
	}
	if err := menu.ValidateAll(items); err != nil {
		return nil, errors.NewStorageError("replace", backend, err)
	}

	var stored []menu.Item
	err := withTx(ctx, s.sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM menu`); err != nil {
			return fmt.Errorf("clear menu: %w", err)
		}
		var err error
		stored, err = insertItems(ctx, tx, items)
		return err
	})
	if err != nil {
		return nil, errors.NewStorageError("replace", backend, err)
	}
	return stored, nil
}

// ReadAll returns every row in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]menu.Item, error) {
	if err := s.check(ctx); err != nil {
		return nil, errors.WrapStorage("read", backend, err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, price, description, image
		   FROM menu
		  ORDER BY id ASC`,
	)
	if err != nil {
		return nil, errors.NewStorageError("read", backend, err)
	}
	defer func() { _ = rows.Close() }()

	items := []menu.Item{}
	for rows.Next() {
		var item menu.Item
		var price float64
		if err := rows.Scan(&item.ID, &item.Name, &price, &item.Description, &item.Image); err != nil {
			return nil, errors.NewStorageError("read", backend, err)
		}
		item.Price = decimal.NewFromFloat(price)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("read", backend, err)
	}
	return items, nil
}

// Clear removes all rows.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return errors.WrapStorage("clear", backend, err)
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM menu`); err != nil {
		return errors.NewStorageError("clear", backend, err)
	}
	return nil
}

// Count returns the number of rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, errors.WrapStorage("count", backend, err)
	}
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu`).Scan(&n); err != nil {
		return 0, errors.NewStorageError("count", backend, err)
	}
	return n, nil
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, items []menu.Item) ([]menu.Item, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO menu (name, price, description, image) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	stored := make([]menu.Item, 0, len(items))
	for _, item := range items {
		res, err := stmt.ExecContext(ctx, item.Name, item.Price.InexactFloat64(), item.Description, item.Image)
		if err != nil {
			return nil, fmt.Errorf("insert %q: %w", item.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert %q: %w", item.Name, err)
		}
		item.ID = id
		stored = append(stored, item)
	}
	return stored, nil
}

// withTx runs fn in a transaction, committing on success and rolling back
// on error or panic.
func withTx(ctx context.Context, sqlDB *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
