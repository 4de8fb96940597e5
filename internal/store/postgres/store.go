// Package postgres provides a PostgreSQL-backed catalog store.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/agentstation/menumap/internal/store"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/menu"
)

const backend = constants.BackendPostgres

const schemaSQL = `
CREATE TABLE IF NOT EXISTS menu (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	price       DOUBLE PRECISION NOT NULL CHECK (price >= 0),
	description TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT ''
)`

const insertSQL = `
INSERT INTO menu (name, price, description, image)
VALUES ($1, $2, $3, $4)
RETURNING id`

var _ store.Store = (*Store)(nil)

// Store persists the menu catalog in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database described by dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.NewStorageError("open", backend, fmt.Errorf("connection string is required"))
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.NewStorageError("open", backend, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError("open", backend, err)
	}
	return &Store{pool: pool}, nil
}

// Backend names the implementation.
func (s *Store) Backend() string {
	return backend
}

// Close releases the pool.
func (s *Store) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// EnsureSchema creates the menu table when it is absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return errors.NewStorageError("schema", backend, err)
	}
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return errors.NewStorageError("schema", backend, err)
	}
	return nil
}

// BulkInsert appends items in one transaction.
func (s *Store) BulkInsert(ctx context.Context, items []menu.Item) ([]menu.Item, error) {
	if err := s.check(ctx); err != nil {
		return nil, errors.NewStorageError("insert", backend, err)
	}
	if err := menu.ValidateAll(items); err != nil {
		return nil, errors.NewStorageError("insert", backend, err)
	}

	var stored []menu.Item
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
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
		return nil, errors.NewStorageError("replace", backend, err)
	}
	if err := menu.ValidateAll(items); err != nil {
		return nil, errors.NewStorageError("replace", backend, err)
	}

	var stored []menu.Item
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM menu`); err != nil {
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

// ReadAll returns every row ordered by ID.
func (s *Store) ReadAll(ctx context.Context) ([]menu.Item, error) {
	if err := s.check(ctx); err != nil {
		return nil, errors.NewStorageError("read", backend, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price, description, image
		FROM menu
		ORDER BY id`,
	)
	if err != nil {
		return nil, errors.NewStorageError("read", backend, err)
	}
	defer rows.Close()

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
		return errors.NewStorageError("clear", backend, err)
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM menu`); err != nil {
		return errors.NewStorageError("clear", backend, err)
	}
	return nil
}

// Count returns the number of rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, errors.NewStorageError("count", backend, err)
	}
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu`).Scan(&n); err != nil {
		return 0, errors.NewStorageError("count", backend, err)
	}
	return n, nil
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func insertItems(ctx context.Context, tx pgx.Tx, items []menu.Item) ([]menu.Item, error) {
	stored := make([]menu.Item, 0, len(items))
	if len(items) == 0 {
		return stored, nil
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(insertSQL, item.Name, item.Price.InexactFloat64(), item.Description, item.Image)
	}
	results := tx.SendBatch(ctx, batch)
	for _, item := range items {
		if err := results.QueryRow().Scan(&item.ID); err != nil {
			_ = results.Close()
			return nil, fmt.Errorf("insert %q: %w", item.Name, err)
		}
		stored = append(stored, item)
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}
	return stored, nil
}
