// Package store defines the durable catalog store used by the menu cache.
package store

import (
	"context"

	"github.com/agentstation/menumap/pkg/menu"
)

// Store persists catalog records.
//
// The cache client is the only writer. Every failure is reported as an
// errors.StorageError.
type Store interface {
	// EnsureSchema creates the backing table if it is absent. It is safe to
	// call on every start and never destroys existing rows.
	EnsureSchema(ctx context.Context) error

	// BulkInsert appends items as new rows in one transaction and returns
	// them with their assigned IDs. Rows are never deduplicated; either all
	// rows become visible or none do.
	BulkInsert(ctx context.Context, items []menu.Item) ([]menu.Item, error)

	// ReadAll returns every row ordered by ascending ID.
	ReadAll(ctx context.Context) ([]menu.Item, error)

	// Clear removes all rows.
	Clear(ctx context.Context) error

	// ReplaceAll clears the table and inserts items in one transaction.
	ReplaceAll(ctx context.Context, items []menu.Item) ([]menu.Item, error)

	// Count returns the number of stored rows.
	Count(ctx context.Context) (int, error)

	// Backend names the implementation, e.g. "sqlite".
	Backend() string

	// Close releases the underlying handle.
	Close() error
}
