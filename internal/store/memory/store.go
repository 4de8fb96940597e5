// Package memory provides a non-durable catalog store.
//
// It is used for tests and for running the CLI without touching disk.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/agentstation/menumap/internal/store"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/menu"
)

const backend = constants.BackendMemory

var _ store.Store = (*Store)(nil)

// Store keeps the catalog in a slice guarded by a mutex.
type Store struct {
	mu     sync.RWMutex
	items  []menu.Item
	nextID int64
	schema bool
	closed bool
}

// New creates an empty memory store.
func New() *Store {
	return &Store{nextID: 1}
}

// Backend names the implementation.
func (s *Store) Backend() string {
	return backend
}

// EnsureSchema marks the store ready. Existing rows are kept.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, false); err != nil {
		return errors.NewStorageError("schema", backend, err)
	}
	s.schema = true
	return nil
}

// BulkInsert appends items. Validation happens before any row is added.
func (s *Store) BulkInsert(ctx context.Context, items []menu.Item) ([]menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, true); err != nil {
		return nil, errors.NewStorageError("insert", backend, err)
	}
	if err := menu.ValidateAll(items); err != nil {
		return nil, errors.NewStorageError("insert", backend, err)
	}
	return s.appendLocked(items), nil
}

// ReplaceAll swaps the whole table for items.
func (s *Store) ReplaceAll(ctx context.Context, items []menu.Item) ([]menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, true); err != nil {
		return nil, errors.NewStorageError("replace", backend, err)
	}
	if err := menu.ValidateAll(items); err != nil {
		return nil, errors.NewStorageError("replace", backend, err)
	}
	s.items = nil
	return s.appendLocked(items), nil
}

// ReadAll returns a copy of every row in ID order.
func (s *Store) ReadAll(ctx context.Context) ([]menu.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, true); err != nil {
		return nil, errors.NewStorageError("read", backend, err)
	}
	out := make([]menu.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Clear removes all rows. IDs keep increasing afterwards.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, true); err != nil {
		return errors.NewStorageError("clear", backend, err)
	}
	s.items = nil
	return nil
}

// Count returns the number of rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, true); err != nil {
		return 0, errors.NewStorageError("count", backend, err)
	}
	return len(s.items), nil
}

// Close makes every later call fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) appendLocked(items []menu.Item) []menu.Item {
	stored := slices.Clone(items)
	if stored == nil {
		stored = []menu.Item{}
	}
	for i := range stored {
		stored[i].ID = s.nextID
		s.nextID++
	}
	s.items = append(s.items, stored...)
	return slices.Clone(stored)
}

func (s *Store) check(ctx context.Context, needSchema bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return fmt.Errorf("store is closed")
	}
	if needSchema && !s.schema {
		return fmt.Errorf("no such table: menu")
	}
	return nil
}
