// Package storetest holds the behaviour every store.Store must satisfy.
package storetest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap/internal/store"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/menu"
)

// Factory returns a fresh, empty store. The factory owns cleanup.
type Factory func(t *testing.T) store.Store

// Run exercises the store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("EnsureSchemaIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.EnsureSchema(ctx))

		_, err := s.BulkInsert(ctx, menu.TestItems(t))
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, s.EnsureSchema(ctx))
		}

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n, "ensuring the schema must not drop rows")
	})

	t.Run("RoundTripPreservesContentAndOrder", func(t *testing.T) {
		s := ready(t, newStore)
		ctx := context.Background()
		input := menu.TestItems(t)

		stored, err := s.BulkInsert(ctx, input)
		require.NoError(t, err)
		require.Len(t, stored, len(input))

		got, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, len(input))
		for i := range input {
			assert.True(t, input[i].Equivalent(got[i]), "item %d: want %+v, got %+v", i, input[i], got[i])
			assert.Equal(t, stored[i].ID, got[i].ID)
			assert.True(t, got[i].Persisted())
		}
		assert.Equal(t, "12.5", got[0].Price.String())
	})

	t.Run("IDsAreUniqueAndAscending", func(t *testing.T) {
		s := ready(t, newStore)
		ctx := context.Background()

		_, err := s.BulkInsert(ctx, menu.TestItems(t))
		require.NoError(t, err)
		_, err = s.BulkInsert(ctx, menu.TestItems(t)[:1])
		require.NoError(t, err)

		got, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 4)
		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i].ID, got[i-1].ID)
		}
	})

	t.Run("BulkInsertAppendsDuplicates", func(t *testing.T) {
		s := ready(t, newStore)
		ctx := context.Background()

		_, err := s.BulkInsert(ctx, menu.TestItems(t))
		require.NoError(t, err)
		_, err = s.BulkInsert(ctx, menu.TestItems(t))
		require.NoError(t, err)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 6, n)
	})

	t.Run("ReplaceAllDoesNotDuplicate", func(t *testing.T) {
		s := ready(t, newStore)
		ctx := context.Background()

		_, err := s.BulkInsert(ctx, menu.TestItems(t))
		require.NoError(t, err)
		stored, err := s.ReplaceAll(ctx, menu.TestItems(t))
		require.NoError(t, err)
		require.Len(t, stored, 3)

		got, err := s.ReadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("InvalidBatchLeavesNoRows", func(t *testing.T) {
		s := ready(t, newStore)
		ctx := context.Background()

		batch := menu.TestItems(t)
		batch = append(batch, menu.Item{Name: "Broken", Price: decimal.NewFromInt(-3)})
		_, err := s.BulkInsert(ctx, batch)
		require.Error(t, err)
		assert.True(t, errors.IsStorage(err))

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("FailedReplaceKeepsExistingRows", func(t *testing.T) {
		s := ready(t, newStore)
		ctx := context.Background()

		_, err := s.BulkInsert(ctx, menu.TestItems(t))
		require.NoError(t, err)
		_, err = s.ReplaceAll(ctx, []menu.Item{{Name: ""}})
		require.Error(t, err)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("ClearRemovesAllRows", func(t *testing.T) {
		s := ready(t, newStore)
		ctx := context.Background()

		_, err := s.BulkInsert(ctx, menu.TestItems(t))
		require.NoError(t, err)
		require.NoError(t, s.Clear(ctx))

		got, err := s.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("EmptyBatchIsNoop", func(t *testing.T) {
		s := ready(t, newStore)
		stored, err := s.BulkInsert(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("CanceledContextIsStorageError", func(t *testing.T) {
		s := ready(t, newStore)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.BulkInsert(ctx, menu.TestItems(t))
		require.Error(t, err)
		assert.True(t, errors.IsStorage(err))
		assert.True(t, errors.IsCanceled(err))

		n, err := s.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func ready(t *testing.T, newStore Factory) store.Store {
	t.Helper()
	s := newStore(t)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}
