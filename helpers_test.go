package menumap

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap/internal/store"
	"github.com/agentstation/menumap/internal/store/memory"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/menu"
)

// fakeFetcher serves a fixed catalog and counts calls. When gate is set,
// Fetch blocks until the gate is closed or ctx ends.
type fakeFetcher struct {
	mu      sync.Mutex
	items   []menu.Item
	err     error
	gate    chan struct{}
	started chan struct{}
	calls   atomic.Int32
}

func newFakeFetcher(t *testing.T) *fakeFetcher {
	t.Helper()
	return &fakeFetcher{items: menu.TestItems(t)}
}

func (f *fakeFetcher) Endpoint() string {
	return "https://menu.test/menu.json"
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]menu.Item, error) {
	f.calls.Add(1)
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, errors.WrapNetwork(f.Endpoint(), ctx.Err())
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.items), nil
}

func (f *fakeFetcher) set(items []menu.Item, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	f.err = err
}

// blockFetches makes later Fetch calls wait for release.
func (f *fakeFetcher) blockFetches() (release func()) {
	f.gate = make(chan struct{})
	f.started = make(chan struct{}, 1)
	var once sync.Once
	return func() { once.Do(func() { close(f.gate) }) }
}

// spyStore wraps a store to count writes and inject failures.
type spyStore struct {
	store.Store
	inserts        atomic.Int32
	replaces       atomic.Int32
	schemaCalls    atomic.Int32
	schemaFailures atomic.Int32
	insertErr      error
}

func newSpyStore() *spyStore {
	return &spyStore{Store: memory.New()}
}

func (s *spyStore) EnsureSchema(ctx context.Context) error {
	s.schemaCalls.Add(1)
	if s.schemaFailures.Load() > 0 {
		s.schemaFailures.Add(-1)
		return errors.NewStorageError("schema", s.Backend(), errors.New("disk I/O error"))
	}
	return s.Store.EnsureSchema(ctx)
}

func (s *spyStore) BulkInsert(ctx context.Context, items []menu.Item) ([]menu.Item, error) {
	s.inserts.Add(1)
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	return s.Store.BulkInsert(ctx, items)
}

func (s *spyStore) ReplaceAll(ctx context.Context, items []menu.Item) ([]menu.Item, error) {
	s.replaces.Add(1)
	return s.Store.ReplaceAll(ctx, items)
}

func newTestClient(t *testing.T, s store.Store, f Fetcher, opts ...Option) *client {
	t.Helper()
	nop := zerolog.Nop()
	opts = append([]Option{WithLogger(&nop)}, opts...)
	c, err := New(s, f, opts...)
	require.NoError(t, err)
	return c.(*client)
}

// waiters reports how many callers wait on the flight for key.
func waiters(c *client, key string) int {
	c.flights.mu.Lock()
	defer c.flights.mu.Unlock()
	if f := c.flights.active[key]; f != nil {
		return f.waiters
	}
	return 0
}

func names(items []menu.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}
