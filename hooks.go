package menumap

import (
	"slices"
	"sync"

	"github.com/agentstation/menumap/pkg/menu"
)

// Hook function types for catalog events
type (
	// CatalogFetchedHook is called after a fetched catalog has been stored
	CatalogFetchedHook func(items []menu.Item)

	// FetchFailedHook is called when filling or refreshing the store fails
	FetchFailedHook func(err error)

	// CatalogClearedHook is called after the stored catalog was cleared
	CatalogClearedHook func()
)

// Hooks provides event callback registration.
type Hooks interface {
	// OnCatalogFetched registers a callback for stored fetches
	OnCatalogFetched(CatalogFetchedHook)

	// OnFetchFailed registers a callback for failed fills and refreshes
	OnFetchFailed(FetchFailedHook)

	// OnCatalogCleared registers a callback for clears
	OnCatalogCleared(CatalogClearedHook)
}

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu               sync.RWMutex
	onCatalogFetched []CatalogFetchedHook
	onFetchFailed    []FetchFailedHook
	onCatalogCleared []CatalogClearedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnCatalogFetched registers a callback for when a fetched catalog is stored.
func (c *client) OnCatalogFetched(fn CatalogFetchedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onCatalogFetched = append(c.hooks.onCatalogFetched, fn)
}

// OnFetchFailed registers a callback for when a fill or refresh fails.
func (c *client) OnFetchFailed(fn FetchFailedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFetchFailed = append(c.hooks.onFetchFailed, fn)
}

// OnCatalogCleared registers a callback for when the store is cleared.
func (c *client) OnCatalogCleared(fn CatalogClearedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onCatalogCleared = append(c.hooks.onCatalogCleared, fn)
}

// triggerCatalogFetched calls every fetched hook with its own copy of items.
func (h *hooks) triggerCatalogFetched(items []menu.Item) {
	h.mu.RLock()
	fns := slices.Clone(h.onCatalogFetched)
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(slices.Clone(items))
	}
}

func (h *hooks) triggerFetchFailed(err error) {
	h.mu.RLock()
	fns := slices.Clone(h.onFetchFailed)
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(err)
	}
}

func (h *hooks) triggerCatalogCleared() {
	h.mu.RLock()
	fns := slices.Clone(h.onCatalogCleared)
	h.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
