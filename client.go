package menumap

import (
	"context"
	"sync"

	"github.com/agentstation/menumap/internal/store"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/menu"
)

// defaultCatalogKey is used when neither the options nor the fetcher name
// the catalog.
const defaultCatalogKey = "menu"

// Fetcher retrieves the full remote catalog.
type Fetcher interface {
	Fetch(ctx context.Context) ([]menu.Item, error)
}

// endpointer is implemented by fetchers that know their location.
type endpointer interface {
	Endpoint() string
}

// Client manages the cached catalog and its event hooks.
type Client interface {

	// Catalog provides read-through access to the catalog
	Catalog

	// Updater handles explicit refreshes
	Updater

	// Persistence handles store maintenance
	Persistence

	// Hooks provides access to event callback registration
	Hooks

	// State reports the cache state
	State() State
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	store   store.Store
	fetcher Fetcher
	key     string

	// schema is ensured once per client; a failure is retried
	schemaMu    sync.Mutex
	schemaReady bool

	// state of the cached catalog
	stateMu sync.RWMutex
	state   State

	// in-flight fills and refreshes
	flights *flights

	// writes serialises fills with refreshes and clears
	writes chan struct{}

	hooks *hooks
}

// New creates a new Client over the given store and fetcher.
func New(s store.Store, f Fetcher, opts ...Option) (Client, error) {
	if s == nil {
		return nil, errors.NewConfigError("client", "store is required", nil)
	}
	if f == nil {
		return nil, errors.NewConfigError("client", "fetcher is required", nil)
	}

	c := &client{
		options: defaults().apply(opts...),
		store:   s,
		fetcher: f,
		state:   StateEmpty,
		flights: newFlights(),
		writes:  make(chan struct{}, 1),
		hooks:   newHooks(),
	}

	c.key = c.options.catalogKey
	if c.key == "" {
		if e, ok := f.(endpointer); ok {
			c.key = e.Endpoint()
		}
	}
	if c.key == "" {
		c.key = defaultCatalogKey
	}

	c.options.logger.Debug().
		Str("store", s.Backend()).
		Str("catalog", c.key).
		Msg("Created catalog client")

	return c, nil
}

// State reports the cache state.
func (c *client) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *client) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

// ensureSchema runs EnsureSchema once per client. Failures are not
// remembered so the next call tries again.
func (c *client) ensureSchema(ctx context.Context) error {
	c.schemaMu.Lock()
	defer c.schemaMu.Unlock()

	if c.schemaReady {
		return nil
	}
	if err := c.store.EnsureSchema(ctx); err != nil {
		return err
	}
	c.schemaReady = true
	return nil
}

// lockWrites acquires the write guard or gives up when ctx ends.
func (c *client) lockWrites(ctx context.Context) error {
	select {
	case c.writes <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *client) unlockWrites() {
	<-c.writes
}
