package menumap

import (
	"context"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*client)(nil)

// Persistence handles maintenance of the backing store.
type Persistence interface {
	// Clear removes the stored catalog so the next Catalog call fetches.
	Clear(ctx context.Context) error

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)
}

// Clear removes every stored item and resets the state to empty.
func (c *client) Clear(ctx context.Context) error {
	ctx = c.scope(ctx, "clear")

	if err := c.ensureSchema(ctx); err != nil {
		return err
	}
	if err := c.lockWrites(ctx); err != nil {
		return errors.WrapStorage("clear", c.store.Backend(), err)
	}
	err := c.store.Clear(ctx)
	if err == nil {
		c.setState(StateEmpty)
	}
	c.unlockWrites()
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info().Msg("Cleared stored catalog")
	c.hooks.triggerCatalogCleared()
	return nil
}

// Count returns the number of stored items.
func (c *client) Count(ctx context.Context) (int, error) {
	if err := c.ensureSchema(ctx); err != nil {
		return 0, err
	}
	return c.store.Count(ctx)
}
