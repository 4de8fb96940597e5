package menumap

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/menu"
)

// Compile-time interface check to ensure proper implementation.
var _ Updater = (*client)(nil)

// Updater handles explicit catalog refreshes.
type Updater interface {
	// Refresh fetches the remote catalog and stores it, returning the
	// catalog as stored afterwards.
	Refresh(ctx context.Context, opts ...RefreshOption) ([]menu.Item, error)
}

// RefreshOption configures a refresh.
type RefreshOption func(*refreshOptions)

type refreshOptions struct {
	append bool
}

// WithAppend appends the fetched items to the stored ones instead of
// replacing them. Items present in both end up stored twice.
func WithAppend() RefreshOption {
	return func(o *refreshOptions) {
		o.append = true
	}
}

// Refresh re-fetches the remote catalog.
//
// By default the stored catalog is replaced atomically, so refreshing
// never duplicates items. On failure the stored catalog is left as it was.
func (c *client) Refresh(ctx context.Context, opts ...RefreshOption) ([]menu.Item, error) {
	ro := &refreshOptions{}
	for _, opt := range opts {
		opt(ro)
	}

	mode := "replace"
	if ro.append {
		mode = "append"
	}

	ctx = c.scope(ctx, "refresh")
	ctx, span := c.options.tracer.Start(ctx, "menumap.Refresh",
		trace.WithAttributes(
			attribute.String("menumap.catalog", c.key),
			attribute.String("menumap.mode", mode),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, recordError(span, c.waitError(err))
	}
	if err := c.ensureSchema(ctx); err != nil {
		return nil, recordError(span, err)
	}

	items, shared, err := c.flights.do(ctx, c.key+"#"+mode, func(ctx context.Context) ([]menu.Item, error) {
		return c.refresh(ctx, ro)
	})
	if err != nil {
		return nil, recordError(span, c.waitError(err))
	}
	span.SetAttributes(
		attribute.Bool("menumap.shared", shared),
		attribute.Int("menumap.items", len(items)),
	)
	return items, nil
}

func (c *client) refresh(ctx context.Context, ro *refreshOptions) ([]menu.Item, error) {
	logger := logging.FromContext(ctx)
	prev := c.State()
	c.setState(StateFetching)

	items, err := c.refreshLocked(ctx, ro)
	if err != nil {
		if prev == StatePopulated {
			c.setState(StatePopulated)
		} else {
			c.setState(StateFetchFailed)
		}
		logger.Warn().Err(err).Msg("Catalog refresh failed")
		c.hooks.triggerFetchFailed(err)
		return nil, err
	}

	if len(items) > 0 {
		c.setState(StatePopulated)
		c.hooks.triggerCatalogFetched(items)
	} else {
		c.setState(StateEmpty)
	}
	logger.Info().Int("items", len(items)).Bool("append", ro.append).Msg("Refreshed catalog")
	return items, nil
}

func (c *client) refreshLocked(ctx context.Context, ro *refreshOptions) ([]menu.Item, error) {
	// Step 1: fetch before touching the store so a failure leaves it intact
	remote, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	// Step 2: write under the guard shared with fills and clears
	if err := c.lockWrites(ctx); err != nil {
		return nil, errors.WrapNetwork(c.key, err)
	}
	defer c.unlockWrites()

	if !ro.append {
		return c.store.ReplaceAll(ctx, remote)
	}
	if _, err := c.store.BulkInsert(ctx, remote); err != nil {
		return nil, err
	}
	return c.store.ReadAll(ctx)
}
