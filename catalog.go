package menumap

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/menu"
)

// Compile-time interface check to ensure proper implementation.
var _ Catalog = (*client)(nil)

// Catalog provides read-through access to the menu catalog.
type Catalog interface {
	// Catalog returns the stored catalog, filling the store from the
	// remote source first when it is empty.
	Catalog(ctx context.Context) ([]menu.Item, error)
}

// Catalog returns the stored catalog in insertion order.
//
// A non-empty store is served without contacting the remote source. An
// empty store is filled by a single fetch shared by every concurrent
// caller. A remote catalog with no items yields an empty slice and a nil
// error; nothing is stored and the next call fetches again.
func (c *client) Catalog(ctx context.Context) ([]menu.Item, error) {
	ctx = c.scope(ctx, "catalog")
	ctx, span := c.options.tracer.Start(ctx, "menumap.Catalog",
		trace.WithAttributes(attribute.String("menumap.catalog", c.key)),
	)
	defer span.End()
	logger := logging.FromContext(ctx)

	// A caller that already gave up is told so before the store is touched
	if err := ctx.Err(); err != nil {
		return nil, recordError(span, c.waitError(err))
	}
	if err := c.ensureSchema(ctx); err != nil {
		return nil, recordError(span, err)
	}

	items, err := c.store.ReadAll(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}
	if len(items) > 0 {
		c.setState(StatePopulated)
		span.SetAttributes(
			attribute.Bool("menumap.cache_hit", true),
			attribute.Int("menumap.items", len(items)),
		)
		logger.Debug().Int("items", len(items)).Msg("Serving stored catalog")
		return items, nil
	}
	span.SetAttributes(attribute.Bool("menumap.cache_hit", false))

	items, shared, err := c.flights.do(ctx, c.key, c.fill)
	if err != nil {
		return nil, recordError(span, c.waitError(err))
	}
	span.SetAttributes(
		attribute.Bool("menumap.shared", shared),
		attribute.Int("menumap.items", len(items)),
	)
	return items, nil
}

// fill populates an empty store from the remote source. It runs once per
// flight.
func (c *client) fill(ctx context.Context) ([]menu.Item, error) {
	ctx, span := c.options.tracer.Start(ctx, "menumap.fill")
	defer span.End()

	items, fetched, err := c.fillLocked(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Catalog fill failed")
		c.hooks.triggerFetchFailed(err)
		return nil, recordError(span, err)
	}
	span.SetAttributes(
		attribute.Bool("menumap.fetched", fetched),
		attribute.Int("menumap.items", len(items)),
	)
	if fetched && len(items) > 0 {
		c.hooks.triggerCatalogFetched(items)
	}
	return items, nil
}

// fillLocked does the work of fill under the write guard. fetched reports
// whether the remote source was contacted.
func (c *client) fillLocked(ctx context.Context) (items []menu.Item, fetched bool, err error) {
	if err := c.lockWrites(ctx); err != nil {
		return nil, false, errors.WrapNetwork(c.key, err)
	}
	defer c.unlockWrites()
	logger := logging.FromContext(ctx)

	// Another flight may have filled the store since the caller looked.
	items, err = c.store.ReadAll(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(items) > 0 {
		c.setState(StatePopulated)
		return items, false, nil
	}

	c.setState(StateFetching)
	logger.Info().Msg("Store is empty, fetching remote catalog")

	remote, err := c.fetch(ctx)
	if err != nil {
		c.setState(StateFetchFailed)
		return nil, true, err
	}
	if len(remote) == 0 {
		c.setState(StateEmpty)
		logger.Warn().Msg("Remote catalog has no items, nothing stored")
		return []menu.Item{}, true, nil
	}

	stored, err := c.store.BulkInsert(ctx, remote)
	if err != nil {
		c.setState(StateFetchFailed)
		return nil, true, err
	}

	c.setState(StatePopulated)
	logger.Info().Int("items", len(stored)).Msg("Stored remote catalog")
	return stored, true, nil
}

// fetch calls the fetcher under the configured timeout. Errors that are
// neither network nor parse errors are reported as network errors.
func (c *client) fetch(ctx context.Context) ([]menu.Item, error) {
	if c.options.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.options.fetchTimeout)
		defer cancel()
	}

	items, err := c.fetcher.Fetch(ctx)
	if err != nil {
		if !errors.IsNetwork(err) && !errors.IsParse(err) {
			err = errors.WrapNetwork(c.key, err)
		}
		return nil, err
	}
	if err := menu.ValidateAll(items); err != nil {
		return nil, errors.NewParseError("json", c.key, err.Error(), err)
	}
	return items, nil
}

// waitError types the error of a caller that stopped waiting.
func (c *client) waitError(err error) error {
	if err == context.Canceled || err == context.DeadlineExceeded {
		return errors.NewNetworkError(c.key, 0, "stopped waiting for catalog: "+err.Error(), err)
	}
	return err
}

// scope attaches the client logger and operation fields to ctx.
func (c *client) scope(ctx context.Context, op string) context.Context {
	ctx = logging.WithLogger(ctx, c.options.logger)
	ctx = logging.WithCatalog(ctx, c.key)
	ctx = logging.WithStore(ctx, c.store.Backend())
	return logging.WithOperation(ctx, op)
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
