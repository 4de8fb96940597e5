// Package remote fetches the menu catalog from its HTTP origin.
package remote

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/menumap/internal/transport"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/menu"
)

// Fetcher retrieves the full catalog with a single GET. It never retries.
type Fetcher struct {
	endpoint string
	client   *transport.Client
	maxBytes int64
	logger   *zerolog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the transport client.
func WithClient(c *transport.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout sets the HTTP timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client = transport.New(transport.WithTimeout(d))
	}
}

// WithMaxBytes caps the accepted payload size.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// New creates a fetcher for endpoint. An empty endpoint uses the public
// Little Lemon catalog.
func New(endpoint string, opts ...Option) (*Fetcher, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = constants.DefaultCatalogURL
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, errors.NewConfigError("remote", "catalog URL must be http or https", nil)
	}

	f := &Fetcher{
		endpoint: endpoint,
		client:   transport.New(),
		maxBytes: constants.MaxPayloadBytes,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Endpoint returns the catalog location.
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// Fetch downloads and parses the catalog.
func (f *Fetcher) Fetch(ctx context.Context) ([]menu.Item, error) {
	start := time.Now()
	resp, err := f.client.Get(ctx, f.endpoint)
	if err != nil {
		return nil, err
	}
	body, err := transport.ReadBody(resp, f.endpoint, f.maxBytes)
	if err != nil {
		return nil, err
	}
	items, err := Parse(body, f.endpoint)
	if err != nil {
		return nil, err
	}

	f.logger.Debug().
		Str("endpoint", f.endpoint).
		Int("items", len(items)).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched remote catalog")
	return items, nil
}
