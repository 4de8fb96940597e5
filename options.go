package menumap

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/logging"
)

// tracerName identifies spans emitted by the client.
const tracerName = "github.com/agentstation/menumap"

// Option configures a Client.
type Option func(*options)

// options holds the client configuration.
type options struct {
	fetchTimeout time.Duration
	logger       *zerolog.Logger
	tracer       trace.Tracer
	catalogKey   string
}

// defaults returns options with default values.
func defaults() *options {
	return &options{
		fetchTimeout: constants.DefaultFetchTimeout,
		logger:       nil,
		tracer:       nil,
	}
}

// apply applies the given options and fills in what is still unset.
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o
}

// WithFetchTimeout bounds each remote fetch. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.fetchTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTracer sets the tracer used for client spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithCatalogKey sets the identity used to coalesce concurrent fills.
// By default the fetcher endpoint is used.
func WithCatalogKey(key string) Option {
	return func(o *options) {
		o.catalogKey = key
	}
}
