package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger returns ctx carrying logger. A nil logger carries the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx, or the default.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithCatalog tags the context logger with the catalog key.
func WithCatalog(ctx context.Context, key string) context.Context {
	return withStr(ctx, "catalog", key)
}

// WithStore tags the context logger with the store backend.
func WithStore(ctx context.Context, backend string) context.Context {
	return withStr(ctx, "store", backend)
}

// WithOperation tags the context logger with the running operation.
func WithOperation(ctx context.Context, op string) context.Context {
	return withStr(ctx, "operation", op)
}

func withStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
