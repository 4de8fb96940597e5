// Package app provides the application context and dependency management
// for the menumap CLI. It centralizes configuration, dependency injection,
// and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/internal/appcontext"
	"github.com/agentstation/menumap/internal/profile"
	"github.com/agentstation/menumap/internal/remote"
	"github.com/agentstation/menumap/internal/store"
	"github.com/agentstation/menumap/internal/telemetry"
	"github.com/agentstation/menumap/pkg/errors"
)

// App represents the menumap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily created, see Client
	mu       sync.RWMutex
	store    store.Store
	client   menumap.Client
	profiles profile.Store

	shutdownTracing func(context.Context) error
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can
// be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Apply options first so WithConfig skips loading
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig("")
		if err != nil {
			return nil, err
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ImageBaseURL returns the base URL for image references.
func (a *App) ImageBaseURL() string {
	return a.config.ImageBaseURL
}

// Profiles returns the user profile store.
func (a *App) Profiles() profile.Store {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.profiles == nil {
		a.profiles = profile.NewFileStore(a.config.ProfilePath)
	}
	return a.profiles
}

// Client returns the catalog client, creating it lazily if needed.
// This is thread-safe and ensures only one instance (and one store handle)
// is created.
func (a *App) Client() (menumap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	ctx := context.Background()

	if a.shutdownTracing == nil {
		shutdown, err := telemetry.Setup(ctx, "menumap", a.version)
		if err != nil {
			// Tracing is optional; keep going without it
			a.logger.Warn().Err(err).Msg("Tracing disabled")
		}
		a.shutdownTracing = shutdown
	}

	fetcher, err := remote.New(a.config.RemoteURL,
		remote.WithTimeout(a.config.RemoteTimeout),
		remote.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	s := a.store
	if s == nil {
		s, err = openStore(ctx, a.config)
		if err != nil {
			return nil, err
		}
	}

	c, err := menumap.New(s, fetcher,
		menumap.WithLogger(a.logger),
		menumap.WithFetchTimeout(a.config.FetchTimeout),
	)
	if err != nil {
		_ = s.Close()
		return nil, errors.NewConfigError("client", "failed to create catalog client", err)
	}

	a.store = s
	a.client = c
	return c, nil
}

// Shutdown releases the store handle and flushes pending spans.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	s := a.store
	shutdownTracing := a.shutdownTracing
	a.store, a.client, a.shutdownTracing = nil, nil, nil
	a.mu.Unlock()

	var errs []error
	if s != nil {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewConfigError("app", "config must not be nil", nil)
		}
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets the catalog store (useful for testing). The app takes
// ownership and closes it on Shutdown.
func WithStore(s store.Store) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}

// WithProfiles sets a custom profile store.
func WithProfiles(p profile.Store) Option {
	return func(a *App) error {
		a.profiles = p
		return nil
	}
}
