// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested with a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/internal/profile"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Client returns the catalog client, creating it lazily if needed.
	Client() (menumap.Client, error)

	// Profiles returns the user profile store.
	Profiles() profile.Store

	// ImageBaseURL returns the base URL image references resolve against.
	ImageBaseURL() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
