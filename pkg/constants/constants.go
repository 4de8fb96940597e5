// Package constants provides shared constants used throughout the menumap codebase.
// This includes timeouts, limits, file permissions, and the default remote
// catalog locations.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the transport timeout for requests to the remote catalog
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultFetchTimeout bounds a single fetch-and-store operation
	DefaultFetchTimeout = 45 * time.Second

	// StoreBusyTimeout is how long SQLite waits on a locked database
	StoreBusyTimeout = 5 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// ShutdownTimeout is how long the CLI waits for cleanup after an error
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for files holding personal data (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// MaxPayloadBytes caps the size of a remote catalog response (8 MiB)
	MaxPayloadBytes = 8 << 20

	// MaxItemNameLength is the maximum allowed length for menu item names
	MaxItemNameLength = 256

	// MaxDescriptionLength is the maximum allowed length for descriptions
	MaxDescriptionLength = 4096
)

// Remote catalog constants
const (
	// DefaultCatalogURL is the catalog endpoint the Little Lemon app reads from
	DefaultCatalogURL = "https://github.com/Meta-Mobile-Developer-PC/Working-With-Data-API/blob/main/menu.json?raw=true"

	// DefaultImageBaseURL is the location image references are resolved against
	DefaultImageBaseURL = "https://github.com/Meta-Mobile-Developer-PC/Working-With-Data-API/blob/main/images/"

	// DefaultImageQuery is appended to resolved image URLs so GitHub serves raw bytes
	DefaultImageQuery = "raw=true"

	// UserAgent is sent with every remote request
	UserAgent = "menumap/1.0"
)

// Path constants
const (
	// DefaultDataDir is the default directory for the local store and profile
	DefaultDataDir = "~/.menumap"

	// DefaultDatabaseFile is the SQLite file name inside the data directory
	DefaultDatabaseFile = "little_lemon.db"

	// DefaultProfileFile is the profile file name inside the data directory
	DefaultProfileFile = "profile.yaml"
)

// Store backend names
const (
	// BackendSQLite selects the embedded SQLite store
	BackendSQLite = "sqlite"

	// BackendPostgres selects the PostgreSQL store
	BackendPostgres = "postgres"

	// BackendMemory selects the non-durable in-memory store
	BackendMemory = "memory"
)
