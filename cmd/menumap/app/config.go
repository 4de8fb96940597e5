package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

// envPrefix scopes menumap settings in the environment, e.g. MENUMAP_STORE_BACKEND.
const envPrefix = "MENUMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Local store
	StoreBackend string
	StorePath    string
	StoreDSN     string

	// Remote catalog
	RemoteURL     string
	ImageBaseURL  string
	RemoteTimeout time.Duration
	FetchTimeout  time.Duration

	// User profile
	ProfilePath string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.menumap.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".menumap")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine, an explicit or broken one is not
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		StoreBackend: strings.ToLower(v.GetString("store.backend")),
		StorePath:    expandHome(v.GetString("store.path")),
		StoreDSN:     v.GetString("store.dsn"),

		RemoteURL:     v.GetString("remote.url"),
		ImageBaseURL:  v.GetString("remote.image_base_url"),
		RemoteTimeout: v.GetDuration("remote.timeout"),
		FetchTimeout:  v.GetDuration("fetch_timeout"),

		ProfilePath: expandHome(v.GetString("profile.path")),

		// Logging uses the unprefixed variables shared with pkg/logging
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case constants.BackendSQLite:
		if c.StorePath == "" {
			return errors.NewConfigError("store", "store.path is required for the sqlite backend", nil)
		}
	case constants.BackendPostgres:
		if c.StoreDSN == "" {
			return errors.NewConfigError("store", "store.dsn is required for the postgres backend", nil)
		}
	case constants.BackendMemory:
	default:
		return errors.NewConfigError("store", "backend must be sqlite, postgres or memory, got "+c.StoreBackend, nil)
	}
	if c.RemoteTimeout < 0 || c.FetchTimeout < 0 {
		return errors.NewConfigError("remote", "timeouts must not be negative", nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults(v *viper.Viper) {
	dataDir := constants.DefaultDataDir
	v.SetDefault("store.backend", constants.BackendSQLite)
	v.SetDefault("store.path", filepath.Join(dataDir, constants.DefaultDatabaseFile))
	v.SetDefault("remote.url", constants.DefaultCatalogURL)
	v.SetDefault("remote.image_base_url", "")
	v.SetDefault("remote.timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("fetch_timeout", constants.DefaultFetchTimeout)
	v.SetDefault("profile.path", filepath.Join(dataDir, constants.DefaultProfileFile))
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is read first because godotenv never overrides a variable
// that is already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
