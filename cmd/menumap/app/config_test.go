package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

// isolate points HOME and the working directory at an empty temp dir so
// no real config or .env file leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

// TestLoadConfig verifies defaults.
func TestLoadConfig(t *testing.T) {
	home := isolate(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.StoreBackend != constants.BackendSQLite {
		t.Errorf("StoreBackend = %s, want sqlite", config.StoreBackend)
	}
	if want := filepath.Join(home, ".menumap", constants.DefaultDatabaseFile); config.StorePath != want {
		t.Errorf("StorePath = %s, want %s", config.StorePath, want)
	}
	if config.RemoteURL != constants.DefaultCatalogURL {
		t.Errorf("RemoteURL = %s, want default", config.RemoteURL)
	}
	if config.FetchTimeout != constants.DefaultFetchTimeout {
		t.Errorf("FetchTimeout = %v, want %v", config.FetchTimeout, constants.DefaultFetchTimeout)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies MENUMAP_* variables.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("MENUMAP_STORE_BACKEND", "Memory")
	t.Setenv("MENUMAP_REMOTE_URL", "http://127.0.0.1:9/menu.json")
	t.Setenv("MENUMAP_REMOTE_TIMEOUT", "3s")
	t.Setenv("MENUMAP_FORMAT", "json")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.StoreBackend != constants.BackendMemory {
		t.Errorf("StoreBackend = %s, want memory", config.StoreBackend)
	}
	if config.RemoteURL != "http://127.0.0.1:9/menu.json" {
		t.Errorf("RemoteURL = %s", config.RemoteURL)
	}
	if config.RemoteTimeout != 3*time.Second {
		t.Errorf("RemoteTimeout = %v, want 3s", config.RemoteTimeout)
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
}

// TestConfig_DotEnv verifies .env files are read.
func TestConfig_DotEnv(t *testing.T) {
	dir := isolate(t)
	// Cleanup for variables godotenv sets on the process
	t.Setenv("MENUMAP_PROFILE_PATH", "")
	os.Unsetenv("MENUMAP_PROFILE_PATH")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MENUMAP_PROFILE_PATH=/tmp/from-env.yaml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env.local"), []byte("MENUMAP_PROFILE_PATH=/tmp/from-local.yaml\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.ProfilePath != "/tmp/from-local.yaml" {
		t.Errorf("ProfilePath = %s, want .env.local value", config.ProfilePath)
	}
}

// TestConfig_File verifies an explicit YAML config file.
func TestConfig_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "menumap.yaml")
	data := []byte("store:\n  backend: postgres\n  dsn: postgres://localhost/menu\nfetch_timeout: 10s\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.StoreBackend != constants.BackendPostgres || config.StoreDSN != "postgres://localhost/menu" {
		t.Errorf("store = %s %s", config.StoreBackend, config.StoreDSN)
	}
	if config.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", config.FetchTimeout)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}
}

// TestConfig_MissingExplicitFile verifies a named but absent file is an error.
func TestConfig_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
	var cfgErr *errors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("LoadConfig() error = %v, want ConfigError", err)
	}
}

// TestConfig_Validate covers backend checks.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"sqlite with path", Config{StoreBackend: "sqlite", StorePath: "/tmp/x.db"}, false},
		{"sqlite without path", Config{StoreBackend: "sqlite"}, true},
		{"postgres without dsn", Config{StoreBackend: "postgres"}, true},
		{"memory", Config{StoreBackend: "memory"}, false},
		{"unknown", Config{StoreBackend: "redis"}, true},
		{"negative timeout", Config{StoreBackend: "memory", FetchTimeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "debug"}
	config.UpdateFromFlags(true, false, true, "", "")
	if config.Format != "yaml" || config.LogLevel != "debug" {
		t.Error("empty flag values must not override config")
	}
	config.UpdateFromFlags(false, true, false, "json", "error")
	if config.Format != "json" || config.LogLevel != "error" || !config.Quiet {
		t.Errorf("flags not applied: %+v", config)
	}
}
