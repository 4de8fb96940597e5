package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/internal/store/sqlite"
)

const menuJSON = `{"menu":[
{"name":"Greek Salad","price":12.5,"description":"Crispy lettuce and feta.","image":"greekSalad.jpg"},
{"name":"Lemon Dessert","price":4.99,"description":"Grandma's recipe.","image":"lemonDessert.jpg"}
]}`

// newCatalogServer serves menuJSON and counts requests.
func newCatalogServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(menuJSON))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testConfig(t *testing.T, remoteURL string) *Config {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		StoreBackend:  "sqlite",
		StorePath:     filepath.Join(dir, "data", "little_lemon.db"),
		RemoteURL:     remoteURL,
		RemoteTimeout: 5 * time.Second,
		FetchTimeout:  5 * time.Second,
		ProfilePath:   filepath.Join(dir, "profile.yaml"),
		LogFormat:     "json",
		LogOutput:     "discard",
	}
}

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	nop := zerolog.Nop()
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", WithConfig(config), WithLogger(&nop))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

// execute runs the root command and captures its output.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t, testConfig(t, "http://127.0.0.1:9/menu.json"))

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Profiles() == nil {
		t.Error("Profiles() returned nil")
	}
}

// TestApp_WithConfigValidates verifies a broken config is rejected early.
func TestApp_WithConfigValidates(t *testing.T) {
	_, err := New("1.0.0", "", "", "", WithConfig(&Config{StoreBackend: "redis"}))
	if err == nil {
		t.Fatal("New() with unknown backend should fail")
	}
}

// TestApp_Client_ThreadSafe verifies concurrent Client() calls share one instance.
func TestApp_Client_ThreadSafe(t *testing.T) {
	app := newTestApp(t, testConfig(t, "http://127.0.0.1:9/menu.json"))

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]menumap.Client, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Client()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Goroutine %d: Client() failed: %v", i, err)
		}
	}
	for i, c := range results[1:] {
		if c != results[0] {
			t.Errorf("Goroutine %d got different client instance", i+1)
		}
	}
}

// TestApp_MenuColdThenWarm runs the menu command twice against one store
// and expects a single remote request.
func TestApp_MenuColdThenWarm(t *testing.T) {
	srv, hits := newCatalogServer(t)
	config := testConfig(t, srv.URL+"/menu.json")

	app := newTestApp(t, config)
	out, err := execute(t, app, "menu", "-o", "json")
	if err != nil {
		t.Fatalf("menu failed: %v", err)
	}

	var items []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(items) != 2 || items[0].Name != "Greek Salad" || items[0].ID == 0 {
		t.Fatalf("unexpected items: %+v", items)
	}

	// A new process over the same file reads without fetching
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	again := newTestApp(t, config)
	if _, err := execute(t, again, "menu", "-o", "json"); err != nil {
		t.Fatalf("second menu failed: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("remote hits = %d, want 1", got)
	}
}

// TestApp_RefreshAndClear exercises the management commands end to end.
func TestApp_RefreshAndClear(t *testing.T) {
	srv, hits := newCatalogServer(t)
	app := newTestApp(t, testConfig(t, srv.URL))

	if _, err := execute(t, app, "refresh", "-o", "json"); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, err := execute(t, app, "refresh", "-o", "json"); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}

	c, err := app.Client()
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := c.Count(context.Background()); n != 2 {
		t.Errorf("Count() after refresh = %d, want 2", n)
	}

	out, err := execute(t, app, "clear")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "Menu cleared.") {
		t.Errorf("clear output = %q", out)
	}
	if n, _ := c.Count(context.Background()); n != 0 {
		t.Errorf("Count() after clear = %d, want 0", n)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("remote hits = %d, want 2", got)
	}
}

// TestApp_RemoteFailure verifies a failing endpoint leaves the store empty.
func TestApp_RemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	app := newTestApp(t, testConfig(t, srv.URL))
	if _, err := execute(t, app, "menu", "-o", "json"); err == nil {
		t.Fatal("menu should fail when the remote is down")
	}

	c, err := app.Client()
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := c.Count(context.Background()); n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
	if c.State() != menumap.StateFetchFailed {
		t.Errorf("State() = %s, want fetch_failed", c.State())
	}
}

// TestApp_WithStore verifies an injected store is used and closed.
func TestApp_WithStore(t *testing.T) {
	s, err := sqlite.Open(sqlite.MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	nop := zerolog.Nop()
	config := testConfig(t, "http://127.0.0.1:9/menu.json")
	app, err := New("dev", "", "", "", WithConfig(config), WithLogger(&nop), WithStore(s))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := app.Client(); err != nil {
		t.Fatal(err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Count(context.Background()); err == nil {
		t.Error("store should be closed after Shutdown")
	}
}

// TestApp_OnboardAndProfile runs onboarding through the root command.
func TestApp_OnboardAndProfile(t *testing.T) {
	app := newTestApp(t, testConfig(t, "http://127.0.0.1:9/menu.json"))

	out, err := execute(t, app, "onboard", "--first-name", "Tilly", "--email", "tilly@example.com")
	if err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
	if !strings.Contains(out, "next: home") {
		t.Errorf("onboard output = %q", out)
	}

	out, err = execute(t, app, "profile", "-o", "json")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if !strings.Contains(out, `"isOnboardingCompleted": true`) {
		t.Errorf("profile output = %q", out)
	}
}

// TestApp_Version verifies the version command.
func TestApp_Version(t *testing.T) {
	app := newTestApp(t, testConfig(t, "http://127.0.0.1:9/menu.json"))

	out, err := execute(t, app, "version", "-v")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "menumap 1.0.0") || !strings.Contains(out, "abc123") {
		t.Errorf("version output = %q", out)
	}
}

// TestApp_Completion verifies completion scripts are generated.
func TestApp_Completion(t *testing.T) {
	app := newTestApp(t, testConfig(t, "http://127.0.0.1:9/menu.json"))

	out, err := execute(t, app, "completion", "bash")
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if !strings.Contains(out, "menumap") {
		t.Error("completion script does not mention menumap")
	}
}
