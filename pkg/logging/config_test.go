package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap/pkg/logging"
)

func TestNewLoggerFromConfig(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	})

	t.Run("writes json to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "menumap.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "debug", Format: "json", Output: path})
		logger.Info().Msg("test message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "test message")
		assert.Contains(t, string(content), `"level":"info"`)
		assert.Contains(t, string(content), `"caller":`)
	})

	t.Run("level filters lower events", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "warn.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "WARNING", Format: "json", Output: path})
		logger.Info().Msg("hidden")
		logger.Warn().Msg("shown")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "hidden")
		assert.Contains(t, string(content), "shown")
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("unknown and empty levels mean info", func(t *testing.T) {
		logging.NewLoggerFromConfig(&logging.Config{Level: "loud", Output: "discard"})
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

		logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("off disables logging", func(t *testing.T) {
		logging.NewLoggerFromConfig(&logging.Config{Level: "off", Output: "discard"})
		assert.Equal(t, zerolog.Disabled, zerolog.GlobalLevel())
	})

	t.Run("console format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Format:     "console",
			Output:     path,
			TimeFormat: "rfc3339",
			NoColor:    true,
		})
		logger.Info().Str("store", "sqlite").Msg("opened")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "INF")
		assert.Contains(t, string(content), "store=sqlite")
		assert.NotContains(t, string(content), "{")
	})

	t.Run("Configure replaces the default logger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "default.log")
		logging.Configure(&logging.Config{Format: "json", Output: path})
		logging.Info().Msg("through default")
		logging.Error().Msg("failure")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "through default")
		assert.Contains(t, string(content), `"level":"error"`)
	})
}
