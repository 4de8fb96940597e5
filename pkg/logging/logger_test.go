package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/menumap/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	for _, want := range []string{"info message", "warning message", "error message"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestTestLoggerCapturesDebug(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	testLogger.Debug().Msg("one")
	testLogger.Trace().Msg("two")

	testLogger.AssertContains(t, "one")
	testLogger.AssertContains(t, "two")
	testLogger.AssertNotContains(t, "three")
}
