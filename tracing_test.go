package menumap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/agentstation/menumap/pkg/errors"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func spanNames(spans []sdktrace.ReadOnlySpan) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Name()
	}
	return out
}

func TestCatalogSpans(t *testing.T) {
	sr, tp := newRecorder(t)
	c := newTestClient(t, newSpyStore(), newFakeFetcher(t), WithTracer(tp.Tracer("test")))

	_, err := c.Catalog(context.Background())
	require.NoError(t, err)
	_, err = c.Refresh(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"menumap.fill", "menumap.Catalog", "menumap.Refresh"}, spanNames(sr.Ended()))
}

func TestFailedCatalogSpanRecordsError(t *testing.T) {
	sr, tp := newRecorder(t)
	f := newFakeFetcher(t)
	f.set(nil, errors.NewNetworkError("https://menu.test/menu.json", 500, "Internal Server Error", nil))
	c := newTestClient(t, newSpyStore(), f, WithTracer(tp.Tracer("test")))

	_, err := c.Catalog(context.Background())
	require.Error(t, err)

	for _, span := range sr.Ended() {
		assert.Equal(t, codes.Error, span.Status().Code, span.Name())
	}
}
