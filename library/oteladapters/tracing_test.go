package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-catalog-go/library"
	"github.com/AntonStoeckl/library-catalog-go/library/flatfile"
	"github.com/AntonStoeckl/library-catalog-go/library/oteladapters"
)

func newTracingCollector() (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	collector, exporter := newTracingCollector()

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "flatfile.load_all", map[string]string{"data_dir": "/tmp/lib"})
	spanCtx.AddAttribute("duration_ms", "1.50")
	collector.FinishSpan(spanCtx, library.StatusSuccess, map[string]string{"books": "3"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "flatfile.load_all", span.Name)
	assert.Equal(t, codes.Ok, span.Status.Code)
	assertSpanHasAttribute(t, span, "data_dir", "/tmp/lib")
	assertSpanHasAttribute(t, span, "duration_ms", "1.50")
	assertSpanHasAttribute(t, span, "books", "3")
}

func Test_SpanContext_SetStatus(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: library.StatusSuccess, expectedCode: codes.Ok},
		{status: library.StatusIdempotent, expectedCode: codes.Ok},
		{status: library.StatusError, expectedCode: codes.Error},
		{status: "canceled", expectedCode: codes.Error},
		{status: "something-else", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			collector, exporter := newTracingCollector()
			_, spanCtx := collector.StartSpan(context.Background(), "op", nil)

			// act
			collector.FinishSpan(spanCtx, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
		})
	}
}

func Test_SpanContext_UnknownStatus_IsKeptAsAttribute(t *testing.T) {
	// arrange
	collector, exporter := newTracingCollector()
	_, spanCtx := collector.StartSpan(context.Background(), "op", nil)

	// act
	collector.FinishSpan(spanCtx, "partial", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assertSpanHasAttribute(t, spans[0], "status", "partial")
}

func Test_TracingCollector_FinishSpan_IgnoresForeignSpanContext(t *testing.T) {
	// arrange
	collector, exporter := newTracingCollector()

	// act & assert
	assert.NotPanics(t, func() {
		collector.FinishSpan(foreignSpanContext{}, library.StatusSuccess, nil)
		collector.FinishSpan(nil, library.StatusSuccess, nil)
	})
	assert.Empty(t, exporter.GetSpans())
}

func Test_TracingCollector_WithStore(t *testing.T) {
	// arrange
	collector, exporter := newTracingCollector()
	store, err := flatfile.NewStore(t.TempDir(), flatfile.WithTracing(collector))
	require.NoError(t, err)

	lib, err := library.New()
	require.NoError(t, err)
	lib.AddBook("111", "Dune", "Herbert", 1965, "SciFi")

	// act
	require.NoError(t, store.SaveAll(context.Background(), lib))
	_, err = store.LoadAll(context.Background(), lib)
	require.NoError(t, err)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "flatfile.save_all", spans[0].Name)
	assert.Equal(t, "flatfile.load_all", spans[1].Name)
	assertSpanHasAttribute(t, spans[1], "books", "1")
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)            {}
func (foreignSpanContext) AddAttribute(string, string) {}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expectedValue string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) && attr.Value.AsString() == expectedValue {
			return
		}
	}

	assert.Failf(t, "missing span attribute", "%s=%s", key, expectedValue)
}
