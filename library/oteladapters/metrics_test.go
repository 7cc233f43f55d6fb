package oteladapters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-catalog-go/library"
	"github.com/AntonStoeckl/library-catalog-go/library/oteladapters"
)

func newMeter() (metric.Meter, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return provider.Meter("test"), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	meter, reader := newMeter()
	collector := oteladapters.NewMetricsCollector(meter)

	// act
	collector.RecordDuration("library_store_load_duration_seconds", 250*time.Millisecond, map[string]string{
		"operation": "load_all",
		"status":    "success",
	})

	// assert
	histogram := findMetric[metricdata.Histogram[float64]](t, collect(t, reader), "library_store_load_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.25, dataPoint.Sum, 0.001)

	expectedAttrs := attribute.NewSet(
		attribute.String("operation", "load_all"),
		attribute.String("status", "success"),
	)
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	meter, reader := newMeter()
	collector := oteladapters.NewMetricsCollector(meter)
	labels := map[string]string{"operation": "borrow", "status": "success"}

	// act
	collector.IncrementCounter(library.OperationsMetric, labels)
	collector.IncrementCounterContext(context.Background(), library.OperationsMetric, labels)
	collector.IncrementCounter(library.OperationsMetric, map[string]string{"operation": "borrow", "status": "error"})

	// assert
	counter := findMetric[metricdata.Sum[int64]](t, collect(t, reader), library.OperationsMetric)
	require.Len(t, counter.DataPoints, 2)

	success := attribute.NewSet(attribute.String("operation", "borrow"), attribute.String("status", "success"))
	for _, dataPoint := range counter.DataPoints {
		if dataPoint.Attributes.Equals(&success) {
			assert.Equal(t, int64(2), dataPoint.Value)
		} else {
			assert.Equal(t, int64(1), dataPoint.Value)
		}
	}
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	meter, reader := newMeter()
	collector := oteladapters.NewMetricsCollector(meter)
	labels := map[string]string{"collection": "books"}

	// act
	collector.RecordValue("library_store_records_loaded", 12, labels)
	collector.RecordValueContext(context.Background(), "library_store_records_loaded", 7, labels)

	// assert
	gauge := findMetric[metricdata.Gauge[float64]](t, collect(t, reader), "library_store_records_loaded")
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 7.0, gauge.DataPoints[0].Value)
}

func Test_MetricsCollector_WithEngine(t *testing.T) {
	// arrange
	meter, reader := newMeter()
	lib, err := library.New(library.WithMetrics(oteladapters.NewMetricsCollector(meter)))
	require.NoError(t, err)

	// act
	lib.AddBook("111", "Dune", "Herbert", 1965, "SciFi")
	lib.RegisterMember("M1", "Ada")
	require.NoError(t, lib.Borrow("111", "M1"))
	assert.ErrorIs(t, lib.Borrow("111", "M1"), library.ErrBookUnavailable)

	// assert
	counter := findMetric[metricdata.Sum[int64]](t, collect(t, reader), library.OperationsMetric)

	borrowErrors := attribute.NewSet(
		attribute.String(library.LogAttrOperation, "borrow"),
		attribute.String(library.LogAttrStatus, library.StatusError),
	)

	found := false
	for _, dataPoint := range counter.DataPoints {
		if dataPoint.Attributes.Equals(&borrowErrors) {
			found = true
			assert.Equal(t, int64(1), dataPoint.Value)
		}
	}
	assert.True(t, found, "expected a data point for failed borrows")
}

func Test_MetricsCollector_InstrumentCreationFails(t *testing.T) {
	// arrange
	meter, _ := newMeter()
	collector := oteladapters.NewMetricsCollector(&failingMeter{Meter: meter})
	ctx := context.Background()

	// act & assert
	assert.NotPanics(t, func() {
		collector.RecordDuration("any", time.Second, nil)
		collector.RecordDurationContext(ctx, "any", time.Second, nil)
		collector.IncrementCounter("any", nil)
		collector.IncrementCounterContext(ctx, "any", nil)
		collector.RecordValue("any", 1, nil)
		collector.RecordValueContext(ctx, "any", 1, nil)
	})
}

// failingMeter refuses to create any instrument.
type failingMeter struct {
	metric.Meter
}

func (m *failingMeter) Float64Histogram(string, ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	return nil, errors.New("histogram creation failed")
}

func (m *failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("counter creation failed")
}

func (m *failingMeter) Float64Gauge(string, ...metric.Float64GaugeOption) (metric.Float64Gauge, error) {
	return nil, errors.New("gauge creation failed")
}

func findMetric[T metricdata.Aggregation](t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) T {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name != name {
				continue
			}

			data, ok := m.Data.(T)
			require.True(t, ok, "metric %s has unexpected type %T", name, m.Data)

			return data
		}
	}

	t.Fatalf("metric %s not found", name)

	var zero T
	return zero
}
