package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfigs(t *testing.T) {
	mc := DefaultMeterConfig("account-client")
	if mc.ServiceName != "account-client" {
		t.Errorf("expected ServiceName 'account-client', got %s", mc.ServiceName)
	}
	if mc.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", mc.Interval)
	}

	tc := DefaultTracerConfig("account-client")
	if tc.Endpoint != "localhost:4318" || !tc.Insecure || tc.SampleRate != 1.0 {
		t.Errorf("unexpected tracer defaults %+v", tc)
	}
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordConstruction(ctx, "holder")
	metrics.RecordAccess(ctx, "holder")
	metrics.RecordLostUpdates(ctx, "account", 100)
}

func sumFor(t *testing.T, rm metricdata.ResourceMetrics, name, strategy string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected int64 sum for %s, got %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key(AttrStrategy)); ok && v.AsString() == strategy {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func TestMetricsRecorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter(InstrumentationName))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordConstruction(ctx, "unsynchronized")
	metrics.RecordConstruction(ctx, "unsynchronized")
	metrics.RecordConstruction(ctx, "holder")
	for i := 0; i < 5; i++ {
		metrics.RecordAccess(ctx, "holder")
	}
	metrics.RecordLostUpdates(ctx, "account", 0)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if got := sumFor(t, rm, MetricConstructions, "unsynchronized"); got != 2 {
		t.Errorf("expected 2 unsynchronized constructions, got %d", got)
	}
	if got := sumFor(t, rm, MetricConstructions, "holder"); got != 1 {
		t.Errorf("expected 1 holder construction, got %d", got)
	}
	if got := sumFor(t, rm, MetricAccesses, "holder"); got != 5 {
		t.Errorf("expected 5 holder accesses, got %d", got)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tc := range tests {
		if got := samplerFor(tc.rate).Description(); got != tc.want {
			t.Errorf("samplerFor(%v) = %s, want %s", tc.rate, got, tc.want)
		}
	}
}

func TestStartSpanUsesGlobalProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartSpan(context.Background(), "stress.first_access")
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	if ended[0].Name() != "stress.first_access" {
		t.Errorf("unexpected span name %q", ended[0].Name())
	}
}
