package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("expected Endpoint %s, got %s", DefaultEndpoint, cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"explicit rate", Config{SampleRate: 0.25}, false},
		{"rate too high", Config{SampleRate: 1.5}, true},
		{"negative rate", Config{SampleRate: -0.5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if tc.wantErr != (err != nil) {
				t.Fatalf("unexpected validation result: %v", err)
			}
			if cfg.Endpoint != DefaultEndpoint || cfg.MetricInterval != DefaultMetricInterval {
				t.Errorf("expected defaults applied, got %+v", cfg)
			}
		})
	}
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, "svc", "dev", "development")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("expected no-op shutdown, got %v", err)
	}
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordFetch(ctx, "http_resources", "weather", "ok", 100*time.Millisecond)
	metrics.RecordError(ctx, "http_resources", "UPSTREAM_STATUS")
}

func TestMetricsRecorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordFetch(ctx, "p", "r", "ok", time.Millisecond)
	metrics.RecordFetch(ctx, "p", "r", "error", time.Millisecond)
	metrics.RecordError(ctx, "p", "NOT_FOUND")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	if totals[MetricFetchTotal] != 2 {
		t.Errorf("expected 2 fetches, got %d", totals[MetricFetchTotal])
	}
	if totals[MetricErrorTotal] != 1 {
		t.Errorf("expected 1 error, got %d", totals[MetricErrorTotal])
	}
}

func TestStartSpanAndAttributes(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), SpanResourceRead)
	SetSpanAttribute(ctx, AttrProvider, "http_resources")
	SetSpanAttribute(ctx, AttrStatus, 200)
	SetSpanError(ctx, fmt.Errorf("boom"))
	span.End()

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != SpanResourceRead {
		t.Errorf("expected span %q, got %q", SpanResourceRead, s.Name())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status())
	}
	found := false
	for _, kv := range s.Attributes() {
		if string(kv.Key) == AttrProvider && kv.Value.AsString() == "http_resources" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected provider attribute, got %v", s.Attributes())
	}
}

func TestSetSpanAttributeWithoutSpan(t *testing.T) {
	// Must not panic on a context without a recording span.
	SetSpanAttribute(context.Background(), AttrResource, "x")
	SetSpanError(context.Background(), fmt.Errorf("x"))
}

func TestServiceHealth(t *testing.T) {
	tests := []struct {
		name     string
		statuses []HealthStatus
		want     HealthStatus
	}{
		{"no providers", nil, HealthStatusUp},
		{"all up", []HealthStatus{HealthStatusUp, HealthStatusUp}, HealthStatusUp},
		{"one down", []HealthStatus{HealthStatusUp, HealthStatusDown}, HealthStatusDegraded},
		{"all down", []HealthStatus{HealthStatusDown, HealthStatusDown}, HealthStatusDown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sh := NewServiceHealth("svc", "1.0.0")
			for i, s := range tc.statuses {
				sh.AddComponent(Health{Name: fmt.Sprintf("p%d", i), Status: s})
			}
			if sh.Status != tc.want {
				t.Errorf("expected %s, got %s", tc.want, sh.Status)
			}
		})
	}
}
