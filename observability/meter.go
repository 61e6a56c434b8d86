package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/resourcekit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       DefaultEndpoint,
		Insecure:       true,
		Interval:       DefaultMetricInterval,
	}
}

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
// The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricFetchTotal    = "resource.fetch.total"
	MetricFetchDuration = "resource.fetch.duration"
	MetricErrorTotal    = "resource.error.total"
)

// Metrics holds the instruments recorded around resource reads.
type Metrics struct {
	fetchTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
	errorTotal    metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	fetchTotal, err := meter.Int64Counter(MetricFetchTotal,
		metric.WithDescription("Total number of resource reads"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFetchTotal, err)
	}

	fetchDuration, err := meter.Float64Histogram(MetricFetchDuration,
		metric.WithDescription("Duration of resource reads in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricFetchDuration, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Total failed resource reads by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	return &Metrics{
		fetchTotal:    fetchTotal,
		fetchDuration: fetchDuration,
		errorTotal:    errorTotal,
	}, nil
}

// RecordFetch records one completed read.
func (m *Metrics) RecordFetch(ctx context.Context, provider, resource, status string, duration time.Duration) {
	m.fetchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("resource", resource),
		attribute.String("status", status),
	))
	m.fetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("resource", resource),
	))
}

// RecordError records a failed read by error code.
func (m *Metrics) RecordError(ctx context.Context, provider, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("code", code),
	))
}
