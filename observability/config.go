package observability

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Defaults for the OTLP exporters.
const (
	DefaultEndpoint       = "localhost:4318"
	DefaultMetricInterval = 15 * time.Second
)

// Config is the observability section of the service configuration.
type Config struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = DefaultMetricInterval
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be between 0 and 1 (got: %v)", c.SampleRate)
	}
	if c.MetricInterval < 0 {
		return fmt.Errorf("metric_interval must not be negative")
	}
	return nil
}

// Setup installs tracer and meter providers when cfg is enabled and returns
// a function that flushes and shuts them down. When disabled the global
// no-op providers stay in place and shutdown does nothing.
func Setup(ctx context.Context, cfg Config, serviceName, serviceVersion, environment string) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := InitTracer(ctx, TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		SampleRate:     cfg.SampleRate,
	})
	if err != nil {
		return nil, err
	}

	mp, err := InitMeter(ctx, &MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		Interval:       cfg.MetricInterval,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
