package provider

import (
	"context"
	"time"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/observability"
)

// WithMetrics returns a Middleware that records read counts, durations and
// error codes on metrics.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.Metrics
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }
func (m *metricsRR[I, O]) Unwrap() RequestResponse[I, O]        { return m.inner }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		code := string(errors.ErrCodeInternal)
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		m.metrics.RecordError(ctx, m.inner.Name(), code)
	}
	m.metrics.RecordFetch(ctx, m.inner.Name(), attributesOf(input)["resource"], status, duration)

	return output, err
}
