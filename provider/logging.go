package provider

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/logger"
)

// WithLogging returns a Middleware that logs each Execute call with a
// per-call ID, the provider name, the input attributes and the duration.
// Failures are logged at error level with their error code.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &loggingRR[I, O]{inner: inner, log: log}
	}
}

type loggingRR[I, O any] struct {
	inner RequestResponse[I, O]
	log   *logger.Logger
}

func (l *loggingRR[I, O]) Name() string                         { return l.inner.Name() }
func (l *loggingRR[I, O]) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }
func (l *loggingRR[I, O]) Unwrap() RequestResponse[I, O]        { return l.inner }

func (l *loggingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := l.inner.Execute(ctx, input)

	fields := logger.Fields(
		logger.FieldCallID, uuid.NewString(),
		logger.FieldProvider, l.inner.Name(),
	)
	for k, v := range attributesOf(input) {
		fields[k] = v
	}
	fields = logger.MergeWithDuration(fields, time.Since(start))

	log := l.log.WithContext(ctx)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			fields[logger.FieldCode] = string(appErr.Code)
		}
		log.WithError(err).Error("provider execute failed", fields)
	} else {
		log.Debug("provider execute ok", fields)
	}

	return output, err
}
