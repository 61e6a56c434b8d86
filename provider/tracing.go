package provider

import (
	"context"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/observability"
)

// WithTracing returns a Middleware that creates an OpenTelemetry span named
// "{serviceName}.{providerName}" around each Execute call. Input attributes
// are copied onto the span.
func WithTracing[I, O any](serviceName string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{inner: inner, serviceName: serviceName}
	}
}

type tracingRR[I, O any] struct {
	inner       RequestResponse[I, O]
	serviceName string
}

func (t *tracingRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }
func (t *tracingRR[I, O]) Unwrap() RequestResponse[I, O]        { return t.inner }

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	spanName := t.serviceName + "." + t.inner.Name()
	ctx, span := observability.StartSpan(ctx, spanName)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrServiceName, t.serviceName)
	observability.SetSpanAttribute(ctx, observability.AttrProvider, t.inner.Name())
	for k, v := range attributesOf(input) {
		observability.SetSpanAttribute(ctx, k, v)
	}

	output, err := t.inner.Execute(ctx, input)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(appErr.Code))
		}
		observability.SetSpanError(ctx, err)
	}

	return output, err
}
