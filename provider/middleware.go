package provider

import stderrors "errors"

// Middleware transforms a RequestResponse provider by wrapping it.
// The returned provider delegates to the original while adding
// cross-cutting behavior such as logging, metrics or tracing.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (executes first on the
// way in, last on the way out).
//
// Chain(a, b, c)(provider) is equivalent to a(b(c(provider))).
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// Unwrap follows middleware wrappers down to the innermost provider.
func Unwrap[I, O any](p RequestResponse[I, O]) RequestResponse[I, O] {
	for {
		w, ok := p.(interface{ Unwrap() RequestResponse[I, O] })
		if !ok {
			return p
		}
		p = w.Unwrap()
	}
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
