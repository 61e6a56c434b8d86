// Package provider is a small generic provider framework: named providers
// built by factories from configuration maps, a registry of factories and
// instances, and middleware around request/response providers.
//
// Middleware[I, O] wraps a RequestResponse provider. Use Chain to compose:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("resourcectl"),
//	)(rawProvider)
//
// Inputs implementing Attributer contribute log fields, span attributes and
// metric labels. Providers holding resources implement Closeable.
package provider
