// Package observability wires OpenTelemetry tracing and metrics for resource
// reads.
//
// Setup installs OTLP/HTTP tracer and meter providers from configuration:
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability, "resourcectl", version.Version, cfg.Environment)
//	defer shutdown(ctx)
//
// Metrics records read counts, durations and error codes per provider:
//
//	metrics, err := observability.NewMetrics(observability.Meter("resourcectl"))
//	metrics.RecordFetch(ctx, "http_resources", "weather", "ok", duration)
//
// ServiceHealth aggregates provider availability.
package observability
