package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)

// Attributer is implemented by inputs that describe themselves to
// middleware. Values end up in log fields, span attributes and metric
// labels, so they must have low cardinality.
type Attributer interface {
	Attributes() map[string]string
}

// attributesOf returns the input's attributes, or nil.
func attributesOf(input any) map[string]string {
	if a, ok := input.(Attributer); ok {
		return a.Attributes()
	}
	return nil
}
