package resource

import (
	"context"

	"github.com/kbukum/resourcekit/provider"
)

// Request selects a resource and its parameters. An empty Resource selects
// the provider's sole resource.
type Request struct {
	Resource string
	Params   Params
}

// Attributes describes the request for logging, tracing and metrics.
func (r Request) Attributes() map[string]string {
	name := r.Resource
	if name == "" {
		name = "<sole>"
	}
	return map[string]string{"resource": name}
}

// Resource is the capability every resource provider exposes.
type Resource interface {
	provider.RequestResponse[Request, string]

	// Description returns the provider description.
	Description() string
	// GetContent returns the content of the provider's only resource.
	GetContent(ctx context.Context, params Params) (string, error)
	// GetResourceContent returns the content of the named resource.
	GetResourceContent(ctx context.Context, name string, params Params) (string, error)
	// Resources returns the definitions of all resources in declaration order.
	Resources() []Definition
}

// Dispatch routes a Request to GetContent or GetResourceContent. Providers
// implement Execute with it.
func Dispatch(ctx context.Context, r interface {
	GetContent(ctx context.Context, params Params) (string, error)
	GetResourceContent(ctx context.Context, name string, params Params) (string, error)
}, req Request) (string, error) {
	if req.Resource == "" {
		return r.GetContent(ctx, req.Params)
	}
	return r.GetResourceContent(ctx, req.Resource, req.Params)
}
