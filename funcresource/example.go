package funcresource

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/kbukum/resourcekit/resource"
)

// SampleHandlerName is the handler name of SampleParameterizedResource.
const SampleHandlerName = "_sample_parameterized_resource"

var sampleClients = map[string]string{
	"acme":    "This is the roadrunner client",
	"bigrock": "We make tools to smash birds",
}

// SampleParameterizedResource answers with a fixed line for the "client"
// parameter, compared case-insensitively.
func SampleParameterizedResource(_ context.Context, params resource.Params) (string, error) {
	client := strings.ToLower(cast.ToString(params["client"]))
	if text, ok := sampleClients[client]; ok {
		return text, nil
	}
	return fmt.Sprintf("Unknown client: %s. Available clients: acme, bigrock", client), nil
}

// ExampleHandlers returns the handler table of the example provider.
func ExampleHandlers() Handlers {
	return Handlers{SampleHandlerName: SampleParameterizedResource}
}

// NewExample builds a Provider with the example handlers registered.
func NewExample(cfg map[string]any, opts ...Option) (*Provider, error) {
	return New(cfg, ExampleHandlers(), opts...)
}
