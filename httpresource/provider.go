package httpresource

import (
	"context"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kbukum/resourcekit/logger"
	"github.com/kbukum/resourcekit/provider"
	"github.com/kbukum/resourcekit/resource"
)

// Defaults used when the payload omits name or description.
const (
	DefaultName        = "http_resources"
	DefaultDescription = "Public HTTP resource types"
)

// compile-time assertions
var (
	_ resource.Resource  = (*Provider)(nil)
	_ provider.Closeable = (*Provider)(nil)
)

// Provider fetches resource content over HTTP. It is safe for concurrent use.
type Provider struct {
	*resource.Set
	client    *http.Client
	transport *http.Transport
	log       *logger.Logger
}

type options struct {
	client  *http.Client
	log     *logger.Logger
	setOpts []resource.SetOption
}

// Option configures a Provider.
type Option func(*options)

// WithHTTPClient uses client for all fetches. The caller keeps ownership and
// Close leaves it untouched.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.client = client }
}

// WithParameterValidator installs a parameter validator.
func WithParameterValidator(v resource.ParameterValidator) Option {
	return func(o *options) { o.setOpts = append(o.setOpts, resource.WithParameterValidator(v)) }
}

// WithLogger sets the provider logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// New builds a Provider from a configuration payload.
func New(cfg map[string]any, opts ...Option) (*Provider, error) {
	pc, err := resource.DecodeProviderConfig(cfg, resource.ProviderConfig{
		Name:        DefaultName,
		Description: DefaultDescription,
	})
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	set, err := resource.NewSetFromConfig(pc, o.setOpts...)
	if err != nil {
		return nil, err
	}
	return newProvider(set, o), nil
}

// NewFromDescriptors builds a Provider from descriptors constructed in code.
func NewFromDescriptors(name, description string, descriptors []resource.Descriptor, opts ...Option) (*Provider, error) {
	o := applyOptions(opts)
	set, err := resource.NewSet(name, description, descriptors, o.setOpts...)
	if err != nil {
		return nil, err
	}
	return newProvider(set, o), nil
}

// Factory returns a provider.Factory that builds HTTP providers.
func Factory(opts ...Option) provider.Factory[resource.Resource] {
	return func(cfg map[string]any) (resource.Resource, error) {
		p, err := New(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("httpresource")
	}
	return o
}

func newProvider(set *resource.Set, o options) *Provider {
	p := &Provider{Set: set, client: o.client, log: o.log}
	if p.client == nil {
		p.transport = http.DefaultTransport.(*http.Transport).Clone()
		p.client = &http.Client{Transport: otelhttp.NewTransport(p.transport)}
	}
	p.log.Debug("provider created", logger.Fields(
		logger.FieldProvider, set.Name(),
		"resources", set.Len(),
	))
	return p
}

// GetContent fetches the provider's only resource.
func (p *Provider) GetContent(ctx context.Context, params resource.Params) (string, error) {
	d, err := p.Sole()
	if err != nil {
		return "", err
	}
	return p.fetch(ctx, d, params)
}

// GetResourceContent fetches the named resource.
func (p *Provider) GetResourceContent(ctx context.Context, name string, params resource.Params) (string, error) {
	d, err := p.Lookup(name)
	if err != nil {
		return "", err
	}
	return p.fetch(ctx, d, params)
}

// Execute implements provider.RequestResponse.
func (p *Provider) Execute(ctx context.Context, req resource.Request) (string, error) {
	return resource.Dispatch(ctx, p, req)
}

// Close releases idle connections of the provider-owned client.
func (p *Provider) Close(_ context.Context) error {
	if p.transport != nil {
		p.transport.CloseIdleConnections()
	}
	return nil
}
