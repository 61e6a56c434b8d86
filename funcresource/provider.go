package funcresource

import (
	"context"
	"maps"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/logger"
	"github.com/kbukum/resourcekit/provider"
	"github.com/kbukum/resourcekit/resource"
)

// Defaults used when the payload omits name or description.
const (
	DefaultName        = "example_private_resources"
	DefaultDescription = "Example private resource types"
)

var _ resource.Resource = (*Provider)(nil)

// HandlerFunc produces the content of a resource. params is never nil.
type HandlerFunc func(ctx context.Context, params resource.Params) (string, error)

// Handlers maps handler names to functions.
type Handlers map[string]HandlerFunc

// Provider dispatches reads to registered handlers. The handler table is
// fixed at construction; the provider is safe for concurrent use when the
// handlers are.
type Provider struct {
	*resource.Set
	handlers Handlers
	log      *logger.Logger
}

type options struct {
	log     *logger.Logger
	setOpts []resource.SetOption
}

// Option configures a Provider.
type Option func(*options)

// WithParameterValidator installs a parameter validator run before each
// handler call.
func WithParameterValidator(v resource.ParameterValidator) Option {
	return func(o *options) { o.setOpts = append(o.setOpts, resource.WithParameterValidator(v)) }
}

// WithLogger sets the provider logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// New builds a Provider from a configuration payload and a handler table.
// Handler names are resolved at read time, so descriptors may name handlers
// that are not registered.
func New(cfg map[string]any, handlers Handlers, opts ...Option) (*Provider, error) {
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
	return newProvider(set, handlers, o), nil
}

// NewFromDescriptors builds a Provider from descriptors constructed in code.
func NewFromDescriptors(name, description string, descriptors []resource.Descriptor, handlers Handlers, opts ...Option) (*Provider, error) {
	o := applyOptions(opts)
	set, err := resource.NewSet(name, description, descriptors, o.setOpts...)
	if err != nil {
		return nil, err
	}
	return newProvider(set, handlers, o), nil
}

// Factory returns a provider.Factory that builds function providers with the
// given handler table.
func Factory(handlers Handlers, opts ...Option) provider.Factory[resource.Resource] {
	return func(cfg map[string]any) (resource.Resource, error) {
		p, err := New(cfg, handlers, opts...)
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
		o.log = logger.Get("funcresource")
	}
	return o
}

func newProvider(set *resource.Set, handlers Handlers, o options) *Provider {
	p := &Provider{Set: set, handlers: maps.Clone(handlers), log: o.log}
	if p.handlers == nil {
		p.handlers = Handlers{}
	}
	for _, d := range set.Descriptors() {
		if d.Handler != "" && p.handlers[d.Handler] == nil {
			p.log.Warn("descriptor names an unregistered handler", logger.Fields(
				logger.FieldProvider, set.Name(),
				logger.FieldResource, d.Name,
				logger.FieldHandler, d.Handler,
			))
		}
	}
	return p
}

// GetContent returns the content of the provider's only resource.
func (p *Provider) GetContent(ctx context.Context, params resource.Params) (string, error) {
	d, err := p.Sole()
	if err != nil {
		return "", err
	}
	return p.invoke(ctx, d, params)
}

// GetResourceContent returns the content of the named resource.
func (p *Provider) GetResourceContent(ctx context.Context, name string, params resource.Params) (string, error) {
	d, err := p.Lookup(name)
	if err != nil {
		return "", err
	}
	return p.invoke(ctx, d, params)
}

// Execute implements provider.RequestResponse.
func (p *Provider) Execute(ctx context.Context, req resource.Request) (string, error) {
	return resource.Dispatch(ctx, p, req)
}

// HandlerNames returns the registered handler names.
func (p *Provider) HandlerNames() []string {
	names := make([]string, 0, len(p.handlers))
	for name := range p.handlers {
		names = append(names, name)
	}
	return names
}

func (p *Provider) invoke(ctx context.Context, d resource.Descriptor, params resource.Params) (string, error) {
	if d.Handler == "" {
		return "", errors.UnconfiguredHandler(d.Name)
	}
	fn := p.handlers[d.Handler]
	if fn == nil {
		return "", errors.HandlerNotFound(d.Handler).WithDetail("resource", d.Name)
	}

	validated, err := p.ValidateParameters(d, params)
	if err != nil {
		return "", err
	}

	p.log.WithContext(ctx).Debug("invoking handler", logger.Fields(
		logger.FieldProvider, p.Name(),
		logger.FieldResource, d.Name,
		logger.FieldHandler, d.Handler,
	))
	return fn(ctx, validated)
}
