package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/resourcekit/config"
	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/funcresource"
	"github.com/kbukum/resourcekit/httpresource"
	"github.com/kbukum/resourcekit/logger"
	"github.com/kbukum/resourcekit/observability"
	"github.com/kbukum/resourcekit/provider"
	"github.com/kbukum/resourcekit/resource"
	"github.com/kbukum/resourcekit/version"
)

// Built-in provider kinds.
const (
	KindHTTP     = "http"
	KindFunction = "function"
)

type reader = provider.RequestResponse[resource.Request, string]

var _ observability.HealthChecker = (*Catalog)(nil)

// ProviderDefinitions is the listing of one provider.
type ProviderDefinitions struct {
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description" yaml:"description"`
	Resources   []resource.Definition `json:"resources" yaml:"resources"`
}

// Catalog holds constructed providers in load order.
type Catalog struct {
	registry   *provider.Registry[resource.Resource]
	middleware []provider.Middleware[resource.Request, string]
	service    string
	log        *logger.Logger

	mu      sync.RWMutex
	wrapped map[string]reader
	kinds   map[string]string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithMiddleware appends middleware applied to every provider read. The
// first middleware is outermost.
func WithMiddleware(mw ...provider.Middleware[resource.Request, string]) Option {
	return func(c *Catalog) { c.middleware = append(c.middleware, mw...) }
}

// WithLogger sets the catalog logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Catalog) { c.log = l }
}

// WithFactory registers a factory for kind, replacing a built-in one.
func WithFactory(kind string, f provider.Factory[resource.Resource]) Option {
	return func(c *Catalog) { c.registry.RegisterFactory(kind, f) }
}

// WithService sets the service name reported by CheckHealth.
func WithService(name string) Option {
	return func(c *Catalog) { c.service = name }
}

// New creates an empty Catalog with the http and function kinds registered.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		registry: provider.NewRegistry[resource.Resource](),
		service:  "resourcekit",
		wrapped:  make(map[string]reader),
		kinds:    make(map[string]string),
	}
	c.registry.RegisterFactory(KindHTTP, httpresource.Factory())
	c.registry.RegisterFactory(KindFunction, funcresource.Factory(funcresource.ExampleHandlers()))
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get("catalog")
	}
	return c
}

// Load constructs a provider for every entry. On failure the providers
// built by this call are closed and nothing is added.
func (c *Catalog) Load(entries []config.ProviderEntry) error {
	built := make([]resource.Resource, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	fail := func(err error) error {
		closeErr := provider.CloseAll(context.Background(), toProviders(built)...)
		if closeErr != nil {
			c.log.Warn("closing providers after failed load", logger.Fields(logger.FieldError, closeErr.Error()))
		}
		return err
	}

	for i, e := range entries {
		p, err := c.registry.Create(e.Kind, e.Payload)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				return fail(appErr.WithDetail("entry", i).WithDetail("kind", e.Kind))
			}
			return fail(err)
		}
		built = append(built, p)
		if seen[p.Name()] || c.has(p.Name()) {
			return fail(errors.Configuration(fmt.Sprintf("duplicate provider name %q", p.Name())).
				WithDetail("provider", p.Name()))
		}
		seen[p.Name()] = true
	}

	for i, p := range built {
		if err := c.add(entries[i].Kind, p); err != nil {
			return err
		}
	}
	return nil
}

// Add registers an already constructed provider.
func (c *Catalog) Add(p resource.Resource) error {
	return c.add("", p)
}

func (c *Catalog) add(kind string, p resource.Resource) error {
	if err := c.registry.Add(p); err != nil {
		return err
	}
	c.mu.Lock()
	c.wrapped[p.Name()] = provider.Chain(c.middleware...)(p)
	c.kinds[p.Name()] = kind
	c.mu.Unlock()

	c.log.Info("provider loaded", logger.Fields(
		logger.FieldProvider, p.Name(),
		"kind", kind,
		"resources", len(p.Resources()),
	))
	return nil
}

func (c *Catalog) has(name string) bool {
	_, ok := c.registry.Get(name)
	return ok
}

// Provider returns the named provider, unwrapped.
func (c *Catalog) Provider(name string) (resource.Resource, error) {
	p, ok := c.registry.Get(name)
	if !ok {
		return nil, errors.NotFound("provider", name)
	}
	return p, nil
}

// Providers returns all providers in load order.
func (c *Catalog) Providers() []resource.Resource {
	return c.registry.Instances()
}

// Names returns the provider names in load order.
func (c *Catalog) Names() []string {
	ps := c.registry.Instances()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name()
	}
	return names
}

// Kinds returns the registered factory kinds, sorted.
func (c *Catalog) Kinds() []string {
	return c.registry.List()
}

// KindOf returns the kind a provider was loaded as, or "" for providers
// added directly.
func (c *Catalog) KindOf(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kinds[name]
}

// Definitions lists every provider's resources in load order.
func (c *Catalog) Definitions() []ProviderDefinitions {
	ps := c.registry.Instances()
	out := make([]ProviderDefinitions, len(ps))
	for i, p := range ps {
		out[i] = ProviderDefinitions{
			Name:        p.Name(),
			Description: p.Description(),
			Resources:   p.Resources(),
		}
	}
	return out
}

// Read returns the content of a resource through the middleware chain. An
// empty resourceName reads the provider's sole resource.
func (c *Catalog) Read(ctx context.Context, providerName, resourceName string, params resource.Params) (string, error) {
	c.mu.RLock()
	r, ok := c.wrapped[providerName]
	c.mu.RUnlock()
	if !ok {
		return "", errors.NotFound("provider", providerName)
	}
	return r.Execute(ctx, resource.Request{Resource: resourceName, Params: params})
}

// CheckHealth reports the availability of every provider.
func (c *Catalog) CheckHealth(ctx context.Context) observability.ServiceHealth {
	sh := observability.NewServiceHealth(c.service, version.Get().Short())
	for _, p := range c.registry.Instances() {
		h := observability.Health{
			Name:      p.Name(),
			Status:    observability.HealthStatusUp,
			Resources: len(p.Resources()),
		}
		if !p.IsAvailable(ctx) {
			h.Status = observability.HealthStatusDown
			h.Message = "provider unavailable"
		}
		sh.AddComponent(h)
	}
	return *sh
}

// Close releases every provider's resources.
func (c *Catalog) Close(ctx context.Context) error {
	return provider.CloseAll(ctx, toProviders(c.registry.Instances())...)
}

func toProviders(rs []resource.Resource) []provider.Provider {
	out := make([]provider.Provider, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}
