package mcpbind

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kbukum/resourcekit/catalog"
	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/logger"
	"github.com/kbukum/resourcekit/resource"
	"github.com/kbukum/resourcekit/version"
)

// Source is what the binding reads from. *catalog.Catalog implements it.
type Source interface {
	Definitions() []catalog.ProviderDefinitions
	Read(ctx context.Context, provider, resource string, params resource.Params) (string, error)
}

type options struct {
	log *logger.Logger
}

// Option configures Register.
type Option func(*options)

// WithLogger sets the logger used for registration and read failures.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewServer creates an MCP server named name, advertising the build
// version, with every resource of src registered.
func NewServer(name string, src Source, opts ...Option) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version.Get().Short(),
	}, nil)
	if _, err := Register(server, src, opts...); err != nil {
		return nil, err
	}
	return server, nil
}

// Stats counts what Register added.
type Stats struct {
	Resources int
	Templates int
	Skipped   int
}

// Register adds src's resources to server. When two resources share a URI
// the first one wins and the rest are skipped.
func Register(server *mcp.Server, src Source, opts ...Option) (Stats, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("mcpbind")
	}

	var stats Stats
	seen := make(map[string]string)
	for _, pd := range src.Definitions() {
		for _, def := range pd.Resources {
			if owner, dup := seen[def.URI]; dup {
				o.log.Warn("skipping resource with duplicate uri", logger.Fields(
					logger.FieldProvider, pd.Name,
					logger.FieldResource, def.Name,
					"uri", def.URI,
					"owner", owner,
				))
				stats.Skipped++
				continue
			}
			seen[def.URI] = pd.Name + "/" + def.Name

			b := binding{
				src:      src,
				provider: pd.Name,
				def:      def,
				log:      o.log.WithFields(logger.Fields(logger.FieldProvider, pd.Name)),
			}
			if def.Parameters != nil {
				if err := b.addTemplate(server); err != nil {
					return stats, err
				}
				stats.Templates++
				continue
			}
			if err := b.addResource(server); err != nil {
				return stats, err
			}
			stats.Resources++
		}
	}
	return stats, nil
}

type binding struct {
	src      Source
	provider string
	def      resource.Definition
	log      *logger.Logger
}

func (b binding) addResource(server *mcp.Server) (err error) {
	defer b.recoverInto(&err)
	server.AddResource(&mcp.Resource{
		Name:        b.def.Name,
		Description: b.def.Description,
		MIMEType:    b.def.MIMEType,
		URI:         b.def.URI,
	}, b.readStatic)
	return nil
}

func (b binding) addTemplate(server *mcp.Server) (err error) {
	defer b.recoverInto(&err)
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        b.def.Name,
		Description: b.def.Description,
		MIMEType:    b.def.MIMEType,
		URITemplate: b.def.URI,
	}, b.readTemplate)
	return nil
}

// recoverInto turns an SDK registration panic (malformed URI or template)
// into a configuration error.
func (b binding) recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = errors.Configuration(fmt.Sprintf("cannot register resource %q: %v", b.def.Name, r)).
			WithDetail("provider", b.provider).
			WithDetail("uri", b.def.URI)
	}
}

func (b binding) readStatic(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return b.read(ctx, req.Params.URI, nil)
}

func (b binding) readTemplate(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	params, ok := resource.Match(b.def.URI, uri)
	if !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	return b.read(ctx, uri, params)
}

func (b binding) read(ctx context.Context, uri string, params resource.Params) (*mcp.ReadResourceResult, error) {
	text, err := b.src.Read(ctx, b.provider, b.def.Name, params)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		fields := logger.ErrorFields(b.def.Name, err)
		fields["uri"] = uri
		b.log.WithContext(ctx).Warn("resource read failed", fields)
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: b.def.MIMEType, Text: text},
		},
	}, nil
}
