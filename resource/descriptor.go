package resource

import (
	"strings"
)

// mimeTypes maps content type tags to MIME types.
var mimeTypes = map[string]string{
	"csv":  "text/csv",
	"txt":  "text/plain",
	"json": "application/json",
	"xml":  "application/xml",
	"html": "text/html",
	"pdf":  "application/pdf",
}

// DefaultMIMEType is used for content type tags missing from the table.
const DefaultMIMEType = "text/plain"

// Descriptor is the declarative unit describing one retrievable resource.
type Descriptor struct {
	Name        string      `mapstructure:"name" validate:"required"`
	Description string      `mapstructure:"description"`
	ContentType string      `mapstructure:"type" validate:"required"`
	Access      AccessType  `mapstructure:"access" validate:"required"`
	URI         string      `mapstructure:"uri" validate:"required"`
	Handler     string      `mapstructure:"function"`
	Parameters  []Parameter `mapstructure:"resource_parameters" validate:"dive"`
}

// Definition is the shape advertised to the host framework for a resource.
type Definition struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	URI         string         `json:"uri" yaml:"uri"`
	MIMEType    string         `json:"mimeType" yaml:"mimeType"`
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// ParameterSchema derives an object schema from the declared parameters.
// Every parameter is required.
func (d Descriptor) ParameterSchema() map[string]any {
	properties := make(map[string]any, len(d.Parameters))
	required := make([]string, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		properties[p.Name] = p.Schema()
		required = append(required, p.Name)
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// MIMEType maps the content type tag to a MIME type, case-insensitively.
func (d Descriptor) MIMEType() string {
	if mt, ok := mimeTypes[strings.ToLower(d.ContentType)]; ok {
		return mt
	}
	return DefaultMIMEType
}

// Definition returns the framework definition. Parameters are included only
// when the descriptor declares any.
func (d Descriptor) Definition() Definition {
	def := Definition{
		Name:        d.Name,
		Description: d.Description,
		URI:         d.URI,
		MIMEType:    d.MIMEType(),
	}
	if len(d.Parameters) > 0 {
		def.Parameters = d.ParameterSchema()
	}
	return def
}

// Parameterized reports whether the descriptor declares parameters.
func (d Descriptor) Parameterized() bool {
	return len(d.Parameters) > 0
}

// ParameterNames returns the declared parameter names in order.
func (d Descriptor) ParameterNames() []string {
	names := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		names[i] = p.Name
	}
	return names
}
