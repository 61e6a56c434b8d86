package resource

import "slices"

// Value domains for a parameter that is not an enumeration.
const (
	DomainString  = "string"
	DomainNumber  = "number"
	DomainBoolean = "boolean"
)

// AllowedValues is the value domain of a parameter: either a domain tag or an
// explicit set of string literals. The zero value is the string domain.
type AllowedValues struct {
	Domain string
	Enum   []string
}

// OfDomain returns the AllowedValues for a domain tag.
func OfDomain(tag string) AllowedValues {
	return AllowedValues{Domain: tag}
}

// OneOf returns the AllowedValues for an explicit set of literals.
func OneOf(values ...string) AllowedValues {
	if values == nil {
		values = []string{}
	}
	return AllowedValues{Enum: values}
}

// IsEnum reports whether the domain is an explicit set of literals.
func (a AllowedValues) IsEnum() bool {
	return a.Enum != nil
}

// SchemaType is the JSON schema type for the domain. Enumerations and
// unrecognized tags are strings.
func (a AllowedValues) SchemaType() string {
	if a.IsEnum() {
		return DomainString
	}
	switch a.Domain {
	case DomainNumber, DomainBoolean:
		return a.Domain
	default:
		return DomainString
	}
}

// Parameter describes one named parameter of a resource.
type Parameter struct {
	Name          string        `mapstructure:"name" validate:"required"`
	Description   string        `mapstructure:"description"`
	AllowedValues AllowedValues `mapstructure:"allowed_values"`
}

// Schema returns the JSON schema property for the parameter.
func (p Parameter) Schema() map[string]any {
	s := map[string]any{
		"description": p.Description,
		"type":        p.AllowedValues.SchemaType(),
	}
	if p.AllowedValues.IsEnum() {
		s["enum"] = slices.Clone(p.AllowedValues.Enum)
	}
	return s
}
