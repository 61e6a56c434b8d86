package resource

import (
	"context"
	"fmt"
	"maps"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/validation"
)

// ParameterValidator checks caller parameters for a descriptor and returns
// the mapping to substitute. Implementations must not retain params.
type ParameterValidator func(d Descriptor, params Params) (Params, error)

// SetOption configures a Set.
type SetOption func(*Set)

// WithParameterValidator installs a parameter validator. The default copies
// the mapping unchanged.
func WithParameterValidator(v ParameterValidator) SetOption {
	return func(s *Set) {
		s.validator = v
	}
}

// Set is the ordered, immutable collection of descriptors owned by one
// provider. It is safe for concurrent use.
type Set struct {
	name        string
	description string
	descriptors []Descriptor
	index       map[string]int
	validator   ParameterValidator
}

// NewSet validates descriptors and builds a Set. Descriptor names must be
// unique, parameter names must be unique within a descriptor, and every URI
// placeholder must name a declared parameter.
func NewSet(name, description string, descriptors []Descriptor, opts ...SetOption) (*Set, error) {
	v := validation.New()
	v.Required("name", name)

	names := make([]string, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.Name
		checkDescriptor(v, fmt.Sprintf("resources[%d]", i), d)
	}
	v.Unique("resources", names)

	if appErr := v.Validate(); appErr != nil {
		return nil, errors.Configuration(appErr.Message).WithDetails(appErr.Details).WithCause(appErr)
	}

	s := &Set{
		name:        name,
		description: description,
		descriptors: make([]Descriptor, len(descriptors)),
		index:       make(map[string]int, len(descriptors)),
	}
	for i, d := range descriptors {
		s.descriptors[i] = cloneDescriptor(d)
		s.index[d.Name] = i
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func checkDescriptor(v *validation.Validator, path string, d Descriptor) {
	v.Required(path+".name", d.Name)
	v.Required(path+".type", d.ContentType)
	v.Required(path+".uri", d.URI)
	v.Custom(d.Access.Valid(), path+".access",
		fmt.Sprintf("must be one of: %s, %s", AccessPublic, AccessInternal))

	declared := make(map[string]bool, len(d.Parameters))
	for j, p := range d.Parameters {
		v.Required(fmt.Sprintf("%s.resource_parameters[%d].name", path, j), p.Name)
		v.Custom(!p.AllowedValues.IsEnum() || len(p.AllowedValues.Enum) > 0,
			fmt.Sprintf("%s.resource_parameters[%d].allowed_values", path, j), "must not be empty")
		declared[p.Name] = true
	}
	v.Unique(path+".resource_parameters", d.ParameterNames())

	for _, ph := range Placeholders(d.URI) {
		v.Custom(declared[ph], path+".uri", fmt.Sprintf("placeholder {%s} has no declared parameter", ph))
	}
}

func cloneDescriptor(d Descriptor) Descriptor {
	d.Parameters = append([]Parameter(nil), d.Parameters...)
	for i, p := range d.Parameters {
		if p.AllowedValues.Enum != nil {
			d.Parameters[i].AllowedValues.Enum = append([]string{}, p.AllowedValues.Enum...)
		}
	}
	return d
}

// Name returns the provider name.
func (s *Set) Name() string { return s.name }

// Description returns the provider description.
func (s *Set) Description() string { return s.description }

// Len returns the number of descriptors.
func (s *Set) Len() int { return len(s.descriptors) }

// Descriptors returns a copy of the descriptors in declaration order.
func (s *Set) Descriptors() []Descriptor {
	out := make([]Descriptor, len(s.descriptors))
	for i, d := range s.descriptors {
		out[i] = cloneDescriptor(d)
	}
	return out
}

// Lookup returns the descriptor with the exact given name.
func (s *Set) Lookup(name string) (Descriptor, error) {
	i, ok := s.index[name]
	if !ok {
		return Descriptor{}, errors.NotFound("resource", name)
	}
	return s.descriptors[i], nil
}

// Sole returns the only descriptor of a single-resource provider.
func (s *Set) Sole() (Descriptor, error) {
	switch len(s.descriptors) {
	case 0:
		return Descriptor{}, errors.NotFound("resource", "").WithDetail("provider", s.name)
	case 1:
		return s.descriptors[0], nil
	default:
		return Descriptor{}, errors.AmbiguousSelection(s.name, len(s.descriptors))
	}
}

// Resources returns the framework definitions in declaration order.
func (s *Set) Resources() []Definition {
	defs := make([]Definition, len(s.descriptors))
	for i, d := range s.descriptors {
		defs[i] = d.Definition()
	}
	return defs
}

// IsAvailable reports whether the provider can serve requests. Descriptor
// sets are always available.
func (s *Set) IsAvailable(_ context.Context) bool { return true }

// ValidateParameters runs the installed validator, or returns a copy of
// params when none is installed. A nil params yields an empty mapping.
func (s *Set) ValidateParameters(d Descriptor, params Params) (Params, error) {
	if s.validator != nil {
		return s.validator(d, params)
	}
	return copyParams(params), nil
}

// SubstituteParameters replaces placeholders in uri with params.
func (s *Set) SubstituteParameters(uri string, params Params) string {
	return Substitute(uri, params)
}

func copyParams(params Params) Params {
	out := make(Params, len(params))
	maps.Copy(out, params)
	return out
}
