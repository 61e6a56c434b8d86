// Package validation provides input validation utilities for resource
// configuration.
//
// It supports both struct tag validation (using the validator library) for
// decoded configuration payloads and programmatic validation with error
// collection for cross-field rules.
//
// # Struct Tag Validation
//
//	type Descriptor struct {
//	    Name string `mapstructure:"name" validate:"required"`
//	}
//	err := validation.Validate(d)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Unique("resources", names)
//	if err := v.Validate(); err != nil { ... }
package validation
