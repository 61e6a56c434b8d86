package resource

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/kbukum/resourcekit/errors"
)

// CompileSchema resolves a derived parameter schema for validation.
func CompileSchema(schema map[string]any) (*jsonschema.Resolved, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return s.Resolve(nil)
}

// SchemaValidator returns a ParameterValidator that checks params against
// the descriptor's derived schema: every declared parameter is present, has
// the declared type and, for enumerations, one of the listed values.
func SchemaValidator() ParameterValidator {
	return func(d Descriptor, params Params) (Params, error) {
		resolved, err := CompileSchema(d.ParameterSchema())
		if err != nil {
			return nil, errors.Internal(err).WithDetail("resource", d.Name)
		}
		instance, err := jsonInstance(params)
		if err != nil {
			return nil, errors.InvalidInput("parameters", err.Error()).WithDetail("resource", d.Name).WithCause(err)
		}
		if err := resolved.Validate(instance); err != nil {
			return nil, errors.InvalidInput("parameters", fmt.Sprintf("resource %q: %v", d.Name, err)).
				WithDetail("resource", d.Name).
				WithCause(err)
		}
		return copyParams(params), nil
	}
}

// jsonInstance normalizes params to the value shapes produced by JSON
// decoding, which is what the schema validator expects.
func jsonInstance(params Params) (map[string]any, error) {
	if params == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
