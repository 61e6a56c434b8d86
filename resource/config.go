package resource

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/validation"
)

// ProviderConfig is the decoded configuration payload of a provider.
type ProviderConfig struct {
	Name        string         `mapstructure:"name" validate:"required"`
	Description string         `mapstructure:"description"`
	Params      ProviderParams `mapstructure:"params"`
}

// ProviderParams holds the provider's descriptors.
type ProviderParams struct {
	Resources []Descriptor `mapstructure:"resources" validate:"dive"`
	// ValidateParameters enables schema validation of caller parameters.
	ValidateParameters bool `mapstructure:"validate_parameters"`
}

// DecodeProviderConfig decodes a raw payload strictly: unknown keys, wrong
// types and missing required keys fail with an INVALID_CONFIGURATION error.
// Name and description fall back to defaults when absent.
func DecodeProviderConfig(raw map[string]any, defaults ProviderConfig) (ProviderConfig, error) {
	cfg := ProviderConfig{Name: defaults.Name, Description: defaults.Description}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			accessTypeHook,
			allowedValuesHook,
		),
	})
	if err != nil {
		return ProviderConfig{}, errors.Internal(err)
	}
	if err := dec.Decode(raw); err != nil {
		return ProviderConfig{}, errors.Configuration(err.Error()).WithCause(err)
	}
	if err := validation.Validate(cfg); err != nil {
		appErr := errors.Configuration(err.Error()).WithCause(err)
		if ve, ok := errors.AsAppError(err); ok {
			appErr.WithDetails(ve.Details)
		}
		return ProviderConfig{}, appErr
	}
	return cfg, nil
}

// NewSetFromConfig builds a Set from a decoded configuration.
func NewSetFromConfig(cfg ProviderConfig, opts ...SetOption) (*Set, error) {
	if cfg.Params.ValidateParameters {
		opts = append([]SetOption{WithParameterValidator(SchemaValidator())}, opts...)
	}
	return NewSet(cfg.Name, cfg.Description, cfg.Params.Resources, opts...)
}

var (
	accessType    = reflect.TypeOf(AccessType(""))
	allowedValues = reflect.TypeOf(AllowedValues{})
)

func accessTypeHook(from, to reflect.Type, data any) (any, error) {
	if to != accessType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("access must be a string, got %T", data)
	}
	return ParseAccessType(s)
}

// allowedValuesHook accepts a domain tag or a list of string literals. Tags
// other than number and boolean are kept as given and treated as strings.
func allowedValuesHook(from, to reflect.Type, data any) (any, error) {
	if to != allowedValues {
		return data, nil
	}
	switch v := data.(type) {
	case nil:
		return AllowedValues{}, nil
	case AllowedValues:
		return v, nil
	case string:
		return OfDomain(v), nil
	case []string:
		if len(v) == 0 {
			return nil, fmt.Errorf("allowed_values list must not be empty")
		}
		return OneOf(append([]string{}, v...)...), nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("allowed_values list must not be empty")
		}
		values := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("allowed_values[%d] must be a string, got %T", i, item)
			}
			values[i] = s
		}
		return OneOf(values...), nil
	default:
		return nil, fmt.Errorf("allowed_values must be a string or a list, got %T", data)
	}
}
