package config

import (
	"fmt"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/observability"
	"github.com/kbukum/resourcekit/validation"
)

// Config is the configuration of a resourcekit host.
//
//	name: resourcectl
//	logging:
//	  level: info
//	observability:
//	  enabled: false
//	providers:
//	  - kind: http
//	    name: http_resources
//	    params:
//	      resources: [...]
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Providers     []ProviderEntry      `yaml:"providers" mapstructure:"providers" validate:"dive"`
}

// ProviderEntry is one provider to construct. Kind selects the factory; all
// other keys form the provider's configuration payload.
type ProviderEntry struct {
	Kind    string         `yaml:"kind" mapstructure:"kind" validate:"required"`
	Payload map[string]any `yaml:",inline" mapstructure:",remain"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults(serviceName string) {
	c.ServiceConfig.ApplyDefaults(serviceName)
	c.Observability.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return errors.Configuration(err.Error()).WithCause(err)
	}
	if err := c.Observability.Validate(); err != nil {
		return errors.Configuration(fmt.Sprintf("observability: %v", err)).WithCause(err)
	}
	if err := validation.Validate(c); err != nil {
		return errors.Configuration(err.Error()).WithCause(err)
	}
	return nil
}

// Load reads configuration for serviceName, applies defaults and validates.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, errors.Configuration(err.Error()).WithCause(err)
	}
	cfg.ApplyDefaults(serviceName)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
