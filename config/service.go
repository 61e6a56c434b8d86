package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/resourcekit/logger"
)

// Environments accepted in ServiceConfig.Environment.
var Environments = []string{"development", "staging", "production"}

// ServiceConfig contains the fields every resourcekit binary needs. Embed it
// with mapstructure:",squash" to extend it.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults(serviceName string) {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	if !slices.Contains(Environments, c.Environment) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", Environments, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
