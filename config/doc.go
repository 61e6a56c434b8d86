// Package config loads resourcekit host configuration.
//
// Viper reads config.yml from the standard locations (./cmd/<service>/,
// ./config/, ./) or an explicit path, a .env file is loaded into the process
// environment with godotenv, and RESOURCEKIT_* variables override file
// values (RESOURCEKIT_LOGGING_LEVEL=debug sets logging.level).
//
//	cfg, err := config.Load("resourcectl", config.WithConfigFile("resources.yml"))
//
// Each entry under providers names a factory kind; the remaining keys are
// the provider payload decoded by that factory.
package config
