// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11, and checks
// the parsed struct with github.com/go-playground/validator/v10:
//
//	type Config struct {
//	    Adaptor  string `env:"UVAL_ADAPTOR" envDefault:"jQueryValidationPlugin" validate:"required"`
//	    LogLevel string `env:"UVAL_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("config: %v", err)
//	}
//
// Each configuration type is parsed once and cached. Use ForceReload or
// ResetCache when the environment changes, typically in tests.
//
// Errors wrap ErrParsingConfig, ErrInvalidConfig, ErrLoadingEnvFile or
// ErrNilPointer and can be matched with errors.Is.
package config
