package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/uval"
	"github.com/dmitrymomot/uval/adaptor/jqueryvalidation"
	"github.com/dmitrymomot/uval/adaptor/semanticui"
	"github.com/dmitrymomot/uval/parser"
	"github.com/dmitrymomot/uval/pkg/httpserver"
	"github.com/dmitrymomot/uval/pkg/logger"
)

// Config is read from UVAL_* environment variables and an optional .env file.
type Config struct {
	Adaptor           string `env:"UVAL_ADAPTOR" envDefault:"jQueryValidationPlugin" validate:"oneof=jQueryValidationPlugin Semantic-UI"`
	PluginMode        string `env:"UVAL_PLUGIN_MODE" envDefault:"attribute" validate:"oneof=attribute script"`
	OptionsAttribute  string `env:"UVAL_OPTIONS_ATTRIBUTE"`
	AdditionalMethods bool   `env:"UVAL_ADDITIONAL_METHODS" envDefault:"true"`

	Env       string `env:"UVAL_ENV" envDefault:"development" validate:"oneof=development production"`
	LogLevel  string `env:"UVAL_LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `env:"UVAL_LOG_FORMAT" validate:"omitempty,oneof=text json"`

	HTTP httpserver.Config
}

func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, appName),
		logger.WithOutput(w),
		logger.WithContextExtractors(logger.RequestIDExtractor()),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return logger.New(opts...), nil
}

// newValidation registers both adaptors and selects the configured one.
func newValidation(cfg Config, log *slog.Logger) (*uval.Validation, error) {
	var jqOpts []jqueryvalidation.PluginOption
	if cfg.AdditionalMethods {
		jqOpts = append(jqOpts, jqueryvalidation.WithAdditionalMethods())
	}
	jqOpts = append(jqOpts, jqueryvalidation.WithAttribute(cfg.OptionsAttribute))

	var plugin jqueryvalidation.Plugin = jqueryvalidation.NewAttributePlugin(jqOpts...)
	if cfg.PluginMode == "script" {
		plugin = jqueryvalidation.NewScriptPlugin(jqOpts...)
	}
	jq, err := jqueryvalidation.New(plugin, jqueryvalidation.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("jquery validation adaptor: %w", err)
	}

	sui, err := semanticui.New(
		semanticui.NewAttributePlugin(semanticui.WithAttribute(cfg.OptionsAttribute)),
		semanticui.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("semantic ui adaptor: %w", err)
	}

	return uval.New(
		uval.WithLogger(log),
		uval.WithParser(parser.New(parser.WithLogger(log))),
		uval.WithAdaptor(jqueryvalidation.Name, jq),
		uval.WithAdaptor(semanticui.Name, sui),
		uval.WithSelected(cfg.Adaptor),
	), nil
}
