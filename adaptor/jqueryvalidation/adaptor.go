package jqueryvalidation

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/uval/adaptor"
	"github.com/dmitrymomot/uval/parser"
	"github.com/dmitrymomot/uval/pkg/logger"
)

// Name identifies the adaptor in a uval.Validation registry.
const Name = "jQueryValidationPlugin"

// Mapper table entries shared through aliases.
const (
	DefaultMapper     = "__default"
	SingleValueMapper = "__singleValue"
	MinMaxMapper      = "__minMax"
	PassthroughMapper = "__passthrough"
)

// ComplexMapper writes one neutral rule into any number of plugin rule slots.
// It is used for rules whose shape does not fit a single renamed value.
type ComplexMapper func(r adaptor.Rule, rules map[string]any, messages map[string]string) error

// Adaptor translates neutral configuration for the jQuery Validation Plugin.
type Adaptor struct {
	plugin Plugin
	log    *slog.Logger

	names  *adaptor.NameTable
	params *adaptor.MapperTable

	mu      sync.RWMutex
	complex map[string]ComplexMapper
}

// Option configures the Adaptor.
type Option func(*Adaptor)

// WithLogger sets the adaptor logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adaptor) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates the adaptor for plugin. A nil plugin means the plugin library
// was never loaded and is reported immediately with adaptor.ErrPluginNotLoaded.
func New(plugin Plugin, opts ...Option) (*Adaptor, error) {
	if plugin == nil {
		return nil, adaptor.ErrPluginNotLoaded
	}

	a := &Adaptor{
		plugin: plugin,
		log:    logger.Discard(),
		names: adaptor.NewNameTable(map[string]string{
			"regex":  "pattern",
			"phone":  "phoneUS",
			"length": "maxlength",
		}),
		params: adaptor.NewMapperTable(DefaultMapper, map[string]adaptor.MapperEntry{
			DefaultMapper:     adaptor.Direct(adaptor.Default),
			SingleValueMapper: adaptor.Direct(adaptor.SingleValue),
			MinMaxMapper:      adaptor.Direct(adaptor.MinMax),
			PassthroughMapper: adaptor.Direct(adaptor.Passthrough),

			"creditcard": adaptor.Alias(DefaultMapper),
			"date":       adaptor.Alias(DefaultMapper),
			"digits":     adaptor.Alias(DefaultMapper),
			"email":      adaptor.Alias(DefaultMapper),
			"number":     adaptor.Alias(DefaultMapper),
			"phone":      adaptor.Alias(DefaultMapper),
			"required":   adaptor.Alias(DefaultMapper),
			"url":        adaptor.Alias(DefaultMapper),

			"accept":    adaptor.Alias(SingleValueMapper),
			"length":    adaptor.Alias(SingleValueMapper),
			"max":       adaptor.Alias(SingleValueMapper),
			"maxlength": adaptor.Alias(SingleValueMapper),
			"min":       adaptor.Alias(SingleValueMapper),
			"minlength": adaptor.Alias(SingleValueMapper),
			"regex":     adaptor.Alias(SingleValueMapper),

			"rangelength": adaptor.Alias(MinMaxMapper),
			"remote":      adaptor.Alias(PassthroughMapper),
		}),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.complex = map[string]ComplexMapper{
		"extension": extensionMapper,
		"range":     rangeMapper,
		"equalto":   a.equalToMapper,
	}

	if !plugin.HasMethod("pattern") {
		a.log.Warn("additional methods are not loaded, not all validation methods will work",
			logger.Component("adaptor"),
			logger.Adaptor(Name),
		)
	}

	return a, nil
}

// Apply clears previous validation state on form and activates the plugin
// with the translated configuration.
func (a *Adaptor) Apply(ctx context.Context, form *goquery.Selection, cfg parser.FormConfig) error {
	a.plugin.RemoveData(form)

	opts := Options{
		Rules:    make(map[string]map[string]any, len(cfg)),
		Messages: make(map[string]map[string]string, len(cfg)),
	}

	for _, field := range slices.Sorted(maps.Keys(cfg)) {
		fieldRules := cfg[field]
		rules := make(map[string]any, len(fieldRules))
		messages := make(map[string]string, len(fieldRules))

		for _, name := range slices.Sorted(maps.Keys(fieldRules)) {
			rc := fieldRules[name]
			r := adaptor.Rule{
				Form:       form,
				Field:      field,
				Name:       name,
				Message:    rc.Message,
				Parameters: rc.Parameters,
			}
			if err := a.mapRule(r, rules, messages); err != nil {
				return err
			}
		}

		opts.Rules[field] = rules
		opts.Messages[field] = messages
	}

	a.log.DebugContext(ctx, "activating plugin",
		logger.Component("adaptor"),
		logger.Adaptor(Name),
		logger.Count(len(opts.Rules)),
	)

	return a.plugin.Validate(form, opts)
}

func (a *Adaptor) mapRule(r adaptor.Rule, rules map[string]any, messages map[string]string) error {
	a.mu.RLock()
	complexMapper, ok := a.complex[r.Name]
	a.mu.RUnlock()
	if ok {
		return complexMapper(r, rules, messages)
	}

	fn, err := a.params.Resolve(r.Name)
	if err != nil {
		return err
	}
	value, err := fn(r)
	if err != nil {
		return err
	}

	name := a.names.Name(r.Name)
	rules[name] = value
	if r.Message != "" {
		messages[name] = r.Message
	}
	return nil
}

// AddRuleMapper installs the parameter mapper for a rule, replacing any
// built-in mapping for it. A nil fn passes the parameters through.
func (a *Adaptor) AddRuleMapper(name string, fn adaptor.ParameterMapper) {
	a.mu.Lock()
	delete(a.complex, name)
	a.mu.Unlock()
	a.params.Set(name, adaptor.Direct(fn))
}

// AddComplexMapper installs a mapper that writes plugin rule slots directly.
func (a *Adaptor) AddComplexMapper(name string, fn ComplexMapper) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.complex[name] = fn
}

// AddRuleName maps a neutral rule to a differently named plugin method.
func (a *Adaptor) AddRuleName(rule, pluginName string) {
	a.names.Set(rule, pluginName)
}

// AddRule registers method with the plugin under name and installs fn as its
// parameter mapper. A nil fn passes the parameters through.
func (a *Adaptor) AddRule(name string, method adaptor.Method, fn adaptor.ParameterMapper) error {
	if name == "" {
		return adaptor.ErrInvalidRuleName
	}
	if err := a.plugin.AddMethod(name, method); err != nil {
		return err
	}
	a.AddRuleMapper(name, fn)
	return nil
}

var _ adaptor.Extensible = (*Adaptor)(nil)
