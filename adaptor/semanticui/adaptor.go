package semanticui

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/uval/adaptor"
	"github.com/dmitrymomot/uval/parser"
	"github.com/dmitrymomot/uval/pkg/logger"
)

// Name identifies the adaptor in a uval.Validation registry.
const Name = "Semantic-UI"

// RuleNameMapper is the table fallback: the rule name is used as type.
const RuleNameMapper = "__ruleName"

// Adaptor translates neutral configuration for the Semantic UI form behaviour.
type Adaptor struct {
	plugin Plugin
	log    *slog.Logger
	types  *adaptor.MapperTable
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

// New creates the adaptor for plugin.
func New(plugin Plugin, opts ...Option) (*Adaptor, error) {
	if plugin == nil {
		return nil, adaptor.ErrPluginNotLoaded
	}

	a := &Adaptor{
		plugin: plugin,
		log:    logger.Discard(),
		types: adaptor.NewMapperTable(RuleNameMapper, map[string]adaptor.MapperEntry{
			RuleNameMapper: adaptor.Direct(ruleName),

			"required":   adaptor.Direct(constant("empty")),
			"creditcard": adaptor.Direct(constant("creditCard")),
			"range":      adaptor.Direct(integerRange),
			"length":     adaptor.Direct(bracketed("exactLength", "")),
			"minlength":  adaptor.Direct(bracketed("minLength", "min")),
			"maxlength":  adaptor.Direct(bracketed("maxLength", "max")),
			"regex":      adaptor.Direct(regExp),
			"equalto":    adaptor.Direct(match),
		}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Apply clears previous settings on form and activates the form behaviour.
func (a *Adaptor) Apply(ctx context.Context, form *goquery.Selection, cfg parser.FormConfig) error {
	a.plugin.RemoveData(form)

	settings := Settings{Fields: make(map[string]Field, len(cfg))}
	for _, field := range slices.Sorted(maps.Keys(cfg)) {
		fieldRules := cfg[field]
		rules := make([]Rule, 0, len(fieldRules))

		for _, name := range slices.Sorted(maps.Keys(fieldRules)) {
			rc := fieldRules[name]
			typ, err := a.ruleType(adaptor.Rule{
				Form:       form,
				Field:      field,
				Name:       name,
				Message:    rc.Message,
				Parameters: rc.Parameters,
			})
			if err != nil {
				return err
			}
			if !a.plugin.HasMethod(baseType(typ)) {
				a.log.WarnContext(ctx, "rule type is not available in the form behaviour",
					logger.Component("adaptor"),
					logger.Adaptor(Name),
					logger.Field(field),
					logger.Rule(typ),
				)
			}
			rules = append(rules, Rule{Type: typ, Prompt: rc.Message})
		}

		settings.Fields[field] = Field{Identifier: field, Rules: rules}
	}

	a.log.DebugContext(ctx, "activating form behaviour",
		logger.Component("adaptor"),
		logger.Adaptor(Name),
		logger.Count(len(settings.Fields)),
	)

	return a.plugin.Form(form, settings)
}

func (a *Adaptor) ruleType(r adaptor.Rule) (string, error) {
	fn, err := a.types.Resolve(r.Name)
	if err != nil {
		return "", err
	}
	v, err := fn(r)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// AddRuleMapper installs the type mapper for a rule. A nil fn uses the rule
// name as type.
func (a *Adaptor) AddRuleMapper(name string, fn adaptor.ParameterMapper) {
	if fn == nil {
		fn = ruleName
	}
	a.types.Set(name, adaptor.Direct(fn))
}

// AddRule registers method with the plugin under name and installs fn as its
// type mapper.
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

// baseType strips the bracketed argument: "minLength[2]" -> "minLength".
func baseType(typ string) string {
	if i := strings.IndexByte(typ, '['); i >= 0 {
		return typ[:i]
	}
	return typ
}

var _ adaptor.Extensible = (*Adaptor)(nil)
