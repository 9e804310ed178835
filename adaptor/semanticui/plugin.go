package semanticui

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/uval/adaptor"
)

// DefaultSettingsAttribute receives the serialized settings on each form.
const DefaultSettingsAttribute = "data-uval-form-settings"

// ErrEncodeSettings is returned when form settings cannot be serialized.
var ErrEncodeSettings = errors.New("failed to encode form settings")

// ErrEmptyMethod is returned when registering a rule without source.
var ErrEmptyMethod = errors.New("validation rule has no source")

// Plugin is the part of the Semantic UI form behaviour the adaptor relies on.
type Plugin interface {
	// Form activates validation on form, like $(form).form(settings).
	Form(form *goquery.Selection, settings Settings) error
	// RemoveData drops settings previously attached to form.
	RemoveData(form *goquery.Selection)
	// AddMethod registers a rule in $.fn.form.settings.rules.
	AddMethod(name string, method adaptor.Method) error
	// HasMethod reports whether a rule type is available.
	HasMethod(name string) bool
}

// Settings is the form behaviour configuration.
type Settings struct {
	Fields map[string]Field `json:"fields"`
}

// Field describes the validation of one control.
type Field struct {
	Identifier string `json:"identifier"`
	Rules      []Rule `json:"rules"`
}

// Rule is one entry of a field's rules list.
type Rule struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt,omitempty"`
}

// Rule types shipped with the form behaviour.
var builtinRules = []string{
	"empty", "checked", "email", "url", "integer", "decimal", "number", "regExp",
	"creditCard", "match", "different", "minLength", "maxLength", "exactLength",
	"is", "isExactly", "not", "contains", "doesntContain", "minCount", "maxCount",
	"exactCount",
}

// AttributePlugin attaches the settings to the form as a JSON attribute.
type AttributePlugin struct {
	attribute string

	mu      sync.RWMutex
	builtin map[string]struct{}
	custom  map[string]string
}

// PluginOption configures the AttributePlugin.
type PluginOption func(*AttributePlugin)

// WithAttribute sets the form attribute receiving the serialized settings.
func WithAttribute(name string) PluginOption {
	return func(p *AttributePlugin) {
		if name != "" {
			p.attribute = name
		}
	}
}

// NewAttributePlugin creates an AttributePlugin.
func NewAttributePlugin(opts ...PluginOption) *AttributePlugin {
	p := &AttributePlugin{
		attribute: DefaultSettingsAttribute,
		builtin:   make(map[string]struct{}, len(builtinRules)),
		custom:    make(map[string]string),
	}
	for _, r := range builtinRules {
		p.builtin[r] = struct{}{}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attribute returns the name of the attribute holding the settings.
func (p *AttributePlugin) Attribute() string {
	return p.attribute
}

func (p *AttributePlugin) Form(form *goquery.Selection, settings Settings) error {
	p.mu.RLock()
	var rules map[string]string
	if len(p.custom) > 0 {
		rules = make(map[string]string, len(p.custom))
		for name, src := range p.custom {
			rules[name] = src
		}
	}
	p.mu.RUnlock()

	b, err := json.Marshal(struct {
		Settings
		Rules map[string]string `json:"rules,omitempty"`
	}{settings, rules})
	if err != nil {
		return errors.Join(ErrEncodeSettings, err)
	}
	form.SetAttr(p.attribute, string(b))
	return nil
}

func (p *AttributePlugin) RemoveData(form *goquery.Selection) {
	form.RemoveAttr(p.attribute)
}

func (p *AttributePlugin) AddMethod(name string, method adaptor.Method) error {
	if name == "" {
		return adaptor.ErrInvalidRuleName
	}
	if method.Source == "" {
		return fmt.Errorf("%w: %q", ErrEmptyMethod, name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.custom[name] = method.Source
	return nil
}

func (p *AttributePlugin) HasMethod(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.builtin[name]; ok {
		return true
	}
	_, ok := p.custom[name]
	return ok
}
