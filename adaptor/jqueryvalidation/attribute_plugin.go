package jqueryvalidation

import (
	"encoding/json"
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/uval/adaptor"
)

// DefaultOptionsAttribute receives the serialized options on each form.
const DefaultOptionsAttribute = "data-uval-options"

// AttributePlugin attaches the plugin options to the form as a JSON attribute.
// A small client bootstrap reads the attribute and calls $(form).validate with it.
type AttributePlugin struct {
	attribute string
	methods   *methodSet
}

// NewAttributePlugin creates an AttributePlugin.
func NewAttributePlugin(opts ...PluginOption) *AttributePlugin {
	cfg := pluginConfig{attribute: DefaultOptionsAttribute}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &AttributePlugin{
		attribute: cfg.attribute,
		methods:   newMethodSet(cfg.additional),
	}
}

// Attribute returns the name of the attribute holding the options.
func (p *AttributePlugin) Attribute() string {
	return p.attribute
}

func (p *AttributePlugin) Validate(form *goquery.Selection, opts Options) error {
	b, err := json.Marshal(payload{Options: opts, Methods: p.methods.sources()})
	if err != nil {
		return errors.Join(ErrEncodeOptions, err)
	}
	form.SetAttr(p.attribute, string(b))
	return nil
}

func (p *AttributePlugin) RemoveData(form *goquery.Selection) {
	form.RemoveAttr(p.attribute)
}

func (p *AttributePlugin) AddMethod(name string, method adaptor.Method) error {
	return p.methods.add(name, method)
}

func (p *AttributePlugin) HasMethod(name string) bool {
	return p.methods.has(name)
}
