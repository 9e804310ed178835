package adaptor

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/uval/parser"
)

// Adaptor translates the neutral form configuration into one plugin's native
// configuration and activates that plugin on the form.
//
// Apply must first clear whatever the plugin attached to the form on a previous
// call, so running setup repeatedly never layers duplicate state.
type Adaptor interface {
	Apply(ctx context.Context, form *goquery.Selection, cfg parser.FormConfig) error
}

// Extensible is implemented by adaptors that accept new rules at runtime.
type Extensible interface {
	Adaptor
	// AddRuleMapper installs the parameter mapper for a rule. A nil fn installs Passthrough.
	AddRuleMapper(name string, fn ParameterMapper)
	// AddRule registers a validation method with the target plugin and installs
	// the parameter mapper for it. A nil fn installs Passthrough.
	AddRule(name string, method Method, fn ParameterMapper) error
}

// Func adapts an ordinary function to the Adaptor interface.
type Func func(ctx context.Context, form *goquery.Selection, cfg parser.FormConfig) error

func (f Func) Apply(ctx context.Context, form *goquery.Selection, cfg parser.FormConfig) error {
	return f(ctx, form, cfg)
}

// Empty is used when no adaptor is selected. It does nothing.
var Empty Adaptor = Func(func(context.Context, *goquery.Selection, parser.FormConfig) error {
	return nil
})

// Rule is the input handed to every mapper.
type Rule struct {
	// Form is the form being configured, used by mappers that reference other controls.
	Form *goquery.Selection
	// Field is the name attribute of the control the rule belongs to.
	Field      string
	Name       string
	Message    string
	Parameters parser.Parameters
}

// Method is a named validation behaviour registered with a plugin.
// Source holds the client-side validation function, e.g.
//
//	function (value, element, param) { return this.optional(element) || value % param === 0; }
type Method struct {
	Source string
}
