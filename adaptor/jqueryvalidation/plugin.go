package jqueryvalidation

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/dmitrymomot/uval/adaptor"
)

// Plugin is the part of the jQuery Validation Plugin the adaptor relies on.
type Plugin interface {
	// Validate activates validation on form, like $(form).validate(options).
	Validate(form *goquery.Selection, opts Options) error
	// RemoveData drops validation state previously attached to form.
	RemoveData(form *goquery.Selection)
	// AddMethod registers a custom validation method, like $.validator.addMethod.
	AddMethod(name string, method adaptor.Method) error
	// HasMethod reports whether a validation method is available.
	HasMethod(name string) bool
}

// Options is the configuration object handed to the plugin.
type Options struct {
	Rules    map[string]map[string]any    `json:"rules"`
	Messages map[string]map[string]string `json:"messages"`
}

// ElementRef points at another control of the same form.
// It marshals to the form-scoped selector of the control, or null when the
// control does not exist.
type ElementRef struct {
	Selector string
	Element  *goquery.Selection
}

// Found reports whether the referenced control exists in the form.
func (r ElementRef) Found() bool {
	return r.Element != nil && r.Element.Length() > 0
}

func (r ElementRef) MarshalJSON() ([]byte, error) {
	if !r.Found() {
		return []byte("null"), nil
	}
	return json.Marshal(r.Selector)
}

// FormIDAttribute holds the stable id generated selectors address a form by.
const FormIDAttribute = "data-uval-form"

// FormID returns the stable id of form, assigning a new one on first use.
// An id already present in the markup is kept.
func FormID(form *goquery.Selection) string {
	id, ok := form.Attr(FormIDAttribute)
	if !ok || id == "" {
		id = uuid.NewString()
		form.SetAttr(FormIDAttribute, id)
	}
	return id
}

var quotedValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// FormSelector returns the selector matching a form by its stable id.
func FormSelector(id string) string {
	return `form[` + FormIDAttribute + `="` + quotedValueEscaper.Replace(id) + `"]`
}

// Methods shipped with jquery.validate.js.
var coreMethods = []string{
	"required", "remote", "minlength", "maxlength", "rangelength", "min", "max",
	"range", "step", "email", "url", "date", "dateISO", "number", "digits", "equalTo",
}

// Methods shipped with additional-methods.js.
var additionalMethods = []string{
	"accept", "extension", "creditcard", "phoneUS", "pattern", "alphanumeric",
	"integer", "lettersonly", "nowhitespace", "require_from_group", "time",
}

// methodSet tracks the methods a document-backed plugin can use.
type methodSet struct {
	mu      sync.RWMutex
	builtin map[string]struct{}
	custom  map[string]adaptor.Method
}

func newMethodSet(additional bool) *methodSet {
	s := &methodSet{
		builtin: make(map[string]struct{}),
		custom:  make(map[string]adaptor.Method),
	}
	for _, m := range coreMethods {
		s.builtin[m] = struct{}{}
	}
	if additional {
		for _, m := range additionalMethods {
			s.builtin[m] = struct{}{}
		}
	}
	return s
}

func (s *methodSet) add(name string, m adaptor.Method) error {
	if name == "" {
		return adaptor.ErrInvalidRuleName
	}
	if m.Source == "" {
		return fmt.Errorf("%w: %q", ErrEmptyMethod, name)
	}
	if strings.Contains(strings.ToLower(m.Source), "</script") {
		return fmt.Errorf("%w: %q", ErrUnsafeMethod, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.custom[name] = m
	return nil
}

func (s *methodSet) has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.builtin[name]; ok {
		return true
	}
	_, ok := s.custom[name]
	return ok
}

func (s *methodSet) sources() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.custom) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.custom))
	for name, m := range s.custom {
		out[name] = m.Source
	}
	return out
}

// PluginOption configures the document-backed plugins.
type PluginOption func(*pluginConfig)

type pluginConfig struct {
	attribute  string
	additional bool
}

// WithAttribute sets the form attribute receiving the serialized options.
func WithAttribute(name string) PluginOption {
	return func(c *pluginConfig) {
		if name != "" {
			c.attribute = name
		}
	}
}

// WithAdditionalMethods declares that additional-methods.js is loaded on the page.
func WithAdditionalMethods() PluginOption {
	return func(c *pluginConfig) {
		c.additional = true
	}
}

// payload is what the client bootstrap reads back.
type payload struct {
	Options
	Methods map[string]string `json:"methods,omitempty"`
}
