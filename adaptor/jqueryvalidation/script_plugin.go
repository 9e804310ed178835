package jqueryvalidation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"slices"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"

	"github.com/dmitrymomot/uval/adaptor"
)

const (
	// ScriptAttribute marks activation scripts generated for a form.
	ScriptAttribute = "data-uval-script"
)

// ScriptPlugin places an activation <script> right after each form. The
// script registers custom methods and calls $(form).validate(options).
type ScriptPlugin struct {
	methods *methodSet
}

// NewScriptPlugin creates a ScriptPlugin. WithAttribute has no effect on it.
func NewScriptPlugin(opts ...PluginOption) *ScriptPlugin {
	var cfg pluginConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ScriptPlugin{methods: newMethodSet(cfg.additional)}
}

func (p *ScriptPlugin) Validate(form *goquery.Selection, opts Options) error {
	id := FormID(form)

	encoded, err := json.Marshal(opts)
	if err != nil {
		return errors.Join(ErrEncodeOptions, err)
	}

	var buf bytes.Buffer
	if err := activationScript(id, encoded, p.methods.sources()).Render(context.Background(), &buf); err != nil {
		return errors.Join(ErrRenderScript, err)
	}
	form.AfterHtml(buf.String())
	return nil
}

func (p *ScriptPlugin) RemoveData(form *goquery.Selection) {
	id, ok := form.Attr(FormIDAttribute)
	if !ok {
		return
	}
	form.NextAllFiltered("script").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(ScriptAttribute)
		return v == id
	}).Remove()
}

func (p *ScriptPlugin) AddMethod(name string, method adaptor.Method) error {
	return p.methods.add(name, method)
}

func (p *ScriptPlugin) HasMethod(name string) bool {
	return p.methods.has(name)
}

// activationScript renders the bootstrap for one form. options is JSON produced
// by encoding/json, which escapes <, > and & so it cannot close the script element.
func activationScript(formID string, options []byte, methods map[string]string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		selector, err := json.Marshal(FormSelector(formID))
		if err != nil {
			return err
		}

		var b bytes.Buffer
		b.WriteString(`<script ` + ScriptAttribute + `="` + templ.EscapeString(formID) + `">`)
		b.WriteString("jQuery(function ($) {\n")
		for _, name := range slices.Sorted(maps.Keys(methods)) {
			n, err := json.Marshal(name)
			if err != nil {
				return err
			}
			b.WriteString("  $.validator.addMethod(")
			b.Write(n)
			b.WriteString(", ")
			b.WriteString(methods[name])
			b.WriteString(");\n")
		}
		b.WriteString("  $(")
		b.Write(selector)
		b.WriteString(").validate(")
		b.Write(options)
		b.WriteString(");\n});</script>")

		_, err = w.Write(b.Bytes())
		return err
	})
}
