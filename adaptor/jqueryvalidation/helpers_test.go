package jqueryvalidation_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uval/adaptor"
	"github.com/dmitrymomot/uval/adaptor/jqueryvalidation"
	"github.com/dmitrymomot/uval/parser"
)

// recordingPlugin captures every call the adaptor makes.
type recordingPlugin struct {
	additional bool
	methods    map[string]adaptor.Method
	validated  []jqueryvalidation.Options
	removed    int
}

func newRecordingPlugin(additional bool) *recordingPlugin {
	return &recordingPlugin{additional: additional, methods: make(map[string]adaptor.Method)}
}

func (p *recordingPlugin) Validate(_ *goquery.Selection, opts jqueryvalidation.Options) error {
	p.validated = append(p.validated, opts)
	return nil
}

func (p *recordingPlugin) RemoveData(*goquery.Selection) { p.removed++ }

func (p *recordingPlugin) AddMethod(name string, m adaptor.Method) error {
	p.methods[name] = m
	return nil
}

func (p *recordingPlugin) HasMethod(name string) bool {
	if name == "pattern" {
		return p.additional
	}
	_, ok := p.methods[name]
	return ok
}

func (p *recordingPlugin) last(t *testing.T) jqueryvalidation.Options {
	t.Helper()
	require.NotEmpty(t, p.validated)
	return p.validated[len(p.validated)-1]
}

func parseForm(t *testing.T, markup string) (*goquery.Document, *goquery.Selection, parser.FormConfig) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	form := doc.Find("form").First()
	require.Equal(t, 1, form.Length())
	return doc, form, parser.New().ParseForm(form)
}
