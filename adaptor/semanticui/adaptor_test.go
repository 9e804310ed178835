package semanticui_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uval/adaptor"
	"github.com/dmitrymomot/uval/adaptor/semanticui"
	"github.com/dmitrymomot/uval/parser"
)

func apply(t *testing.T, a *semanticui.Adaptor, markup string) (*goquery.Selection, error) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	form := doc.Find("form").First()
	return form, a.Apply(context.Background(), form, parser.New().ParseForm(form))
}

func settingsOf(t *testing.T, form *goquery.Selection) semanticui.Settings {
	t.Helper()
	raw, ok := form.Attr(semanticui.DefaultSettingsAttribute)
	require.True(t, ok)
	var s semanticui.Settings
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	a, err := semanticui.New(nil)
	assert.ErrorIs(t, err, adaptor.ErrPluginNotLoaded)
	assert.Nil(t, a)
}

func TestAdaptor_Apply(t *testing.T) {
	t.Parallel()

	t.Run("maps rules to types and prompts", func(t *testing.T) {
		t.Parallel()
		a, err := semanticui.New(semanticui.NewAttributePlugin())
		require.NoError(t, err)

		form, err := apply(t, a, `<form>
			<input name="Age" data-val="true" data-val-required="Required"
				data-val-range="Out of range" data-val-range-min="18" data-val-range-max="65">
			<input name="Code" data-val="true" data-val-regex-pattern="^[A-Z]+$" data-val-length-value="5">
			<input name="Bio" data-val="true" data-val-minlength-min="2" data-val-maxlength="Too long" data-val-maxlength-max="10">
			<input name="Email" data-val="true" data-val-email="Bad email" data-val-creditcard="">
			<input name="User.Password" data-val="true">
			<input name="User.Confirm" data-val="true" data-val-equalto="Must match" data-val-equalto-other="*.Password">
		</form>`)
		require.NoError(t, err)

		s := settingsOf(t, form)
		assert.Equal(t, semanticui.Field{Identifier: "Age", Rules: []semanticui.Rule{
			{Type: "integer[18..65]", Prompt: "Out of range"},
			{Type: "empty", Prompt: "Required"},
		}}, s.Fields["Age"])
		assert.Equal(t, []semanticui.Rule{
			{Type: "exactLength[5]"},
			{Type: "regExp[/^[A-Z]+$/]"},
		}, s.Fields["Code"].Rules)
		assert.Equal(t, []semanticui.Rule{
			{Type: "maxLength[10]", Prompt: "Too long"},
			{Type: "minLength[2]"},
		}, s.Fields["Bio"].Rules)
		assert.Equal(t, []semanticui.Rule{
			{Type: "creditCard"},
			{Type: "email", Prompt: "Bad email"},
		}, s.Fields["Email"].Rules)
		assert.Equal(t, []semanticui.Rule{{Type: "match[User.Password]", Prompt: "Must match"}}, s.Fields["User.Confirm"].Rules)
		assert.Equal(t, semanticui.Field{Identifier: "User.Password", Rules: []semanticui.Rule{}}, s.Fields["User.Password"])
	})

	t.Run("warns about unknown rule types", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		a, err := semanticui.New(semanticui.NewAttributePlugin(),
			semanticui.WithLogger(slog.New(slog.NewTextHandler(buf, nil))))
		require.NoError(t, err)

		form, err := apply(t, a, `<form><input name="Zip" data-val="true" data-val-zipcode="Bad zip"></form>`)
		require.NoError(t, err)

		assert.Equal(t, []semanticui.Rule{{Type: "zipcode", Prompt: "Bad zip"}}, settingsOf(t, form).Fields["Zip"].Rules)
		assert.Contains(t, buf.String(), "rule type is not available")
	})

	t.Run("range needs both bounds", func(t *testing.T) {
		t.Parallel()
		a, err := semanticui.New(semanticui.NewAttributePlugin())
		require.NoError(t, err)

		form, err := apply(t, a, `<form><input name="Age" data-val="true" data-val-range-min="18"></form>`)

		require.ErrorIs(t, err, adaptor.ErrConfiguration)
		_, ok := form.Attr(semanticui.DefaultSettingsAttribute)
		assert.False(t, ok)
	})

	t.Run("range with an empty bound", func(t *testing.T) {
		t.Parallel()
		a, err := semanticui.New(semanticui.NewAttributePlugin())
		require.NoError(t, err)

		_, err = apply(t, a, `<form><input name="Age" data-val="true" data-val-range-min="" data-val-range-max="65"></form>`)

		assert.ErrorIs(t, err, adaptor.ErrConfiguration)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		a, err := semanticui.New(semanticui.NewAttributePlugin())
		require.NoError(t, err)
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(
			`<form><input name="Name" data-val="true" data-val-required="Required"></form>`))
		require.NoError(t, err)
		form := doc.Find("form")
		cfg := parser.New().ParseForm(form)

		require.NoError(t, a.Apply(context.Background(), form, cfg))
		first := form.AttrOr(semanticui.DefaultSettingsAttribute, "")
		require.NoError(t, a.Apply(context.Background(), form, cfg))

		assert.JSONEq(t, `{"fields":{"Name":{"identifier":"Name","rules":[{"type":"empty","prompt":"Required"}]}}}`, first)
		assert.Equal(t, first, form.AttrOr(semanticui.DefaultSettingsAttribute, ""))
	})
}

func TestAdaptor_AddRule(t *testing.T) {
	t.Parallel()

	plugin := semanticui.NewAttributePlugin(semanticui.WithAttribute("data-form"))
	a, err := semanticui.New(plugin)
	require.NoError(t, err)

	require.NoError(t, a.AddRule("zipcode", adaptor.Method{Source: "function (value) { return /^\\d{5}$/.test(value); }"}, nil))
	a.AddRuleMapper("required", func(adaptor.Rule) (any, error) { return "checked", nil })
	assert.ErrorIs(t, a.AddRule("", adaptor.Method{Source: "x"}, nil), adaptor.ErrInvalidRuleName)
	assert.ErrorIs(t, a.AddRule("odd", adaptor.Method{}, nil), semanticui.ErrEmptyMethod)

	form, err := apply(t, a, `<form><input type="radio" name="Zip" data-val="true" data-val-zipcode="Bad zip" data-val-required="Pick"></form>`)
	require.NoError(t, err)

	raw := form.AttrOr("data-form", "")
	assert.JSONEq(t, `{
		"fields": {"Zip": {"identifier": "Zip", "rules": [
			{"type": "checked", "prompt": "Pick"},
			{"type": "zipcode", "prompt": "Bad zip"}
		]}},
		"rules": {"zipcode": "function (value) { return /^\\d{5}$/.test(value); }"}
	}`, raw)
	assert.True(t, plugin.HasMethod("zipcode"))
	assert.True(t, plugin.HasMethod("minLength"))
	assert.False(t, plugin.HasMethod("phoneUS"))
}
