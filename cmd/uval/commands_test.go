package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/uval/adaptor/jqueryvalidation"
	"github.com/dmitrymomot/uval/adaptor/semanticui"
	"github.com/dmitrymomot/uval/parser"
	"github.com/dmitrymomot/uval/pkg/config"
	"github.com/dmitrymomot/uval/pkg/logger"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"UVAL_ADAPTOR", "UVAL_PLUGIN_MODE", "UVAL_OPTIONS_ATTRIBUTE", "UVAL_ADDITIONAL_METHODS", "UVAL_ENV", "UVAL_LOG_LEVEL", "UVAL_LOG_FORMAT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestApply(t *testing.T) {
	t.Run("attribute mode from file", func(t *testing.T) {
		clearEnv(t)

		out, err := execute(t, "", "apply", "testdata/signup.html")
		require.NoError(t, err)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
		require.NoError(t, err)
		var opts jqueryvalidation.Options
		require.NoError(t, json.Unmarshal([]byte(doc.Find("#signup").AttrOr(jqueryvalidation.DefaultOptionsAttribute, "")), &opts))
		assert.Equal(t, map[string]any{"min": "18", "max": "65"}, opts.Rules["Age"])
		assert.Equal(t, map[string]any{"email": true, "required": true}, opts.Rules["Email"])
		assert.Empty(t, opts.Rules["Terms"])
	})

	t.Run("script mode from stdin", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("UVAL_PLUGIN_MODE", "script")
		page, err := os.ReadFile("testdata/signup.html")
		require.NoError(t, err)

		out, err := execute(t, string(page), "apply")
		require.NoError(t, err)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Find("script["+jqueryvalidation.ScriptAttribute+"]").Length())
		assert.Contains(t, doc.Find("script").Text(), ".validate(")
	})

	t.Run("semantic ui to output file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("UVAL_ADAPTOR", semanticui.Name)
		target := filepath.Join(t.TempDir(), "out.html")

		out, err := execute(t, "", "apply", "testdata/signup.html", "-o", target)
		require.NoError(t, err)
		assert.Empty(t, out)

		written, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(written), semanticui.DefaultSettingsAttribute)
		assert.Contains(t, string(written), "integer[18..65]")
	})

	t.Run("configuration error", func(t *testing.T) {
		clearEnv(t)

		_, err := execute(t, `<form><input name="A" data-val="true" data-val-length-min="1" data-val-length-max="2"></form>`, "apply")
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("UVAL_PLUGIN_MODE", "inline")

		_, err := execute(t, "", "apply", "testdata/signup.html")
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)

		_, err := execute(t, "", "apply", "testdata/missing.html")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestInspect(t *testing.T) {
	expected := map[string]parser.FormConfig{
		"signup": {
			"Email": {"required": {Message: "Email is required"}, "email": {Message: "Bad email"}},
			"Age":   {"range": {Message: "Out of range", Parameters: parser.Parameters{"min": "18", "max": "65"}}},
			"Terms": {},
		},
	}

	t.Run("json", func(t *testing.T) {
		clearEnv(t)

		out, err := execute(t, "", "inspect", "testdata/signup.html")
		require.NoError(t, err)

		var got map[string]parser.FormConfig
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, expected, got)
	})

	t.Run("yaml", func(t *testing.T) {
		clearEnv(t)

		out, err := execute(t, "", "inspect", "--format", "yaml", "testdata/signup.html")
		require.NoError(t, err)

		var got map[string]parser.FormConfig
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, expected, got)
	})

	t.Run("unknown format", func(t *testing.T) {
		clearEnv(t)

		_, err := execute(t, "", "inspect", "--format", "xml", "testdata/signup.html")
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "uval version dev (build: unknown)\n", out)
}

func TestRouter(t *testing.T) {
	clearEnv(t)
	cfg := Config{Adaptor: jqueryvalidation.Name, PluginMode: "attribute", AdditionalMethods: true}
	v, err := newValidation(cfg, logger.Discard())
	require.NoError(t, err)
	h := newRouter(v, logger.Discard(), "testdata")

	t.Run("rewrites served pages", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup.html", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), jqueryvalidation.DefaultOptionsAttribute)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("health check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("missing page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope.html", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
