package adaptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uval/adaptor"
	"github.com/dmitrymomot/uval/parser"
)

func constant(v any) adaptor.ParameterMapper {
	return func(adaptor.Rule) (any, error) { return v, nil }
}

func resolveValue(t *testing.T, table *adaptor.MapperTable, name string) any {
	t.Helper()
	fn, err := table.Resolve(name)
	require.NoError(t, err)
	v, err := fn(adaptor.Rule{Name: name})
	require.NoError(t, err)
	return v
}

func TestMapperTable_Resolve(t *testing.T) {
	t.Parallel()

	table := adaptor.NewMapperTable("__default", map[string]adaptor.MapperEntry{
		"__default": adaptor.Direct(constant("default")),
		"__single":  adaptor.Direct(constant("single")),
		"direct":    adaptor.Direct(constant("direct")),
		"alias":     adaptor.Alias("__single"),
		"dangling":  adaptor.Alias("__missing"),
		"chain":     adaptor.Alias("alias"),
	})

	t.Run("direct entry", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "direct", resolveValue(t, table, "direct"))
	})

	t.Run("alias is followed once", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "single", resolveValue(t, table, "alias"))
	})

	t.Run("unknown rule uses fallback", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "default", resolveValue(t, table, "unknown"))
	})

	t.Run("missing alias target uses fallback", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "default", resolveValue(t, table, "dangling"))
	})

	t.Run("alias chain is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := table.Resolve("chain")
		assert.ErrorIs(t, err, adaptor.ErrAliasChain)
	})
}

func TestMapperTable_MissingFallback(t *testing.T) {
	t.Parallel()

	table := adaptor.NewMapperTable("__default", map[string]adaptor.MapperEntry{
		"known": adaptor.Direct(constant(1)),
	})

	_, err := table.Resolve("unknown")
	assert.ErrorIs(t, err, adaptor.ErrUnknownMapper)

	table.Set("__default", adaptor.Alias("known"))
	_, err = table.Resolve("unknown")
	assert.ErrorIs(t, err, adaptor.ErrUnknownMapper)
}

func TestMapperTable_SetAndLookup(t *testing.T) {
	t.Parallel()

	table := adaptor.NewMapperTable("__default", map[string]adaptor.MapperEntry{
		"__default": adaptor.Direct(adaptor.Default),
	})

	_, ok := table.Lookup("digits")
	assert.False(t, ok)

	table.Set("digits", adaptor.Alias("__default"))
	e, ok := table.Lookup("digits")
	require.True(t, ok)
	assert.True(t, e.IsAlias())
	assert.Equal(t, "__default", e.Target())

	table.Set("digits", adaptor.Direct(nil))
	fn, err := table.Resolve("digits")
	require.NoError(t, err)
	v, err := fn(adaptor.Rule{Parameters: parser.Parameters{"a": "b"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b"}, v)
}

func TestNameTable(t *testing.T) {
	t.Parallel()

	names := adaptor.NewNameTable(map[string]string{"regex": "pattern"})

	assert.Equal(t, "pattern", names.Name("regex"))
	assert.Equal(t, "email", names.Name("email"))

	names.Set("phone", "phoneUS")
	assert.Equal(t, "phoneUS", names.Name("phone"))
}
