package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uval/pkg/config"
)

type pluginConfig struct {
	Adaptor  string `env:"UVAL_TEST_ADAPTOR" envDefault:"jQueryValidationPlugin" validate:"required"`
	Mode     string `env:"UVAL_TEST_MODE" envDefault:"attribute" validate:"oneof=attribute script"`
	Priority string `env:"UVAL_TEST_PRIORITY"`
	Methods  bool   `env:"UVAL_TEST_METHODS"`
}

type requiredConfig struct {
	Addr string `env:"UVAL_TEST_ADDR,required"`
}

func unsetAll(t *testing.T) {
	t.Helper()
	for _, k := range []string{"UVAL_TEST_ADAPTOR", "UVAL_TEST_MODE", "UVAL_TEST_PRIORITY", "UVAL_TEST_METHODS", "UVAL_TEST_ADDR"} {
		// register restore through t.Setenv, then clear
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	config.ResetCache()
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetAll(t)

		var cfg pluginConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "jQueryValidationPlugin", cfg.Adaptor)
		assert.Equal(t, "attribute", cfg.Mode)
		assert.False(t, cfg.Methods)
	})

	t.Run("cached per type", func(t *testing.T) {
		unsetAll(t)

		var first pluginConfig
		require.NoError(t, config.Load(&first))
		t.Setenv("UVAL_TEST_ADAPTOR", "Semantic-UI")

		var second pluginConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "jQueryValidationPlugin", second.Adaptor)

		var reloaded pluginConfig
		require.NoError(t, config.ForceReload(&reloaded))
		assert.Equal(t, "Semantic-UI", reloaded.Adaptor)
	})

	t.Run("validation failure", func(t *testing.T) {
		unsetAll(t)
		t.Setenv("UVAL_TEST_MODE", "inline")

		var cfg pluginConfig
		err := config.Load(&cfg)

		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Empty(t, cfg.Adaptor)
	})

	t.Run("missing required variable", func(t *testing.T) {
		unsetAll(t)

		var cfg requiredConfig
		require.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)

		t.Setenv("UVAL_TEST_ADDR", ":9000")
		require.NoError(t, config.ForceReload(&cfg))
		assert.Equal(t, ":9000", cfg.Addr)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[pluginConfig](nil), config.ErrNilPointer)
	})

	t.Run("MustLoad panics on error", func(t *testing.T) {
		unsetAll(t)
		t.Setenv("UVAL_TEST_MODE", "inline")

		assert.Panics(t, func() {
			var cfg pluginConfig
			config.MustLoad(&cfg)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("later files override", func(t *testing.T) {
		unsetAll(t)

		require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

		var cfg pluginConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "Semantic-UI", cfg.Adaptor)
		assert.Equal(t, "script", cfg.Mode)
		assert.Equal(t, "override", cfg.Priority)
		assert.True(t, cfg.Methods)
	})

	t.Run("process environment wins over the first file", func(t *testing.T) {
		unsetAll(t)
		t.Setenv("UVAL_TEST_ADAPTOR", "custom")

		require.NoError(t, config.LoadEnv("testdata/.env.base"))

		var cfg pluginConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "custom", cfg.Adaptor)
	})

	t.Run("missing file", func(t *testing.T) {
		assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
		assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
	})

	t.Run("no files", func(t *testing.T) {
		assert.NoError(t, config.LoadEnv())
	})
}
