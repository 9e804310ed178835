package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration values keyed by type name.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Load parses environment variables into v and validates the result with the
// struct's validate tags. Each configuration type is parsed once; later calls
// receive the cached copy.
//
// The default .env file is loaded on first use when present.
//
//	type Config struct {
//		Adaptor string `env:"UVAL_ADAPTOR" envDefault:"jQueryValidationPlugin" validate:"required"`
//		Mode    string `env:"UVAL_PLUGIN_MODE" envDefault:"attribute" validate:"oneof=attribute script"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// the .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	cached, ok := globalCache.values[typeName]
	globalCache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := parse(&parsed); err != nil {
		return err
	}
	globalCache.values[typeName] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ForceReload drops the cached value of T and loads it again from the
// current environment.
func ForceReload[T any](v *T) error {
	globalCache.mu.Lock()
	delete(globalCache.values, getTypeName[T]())
	globalCache.mu.Unlock()
	return Load(v)
}

// ResetCache clears every cached configuration.
func ResetCache() {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	globalCache.values = make(map[string]any)
}

// LoadEnv loads one or more .env files into the process environment.
// Values from later files override earlier ones. Variables already set in
// the environment are not overwritten by the first file.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths[0]); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	if len(paths) > 1 {
		if err := godotenv.Overload(paths[1:]...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

func parse[T any](v *T) error {
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(v); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// getTypeName returns a string identifier for the generic type T
func getTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
