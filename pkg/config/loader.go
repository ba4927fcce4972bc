package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache keeps one parsed copy per configuration type and prefix.
type cache struct {
	mu     sync.Mutex
	values map[string]any
}

var (
	loaded = &cache{values: make(map[string]any)}

	dotenvOnce sync.Once
)

type loadOptions struct {
	prefix   string
	envFiles []string
	noCache  bool
}

// Option configures Load.
type Option func(*loadOptions)

// WithPrefix is prepended to every env tag of the struct, so
// `env:"ADDR"` with prefix "SCHEMAKIT_" reads SCHEMAKIT_ADDR.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given .env files before parsing. Unlike the
// default .env, these files must exist. Variables already set in the
// process environment win.
func WithEnvFiles(paths ...string) Option {
	return func(o *loadOptions) {
		o.envFiles = append(o.envFiles, paths...)
	}
}

// WithoutCache parses the environment even when the type was loaded before
// and does not store the result.
func WithoutCache() Option {
	return func(o *loadOptions) {
		o.noCache = true
	}
}

// Load parses environment variables into v using `env` and `envDefault` tags.
// A .env file in the working directory is read once per process, if present.
// Each type and prefix pair is parsed once; later calls get the cached copy.
//
//	type ServerConfig struct {
//		Addr      string `env:"ADDR" envDefault:":8080"`
//		SchemaDir string `env:"SCHEMA_DIR,required"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg, config.WithPrefix("SCHEMAKIT_")); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	dotenvOnce.Do(func() {
		// A missing .env file is fine.
		_ = godotenv.Load()
	})
	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	if o.noCache {
		return parse(v, o.prefix)
	}

	key := cacheKey[T](o.prefix)
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	if err := parse(v, o.prefix); err != nil {
		return err
	}
	loaded.values[key] = *v
	return nil
}

// MustLoad is Load for configuration the program cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration.
func Reset() {
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	clear(loaded.values)
}

func parse[T any](v *T, prefix string) error {
	if err := env.ParseWithOptions(v, env.Options{Prefix: prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func cacheKey[T any](prefix string) string {
	return prefix + "|" + reflect.TypeFor[T]().String()
}
