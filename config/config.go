// Package config loads typed settings from environment variables using Viper.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

type (
	// Option customizes Load.
	Option func(opts *loadOptions)

	loadOptions struct {
		prefix string
	}

	// WithDefault is implemented by settings structs filling their own
	// defaults once the environment has been decoded.
	WithDefault interface {
		ApplyDefault()
	}
)

// WithEnvPrefix sets the prefix shared by every environment variable, e.g.
// "SAMPLE" binds field Log.Level to SAMPLE_LOG_LEVEL.
func WithEnvPrefix(prefix string) Option {
	return func(opts *loadOptions) {
		opts.prefix = prefix
	}
}

// Load decodes a T from the environment.
//
// Nested struct pointers are always allocated, and ApplyDefault is called on
// every struct implementing WithDefault, outermost first.
func Load[T any](opts ...Option) (*T, error) {
	options := &loadOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var settings T
	typ := reflect.TypeOf(settings)
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unable to load config into %T: a struct is required", settings)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindEnvs(v, options.prefix, typ); err != nil {
		return nil, fmt.Errorf("unable to bind environment for %T: %w", settings, err)
	}

	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	applyDefaults(reflect.ValueOf(&settings))

	return &settings, nil
}
