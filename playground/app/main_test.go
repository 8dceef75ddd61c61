package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-peyrard/mcpsample/di"
	"github.com/a-peyrard/mcpsample/playground/app/greeting"
	"github.com/a-peyrard/mcpsample/playground/app/settings"
	"github.com/a-peyrard/mcpsample/runner"
	"github.com/a-peyrard/mcpsample/sample"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("it should greet every name given as argument", func(t *testing.T) {
		// GIVEN
		var stdout, stderr bytes.Buffer

		// WHEN
		err := run(context.Background(), []string{"Alice", "Bob"}, &stdout, &stderr)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "Hello, Alice!\nHello, Bob!\n", stdout.String())
	})

	t.Run("it should greet the world by default", func(t *testing.T) {
		// GIVEN
		var stdout, stderr bytes.Buffer

		// WHEN
		err := run(context.Background(), nil, &stdout, &stderr)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!\n", stdout.String())
	})

	t.Run("it should use the default name from the environment", func(t *testing.T) {
		// GIVEN
		t.Setenv("SAMPLE_GREETING_DEFAULT_NAME", "gopher")
		var stdout, stderr bytes.Buffer

		// WHEN
		err := run(context.Background(), nil, &stdout, &stderr)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "Hello, gopher!\n", stdout.String())
	})

	t.Run("it should log as json at the configured level", func(t *testing.T) {
		// GIVEN
		t.Setenv("SAMPLE_LOG_LEVEL", "debug")
		t.Setenv("SAMPLE_LOG_JSON", "true")
		var stdout, stderr bytes.Buffer

		// WHEN
		err := run(context.Background(), []string{"World"}, &stdout, &stderr)

		// THEN
		require.NoError(t, err)
		assert.Contains(t, stderr.String(), `"level":"debug"`)
		assert.Contains(t, stderr.String(), `"apiEndpoint":"/mcp"`)
		assert.Contains(t, stderr.String(), "starting playground")
	})

	t.Run("it should fail on an invalid log level", func(t *testing.T) {
		// GIVEN
		t.Setenv("SAMPLE_LOG_LEVEL", "chatty")
		var stdout, stderr bytes.Buffer

		// WHEN
		err := run(context.Background(), []string{"World"}, &stdout, &stderr)

		// THEN
		require.Error(t, err)
		assert.Empty(t, stdout.String())
	})

	t.Run("it should stop when the context is cancelled", func(t *testing.T) {
		// GIVEN
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var stdout, stderr bytes.Buffer

		// WHEN
		err := run(ctx, []string{"World"}, &stdout, &stderr)

		// THEN
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, stdout.String())
	})
}

func TestRegisterComponents(t *testing.T) {
	t.Run("it should inject the sample config into the greeting runner", func(t *testing.T) {
		// GIVEN
		var out bytes.Buffer
		logger := zerolog.Nop()
		resolver := di.New()
		cfg := &settings.Settings{Log: &settings.LogSettings{}, Greeting: &settings.GreetingSettings{}}

		// WHEN
		RegisterComponents(resolver, cfg, &logger, &greeting.Target{Names: []string{"DI"}, Out: &out})

		// THEN
		sampleCfg, err := di.ResolveNamed[sample.Config](resolver, "sample.config")
		require.NoError(t, err)
		assert.Equal(t, sample.DefaultConfig(), sampleCfg)

		runnables, err := di.ResolveAll[runner.Runnable](resolver)
		require.NoError(t, err)
		require.Len(t, runnables, 1)
		require.NoError(t, runnables[0].Run(context.Background()))
		assert.Equal(t, "Hello, DI!\n", out.String())
	})
}
