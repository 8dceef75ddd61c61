package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/a-peyrard/mcpsample/config"
	"github.com/a-peyrard/mcpsample/di"
	"github.com/a-peyrard/mcpsample/logging"
	"github.com/a-peyrard/mcpsample/playground/app/greeting"
	"github.com/a-peyrard/mcpsample/playground/app/settings"
	"github.com/a-peyrard/mcpsample/runner"
)

func main() {
	ctx := runner.WithSyscallKillableContext(context.Background())
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil && !errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintf(os.Stderr, "error running app: %v\n", err)
		os.Exit(1)
	}
}

// run greets the given names on stdout, or the configured default name when
// there are none. Logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	cfg, err := config.Load[settings.Settings](config.WithEnvPrefix(settings.EnvPrefix))
	if err != nil {
		return fmt.Errorf("unable to load settings: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(stderr, level, cfg.Log.JSON)

	resolver := di.New(di.WithLogger(logger))
	defer func() {
		if closeErr := resolver.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	names := args
	if len(names) == 0 {
		names = []string{cfg.Greeting.DefaultName}
	}
	RegisterComponents(resolver, cfg, logger, &greeting.Target{Names: names, Out: stdout})

	logger.Debug().Strs("names", names).Msg("starting playground")

	if err := runner.Run(ctx, resolver); err != nil {
		return err
	}

	logger.Debug().Msg("bye.")
	return nil
}
