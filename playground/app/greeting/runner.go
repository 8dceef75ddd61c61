package greeting

import (
	"context"
	"fmt"
	"io"

	"github.com/a-peyrard/mcpsample/runner"
	"github.com/a-peyrard/mcpsample/sample"
	"github.com/rs/zerolog"
)

// Target lists who to greet and where to write the greetings.
type Target struct {
	Names []string
	Out   io.Writer
}

// NewGreetingRunner creates a Runnable writing one greeting per target name.
func NewGreetingRunner(cfg sample.Config, logger *zerolog.Logger, target *Target) runner.Runnable {
	return runner.RunnableFunc(func(ctx context.Context) error {
		return GreetAll(ctx, cfg, logger, target)
	})
}

// GreetAll writes sample.Greet(name) on its own line for every name, within
// the config timeout. A write still pending at the deadline is abandoned and
// the context error returned.
func GreetAll(ctx context.Context, cfg sample.Config, logger *zerolog.Logger, target *Target) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeoutDuration())
		defer cancel()
	}

	if cfg.Debug {
		logger.Debug().Object("config", cfg).Msg("greeting with sample config")
	}

	for i, name := range target.Names {
		stop := func() error {
			logger.Warn().
				Int("greeted", i).
				Int("remaining", len(target.Names)-i).
				Msg("context done, stopping greetings")
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return stop()
		default:
		}

		// buffered so an abandoned write can still complete
		written := make(chan error, 1)
		go func() {
			_, err := fmt.Fprintln(target.Out, sample.Greet(name))
			written <- err
		}()

		select {
		case <-ctx.Done():
			return stop()
		case err := <-written:
			if err != nil {
				return fmt.Errorf("unable to write greeting for %q: %w", name, err)
			}
		}
		logger.Info().Str("name", name).Msg("greeted")
	}

	return nil
}
