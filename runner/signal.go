package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSyscallKillableContext returns a context cancelled on SIGINT or SIGTERM.
func WithSyscallKillableContext(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}
