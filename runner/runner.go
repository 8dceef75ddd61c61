package runner

import (
	"context"
	"fmt"

	"github.com/a-peyrard/mcpsample/di"
	"golang.org/x/sync/errgroup"
)

// Runnable represents a component that can be run with a context.
type Runnable interface {
	Run(ctx context.Context) error
}

// RunnableFunc adapts a plain function to the Runnable interface.
type RunnableFunc func(ctx context.Context) error

func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Run resolves every Runnable registered in the resolver and runs them with RunAll.
func Run(ctx context.Context, resolver *di.Resolver) error {
	runnables, err := di.ResolveAll[Runnable](resolver)
	if err != nil {
		return fmt.Errorf("unable to resolve runnables:\n\t%w", err)
	}
	return RunAll(ctx, runnables...)
}

// RunAll runs all the provided runnables concurrently and waits for all of them to finish.
//
// This method is blocking. The first runnable returning an error cancels the
// context given to the others, and that error is returned.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)

	for _, runnable := range runnables {
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}
