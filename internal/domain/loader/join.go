package loader

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Func is one unit of a page load.
type Func func(ctx context.Context) error

// All runs fns concurrently and waits for every one of them to return.
// The first failure cancels the context shared by the others and is the only
// error reported.
func All(ctx context.Context, fns ...Func) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		g.Go(func() error { return fn(gctx) })
	}
	return g.Wait()
}
