package capgains

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ResolveAll computes the taxes of independent transaction lists in parallel,
// using at most workers goroutines (one per CPU when workers <= 0).
// results[i] holds the taxes of streams[i].
//
// taxer must be safe for concurrent use; each list is still folded
// sequentially with its own state.
func ResolveAll(ctx context.Context, taxer Taxer, streams [][]Transaction, workers int) ([][]Tax, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([][]Tax, len(streams))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, txs := range streams {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = taxer.Taxes(txs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
