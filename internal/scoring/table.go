package scoring

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxRangeSpan is the most targets a single FindRange call accepts
const MaxRangeSpan = 500

// FindRange runs the finder for every target in [from, to] and returns the
// results in target order. At most workers searches run at once; workers <= 0
// uses GOMAXPROCS. Cancelling ctx stops searches already in flight.
func FindRange(ctx context.Context, f *Finder, from, to, workers int) ([]Result, error) {
	if from < 0 || to < from {
		return nil, fmt.Errorf("%w: range %d..%d", ErrInvalidTarget, from, to)
	}
	if to-from >= MaxRangeSpan {
		return nil, fmt.Errorf("%w: range %d..%d spans more than %d targets", ErrInvalidTarget, from, to, MaxRangeSpan)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, to-from+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for target := from; target <= to; target++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := f.FindContext(ctx, target)
			if err != nil {
				return fmt.Errorf("target %d: %w", target, err)
			}
			results[target-from] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
