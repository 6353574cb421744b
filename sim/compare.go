package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy"
)

// Compare replays the same trace against several policies and returns the
// results keyed by policy name. Every policy gets its own fresh cache state;
// nothing is shared between runs except the read-only trace, so the runs
// execute concurrently.
//
// A run is bounded by the trace length and not cancellable mid-flight;
// ctx is only consulted before each run starts.
func Compare[P comparable](ctx context.Context, trace []P, capacity int, policies ...policy.Policy[P]) (map[string]Result, error) {
	if len(policies) == 0 {
		return nil, ErrNoPolicy
	}

	results := make([]Result, len(policies))
	g, ctx := errgroup.WithContext(ctx)
	for i, pol := range policies {
		i, pol := i, pol
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Run(trace, Options[P]{Capacity: capacity, Policy: pol})
			if err != nil {
				return fmt.Errorf("policy %s: %w", pol.Name(), err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]Result, len(policies))
	for i, pol := range policies {
		out[pol.Name()] = results[i]
	}
	return out, nil
}
