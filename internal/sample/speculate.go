package sample

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Viable evaluates many candidate continuations from one shared checkpoint
// and reports, per candidate, whether the parser can still succeed after
// consuming it. Candidates are evaluated concurrently; this is safe because
// State values are immutable snapshots, which is exactly the contract a
// constrained sampler relies on when scoring next tokens.
//
// The only error returned is context cancellation; a candidate that a parser
// rejects is simply reported as not viable.
func Viable(ctx context.Context, p Parser, checkpoint State, candidates [][]byte) ([]bool, error) {
	viable := make([]bool, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, candidate := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := p.Parse(checkpoint, candidate)
			viable[i] = err == nil
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return viable, nil
}
