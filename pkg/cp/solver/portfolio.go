package solver

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/cp/model"
)

// Builder constructs one worker's independent copy of the problem.
// Workers share nothing; seed is the worker index, for builders that want
// to vary the branching strategy per worker.
type Builder func(seed int) (*model.Model, []cp.Propagator, []Option)

// errSolved cancels the remaining workers once one of them has a
// solution.
var errSolved = errors.New("solved")

// Portfolio runs n independent searches concurrently and returns the
// first solution found. A worker that proves unsatisfiability settles the
// answer for everyone, since the workers solve copies of the same
// problem.
func Portfolio(ctx context.Context, n int, build Builder) (cp.Solution, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make(chan cp.Solution, n)

	for i := 0; i < n; i++ {
		seed := i
		g.Go(func() error {
			m, props, opts := build(seed)
			sol, err := New(m, props, opts...).Solve(ctx)
			switch {
			case err == nil:
				results <- sol
				return errSolved
			case errors.Is(err, ErrIncomplete):
				// Cancelled by a peer, or hit its own limit.
				return nil
			default:
				return err
			}
		})
	}

	err := g.Wait()
	select {
	case sol := <-results:
		return sol, nil
	default:
	}
	if err != nil && !errors.Is(err, errSolved) {
		return nil, err
	}
	return nil, ErrIncomplete
}
