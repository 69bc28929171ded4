// Package solver wires a model and its propagators to the search loop.
package solver

import (
	"context"
	"time"

	"github.com/Xabibax/choco-solver/internal/search"
	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/cp/model"
)

// ErrIncomplete is returned when a limit or cancellation stopped the
// search before it could decide satisfiability.
var ErrIncomplete = search.ErrIncomplete

// ErrNoSolution is returned when the search space was exhausted without
// finding a solution.
var ErrNoSolution = search.ErrNoSolution

// Solver runs a depth-first search over a model's variables. Solve can be
// called again after a limit stopped it; the store is back at the root,
// so the search restarts from scratch (with the nogoods it learned, when
// learning is on).
type Solver struct {
	model    *model.Model
	searcher *search.Searcher

	monitor   cp.Monitor
	strategy  cp.Strategy
	nodeLimit int64
	timeLimit time.Duration
	learning  bool
}

type Option func(s *Solver)

func WithMonitor(m cp.Monitor) Option {
	return func(s *Solver) { s.monitor = m }
}

func WithStrategy(st cp.Strategy) Option {
	return func(s *Solver) { s.strategy = st }
}

// WithNodeLimit bounds the number of decisions opened.
func WithNodeLimit(n int64) Option {
	return func(s *Solver) { s.nodeLimit = n }
}

// WithTimeLimit bounds wall-clock time, checked between propagation
// rounds.
func WithTimeLimit(d time.Duration) Option {
	return func(s *Solver) { s.timeLimit = d }
}

// WithLearning records failed decision sequences as nogoods and prunes
// branches that repeat one.
func WithLearning() Option {
	return func(s *Solver) { s.learning = true }
}

// New builds a Solver for m under the given propagators. The propagators
// subscribe to their variables here, once, so a Solver must not be
// created twice over the same model.
func New(m *model.Model, props []cp.Propagator, options ...Option) *Solver {
	s := &Solver{
		model:    m,
		monitor:  cp.NopMonitor{},
		strategy: cp.InputOrderLB{},
	}
	for _, option := range options {
		option(s)
	}

	searchOpts := []search.Option{
		search.WithMonitor(s.monitor),
		search.WithStrategy(s.strategy),
	}
	if s.nodeLimit > 0 {
		searchOpts = append(searchOpts, search.WithNodeLimit(s.nodeLimit))
	}
	if s.timeLimit > 0 {
		searchOpts = append(searchOpts, search.WithTimeLimit(s.timeLimit))
	}
	if s.learning {
		searchOpts = append(searchOpts, search.WithLearning())
	}
	s.searcher = search.New(m.Store(), m.Vars(), props, searchOpts...)
	return s
}

// Solve searches for a solution. On success the model's store is left at
// the solution's world; with ErrIncomplete the best solution found so far
// (possibly nil) is returned alongside the error.
func (s *Solver) Solve(ctx context.Context) (cp.Solution, error) {
	return s.searcher.Solve(ctx)
}

// Nodes returns the number of decisions opened so far.
func (s *Solver) Nodes() int64 {
	return s.searcher.Nodes()
}

// Learned returns the number of nogood clauses recorded, or 0 when
// learning is off.
func (s *Solver) Learned() int {
	return s.searcher.Learned()
}
