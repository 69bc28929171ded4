// Package search implements the solve loop: decisions, propagation to
// fixpoint, backtracking on contradiction, limits observed at decision
// boundaries, and optional nogood recording.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/go-air/gini/z"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

// ErrIncomplete is returned when a limit or cancellation stopped the
// search before it could decide satisfiability. Limits are observed only
// at decision boundaries, never by interrupting a running propagator.
var ErrIncomplete = errors.New("cancelled before a solution could be found")

// ErrNoSolution is returned when the search space was exhausted.
var ErrNoSolution = errors.New("constraints not satisfiable")

// Searcher drives a depth-first search over the given variables: a
// decision opens a world, propagation runs to fixpoint, and a
// contradiction unwinds the store and refutes the failed decision.
type Searcher struct {
	store    *trail.Store
	vars     []cp.IntVar
	props    []cp.Propagator
	strategy cp.Strategy
	monitor  cp.Monitor
	engine   *engine

	nodeLimit int64
	timeLimit time.Duration
	learn     *recorder

	nodes int64
	best  cp.Solution
}

type Option func(s *Searcher)

func WithMonitor(m cp.Monitor) Option {
	return func(s *Searcher) { s.monitor = m }
}

func WithStrategy(st cp.Strategy) Option {
	return func(s *Searcher) { s.strategy = st }
}

// WithNodeLimit bounds the number of decisions opened.
func WithNodeLimit(n int64) Option {
	return func(s *Searcher) { s.nodeLimit = n }
}

// WithTimeLimit bounds wall-clock time, checked between propagation
// rounds.
func WithTimeLimit(d time.Duration) Option {
	return func(s *Searcher) { s.timeLimit = d }
}

// WithLearning enables nogood recording of failed decision sequences.
func WithLearning() Option {
	return func(s *Searcher) { s.learn = newRecorder() }
}

func New(store *trail.Store, vars []cp.IntVar, props []cp.Propagator, options ...Option) *Searcher {
	s := &Searcher{
		store:    store,
		vars:     vars,
		props:    props,
		strategy: cp.InputOrderLB{},
		monitor:  cp.NopMonitor{},
	}
	for _, option := range options {
		option(s)
	}
	s.engine = newEngine(props)
	return s
}

// Best returns the last solution snapshot, if any. It is the value to
// report when Solve came back with ErrIncomplete.
func (s *Searcher) Best() cp.Solution {
	return s.best
}

// Nodes returns the number of decisions opened so far.
func (s *Searcher) Nodes() int64 {
	return s.nodes
}

// Learned returns the number of nogood clauses recorded, or 0 when
// learning is disabled.
func (s *Searcher) Learned() int {
	if s.learn == nil {
		return 0
	}
	return s.learn.learned
}

// open is a decision still active on the current branch.
type open struct {
	v     cp.IntVar
	value int
	world int
	lit   z.Lit
}

func litsOf(stack []open, cur open) []z.Lit {
	lits := make([]z.Lit, 0, len(stack)+1)
	for _, o := range stack {
		lits = append(lits, o.lit)
	}
	return append(lits, cur.lit)
}

// Solve runs the search until a solution, exhaustion, or a limit. On
// success the store is left at the solution's world so the caller can
// inspect variables; on failure or limit it is unwound to the root.
func (s *Searcher) Solve(ctx context.Context) (cp.Solution, error) {
	var deadline time.Time
	if s.timeLimit > 0 {
		deadline = time.Now().Add(s.timeLimit)
	}

	if err := s.engine.propagateAll(); err != nil {
		if !cp.IsContradiction(err) {
			return nil, err
		}
		s.monitor.OnContradiction(err)
		return nil, ErrNoSolution
	}

	var stack []open
	for {
		if err := s.checkLimits(ctx, deadline); err != nil {
			s.store.Backtrack(0)
			s.monitor.OnBacktrack(0)
			if s.best != nil {
				s.monitor.OnSolution(s.best)
			}
			return s.best, err
		}

		v, val, more := s.strategy.NextDecision(s.vars)
		if !more {
			sol := cp.Snapshot(s.vars)
			s.best = sol
			s.monitor.OnSolution(sol)
			return sol, nil
		}

		w := s.store.NewWorld()
		s.nodes++
		dec := &decision{v: v, value: val}
		s.monitor.OnDecision(v, val, w)
		cur := open{v: v, value: val, world: w}
		if s.learn != nil {
			cur.lit = s.learn.litOf(v, val)
		}

		_, err := v.InstantiateTo(val, dec, sat.Undef())
		if err == nil {
			err = s.engine.propagate()
		}
		if err == nil && s.learn != nil && s.learn.pruned(litsOf(stack, cur)) {
			err = &cp.Contradiction{Variable: v, Cause: dec, Message: "known dead decision prefix"}
		}
		if err == nil {
			stack = append(stack, cur)
			continue
		}
		if !cp.IsContradiction(err) {
			return nil, err
		}
		s.monitor.OnContradiction(err)

		// Unwind: refute the failed decision in its parent world; if the
		// refutation fails too, the parent decision is the one to refute.
		for {
			s.store.Backtrack(cur.world)
			s.monitor.OnBacktrack(cur.world)
			if s.learn != nil {
				s.learn.recordFailure(litsOf(stack, cur))
			}
			_, rerr := cur.v.RemoveValue(cur.value, cp.Null, sat.Undef())
			if rerr == nil {
				rerr = s.engine.propagate()
			}
			if rerr == nil {
				break
			}
			if !cp.IsContradiction(rerr) {
				return nil, rerr
			}
			s.monitor.OnContradiction(rerr)
			if len(stack) == 0 {
				s.store.Backtrack(0)
				return nil, ErrNoSolution
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}
}

func (s *Searcher) checkLimits(ctx context.Context, deadline time.Time) error {
	if ctx.Err() != nil {
		return ErrIncomplete
	}
	if s.nodeLimit > 0 && s.nodes >= s.nodeLimit {
		return ErrIncomplete
	}
	if !deadline.IsZero() && time.Now().After(deadline) {
		return ErrIncomplete
	}
	return nil
}
