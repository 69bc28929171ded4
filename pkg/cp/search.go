package cp

import (
	"fmt"
	"io"
)

// Solution is a snapshot of the instantiated variables at the moment a
// leaf was reached, keyed by variable name.
type Solution map[string]int

// Snapshot captures the instantiated variables among vars.
func Snapshot(vars []IntVar) Solution {
	sol := make(Solution, len(vars))
	for _, v := range vars {
		if v.IsInstantiated() {
			sol[v.Name()] = v.Value()
		}
	}
	return sol
}

// Monitor observes the solve loop. All callbacks run synchronously on the
// search goroutine, between propagation rounds.
type Monitor interface {
	OnDecision(v IntVar, value int, world int)
	OnContradiction(err error)
	OnBacktrack(world int)
	// OnSolution fires for every solution found; the last call before
	// Solve returns is the best-solution snapshot, delivered on normal
	// completion and before a limit or cancellation unwinds the search.
	OnSolution(sol Solution)
}

// NopMonitor is the default Monitor.
type NopMonitor struct{}

func (NopMonitor) OnDecision(IntVar, int, int) {}
func (NopMonitor) OnContradiction(error)       {}
func (NopMonitor) OnBacktrack(int)             {}
func (NopMonitor) OnSolution(Solution)         {}

// LoggingMonitor writes a line per search step.
type LoggingMonitor struct {
	Writer io.Writer
}

func (m LoggingMonitor) OnDecision(v IntVar, value int, world int) {
	fmt.Fprintf(m.Writer, "[%d] decide %s = %d\n", world, v.Name(), value)
}

func (m LoggingMonitor) OnContradiction(err error) {
	fmt.Fprintf(m.Writer, "fail: %v\n", err)
}

func (m LoggingMonitor) OnBacktrack(world int) {
	fmt.Fprintf(m.Writer, "backtrack to %d\n", world)
}

func (m LoggingMonitor) OnSolution(sol Solution) {
	fmt.Fprintf(m.Writer, "solution: %v\n", sol)
}

// Strategy picks the next decision. It returns false once every variable
// is instantiated, which makes the current node a solution.
type Strategy interface {
	NextDecision(vars []IntVar) (IntVar, int, bool)
}

// InputOrderLB branches on the first uninstantiated variable in input
// order, trying its lower bound first.
type InputOrderLB struct{}

func (InputOrderLB) NextDecision(vars []IntVar) (IntVar, int, bool) {
	for _, v := range vars {
		if !v.IsInstantiated() {
			return v, v.LB(), true
		}
	}
	return nil, 0, false
}
