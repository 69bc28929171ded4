// Package cp defines the variable, event, and failure contracts shared by
// stored variables, views, and propagators. Implementations live in
// internal/variables; model construction goes through pkg/cp/model.
package cp

import (
	"fmt"

	"github.com/Xabibax/choco-solver/pkg/sat"
)

// Cause identifies what performed a domain modification: a propagator, a
// view forwarding on behalf of a propagator, or a search decision. It is
// used to attribute failures and to build reasons.
type Cause interface {
	fmt.Stringer
}

type nullCause struct{}

func (nullCause) String() string { return "null" }

// Null is the anonymous cause, for modifications made outside of any
// propagator (e.g. model setup).
var Null Cause = nullCause{}

// Event describes how a domain narrowed. Events compose as a bitmask:
// a bound update that also instantiates carries both flags.
type Event uint8

const (
	VoidEvent Event = 0
	// Remove is the removal of an interior value.
	Remove Event = 1 << iota
	// IncLow is a lower bound increase.
	IncLow
	// DecUpp is an upper bound decrease.
	DecUpp
	// Instantiate is a domain narrowing to a single value.
	Instantiate

	// Bound groups both bound updates.
	Bound = IncLow | DecUpp
)

// Overlaps reports whether e carries any of the events in mask.
func (e Event) Overlaps(mask Event) bool {
	return e&mask != 0
}

// Ternary is the truth value of a boolean variable that may not be fixed
// yet.
type Ternary uint8

const (
	Undefined Ternary = iota
	True
	False
)

func (t Ternary) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undefined"
	}
}

// Listener is anything notified when a variable's domain actually
// narrows: propagator schedulers and views. Dispatch is synchronous and
// exactly once per distinct event, on the call stack of the mutator; a
// listener must not re-enter a mutator of the same variable before the
// notification it is handling has returned.
type Listener interface {
	NotifyChange(v IntVar, e Event, cause Cause) error
}

// DeltaMonitor iterates the values removed from a variable since the
// previous call, skipping removals performed by the monitor's own cause.
// Monitors reset lazily when the search moves (new world or backtrack).
type DeltaMonitor interface {
	ForEachRemoved(fn func(v int) error) error
}

// Variable is the part of the contract common to stored variables and
// views.
type Variable interface {
	Name() string
	// ID is a handle unique within one model, used by registries that
	// associate variables without holding mutual references.
	ID() int
	IsInstantiated() bool
	// Subscribe registers a listener for this variable's events.
	Subscribe(l Listener)
	// CreateDelta materializes the removal log. Before the first call a
	// shared no-op sentinel stands in and removals are not recorded.
	CreateDelta()
	// MonitorDelta creates the delta if needed and returns a monitor
	// attributed to cause.
	MonitorDelta(cause Cause) DeltaMonitor
}

// IntVar is an integer variable, stored or viewed. Mutators report
// whether the domain actually changed and fail with *Contradiction on a
// domain wipe-out. The reason parameter carries the literals justifying
// the modification when explanations are tracked; pass sat.Undef()
// otherwise.
type IntVar interface {
	Variable

	Contains(v int) bool
	IsInstantiatedTo(v int) bool
	// Value panics when the variable is not instantiated; callers must
	// check IsInstantiated first.
	Value() int
	LB() int
	UB() int
	DomainSize() int
	// NextValue returns the smallest domain value strictly greater than
	// v, or math.MaxInt if none.
	NextValue(v int) int
	// PreviousValue returns the largest domain value strictly smaller
	// than v, or math.MinInt if none.
	PreviousValue(v int) int

	RemoveValue(v int, cause Cause, why sat.Reason) (bool, error)
	RemoveValues(vs []int, cause Cause) (bool, error)
	RemoveAllValuesBut(vs []int, cause Cause) (bool, error)
	RemoveInterval(from, to int, cause Cause) (bool, error)
	InstantiateTo(v int, cause Cause, why sat.Reason) (bool, error)
	UpdateLowerBound(v int, cause Cause, why sat.Reason) (bool, error)
	UpdateUpperBound(v int, cause Cause, why sat.Reason) (bool, error)
	UpdateBounds(lb, ub int, cause Cause) (bool, error)
}

// BoolVar is a 0/1 variable, stored or viewed.
type BoolVar interface {
	IntVar
	BoolValue() Ternary
	// Not returns the complementary variable, building and caching it on
	// first use. The association is symmetric: b.Not().Not() is b.
	Not() BoolVar
}

// Propagator is the narrow constraint-side contract the core needs: a
// cause identity, the variables it observes, and a filtering entry point
// that fails with *Contradiction on inconsistency.
type Propagator interface {
	Cause
	Variables() []IntVar
	Propagate() error
}
