package variables

import (
	"math"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

// boolView is the machinery shared by 0/1 views: a single trailed "fixed"
// flag, a one-value delta, the not-association, and every mutator that a
// 0/1 domain lets us re-express through InstantiateTo. The concrete view
// supplies queries and InstantiateTo through self.
type boolView struct {
	vbase
	store *trail.Store
	reg   *Registry
	self  cp.BoolVar

	fixed          *trail.Stored[bool]
	delta          *oneValueDelta
	reactOnRemoval bool
}

func (b *boolView) init(store *trail.Store, reg *Registry, name string, self cp.BoolVar) {
	b.vbase = vbase{name: name, id: reg.newID()}
	b.store = store
	b.reg = reg
	b.self = self
	b.fixed = trail.NewBool(store, false)
}

func (b *boolView) String() string { return b.name }

func (b *boolView) Value() int {
	b.mustBeInstantiated(b.self.IsInstantiated())
	return b.self.LB()
}

func (b *boolView) DomainSize() int {
	if b.self.IsInstantiated() {
		return 1
	}
	return 2
}

func (b *boolView) NextValue(v int) int {
	if v < 0 && b.self.Contains(0) {
		return 0
	}
	if v <= 0 && b.self.Contains(1) {
		return 1
	}
	return math.MaxInt
}

func (b *boolView) PreviousValue(v int) int {
	if v > 1 && b.self.Contains(1) {
		return 1
	}
	if v >= 1 && b.self.Contains(0) {
		return 0
	}
	return math.MinInt
}

func (b *boolView) RemoveValue(v int, cause cp.Cause, why sat.Reason) (bool, error) {
	switch v {
	case 0:
		return b.self.InstantiateTo(1, cause, why)
	case 1:
		return b.self.InstantiateTo(0, cause, why)
	}
	return false, nil
}

func (b *boolView) RemoveValues(vs []int, cause cp.Cause) (bool, error) {
	changed := false
	if containsValue(vs, 0) {
		c, err := b.self.InstantiateTo(1, cause, sat.Undef())
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	if containsValue(vs, 1) {
		c, err := b.self.InstantiateTo(0, cause, sat.Undef())
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func (b *boolView) RemoveAllValuesBut(vs []int, cause cp.Cause) (bool, error) {
	changed := false
	if !containsValue(vs, 0) {
		c, err := b.self.InstantiateTo(1, cause, sat.Undef())
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	if !containsValue(vs, 1) {
		c, err := b.self.InstantiateTo(0, cause, sat.Undef())
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func (b *boolView) RemoveInterval(from, to int, cause cp.Cause) (bool, error) {
	if from > to || from > 1 || to < 0 {
		return false, nil
	}
	switch {
	case from == 1:
		return b.self.InstantiateTo(0, cause, sat.Undef())
	case to == 0:
		return b.self.InstantiateTo(1, cause, sat.Undef())
	default:
		return false, b.contradiction(b.self, cause, sat.Undef(), msgEmpty)
	}
}

// UpdateLowerBound is a no-op for any bound at or below 0; a bound above 1
// fails inside InstantiateTo. The asymmetry with UpdateBounds is kept as
// is.
func (b *boolView) UpdateLowerBound(v int, cause cp.Cause, why sat.Reason) (bool, error) {
	if v > 0 {
		return b.self.InstantiateTo(v, cause, why)
	}
	return false, nil
}

func (b *boolView) UpdateUpperBound(v int, cause cp.Cause, why sat.Reason) (bool, error) {
	if v < 1 {
		return b.self.InstantiateTo(v, cause, why)
	}
	return false, nil
}

func (b *boolView) UpdateBounds(lb, ub int, cause cp.Cause) (bool, error) {
	if lb > 1 || ub < 0 {
		return false, b.contradiction(b.self, cause, sat.Undef(), msgEmpty)
	}
	changed := false
	if lb == 1 {
		c, err := b.self.InstantiateTo(1, cause, sat.Undef())
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	if ub == 0 {
		c, err := b.self.InstantiateTo(0, cause, sat.Undef())
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// NotifyChange intercepts the base variable's notification. The view only
// propagates onward when the base change actually fixed the view, and the
// trailed flag makes the transition fire at most once per backtracking
// segment.
func (b *boolView) NotifyChange(_ cp.IntVar, e cp.Event, cause cp.Cause) error {
	if b.fixed.Get() {
		return nil
	}
	if !b.self.IsInstantiated() {
		return nil
	}
	b.fixed.Set(true)
	if b.reactOnRemoval {
		b.delta.add(1-b.self.Value(), cause)
	}
	return b.notify(b.self, e, cause)
}

func (b *boolView) CreateDelta() {
	if b.reactOnRemoval {
		return
	}
	b.delta = newOneValueDelta(b.store)
	b.reactOnRemoval = true
}

func (b *boolView) MonitorDelta(cause cp.Cause) cp.DeltaMonitor {
	b.CreateDelta()
	return newOneValueDeltaMonitor(b.delta, cause)
}

func (b *boolView) Not() cp.BoolVar {
	if nb, ok := b.reg.notOf(b.self); ok {
		return nb
	}
	nb := newNotView(b.store, b.reg, b.self)
	b.reg.pairNot(b.self, nb)
	return nb
}

func containsValue(vs []int, v int) bool {
	for _, w := range vs {
		if w == v {
			return true
		}
	}
	return false
}
