package variables

import (
	"fmt"
	"math"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
)

// affineView reinterprets a base variable through v = x + c or v = c - x.
// The two tags cover the offset, negation, and identity transforms; the
// view stores no bounds of its own, so every query is recomputed from x on
// each call.
type affineView struct {
	vbase
	x   cp.IntVar
	neg bool
	c   int
}

func NewOffsetView(reg *Registry, x cp.IntVar, c int) cp.IntVar {
	v := &affineView{
		vbase: vbase{name: fmt.Sprintf("(%s + %d)", x.Name(), c), id: reg.newID()},
		x:     x,
		c:     c,
	}
	x.Subscribe(v)
	return v
}

func NewMinusView(reg *Registry, x cp.IntVar) cp.IntVar {
	v := &affineView{
		vbase: vbase{name: "-(" + x.Name() + ")", id: reg.newID()},
		x:     x,
		neg:   true,
	}
	x.Subscribe(v)
	return v
}

func (v *affineView) String() string { return v.name }

// inv maps a view value back onto the base variable.
func (v *affineView) inv(w int) int {
	if v.neg {
		return v.c - w
	}
	return w - v.c
}

func (v *affineView) fwd(w int) int {
	if v.neg {
		return v.c - w
	}
	return w + v.c
}

func (v *affineView) Contains(w int) bool { return v.x.Contains(v.inv(w)) }

func (v *affineView) IsInstantiated() bool { return v.x.IsInstantiated() }

func (v *affineView) IsInstantiatedTo(w int) bool { return v.x.IsInstantiatedTo(v.inv(w)) }

func (v *affineView) Value() int {
	v.mustBeInstantiated(v.x.IsInstantiated())
	return v.fwd(v.x.Value())
}

func (v *affineView) LB() int {
	if v.neg {
		return v.c - v.x.UB()
	}
	return v.x.LB() + v.c
}

func (v *affineView) UB() int {
	if v.neg {
		return v.c - v.x.LB()
	}
	return v.x.UB() + v.c
}

func (v *affineView) DomainSize() int { return v.x.DomainSize() }

func (v *affineView) NextValue(w int) int {
	if v.neg {
		p := v.x.PreviousValue(v.c - w)
		if p == math.MinInt {
			return math.MaxInt
		}
		return v.c - p
	}
	n := v.x.NextValue(w - v.c)
	if n == math.MaxInt {
		return math.MaxInt
	}
	return n + v.c
}

func (v *affineView) PreviousValue(w int) int {
	if v.neg {
		n := v.x.NextValue(v.c - w)
		if n == math.MaxInt {
			return math.MinInt
		}
		return v.c - n
	}
	p := v.x.PreviousValue(w - v.c)
	if p == math.MinInt {
		return math.MinInt
	}
	return p + v.c
}

func (v *affineView) RemoveValue(w int, cause cp.Cause, why sat.Reason) (bool, error) {
	return v.x.RemoveValue(v.inv(w), cause, why)
}

func (v *affineView) RemoveValues(vs []int, cause cp.Cause) (bool, error) {
	mapped := make([]int, len(vs))
	for i, w := range vs {
		mapped[i] = v.inv(w)
	}
	return v.x.RemoveValues(mapped, cause)
}

func (v *affineView) RemoveAllValuesBut(vs []int, cause cp.Cause) (bool, error) {
	mapped := make([]int, len(vs))
	for i, w := range vs {
		mapped[i] = v.inv(w)
	}
	return v.x.RemoveAllValuesBut(mapped, cause)
}

func (v *affineView) RemoveInterval(from, to int, cause cp.Cause) (bool, error) {
	if v.neg {
		return v.x.RemoveInterval(v.c-to, v.c-from, cause)
	}
	return v.x.RemoveInterval(from-v.c, to-v.c, cause)
}

func (v *affineView) InstantiateTo(w int, cause cp.Cause, why sat.Reason) (bool, error) {
	return v.x.InstantiateTo(v.inv(w), cause, why)
}

func (v *affineView) UpdateLowerBound(w int, cause cp.Cause, why sat.Reason) (bool, error) {
	if v.neg {
		return v.x.UpdateUpperBound(v.c-w, cause, why)
	}
	return v.x.UpdateLowerBound(w-v.c, cause, why)
}

func (v *affineView) UpdateUpperBound(w int, cause cp.Cause, why sat.Reason) (bool, error) {
	if v.neg {
		return v.x.UpdateLowerBound(v.c-w, cause, why)
	}
	return v.x.UpdateUpperBound(w-v.c, cause, why)
}

func (v *affineView) UpdateBounds(lb, ub int, cause cp.Cause) (bool, error) {
	if v.neg {
		return v.x.UpdateBounds(v.c-ub, v.c-lb, cause)
	}
	return v.x.UpdateBounds(lb-v.c, ub-v.c, cause)
}

// NotifyChange re-fires the base variable's event to the view's own
// listeners. A negated view sees bound updates mirrored.
func (v *affineView) NotifyChange(_ cp.IntVar, e cp.Event, cause cp.Cause) error {
	if v.neg {
		swapped := e &^ cp.Bound
		if e.Overlaps(cp.IncLow) {
			swapped |= cp.DecUpp
		}
		if e.Overlaps(cp.DecUpp) {
			swapped |= cp.IncLow
		}
		e = swapped
	}
	return v.notify(v, e, cause)
}

func (v *affineView) CreateDelta() { v.x.CreateDelta() }

// MonitorDelta reports the base variable's removals translated into the
// view's value space.
func (v *affineView) MonitorDelta(cause cp.Cause) cp.DeltaMonitor {
	base := v.x.MonitorDelta(cause)
	return mappedMonitor{m: base, f: v.fwd}
}

type mappedMonitor struct {
	m cp.DeltaMonitor
	f func(int) int
}

func (mm mappedMonitor) ForEachRemoved(fn func(v int) error) error {
	return mm.m.ForEachRemoved(func(w int) error {
		return fn(mm.f(w))
	})
}
