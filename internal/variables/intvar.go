package variables

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

// intVar is a stored integer variable over a fixed range, with an
// enumerated bitset domain. Every mutable word and bound lives in a
// trailed cell, so backtracking restores the domain without any
// variable-specific undo code.
type intVar struct {
	vbase
	store  *trail.Store
	offset int // value represented by bit 0
	n      int // total number of bits
	words  []*trail.Stored[uint64]
	lb     *trail.Stored[int]
	ub     *trail.Stored[int]
	size   *trail.Stored[int]

	delta          delta
	enum           *enumDelta
	reactOnRemoval bool
}

// NewIntVar creates a stored variable with domain [lb, ub]. An inverted
// range is a configuration error and panics.
func NewIntVar(store *trail.Store, reg *Registry, name string, lb, ub int) cp.IntVar {
	if lb > ub {
		panic(fmt.Sprintf("variables: invalid domain [%d, %d] for %s", lb, ub, name))
	}
	n := ub - lb + 1
	nw := (n + 63) / 64
	words := make([]*trail.Stored[uint64], nw)
	for i := range words {
		w := ^uint64(0)
		if i == nw-1 && n%64 != 0 {
			w = (uint64(1) << uint(n%64)) - 1
		}
		words[i] = trail.NewStored(store, w)
	}
	return &intVar{
		vbase:  vbase{name: name, id: reg.newID()},
		store:  store,
		offset: lb,
		n:      n,
		words:  words,
		lb:     trail.NewInt(store, lb),
		ub:     trail.NewInt(store, ub),
		size:   trail.NewInt(store, n),
		delta:  noDelta,
	}
}

func (x *intVar) String() string { return x.name }

func (x *intVar) bit(v int) bool {
	i := v - x.offset
	return x.words[i/64].Get()&(uint64(1)<<uint(i%64)) != 0
}

func (x *intVar) clearBit(v int) {
	i := v - x.offset
	w := x.words[i/64]
	w.Set(w.Get() &^ (uint64(1) << uint(i%64)))
}

// nextSet returns the smallest domain value >= from, or math.MaxInt.
func (x *intVar) nextSet(from int) int {
	if from < x.offset {
		from = x.offset
	}
	i := from - x.offset
	if i >= x.n {
		return math.MaxInt
	}
	wi := i / 64
	w := x.words[wi].Get() >> uint(i%64)
	if w != 0 {
		return from + bits.TrailingZeros64(w)
	}
	for wi++; wi < len(x.words); wi++ {
		if w := x.words[wi].Get(); w != 0 {
			return x.offset + wi*64 + bits.TrailingZeros64(w)
		}
	}
	return math.MaxInt
}

// prevSet returns the largest domain value <= from, or math.MinInt.
func (x *intVar) prevSet(from int) int {
	if from >= x.offset+x.n {
		from = x.offset + x.n - 1
	}
	i := from - x.offset
	if i < 0 {
		return math.MinInt
	}
	wi := i / 64
	w := x.words[wi].Get() << uint(63-i%64)
	if w != 0 {
		return from - bits.LeadingZeros64(w)
	}
	for wi--; wi >= 0; wi-- {
		if w := x.words[wi].Get(); w != 0 {
			return x.offset + wi*64 + 63 - bits.LeadingZeros64(w)
		}
	}
	return math.MinInt
}

func (x *intVar) Contains(v int) bool {
	if v < x.lb.Get() || v > x.ub.Get() {
		return false
	}
	return x.bit(v)
}

func (x *intVar) IsInstantiated() bool {
	return x.size.Get() == 1
}

func (x *intVar) IsInstantiatedTo(v int) bool {
	return x.size.Get() == 1 && x.lb.Get() == v
}

func (x *intVar) Value() int {
	x.mustBeInstantiated(x.size.Get() == 1)
	return x.lb.Get()
}

func (x *intVar) LB() int { return x.lb.Get() }

func (x *intVar) UB() int { return x.ub.Get() }

func (x *intVar) DomainSize() int { return x.size.Get() }

func (x *intVar) NextValue(v int) int {
	from := v + 1
	if from <= x.lb.Get() {
		return x.lb.Get()
	}
	if from > x.ub.Get() {
		return math.MaxInt
	}
	return x.nextSet(from)
}

func (x *intVar) PreviousValue(v int) int {
	from := v - 1
	if from >= x.ub.Get() {
		return x.ub.Get()
	}
	if from < x.lb.Get() {
		return math.MinInt
	}
	return x.prevSet(from)
}

func (x *intVar) RemoveValue(v int, cause cp.Cause, why sat.Reason) (bool, error) {
	if !x.Contains(v) {
		return false, nil
	}
	if x.size.Get() == 1 {
		return false, x.contradiction(x, cause, why, msgEmpty)
	}
	x.clearBit(v)
	x.size.Set(x.size.Get() - 1)
	x.delta.add(v, cause)
	e := cp.Remove
	switch {
	case v == x.lb.Get():
		x.lb.Set(x.nextSet(v + 1))
		e = cp.IncLow
	case v == x.ub.Get():
		x.ub.Set(x.prevSet(v - 1))
		e = cp.DecUpp
	}
	if x.size.Get() == 1 {
		e |= cp.Instantiate
	}
	return true, x.notify(x, e, cause)
}

func (x *intVar) RemoveValues(vs []int, cause cp.Cause) (bool, error) {
	changed := false
	for _, v := range vs {
		c, err := x.RemoveValue(v, cause, sat.Undef())
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func (x *intVar) RemoveAllValuesBut(vs []int, cause cp.Cause) (bool, error) {
	keep := make(map[int]struct{}, len(vs))
	for _, v := range vs {
		keep[v] = struct{}{}
	}
	var doomed []int
	for v := x.lb.Get(); v != math.MaxInt; v = x.NextValue(v) {
		if _, ok := keep[v]; !ok {
			doomed = append(doomed, v)
		}
	}
	return x.RemoveValues(doomed, cause)
}

func (x *intVar) RemoveInterval(from, to int, cause cp.Cause) (bool, error) {
	if from > to {
		return false, nil
	}
	if from <= x.lb.Get() && to >= x.ub.Get() {
		return false, x.contradiction(x, cause, sat.Undef(), msgEmpty)
	}
	if from <= x.lb.Get() {
		return x.UpdateLowerBound(to+1, cause, sat.Undef())
	}
	if to >= x.ub.Get() {
		return x.UpdateUpperBound(from-1, cause, sat.Undef())
	}
	// interior removal: both bounds survive, so no wipe-out is possible
	changed := false
	for v := from; v <= to; v++ {
		if !x.bit(v) {
			continue
		}
		x.clearBit(v)
		x.size.Set(x.size.Get() - 1)
		x.delta.add(v, cause)
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, x.notify(x, cp.Remove, cause)
}

func (x *intVar) InstantiateTo(v int, cause cp.Cause, why sat.Reason) (bool, error) {
	if !x.Contains(v) {
		return false, x.contradiction(x, cause, why, msgEmpty)
	}
	if x.size.Get() == 1 {
		return false, nil
	}
	oldLB, oldUB := x.lb.Get(), x.ub.Get()
	if x.reactOnRemoval {
		for w := oldLB; w != math.MaxInt; w = x.NextValue(w) {
			if w != v {
				x.delta.add(w, cause)
			}
		}
	}
	only := v - x.offset
	for i, w := range x.words {
		if i == only/64 {
			w.Set(uint64(1) << uint(only%64))
		} else {
			w.Set(0)
		}
	}
	x.lb.Set(v)
	x.ub.Set(v)
	x.size.Set(1)
	e := cp.Instantiate
	if v > oldLB {
		e |= cp.IncLow
	}
	if v < oldUB {
		e |= cp.DecUpp
	}
	return true, x.notify(x, e, cause)
}

func (x *intVar) UpdateLowerBound(v int, cause cp.Cause, why sat.Reason) (bool, error) {
	old := x.lb.Get()
	if v <= old {
		return false, nil
	}
	if v > x.ub.Get() {
		return false, x.contradiction(x, cause, why, msgEmpty)
	}
	for w := old; w < v && w != math.MaxInt; w = x.nextSet(w + 1) {
		x.clearBit(w)
		x.size.Set(x.size.Get() - 1)
		x.delta.add(w, cause)
	}
	x.lb.Set(x.nextSet(v))
	e := cp.IncLow
	if x.size.Get() == 1 {
		e |= cp.Instantiate
	}
	return true, x.notify(x, e, cause)
}

func (x *intVar) UpdateUpperBound(v int, cause cp.Cause, why sat.Reason) (bool, error) {
	old := x.ub.Get()
	if v >= old {
		return false, nil
	}
	if v < x.lb.Get() {
		return false, x.contradiction(x, cause, why, msgEmpty)
	}
	for w := old; w > v && w != math.MinInt; w = x.prevSet(w - 1) {
		x.clearBit(w)
		x.size.Set(x.size.Get() - 1)
		x.delta.add(w, cause)
	}
	x.ub.Set(x.prevSet(v))
	e := cp.DecUpp
	if x.size.Get() == 1 {
		e |= cp.Instantiate
	}
	return true, x.notify(x, e, cause)
}

func (x *intVar) UpdateBounds(lb, ub int, cause cp.Cause) (bool, error) {
	c1, err := x.UpdateLowerBound(lb, cause, sat.Undef())
	if err != nil {
		return c1, err
	}
	c2, err := x.UpdateUpperBound(ub, cause, sat.Undef())
	return c1 || c2, err
}

func (x *intVar) CreateDelta() {
	if x.reactOnRemoval {
		return
	}
	x.enum = newEnumDelta(x.store)
	x.delta = x.enum
	x.reactOnRemoval = true
}

func (x *intVar) MonitorDelta(cause cp.Cause) cp.DeltaMonitor {
	x.CreateDelta()
	return newEnumDeltaMonitor(x.enum, cause)
}
