package variables

import (
	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

// notView is the complement of a boolean variable: it is true exactly
// when its base is false. It is built lazily by Not() and paired with its
// base through the registry, so neither side holds a reference to the
// other.
type notView struct {
	boolView
	b cp.BoolVar
}

func newNotView(store *trail.Store, reg *Registry, b cp.BoolVar) cp.BoolVar {
	v := &notView{b: b}
	v.init(store, reg, "not("+b.Name()+")", v)
	b.Subscribe(v)
	return v
}

func (v *notView) Contains(val int) bool {
	switch val {
	case 0, 1:
		return v.b.Contains(1 - val)
	}
	return false
}

func (v *notView) IsInstantiated() bool {
	return v.b.IsInstantiated()
}

func (v *notView) IsInstantiatedTo(val int) bool {
	switch val {
	case 0, 1:
		return v.b.IsInstantiatedTo(1 - val)
	}
	return false
}

func (v *notView) BoolValue() cp.Ternary {
	switch v.b.BoolValue() {
	case cp.True:
		return cp.False
	case cp.False:
		return cp.True
	}
	return cp.Undefined
}

func (v *notView) LB() int { return 1 - v.b.UB() }

func (v *notView) UB() int { return 1 - v.b.LB() }

func (v *notView) InstantiateTo(val int, cause cp.Cause, why sat.Reason) (bool, error) {
	if !v.Contains(val) {
		return false, v.contradiction(v, cause, why, msgEmpty)
	}
	if v.IsInstantiated() {
		return false, nil
	}
	if v.reactOnRemoval {
		v.delta.add(1-val, cause)
	}
	done, err := v.b.InstantiateTo(1-val, v, why)
	if err != nil {
		return false, err
	}
	v.fixed.Set(done)
	return done, v.notify(v, cp.Instantiate, cause)
}
