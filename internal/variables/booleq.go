package variables

import (
	"fmt"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

// boolEqView reifies (x = c) as a 0/1 variable without domain storage of
// its own: every query is recomputed from x, every mutation is translated
// into an update of x. The only trailed state is the fixed flag of
// boolView.
type boolEqView struct {
	boolView
	x cp.IntVar
	c int
}

// NewBoolEqView builds the view b <=> (x = c) and registers it as a
// listener of x.
func NewBoolEqView(store *trail.Store, reg *Registry, x cp.IntVar, c int) cp.BoolVar {
	v := &boolEqView{x: x, c: c}
	v.init(store, reg, fmt.Sprintf("(%s = %d)", x.Name(), c), v)
	x.Subscribe(v)
	return v
}

func (v *boolEqView) Contains(val int) bool {
	switch val {
	case 0:
		return !v.x.IsInstantiatedTo(v.c)
	case 1:
		return v.x.Contains(v.c)
	}
	return false
}

func (v *boolEqView) IsInstantiated() bool {
	return v.x.IsInstantiated() || !v.x.Contains(v.c)
}

func (v *boolEqView) IsInstantiatedTo(val int) bool {
	switch val {
	case 0:
		return !v.x.Contains(v.c)
	case 1:
		return v.x.IsInstantiatedTo(v.c)
	}
	return false
}

func (v *boolEqView) BoolValue() cp.Ternary {
	if v.x.IsInstantiated() {
		if v.x.Value() == v.c {
			return cp.True
		}
		return cp.False
	}
	if v.x.Contains(v.c) {
		return cp.Undefined
	}
	return cp.False
}

func (v *boolEqView) LB() int {
	if v.x.IsInstantiatedTo(v.c) {
		return 1
	}
	return 0
}

func (v *boolEqView) UB() int {
	if !v.x.Contains(v.c) {
		return 0
	}
	return 1
}

// InstantiateTo is the only entry point that mutates x on behalf of the
// view. Fixing the view to 1 instantiates x to c; fixing it to 0 removes
// c from x.
func (v *boolEqView) InstantiateTo(val int, cause cp.Cause, why sat.Reason) (bool, error) {
	if !v.Contains(val) {
		return false, v.contradiction(v, cause, why, msgEmpty)
	}
	if v.IsInstantiated() {
		return false, nil
	}
	if v.reactOnRemoval {
		v.delta.add(1-val, cause)
	}
	var done bool
	var err error
	if val == 1 {
		done, err = v.x.InstantiateTo(v.c, v, why)
	} else {
		done, err = v.x.RemoveValue(v.c, v, why)
	}
	if err != nil {
		return false, err
	}
	v.fixed.Set(done)
	return done, v.notify(v, cp.Instantiate, cause)
}
