package variables

import (
	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

// boolVar is a stored 0/1 variable: the bitset machinery of intVar with
// the boolean surface on top.
type boolVar struct {
	*intVar
	store *trail.Store
	reg   *Registry
}

func NewBoolVar(store *trail.Store, reg *Registry, name string) cp.BoolVar {
	return &boolVar{
		intVar: NewIntVar(store, reg, name, 0, 1).(*intVar),
		store:  store,
		reg:    reg,
	}
}

func (b *boolVar) BoolValue() cp.Ternary {
	if !b.IsInstantiated() {
		return cp.Undefined
	}
	if b.Value() == 1 {
		return cp.True
	}
	return cp.False
}

func (b *boolVar) Not() cp.BoolVar {
	if nb, ok := b.reg.notOf(b); ok {
		return nb
	}
	nb := newNotView(b.store, b.reg, b)
	b.reg.pairNot(b, nb)
	return nb
}
