// Package constraint provides the propagators that can be posted on a
// model's variables.
package constraint

import (
	"fmt"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
)

// neqOffset propagates x != y + c. It only acts once one side is
// instantiated, which is enough for arc consistency on a binary
// disequality.
type neqOffset struct {
	x, y cp.IntVar
	c    int
}

// NewNeqOffset returns a propagator enforcing x != y + c.
func NewNeqOffset(x, y cp.IntVar, c int) cp.Propagator {
	return &neqOffset{x: x, y: y, c: c}
}

// NewNeq returns a propagator enforcing x != y.
func NewNeq(x, y cp.IntVar) cp.Propagator {
	return NewNeqOffset(x, y, 0)
}

func (p *neqOffset) String() string {
	if p.c == 0 {
		return fmt.Sprintf("%s != %s", p.x.Name(), p.y.Name())
	}
	return fmt.Sprintf("%s != %s + %d", p.x.Name(), p.y.Name(), p.c)
}

func (p *neqOffset) Variables() []cp.IntVar {
	return []cp.IntVar{p.x, p.y}
}

func (p *neqOffset) Propagate() error {
	if p.x.IsInstantiated() {
		if _, err := p.y.RemoveValue(p.x.Value()-p.c, p, sat.Undef()); err != nil {
			return err
		}
	}
	if p.y.IsInstantiated() {
		if _, err := p.x.RemoveValue(p.y.Value()+p.c, p, sat.Undef()); err != nil {
			return err
		}
	}
	return nil
}

// AllDifferent decomposes into pairwise disequalities. Weak but cheap;
// fine for the problem sizes the demos run at.
func AllDifferent(vars ...cp.IntVar) []cp.Propagator {
	var props []cp.Propagator
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			props = append(props, NewNeq(vars[i], vars[j]))
		}
	}
	return props
}
