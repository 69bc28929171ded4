package search

import (
	"strconv"

	"github.com/Xabibax/choco-solver/pkg/cp"
)

// decision is the cause attached to the modifications a branching move
// performs.
type decision struct {
	v     cp.IntVar
	value int
}

func (d *decision) String() string {
	return d.v.Name() + " = " + strconv.Itoa(d.value)
}
