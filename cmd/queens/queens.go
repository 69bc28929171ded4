package queens

import (
	"fmt"
	"strings"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/cp/constraint"
	"github.com/Xabibax/choco-solver/pkg/cp/model"
)

// Build declares the n-queens problem: one variable per column holding
// the queen's row, no two queens on the same row or diagonal.
func Build(n int) (*model.Model, []cp.Propagator) {
	m := model.New(fmt.Sprintf("%d-queens", n))
	q := m.IntVars("q", n, 1, n)

	var props []cp.Propagator
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			props = append(props,
				constraint.NewNeq(q[i], q[j]),
				constraint.NewNeqOffset(q[i], q[j], j-i),
				constraint.NewNeqOffset(q[i], q[j], i-j),
			)
		}
	}
	return m, props
}

// Board renders a solution as an ASCII chess board.
func Board(n int, sol cp.Solution) string {
	var b strings.Builder
	for row := n; row >= 1; row-- {
		for col := 0; col < n; col++ {
			if sol[fmt.Sprintf("q[%d]", col)] == row {
				b.WriteString("Q ")
			} else {
				b.WriteString(". ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
