package search

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// recorder implements nogood recording. Each decision (variable, value)
// pair maps to a literal; a failed branch's decisions become a reason
// whose conflict clause is taught to a gini instance, which is then
// consulted under the current decision assumptions to prune branches that
// repeat a known-dead prefix.
type recorder struct {
	g       inter.S
	lits    map[decisionKey]z.Lit
	nextVar z.Var
	learned int
}

type decisionKey struct {
	varID int
	value int
}

func newRecorder() *recorder {
	return &recorder{
		g:       gini.New(),
		lits:    make(map[decisionKey]z.Lit),
		nextVar: 1,
	}
}

// litOf returns the positive literal standing for "v is fixed to value",
// allocating it on first use.
func (r *recorder) litOf(v cp.IntVar, value int) z.Lit {
	k := decisionKey{varID: v.ID(), value: value}
	if m, ok := r.lits[k]; ok {
		return m
	}
	m := r.nextVar.Pos()
	r.nextVar++
	r.lits[k] = m
	return m
}

// recordFailure turns the decisions of a failed branch into a nogood
// clause (the negation of their conjunction) and teaches it to the
// underlying solver.
func (r *recorder) recordFailure(decisions []z.Lit) {
	if len(decisions) == 0 {
		return
	}
	var why sat.Reason
	switch len(decisions) {
	case 1:
		why = sat.R(decisions[0].Not())
	case 2:
		why = sat.R(decisions[0].Not(), decisions[1].Not())
	default:
		ps := make([]z.Lit, 0, len(decisions)+1)
		ps = append(ps, z.LitNull)
		for _, m := range decisions {
			ps = append(ps, m.Not())
		}
		why = sat.R(ps...)
	}
	why.Conflict().Post(r.g)
	r.learned++
}

// pruned reports whether the given decision prefix is already known to be
// dead.
func (r *recorder) pruned(decisions []z.Lit) bool {
	if len(decisions) == 0 {
		return false
	}
	r.g.Assume(decisions...)
	return r.g.Solve() == unsatisfiable
}
