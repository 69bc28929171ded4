// Package model is the entry point for declaring a problem: it owns the
// backtrackable store and hands out variables and views over it.
package model

import (
	"fmt"

	"github.com/Xabibax/choco-solver/internal/variables"
	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

// Model owns the trailed store shared by every variable it creates.
// A Model is not safe for concurrent use; parallel solving builds one
// model per worker.
type Model struct {
	name  string
	store *trail.Store
	reg   *variables.Registry
	vars  []cp.IntVar
}

func New(name string) *Model {
	return &Model{
		name:  name,
		store: trail.NewStore(),
		reg:   variables.NewRegistry(),
	}
}

func (m *Model) Name() string {
	return m.name
}

// Store exposes the backtrackable store, for callers that manage worlds
// by hand instead of going through a solver.
func (m *Model) Store() *trail.Store {
	return m.store
}

// Vars returns the decision variables in creation order. Views are not
// decision variables and are absent.
func (m *Model) Vars() []cp.IntVar {
	return m.vars
}

// IntVar creates an integer variable with domain [lb, ub].
func (m *Model) IntVar(name string, lb, ub int) cp.IntVar {
	v := variables.NewIntVar(m.store, m.reg, name, lb, ub)
	m.vars = append(m.vars, v)
	return v
}

// IntVars creates n integer variables named prefix[0..n) sharing the
// domain [lb, ub].
func (m *Model) IntVars(prefix string, n, lb, ub int) []cp.IntVar {
	vs := make([]cp.IntVar, n)
	for i := range vs {
		vs[i] = m.IntVar(fmt.Sprintf("%s[%d]", prefix, i), lb, ub)
	}
	return vs
}

// BoolVar creates a 0/1 variable.
func (m *Model) BoolVar(name string) cp.BoolVar {
	v := variables.NewBoolVar(m.store, m.reg, name)
	m.vars = append(m.vars, v)
	return v
}

// Offset returns a view on x + c. The view has no storage of its own.
func (m *Model) Offset(x cp.IntVar, c int) cp.IntVar {
	return variables.NewOffsetView(m.reg, x, c)
}

// Minus returns a view on -x.
func (m *Model) Minus(x cp.IntVar) cp.IntVar {
	return variables.NewMinusView(m.reg, x)
}

// BoolEq returns a boolean view that is true exactly when x = c.
func (m *Model) BoolEq(x cp.IntVar, c int) cp.BoolVar {
	return variables.NewBoolEqView(m.store, m.reg, x, c)
}
