// Package sat holds the explanation side of the solver: literals, clauses
// and reasons. Literals use the gini representation (z.Lit) so that
// learned clauses can be taught to a gini instance directly.
package sat

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

// Clause is a flat sequence of literals. Conflict clauses produced by
// reasons keep literal 0 reserved for the asserting literal; that slot is
// z.LitNull until conflict analysis fills it in.
type Clause struct {
	lits []z.Lit
}

// NewClause copies ps into a fresh clause.
func NewClause(ps []z.Lit) *Clause {
	lits := make([]z.Lit, len(ps))
	copy(lits, ps)
	return &Clause{lits: lits}
}

func (c *Clause) Size() int {
	return len(c.lits)
}

func (c *Clause) Lit(i int) z.Lit {
	return c.lits[i]
}

// SetLit overwrites literal i, typically to place the asserting literal
// into the reserved slot 0.
func (c *Clause) SetLit(i int, p z.Lit) {
	c.lits[i] = p
}

// Lits returns a copy of the clause's literals.
func (c *Clause) Lits() []z.Lit {
	out := make([]z.Lit, len(c.lits))
	copy(out, c.lits)
	return out
}

// Post teaches the clause to g. An unset reserved slot (z.LitNull) is
// skipped rather than emitted, since z.LitNull terminates a clause in the
// gini adder protocol.
func (c *Clause) Post(g inter.Adder) {
	for _, m := range c.lits {
		if m == z.LitNull {
			continue
		}
		g.Add(m)
	}
	g.Add(z.LitNull)
}

func (c *Clause) String() string {
	s := make([]string, len(c.lits))
	for i, m := range c.lits {
		if m == z.LitNull {
			s[i] = "_"
			continue
		}
		s[i] = fmt.Sprintf("%d", m.Dimacs())
	}
	return "(" + strings.Join(s, " ∨ ") + ")"
}
