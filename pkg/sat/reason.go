package sat

import (
	"fmt"

	"github.com/go-air/gini/z"
)

type reasonKind uint8

const (
	undefReason reasonKind = iota
	unaryReason
	binaryReason
	clausalReason
)

// Reason is a compact justification for a literal being forced: one, two,
// or an arbitrary number of contributing literals. Reasons are value-like
// and immutable once built, so they can be shared freely. The zero value
// is the undefined reason, used when explanations are not tracked.
type Reason struct {
	kind reasonKind
	p, q z.Lit
	cl   *Clause
}

// Undef returns the undefined reason. Callers that need an explanation
// must check IsUndef before asking for a conflict.
func Undef() Reason {
	return Reason{}
}

func (r Reason) IsUndef() bool {
	return r.kind == undefReason
}

// R builds a reason from the given literals. With no literals it returns
// the undefined reason rather than erroring. With more than two, literal
// 0 must be left at z.LitNull: that slot is reserved for the literal the
// conflict-analysis engine will later assert.
func R(ps ...z.Lit) Reason {
	switch len(ps) {
	case 0:
		return Reason{}
	case 1:
		return Reason{kind: unaryReason, p: ps[0]}
	case 2:
		return Reason{kind: binaryReason, p: ps[0], q: ps[1]}
	default:
		if ps[0] != z.LitNull {
			panic("sat: literal 0 of a long reason is reserved for the asserting literal")
		}
		return FromClause(NewClause(ps))
	}
}

// FromClause builds a reason backed by an existing clause. The clause is
// not copied; it must not be mutated afterwards.
func FromClause(cl *Clause) Reason {
	return Reason{kind: clausalReason, cl: cl}
}

// Gather returns a new reason holding r's literals plus p, widening from
// one to two to many as needed. The input is never mutated.
func Gather(r Reason, p z.Lit) Reason {
	switch r.kind {
	case unaryReason:
		return R(r.p, p)
	case binaryReason:
		return R(z.LitNull, r.p, r.q, p)
	case clausalReason:
		ps := make([]z.Lit, r.cl.Size()+1)
		for i := 0; i < r.cl.Size(); i++ {
			ps[i] = r.cl.Lit(i)
		}
		ps[r.cl.Size()] = p
		return R(ps...)
	default:
		return R(p)
	}
}

// Conflict materializes the reason's literals as a clause for conflict
// analysis, with slot 0 reserved for the asserting literal. Short reasons
// build a fresh small clause on every call, so the result is safe to
// retain. The undefined reason has no conflict and yields nil.
func (r Reason) Conflict() *Clause {
	switch r.kind {
	case unaryReason:
		return &Clause{lits: []z.Lit{z.LitNull, r.p}}
	case binaryReason:
		return &Clause{lits: []z.Lit{z.LitNull, r.p, r.q}}
	case clausalReason:
		return r.cl
	default:
		return nil
	}
}

func (r Reason) String() string {
	switch r.kind {
	case unaryReason:
		return fmt.Sprintf("lit:%d", r.p.Dimacs())
	case binaryReason:
		return fmt.Sprintf("lits:%d ∨ %d", r.p.Dimacs(), r.q.Dimacs())
	case clausalReason:
		return "cl:" + r.cl.String()
	default:
		return "undef"
	}
}
