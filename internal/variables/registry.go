// Package variables implements stored variables, domain views, and the
// removal deltas they expose. Everything here is single-threaded and owned
// by one model.
package variables

import "github.com/Xabibax/choco-solver/pkg/cp"

// Registry hands out variable IDs and records the symmetric association
// between a boolean variable and its complement. Keeping the pairing here,
// keyed by ID, avoids mutual references between the two views.
type Registry struct {
	nextID int
	nots   map[int]cp.BoolVar
}

func NewRegistry() *Registry {
	return &Registry{nots: make(map[int]cp.BoolVar)}
}

func (r *Registry) newID() int {
	id := r.nextID
	r.nextID++
	return id
}

func (r *Registry) pairNot(a, b cp.BoolVar) {
	r.nots[a.ID()] = b
	r.nots[b.ID()] = a
}

func (r *Registry) notOf(v cp.Variable) (cp.BoolVar, bool) {
	b, ok := r.nots[v.ID()]
	return b, ok
}
