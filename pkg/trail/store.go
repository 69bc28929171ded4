// Package trail implements the backtrackable memory model of the solver:
// a world (decision level) counter, an undo log, and trailed cells whose
// writes can be rolled back to any earlier world.
package trail

import "fmt"

// subTrail is the store-facing side of a kind-specific undo log.
type subTrail interface {
	mark()
	restoreTo(world int)
}

// Store owns the world counter and the undo logs of every trailed cell
// created against it. A Store, its cells, and everything built on top of
// them belong to a single solver instance and must not be shared across
// goroutines.
type Store struct {
	world  int
	stamp  int64
	trails []subTrail
}

func NewStore() *Store {
	return &Store{}
}

// WorldIndex returns the current world (decision level). The root world
// is 0.
func (s *Store) WorldIndex() int {
	return s.world
}

// NewWorld opens a new world and returns its index. Every trailed write
// performed afterwards can be undone by backtracking past it.
func (s *Store) NewWorld() int {
	s.world++
	s.stamp++
	for _, t := range s.trails {
		t.mark()
	}
	return s.world
}

// Backtrack restores every cell written at a world >= toWorld to its
// pre-mutation value, in reverse insertion order, and sets the level to
// toWorld. Backtracking above the current world or below the root is a
// programming error and panics: the undo log never recorded that future.
func (s *Store) Backtrack(toWorld int) {
	if toWorld < 0 {
		panic(fmt.Sprintf("trail: backtrack below the root world (%d)", toWorld))
	}
	if toWorld > s.world {
		panic(fmt.Sprintf("trail: backtrack to world %d above current world %d", toWorld, s.world))
	}
	for _, t := range s.trails {
		t.restoreTo(toWorld)
	}
	s.world = toWorld
	s.stamp++
}

// Timestamp returns an operation counter that ticks on every NewWorld and
// Backtrack. Deltas use it to detect that the search has moved since they
// were last consumed.
func (s *Store) Timestamp() int64 {
	return s.stamp
}

func (s *Store) register(t subTrail) {
	s.trails = append(s.trails, t)
}
