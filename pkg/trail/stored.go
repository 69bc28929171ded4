package trail

// entry records the state a cell must return to when its write world is
// undone.
type entry[T comparable] struct {
	cell      *Stored[T]
	prev      T
	prevStamp int
}

// kindTrail is the undo log shared by every cell of one value kind. The
// trailing discipline is identical across kinds; a kind-specific log only
// exists to keep entries type-homogeneous and flat.
type kindTrail[T comparable] struct {
	entries []entry[T]
	// starts[k] is the length of entries at the moment world k+1 opened.
	starts []int
}

func (t *kindTrail[T]) mark() {
	t.starts = append(t.starts, len(t.entries))
}

func (t *kindTrail[T]) restoreTo(world int) {
	cut := 0
	if world > 0 {
		cut = t.starts[world-1]
	}
	for i := len(t.entries) - 1; i >= cut; i-- {
		e := t.entries[i]
		e.cell.value = e.prev
		e.cell.stamp = e.prevStamp
	}
	t.entries = t.entries[:cut]
	t.starts = t.starts[:world]
}

func (t *kindTrail[T]) push(c *Stored[T], prev T, prevStamp int) {
	t.entries = append(t.entries, entry[T]{cell: c, prev: prev, prevStamp: prevStamp})
}

// trailFor returns the store's undo log for value kind T, creating and
// registering it on first use. A log created after worlds were already
// opened starts with empty marks for each of them.
func trailFor[T comparable](s *Store) *kindTrail[T] {
	for _, t := range s.trails {
		if kt, ok := t.(*kindTrail[T]); ok {
			return kt
		}
	}
	kt := &kindTrail[T]{starts: make([]int, s.world)}
	s.register(kt)
	return kt
}

// Stored is a single trailed value. It is a storage primitive only:
// callers are responsible for giving a semantic meaning to a change and
// for notifying whoever depends on it.
type Stored[T comparable] struct {
	value T
	// stamp is the world at which value was last overwritten.
	stamp int
	owner *kindTrail[T]
	store *Store
}

// NewStored creates a trailed cell holding init. Cells live as long as
// their store; they are never destroyed independently.
func NewStored[T comparable](s *Store, init T) *Stored[T] {
	return &Stored[T]{
		value: init,
		stamp: s.world,
		owner: trailFor[T](s),
		store: s,
	}
}

func (c *Stored[T]) Get() T {
	return c.value
}

// Set overwrites the cell's value. Setting the current value is a no-op.
// The previous value is pushed to the undo log at most once per world:
// repeated writes within one world do not grow the log, so only the
// oldest value for that world survives a backtrack.
func (c *Stored[T]) Set(v T) {
	if v == c.value {
		return
	}
	if w := c.store.world; c.stamp < w {
		c.owner.push(c, c.value, c.stamp)
		c.stamp = w
	}
	c.value = v
}

// Convenience constructors for the kinds the solver trails.

func NewInt(s *Store, init int) *Stored[int] { return NewStored(s, init) }

func NewInt64(s *Store, init int64) *Stored[int64] { return NewStored(s, init) }

func NewFloat64(s *Store, init float64) *Stored[float64] { return NewStored(s, init) }

func NewBool(s *Store, init bool) *Stored[bool] { return NewStored(s, init) }
