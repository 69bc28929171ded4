package variables

import (
	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

// delta is a variable's incremental log of removed values. It only
// materializes once a dependent asks to monitor removals; until then the
// shared noDelta sentinel keeps the hot path allocation-free.
type delta interface {
	add(v int, cause cp.Cause)
}

type noDeltaType struct{}

func (noDeltaType) add(int, cp.Cause) {}

var noDelta delta = noDeltaType{}

// enumDelta records every removed value in order, together with the cause
// of the removal. It clears itself lazily when the store's timestamp has
// moved, so stale values from an abandoned branch are never replayed.
type enumDelta struct {
	store  *trail.Store
	values []int
	causes []cp.Cause
	stamp  int64
}

func newEnumDelta(store *trail.Store) *enumDelta {
	return &enumDelta{store: store, stamp: store.Timestamp()}
}

func (d *enumDelta) lazyClear() {
	if d.stamp != d.store.Timestamp() {
		d.values = d.values[:0]
		d.causes = d.causes[:0]
		d.stamp = d.store.Timestamp()
	}
}

func (d *enumDelta) add(v int, cause cp.Cause) {
	d.lazyClear()
	d.values = append(d.values, v)
	d.causes = append(d.causes, cause)
}

type enumDeltaMonitor struct {
	d     *enumDelta
	cause cp.Cause
	first int
	stamp int64
}

func newEnumDeltaMonitor(d *enumDelta, cause cp.Cause) *enumDeltaMonitor {
	return &enumDeltaMonitor{d: d, cause: cause, first: len(d.values), stamp: d.stamp}
}

func (m *enumDeltaMonitor) ForEachRemoved(fn func(v int) error) error {
	m.d.lazyClear()
	if m.stamp != m.d.stamp {
		m.first = 0
		m.stamp = m.d.stamp
	}
	for i := m.first; i < len(m.d.values); i++ {
		if m.d.causes[i] == m.cause {
			continue
		}
		if err := fn(m.d.values[i]); err != nil {
			return err
		}
	}
	m.first = len(m.d.values)
	return nil
}

// oneValueDelta serves 0/1 views, whose domain can lose at most one value
// per backtracking segment.
type oneValueDelta struct {
	store *trail.Store
	value int
	cause cp.Cause
	set   bool
	stamp int64
}

func newOneValueDelta(store *trail.Store) *oneValueDelta {
	return &oneValueDelta{store: store, stamp: store.Timestamp()}
}

func (d *oneValueDelta) lazyClear() {
	if d.stamp != d.store.Timestamp() {
		d.set = false
		d.stamp = d.store.Timestamp()
	}
}

func (d *oneValueDelta) add(v int, cause cp.Cause) {
	d.lazyClear()
	d.value = v
	d.cause = cause
	d.set = true
}

type oneValueDeltaMonitor struct {
	d        *oneValueDelta
	cause    cp.Cause
	consumed bool
	stamp    int64
}

func newOneValueDeltaMonitor(d *oneValueDelta, cause cp.Cause) *oneValueDeltaMonitor {
	return &oneValueDeltaMonitor{d: d, cause: cause, consumed: d.set, stamp: d.stamp}
}

func (m *oneValueDeltaMonitor) ForEachRemoved(fn func(v int) error) error {
	m.d.lazyClear()
	if m.stamp != m.d.stamp {
		m.consumed = false
		m.stamp = m.d.stamp
	}
	if !m.d.set || m.consumed {
		return nil
	}
	m.consumed = true
	if m.d.cause == m.cause {
		return nil
	}
	return fn(m.d.value)
}
