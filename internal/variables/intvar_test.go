package variables

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
	"github.com/Xabibax/choco-solver/pkg/trail"
)

type testCause string

func (c testCause) String() string { return string(c) }

func newTestVar(t *testing.T, lb, ub int) (*trail.Store, cp.IntVar) {
	t.Helper()
	s := trail.NewStore()
	return s, NewIntVar(s, NewRegistry(), "x", lb, ub)
}

func domainOf(x cp.IntVar) []int {
	var vals []int
	for v := x.LB(); v != math.MaxInt; v = x.NextValue(v) {
		vals = append(vals, v)
	}
	return vals
}

func TestNewIntVar(t *testing.T) {
	_, x := newTestVar(t, 1, 5)

	assert.Equal(t, 1, x.LB())
	assert.Equal(t, 5, x.UB())
	assert.Equal(t, 5, x.DomainSize())
	assert.False(t, x.IsInstantiated())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, domainOf(x))

	assert.Panics(t, func() { NewIntVar(trail.NewStore(), NewRegistry(), "bad", 3, 2) })
}

func TestSingletonDomain(t *testing.T) {
	_, x := newTestVar(t, 7, 7)

	assert.True(t, x.IsInstantiated())
	assert.True(t, x.IsInstantiatedTo(7))
	assert.Equal(t, 7, x.Value())
}

func TestValuePanicsWhenUnfixed(t *testing.T) {
	_, x := newTestVar(t, 0, 3)
	assert.Panics(t, func() { x.Value() })
}

func TestNextAndPreviousValue(t *testing.T) {
	_, x := newTestVar(t, 0, 6)
	_, err := x.RemoveValues([]int{2, 3}, cp.Null)
	require.NoError(t, err)

	assert.Equal(t, 0, x.NextValue(-10))
	assert.Equal(t, 4, x.NextValue(1))
	assert.Equal(t, 4, x.NextValue(2))
	assert.Equal(t, math.MaxInt, x.NextValue(6))

	assert.Equal(t, 6, x.PreviousValue(100))
	assert.Equal(t, 1, x.PreviousValue(4))
	assert.Equal(t, 1, x.PreviousValue(2))
	assert.Equal(t, math.MinInt, x.PreviousValue(0))
}

func TestRemoveValue(t *testing.T) {
	s, x := newTestVar(t, 1, 4)

	changed, err := x.RemoveValue(9, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.False(t, changed, "removing an absent value is a no-op")

	s.NewWorld()
	changed, err = x.RemoveValue(1, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, x.LB(), "removing the lower bound slides it up")

	_, err = x.RemoveValue(4, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.Equal(t, 3, x.UB())

	_, err = x.RemoveValue(3, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.True(t, x.IsInstantiatedTo(2))

	_, err = x.RemoveValue(2, cp.Null, sat.Undef())
	require.Error(t, err)
	assert.True(t, cp.IsContradiction(err), "emptying the domain must fail")

	s.Backtrack(0)
	assert.Equal(t, []int{1, 2, 3, 4}, domainOf(x))
}

func TestInstantiateTo(t *testing.T) {
	s, x := newTestVar(t, 1, 5)

	s.NewWorld()
	changed, err := x.InstantiateTo(3, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, x.IsInstantiatedTo(3))
	assert.Equal(t, 1, x.DomainSize())

	changed, err = x.InstantiateTo(3, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.False(t, changed, "re-instantiating to the same value is a no-op")

	_, err = x.InstantiateTo(4, cp.Null, sat.Undef())
	assert.True(t, cp.IsContradiction(err))

	s.Backtrack(0)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, domainOf(x))

	_, err = x.InstantiateTo(42, cp.Null, sat.Undef())
	assert.True(t, cp.IsContradiction(err), "instantiating to an absent value must fail")
}

func TestUpdateBounds(t *testing.T) {
	s, x := newTestVar(t, 0, 9)

	s.NewWorld()
	changed, err := x.UpdateLowerBound(3, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 3, x.LB())

	changed, err = x.UpdateLowerBound(2, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.False(t, changed, "weaker bound is a no-op")

	changed, err = x.UpdateUpperBound(6, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 6, x.UB())
	assert.Equal(t, []int{3, 4, 5, 6}, domainOf(x))

	_, err = x.UpdateLowerBound(7, cp.Null, sat.Undef())
	assert.True(t, cp.IsContradiction(err), "crossing bounds must fail")

	changed, err = x.UpdateBounds(5, 5, cp.Null)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, x.IsInstantiatedTo(5))

	s.Backtrack(0)
	assert.Equal(t, 0, x.LB())
	assert.Equal(t, 9, x.UB())
}

func TestBoundSkipsHoles(t *testing.T) {
	_, x := newTestVar(t, 0, 9)
	_, err := x.RemoveValues([]int{3, 4}, cp.Null)
	require.NoError(t, err)

	_, err = x.UpdateLowerBound(3, cp.Null, sat.Undef())
	require.NoError(t, err)
	assert.Equal(t, 5, x.LB(), "the new bound lands on a present value")
}

func TestRemoveAllValuesBut(t *testing.T) {
	_, x := newTestVar(t, 0, 9)

	changed, err := x.RemoveAllValuesBut([]int{2, 5, 7}, cp.Null)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []int{2, 5, 7}, domainOf(x))

	_, err = x.RemoveAllValuesBut([]int{11}, cp.Null)
	assert.True(t, cp.IsContradiction(err))
}

func TestRemoveInterval(t *testing.T) {
	_, x := newTestVar(t, 0, 9)

	changed, err := x.RemoveInterval(3, 5, cp.Null)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []int{0, 1, 2, 6, 7, 8, 9}, domainOf(x))

	// touching a bound delegates to a bound update
	changed, err = x.RemoveInterval(-2, 1, cp.Null)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, x.LB())

	changed, err = x.RemoveInterval(8, 20, cp.Null)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 7, x.UB())

	_, err = x.RemoveInterval(0, 100, cp.Null)
	assert.True(t, cp.IsContradiction(err), "covering the whole domain must fail")

	changed, err = x.RemoveInterval(5, 3, cp.Null)
	require.NoError(t, err)
	assert.False(t, changed, "empty interval is a no-op")
}

func TestWideDomainCrossesWords(t *testing.T) {
	s, x := newTestVar(t, -100, 100)

	require.Equal(t, 201, x.DomainSize())
	assert.True(t, x.Contains(-100))
	assert.True(t, x.Contains(100))

	s.NewWorld()
	_, err := x.UpdateBounds(-70, 70, cp.Null)
	require.NoError(t, err)
	_, err = x.RemoveValue(0, cp.Null, sat.Undef())
	require.NoError(t, err)

	assert.Equal(t, 140, x.DomainSize())
	assert.Equal(t, 1, x.NextValue(-1))
	assert.Equal(t, -1, x.PreviousValue(1))

	s.Backtrack(0)
	assert.Equal(t, 201, x.DomainSize())
	assert.True(t, x.Contains(0))
}

type recordingListener struct {
	events []cp.Event
	causes []cp.Cause
}

func (l *recordingListener) NotifyChange(_ cp.IntVar, e cp.Event, cause cp.Cause) error {
	l.events = append(l.events, e)
	l.causes = append(l.causes, cause)
	return nil
}

func TestNotifications(t *testing.T) {
	_, x := newTestVar(t, 0, 5)
	l := &recordingListener{}
	x.Subscribe(l)
	who := testCause("prop")

	_, err := x.RemoveValue(3, who, sat.Undef())
	require.NoError(t, err)
	require.Len(t, l.events, 1)
	assert.Equal(t, cp.Remove, l.events[0])
	assert.Equal(t, cp.Cause(who), l.causes[0])

	_, err = x.RemoveValue(0, who, sat.Undef())
	require.NoError(t, err)
	assert.Equal(t, cp.IncLow, l.events[1])

	_, err = x.UpdateUpperBound(4, who, sat.Undef())
	require.NoError(t, err)
	assert.Equal(t, cp.DecUpp, l.events[2])
	assert.True(t, l.events[2].Overlaps(cp.Bound))

	_, err = x.InstantiateTo(2, who, sat.Undef())
	require.NoError(t, err)
	assert.True(t, l.events[3].Overlaps(cp.Instantiate))
	assert.True(t, l.events[3].Overlaps(cp.Bound))
}

func TestNotificationSkipsCausingListener(t *testing.T) {
	_, x := newTestVar(t, 0, 5)
	l := &recordingListener{}
	x.Subscribe(l)

	// A modification attributed to a listener is not echoed back to it.
	l2 := &selfRemovingCause{}
	x.Subscribe(l2)
	_, err := x.RemoveValue(3, l2, sat.Undef())
	require.NoError(t, err)
	assert.Zero(t, l2.hits, "a cause never hears its own modification")
	assert.Len(t, l.events, 1)
}

type selfRemovingCause struct {
	hits int
}

func (l *selfRemovingCause) String() string { return "self" }

func (l *selfRemovingCause) NotifyChange(cp.IntVar, cp.Event, cp.Cause) error {
	l.hits++
	return nil
}

func TestDeltaMonitor(t *testing.T) {
	s, x := newTestVar(t, 0, 9)
	who := testCause("prop")
	other := testCause("other")

	mon := x.MonitorDelta(who)

	_, err := x.RemoveValues([]int{2, 4}, other)
	require.NoError(t, err)
	_, err = x.RemoveValue(6, who, sat.Undef())
	require.NoError(t, err)

	var seen []int
	require.NoError(t, mon.ForEachRemoved(func(v int) error {
		seen = append(seen, v)
		return nil
	}))
	assert.Equal(t, []int{2, 4}, seen, "own removals are skipped")

	seen = nil
	require.NoError(t, mon.ForEachRemoved(func(v int) error {
		seen = append(seen, v)
		return nil
	}))
	assert.Empty(t, seen, "a monitor only sees each removal once")

	// Moving the search invalidates whatever the delta held.
	s.NewWorld()
	s.Backtrack(0)
	seen = nil
	require.NoError(t, mon.ForEachRemoved(func(v int) error {
		seen = append(seen, v)
		return nil
	}))
	assert.Empty(t, seen)

	_, err = x.RemoveValue(8, other, sat.Undef())
	require.NoError(t, err)
	seen = nil
	require.NoError(t, mon.ForEachRemoved(func(v int) error {
		seen = append(seen, v)
		return nil
	}))
	assert.Equal(t, []int{8}, seen)
}

func TestInstantiationRecordsRemovalsInDelta(t *testing.T) {
	_, x := newTestVar(t, 0, 4)
	mon := x.MonitorDelta(cp.Null)

	_, err := x.InstantiateTo(2, testCause("prop"), sat.Undef())
	require.NoError(t, err)

	var seen []int
	require.NoError(t, mon.ForEachRemoved(func(v int) error {
		seen = append(seen, v)
		return nil
	}))
	assert.ElementsMatch(t, []int{0, 1, 3, 4}, seen)
}
