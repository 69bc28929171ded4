package graphs

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xabibax/choco-solver/pkg/trail"
)

func elements(s Set) []int {
	var out []int
	s.ForEach(func(x int) { out = append(out, x) })
	sort.Ints(out)
	return out
}

func TestBitSet(t *testing.T) {
	s := NewBitSet(130)

	assert.True(t, s.Add(0))
	assert.True(t, s.Add(64))
	assert.True(t, s.Add(129))
	assert.False(t, s.Add(64), "second add reports no change")

	assert.Equal(t, 3, s.Size())
	assert.Equal(t, 130, s.Max())
	assert.True(t, s.Contains(129))
	assert.False(t, s.Contains(1))
	assert.False(t, s.Contains(-1))
	assert.False(t, s.Contains(130), "out of range is simply absent")

	assert.Equal(t, []int{0, 64, 129}, elements(s))

	assert.True(t, s.Remove(64))
	assert.False(t, s.Remove(64))
	assert.Equal(t, []int{0, 129}, elements(s))
	assert.Equal(t, 2, s.Size())
}

func TestStoredBitSetBacktracks(t *testing.T) {
	store := trail.NewStore()
	s := NewStoredBitSet(store, 100)

	s.Add(3)
	s.Add(70)

	store.NewWorld()
	s.Add(5)
	s.Remove(3)
	require.Equal(t, []int{5, 70}, elements(s))
	require.Equal(t, 2, s.Size())

	store.Backtrack(0)
	assert.Equal(t, []int{3, 70}, elements(s))
	assert.Equal(t, 2, s.Size())
}

func TestDirectedGraph(t *testing.T) {
	g := NewDirectedGraph(5)
	require.True(t, g.IsDirected())
	require.Equal(t, 5, g.MaxNodes())

	assert.True(t, g.AddEdge(0, 1))
	assert.False(t, g.AddEdge(0, 1))
	g.AddEdge(2, 1)

	assert.True(t, g.ContainsNode(0), "edge endpoints join the node set")
	assert.True(t, g.ContainsEdge(0, 1))
	assert.False(t, g.ContainsEdge(1, 0), "direction matters")

	assert.Equal(t, []int{1}, elements(g.SuccessorsOf(0)))
	assert.Equal(t, []int{0, 2}, elements(g.PredecessorsOf(1)))
	assert.Empty(t, elements(g.SuccessorsOf(1)))

	assert.True(t, g.RemoveEdge(0, 1))
	assert.False(t, g.RemoveEdge(0, 1))
	assert.Equal(t, []int{2}, elements(g.PredecessorsOf(1)))
}

func TestUndirectedGraph(t *testing.T) {
	g := NewUndirectedGraph(4)
	require.False(t, g.IsDirected())

	g.AddEdge(0, 1)
	assert.True(t, g.ContainsEdge(0, 1))
	assert.True(t, g.ContainsEdge(1, 0), "one edge, both orientations")

	assert.Equal(t, []int{1}, elements(g.NeighborsOf(0)))
	assert.Equal(t, []int{0}, elements(g.NeighborsOf(1)))

	// successors and predecessors collapse onto neighbors
	assert.Equal(t, elements(g.NeighborsOf(1)), elements(g.SuccessorsOf(1)))
	assert.Equal(t, elements(g.NeighborsOf(1)), elements(g.PredecessorsOf(1)))

	g.RemoveEdge(1, 0)
	assert.False(t, g.ContainsEdge(0, 1))
}

func TestRemoveNodeDropsIncidentEdges(t *testing.T) {
	g := NewDirectedGraph(5)
	g.AddEdge(0, 2)
	g.AddEdge(2, 3)
	g.AddEdge(4, 2)

	require.True(t, g.RemoveNode(2))
	assert.False(t, g.ContainsNode(2))
	assert.False(t, g.ContainsEdge(0, 2))
	assert.False(t, g.ContainsEdge(2, 3))
	assert.False(t, g.ContainsEdge(4, 2))
	assert.Empty(t, elements(g.SuccessorsOf(0)))

	assert.False(t, g.RemoveNode(2), "already gone")

	u := NewUndirectedGraph(4)
	u.AddEdge(1, 2)
	u.AddEdge(1, 3)
	require.True(t, u.RemoveNode(1))
	assert.Empty(t, elements(u.NeighborsOf(2)))
	assert.Empty(t, elements(u.NeighborsOf(3)))
}

func TestStoredGraphBacktracks(t *testing.T) {
	store := trail.NewStore()
	g := NewStoredUndirectedGraph(store, 6)
	g.AddEdge(0, 1)

	store.NewWorld()
	g.AddEdge(1, 2)
	g.RemoveNode(0)
	require.False(t, g.ContainsEdge(0, 1))
	require.Equal(t, []int{2}, elements(g.NeighborsOf(1)))

	store.Backtrack(0)
	assert.True(t, g.ContainsEdge(0, 1))
	assert.False(t, g.ContainsEdge(1, 2))
	assert.Equal(t, []int{0}, elements(g.NeighborsOf(1)))
	assert.True(t, g.ContainsNode(0))
}
