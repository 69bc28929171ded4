package graphs

import "github.com/Xabibax/choco-solver/pkg/trail"

// Graph is the incidence structure consumed by graph-typed domains. The
// node index space [0, MaxNodes()) is fixed at construction. For an
// undirected graph, (x,y) and (y,x) are the same edge, successors and
// predecessors both mean neighbors, and NeighborsOf is the accessor call
// sites should prefer.
type Graph interface {
	Nodes() Set
	// AddNode reports whether x was not already present.
	AddNode(x int) bool
	// RemoveNode removes x and every edge incident to it, and reports
	// whether x was present.
	RemoveNode(x int) bool
	// AddEdge reports whether (x,y) was not already present. Both
	// endpoints are added to the node set if missing.
	AddEdge(x, y int) bool
	// RemoveEdge reports whether (x,y) was present.
	RemoveEdge(x, y int) bool
	MaxNodes() int
	// SuccessorsOf returns x's successors if the graph is directed, x's
	// neighbors otherwise.
	//
	// Deprecated for undirected graphs: use NeighborsOf when the
	// direction distinction does not apply.
	SuccessorsOf(x int) Set
	// PredecessorsOf returns x's predecessors if the graph is directed,
	// x's neighbors otherwise.
	//
	// Deprecated for undirected graphs: use NeighborsOf when the
	// direction distinction does not apply.
	PredecessorsOf(x int) Set
	// NeighborsOf returns x's neighbor set of an undirected graph; for a
	// directed graph it is the successor set.
	NeighborsOf(x int) Set
	ContainsEdge(x, y int) bool
	ContainsNode(x int) bool
	IsDirected() bool
}

// graph is the single representation behind Graph; the directed tag is
// the only point of divergence, so dispatch stays monomorphic.
type graph struct {
	directed bool
	n        int
	nodes    Set
	succ     []Set
	pred     []Set // aliases succ when undirected
}

func build(n int, directed bool, mk func(int) Set) *graph {
	g := &graph{directed: directed, n: n, nodes: mk(n)}
	g.succ = make([]Set, n)
	for i := range g.succ {
		g.succ[i] = mk(n)
	}
	if directed {
		g.pred = make([]Set, n)
		for i := range g.pred {
			g.pred[i] = mk(n)
		}
	} else {
		g.pred = g.succ
	}
	return g
}

// NewDirectedGraph creates an empty directed graph over [0, n).
func NewDirectedGraph(n int) Graph {
	return build(n, true, func(m int) Set { return NewBitSet(m) })
}

// NewUndirectedGraph creates an empty undirected graph over [0, n).
func NewUndirectedGraph(n int) Graph {
	return build(n, false, func(m int) Set { return NewBitSet(m) })
}

// NewStoredDirectedGraph creates a backtrackable directed graph whose
// node and adjacency sets are trailed against store.
func NewStoredDirectedGraph(store *trail.Store, n int) Graph {
	return build(n, true, func(m int) Set { return NewStoredBitSet(store, m) })
}

// NewStoredUndirectedGraph creates a backtrackable undirected graph.
func NewStoredUndirectedGraph(store *trail.Store, n int) Graph {
	return build(n, false, func(m int) Set { return NewStoredBitSet(store, m) })
}

func (g *graph) Nodes() Set { return g.nodes }

func (g *graph) MaxNodes() int { return g.n }

func (g *graph) IsDirected() bool { return g.directed }

func (g *graph) AddNode(x int) bool {
	return g.nodes.Add(x)
}

func (g *graph) RemoveNode(x int) bool {
	if !g.nodes.Contains(x) {
		return false
	}
	var out []int
	g.succ[x].ForEach(func(y int) { out = append(out, y) })
	for _, y := range out {
		g.RemoveEdge(x, y)
	}
	if g.directed {
		var in []int
		g.pred[x].ForEach(func(y int) { in = append(in, y) })
		for _, y := range in {
			g.RemoveEdge(y, x)
		}
	}
	return g.nodes.Remove(x)
}

func (g *graph) AddEdge(x, y int) bool {
	g.nodes.Add(x)
	g.nodes.Add(y)
	changed := g.succ[x].Add(y)
	if g.directed {
		g.pred[y].Add(x)
	} else {
		g.succ[y].Add(x)
	}
	return changed
}

func (g *graph) RemoveEdge(x, y int) bool {
	changed := g.succ[x].Remove(y)
	if g.directed {
		g.pred[y].Remove(x)
	} else {
		g.succ[y].Remove(x)
	}
	return changed
}

func (g *graph) SuccessorsOf(x int) Set { return g.succ[x] }

func (g *graph) PredecessorsOf(x int) Set { return g.pred[x] }

// NeighborsOf returns x's neighbor set. It only makes sense for
// undirected graphs, where successors and predecessors coincide.
func (g *graph) NeighborsOf(x int) Set { return g.succ[x] }

func (g *graph) ContainsEdge(x, y int) bool {
	return g.SuccessorsOf(x).Contains(y)
}

func (g *graph) ContainsNode(x int) bool {
	return g.Nodes().Contains(x)
}
