package sim

// nodeKind tags a graph node as a model, block or port
type nodeKind uint8

const (
	kindModel nodeKind = iota
	kindBlock
	kindPort
)

// String returns the name of the node kind
func (k nodeKind) String() string {
	switch k {
	case kindModel:
		return "model"
	case kindBlock:
		return "block"
	case kindPort:
		return "port"
	default:
		return "unknown"
	}
}

// graph is the system's node arena. Nodes are addressed by dense int32
// handles so the hot propagation loop never touches name strings; the
// name-based public API resolves through byName once at the boundary.
//
// Edges encode containment (port to owner and back, depending on the port's
// role) and user-declared port-to-port connections. Topology is only mutated
// during setup.
type graph struct {
	names  []string
	kinds  []nodeKind
	out    [][]int32
	in     [][]int32
	byName map[string]int32
}

func newGraph() *graph {
	return &graph{byName: make(map[string]int32)}
}

// lookup resolves a node name to its handle
func (g *graph) lookup(name string) (int32, bool) {
	h, ok := g.byName[name]
	return h, ok
}

// addNode inserts a node, failing on duplicate names
func (g *graph) addNode(name string, kind nodeKind) (int32, error) {
	if _, ok := g.byName[name]; ok {
		return 0, &SimError{Op: "addNode", Node: name, Cause: ErrDuplicateName}
	}
	h := int32(len(g.names))
	g.names = append(g.names, name)
	g.kinds = append(g.kinds, kind)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.byName[name] = h
	return h, nil
}

// removeLast drops the most recently added nodes down to size n, together
// with every edge touching them. AddModel uses it to roll back a partial
// insertion.
func (g *graph) removeLast(n int) {
	for h := len(g.names) - 1; h >= n; h-- {
		for _, succ := range g.out[h] {
			g.in[succ] = removeHandle(g.in[succ], int32(h))
		}
		for _, pred := range g.in[h] {
			g.out[pred] = removeHandle(g.out[pred], int32(h))
		}
		delete(g.byName, g.names[h])
	}
	g.names = g.names[:n]
	g.kinds = g.kinds[:n]
	g.out = g.out[:n]
	g.in = g.in[:n]
}

func removeHandle(list []int32, h int32) []int32 {
	for i, v := range list {
		if v == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// addEdge inserts a directed edge; duplicate edges are ignored
func (g *graph) addEdge(from, to int32) {
	for _, succ := range g.out[from] {
		if succ == to {
			return
		}
	}
	g.out[from] = append(g.out[from], to)
	g.in[to] = append(g.in[to], from)
}

// successors returns the out-neighbors of a node in insertion order
func (g *graph) successors(h int32) []int32 {
	return g.out[h]
}

// predecessors returns the in-neighbors of a node in insertion order
func (g *graph) predecessors(h int32) []int32 {
	return g.in[h]
}

// kind returns the node kind of a handle
func (g *graph) kind(h int32) nodeKind {
	return g.kinds[h]
}

// nodeCount returns the number of nodes
func (g *graph) nodeCount() int {
	return len(g.names)
}

// edgeCount returns the number of directed edges
func (g *graph) edgeCount() int {
	n := 0
	for _, succ := range g.out {
		n += len(succ)
	}
	return n
}
