package sheet

import "sort"

type addrSet map[Address]struct{}

// Graph tracks dependency edges between cells. Edges are held as
// address-keyed sets, never as pointers between cells, so traversal
// works over stable keys. Invariant: dependents is the exact inverse
// of precedents.
type Graph struct {
	// precedents[a] holds the cells a's formula reads.
	precedents map[Address]addrSet
	// dependents[a] holds the cells whose formulas read a.
	dependents map[Address]addrSet
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		precedents: make(map[Address]addrSet),
		dependents: make(map[Address]addrSet),
	}
}

// Precedents returns the cells a reads, or nil.
func (g *Graph) Precedents(a Address) []Address {
	return setToSorted(g.precedents[a])
}

// Dependents returns the cells that read a, or nil.
func (g *Graph) Dependents(a Address) []Address {
	return setToSorted(g.dependents[a])
}

// SetPrecedents replaces the precedent set of a and keeps the
// dependents mapping in sync. Passing an empty slice removes all
// outgoing edges.
func (g *Graph) SetPrecedents(a Address, refs []Address) {
	for old := range g.precedents[a] {
		delete(g.dependents[old], a)
		if len(g.dependents[old]) == 0 {
			delete(g.dependents, old)
		}
	}
	if len(refs) == 0 {
		delete(g.precedents, a)
		return
	}
	set := make(addrSet, len(refs))
	for _, ref := range refs {
		set[ref] = struct{}{}
		if g.dependents[ref] == nil {
			g.dependents[ref] = make(addrSet)
		}
		g.dependents[ref][a] = struct{}{}
	}
	g.precedents[a] = set
}

// HasCycleThrough reports whether a lies on a dependency cycle, by
// forward reachability over dependents edges starting from a.
func (g *Graph) HasCycleThrough(a Address) bool {
	visited := make(addrSet)
	stack := []Address{a}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dep := range g.dependents[cur] {
			if dep == a {
				return true
			}
			if _, ok := visited[dep]; ok {
				continue
			}
			visited[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}
	return false
}

// Affected returns a plus every transitive dependent of a.
func (g *Graph) Affected(a Address) []Address {
	set := addrSet{a: {}}
	stack := []Address{a}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dep := range g.dependents[cur] {
			if _, ok := set[dep]; ok {
				continue
			}
			set[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}
	return setToSorted(set)
}

// TopoOrder orders the given cells so every cell follows all of its
// in-set precedents. Ties between independent cells break by address
// order, so the result is deterministic for a fixed graph state. The
// caller must ensure the subgraph is acyclic.
func (g *Graph) TopoOrder(addrs []Address) []Address {
	inSet := make(addrSet, len(addrs))
	for _, a := range addrs {
		inSet[a] = struct{}{}
	}

	indegree := make(map[Address]int, len(addrs))
	for _, a := range addrs {
		n := 0
		for p := range g.precedents[a] {
			if _, ok := inSet[p]; ok {
				n++
			}
		}
		indegree[a] = n
	}

	frontier := make([]Address, 0, len(addrs))
	for _, a := range addrs {
		if indegree[a] == 0 {
			frontier = append(frontier, a)
		}
	}
	sortAddrs(frontier)

	order := make([]Address, 0, len(addrs))
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		order = append(order, cur)

		var released []Address
		for dep := range g.dependents[cur] {
			if _, ok := inSet[dep]; !ok {
				continue
			}
			indegree[dep]--
			if indegree[dep] == 0 {
				released = append(released, dep)
			}
		}
		if len(released) > 0 {
			frontier = append(frontier, released...)
			sortAddrs(frontier)
		}
	}
	return order
}

func sortAddrs(addrs []Address) {
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })
}

func setToSorted(set addrSet) []Address {
	if len(set) == 0 {
		return nil
	}
	addrs := make([]Address, 0, len(set))
	for a := range set {
		addrs = append(addrs, a)
	}
	sortAddrs(addrs)
	return addrs
}
