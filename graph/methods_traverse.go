package graph

import (
	"fmt"
	"sort"
)

// bfsWalker holds mutable BFS state, following the teacher's walker
// pattern (bfs/bfs.go) of isolating per-call state from the algorithm
// entry point.
type bfsWalker struct {
	g       *Graph
	visited map[string]bool
	queue   []string
	order   []string
}

// BFS returns node IDs in breadth-first visit order starting at start.
// Returns ErrNodeNotFound if start is absent.
func (g *Graph) BFS(start string) ([]string, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, start)
	}
	w := &bfsWalker{g: g, visited: map[string]bool{start: true}, queue: []string{start}}
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]
		w.order = append(w.order, cur)
		for _, e := range g.OutEdgesFull(cur) {
			if !w.visited[e.Target] {
				w.visited[e.Target] = true
				w.queue = append(w.queue, e.Target)
			}
		}
	}
	return w.order, nil
}

// DFS returns node IDs in depth-first, preorder visit order starting at
// start, visiting each node's outgoing edges in the order they were
// added. Returns ErrNodeNotFound if start is absent.
func (g *Graph) DFS(start string) ([]string, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, start)
	}
	visited := map[string]bool{}
	var order []string
	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		order = append(order, id)
		for _, e := range g.OutEdgesFull(id) {
			visit(e.Target)
		}
	}
	visit(start)
	return order, nil
}

// child returns the target of the first outgoing edge of typ typ, or ""
// if none exists. Used by the tree-shaped traversals below, which read
// a graph's "left"/"right" edges as a binary tree.
func (g *Graph) child(id, typ string) string {
	for _, e := range g.OutEdgesFull(id) {
		if e.Type == typ {
			return e.Target
		}
	}
	return ""
}

// PreOrder walks the binary-tree-shaped subgraph rooted at start via
// "left"/"right" typed edges, visiting root, then left, then right.
func (g *Graph) PreOrder(start string) ([]string, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, start)
	}
	var order []string
	var walk func(id string)
	walk = func(id string) {
		if id == "" {
			return
		}
		order = append(order, id)
		walk(g.child(id, "left"))
		walk(g.child(id, "right"))
	}
	walk(start)
	return order, nil
}

// InOrder walks the binary-tree-shaped subgraph rooted at start,
// visiting left, then root, then right.
func (g *Graph) InOrder(start string) ([]string, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, start)
	}
	var order []string
	var walk func(id string)
	walk = func(id string) {
		if id == "" {
			return
		}
		walk(g.child(id, "left"))
		order = append(order, id)
		walk(g.child(id, "right"))
	}
	walk(start)
	return order, nil
}

// PostOrder walks the binary-tree-shaped subgraph rooted at start,
// visiting left, then right, then root.
func (g *Graph) PostOrder(start string) ([]string, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, start)
	}
	var order []string
	var walk func(id string)
	walk = func(id string) {
		if id == "" {
			return
		}
		walk(g.child(id, "left"))
		walk(g.child(id, "right"))
		order = append(order, id)
	}
	walk(start)
	return order, nil
}

// ErrCyclic is returned by TopologicalSort when g contains a cycle.
var ErrCyclic = fmt.Errorf("%w: graph contains a cycle", ErrRuleViolation)

// TopologicalSort returns a topological ordering of every node in g
// using Kahn's algorithm, breaking ties lexicographically for
// determinism. Returns ErrCyclic if g is not a DAG.
func (g *Graph) TopologicalSort() ([]string, error) {
	ids := g.SortedNodeIDs()
	inDeg := make(map[string]int, len(ids))
	for _, id := range ids {
		inDeg[id] = g.InDegree(id)
	}
	var ready []string
	for _, id := range ids {
		if inDeg[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		var freed []string
		for _, e := range g.OutEdgesFull(id) {
			inDeg[e.Target]--
			if inDeg[e.Target] == 0 {
				freed = append(freed, e.Target)
			}
		}
		sort.Strings(freed)
		ready = append(ready, freed...)
		sort.Strings(ready)
	}
	if len(order) != len(ids) {
		return nil, ErrCyclic
	}
	return order, nil
}
