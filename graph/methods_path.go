package graph

import (
	"container/heap"
	"fmt"
)

// HasPath reports whether to is reachable from from following directed
// edges. Returns false (no error) if either endpoint is absent, mirroring
// the language-level method's "questions about absent data answer false,
// they do not raise" convention (spec §4.4.3).
func (g *Graph) HasPath(from, to string) bool {
	if !g.HasNode(from) || !g.HasNode(to) {
		return false
	}
	if from == to {
		return true
	}
	order, err := g.BFS(from)
	if err != nil {
		return false
	}
	for _, id := range order {
		if id == to {
			return true
		}
	}
	return false
}

// Distance returns the number of hops on the shortest unweighted path
// from -> to, and whether such a path exists.
func (g *Graph) Distance(from, to string) (int, bool) {
	path, ok, err := g.ShortestPathUnweighted(from, to, "")
	if err != nil || !ok {
		return 0, false
	}
	return len(path) - 1, true
}

// edgeTypeMatches reports whether e should be followed under an
// edge_type filter: an empty filter follows every edge.
func edgeTypeMatches(e *Edge, edgeType string) bool {
	return edgeType == "" || e.Type == edgeType
}

// ShortestPathUnweighted returns the node sequence of a shortest
// (fewest-hops) path from -> to via BFS, grounded on the teacher's
// bfs.BFS parent-tracking walker (bfs/bfs.go). When edgeType is
// non-empty, only edges of that type are followed (spec §4.4.3's
// `edge_type:` filter). The bool result reports reachability.
func (g *Graph) ShortestPathUnweighted(from, to, edgeType string) ([]string, bool, error) {
	if !g.HasNode(from) {
		return nil, false, fmt.Errorf("%w: %q", ErrNodeNotFound, from)
	}
	if !g.HasNode(to) {
		return nil, false, fmt.Errorf("%w: %q", ErrNodeNotFound, to)
	}
	if from == to {
		return []string{from}, true, nil
	}
	parent := map[string]string{from: ""}
	visited := map[string]bool{from: true}
	queue := []string{from}
	found := false
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.OutEdgesFull(cur) {
			if !edgeTypeMatches(e, edgeType) {
				continue
			}
			if visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			parent[e.Target] = cur
			if e.Target == to {
				found = true
				break
			}
			queue = append(queue, e.Target)
		}
	}
	if !found {
		return nil, false, nil
	}
	var path []string
	for cur := to; cur != ""; cur = parent[cur] {
		path = append([]string{cur}, path...)
		if cur == from {
			break
		}
	}
	return path, true, nil
}

// pqItem is one (node, distance) entry of the Dijkstra min-heap.
type pqItem struct {
	id   string
	dist float64
}

// distPQ is a min-heap of *pqItem ordered by dist ascending, following
// the teacher's lazy-decrease-key nodePQ (dijkstra/dijkstra.go): a
// shorter distance is pushed as a fresh entry rather than updating one
// in place, and stale entries are discarded on pop by checking a
// finalized set.
type distPQ []*pqItem

func (pq distPQ) Len() int            { return len(pq) }
func (pq distPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq distPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *distPQ) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }
func (pq *distPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ErrNegativeWeight is returned by ShortestPathWeighted when g carries
// an edge with a negative weight; Dijkstra's algorithm is undefined
// for those, matching the teacher's pre-scan check (dijkstra.go).
var ErrNegativeWeight = fmt.Errorf("%w: negative edge weight", ErrRuleViolation)

// ShortestPathWeighted returns the minimum-total-weight path from -> to
// using Dijkstra's algorithm. Unweighted edges are treated as weight 1.
// When edgeType is non-empty, only edges of that type are followed
// (spec §4.4.3's `edge_type:` filter). Returns ErrNegativeWeight if any
// edge reachable from "from" has a negative weight.
func (g *Graph) ShortestPathWeighted(from, to, edgeType string) ([]string, float64, bool, error) {
	if !g.HasNode(from) {
		return nil, 0, false, fmt.Errorf("%w: %q", ErrNodeNotFound, from)
	}
	if !g.HasNode(to) {
		return nil, 0, false, fmt.Errorf("%w: %q", ErrNodeNotFound, to)
	}

	seen := map[string]bool{from: true}
	for stack := []string{from}; len(stack) > 0; {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.OutEdgesFull(u) {
			if !edgeTypeMatches(e, edgeType) {
				continue
			}
			if e.Weight != nil && *e.Weight < 0 {
				return nil, 0, false, fmt.Errorf("%w: edge %s->%s weight=%v", ErrNegativeWeight, u, e.Target, *e.Weight)
			}
			if !seen[e.Target] {
				seen[e.Target] = true
				stack = append(stack, e.Target)
			}
		}
	}

	dist := map[string]float64{from: 0}
	prev := map[string]string{}
	visited := map[string]bool{}
	pq := &distPQ{{id: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		u := item.id
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == to {
			break
		}
		for _, e := range g.OutEdgesFull(u) {
			if !edgeTypeMatches(e, edgeType) {
				continue
			}
			w := 1.0
			if e.Weight != nil {
				w = *e.Weight
			}
			if w < 0 {
				return nil, 0, false, fmt.Errorf("%w: edge %s->%s weight=%v", ErrNegativeWeight, u, e.Target, w)
			}
			nd := dist[u] + w
			if cur, ok := dist[e.Target]; !ok || nd < cur {
				dist[e.Target] = nd
				prev[e.Target] = u
				heap.Push(pq, &pqItem{id: e.Target, dist: nd})
			}
		}
	}

	if _, ok := dist[to]; !ok {
		return nil, 0, false, nil
	}
	var path []string
	for cur := to; ; cur = prev[cur] {
		path = append([]string{cur}, path...)
		if cur == from {
			break
		}
		if _, ok := prev[cur]; !ok {
			break
		}
	}
	return path, dist[to], true, nil
}

// NodesWithin returns every node reachable from start within at most
// hops directed edges (BFS frontier expansion), start itself included
// at distance 0; hops <= 0 returns just start. When
// edgeType is non-empty, only edges of that type are followed (spec
// §4.4.3's `edge_type:` filter).
func (g *Graph) NodesWithin(start string, hops int, edgeType string) ([]string, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, start)
	}
	visited := map[string]bool{start: true}
	frontier := []string{start}
	out := []string{start}
	for depth := 0; depth < hops; depth++ {
		var next []string
		for _, id := range frontier {
			for _, e := range g.OutEdgesFull(id) {
				if !edgeTypeMatches(e, edgeType) {
					continue
				}
				if !visited[e.Target] {
					visited[e.Target] = true
					next = append(next, e.Target)
					out = append(out, e.Target)
				}
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return out, nil
}

// AllPaths enumerates every simple path (no repeated node) from -> to
// with at most maxLen edges, via bounded DFS. maxLen <= 0 means
// unbounded (limited only by the no-repeat-node constraint, which
// always terminates since a graph has finitely many nodes). When
// edgeType is non-empty, only edges of that type are followed (spec
// §4.4.3's `edge_type:` filter).
func (g *Graph) AllPaths(from, to string, maxLen int, edgeType string) ([][]string, error) {
	if !g.HasNode(from) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, from)
	}
	if !g.HasNode(to) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, to)
	}
	var out [][]string
	visited := map[string]bool{}
	var path []string
	var walk func(cur string)
	walk = func(cur string) {
		if maxLen > 0 && len(path) > maxLen {
			return
		}
		path = append(path, cur)
		visited[cur] = true
		if cur == to {
			out = append(out, append([]string(nil), path...))
		} else {
			for _, e := range g.OutEdgesFull(cur) {
				if !edgeTypeMatches(e, edgeType) {
					continue
				}
				if !visited[e.Target] {
					walk(e.Target)
				}
			}
		}
		visited[cur] = false
		path = path[:len(path)-1]
	}
	walk(from)
	return out, nil
}

// PathCost sums the weight (or 1 for unweighted edges) of each
// consecutive edge along path. Returns ErrEdgeNotFound if a consecutive
// pair is not connected.
func (g *Graph) PathCost(path []string) (float64, error) {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.EdgeWeight(path[i], path[i+1])
		if !ok {
			return 0, fmt.Errorf("%w: %s->%s", ErrEdgeNotFound, path[i], path[i+1])
		}
		if w == nil {
			total += 1
		} else {
			total += *w
		}
	}
	return total, nil
}
