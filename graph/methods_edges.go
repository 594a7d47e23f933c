package graph

import (
	"fmt"

	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

// EdgeOption configures AddEdge, following the teacher's functional-
// option convention for edge construction (core/api.go's EdgeOption).
type EdgeOption func(*Edge)

// WithWeight attaches a weight to the edge being added.
func WithWeight(w float64) EdgeOption {
	return func(e *Edge) { e.Weight = &w }
}

// WithEdgeProperties attaches a property bag to the edge being added.
func WithEdgeProperties(props map[string]value.Value) EdgeOption {
	return func(e *Edge) {
		e.Properties = make(map[string]value.Value, len(props))
		for k, v := range props {
			e.Properties[k] = v
		}
	}
}

// AddEdge creates an edge from -> to of the given type, applying opts.
// If an edge from -> to already exists, its type, weight and properties
// are replaced by the new ones instead, so a pair never carries more
// than one edge. Returns ErrNodeNotFound if either endpoint is missing,
// ErrSelfLoop if from == to, ErrFrozen if g is frozen. On an undirected
// graph the reverse arc is recorded (or updated) transparently.
func (g *Graph) AddEdge(from, to, typ string, opts ...EdgeOption) error {
	if from == to {
		return fmt.Errorf("%w: %q", ErrSelfLoop, from)
	}
	if !g.HasNode(from) {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, from)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, to)
	}

	e := &Edge{Target: to, Type: typ}
	for _, opt := range opts {
		opt(e)
	}

	g.muRest.Lock()
	defer g.muRest.Unlock()
	if g.frozen {
		return ErrFrozen
	}
	for _, existing := range g.adjacency[from] {
		if existing.Target == to {
			existing.Type, existing.Weight, existing.Properties = e.Type, e.Weight, e.Properties
			if !g.directed {
				for _, back := range g.adjacency[to] {
					if back.Target == from {
						back.Type, back.Weight, back.Properties = e.Type, e.Weight, e.Properties
					}
				}
			}
			return nil
		}
	}
	g.adjacency[from] = append(g.adjacency[from], e)
	g.inDegree[to]++
	if !g.directed {
		back := &Edge{Target: from, Type: typ, Weight: e.Weight, Properties: e.Properties}
		g.adjacency[to] = append(g.adjacency[to], back)
		g.inDegree[from]++
	}
	return nil
}

// RemoveEdge deletes the edge from -> to. Returns ErrEdgeNotFound if
// none exists.
func (g *Graph) RemoveEdge(from, to string) error {
	g.muRest.Lock()
	defer g.muRest.Unlock()
	if err := g.checkMutable(); err != nil {
		return err
	}
	removed := false
	kept := g.adjacency[from][:0:0]
	for _, e := range g.adjacency[from] {
		if e.Target == to {
			removed = true
			g.inDegree[to]--
			continue
		}
		kept = append(kept, e)
	}
	g.adjacency[from] = kept
	if !removed {
		return fmt.Errorf("%w: %s->%s", ErrEdgeNotFound, from, to)
	}
	if !g.directed {
		kept2 := g.adjacency[to][:0:0]
		for _, e := range g.adjacency[to] {
			if e.Target == from {
				g.inDegree[from]--
				continue
			}
			kept2 = append(kept2, e)
		}
		g.adjacency[to] = kept2
	}
	return nil
}

// HasEdge reports whether any edge connects from -> to. Satisfies
// rules.Graph.
func (g *Graph) HasEdge(from, to string) bool {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	for _, e := range g.adjacency[from] {
		if e.Target == to {
			return true
		}
	}
	return false
}

// GetEdge returns the first edge from -> to, if any.
func (g *Graph) GetEdge(from, to string) (*Edge, error) {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	for _, e := range g.adjacency[from] {
		if e.Target == to {
			cp := *e
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s->%s", ErrEdgeNotFound, from, to)
}

// SetEdgeWeight assigns w to the edge from -> to.
func (g *Graph) SetEdgeWeight(from, to string, w float64) error {
	g.muRest.Lock()
	defer g.muRest.Unlock()
	if err := g.checkMutable(); err != nil {
		return err
	}
	for _, e := range g.adjacency[from] {
		if e.Target == to {
			e.Weight = &w
			return nil
		}
	}
	return fmt.Errorf("%w: %s->%s", ErrEdgeNotFound, from, to)
}

// EdgeWeight returns the weight of edge from -> to, or nil if it is
// unweighted. The bool return reports whether the edge exists at all.
func (g *Graph) EdgeWeight(from, to string) (*float64, bool) {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	for _, e := range g.adjacency[from] {
		if e.Target == to {
			return e.Weight, true
		}
	}
	return nil, false
}

// OutEdges returns the outgoing edges of id as rules.EdgeView, the
// minimal shape the rules package validates against. Satisfies
// rules.Graph.
func (g *Graph) OutEdges(id string) []rules.EdgeView {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	edges := g.adjacency[id]
	out := make([]rules.EdgeView, 0, len(edges))
	for _, e := range edges {
		out = append(out, rules.EdgeView{Target: e.Target, Type: e.Type, Weight: e.Weight, HasWeight: e.Weight != nil})
	}
	return out
}

// OutEdgesFull returns a snapshot copy of id's full outgoing Edge
// records, including properties, for callers that need more than
// rules.EdgeView exposes (traversals, pattern matching, Display).
func (g *Graph) OutEdgesFull(id string) []*Edge {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	edges := g.adjacency[id]
	out := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		cp := *e
		out = append(out, &cp)
	}
	return out
}

// InDegree returns the number of edges terminating at id. Satisfies
// rules.Graph.
func (g *Graph) InDegree(id string) int {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	return g.inDegree[id]
}

// OutDegree returns the number of edges originating at id. Satisfies
// rules.Graph.
func (g *Graph) OutDegree(id string) int {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	return len(g.adjacency[id])
}
