package graph

import (
	"fmt"

	"github.com/graphoid-lang/graphoid/value"
)

// Insert adds v as a fresh node (identified by a generated UUID, since
// unlike collection.List's positional node_<i> naming there is no
// natural position to name an arbitrary graph insertion after) and, if
// parent != "", links parent -> new node with edge type "child".
// Returns the new node's ID.
func (g *Graph) Insert(v value.Value, parent string) (string, error) {
	id := newAutoID()
	if err := g.AddNode(id, v, nil); err != nil {
		return "", err
	}
	if parent != "" {
		if err := g.AddEdge(parent, id, "child"); err != nil {
			_ = g.RemoveNode(id)
			return "", err
		}
	}
	if err := g.validateActive(); err != nil {
		_ = g.RemoveNode(id)
		return "", err
	}
	return id, nil
}

// ExtractSubgraph returns a new, independent Graph containing every
// node reachable from root within depth hops (depth < 0 means
// unbounded), and the edges among them, per spec §4.4.5. Node values
// and properties are copied by reference (value.Value is treated as
// immutable data), not deep-cloned.
func (g *Graph) ExtractSubgraph(root string, depth int) (*Graph, error) {
	if !g.HasNode(root) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, root)
	}
	var included []string
	if depth < 0 {
		included = g.BFSUnbounded(root)
	} else {
		var err error
		included, err = g.NodesWithin(root, depth, "")
		if err != nil {
			return nil, err
		}
	}
	set := make(map[string]bool, len(included))
	for _, id := range included {
		set[id] = true
	}

	out := New(g.Directed())
	for _, id := range included {
		v, _ := g.NodeValue(id)
		props, _ := g.NodeProperties(id)
		if err := out.AddNode(id, v, props); err != nil {
			return nil, err
		}
	}
	for _, id := range included {
		for _, e := range g.OutEdgesFull(id) {
			if !set[e.Target] || out.HasEdge(id, e.Target) {
				continue
			}
			opts := []EdgeOption{}
			if e.Weight != nil {
				opts = append(opts, WithWeight(*e.Weight))
			}
			if len(e.Properties) > 0 {
				opts = append(opts, WithEdgeProperties(e.Properties))
			}
			if err := out.AddEdge(id, e.Target, e.Type, opts...); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// BFSUnbounded is BFS with no hop limit, used by ExtractSubgraph(root,
// depth: unbounded) and reachability-based algorithms.
func (g *Graph) BFSUnbounded(start string) []string {
	order, err := g.BFS(start)
	if err != nil {
		return nil
	}
	return order
}

// InsertSubgraph merges other into g, renaming any node of other whose
// ID collides with an existing node of g (a fresh UUID replaces the
// colliding ID, following the teacher's duplicate-handling convention
// of never silently overwriting existing data), then links every root
// of other (a node with zero in-degree within other) to at with an
// edgeType edge. Returns the id-renaming map actually applied (an
// untouched ID maps to itself).
func (g *Graph) InsertSubgraph(other *Graph, at, edgeType string) (map[string]string, error) {
	if !g.HasNode(at) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, at)
	}
	rename := map[string]string{}
	for _, id := range other.NodeIDs() {
		newID := id
		if g.HasNode(id) {
			newID = newAutoID()
		}
		rename[id] = newID
		v, _ := other.NodeValue(id)
		props, _ := other.NodeProperties(id)
		if err := g.AddNode(newID, v, props); err != nil {
			return nil, err
		}
	}
	for _, id := range other.NodeIDs() {
		for _, e := range other.OutEdgesFull(id) {
			opts := []EdgeOption{}
			if e.Weight != nil {
				opts = append(opts, WithWeight(*e.Weight))
			}
			if len(e.Properties) > 0 {
				opts = append(opts, WithEdgeProperties(e.Properties))
			}
			if err := g.AddEdge(rename[id], rename[e.Target], e.Type, opts...); err != nil {
				return nil, err
			}
		}
	}
	for _, id := range other.NodeIDs() {
		if other.InDegree(id) == 0 {
			if err := g.AddEdge(at, rename[id], edgeType); err != nil {
				return nil, err
			}
		}
	}
	if err := g.validateActive(); err != nil {
		return nil, err
	}
	return rename, nil
}
