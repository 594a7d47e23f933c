package graph

import (
	"fmt"
	"sort"

	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

// AddNode inserts a new node with the given id, value, and optional
// properties. Returns ErrNodeExists if id is already present, ErrFrozen
// if g is frozen. Properties participate in FindNodesByProperty and
// pattern matching; a nil map is treated as empty.
func (g *Graph) AddNode(id string, v value.Value, properties map[string]value.Value) error {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	if err := g.checkMutable(); err != nil {
		return err
	}
	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("%w: %q", ErrNodeExists, id)
	}
	props := make(map[string]value.Value, len(properties))
	for k, pv := range properties {
		props[k] = pv
	}
	g.nodes[id] = &Node{ID: id, Value: v, Properties: props}
	g.order = append(g.order, id)
	g.invalidateIndicesLocked(props)
	return nil
}

// invalidateIndicesLocked drops any built secondary index over a
// property the new/changed node touches, forcing a rebuild on next
// lookup. Must be called with muNodes held.
func (g *Graph) invalidateIndicesLocked(props map[string]value.Value) {
	g.muRest.Lock()
	defer g.muRest.Unlock()
	for k := range props {
		delete(g.indices, k)
	}
}

// RemoveNode deletes a node and every edge touching it. Returns
// ErrNodeNotFound if id is absent. Satisfies rules.Cleaner, letting
// rules.ApplyRetro drive :clean retroactive removal directly against a
// live Graph.
func (g *Graph) RemoveNode(id string) error {
	g.muNodes.Lock()
	if err := g.checkMutable(); err != nil {
		g.muNodes.Unlock()
		return err
	}
	if _, exists := g.nodes[id]; !exists {
		g.muNodes.Unlock()
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	delete(g.nodes, id)
	for i, existing := range g.order {
		if existing == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.muNodes.Unlock()

	g.muRest.Lock()
	for _, e := range g.adjacency[id] {
		g.inDegree[e.Target]--
	}
	delete(g.adjacency, id)
	delete(g.inDegree, id)
	for from, edges := range g.adjacency {
		kept := edges[:0:0]
		for _, e := range edges {
			if e.Target == id {
				continue
			}
			kept = append(kept, e)
		}
		g.adjacency[from] = kept
	}
	g.indices = map[string]map[string][]string{}
	g.lookupCounts = map[string]int{}
	g.muRest.Unlock()
	return nil
}

// HasNode reports whether id names an existing node.
func (g *Graph) HasNode(id string) bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// NodeValue returns the value carried by node id, and whether it exists.
func (g *Graph) NodeValue(id string) (value.Value, bool) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return n.Value, true
}

// NodeProperties returns a copy of node id's property bag.
func (g *Graph) NodeProperties(id string) (map[string]value.Value, bool) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]value.Value, len(n.Properties))
	for k, v := range n.Properties {
		out[k] = v
	}
	return out, true
}

// SetNodeValue rewrites node id's value, running g's active
// transformation rules (in attach order) over the candidate first, then
// the active validation rules against the resulting graph state, per
// spec §4.5's write-time pipeline. On validation failure the previous
// value is restored and the error is returned.
func (g *Graph) SetNodeValue(id string, v value.Value) error {
	g.muNodes.Lock()
	n, ok := g.nodes[id]
	if !ok {
		g.muNodes.Unlock()
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	if err := g.checkMutable(); err != nil {
		g.muNodes.Unlock()
		return err
	}
	previous := n.Value
	g.muNodes.Unlock()

	transformed, err := g.applyTransforms(v)
	if err != nil {
		return err
	}

	g.muNodes.Lock()
	n.Value = transformed
	g.muNodes.Unlock()

	if err := g.validateActive(); err != nil {
		g.muNodes.Lock()
		n.Value = previous
		g.muNodes.Unlock()
		return err
	}
	return nil
}

// ApplyTransforms runs every active transformation rule attached to g
// over v, in attach order, short-circuiting on the first error. Used
// by collection.List/collection.Map to transform a candidate value
// before positioning it, since the graph itself has no notion of
// "about to insert at position i".
func (g *Graph) ApplyTransforms(v value.Value) (value.Value, error) {
	return g.applyTransforms(v)
}

// applyTransforms runs every active transformation rule over v in
// attach order, short-circuiting on the first error.
func (g *Graph) applyTransforms(v value.Value) (value.Value, error) {
	g.muRest.RLock()
	order := append([]string(nil), g.ruleOrder...)
	entries := make(map[string]*ruleEntry, len(g.ruleSet))
	for k, e := range g.ruleSet {
		entries[k] = e
	}
	g.muRest.RUnlock()

	cur := v
	for _, name := range order {
		entry := entries[name]
		if entry == nil || !entry.active {
			continue
		}
		next, err := entry.spec.Transform(cur)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", ErrRuleViolation, name, err)
		}
		cur = next
	}
	return cur, nil
}

// validateActive runs every active validation rule (severity
// SeverityError) against g's current state, in attach order, returning
// the first failure. Warn-severity and ignore-severity rules never
// block a write; per spec §3.3 they exist for observability only.
func (g *Graph) validateActive() error {
	g.muRest.RLock()
	order := append([]string(nil), g.ruleOrder...)
	entries := make(map[string]*ruleEntry, len(g.ruleSet))
	for k, e := range g.ruleSet {
		entries[k] = e
	}
	g.muRest.RUnlock()

	for _, name := range order {
		entry := entries[name]
		if entry == nil || !entry.active || entry.severity != rules.SeverityError {
			continue
		}
		if err := entry.spec.Validate(g); err != nil {
			return fmt.Errorf("%w: rule %q: %v", ErrRuleViolation, name, err)
		}
	}
	return nil
}

// NodeIDs returns every node ID in insertion order. Satisfies
// rules.Graph.
func (g *Graph) NodeIDs() []string {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	return append([]string(nil), g.order...)
}

// SortedNodeIDs returns NodeIDs sorted lexicographically, used wherever
// spec determinism calls for a canonical order independent of insertion
// history (e.g. no_cycles' DFS start order).
func (g *Graph) SortedNodeIDs() []string {
	ids := g.NodeIDs()
	sort.Strings(ids)
	return ids
}

// Nodes returns a snapshot copy of every node.
func (g *Graph) Nodes() []*Node {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		cp := *n
		out = append(out, &cp)
	}
	return out
}
