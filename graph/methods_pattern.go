package graph

import (
	"github.com/graphoid-lang/graphoid/value"
)

// Direction selects which edges an EdgePattern/PathPattern element
// considers a match, per spec §4.4.4.
type Direction string

const (
	DirOutgoing Direction = "outgoing"
	DirIncoming Direction = "incoming"
	DirBoth     Direction = "both"
)

// PatternElement is one element of a graph.match([...]) sequence.
// Elements alternate NodePattern/EdgePattern/PathPattern and node;
// the sequence always begins and ends on a node element.
type PatternElement interface{ isPatternElement() }

// NodePattern binds Var to a node, optionally constrained to carry
// Properties["type"] == *Type.
type NodePattern struct {
	Var  string
	Type *string
}

func (NodePattern) isPatternElement() {}

// EdgePattern selects a single edge hop, optionally constrained by
// type and direction (default DirOutgoing).
type EdgePattern struct {
	Type      *string
	Direction Direction
}

func (EdgePattern) isPatternElement() {}

// PathPattern stands for a variable-length hop of between Min and Max
// edges inclusive (Min == 0 allows binding the same node to both
// neighboring node elements).
type PathPattern struct {
	Type      *string
	Min, Max  int
	Direction Direction
}

func (PathPattern) isPatternElement() {}

// candidateEdges returns the (target, edge) pairs reachable from id
// respecting dir: DirOutgoing uses OutEdgesFull, DirIncoming walks
// every node's out-edges back to id, DirBoth unions the two.
func (g *Graph) candidateEdges(id string, typ *string, dir Direction) []*Edge {
	matchesType := func(e *Edge) bool { return typ == nil || e.Type == *typ }
	var out []*Edge
	if dir == DirOutgoing || dir == DirBoth {
		for _, e := range g.OutEdgesFull(id) {
			if matchesType(e) {
				out = append(out, e)
			}
		}
	}
	if dir == DirIncoming || dir == DirBoth {
		for _, src := range g.NodeIDs() {
			for _, e := range g.OutEdgesFull(src) {
				if e.Target == id && matchesType(e) {
					out = append(out, &Edge{Target: src, Type: e.Type, Weight: e.Weight, Properties: e.Properties})
				}
			}
		}
	}
	return out
}

// MatchResults is the ordered PatternMatchResults value of spec §4.4.4:
// each entry maps pattern variable name to a bound node ID.
type MatchResults struct {
	bindings []map[string]string
}

// Bindings returns a copy of the match list.
func (r *MatchResults) Bindings() []map[string]string {
	out := make([]map[string]string, len(r.bindings))
	for i, b := range r.bindings {
		cp := make(map[string]string, len(b))
		for k, v := range b {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// Len reports how many matches r holds.
func (r *MatchResults) Len() int { return len(r.bindings) }

// Where filters r in place, keeping only bindings for which pred
// returns true.
func (r *MatchResults) Where(pred func(map[string]string) bool) {
	kept := r.bindings[:0]
	for _, b := range r.bindings {
		if pred(b) {
			kept = append(kept, b)
		}
	}
	r.bindings = kept
}

// ReturnVars projects every binding down to the given variable names.
func (r *MatchResults) ReturnVars(names []string) []map[string]string {
	out := make([]map[string]string, 0, len(r.bindings))
	for _, b := range r.bindings {
		proj := make(map[string]string, len(names))
		for _, n := range names {
			if v, ok := b[n]; ok {
				proj[n] = v
			}
		}
		out = append(out, proj)
	}
	return out
}

// ReturnProperties produces, for each match, a map from "var.prop" keys
// to the named property's value on the bound node. Entries for missing
// nodes/properties are omitted.
func (r *MatchResults) ReturnProperties(g *Graph, refs []string) []map[string]value.Value {
	out := make([]map[string]value.Value, 0, len(r.bindings))
	for _, b := range r.bindings {
		row := map[string]value.Value{}
		for _, ref := range refs {
			varName, prop := splitRef(ref)
			if varName == "" {
				continue
			}
			nodeID, ok := b[varName]
			if !ok {
				continue
			}
			props, ok := g.NodeProperties(nodeID)
			if !ok {
				continue
			}
			if v, ok := props[prop]; ok {
				row[ref] = v
			}
		}
		out = append(out, row)
	}
	return out
}

func splitRef(ref string) (varName, prop string) {
	for i := 0; i < len(ref); i++ {
		if ref[i] == '.' {
			return ref[:i], ref[i+1:]
		}
	}
	return "", ""
}

// Match runs recursive-extension-with-backtracking pattern matching
// over elements (spec §4.4.4), returning every distinct binding in
// deterministic node-ID order.
func (g *Graph) Match(elements []PatternElement) (*MatchResults, error) {
	res := &MatchResults{}
	if len(elements) == 0 {
		return res, nil
	}
	first, ok := elements[0].(NodePattern)
	if !ok {
		return res, nil
	}
	for _, id := range g.SortedNodeIDs() {
		if !g.nodeMatchesType(id, first.Type) {
			continue
		}
		binding := map[string]string{}
		if first.Var != "" {
			binding[first.Var] = id
		}
		g.matchFrom(id, elements[1:], binding, &res.bindings)
	}
	return res, nil
}

func (g *Graph) nodeMatchesType(id string, typ *string) bool {
	if typ == nil {
		return true
	}
	props, ok := g.NodeProperties(id)
	if !ok {
		return false
	}
	t, ok := props["type"]
	return ok && t.Display() == *typ
}

// matchFrom recursively extends binding by consuming elements two at a
// time (an edge/path element followed by a node element), appending
// each complete binding found to out.
func (g *Graph) matchFrom(cur string, elements []PatternElement, binding map[string]string, out *[]map[string]string) {
	if len(elements) == 0 {
		cp := make(map[string]string, len(binding))
		for k, v := range binding {
			cp[k] = v
		}
		*out = append(*out, cp)
		return
	}
	if len(elements) < 2 {
		return // malformed: dangling edge/path element with no following node
	}
	nodeElem, ok := elements[1].(NodePattern)
	if !ok {
		return
	}

	switch hop := elements[0].(type) {
	case EdgePattern:
		dir := hop.Direction
		if dir == "" {
			dir = DirOutgoing
		}
		for _, e := range g.candidateEdges(cur, hop.Type, dir) {
			g.tryExtend(e.Target, nodeElem, elements[2:], binding, out)
		}
	case PathPattern:
		dir := hop.Direction
		if dir == "" {
			dir = DirOutgoing
		}
		if hop.Min == 0 {
			g.tryExtend(cur, nodeElem, elements[2:], binding, out)
		}
		g.walkPathHops(cur, hop.Type, dir, 1, hop.Min, hop.Max, map[string]bool{cur: true}, func(reached string) {
			g.tryExtend(reached, nodeElem, elements[2:], binding, out)
		})
	}
}

// walkPathHops enumerates every node reachable from cur in between 1
// and max hops (path elements forbid revisiting a node within one
// enumeration, per spec §4.4.4's "simple paths"), invoking visit once
// per reachable node at each hop count that is >= min (the zero-hop
// case is handled by the caller).
func (g *Graph) walkPathHops(cur string, typ *string, dir Direction, depth, min, max int, seen map[string]bool, visit func(string)) {
	if depth > max {
		return
	}
	for _, e := range g.candidateEdges(cur, typ, dir) {
		if seen[e.Target] {
			continue
		}
		if depth >= min {
			visit(e.Target)
		}
		seen[e.Target] = true
		g.walkPathHops(e.Target, typ, dir, depth+1, min, max, seen, visit)
		delete(seen, e.Target)
	}
}

// tryExtend binds nodeElem to candidate (if type-compatible and not
// already bound to a different node) and recurses into matchFrom.
func (g *Graph) tryExtend(candidate string, nodeElem NodePattern, rest []PatternElement, binding map[string]string, out *[]map[string]string) {
	if !g.nodeMatchesType(candidate, nodeElem.Type) {
		return
	}
	if nodeElem.Var != "" {
		if existing, bound := binding[nodeElem.Var]; bound && existing != candidate {
			return
		}
	}
	next := make(map[string]string, len(binding)+1)
	for k, v := range binding {
		next[k] = v
	}
	if nodeElem.Var != "" {
		next[nodeElem.Var] = candidate
	}
	g.matchFrom(candidate, rest, next, out)
}
