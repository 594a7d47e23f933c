package graph

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

// Sentinel errors, following the teacher's discipline (core/types.go,
// builder/errors.go) of returning one of a small fixed set so callers
// branch with errors.Is rather than string matching.
var (
	ErrNodeNotFound   = errors.New("graph: node not found")
	ErrNodeExists     = errors.New("graph: node already exists")
	ErrEdgeNotFound   = errors.New("graph: edge not found")
	ErrEdgeExists     = errors.New("graph: edge already exists")
	ErrSelfLoop       = errors.New("graph: self-loops are not permitted")
	ErrRuleViolation  = errors.New("graph: rule violation")
	ErrFrozen         = errors.New("graph: graph is frozen")
	ErrRuleNotFound   = errors.New("graph: rule not found")
	ErrRulesetUnknown = errors.New("graph: ruleset unknown")
)

// Node is one vertex of a Graph: an identity, a carried value, and an
// open bag of properties used by property indexing and pattern matching
// (spec §3.2, §4.4.4).
type Node struct {
	ID         string
	Value      value.Value
	Properties map[string]value.Value
}

// Edge is one directed arc from a Graph's adjacency table. Weight is nil
// for an unweighted edge (spec §3.2's distinction between weighted and
// unweighted edges matters to the :weighted_edges/:unweighted_edges
// rules and to Dijkstra's applicability).
type Edge struct {
	Target     string
	Type       string
	Weight     *float64
	Properties map[string]value.Value
}

// ruleEntry pairs an attached rules.Spec with its severity and whether
// it is currently enabled (disable_rule/enable_rule toggles this without
// detaching the rule, per spec §4.5).
type ruleEntry struct {
	spec     rules.Spec
	severity rules.Severity
	active   bool
}

// Graph is Graphoid's single graph-backed value substrate (spec §3.2):
// every list, map, tree, dag, and bst is a thin façade over one of
// these. Mutation of the node table and mutation of edges+rules are
// guarded by separate locks, following the teacher's two-mutex
// discipline (core/types.go), since rule validation over OutEdges needs
// to read node identities without contending with pure node-value
// writes.
type Graph struct {
	muNodes sync.RWMutex
	muRest  sync.RWMutex

	directed bool
	frozen   bool

	nodes map[string]*Node
	order []string // insertion order, used by NodeIDs() for determinism

	adjacency map[string][]*Edge // source node ID -> outgoing edges, insertion order
	inDegree  map[string]int

	ruleOrder []string // attach order of rule names
	ruleSet   map[string]*ruleEntry
	rulesets  map[string]bool // ruleset names ("tree", "dag", ...) applied via WithRuleset

	indices      map[string]map[string][]string // property -> Display(value) -> sorted node IDs
	lookupCounts map[string]int                 // property -> FindNodesByProperty calls seen since the last node removal
}

// indexThreshold is the number of linear-scan lookups on the same
// property before Graph lazily builds a secondary index for it (spec
// §4.4.3's auto-indexing heuristic).
const indexThreshold = 10

// New returns an empty graph. directed selects whether AddEdge records
// a single directional arc (true) or mirrors it in both directions
// (false); Graphoid's list/tree/dag/bst façades all use directed
// graphs, map façades use directed graphs with no edges at all, but a
// bare graph{} literal may opt into undirected semantics.
func New(directed bool) *Graph {
	return &Graph{
		directed:     directed,
		nodes:        map[string]*Node{},
		adjacency:    map[string][]*Edge{},
		inDegree:     map[string]int{},
		ruleSet:      map[string]*ruleEntry{},
		rulesets:     map[string]bool{},
		indices:      map[string]map[string][]string{},
		lookupCounts: map[string]int{},
	}
}

// Directed reports whether g treats edges as one-directional.
func (g *Graph) Directed() bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	return g.directed
}

// Frozen reports whether g currently rejects mutation (spec §4.3.5's
// freeze/is_frozen, generalized from lists to every graph façade).
func (g *Graph) Frozen() bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	return g.frozen
}

// Freeze marks g immutable. Further mutation methods return ErrFrozen.
func (g *Graph) Freeze() {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	g.frozen = true
}

func (g *Graph) checkMutable() error {
	if g.frozen {
		return ErrFrozen
	}
	return nil
}

// NodeCount returns the number of nodes currently in g.
func (g *Graph) NodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	return len(g.order)
}

// EdgeCount returns the number of edges currently in g. For an
// undirected graph each mirrored pair counts once.
func (g *Graph) EdgeCount() int {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	total := 0
	for _, edges := range g.adjacency {
		total += len(edges)
	}
	if !g.directed {
		total /= 2
	}
	return total
}

// newAutoID returns a fresh node identifier for Insert/InsertSubgraph,
// which (unlike collection.List's deterministic node_<i> naming) have
// no natural position to name themselves after.
func newAutoID() string {
	return uuid.NewString()
}

// Kind implements value.Value: every Graph is a `graph` kind at the
// language level; list/map are package collection's thin façades over
// a Graph, and tree/dag/bst are Graphs with a ruleset attached.
func (g *Graph) Kind() value.Kind { return value.KindGraph }

// Truthy implements value.Value: a graph is truthy iff it has at least
// one node (spec §4.3.6 extends the "empty collections are falsy" rule
// to graphs).
func (g *Graph) Truthy() bool { return g.NodeCount() > 0 }

// Display implements value.Value with a deterministic textual form:
// node IDs in insertion order, then edges in (source, target) sorted
// order, matching the hash_repr determinism spec §8.2 requires.
func (g *Graph) Display() string {
	g.muNodes.RLock()
	ids := append([]string(nil), g.order...)
	nodeByID := make(map[string]*Node, len(g.nodes))
	for id, n := range g.nodes {
		nodeByID[id] = n
	}
	g.muNodes.RUnlock()

	g.muRest.RLock()
	type pair struct{ from, to, typ string }
	var pairs []pair
	for from, edges := range g.adjacency {
		for _, e := range edges {
			pairs = append(pairs, pair{from, e.Target, e.Type})
		}
	}
	g.muRest.RUnlock()

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].from != pairs[j].from {
			return pairs[i].from < pairs[j].from
		}
		return pairs[i].to < pairs[j].to
	})

	s := "graph{nodes: ["
	for i, id := range ids {
		if i > 0 {
			s += ", "
		}
		s += id
		if n := nodeByID[id]; n != nil && n.Value != nil {
			s += "=" + value.Quote(n.Value)
		}
	}
	s += "], edges: ["
	for i, p := range pairs {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s->%s", p.from, p.to)
		if p.typ != "" {
			s += ":" + p.typ
		}
	}
	s += "]}"
	return s
}

// Equal implements value.Value with structural equality (spec §3.1):
// same node set with equal values, same edge set with equal types and
// weights. Node identity (the ID string) must match exactly, matching
// the teacher's structural Equal on core's adjacency maps.
func (g *Graph) Equal(o value.Value) bool {
	og, ok := o.(*Graph)
	if !ok {
		return false
	}
	if g == og {
		return true
	}
	if g.NodeCount() != og.NodeCount() {
		return false
	}
	for _, id := range g.NodeIDs() {
		gv, ok1 := g.NodeValue(id)
		ov, ok2 := og.NodeValue(id)
		if ok1 != ok2 {
			return false
		}
		if ok1 && !gv.Equal(ov) {
			return false
		}
		gOut, ogOut := g.OutEdges(id), og.OutEdges(id)
		if len(gOut) != len(ogOut) {
			return false
		}
		seen := make(map[string]bool, len(gOut))
		for _, e := range gOut {
			seen[fmt.Sprintf("%s|%s|%v", e.Target, e.Type, e.Weight)] = true
		}
		for _, e := range ogOut {
			if !seen[fmt.Sprintf("%s|%s|%v", e.Target, e.Type, e.Weight)] {
				return false
			}
		}
	}
	return true
}
