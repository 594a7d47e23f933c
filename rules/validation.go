package rules

import (
	"fmt"
	"sort"

	"github.com/graphoid-lang/graphoid/value"
)

// noCycles rejects any directed cycle. Grounded on dfs.DetectCycles'
// three-color DFS (_examples/katalvlaran-lvlath/dfs/cycle.go), adapted
// to a boolean validator instead of a full cycle-list report.
type noCycles struct{ Validator }

// NoCycles returns the :no_cycles rule.
func NoCycles() Spec { return noCycles{} }

func (noCycles) Name() string { return "no_cycles" }

func (noCycles) Validate(g Graph) error {
	const white, gray, black = 0, 1, 2
	state := make(map[string]int, len(g.NodeIDs()))
	var visit func(id string) error
	visit = func(id string) error {
		state[id] = gray
		for _, e := range g.OutEdges(id) {
			switch state[e.Target] {
			case gray:
				return fmt.Errorf("%s: cycle through %q", (noCycles{}).Name(), e.Target)
			case white:
				if err := visit(e.Target); err != nil {
					return err
				}
			}
		}
		state[id] = black
		return nil
	}
	ids := g.NodeIDs()
	sort.Strings(ids)
	for _, id := range ids {
		if state[id] == white {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// singleRoot requires exactly one node with zero incoming edges.
type singleRoot struct{ Validator }

func SingleRoot() Spec { return singleRoot{} }
func (singleRoot) Name() string { return "single_root" }
func (singleRoot) Validate(g Graph) error {
	roots := 0
	for _, id := range g.NodeIDs() {
		if g.InDegree(id) == 0 {
			roots++
		}
	}
	if roots != 1 {
		return fmt.Errorf("single_root: found %d root(s), want exactly 1", roots)
	}
	return nil
}

// connected requires every node reachable from some root (a node with
// zero incoming edges), following edges as undirected for reachability.
type connected struct{ Validator }

func Connected() Spec { return connected{} }
func (connected) Name() string { return "connected" }
func (connected) Validate(g Graph) error {
	ids := g.NodeIDs()
	if len(ids) == 0 {
		return nil
	}
	adj := make(map[string][]string, len(ids))
	for _, id := range ids {
		for _, e := range g.OutEdges(id) {
			adj[id] = append(adj[id], e.Target)
			adj[e.Target] = append(adj[e.Target], id)
		}
	}
	sort.Strings(ids)
	visited := map[string]bool{ids[0]: true}
	queue := []string{ids[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nbr := range adj[cur] {
			if !visited[nbr] {
				visited[nbr] = true
				queue = append(queue, nbr)
			}
		}
	}
	if len(visited) != len(ids) {
		return fmt.Errorf("connected: %d of %d nodes reachable", len(visited), len(ids))
	}
	return nil
}

// maxDegree rejects a node whose out-degree exceeds N.
type maxDegree struct {
	Validator
	n int
}

// MaxDegree returns the :max_degree rule. Panics if n < 0: parameter
// validation happens eagerly at construction, mirroring the teacher's
// WithXxx functional-option constructors (builder/validators.go).
func MaxDegree(n int) Spec {
	if n < 0 {
		panic(fmt.Errorf("%w: max_degree requires n >= 0, got %d", ErrInvalidParameter, n))
	}
	return maxDegree{n: n}
}

func (maxDegree) Name() string { return "max_degree" }
func (r maxDegree) Validate(g Graph) error {
	for _, id := range g.NodeIDs() {
		if g.OutDegree(id) > r.n {
			return fmt.Errorf("max_degree: node %q has out-degree %d > %d", id, g.OutDegree(id), r.n)
		}
	}
	return nil
}

// binaryTree composes tree + MaxDegree(2).
type binaryTree struct{ Validator }

func BinaryTree() Spec { return binaryTree{} }
func (binaryTree) Name() string { return "binary_tree" }
func (binaryTree) Validate(g Graph) error {
	for _, s := range []Spec{NoCycles(), SingleRoot(), Connected(), MaxDegree(2)} {
		if err := s.Validate(g); err != nil {
			return err
		}
	}
	return nil
}

// weightedEdges requires every edge carry a weight.
type weightedEdges struct{ Validator }

func WeightedEdges() Spec { return weightedEdges{} }
func (weightedEdges) Name() string { return "weighted_edges" }
func (weightedEdges) Validate(g Graph) error {
	for _, id := range g.NodeIDs() {
		for _, e := range g.OutEdges(id) {
			if !e.HasWeight {
				return fmt.Errorf("weighted_edges: edge %s->%s has no weight", id, e.Target)
			}
		}
	}
	return nil
}

// unweightedEdges requires every edge carry no weight.
type unweightedEdges struct{ Validator }

func UnweightedEdges() Spec { return unweightedEdges{} }
func (unweightedEdges) Name() string { return "unweighted_edges" }
func (unweightedEdges) Validate(g Graph) error {
	for _, id := range g.NodeIDs() {
		for _, e := range g.OutEdges(id) {
			if e.HasWeight {
				return fmt.Errorf("unweighted_edges: edge %s->%s has a weight", id, e.Target)
			}
		}
	}
	return nil
}

// bstOrdering requires that, reading the graph as a binary tree over
// "left"/"right" edges from its root, an in-order walk of node values is
// monotonically non-decreasing.
type bstOrdering struct{ Validator }

func BstOrdering() Spec { return bstOrdering{} }
func (bstOrdering) Name() string { return "bst_ordering" }
func (bstOrdering) Validate(g Graph) error {
	var root string
	for _, id := range g.NodeIDs() {
		if g.InDegree(id) == 0 {
			root = id
			break
		}
	}
	if root == "" {
		return nil // empty graph or no root: nothing to order
	}
	var order []value.Value
	var walk func(id string)
	child := func(id, typ string) string {
		for _, e := range g.OutEdges(id) {
			if e.Type == typ {
				return e.Target
			}
		}
		return ""
	}
	walk = func(id string) {
		if id == "" {
			return
		}
		walk(child(id, "left"))
		if v, ok := g.NodeValue(id); ok {
			order = append(order, v)
		}
		walk(child(id, "right"))
	}
	walk(root)
	for i := 1; i < len(order); i++ {
		prev, okP := order[i-1].(value.Number)
		cur, okC := order[i].(value.Number)
		if !okP || !okC {
			continue // non-numeric values are not ordered by bst_ordering
		}
		if cur < prev {
			return fmt.Errorf("bst_ordering: in-order sequence is not non-decreasing at index %d", i)
		}
	}
	return nil
}
