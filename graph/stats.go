package graph

import "fmt"

// Stats is the read-only snapshot returned by Graph.Stats() (spec §3.2).
type Stats struct {
	NodeCount      int
	EdgeCount      int
	Directed       bool
	ActiveRules    []string
	ActiveRulesets []string
	AutoIndices    []string
}

// Stats returns a point-in-time snapshot of g's size, rule, and index
// state.
func (g *Graph) Stats() Stats {
	return Stats{
		NodeCount:      g.NodeCount(),
		EdgeCount:      g.EdgeCount(),
		Directed:       g.Directed(),
		ActiveRules:    g.RuleNames(),
		ActiveRulesets: g.activeRulesetNames(),
		AutoIndices:    g.IndexedProperties(),
	}
}

// ExecutionPlan describes the algorithm an explain_* method would run,
// without running it (spec §4.4.3).
type ExecutionPlan struct {
	Operation       string
	Steps           []string
	EstimatedCost   string
	Optimizations   []string
}

// ExplainShortestPath describes the plan ShortestPathUnweighted/
// ShortestPathWeighted would follow for from -> to.
func (g *Graph) ExplainShortestPath(from, to string, weighted bool) ExecutionPlan {
	if weighted {
		return ExecutionPlan{
			Operation: "shortest_path(weighted)",
			Steps: []string{
				fmt.Sprintf("initialize distances from %q to +inf, source to 0", from),
				"push source onto a binary-heap priority queue",
				"pop minimum-distance node, relax its outgoing edges",
				fmt.Sprintf("stop once %q is finalized or the heap empties", to),
			},
			EstimatedCost: "O((V+E) log V)",
			Optimizations: []string{"lazy decrease-key via heap re-push", "early exit on target finalization"},
		}
	}
	return ExecutionPlan{
		Operation: "shortest_path(unweighted)",
		Steps: []string{
			fmt.Sprintf("BFS from %q, tracking parent pointers", from),
			fmt.Sprintf("stop once %q is dequeued or the frontier empties", to),
			"reconstruct path by walking parent pointers backward",
		},
		EstimatedCost: "O(V+E)",
		Optimizations: []string{"early exit on first discovery of target"},
	}
}

// ExplainMatch describes the plan Match would follow for a pattern with
// the given element count.
func (g *Graph) ExplainMatch(elementCount int) ExecutionPlan {
	return ExecutionPlan{
		Operation: "match",
		Steps: []string{
			"anchor on every node satisfying the first node pattern's type constraint",
			"recursively extend each partial binding across edge/path elements with backtracking",
			"collect complete bindings once every pattern element is consumed",
		},
		EstimatedCost: fmt.Sprintf("O(V^%d) worst case", (elementCount+1)/2),
		Optimizations: []string{"type-constrained anchoring prunes the start set"},
	}
}

// ExplainFindNodesByProperty describes the plan
// FindNodesByProperty(prop, ...) would follow, reflecting whether an
// index already exists for prop.
func (g *Graph) ExplainFindNodesByProperty(prop string) ExecutionPlan {
	g.muRest.RLock()
	_, indexed := g.indices[prop]
	count := g.lookupCounts[prop]
	g.muRest.RUnlock()

	if indexed {
		return ExecutionPlan{
			Operation:     "find_nodes_by_property(indexed)",
			Steps:         []string{fmt.Sprintf("look up %q in the secondary index", prop), "return the matched node-ID set"},
			EstimatedCost: "O(1) lookup, O(k) result",
			Optimizations: []string{"secondary index already built"},
		}
	}
	return ExecutionPlan{
		Operation: "find_nodes_by_property(scan)",
		Steps:     []string{fmt.Sprintf("linear scan every node, comparing Properties[%q]", prop)},
		EstimatedCost: "O(n)",
		Optimizations: []string{fmt.Sprintf("will build a secondary index after %d more call(s)", remainingUntilIndex(count))},
	}
}

// remainingUntilIndex returns how many more FindNodesByProperty calls
// for the same property are needed before a secondary index is built.
func remainingUntilIndex(count int) int {
	remaining := indexThreshold - count
	if remaining < 0 {
		return 0
	}
	return remaining
}
