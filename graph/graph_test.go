package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

func buildLinear(t *testing.T) *Graph {
	t.Helper()
	g := New(true)
	require.NoError(t, g.AddNode("a", value.Number(1), nil))
	require.NoError(t, g.AddNode("b", value.Number(2), nil))
	require.NoError(t, g.AddNode("c", value.Number(3), nil))
	require.NoError(t, g.AddEdge("a", "b", "next"))
	require.NoError(t, g.AddEdge("b", "c", "next"))
	return g
}

func TestAddNodeAddEdgeCounts(t *testing.T) {
	g := buildLinear(t)
	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 2, g.EdgeCount())
	require.True(t, g.HasEdge("a", "b"))
	require.False(t, g.HasEdge("c", "a"))
}

func TestAddEdgeRejectsSelfLoopAndMissingNode(t *testing.T) {
	g := New(true)
	require.NoError(t, g.AddNode("a", value.Nil, nil))
	require.ErrorIs(t, g.AddEdge("a", "a", "next"), ErrSelfLoop)
	require.ErrorIs(t, g.AddEdge("a", "ghost", "next"), ErrNodeNotFound)
}

func TestRemoveNodeCleansEdges(t *testing.T) {
	g := buildLinear(t)
	require.NoError(t, g.RemoveNode("b"))
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 0, g.EdgeCount())
}

func TestBFSandDFSOrder(t *testing.T) {
	g := buildLinear(t)
	order, err := g.BFS("a")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, order)

	dfsOrder, err := g.DFS("a")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, dfsOrder)
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	g := buildLinear(t)
	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, order)

	require.NoError(t, g.AddEdge("c", "a", "back"))
	_, err = g.TopologicalSort()
	require.ErrorIs(t, err, ErrCyclic)
}

func TestShortestPathUnweightedAndWeighted(t *testing.T) {
	g := buildLinear(t)
	path, ok, err := g.ShortestPathUnweighted("a", "c", "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b", "c"}, path)

	g2 := New(true)
	require.NoError(t, g2.AddNode("x", value.Nil, nil))
	require.NoError(t, g2.AddNode("y", value.Nil, nil))
	require.NoError(t, g2.AddNode("z", value.Nil, nil))
	require.NoError(t, g2.AddEdge("x", "y", "e", WithWeight(5)))
	require.NoError(t, g2.AddEdge("x", "z", "e", WithWeight(1)))
	require.NoError(t, g2.AddEdge("z", "y", "e", WithWeight(1)))
	path2, cost, ok2, err := g2.ShortestPathWeighted("x", "y", "")
	require.NoError(t, err)
	require.True(t, ok2)
	require.Equal(t, []string{"x", "z", "y"}, path2)
	require.Equal(t, 2.0, cost)
}

func TestHasPathAndDistance(t *testing.T) {
	g := buildLinear(t)
	require.True(t, g.HasPath("a", "c"))
	require.False(t, g.HasPath("c", "a"))
	d, ok := g.Distance("a", "c")
	require.True(t, ok)
	require.Equal(t, 2, d)
}

func TestNodesWithinAndAllPaths(t *testing.T) {
	g := buildLinear(t)
	within, err := g.NodesWithin("a", 1, "")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, within)

	paths, err := g.AllPaths("a", "c", 0, "")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Equal(t, []string{"a", "b", "c"}, paths[0])
}

func TestPathOpsRespectEdgeTypeFilter(t *testing.T) {
	g := New(true)
	require.NoError(t, g.AddNode("a", value.Nil, nil))
	require.NoError(t, g.AddNode("b", value.Nil, nil))
	require.NoError(t, g.AddNode("c", value.Nil, nil))
	require.NoError(t, g.AddEdge("a", "b", "FRIEND"))
	require.NoError(t, g.AddEdge("a", "c", "BLOCKS"))
	require.NoError(t, g.AddEdge("b", "c", "FRIEND"))

	path, ok, err := g.ShortestPathUnweighted("a", "c", "FRIEND")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b", "c"}, path)

	_, ok, err = g.ShortestPathUnweighted("a", "c", "MENTORS")
	require.NoError(t, err)
	require.False(t, ok)

	within, err := g.NodesWithin("a", 2, "FRIEND")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, within)

	withinBlocked, err := g.NodesWithin("a", 2, "BLOCKS")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "c"}, withinBlocked)

	paths, err := g.AllPaths("a", "c", 0, "FRIEND")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Equal(t, []string{"a", "b", "c"}, paths[0])
}

func TestFindNodesByPropertyLinearThenIndexed(t *testing.T) {
	g := New(true)
	for i := 0; i < 3; i++ {
		id := string(rune('a' + i))
		require.NoError(t, g.AddNode(id, value.Nil, map[string]value.Value{"color": value.String("red")}))
	}
	for i := 0; i < indexThreshold+1; i++ {
		got := g.FindNodesByProperty("color", value.String("red"))
		require.Len(t, got, 3)
	}
	require.Contains(t, g.IndexedProperties(), "color")
}

func TestMatchSimplePath(t *testing.T) {
	g := New(true)
	require.NoError(t, g.AddNode("alice", value.Nil, map[string]value.Value{"type": value.String("person")}))
	require.NoError(t, g.AddNode("bob", value.Nil, map[string]value.Value{"type": value.String("person")}))
	require.NoError(t, g.AddEdge("alice", "bob", "knows"))

	typ := "person"
	edgeTyp := "knows"
	results, err := g.Match([]PatternElement{
		NodePattern{Var: "a", Type: &typ},
		EdgePattern{Type: &edgeTyp, Direction: DirOutgoing},
		NodePattern{Var: "b", Type: &typ},
	})
	require.NoError(t, err)
	require.Equal(t, 1, results.Len())
	require.Equal(t, "alice", results.Bindings()[0]["a"])
	require.Equal(t, "bob", results.Bindings()[0]["b"])
}

func TestExtractSubgraphAndInsertSubgraph(t *testing.T) {
	g := buildLinear(t)
	sub, err := g.ExtractSubgraph("a", 1)
	require.NoError(t, err)
	require.Equal(t, 2, sub.NodeCount())
	require.True(t, sub.HasEdge("a", "b"))

	host := New(true)
	require.NoError(t, host.AddNode("root", value.Nil, nil))
	rename, err := host.InsertSubgraph(sub, "root", "child")
	require.NoError(t, err)
	require.Len(t, rename, 2)
	require.Equal(t, 3, host.NodeCount())
}

func TestAddRuleEnforceRejectsCycle(t *testing.T) {
	g := New(true)
	require.NoError(t, g.AddNode("a", value.Nil, nil))
	require.NoError(t, g.AddNode("b", value.Nil, nil))
	require.NoError(t, g.AddEdge("a", "b", "next"))
	require.NoError(t, g.AddEdge("b", "a", "next"))

	err := g.AddRule(rules.NoCycles(), rules.SeverityError, rules.RetroEnforce)
	require.ErrorIs(t, err, ErrRuleViolation)
}

func TestAddRuleCleanRemovesViolatingNode(t *testing.T) {
	g := New(true)
	require.NoError(t, g.AddNode("a", value.Nil, nil))
	require.NoError(t, g.AddNode("b", value.Nil, nil))
	require.NoError(t, g.AddEdge("a", "b", "next"))
	require.NoError(t, g.AddEdge("b", "a", "next"))

	require.NoError(t, g.AddRule(rules.NoCycles(), rules.SeverityError, rules.RetroClean))
	require.NoError(t, g.ValidateRules())
}

func TestFreezeRejectsMutation(t *testing.T) {
	g := buildLinear(t)
	g.Freeze()
	require.ErrorIs(t, g.AddNode("d", value.Nil, nil), ErrFrozen)
}

func TestDisplayDeterministic(t *testing.T) {
	g1 := buildLinear(t)
	g2 := buildLinear(t)
	require.Equal(t, g1.Display(), g2.Display())
}

func TestEqualStructural(t *testing.T) {
	g1 := buildLinear(t)
	g2 := buildLinear(t)
	require.True(t, g1.Equal(g2))
	require.NoError(t, g2.AddNode("d", value.Nil, nil))
	require.False(t, g1.Equal(g2))
}
