package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/value"
)

// fakeGraph is a minimal in-memory Graph for exercising validators
// without depending on package graph (which itself depends on rules).
type fakeGraph struct {
	ids    []string
	values map[string]value.Value
	out    map[string][]EdgeView
	in     map[string]int
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{values: map[string]value.Value{}, out: map[string][]EdgeView{}, in: map[string]int{}}
}

func (g *fakeGraph) addNode(id string, v value.Value) {
	g.ids = append(g.ids, id)
	g.values[id] = v
}

func (g *fakeGraph) addEdge(from, to, typ string) {
	g.out[from] = append(g.out[from], EdgeView{Target: to, Type: typ})
	g.in[to]++
}

func (g *fakeGraph) NodeIDs() []string       { return g.ids }
func (g *fakeGraph) HasEdge(from, to string) bool {
	for _, e := range g.out[from] {
		if e.Target == to {
			return true
		}
	}
	return false
}
func (g *fakeGraph) OutEdges(id string) []EdgeView        { return g.out[id] }
func (g *fakeGraph) InDegree(id string) int                { return g.in[id] }
func (g *fakeGraph) OutDegree(id string) int                { return len(g.out[id]) }
func (g *fakeGraph) NodeValue(id string) (value.Value, bool) { v, ok := g.values[id]; return v, ok }
func (g *fakeGraph) SetNodeValue(id string, v value.Value) error {
	g.values[id] = v
	return nil
}
func (g *fakeGraph) RemoveNode(id string) error {
	for i, x := range g.ids {
		if x == id {
			g.ids = append(g.ids[:i], g.ids[i+1:]...)
			break
		}
	}
	delete(g.values, id)
	delete(g.out, id)
	delete(g.in, id)
	for from, edges := range g.out {
		kept := edges[:0]
		for _, e := range edges {
			if e.Target != id {
				kept = append(kept, e)
			}
		}
		g.out[from] = kept
	}
	return nil
}

func TestNoCyclesDetectsCycle(t *testing.T) {
	g := newFakeGraph()
	g.addNode("a", value.Nil)
	g.addNode("b", value.Nil)
	g.addEdge("a", "b", "next")
	g.addEdge("b", "a", "next")
	require.Error(t, NoCycles().Validate(g))
}

func TestTreeRulesetOnValidTree(t *testing.T) {
	g := newFakeGraph()
	g.addNode("root", value.Nil)
	g.addNode("l", value.Nil)
	g.addNode("r", value.Nil)
	g.addEdge("root", "l", "child")
	g.addEdge("root", "r", "child")

	specs, err := Ruleset("tree")
	require.NoError(t, err)
	for _, s := range specs {
		require.NoError(t, s.Validate(g))
	}
}

func TestMaxDegreeRejectsOverflow(t *testing.T) {
	g := newFakeGraph()
	g.addNode("root", value.Nil)
	g.addNode("a", value.Nil)
	g.addNode("b", value.Nil)
	g.addNode("c", value.Nil)
	g.addEdge("root", "a", "child")
	g.addEdge("root", "b", "child")
	g.addEdge("root", "c", "child")
	require.Error(t, MaxDegree(2).Validate(g))
}

func TestTransformUppercaseAndRange(t *testing.T) {
	out, err := Uppercase().Transform(value.String("hi"))
	require.NoError(t, err)
	require.Equal(t, value.String("HI"), out)

	out, err = ValidateRange(0, 10).Transform(value.Number(42))
	require.NoError(t, err)
	require.Equal(t, value.Number(10), out)
}

func TestApplyRetroCleanRemovesCycle(t *testing.T) {
	g := newFakeGraph()
	g.addNode("a", value.Nil)
	g.addNode("b", value.Nil)
	g.addEdge("a", "b", "next")
	g.addEdge("b", "a", "next")

	err := ApplyRetro(NoCycles(), g, RetroClean)
	require.NoError(t, err)
	require.NoError(t, NoCycles().Validate(g))
}

func TestApplyTransformToExistingRewritesValues(t *testing.T) {
	g := newFakeGraph()
	g.addNode("a", value.String("hello"))
	g.addNode("b", value.String("world"))

	require.NoError(t, ApplyTransformToExisting(Uppercase(), g))

	av, _ := g.NodeValue("a")
	require.Equal(t, value.String("HELLO"), av)
	bv, _ := g.NodeValue("b")
	require.Equal(t, value.String("WORLD"), bv)
}

func TestApplyTransformToExistingNoOpForValidationRule(t *testing.T) {
	g := newFakeGraph()
	g.addNode("a", value.String("hello"))

	require.NoError(t, ApplyTransformToExisting(NoCycles(), g))

	av, _ := g.NodeValue("a")
	require.Equal(t, value.String("hello"), av)
}

func TestFromSymbolUnknown(t *testing.T) {
	_, err := FromSymbol("not_a_rule")
	require.ErrorIs(t, err, ErrUnknownRule)
}
