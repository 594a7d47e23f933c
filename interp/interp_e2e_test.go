package interp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/interp"
	"github.com/graphoid-lang/graphoid/parser"
	"github.com/graphoid-lang/graphoid/value"
)

// run parses and executes src as a full program against in's global
// scope, failing the test on any parse or execution error.
func run(t *testing.T, in *interp.Interp, src string) {
	t.Helper()
	prog, err := parser.Parse("e2e.gr", src)
	require.NoError(t, err)
	require.NoError(t, in.Run(prog))
}

// evalExpr parses src as a single expression statement and evaluates it
// directly in in's global scope, returning its value.
func evalExpr(t *testing.T, in *interp.Interp, src string) value.Value {
	t.Helper()
	prog, err := parser.Parse("expr.gr", src)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	exprStmt, ok := prog.Statements[0].(*ast.ExprStmt)
	require.True(t, ok, "expected an expression statement, got %T", prog.Statements[0])
	v, err := in.Eval(exprStmt.Expr, in.Globals)
	require.NoError(t, err)
	return v
}

func mustGet(t *testing.T, in *interp.Interp, name string) value.Value {
	t.Helper()
	v, ok := in.Globals.Get(name)
	require.True(t, ok, "expected global %q to be bound", name)
	return v
}

type listLike interface {
	Values() []value.Value
}

func asList(t *testing.T, v value.Value) listLike {
	t.Helper()
	l, ok := v.(listLike)
	require.True(t, ok, "expected a list-shaped value, got %T", v)
	return l
}

func TestS1ListAsGraph(t *testing.T) {
	in := interp.New("s1.gr", nil)
	run(t, in, `xs = [10, 20, 30]`)

	require.Equal(t, value.Number(3), evalExpr(t, in, `xs.length()`))
	require.Equal(t, value.Number(10), evalExpr(t, in, `xs.first()`))
	require.Equal(t, value.Number(30), evalExpr(t, in, `xs.last()`))

	reversed := asList(t, evalExpr(t, in, `xs.reverse()`))
	require.Equal(t, []value.Value{value.Number(30), value.Number(20), value.Number(10)}, reversed.Values())

	// xs itself is unchanged by the non-mutating `.reverse()` form.
	original := asList(t, evalExpr(t, in, `xs`))
	require.Equal(t, []value.Value{value.Number(10), value.Number(20), value.Number(30)}, original.Values())
}

func TestS2MapRetroactiveTransformationRule(t *testing.T) {
	in := interp.New("s2.gr", nil)
	run(t, in, `m = {"a": "hello", "b": "world"}
m.add_rule(:uppercase, :clean)`)

	require.Equal(t, value.String("HELLO"), evalExpr(t, in, `m["a"]`))
	require.Equal(t, value.String("WORLD"), evalExpr(t, in, `m["b"]`))

	run(t, in, `m["c"] = "foo"`)
	require.Equal(t, value.String("FOO"), evalExpr(t, in, `m["c"]`))
}

func TestS3Dijkstra(t *testing.T) {
	in := interp.New("s3.gr", nil)
	run(t, in, `g = graph { directed: true }
g.add_node("A", "A")
g.add_node("B", "B")
g.add_node("C", "C")
g.add_node("D", "D")
g.add_edge("A", "B", "", weight: 4)
g.add_edge("A", "C", "", weight: 2)
g.add_edge("C", "B", "", weight: 1)
g.add_edge("B", "D", "", weight: 1)
g.add_edge("C", "D", "", weight: 5)`)

	path := asList(t, evalExpr(t, in, `g.shortest_path("A", "D", weighted: true)`))
	require.Equal(t,
		[]value.Value{value.String("A"), value.String("C"), value.String("B"), value.String("D")},
		path.Values())
}

func TestGraphTraversalEdgeTypeFilterAndNamedHopsMaxLength(t *testing.T) {
	in := interp.New("traversal.gr", nil)
	run(t, in, `g = graph { directed: true }
g.add_node("a", "a")
g.add_node("b", "b")
g.add_node("c", "c")
g.add_edge("a", "b", "FRIEND")
g.add_edge("a", "c", "BLOCKS")
g.add_edge("b", "c", "FRIEND")`)

	friendPath := asList(t, evalExpr(t, in, `g.shortest_path("a", "c", edge_type: "FRIEND")`))
	require.Equal(t, []value.Value{value.String("a"), value.String("b"), value.String("c")}, friendPath.Values())

	blocked := evalExpr(t, in, `g.shortest_path("a", "c", edge_type: "MENTORS")`)
	require.Equal(t, value.Nil, blocked)

	within := asList(t, evalExpr(t, in, `g.nodes_within("a", hops: 2, edge_type: "FRIEND")`))
	require.ElementsMatch(t, []value.Value{value.String("a"), value.String("b"), value.String("c")}, within.Values())

	paths := asList(t, evalExpr(t, in, `g.all_paths("a", "c", max_length: 1, edge_type: "FRIEND")`))
	require.Len(t, paths.Values(), 0)
}

func TestS4PatternMatch(t *testing.T) {
	in := interp.New("s4.gr", nil)
	run(t, in, `g = graph { directed: true }
g.add_node("alice", "Alice", type: "User")
g.add_node("bob", "Bob", type: "User")
g.add_node("carol", "Carol", type: "User")
g.add_node("dave", "Dave", type: "User")
g.add_edge("alice", "bob", "FRIEND")
g.add_edge("bob", "carol", "FRIEND")
g.add_edge("alice", "dave", "FRIEND")`)

	rows := asList(t, evalExpr(t, in,
		`g.match([node("x", type:"User"), edge(type:"FRIEND"), node("y", type:"User")]).where(m => m["x"] != "Alice").return_vars(["x", "y"])`))
	require.Len(t, rows.Values(), 1)

	row, ok := rows.Values()[0].(interface {
		Get(string) (value.Value, error)
	})
	require.True(t, ok)
	x, err := row.Get("x")
	require.NoError(t, err)
	y, err := row.Get("y")
	require.NoError(t, err)
	require.Equal(t, value.String("Bob"), x)
	require.Equal(t, value.String("Carol"), y)
}

func TestS5LenientMode(t *testing.T) {
	in := interp.New("s5.gr", nil)
	run(t, in, `configure { error_mode: :lenient } {
    a = 10 / 0
    b = [1,2][99]
    c = {"a":1}["z"]
}`)

	require.Equal(t, value.Nil, mustGet(t, in, "a"))
	require.Equal(t, value.Nil, mustGet(t, in, "b"))
	require.Equal(t, value.Nil, mustGet(t, in, "c"))

	prog, err := parser.Parse("s5.gr", `configure { error_mode: :lenient } {
    raise :value("x")
}`)
	require.NoError(t, err)
	err = in.Run(prog)
	require.Error(t, err)
	le, ok := err.(*errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.ValueKind, le.LangKind())
}

func TestS6TryCatchFinallyChaining(t *testing.T) {
	in := interp.New("s6.gr", nil)
	run(t, in, `try {
    try { raise :value("inner") }
    catch :value as e { raise :runtime("outer") }
}
catch :runtime as e {
    outer_kind = e.kind()
    inner_kind = e.cause().kind()
    chain_len = e.chain().length()
}`)

	require.Equal(t, value.Symbol("runtime"), mustGet(t, in, "outer_kind"))
	require.Equal(t, value.Symbol("value"), mustGet(t, in, "inner_kind"))
	require.Equal(t, value.Number(2), mustGet(t, in, "chain_len"))
}

func TestS7Closures(t *testing.T) {
	in := interp.New("s7.gr", nil)
	run(t, in, `fn make_counter() {
    count = 0
    fn step() { count = count + 1; return count }
    return step
}
c1 = make_counter()
c2 = make_counter()`)

	require.Equal(t, value.Number(1), evalExpr(t, in, `c1()`))
	require.Equal(t, value.Number(2), evalExpr(t, in, `c1()`))
	require.Equal(t, value.Number(3), evalExpr(t, in, `c1()`))
	require.Equal(t, value.Number(1), evalExpr(t, in, `c2()`))
}
