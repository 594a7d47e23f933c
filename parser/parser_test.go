package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/token"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse("test.gr", src)
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func TestParseVarDeclAndAssignment(t *testing.T) {
	prog := parseOK(t, "x = 5\nlist<num> scores = [1, 2, 3]\nx = 6\n")
	require.Len(t, prog.Statements, 3)

	assign, ok := prog.Statements[0].(*ast.Assignment)
	require.True(t, ok)
	id, ok := assign.Target.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "x", id.Name)

	decl, ok := prog.Statements[1].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "list", decl.TypeName)
	require.Equal(t, "num", decl.TypeParam)
	require.Equal(t, "scores", decl.Name)
	list, ok := decl.Value.(*ast.ListLit)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)
}

func TestParseFunctionDeclWithDefaultAndVariadic(t *testing.T) {
	prog := parseOK(t, "fn greet(name, greeting = \"hi\", ...rest) {\n return name\n}\n")
	decl, ok := prog.Statements[0].(*ast.FunctionDecl)
	require.True(t, ok)
	require.Equal(t, "greet", decl.Name)
	require.Len(t, decl.Params, 3)
	require.Equal(t, "name", decl.Params[0].Name)
	require.Nil(t, decl.Params[0].Default)
	require.Equal(t, "greeting", decl.Params[1].Name)
	require.NotNil(t, decl.Params[1].Default)
	require.Equal(t, "rest", decl.Params[2].Name)
	require.True(t, decl.Params[2].Variadic)
}

func TestParseVariadicNotLastIsError(t *testing.T) {
	_, err := Parse("test.gr", "fn f(...rest, x) { return x }")
	require.Error(t, err)
}

func TestParseIfElseStatement(t *testing.T) {
	prog := parseOK(t, "if x > 0 {\n  y = 1\n} else {\n  y = 2\n}\n")
	stmt, ok := prog.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, stmt.Cond)
	require.NotNil(t, stmt.Then)
	require.NotNil(t, stmt.Else)
}

func TestParseWhileAndForLoop(t *testing.T) {
	prog := parseOK(t, "while x < 10 {\n  x = x + 1\n}\nfor item in items {\n  sum = sum + item\n}\n")
	require.IsType(t, &ast.WhileStmt{}, prog.Statements[0])
	forStmt, ok := prog.Statements[1].(*ast.ForStmt)
	require.True(t, ok)
	require.Equal(t, "item", forStmt.Var)
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parseOK(t, `
try {
  raise :value("bad")
} catch :value as e {
  log(e)
} catch {
  log("any")
} finally {
  cleanup()
}
`)
	stmt, ok := prog.Statements[0].(*ast.TryStmt)
	require.True(t, ok)
	require.Len(t, stmt.Catches, 2)
	require.NotNil(t, stmt.Catches[0].Type)
	require.Equal(t, "e", stmt.Catches[0].Bind)
	require.Nil(t, stmt.Catches[1].Type)
	require.NotNil(t, stmt.Finally)
}

func TestParseRaiseWithKindAndMessage(t *testing.T) {
	prog := parseOK(t, `raise :runtime("boom")`)
	stmt, ok := prog.Statements[0].(*ast.RaiseStmt)
	require.True(t, ok)
	require.Equal(t, "runtime", stmt.Kind)
	require.NotNil(t, stmt.Message)
}

func TestParseConfigureAndPrecisionBlocks(t *testing.T) {
	prog := parseOK(t, "configure { error_mode: :lenient } {\n  x = 1\n}\nprecision 2 {\n  y = 1.005\n}\n")
	cfg, ok := prog.Statements[0].(*ast.ConfigureStmt)
	require.True(t, ok)
	require.Len(t, cfg.Settings, 1)
	require.NotNil(t, cfg.Body)

	prec, ok := prog.Statements[1].(*ast.PrecisionStmt)
	require.True(t, ok)
	require.NotNil(t, prec.Places)
	require.NotNil(t, prec.Body)
}

func TestParseTreeDesugarsToGraphWithRuleset(t *testing.T) {
	prog := parseOK(t, `t = tree { type: :directed }`)
	assign := prog.Statements[0].(*ast.Assignment)
	call, ok := assign.Value.(*ast.MethodCallExpr)
	require.True(t, ok)
	require.Equal(t, "with_ruleset", call.Method)
	require.Len(t, call.Args, 1)
	sym, ok := call.Args[0].Value.(*ast.SymbolLit)
	require.True(t, ok)
	require.Equal(t, "tree", sym.Name)
	_, ok = call.Receiver.(*ast.GraphLit)
	require.True(t, ok)
}

func TestParseBinaryTreeAndBstDesugar(t *testing.T) {
	for _, tc := range []struct{ src, want string }{
		{`b = binary_tree {}`, "binary_tree"},
		{`b = bst {}`, "bst"},
		{`b = dag {}`, "dag"},
	} {
		prog := parseOK(t, tc.src)
		assign := prog.Statements[0].(*ast.Assignment)
		call := assign.Value.(*ast.MethodCallExpr)
		sym := call.Args[0].Value.(*ast.SymbolLit)
		require.Equal(t, tc.want, sym.Name)
	}
}

func TestParseNamedArgumentsOrderingAndDuplicates(t *testing.T) {
	_, err := Parse("test.gr", `f(a, b: 1, c)`)
	require.Error(t, err)

	_, err = Parse("test.gr", `f(a: 1, a: 2)`)
	require.Error(t, err)

	prog := parseOK(t, `f(1, 2, b: 3)`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.CallExpr)
	require.Len(t, call.Args, 3)
	require.Equal(t, "", call.Args[0].Name)
	require.Equal(t, "b", call.Args[2].Name)
}

func TestParseMultiParameterGenericIsError(t *testing.T) {
	_, err := Parse("test.gr", `list<num, string> xs = []`)
	require.Error(t, err)
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog := parseOK(t, `x = 1 + 2 * 3 ^ 2`)
	assign := prog.Statements[0].(*ast.Assignment)
	top, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.Plus, top.Op)
	right, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.Star, right.Op)
	power, ok := right.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.Caret, power.Op)
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	prog := parseOK(t, `x = 2 ^ 3 ^ 2`)
	assign := prog.Statements[0].(*ast.Assignment)
	top := assign.Value.(*ast.BinaryExpr)
	_, rightIsPower := top.Right.(*ast.BinaryExpr)
	require.True(t, rightIsPower)
	_, leftIsPower := top.Left.(*ast.BinaryExpr)
	require.False(t, leftIsPower)
}

func TestParseInlineConditionalAndSuffixForms(t *testing.T) {
	prog := parseOK(t, "x = if a then 1 else 2\ny = 3 if cond\nz = 4 unless cond\n")
	xAssign := prog.Statements[0].(*ast.Assignment)
	cond, ok := xAssign.Value.(*ast.CondExpr)
	require.True(t, ok)
	require.NotNil(t, cond.Cond)

	yAssign := prog.Statements[1].(*ast.Assignment)
	yCond, ok := yAssign.Value.(*ast.CondExpr)
	require.True(t, ok)
	_, isNone := yCond.Else.(*ast.NoneLit)
	require.True(t, isNone)

	zAssign := prog.Statements[2].(*ast.Assignment)
	zCond, ok := zAssign.Value.(*ast.CondExpr)
	require.True(t, ok)
	_, negated := zCond.Cond.(*ast.UnaryExpr)
	require.True(t, negated)
}

func TestParseLambdaSingleAndMultiParam(t *testing.T) {
	prog := parseOK(t, "f = x => x + 1\ng = (a, b) => a + b\n")
	fAssign := prog.Statements[0].(*ast.Assignment)
	fLit, ok := fAssign.Value.(*ast.FunctionLit)
	require.True(t, ok)
	require.Len(t, fLit.Params, 1)
	require.Equal(t, "x", fLit.Params[0].Name)
	_, bodyIsExpr := fLit.Body.(ast.Expr)
	require.True(t, bodyIsExpr)

	gAssign := prog.Statements[1].(*ast.Assignment)
	gLit := gAssign.Value.(*ast.FunctionLit)
	require.Len(t, gLit.Params, 2)
}

func TestParseBlockBodyLambdaIsReservedError(t *testing.T) {
	_, err := Parse("test.gr", `f = x => { return x }`)
	require.Error(t, err)
}

func TestParseIndexAndSliceExpressions(t *testing.T) {
	prog := parseOK(t, "a = xs[0]\nb = xs[1:3]\nc = xs[:3]\nd = xs[1:]\n")
	a := prog.Statements[0].(*ast.Assignment)
	_, ok := a.Value.(*ast.IndexExpr)
	require.True(t, ok)

	b := prog.Statements[1].(*ast.Assignment)
	sl, ok := b.Value.(*ast.SliceExpr)
	require.True(t, ok)
	require.NotNil(t, sl.Low)
	require.NotNil(t, sl.High)

	c := prog.Statements[2].(*ast.Assignment)
	clSlice := c.Value.(*ast.SliceExpr)
	require.Nil(t, clSlice.Low)
	require.NotNil(t, clSlice.High)

	d := prog.Statements[3].(*ast.Assignment)
	dSlice := d.Value.(*ast.SliceExpr)
	require.NotNil(t, dSlice.Low)
	require.Nil(t, dSlice.High)
}

func TestParseMethodCallAndDotAccess(t *testing.T) {
	prog := parseOK(t, "a = g.neighbors(n)\nb = ns.symbol\n")
	aAssign := prog.Statements[0].(*ast.Assignment)
	method, ok := aAssign.Value.(*ast.MethodCallExpr)
	require.True(t, ok)
	require.Equal(t, "neighbors", method.Method)

	bAssign := prog.Statements[1].(*ast.Assignment)
	dot, ok := bAssign.Value.(*ast.DotExpr)
	require.True(t, ok)
	require.Equal(t, "symbol", dot.Member)
}

func TestParsePatternConstructors(t *testing.T) {
	prog := parseOK(t, `m = g.match([node("x", type: "Person"), edge(type: "Knows", direction: :outgoing), path(type: "Knows", min: 1, max: 3)])`)
	assign := prog.Statements[0].(*ast.Assignment)
	call := assign.Value.(*ast.MethodCallExpr)
	require.Equal(t, "match", call.Method)
	require.Len(t, call.Args, 1)
	list, ok := call.Args[0].Value.(*ast.ListLit)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)

	n, ok := list.Elements[0].(*ast.PatternNode)
	require.True(t, ok)
	require.Equal(t, "x", n.Var)
	require.NotNil(t, n.Type)

	e, ok := list.Elements[1].(*ast.PatternEdge)
	require.True(t, ok)
	require.Equal(t, "outgoing", e.Direction)

	path, ok := list.Elements[2].(*ast.PatternPath)
	require.True(t, ok)
	require.NotNil(t, path.Min)
	require.NotNil(t, path.Max)
}

func TestParseImportAndLoad(t *testing.T) {
	prog := parseOK(t, `
import "graph_utils/path"
load "scripts/helpers.gr"
`)
	imp, ok := prog.Statements[0].(*ast.ImportStmt)
	require.True(t, ok)
	require.Equal(t, "graph_utils/path", imp.Path)
	require.Equal(t, "path", imp.Alias)

	load, ok := prog.Statements[1].(*ast.LoadStmt)
	require.True(t, ok)
	require.Equal(t, "scripts/helpers.gr", load.Path)
}

func TestParseModuleDeclWithPrivMembers(t *testing.T) {
	prog := parseOK(t, `
module stats {
  priv total = 0
  fn add(x) {
    return x
  }
}
`)
	mod, ok := prog.Statements[0].(*ast.ModuleDecl)
	require.True(t, ok)
	require.Equal(t, "stats", mod.Name)
	require.Len(t, mod.Body, 2)
	decl, ok := mod.Body[0].(*ast.VarDecl)
	require.True(t, ok)
	require.True(t, decl.Priv)
}

func TestParseInvalidAssignmentTargetIsError(t *testing.T) {
	_, err := Parse("test.gr", `1 + 2 = 3`)
	require.Error(t, err)
}

func TestParseUnexpectedTokenIsError(t *testing.T) {
	_, err := Parse("test.gr", `x = )`)
	require.Error(t, err)
}

func TestParseMissingClosingDelimiterIsError(t *testing.T) {
	_, err := Parse("test.gr", `x = [1, 2`)
	require.Error(t, err)
}

func TestParseGraphLiteral(t *testing.T) {
	prog := parseOK(t, `g = graph { type: :directed, weighted: true }`)
	assign := prog.Statements[0].(*ast.Assignment)
	lit, ok := assign.Value.(*ast.GraphLit)
	require.True(t, ok)
	require.Len(t, lit.Settings, 2)
}

func TestParseMapLiteral(t *testing.T) {
	prog := parseOK(t, `m = { a: 1, b: 2 }`)
	assign := prog.Statements[0].(*ast.Assignment)
	lit, ok := assign.Value.(*ast.MapLit)
	require.True(t, ok)
	require.Len(t, lit.Entries, 2)
}
