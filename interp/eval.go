package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/token"
	"github.com/graphoid-lang/graphoid/value"
)

// Eval evaluates expr in env, implementing spec §4.3.2's per-kind
// contract table.
func (in *Interp) Eval(expr ast.Expr, env value.Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return value.Number(e.Value), nil
	case *ast.StringLit:
		return value.String(e.Value), nil
	case *ast.SymbolLit:
		return value.Symbol(e.Name), nil
	case *ast.BoolLit:
		return value.Bool(e.Value), nil
	case *ast.NoneLit:
		return value.Nil, nil
	case *ast.RegexLit:
		re, err := value.NewRegex(e.Pattern, e.Flags)
		if err != nil {
			return nil, in.raise(errorx.Syntax, e.Position, "invalid regex /%s/%s: %s", e.Pattern, e.Flags, err)
		}
		return re, nil
	case *ast.Identifier:
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		return nil, in.raise(errorx.Runtime, e.Position, "undefined variable %q", e.Name)
	case *ast.ListLit:
		return in.evalListLit(e, env)
	case *ast.MapLit:
		return in.evalMapLit(e, env)
	case *ast.GraphLit:
		return in.evalGraphLit(e, env)
	case *ast.FunctionLit:
		return &value.Function{Name: e.Name, Params: toValueParams(e.Params), Body: e.Body, Env: env}, nil
	case *ast.BinaryExpr:
		left, err := in.Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := in.Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return in.evalBinary(e.Op, left, right, e.Position)
	case *ast.UnaryExpr:
		return in.evalUnary(e, env)
	case *ast.LogicalExpr:
		return in.evalLogical(e, env)
	case *ast.IndexExpr:
		return in.evalIndex(e, env)
	case *ast.SliceExpr:
		return in.evalSlice(e, env)
	case *ast.CondExpr:
		cond, err := in.Eval(e.Cond, env)
		if err != nil {
			return nil, err
		}
		if cond.Truthy() {
			return in.Eval(e.Then, env)
		}
		return in.Eval(e.Else, env)
	case *ast.CallExpr:
		return in.evalCall(e, env)
	case *ast.MethodCallExpr:
		return in.evalMethodCall(e, env)
	case *ast.DotExpr:
		return in.evalDot(e, env)
	case *ast.PatternNode, *ast.PatternEdge, *ast.PatternPath:
		return in.evalPatternElement(expr, env)
	default:
		return nil, in.raise(errorx.Runtime, expr.Pos(), "unhandled expression kind %T", expr)
	}
}

func toValueParams(params []ast.Param) []value.Param {
	out := make([]value.Param, len(params))
	for i, p := range params {
		out[i] = value.Param{Name: p.Name, Default: p.Default, Variadic: p.Variadic}
	}
	return out
}

func (in *Interp) evalUnary(e *ast.UnaryExpr, env value.Environment) (value.Value, error) {
	v, err := in.Eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.Minus:
		n, ok := v.(value.Number)
		if !ok {
			return nil, in.raise(errorx.Type, e.Position, "unary '-' requires a number, got %s", v.Kind())
		}
		return value.Number(-float64(n)), nil
	case token.Bang, token.KwNot:
		return value.Bool(!v.Truthy()), nil
	case token.Tilde:
		n, ok := v.(value.Number)
		if !ok {
			return nil, in.raise(errorx.Type, e.Position, "unary '~' requires a number, got %s", v.Kind())
		}
		return value.Number(float64(^int64(n))), nil
	default:
		return nil, in.raise(errorx.Runtime, e.Position, "unsupported unary operator %v", e.Op)
	}
}

func (in *Interp) evalLogical(e *ast.LogicalExpr, env value.Environment) (value.Value, error) {
	left, err := in.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.KwAnd:
		if !left.Truthy() {
			return left, nil
		}
		return in.Eval(e.Right, env)
	case token.KwOr:
		if left.Truthy() {
			return left, nil
		}
		return in.Eval(e.Right, env)
	default:
		return nil, in.raise(errorx.Runtime, e.Position, "unsupported logical operator %v", e.Op)
	}
}

func (in *Interp) evalDot(e *ast.DotExpr, env value.Environment) (value.Value, error) {
	target, err := in.Eval(e.Target, env)
	if err != nil {
		return nil, err
	}
	ns, ok := target.(*Namespace)
	if !ok {
		return nil, in.raise(errorx.Type, e.Position, "%s has no member %q", target.Kind(), e.Member)
	}
	v, ok := ns.Get(e.Member)
	if !ok {
		return nil, in.raise(errorx.Runtime, e.Position, "%q has no member %q", ns.Name, e.Member)
	}
	return v, nil
}
