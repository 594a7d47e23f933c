package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/value"
)

// patternElemKind is the runtime kind of a pattern constructor's result
// (spec §4.3.2's "pattern ctor" row: "return structured pattern
// objects"). Like namespaceKind, it deliberately is not one of value.
// Kind's named constants: these values only ever exist transiently as
// elements of the list passed to graph.match(...).
const patternElemKind value.Kind = "pattern_element"

// patternElement wraps a graph.PatternElement so it can flow through
// Eval/evalListLit like any other value, to be unwrapped by toPatternElements.
type patternElement struct {
	elem graph.PatternElement
}

func (p *patternElement) Kind() value.Kind      { return patternElemKind }
func (p *patternElement) Truthy() bool          { return true }
func (p *patternElement) Display() string       { return "<pattern>" }
func (p *patternElement) Equal(o value.Value) bool {
	op, ok := o.(*patternElement)
	return ok && op == p
}

func (in *Interp) evalPatternElement(expr ast.Expr, env value.Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.PatternNode:
		typ, err := in.optionalTypeString(e.Type, env)
		if err != nil {
			return nil, err
		}
		return &patternElement{elem: graph.NodePattern{Var: e.Var, Type: typ}}, nil
	case *ast.PatternEdge:
		typ, err := in.optionalTypeString(e.Type, env)
		if err != nil {
			return nil, err
		}
		return &patternElement{elem: graph.EdgePattern{Type: typ, Direction: patternDirection(e.Direction)}}, nil
	case *ast.PatternPath:
		typ, err := in.optionalTypeString(e.Type, env)
		if err != nil {
			return nil, err
		}
		min, err := in.intArgOrDefault(e.Min, env, 1)
		if err != nil {
			return nil, err
		}
		max, err := in.intArgOrDefault(e.Max, env, min)
		if err != nil {
			return nil, err
		}
		return &patternElement{elem: graph.PathPattern{Type: typ, Min: min, Max: max, Direction: patternDirection(e.Direction)}}, nil
	default:
		return nil, in.raise(errorx.Runtime, expr.Pos(), "not a pattern constructor: %T", expr)
	}
}

func patternDirection(d string) graph.Direction {
	if d == "" {
		return graph.DirOutgoing
	}
	return graph.Direction(d)
}

func (in *Interp) optionalTypeString(e ast.Expr, env value.Environment) (*string, error) {
	if e == nil {
		return nil, nil
	}
	v, err := in.Eval(e, env)
	if err != nil {
		return nil, err
	}
	s := mapKeyString(v)
	return &s, nil
}

func (in *Interp) intArgOrDefault(e ast.Expr, env value.Environment, deflt int) (int, error) {
	if e == nil {
		return deflt, nil
	}
	v, err := in.Eval(e, env)
	if err != nil {
		return 0, err
	}
	n, ok := v.(value.Number)
	if !ok {
		return 0, in.raise(errorx.Type, e.Pos(), "expected a number, got %s", v.Kind())
	}
	return int(n), nil
}
