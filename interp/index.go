package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/value"
)

// normalizeIndex resolves a (possibly negative) index against length,
// wrapping from the end (spec §4.3.2).
func normalizeIndex(i, length int) int {
	if i < 0 {
		return length + i
	}
	return i
}

func (in *Interp) evalIndex(e *ast.IndexExpr, env value.Environment) (value.Value, error) {
	target, err := in.Eval(e.Target, env)
	if err != nil {
		return nil, err
	}
	idx, err := in.Eval(e.Index, env)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *collection.List:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, in.raise(errorx.Type, e.Position, "list index must be a number, got %s", idx.Kind())
		}
		i := normalizeIndex(int(n), t.Length())
		v, err := t.Get(i)
		if err != nil {
			return in.softFail(errorx.Index, e.Position, "list index %v out of range", int(n))
		}
		return v, nil
	case *collection.Map:
		key := mapKeyString(idx)
		v, err := t.Get(key)
		if err != nil {
			return in.softFail(errorx.Key, e.Position, "map has no key %q", key)
		}
		return v, nil
	case *graph.Graph:
		id := mapKeyString(idx)
		v, ok := t.NodeValue(id)
		if !ok {
			return in.softFail(errorx.Key, e.Position, "graph has no node %q", id)
		}
		return v, nil
	case value.String:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, in.raise(errorx.Type, e.Position, "string index must be a number, got %s", idx.Kind())
		}
		runes := []rune(string(t))
		i := normalizeIndex(int(n), len(runes))
		if i < 0 || i >= len(runes) {
			return in.softFail(errorx.Index, e.Position, "string index %v out of range", int(n))
		}
		return value.String(string(runes[i])), nil
	default:
		return nil, in.raise(errorx.Type, e.Position, "%s is not indexable", target.Kind())
	}
}

// mapKeyString renders a map/graph key value as the string form the
// backing Graph uses for node IDs: strings pass through; symbols use
// their bare name; everything else uses Display.
func mapKeyString(v value.Value) string {
	switch k := v.(type) {
	case value.String:
		return string(k)
	case value.Symbol:
		return k.Name()
	default:
		return v.Display()
	}
}

func (in *Interp) evalSlice(e *ast.SliceExpr, env value.Environment) (value.Value, error) {
	target, err := in.Eval(e.Target, env)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *collection.List:
		lo, hi, err := in.resolveSliceBounds(e, env, t.Length())
		if err != nil {
			return nil, err
		}
		vals := t.Values()
		if lo >= hi {
			return collection.NewList(), nil
		}
		return collection.NewList(vals[lo:hi]...), nil
	case value.String:
		runes := []rune(string(t))
		lo, hi, err := in.resolveSliceBounds(e, env, len(runes))
		if err != nil {
			return nil, err
		}
		if lo >= hi {
			return value.String(""), nil
		}
		return value.String(string(runes[lo:hi])), nil
	default:
		return nil, in.raise(errorx.Type, e.Position, "%s is not sliceable", target.Kind())
	}
}

// resolveSliceBounds implements spec §4.3.2's half-open, clamped,
// negative-wrapping slice-bound rule; reversed bounds yield an empty
// result rather than an error.
func (in *Interp) resolveSliceBounds(e *ast.SliceExpr, env value.Environment, length int) (int, int, error) {
	lo, hi := 0, length
	if e.Low != nil {
		v, err := in.Eval(e.Low, env)
		if err != nil {
			return 0, 0, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return 0, 0, in.raise(errorx.Type, e.Position, "slice bound must be a number, got %s", v.Kind())
		}
		lo = clampIndex(normalizeIndex(int(n), length), length)
	}
	if e.High != nil {
		v, err := in.Eval(e.High, env)
		if err != nil {
			return 0, 0, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return 0, 0, in.raise(errorx.Type, e.Position, "slice bound must be a number, got %s", v.Kind())
		}
		hi = clampIndex(normalizeIndex(int(n), length), length)
	}
	return lo, hi, nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}
