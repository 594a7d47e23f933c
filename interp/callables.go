package interp

import (
	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/value"
)

// asTransform converts an argument accepted by .map/.transform — either
// a `:symbol` naming a built-in transform or a one-argument Function —
// into a plain value->value function (spec §4.3's named-transform
// table alongside user lambdas).
func (in *Interp) asTransform(v value.Value, pos errorx.Position) (func(value.Value) (value.Value, error), error) {
	switch t := v.(type) {
	case value.Symbol:
		fn, ok := collection.NamedTransform(t.Name())
		if !ok {
			return nil, in.raise(errorx.ValueKind, pos, "unknown named transform :%s", t.Name())
		}
		return fn, nil
	case *value.Function:
		return func(arg value.Value) (value.Value, error) {
			return in.callFunction(t, []value.Value{arg}, nil, pos)
		}, nil
	default:
		return nil, in.raise(errorx.Type, pos, "expected a symbol or function, got %s", v.Kind())
	}
}

// asPredicate is asTransform's analogue for .filter/.reject/.select.
func (in *Interp) asPredicate(v value.Value, pos errorx.Position) (func(value.Value) (bool, error), error) {
	switch t := v.(type) {
	case value.Symbol:
		fn, ok := collection.NamedPredicate(t.Name())
		if !ok {
			return nil, in.raise(errorx.ValueKind, pos, "unknown named predicate :%s", t.Name())
		}
		return fn, nil
	case *value.Function:
		return func(arg value.Value) (bool, error) {
			r, err := in.callFunction(t, []value.Value{arg}, nil, pos)
			if err != nil {
				return false, err
			}
			return r.Truthy(), nil
		}, nil
	default:
		return nil, in.raise(errorx.Type, pos, "expected a symbol or function, got %s", v.Kind())
	}
}

// asReducer adapts a two-argument Function to collection.List.Reduce's
// (acc, v) -> (value, error) shape.
func (in *Interp) asReducer(v value.Value, pos errorx.Position) (func(acc, v value.Value) (value.Value, error), error) {
	fn, ok := v.(*value.Function)
	if !ok {
		return nil, in.raise(errorx.Type, pos, "reduce requires a function, got %s", v.Kind())
	}
	return func(acc, cur value.Value) (value.Value, error) {
		return in.callFunction(fn, []value.Value{acc, cur}, nil, pos)
	}, nil
}

// asComparator adapts a two-argument Function returning a Number to
// collection.List.Sort's (a, b) -> (int, error) shape; falls back to
// the natural comparator of numbers/strings when no function is given.
func (in *Interp) asComparator(v value.Value, pos errorx.Position) (func(a, b value.Value) (int, error), error) {
	if v == nil {
		return naturalCompare, nil
	}
	fn, ok := v.(*value.Function)
	if !ok {
		return nil, in.raise(errorx.Type, pos, "sort requires a function, got %s", v.Kind())
	}
	return func(a, b value.Value) (int, error) {
		r, err := in.callFunction(fn, []value.Value{a, b}, nil, pos)
		if err != nil {
			return 0, err
		}
		n, ok := r.(value.Number)
		if !ok {
			return 0, in.raise(errorx.Type, pos, "sort comparator must return a number, got %s", r.Kind())
		}
		switch {
		case n < 0:
			return -1, nil
		case n > 0:
			return 1, nil
		default:
			return 0, nil
		}
	}, nil
}

func naturalCompare(a, b value.Value) (int, error) {
	switch av := a.(type) {
	case value.Number:
		bv, ok := b.(value.Number)
		if !ok {
			return 0, nil
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case value.String:
		bv, ok := b.(value.String)
		if !ok {
			return 0, nil
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, nil
	}
}
