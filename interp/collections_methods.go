package interp

import (
	"errors"

	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/value"
)

// wrapCollectionErr turns a collection sentinel error into a properly
// kinded, positioned language error (spec §4.7's :index/:key kinds).
func (in *Interp) wrapCollectionErr(err error, pos errorx.Position) error {
	switch {
	case errors.Is(err, collection.ErrIndexOutOfBounds):
		return in.raise(errorx.Index, pos, "%s", err)
	case errors.Is(err, collection.ErrKeyNotFound):
		return in.raise(errorx.Key, pos, "%s", err)
	default:
		return in.raise(errorx.Runtime, pos, "%s", err)
	}
}

// softFailure reports whether err is one of the five soft-failure kinds
// spec §4.7 allows :lenient/:collect to substitute none for: list index
// out of bounds or map key not found (division-by-zero family lives in
// arith.go since it never reaches a collection.Err*).
func (in *Interp) softFailure(err error) bool {
	return errors.Is(err, collection.ErrIndexOutOfBounds) || errors.Is(err, collection.ErrKeyNotFound)
}

func (in *Interp) maybeSoften(err error, pos errorx.Position) (value.Value, error) {
	if in.softFailure(err) && in.Config.Top().ErrorMode == config.Lenient {
		return value.Nil, nil
	}
	werr := in.wrapCollectionErr(err, pos)
	if in.Config.Top().ErrorMode == config.Collect {
		if le, ok := asLangError(werr); ok {
			in.Errors.Add(le)
			return value.Nil, nil
		}
	}
	return nil, werr
}

func intArg(v value.Value) (int, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, false
	}
	return int(n), true
}

func (in *Interp) listMethod(l *collection.List, method string, args []value.Value, named map[string]value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "length":
		return value.Number(l.Length()), nil
	case "get":
		i, _ := intArg(argOr(args, 0, value.Number(0)))
		v, err := l.Get(i)
		if err != nil {
			return in.maybeSoften(err, pos)
		}
		return v, nil
	case "set":
		i, _ := intArg(argOr(args, 0, value.Number(0)))
		if err := l.Set(i, argOr(args, 1, value.Nil)); err != nil {
			return nil, in.wrapCollectionErr(err, pos)
		}
		return l, nil
	case "append!":
		if err := l.Append(argOr(args, 0, value.Nil)); err != nil {
			return nil, in.wrapCollectionErr(err, pos)
		}
		return l, nil
	case "prepend!":
		if err := l.Prepend(argOr(args, 0, value.Nil)); err != nil {
			return nil, in.wrapCollectionErr(err, pos)
		}
		return l, nil
	case "insert!":
		i, _ := intArg(argOr(args, 0, value.Number(0)))
		if err := l.Insert(i, argOr(args, 1, value.Nil)); err != nil {
			return nil, in.wrapCollectionErr(err, pos)
		}
		return l, nil
	case "remove!":
		i, _ := intArg(argOr(args, 0, value.Number(0)))
		_, err := l.Remove(i)
		if err != nil {
			return nil, in.wrapCollectionErr(err, pos)
		}
		return l, nil
	case "pop!":
		v, err := l.Pop()
		if err != nil {
			return in.maybeSoften(err, pos)
		}
		return v, nil
	case "first":
		v, err := l.First()
		if err != nil {
			return in.maybeSoften(err, pos)
		}
		return v, nil
	case "last":
		v, err := l.Last()
		if err != nil {
			return in.maybeSoften(err, pos)
		}
		return v, nil
	case "merge":
		other, ok := argOr(args, 0, nil).(*collection.List)
		if !ok {
			return nil, in.raise(errorx.Type, pos, "merge requires a list")
		}
		return l.Merge(other), nil
	case "map":
		fn, err := in.asTransform(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		out, err := l.Map(fn)
		if err != nil {
			return nil, err
		}
		return out, nil
	case "filter", "select":
		pred, err := in.asPredicate(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		return l.Filter(pred)
	case "reject":
		pred, err := in.asPredicate(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		return l.Filter(func(v value.Value) (bool, error) {
			keep, err := pred(v)
			return !keep, err
		})
	case "reduce":
		reducer, err := in.asReducer(argOr(args, 1, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		return l.Reduce(argOr(args, 0, value.Nil), reducer)
	case "sort":
		cmp, err := in.asComparator(argOr(args, 0, nil), pos)
		if err != nil {
			return nil, err
		}
		return l.Sort(cmp)
	case "reverse":
		return l.Reverse(), nil
	case "unique":
		return l.Unique(), nil
	case "flatten":
		return l.Flatten(), nil
	case "zip":
		other, ok := argOr(args, 0, nil).(*collection.List)
		if !ok {
			return nil, in.raise(errorx.Type, pos, "zip requires a list")
		}
		return l.Zip(other), nil
	case "freeze!":
		l.Freeze()
		return l, nil
	case "is_frozen":
		return value.Bool(l.IsFrozen()), nil
	case "contains_frozen":
		return value.Bool(l.ContainsFrozen()), nil
	case "to_string":
		return value.String(l.Display()), nil
	case "to_bool":
		return value.Bool(l.Truthy()), nil
	default:
		return in.graphRuleMethod(l.Backing(), method, args, named, pos)
	}
}

func (in *Interp) mapMethod(m *collection.Map, method string, args []value.Value, named map[string]value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "length":
		return value.Number(m.Length()), nil
	case "keys":
		keys := m.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.String(k)
		}
		return collection.NewList(out...), nil
	case "values":
		return collection.NewList(m.Values()...), nil
	case "has":
		k, _ := argOr(args, 0, value.String("")).(value.String)
		return value.Bool(m.Has(string(k))), nil
	case "get":
		k, _ := argOr(args, 0, value.String("")).(value.String)
		v, err := m.Get(string(k))
		if err != nil {
			return in.maybeSoften(err, pos)
		}
		return v, nil
	case "set!":
		k, _ := argOr(args, 0, value.String("")).(value.String)
		if err := m.Set(string(k), argOr(args, 1, value.Nil)); err != nil {
			return nil, in.wrapCollectionErr(err, pos)
		}
		return m, nil
	case "delete!":
		k, _ := argOr(args, 0, value.String("")).(value.String)
		if err := m.Delete(string(k)); err != nil {
			return nil, in.wrapCollectionErr(err, pos)
		}
		return m, nil
	case "merge":
		other, ok := argOr(args, 0, nil).(*collection.Map)
		if !ok {
			return nil, in.raise(errorx.Type, pos, "merge requires a map")
		}
		return m.Merge(other), nil
	case "map":
		fn, err := in.asTransform(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		return m.Map(fn)
	case "filter", "select":
		pred, err := in.asPredicate(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		return m.Filter(pred)
	case "reject":
		pred, err := in.asPredicate(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		return m.Filter(func(v value.Value) (bool, error) {
			keep, err := pred(v)
			return !keep, err
		})
	case "freeze!":
		m.Freeze()
		return m, nil
	case "is_frozen":
		return value.Bool(m.IsFrozen()), nil
	case "contains_frozen":
		return value.Bool(m.ContainsFrozen()), nil
	case "to_string":
		return value.String(m.Display()), nil
	case "to_bool":
		return value.Bool(m.Truthy()), nil
	default:
		return in.graphRuleMethod(m.Backing(), method, args, named, pos)
	}
}
