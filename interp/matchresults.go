package interp

import (
	"fmt"

	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/value"
)

// matchResultsValue wraps graph.MatchResults (spec §4.4.4's
// PatternMatchResults) as a language-level value supporting chained
// .where/.return_vars/.return_properties method calls.
type matchResultsValue struct {
	res *graph.MatchResults
	g   *graph.Graph
}

const matchResultsKind value.Kind = "pattern_match_results"

func (m *matchResultsValue) Kind() value.Kind { return matchResultsKind }
func (m *matchResultsValue) Truthy() bool     { return m.res.Len() > 0 }
func (m *matchResultsValue) Display() string {
	return fmt.Sprintf("<pattern_match_results: %d matches>", m.res.Len())
}
func (m *matchResultsValue) Equal(o value.Value) bool { return m == o }

func (in *Interp) matchResultsMethod(m *matchResultsValue, method string, args []value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "length":
		return value.Number(m.res.Len()), nil
	case "where":
		pred, err := in.asPredicate(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		var predErr error
		m.res.Where(func(binding map[string]string) bool {
			if predErr != nil {
				return false
			}
			keep, err := pred(bindingToMap(m.g, binding))
			if err != nil {
				predErr = err
				return false
			}
			return keep
		})
		if predErr != nil {
			return nil, predErr
		}
		return m, nil
	case "return_vars":
		names, err := stringListArg(argOr(args, 0, value.Nil), pos, in)
		if err != nil {
			return nil, err
		}
		rows := m.res.ReturnVars(names)
		out := make([]value.Value, len(rows))
		for i, row := range rows {
			keys := make([]string, 0, len(row))
			vals := make([]value.Value, 0, len(row))
			for k, id := range row {
				v, ok := m.g.NodeValue(id)
				if !ok {
					v = value.Nil
				}
				keys = append(keys, k)
				vals = append(vals, v)
			}
			out[i] = collection.NewMap(keys, vals)
		}
		return collection.NewList(out...), nil
	case "return_properties":
		refs, err := stringListArg(argOr(args, 0, value.Nil), pos, in)
		if err != nil {
			return nil, err
		}
		rows := m.res.ReturnProperties(m.g, refs)
		out := make([]value.Value, len(rows))
		for i, row := range rows {
			keys := make([]string, 0, len(row))
			vals := make([]value.Value, 0, len(row))
			for k, v := range row {
				keys = append(keys, k)
				vals = append(vals, v)
			}
			out[i] = collection.NewMap(keys, vals)
		}
		return collection.NewList(out...), nil
	default:
		return nil, in.raise(errorx.Type, pos, "pattern_match_results has no method %q", method)
	}
}

func bindingToMap(g *graph.Graph, binding map[string]string) *collection.Map {
	keys := make([]string, 0, len(binding))
	vals := make([]value.Value, 0, len(binding))
	for k, id := range binding {
		v, ok := g.NodeValue(id)
		if !ok {
			v = value.Nil
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
	return collection.NewMap(keys, vals)
}

func stringListArg(v value.Value, pos errorx.Position, in *Interp) ([]string, error) {
	l, ok := v.(*collection.List)
	if !ok {
		return nil, in.raise(errorx.Type, pos, "expected a list of strings, got %s", v.Kind())
	}
	out := make([]string, l.Length())
	for i, e := range l.Values() {
		out[i] = strArg(e)
	}
	return out, nil
}
