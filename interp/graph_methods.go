package interp

import (
	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

func strArg(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return string(s)
	}
	return v.Display()
}

func idsToList(g *graph.Graph, ids []string) *collection.List {
	out := make([]value.Value, len(ids))
	for i, id := range ids {
		v, ok := g.NodeValue(id)
		if !ok {
			v = value.Nil
		}
		out[i] = v
	}
	return collection.NewList(out...)
}

func propsFromNamed(named map[string]value.Value) map[string]value.Value {
	if len(named) == 0 {
		return nil
	}
	return named
}

// edgeTypeArg resolves a traversal method's `edge_type:` named filter,
// defaulting to "" (no filter, every edge type matches).
func edgeTypeArg(named map[string]value.Value) string {
	if t, ok := named["edge_type"]; ok {
		return strArg(t)
	}
	return ""
}

// namedOrPositionalInt resolves an integer argument that may arrive as
// a named keyword (e.g. `hops:`, `max_length:`) or, failing that, as a
// bare positional argument at index i, falling back to deflt when
// neither is present.
func namedOrPositionalInt(args []value.Value, named map[string]value.Value, key string, i int, deflt int) int {
	if v, ok := named[key]; ok {
		if n, ok := intArg(v); ok {
			return n
		}
	}
	if i < len(args) {
		if n, ok := intArg(args[i]); ok {
			return n
		}
	}
	return deflt
}

// retroArg resolves add_rule/with_ruleset's retroactive-policy argument,
// accepting either the named `retroactive:` form or a bare second
// positional symbol (both spellings appear across the language's own
// worked examples), defaulting to :clean when neither is given.
func retroArg(args []value.Value, named map[string]value.Value) rules.Retro {
	if r, ok := named["retroactive"]; ok {
		return rules.Retro(symbolName(r))
	}
	if len(args) > 1 {
		return rules.Retro(symbolName(args[1]))
	}
	return rules.RetroClean
}

// graphMethod dispatches the direct Graph vtable (spec §4.4): mutation,
// traversal, querying, pattern matching, subgraph, and rule management.
func (in *Interp) graphMethod(g *graph.Graph, method string, args []value.Value, named map[string]value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "add_node":
		id := strArg(argOr(args, 0, value.String("")))
		v := argOr(args, 1, value.Nil)
		if err := g.AddNode(id, v, propsFromNamed(named)); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "remove_node":
		id := strArg(argOr(args, 0, value.String("")))
		if err := g.RemoveNode(id); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "has_node":
		return value.Bool(g.HasNode(strArg(argOr(args, 0, value.String(""))))), nil
	case "node_value":
		v, ok := g.NodeValue(strArg(argOr(args, 0, value.String(""))))
		if !ok {
			return value.Nil, nil
		}
		return v, nil
	case "set_node_value":
		if err := g.SetNodeValue(strArg(argOr(args, 0, value.String(""))), argOr(args, 1, value.Nil)); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "add_edge":
		from := strArg(argOr(args, 0, value.String("")))
		to := strArg(argOr(args, 1, value.String("")))
		typ := strArg(argOr(args, 2, value.String("")))
		var opts []graph.EdgeOption
		if w, ok := named["weight"]; ok {
			if n, ok := w.(value.Number); ok {
				opts = append(opts, graph.WithWeight(float64(n)))
			}
		}
		if err := g.AddEdge(from, to, typ, opts...); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "remove_edge":
		if err := g.RemoveEdge(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String("")))); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "has_edge":
		return value.Bool(g.HasEdge(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))))), nil
	case "set_edge_weight":
		w, _ := argOr(args, 2, value.Number(0)).(value.Number)
		if err := g.SetEdgeWeight(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))), float64(w)); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "get_edge_weight":
		w, ok := g.EdgeWeight(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))))
		if !ok || w == nil {
			return value.Nil, nil
		}
		return value.Number(*w), nil
	case "insert":
		id, err := g.Insert(argOr(args, 0, value.Nil), strArg(argOr(args, 1, value.String(""))))
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return value.String(id), nil
	case "bfs":
		ids, err := g.BFS(strArg(argOr(args, 0, value.String(""))))
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return idsToList(g, ids), nil
	case "dfs":
		ids, err := g.DFS(strArg(argOr(args, 0, value.String(""))))
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return idsToList(g, ids), nil
	case "pre_order":
		ids, err := g.PreOrder(strArg(argOr(args, 0, value.String(""))))
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return idsToList(g, ids), nil
	case "in_order":
		ids, err := g.InOrder(strArg(argOr(args, 0, value.String(""))))
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return idsToList(g, ids), nil
	case "post_order":
		ids, err := g.PostOrder(strArg(argOr(args, 0, value.String(""))))
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return idsToList(g, ids), nil
	case "topological_sort":
		ids, err := g.TopologicalSort()
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return idsToList(g, ids), nil
	case "has_path":
		return value.Bool(g.HasPath(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))))), nil
	case "distance":
		d, ok := g.Distance(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))))
		if !ok {
			return value.Nil, nil
		}
		return value.Number(d), nil
	case "shortest_path":
		w, ok := named["weighted"]
		weighted := ok && w.Truthy()
		edgeType := edgeTypeArg(named)
		if weighted {
			ids, _, ok, err := g.ShortestPathWeighted(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))), edgeType)
			if err != nil {
				return nil, in.wrapGraphErr(err, pos)
			}
			if !ok {
				return value.Nil, nil
			}
			return idsToList(g, ids), nil
		}
		ids, ok, err := g.ShortestPathUnweighted(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))), edgeType)
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		if !ok {
			return value.Nil, nil
		}
		return idsToList(g, ids), nil
	case "nodes_within":
		n := namedOrPositionalInt(args, named, "hops", 1, 0)
		ids, err := g.NodesWithin(strArg(argOr(args, 0, value.String(""))), n, edgeTypeArg(named))
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return idsToList(g, ids), nil
	case "all_paths":
		maxLen := namedOrPositionalInt(args, named, "max_length", 2, -1)
		paths, err := g.AllPaths(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))), maxLen, edgeTypeArg(named))
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		out := make([]value.Value, len(paths))
		for i, p := range paths {
			out[i] = idsToList(g, p)
		}
		return collection.NewList(out...), nil
	case "find_nodes_by_property":
		prop := strArg(argOr(args, 0, value.String("")))
		want := argOr(args, 1, value.Nil)
		ids := g.FindNodesByProperty(prop, want)
		return idsToList(g, ids), nil
	case "explain_shortest_path":
		w, ok := named["weighted"]
		weighted := ok && w.Truthy()
		return explainToMap(g.ExplainShortestPath(strArg(argOr(args, 0, value.String(""))), strArg(argOr(args, 1, value.String(""))), weighted)), nil
	case "explain_find_nodes_by_property":
		return explainToMap(g.ExplainFindNodesByProperty(strArg(argOr(args, 0, value.String(""))))), nil
	case "match":
		elems, err := in.toPatternElements(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		res, err := g.Match(elems)
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return &matchResultsValue{res: res, g: g}, nil
	case "explain_match":
		l, _ := argOr(args, 0, nil).(*collection.List)
		n := 0
		if l != nil {
			n = l.Length()
		}
		return explainToMap(g.ExplainMatch(n)), nil
	case "extract_subgraph":
		depth, _ := intArg(argOr(args, 1, value.Number(-1)))
		sub, err := g.ExtractSubgraph(strArg(argOr(args, 0, value.String(""))), depth)
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return sub, nil
	case "insert_subgraph":
		other, ok := argOr(args, 0, nil).(*graph.Graph)
		if !ok {
			return nil, in.raise(errorx.Type, pos, "insert_subgraph requires a graph")
		}
		at := strArg(argOr(args, 1, value.String("")))
		edgeType := strArg(argOr(args, 2, value.String("contains")))
		mapping, err := g.InsertSubgraph(other, at, edgeType)
		if err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		keys := make([]string, 0, len(mapping))
		vals := make([]value.Value, 0, len(mapping))
		for k, v := range mapping {
			keys = append(keys, k)
			vals = append(vals, value.String(v))
		}
		return collection.NewMap(keys, vals), nil
	case "node_count":
		return value.Number(g.NodeCount()), nil
	case "edge_count":
		return value.Number(g.EdgeCount()), nil
	case "directed":
		return value.Bool(g.Directed()), nil
	case "freeze!":
		g.Freeze()
		return g, nil
	case "is_frozen":
		return value.Bool(g.Frozen()), nil
	case "to_string":
		return value.String(g.Display()), nil
	case "to_bool":
		return value.Bool(g.Truthy()), nil
	default:
		return in.graphRuleMethod(g, method, args, named, pos)
	}
}

func explainToMap(plan graph.ExecutionPlan) *collection.Map {
	steps := make([]value.Value, len(plan.Steps))
	for i, s := range plan.Steps {
		steps[i] = value.String(s)
	}
	opts := make([]value.Value, len(plan.Optimizations))
	for i, s := range plan.Optimizations {
		opts[i] = value.String(s)
	}
	return collection.NewMap(
		[]string{"operation", "steps", "estimated_cost", "optimizations"},
		[]value.Value{value.String(plan.Operation), collection.NewList(steps...), value.String(plan.EstimatedCost), collection.NewList(opts...)},
	)
}

// toPatternElements unwraps a List of *patternElement values (as built
// by a `graph.match([node(...), edge(...), ...])` literal) into the
// graph.PatternElement slice Graph.Match expects.
func (in *Interp) toPatternElements(v value.Value, pos errorx.Position) ([]graph.PatternElement, error) {
	l, ok := v.(*collection.List)
	if !ok {
		return nil, in.raise(errorx.Type, pos, "match requires a list of pattern elements, got %s", v.Kind())
	}
	out := make([]graph.PatternElement, l.Length())
	for i, e := range l.Values() {
		pe, ok := e.(*patternElement)
		if !ok {
			return nil, in.raise(errorx.Type, pos, "match element %d is not a pattern constructor result", i)
		}
		out[i] = pe.elem
	}
	return out, nil
}

func (in *Interp) wrapGraphErr(err error, pos errorx.Position) error {
	return in.raise(errorx.Runtime, pos, "%s", err)
}

// graphRuleMethod handles the rule-management vtable shared by Graph,
// List, and Map (spec §4.5): all three delegate to their backing Graph.
func (in *Interp) graphRuleMethod(g *graph.Graph, method string, args []value.Value, named map[string]value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "add_rule":
		spec, err := in.resolveRuleSpec(argOr(args, 0, value.Nil), pos)
		if err != nil {
			return nil, err
		}
		retro := retroArg(args, named)
		if err := g.AddRule(spec, rules.SeverityError, retro); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "remove_rule":
		if err := g.RemoveRule(strArg(argOr(args, 0, value.String("")))); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "clear_rules":
		g.ClearRules()
		return g, nil
	case "disable_rule":
		if err := g.DisableRule(strArg(argOr(args, 0, value.String("")))); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "enable_rule":
		if err := g.EnableRule(strArg(argOr(args, 0, value.String("")))); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	case "has_rule":
		return value.Bool(g.HasRule(strArg(argOr(args, 0, value.String(""))))), nil
	case "has_ruleset":
		return value.Bool(g.HasRuleset(strArg(argOr(args, 0, value.String(""))))), nil
	case "rule_names":
		names := g.RuleNames()
		out := make([]value.Value, len(names))
		for i, n := range names {
			out[i] = value.String(n)
		}
		return collection.NewList(out...), nil
	case "validate_rules":
		if err := g.ValidateRules(); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return value.Bool(true), nil
	case "with_ruleset":
		name := strArg(argOr(args, 0, value.String("")))
		retro := retroArg(args, named)
		if err := g.WithRuleset(name, retro); err != nil {
			return nil, in.wrapGraphErr(err, pos)
		}
		return g, nil
	default:
		return nil, in.raise(errorx.Type, pos, "%s has no method %q", g.Kind(), method)
	}
}

// resolveRuleSpec accepts either a `:symbol` naming a parameterless
// rule or a rule spec value (ruleSpecValue) produced by a `:name(args)`
// call for parameterized rules (max_degree/n, etc.) — spec §4.5's add_rule.
func (in *Interp) resolveRuleSpec(v value.Value, pos errorx.Position) (rules.Spec, error) {
	switch t := v.(type) {
	case value.Symbol:
		spec, err := rules.FromSymbol(t.Name())
		if err != nil {
			return nil, in.raise(errorx.ValueKind, pos, "%s", err)
		}
		return spec, nil
	case rules.Spec:
		return t, nil
	default:
		return nil, in.raise(errorx.Type, pos, "add_rule requires a rule symbol or spec, got %s", v.Kind())
	}
}
