package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

func (in *Interp) evalListLit(e *ast.ListLit, env value.Environment) (value.Value, error) {
	vals := make([]value.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := in.Eval(el, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return collection.NewList(vals...), nil
}

// mapEntryKey resolves one `key: value` map-literal entry's key. A bare
// identifier key (`{name: "x"}`) names itself literally rather than
// being looked up as a variable, matching how `configure { settings }`
// reuses the same grammar for its setting names; any other expression
// is evaluated and its Display() used as the string key.
func (in *Interp) mapEntryKey(key ast.Expr, env value.Environment) (string, error) {
	if id, ok := key.(*ast.Identifier); ok {
		return id.Name, nil
	}
	if str, ok := key.(*ast.StringLit); ok {
		return str.Value, nil
	}
	v, err := in.Eval(key, env)
	if err != nil {
		return "", err
	}
	return v.Display(), nil
}

func (in *Interp) evalMapLit(e *ast.MapLit, env value.Environment) (value.Value, error) {
	keys := make([]string, len(e.Entries))
	vals := make([]value.Value, len(e.Entries))
	for i, entry := range e.Entries {
		k, err := in.mapEntryKey(entry.Key, env)
		if err != nil {
			return nil, err
		}
		v, err := in.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		keys[i] = k
		vals[i] = v
	}
	return collection.NewMap(keys, vals), nil
}

// evalGraphLit builds a bare `graph { settings }` literal (spec §3.2).
// Recognized settings: `directed: bool` (default true). Any ruleset
// attachment (`tree`/`dag`/`binary_tree`/`bst`) arrives as a chained
// `.with_ruleset(:name)` MethodCallExpr wrapping this literal, handled
// in evalMethodCall.
func (in *Interp) evalGraphLit(e *ast.GraphLit, env value.Environment) (value.Value, error) {
	directed := true
	for _, entry := range e.Settings {
		key, err := in.mapEntryKey(entry.Key, env)
		if err != nil {
			return nil, err
		}
		if key != "directed" {
			continue
		}
		v, err := in.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		directed = v.Truthy()
	}
	return graph.New(directed), nil
}

// attachRuleset resolves a `:name` ruleset symbol to its constituent
// rules.Spec set and attaches each with the given retroactive policy
// (spec §4.5's `with_ruleset`).
func (in *Interp) attachRuleset(g *graph.Graph, name string, retro rules.Retro, pos errorx.Position) error {
	specs, err := rules.Ruleset(name)
	if err != nil {
		return in.raise(errorx.RuleViolation, pos, "%s", err)
	}
	for _, spec := range specs {
		if err := g.AddRule(spec, rules.SeverityError, retro); err != nil {
			return in.raise(errorx.RuleViolation, pos, "%s", err)
		}
	}
	return nil
}
