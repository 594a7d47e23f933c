package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/value"
)

// Exec executes one statement in env, implementing spec §4.3.3.
func (in *Interp) Exec(stmt ast.Stmt, env value.Environment) (signal, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := in.Eval(s.Expr, env)
		return noSignal, err
	case *ast.VarDecl:
		return noSignal, in.execVarDecl(s, env)
	case *ast.Assignment:
		return noSignal, in.execAssignment(s, env)
	case *ast.FunctionDecl:
		env.Define(s.Name, &value.Function{Name: s.Name, Params: toValueParams(s.Params), Body: s.Body, Env: env})
		return noSignal, nil
	case *ast.BlockStmt:
		return in.execBlock(s, env.Child())
	case *ast.IfStmt:
		return in.execIf(s, env)
	case *ast.WhileStmt:
		return in.execWhile(s, env)
	case *ast.ForStmt:
		return in.execFor(s, env)
	case *ast.ReturnStmt:
		var v value.Value = value.Nil
		if s.Value != nil {
			var err error
			v, err = in.Eval(s.Value, env)
			if err != nil {
				return noSignal, err
			}
		}
		return signal{kind: sigReturn, value: v}, nil
	case *ast.BreakStmt:
		return signal{kind: sigBreak}, nil
	case *ast.ContinueStmt:
		return signal{kind: sigContinue}, nil
	case *ast.RaiseStmt:
		return noSignal, in.execRaise(s, env)
	case *ast.TryStmt:
		return in.execTry(s, env)
	case *ast.ConfigureStmt:
		return in.execConfigure(s, env)
	case *ast.PrecisionStmt:
		return in.execPrecision(s, env)
	case *ast.ModuleDecl:
		return in.execModuleDecl(s, env)
	case *ast.ImportStmt:
		return noSignal, in.execImport(s, env)
	case *ast.LoadStmt:
		return noSignal, in.execLoad(s, env)
	default:
		return noSignal, in.raise(errorx.Runtime, stmt.Pos(), "unhandled statement kind %T", stmt)
	}
}

// execBlockStmts runs a flat statement slice (the top-level program
// body) in env without introducing an extra nested scope.
func (in *Interp) execBlockStmts(stmts []ast.Stmt, env value.Environment) (signal, error) {
	for _, s := range stmts {
		sig, err := in.Exec(s, env)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

// execBlock runs a `{ ... }` body's statements in env; callers that
// want a block scope pass a fresh child environment.
func (in *Interp) execBlock(b *ast.BlockStmt, env value.Environment) (signal, error) {
	return in.execBlockStmts(b.Statements, env)
}

func (in *Interp) execVarDecl(s *ast.VarDecl, env value.Environment) error {
	v, err := in.Eval(s.Value, env)
	if err != nil {
		return err
	}
	switch s.TypeName {
	case "list":
		if _, ok := v.(*collection.List); !ok {
			return in.raise(errorx.Type, s.Position, "list<%s> %s requires a list value, got %s", s.TypeParam, s.Name, v.Kind())
		}
	case "map":
		if _, ok := v.(*collection.Map); !ok {
			return in.raise(errorx.Type, s.Position, "map<%s> %s requires a map value, got %s", s.TypeParam, s.Name, v.Kind())
		}
	}
	env.Define(s.Name, v)
	return nil
}

func (in *Interp) execAssignment(s *ast.Assignment, env value.Environment) error {
	v, err := in.Eval(s.Value, env)
	if err != nil {
		return err
	}
	switch target := s.Target.(type) {
	case *ast.Identifier:
		assignOrDefine(env, target.Name, v)
		return nil
	case *ast.IndexExpr:
		container, err := in.Eval(target.Target, env)
		if err != nil {
			return err
		}
		idx, err := in.Eval(target.Index, env)
		if err != nil {
			return err
		}
		return in.assignIndexed(container, idx, v, s.Position)
	default:
		return in.raise(errorx.Runtime, s.Position, "invalid assignment target %T", s.Target)
	}
}

func (in *Interp) assignIndexed(container, idx, v value.Value, pos errorx.Position) error {
	switch c := container.(type) {
	case *collection.List:
		n, ok := idx.(value.Number)
		if !ok {
			return in.raise(errorx.Type, pos, "list index must be a number, got %s", idx.Kind())
		}
		i := normalizeIndex(int(n), c.Length())
		if err := c.Set(i, v); err != nil {
			_, softErr := in.softFail(errorx.Index, pos, "%s", err)
			return softErr
		}
		return nil
	case *collection.Map:
		key := mapKeyString(idx)
		if err := c.Set(key, v); err != nil {
			return in.raise(errorx.RuleViolation, pos, "%s", err)
		}
		return nil
	case *graph.Graph:
		id := mapKeyString(idx)
		if err := c.SetNodeValue(id, v); err != nil {
			return in.raise(errorx.RuleViolation, pos, "%s", err)
		}
		return nil
	default:
		return in.raise(errorx.Type, pos, "%s is not assignable by index", container.Kind())
	}
}

func (in *Interp) execIf(s *ast.IfStmt, env value.Environment) (signal, error) {
	cond, err := in.Eval(s.Cond, env)
	if err != nil {
		return noSignal, err
	}
	if cond.Truthy() {
		return in.execBlock(s.Then, env.Child())
	}
	switch e := s.Else.(type) {
	case nil:
		return noSignal, nil
	case *ast.IfStmt:
		return in.execIf(e, env)
	case *ast.BlockStmt:
		return in.execBlock(e, env.Child())
	default:
		return in.Exec(s.Else, env)
	}
}

func (in *Interp) execWhile(s *ast.WhileStmt, env value.Environment) (signal, error) {
	for {
		cond, err := in.Eval(s.Cond, env)
		if err != nil {
			return noSignal, err
		}
		if !cond.Truthy() {
			return noSignal, nil
		}
		sig, err := in.execBlock(s.Body, env.Child())
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return noSignal, nil
		case sigReturn:
			return sig, nil
		}
	}
}

// execFor implements `for x in iterable { }`, binding x in the
// surrounding scope per DESIGN.md's resolved Open Question (spec §9).
func (in *Interp) execFor(s *ast.ForStmt, env value.Environment) (signal, error) {
	iterable, err := in.Eval(s.Iterable, env)
	if err != nil {
		return noSignal, err
	}
	items, err := in.iterate(iterable, s.Position)
	if err != nil {
		return noSignal, err
	}
	for _, item := range items {
		assignOrDefine(env, s.Var, item)
		sig, err := in.execBlock(s.Body, env.Child())
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return noSignal, nil
		case sigReturn:
			return sig, nil
		}
	}
	return noSignal, nil
}

// iterate produces the sequence of bound values for a `for` loop (spec
// §4.3.3): a list yields its elements, a map yields `[key, value]`
// two-element lists, a graph yields its node ids in insertion order.
func (in *Interp) iterate(v value.Value, pos errorx.Position) ([]value.Value, error) {
	switch c := v.(type) {
	case *collection.List:
		return c.Values(), nil
	case *collection.Map:
		keys := c.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			val, _ := c.Get(k)
			out[i] = collection.NewList(value.String(k), val)
		}
		return out, nil
	case *graph.Graph:
		ids := c.NodeIDs()
		out := make([]value.Value, len(ids))
		for i, id := range ids {
			out[i] = value.String(id)
		}
		return out, nil
	default:
		return nil, in.raise(errorx.Type, pos, "%s is not iterable", v.Kind())
	}
}

func (in *Interp) execConfigure(s *ast.ConfigureStmt, env value.Environment) (signal, error) {
	settings, err := in.evalSettings(s.Settings, env)
	if err != nil {
		return noSignal, err
	}
	if s.Body == nil {
		in.Config.SetRoot(settings...)
		return noSignal, nil
	}
	in.Config.Push(settings...)
	defer in.Config.Pop()
	return in.execBlock(s.Body, env.Child())
}

func (in *Interp) execPrecision(s *ast.PrecisionStmt, env value.Environment) (signal, error) {
	v, err := in.Eval(s.Places, env)
	if err != nil {
		return noSignal, err
	}
	n, ok := v.(value.Number)
	if !ok {
		return noSignal, in.raise(errorx.Type, s.Position, "precision requires a number, got %s", v.Kind())
	}
	in.Config.Push(config.WithDecimalPlaces(int(n)))
	defer in.Config.Pop()
	return in.execBlock(s.Body, env.Child())
}

// evalSettings resolves a `configure { key: value, ... }` settings
// block into config.Setting functional options (spec §4.6).
func (in *Interp) evalSettings(entries []ast.MapEntry, env value.Environment) ([]config.Setting, error) {
	var out []config.Setting
	for _, entry := range entries {
		key, err := in.mapEntryKey(entry.Key, env)
		if err != nil {
			return nil, err
		}
		v, err := in.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		setting, err := settingFor(key, v)
		if err != nil {
			return nil, in.raise(errorx.Arity, entry.Key.Pos(), "%s", err)
		}
		out = append(out, setting)
	}
	return out, nil
}
