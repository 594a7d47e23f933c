package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/value"
)

// execModuleDecl executes a `module Name { ... }` block's statements in
// the current scope, then records the non-priv top-level declarations as
// this module's public exports (spec §4.3.3), consulted when another
// module imports this one.
func (in *Interp) execModuleDecl(s *ast.ModuleDecl, env value.Environment) (signal, error) {
	in.moduleName = s.Name
	sig, err := in.execBlockStmts(s.Body, env)
	if err != nil {
		return noSignal, err
	}
	in.recordExports(s.Body, env)
	return sig, nil
}

// recordExports walks top-level declarations, binding every non-priv
// name into in.Exports from its current value in env.
func (in *Interp) recordExports(stmts []ast.Stmt, env value.Environment) {
	if in.Exports == nil {
		in.Exports = map[string]value.Value{}
	}
	for _, stmt := range stmts {
		name, priv, ok := declaredName(stmt)
		if !ok || priv {
			continue
		}
		if v, ok := env.Get(name); ok {
			in.Exports[name] = v
		}
	}
}

func declaredName(stmt ast.Stmt) (name string, priv bool, ok bool) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return s.Name, s.Priv, true
	case *ast.FunctionDecl:
		return s.Name, s.Priv, true
	case *ast.Assignment:
		if id, ok := s.Target.(*ast.Identifier); ok {
			return id.Name, false, true
		}
	}
	return "", false, false
}

// execImport resolves path via the host Resolver, caching by module
// identity (spec §6.3), and binds the resulting namespace under its
// alias (the path's last segment by default, per the parser).
func (in *Interp) execImport(s *ast.ImportStmt, env value.Environment) error {
	if in.Resolver == nil {
		return in.raise(errorx.Runtime, s.Position, "import %q: no module resolver configured", s.Path)
	}
	mod, err := in.Resolver.Resolve(s.Path, in.file)
	if err != nil {
		return in.raise(errorx.Runtime, s.Position, "import %q: %s", s.Path, err)
	}
	bindings, ok := in.moduleCache[mod.Identity]
	if !ok {
		bindings, err = in.loadModule(mod)
		if err != nil {
			return err
		}
		in.moduleCache[mod.Identity] = bindings
	}
	env.Define(s.Alias, NewNamespace(s.Alias, bindings))
	return nil
}

// execLoad resolves path and merges its public bindings directly into
// the current scope, uncached and re-executed every time (spec §4.3.3,
// §9's "load always re-executes" resolution).
func (in *Interp) execLoad(s *ast.LoadStmt, env value.Environment) error {
	if in.Resolver == nil {
		return in.raise(errorx.Runtime, s.Position, "load %q: no module resolver configured", s.Path)
	}
	mod, err := in.Resolver.Resolve(s.Path, in.file)
	if err != nil {
		return in.raise(errorx.Runtime, s.Position, "load %q: %s", s.Path, err)
	}
	bindings, err := in.loadModule(mod)
	if err != nil {
		return err
	}
	for name, v := range bindings {
		env.Define(name, v)
	}
	return nil
}

// loadModule executes a source module's program in a separate
// interpreter with its own global environment, sharing only this
// interpreter's Universe (or returns a native module's constants/
// functions directly) to produce its exported binding table.
func (in *Interp) loadModule(mod Module) (map[string]value.Value, error) {
	if mod.Native != nil {
		return mod.Native, nil
	}
	sub := New(mod.Identity, in.Resolver)
	sub.Universe = in.Universe
	if err := sub.Run(mod.Program); err != nil {
		return nil, err
	}
	return sub.Exports, nil
}
