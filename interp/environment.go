package interp

import "github.com/graphoid-lang/graphoid/value"

// Environment is a single lexical scope: a binding table plus a link to
// the enclosing scope. It implements value.Environment so that
// value.Function closures can capture and later resolve against it
// without the value package depending on interp (spec §4.3.1).
type Environment struct {
	vars   map[string]value.Value
	parent *Environment
}

// NewEnvironment returns a fresh root scope with no parent.
func NewEnvironment() *Environment {
	return &Environment{vars: map[string]value.Value{}}
}

// Child returns a new scope nested inside e.
func (e *Environment) Child() value.Environment {
	return &Environment{vars: map[string]value.Value{}, parent: e}
}

// Get walks the parent chain looking for name.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set updates an existing binding wherever in the chain it is defined,
// reporting false if no such binding exists (spec §4.3.1: plain
// assignment to an undeclared name is itself the declaration, handled by
// the caller via Define, not Set).
func (e *Environment) Set(name string, v value.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return true
		}
	}
	return false
}

// Define introduces (or overwrites) a binding in this exact scope.
func (e *Environment) Define(name string, v value.Value) {
	e.vars[name] = v
}

// assignOrDefine implements the `name = expr` rule (spec §4.3.1): update
// the binding if it already exists anywhere in the chain, else declare
// it in the current (innermost) scope. It operates purely through the
// value.Environment interface so it works uniformly whether env is a
// local *Environment or a closure's captured scope.
func assignOrDefine(env value.Environment, name string, v value.Value) {
	if env.Set(name, v) {
		return
	}
	env.Define(name, v)
}
