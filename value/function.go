package value

import "github.com/graphoid-lang/graphoid/ast"

// Environment is the minimal surface a captured closure environment must
// expose. interp.Environment implements it; value itself never depends
// on the interp package, avoiding an import cycle between the value
// system and the executor that evaluates it.
type Environment interface {
	Get(name string) (Value, bool)
	Set(name string, v Value) bool
	Define(name string, v Value)
	Child() Environment
}

// Param is one formal parameter of a Function.
type Param struct {
	Name     string
	Default  ast.Expr // nil if required
	Variadic bool
}

// Function is a closure: a parameter list, a body, and the environment
// active at its definition site (spec §3.1, §4.3.4).
type Function struct {
	Name   string // empty for anonymous lambdas
	Params []Param
	Body   ast.Node
	Env    Environment
}

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) Truthy() bool { return true }

func (f *Function) Display() string {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	return "fn " + name
}

func (f *Function) Equal(o Value) bool {
	of, ok := o.(*Function)
	return ok && of == f
}

// Arity returns the number of required (non-defaulted, non-variadic)
// parameters and whether the function accepts a variadic tail.
func (f *Function) Arity() (required int, variadic bool) {
	for _, p := range f.Params {
		if p.Variadic {
			variadic = true
			continue
		}
		if p.Default == nil {
			required++
		}
	}
	return required, variadic
}
