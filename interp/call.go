package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/value"
)

// evalCall evaluates `callee(args)`. A callee evaluating to a
// *value.Function dispatches through the user-call binding rules of
// spec §4.3.4; any other callee kind is a type error.
func (in *Interp) evalCall(e *ast.CallExpr, env value.Environment) (value.Value, error) {
	if sym, ok := e.Callee.(*ast.SymbolLit); ok {
		pos, _, err := in.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		if spec, ok, err := in.parameterizedRuleSpec(sym.Name, pos, e.Position); ok || err != nil {
			return spec, err
		}
	}
	callee, err := in.Eval(e.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*value.Function)
	if !ok {
		return nil, in.raise(errorx.Type, e.Position, "%s is not callable", callee.Kind())
	}
	pos, named, err := in.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}
	return in.callFunction(fn, pos, named, e.Position)
}

// evalArgs evaluates a call's argument list in the caller's environment,
// left to right, splitting positional from named.
func (in *Interp) evalArgs(args []ast.Arg, env value.Environment) ([]value.Value, map[string]value.Value, error) {
	var positional []value.Value
	named := map[string]value.Value{}
	for _, a := range args {
		v, err := in.Eval(a.Value, env)
		if err != nil {
			return nil, nil, err
		}
		if a.Name == "" {
			positional = append(positional, v)
		} else {
			named[a.Name] = v
		}
	}
	return positional, named, nil
}

// callFunction binds positional/named/default parameters in a fresh
// callee frame (spec §4.3.4) and executes the body, returning its value.
func (in *Interp) callFunction(fn *value.Function, positional []value.Value, named map[string]value.Value, callPos errorx.Position) (value.Value, error) {
	callEnv := fn.Env.Child()

	bound := map[string]bool{}
	posIdx := 0
	for _, p := range fn.Params {
		if p.Variadic {
			rest := positional[posIdx:]
			posIdx = len(positional)
			callEnv.Define(p.Name, collection.NewList(rest...))
			bound[p.Name] = true
			continue
		}
		if posIdx < len(positional) {
			callEnv.Define(p.Name, positional[posIdx])
			posIdx++
			bound[p.Name] = true
		}
	}
	if posIdx < len(positional) {
		return nil, in.raise(errorx.Arity, callPos, "too many positional arguments to %s", fnLabel(fn))
	}
	for name, v := range named {
		found := false
		for _, p := range fn.Params {
			if p.Name == name {
				found = true
				break
			}
		}
		if !found {
			return nil, in.raise(errorx.Arity, callPos, "unknown named argument %q to %s", name, fnLabel(fn))
		}
		callEnv.Define(name, v)
		bound[name] = true
	}
	for _, p := range fn.Params {
		if p.Variadic || bound[p.Name] {
			continue
		}
		if p.Default == nil {
			return nil, in.raise(errorx.Arity, callPos, "missing required argument %q to %s", p.Name, fnLabel(fn))
		}
		dv, err := in.Eval(p.Default, callEnv)
		if err != nil {
			return nil, err
		}
		callEnv.Define(p.Name, dv)
	}

	in.pushFrame(fn.Name, callPos)
	defer in.popFrame()

	switch body := fn.Body.(type) {
	case *ast.BlockStmt:
		sig, err := in.execBlock(body, callEnv)
		if err != nil {
			return nil, err
		}
		if sig.kind == sigReturn {
			return sig.value, nil
		}
		return value.Nil, nil
	case ast.Expr:
		return in.Eval(body, callEnv)
	default:
		return nil, in.raise(errorx.Runtime, callPos, "function %s has an unrecognized body", fnLabel(fn))
	}
}

func fnLabel(fn *value.Function) string {
	if fn.Name == "" {
		return "<anonymous>"
	}
	return fn.Name
}
