package interp

import (
	"math"

	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/value"
)

// evalMethodCall dispatches `receiver.method(args)` on the runtime kind
// of receiver (spec §4.3.5).
func (in *Interp) evalMethodCall(e *ast.MethodCallExpr, env value.Environment) (value.Value, error) {
	recv, err := in.Eval(e.Receiver, env)
	if err != nil {
		return nil, err
	}
	positional, named, err := in.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}
	switch r := recv.(type) {
	case value.Number:
		return in.numberMethod(r, e.Method, positional, e.Position)
	case value.String:
		return in.stringMethod(r, e.Method, positional, e.Position)
	case value.Bool:
		return in.boolMethod(r, e.Method, positional, e.Position)
	case value.None:
		return in.noneMethod(e.Method, positional, e.Position)
	case value.Symbol:
		return in.symbolMethod(r, e.Method, positional, e.Position)
	case *collection.List:
		return in.listMethod(r, e.Method, positional, named, e.Position)
	case *collection.Map:
		return in.mapMethod(r, e.Method, positional, named, e.Position)
	case *graph.Graph:
		return in.graphMethod(r, e.Method, positional, named, e.Position)
	case *value.Function:
		return in.functionMethod(r, e.Method, positional, e.Position)
	case *errorx.Error:
		return in.errorMethod(r, e.Method, e.Position)
	case *matchResultsValue:
		return in.matchResultsMethod(r, e.Method, positional, e.Position)
	default:
		return nil, in.raise(errorx.Type, e.Position, "%s has no method %q", recv.Kind(), e.Method)
	}
}

func argOr(args []value.Value, i int, deflt value.Value) value.Value {
	if i < len(args) {
		return args[i]
	}
	return deflt
}

// --- scalar vtables (spec §4.3.5) ---

func (in *Interp) numberMethod(n value.Number, method string, args []value.Value, pos errorx.Position) (value.Value, error) {
	f := float64(n)
	switch method {
	case "to_string":
		return value.String(n.Display()), nil
	case "to_num":
		return n, nil
	case "to_bool":
		return value.Bool(n.Truthy()), nil
	case "sqrt":
		if f < 0 {
			return nil, in.raise(errorx.ValueKind, pos, "sqrt of negative number %v", f)
		}
		return value.Number(math.Sqrt(f)), nil
	case "abs":
		return value.Number(math.Abs(f)), nil
	case "floor":
		return value.Number(math.Floor(f)), nil
	case "ceil":
		return value.Number(math.Ceil(f)), nil
	case "round":
		return value.Number(math.Round(f)), nil
	default:
		if fn, ok := collection.NamedTransform(method); ok {
			return fn(n)
		}
		return nil, in.raise(errorx.Type, pos, "num has no method %q", method)
	}
}

func (in *Interp) stringMethod(s value.String, method string, args []value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "to_string", "to_num", "to_bool", "length", "split", "contains":
		// handled explicitly below; skip the generic named-transform path.
	default:
		if fn, ok := collection.NamedTransform(method); ok {
			return fn(s)
		}
	}
	switch method {
	case "to_string":
		return s, nil
	case "to_num":
		v, err := collectionToNum(s)
		if err != nil {
			return nil, in.raise(errorx.ValueKind, pos, "%s", err)
		}
		return v, nil
	case "to_bool":
		return value.Bool(s.Truthy()), nil
	case "length":
		return value.Number(len([]rune(string(s)))), nil
	case "split":
		sep := " "
		if len(args) > 0 {
			if str, ok := args[0].(value.String); ok {
				sep = string(str)
			}
		}
		return splitString(string(s), sep), nil
	case "contains":
		if len(args) > 0 {
			if str, ok := args[0].(value.String); ok {
				return value.Bool(stringsContains(string(s), string(str))), nil
			}
		}
		return value.Bool(false), nil
	default:
		return nil, in.raise(errorx.Type, pos, "string has no method %q", method)
	}
}

func (in *Interp) boolMethod(b value.Bool, method string, args []value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "to_string":
		return value.String(b.Display()), nil
	case "to_bool":
		return b, nil
	case "to_num":
		if b {
			return value.Number(1), nil
		}
		return value.Number(0), nil
	default:
		return nil, in.raise(errorx.Type, pos, "bool has no method %q", method)
	}
}

func (in *Interp) noneMethod(method string, args []value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "to_string":
		return value.String("none"), nil
	case "to_bool":
		return value.Bool(false), nil
	default:
		return nil, in.raise(errorx.Type, pos, "none has no method %q", method)
	}
}

func (in *Interp) symbolMethod(s value.Symbol, method string, args []value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "name":
		return value.String(s.Name()), nil
	default:
		return nil, in.raise(errorx.Type, pos, "symbol has no method %q", method)
	}
}

func (in *Interp) errorMethod(e *errorx.Error, method string, pos errorx.Position) (value.Value, error) {
	switch method {
	case "kind":
		return value.Symbol(string(e.LangKind())), nil
	case "message":
		return value.String(e.Message()), nil
	case "position":
		return value.String(e.Position().String()), nil
	case "cause":
		if e.Cause() == nil {
			return value.Nil, nil
		}
		return e.Cause(), nil
	case "chain":
		links := e.Chain()
		out := make([]value.Value, len(links))
		for i, l := range links {
			out[i] = l
		}
		return collection.NewList(out...), nil
	case "to_string":
		return value.String(e.FullDisplay()), nil
	default:
		return nil, in.raise(errorx.Type, pos, "error has no method %q", method)
	}
}

func (in *Interp) functionMethod(f *value.Function, method string, args []value.Value, pos errorx.Position) (value.Value, error) {
	switch method {
	case "call":
		return in.callFunction(f, args, nil, pos)
	case "arity":
		required, variadic := f.Arity()
		return collection.NewList(value.Number(required), value.Bool(variadic)), nil
	case "bind":
		if len(args) == 0 {
			return f, nil
		}
		ns, ok := args[0].(*Namespace)
		if !ok {
			return nil, in.raise(errorx.Type, pos, "bind requires a namespace of extra bindings, got %s", args[0].Kind())
		}
		child := f.Env.Child()
		for name, v := range ns.Bindings() {
			child.Define(name, v)
		}
		return &value.Function{Name: f.Name, Params: f.Params, Body: f.Body, Env: child}, nil
	default:
		return nil, in.raise(errorx.Type, pos, "function has no method %q", method)
	}
}
