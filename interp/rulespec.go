package interp

import (
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

// ruleSpecValue lets a parameterized rule built via `:name(args)` (spec
// §4.5 "rule_spec_with_params") flow through Eval/evalCall as an
// ordinary value.Value until it reaches add_rule.
type ruleSpecValue struct {
	rules.Spec
}

func (r ruleSpecValue) Kind() value.Kind  { return "rule_spec" }
func (r ruleSpecValue) Truthy() bool      { return true }
func (r ruleSpecValue) Display() string   { return ":" + r.Spec.Name() }
func (r ruleSpecValue) Equal(o value.Value) bool {
	or, ok := o.(ruleSpecValue)
	return ok && or.Spec.Name() == r.Spec.Name()
}

// parameterizedRuleSpec recognizes a `:name(args)` call as one of the
// parameterized rule constructors (spec §4.5), building its Spec
// directly from the already-evaluated argument list. ok is false for
// any other symbol name, letting the caller fall through to a normal
// function-call error.
func (in *Interp) parameterizedRuleSpec(name string, args []value.Value, pos errorx.Position) (value.Value, bool, error) {
	switch name {
	case "max_degree":
		n, _ := intArg(argOr(args, 0, value.Number(0)))
		return ruleSpecValue{rules.MaxDegree(n)}, true, nil
	case "validate_range":
		min, _ := argOr(args, 0, value.Number(0)).(value.Number)
		max, _ := argOr(args, 1, value.Number(0)).(value.Number)
		return ruleSpecValue{rules.ValidateRange(float64(min), float64(max))}, true, nil
	case "mapping":
		m, ok := argOr(args, 0, nil).(mapLike)
		if !ok {
			return nil, true, in.raise(errorx.Type, pos, "mapping requires a map argument")
		}
		table := map[string]value.Value{}
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			table[k] = v
		}
		return ruleSpecValue{rules.Mapping(table, argOr(args, 1, value.Nil))}, true, nil
	case "custom_function":
		fn, ok := argOr(args, 0, nil).(*value.Function)
		if !ok {
			return nil, true, in.raise(errorx.Type, pos, "custom_function requires a function")
		}
		return ruleSpecValue{rules.CustomFunction(func(v value.Value) (value.Value, error) {
			return in.callFunction(fn, []value.Value{v}, nil, pos)
		})}, true, nil
	case "conditional":
		pred, ok := argOr(args, 0, nil).(*value.Function)
		then, ok2 := argOr(args, 1, nil).(*value.Function)
		els, ok3 := argOr(args, 2, nil).(*value.Function)
		if !ok || !ok2 || !ok3 {
			return nil, true, in.raise(errorx.Type, pos, "conditional requires three functions")
		}
		return ruleSpecValue{rules.Conditional(
			func(v value.Value) (bool, error) {
				r, err := in.callFunction(pred, []value.Value{v}, nil, pos)
				if err != nil {
					return false, err
				}
				return r.Truthy(), nil
			},
			func(v value.Value) (value.Value, error) { return in.callFunction(then, []value.Value{v}, nil, pos) },
			func(v value.Value) (value.Value, error) { return in.callFunction(els, []value.Value{v}, nil, pos) },
		)}, true, nil
	case "ordering":
		fn, ok := argOr(args, 0, nil).(*value.Function)
		if !ok {
			return nil, true, in.raise(errorx.Type, pos, "ordering requires a function")
		}
		cmp, err := in.asComparator(fn, pos)
		if err != nil {
			return nil, true, err
		}
		return ruleSpecValue{rules.Ordering(cmp)}, true, nil
	default:
		return nil, false, nil
	}
}

// mapLike is the minimal surface interp needs from collection.Map
// without importing it here (avoided purely to keep this file's
// imports small; collection is already imported elsewhere).
type mapLike interface {
	Keys() []string
	Get(string) (value.Value, error)
}
