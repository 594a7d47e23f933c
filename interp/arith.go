package interp

import (
	"math"

	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/token"
	"github.com/graphoid-lang/graphoid/value"
)

// dotOpStrings maps the element-wise token kinds to the operator
// spellings collection.List.ElementWise expects.
var dotOpStrings = map[token.Kind]string{
	token.DotPlus: ".+", token.DotMinus: ".-", token.DotStar: ".*",
	token.DotSlash: "./", token.DotSlashSlash: ".//", token.DotPercent: ".%",
	token.DotCaret: ".^", token.DotEq: ".==", token.DotNeq: ".!=",
	token.DotLt: ".<", token.DotGt: ".>", token.DotLe: ".<=", token.DotGe: ".>=",
}

// evalBinary implements the arithmetic, element-wise, bitwise,
// comparison, regex, and string-concatenation operators of spec §4.3.2's
// evaluation contract table.
func (in *Interp) evalBinary(op token.Kind, left, right value.Value, pos errorx.Position) (value.Value, error) {
	if dotOp, ok := dotOpStrings[op]; ok {
		ll, lok := left.(*collection.List)
		rl, rok := right.(*collection.List)
		switch {
		case lok && rok:
			out, err := ll.ElementWise(dotOp, rl)
			if err != nil {
				return in.softFail(errorx.Type, pos, "%s", err)
			}
			return out, nil
		case lok && !rok:
			// list .op scalar broadcasts the scalar against every element.
			out, err := ll.ElementWise(dotOp, collection.NewList(broadcast(right, ll.Length())...))
			if err != nil {
				return in.softFail(errorx.Type, pos, "%s", err)
			}
			return out, nil
		case rok && !lok:
			// scalar .op list broadcasts the scalar against every element.
			out, err := collection.NewList(broadcast(left, rl.Length())...).ElementWise(dotOp, rl)
			if err != nil {
				return in.softFail(errorx.Type, pos, "%s", err)
			}
			return out, nil
		default:
			return in.softFail(errorx.Type, pos, "element-wise operator %q requires at least one list operand", dotOp)
		}
	}

	switch op {
	case token.Eq:
		return value.Bool(valuesEqual(left, right)), nil
	case token.Neq:
		return value.Bool(!valuesEqual(left, right)), nil
	case token.Lt, token.Le, token.Gt, token.Ge:
		return in.evalComparison(op, left, right, pos)
	case token.RegexEq, token.RegexNeq:
		return in.evalRegexMatch(op, left, right, pos)
	case token.PlusPlus:
		return value.String(toDisplayString(left) + toDisplayString(right)), nil
	}

	// Remaining operators are arithmetic and require numbers, with
	// string<->number coercion governed by config.Frame.Coercion.
	ln, lok := in.coerceNumber(left)
	rn, rok := in.coerceNumber(right)
	if op == token.Plus {
		// `+` on two strings means string concatenation, whatever the
		// coercion mode.
		if ls, ok := left.(value.String); ok {
			if rs, ok := right.(value.String); ok {
				return value.String(string(ls) + string(rs)), nil
			}
		}
	}
	if !lok || !rok {
		return in.softFail(errorx.Type, pos, "operator %v requires numbers, got %s and %s", op, left.Kind(), right.Kind())
	}
	return in.arith(op, ln, rn, pos)
}

// broadcast repeats scalar n times, letting a bare scalar stand in for
// a list of matching length on either side of an element-wise operator
// (spec §4.3.2: "scalar on either side broadcasts").
func broadcast(scalar value.Value, n int) []value.Value {
	out := make([]value.Value, n)
	for i := range out {
		out[i] = scalar
	}
	return out
}

// coerceNumber extracts a float64 from v, applying string->number
// coercion when the current frame allows it (spec §4.6 type_coercion).
func (in *Interp) coerceNumber(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Number:
		return float64(n), true
	case value.String:
		if in.Config.Top().Coercion == config.CoercionAuto {
			if f, ok := parseNumericString(string(n)); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func (in *Interp) arith(op token.Kind, a, b float64, pos errorx.Position) (value.Value, error) {
	var r float64
	switch op {
	case token.Plus:
		r = a + b
	case token.Minus:
		r = a - b
	case token.Star:
		r = a * b
	case token.Slash:
		if b == 0 {
			return in.softFail(errorx.Runtime, pos, "division by zero")
		}
		r = a / b
	case token.SlashSlash:
		if b == 0 {
			return in.softFail(errorx.Runtime, pos, "division by zero")
		}
		r = math.Floor(a / b)
	case token.Percent:
		if b == 0 {
			return in.softFail(errorx.Runtime, pos, "modulo by zero")
		}
		r = math.Mod(a, b)
	case token.Caret, token.StarStar:
		r = math.Pow(a, b)
	case token.Amp:
		return value.Number(float64(int64(a) & int64(b))), nil
	case token.Pipe:
		return value.Number(float64(int64(a) | int64(b))), nil
	case token.LShift:
		return value.Number(float64(int64(a) << uint(int64(b)))), nil
	case token.RShift:
		if in.Config.Top().UnsignedShift {
			return value.Number(float64(uint64(int64(a)) >> uint(int64(b)))), nil
		}
		return value.Number(float64(int64(a) >> uint(int64(b)))), nil
	default:
		return nil, in.raise(errorx.Runtime, pos, "unsupported operator %v", op)
	}
	return value.Number(in.applyPrecision(r)), nil
}

// applyPrecision rounds r to the active decimal_places, when set (spec
// §4.6); precision 0 (integer mode) truncates the arithmetic result
// itself, per DESIGN.md's Open Question decision, not just its display.
func (in *Interp) applyPrecision(r float64) float64 {
	places := in.Config.Top().DecimalPlaces
	if places == nil {
		return r
	}
	if *places == 0 {
		return math.Trunc(r)
	}
	mult := math.Pow(10, float64(*places))
	return math.Round(r*mult) / mult
}

func (in *Interp) evalComparison(op token.Kind, left, right value.Value, pos errorx.Position) (value.Value, error) {
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if lok && rok {
		switch op {
		case token.Lt:
			return value.Bool(ln < rn), nil
		case token.Le:
			return value.Bool(ln <= rn), nil
		case token.Gt:
			return value.Bool(ln > rn), nil
		case token.Ge:
			return value.Bool(ln >= rn), nil
		}
	}
	ls, lsok := left.(value.String)
	rs, rsok := right.(value.String)
	if lsok && rsok {
		switch op {
		case token.Lt:
			return value.Bool(ls < rs), nil
		case token.Le:
			return value.Bool(ls <= rs), nil
		case token.Gt:
			return value.Bool(ls > rs), nil
		case token.Ge:
			return value.Bool(ls >= rs), nil
		}
	}
	return nil, in.raise(errorx.Type, pos, "operator %v not supported between %s and %s", op, left.Kind(), right.Kind())
}

func (in *Interp) evalRegexMatch(op token.Kind, left, right value.Value, pos errorx.Position) (value.Value, error) {
	s, ok := left.(value.String)
	if !ok {
		return nil, in.raise(errorx.Type, pos, "regex match requires a string left operand, got %s", left.Kind())
	}
	re, ok := right.(*value.Regex)
	if !ok {
		return nil, in.raise(errorx.Type, pos, "regex match requires a regex right operand, got %s", right.Kind())
	}
	matched := re.MatchString(string(s))
	if op == token.RegexNeq {
		matched = !matched
	}
	return value.Bool(matched), nil
}

// valuesEqual implements spec §3.1/DESIGN.md's resolved Open Question:
// comparing None against a non-None value returns false rather than
// raising, and otherwise defers to the value's own Equal.
func valuesEqual(a, b value.Value) bool {
	return a.Equal(b)
}

func toDisplayString(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return string(s)
	}
	return v.Display()
}
