package collection

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/graphoid-lang/graphoid/value"
)

// NamedTransform resolves one of the built-in `:name` transformations
// accepted anywhere `.map`/`.filter`/`.reject`/`.select` accept a
// lambda (spec §4.3's named-predicate table). ok is false for an
// unrecognized name.
func NamedTransform(name string) (fn func(value.Value) (value.Value, error), ok bool) {
	switch name {
	case "double":
		return numFn(func(n float64) float64 { return n * 2 }), true
	case "square":
		return numFn(func(n float64) float64 { return n * n }), true
	case "negate":
		return numFn(func(n float64) float64 { return -n }), true
	case "increment":
		return numFn(func(n float64) float64 { return n + 1 }), true
	case "decrement":
		return numFn(func(n float64) float64 { return n - 1 }), true
	case "abs":
		return numFn(math.Abs), true
	case "to_string":
		return func(v value.Value) (value.Value, error) { return value.String(v.Display()), nil }, true
	case "to_num":
		return toNum, true
	case "to_bool":
		return func(v value.Value) (value.Value, error) { return value.Bool(v.Truthy()), nil }, true
	case "upper":
		return strFn(strings.ToUpper), true
	case "lower":
		return strFn(strings.ToLower), true
	case "trim":
		return strFn(strings.TrimSpace), true
	case "reverse":
		return func(v value.Value) (value.Value, error) {
			s, ok := v.(value.String)
			if !ok {
				return v, nil
			}
			runes := []rune(string(s))
			for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
				runes[i], runes[j] = runes[j], runes[i]
			}
			return value.String(runes), nil
		}, true
	default:
		return nil, false
	}
}

// NamedPredicate resolves one of the built-in `:name` predicates
// accepted by `.filter`/`.reject`/`.select` (spec §4.3's named-
// predicate table). ok is false for an unrecognized name.
func NamedPredicate(name string) (fn func(value.Value) (bool, error), ok bool) {
	switch name {
	case "positive":
		return numPred(func(n float64) bool { return n > 0 }), true
	case "negative":
		return numPred(func(n float64) bool { return n < 0 }), true
	case "zero":
		return numPred(func(n float64) bool { return n == 0 }), true
	case "even":
		return numPred(func(n float64) bool { return math.Mod(n, 2) == 0 }), true
	case "odd":
		return numPred(func(n float64) bool { return math.Mod(n, 2) != 0 }), true
	case "empty":
		return func(v value.Value) (bool, error) { return !isTruthyCollection(v), nil }, true
	case "non_empty":
		return func(v value.Value) (bool, error) { return isTruthyCollection(v), nil }, true
	case "is_string":
		return kindPred(value.KindString), true
	case "is_number":
		return kindPred(value.KindNumber), true
	case "is_bool":
		return kindPred(value.KindBool), true
	case "is_list":
		return kindPred(value.KindList), true
	case "truthy":
		return func(v value.Value) (bool, error) { return v.Truthy(), nil }, true
	case "falsy":
		return func(v value.Value) (bool, error) { return !v.Truthy(), nil }, true
	default:
		return nil, false
	}
}

func numFn(f func(float64) float64) func(value.Value) (value.Value, error) {
	return func(v value.Value) (value.Value, error) {
		n, ok := v.(value.Number)
		if !ok {
			return nil, fmt.Errorf("%w: expected number, got %s", ErrUnknownOperator, v.Kind())
		}
		return value.Number(f(float64(n))), nil
	}
}

func strFn(f func(string) string) func(value.Value) (value.Value, error) {
	return func(v value.Value) (value.Value, error) {
		s, ok := v.(value.String)
		if !ok {
			return nil, fmt.Errorf("%w: expected string, got %s", ErrUnknownOperator, v.Kind())
		}
		return value.String(f(string(s))), nil
	}
}

func numPred(f func(float64) bool) func(value.Value) (bool, error) {
	return func(v value.Value) (bool, error) {
		n, ok := v.(value.Number)
		if !ok {
			return false, nil
		}
		return f(float64(n)), nil
	}
}

func kindPred(k value.Kind) func(value.Value) (bool, error) {
	return func(v value.Value) (bool, error) { return v.Kind() == k, nil }
}

func toNum(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Number:
		return t, nil
	case value.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not numeric", ErrUnknownOperator, string(t))
		}
		return value.Number(f), nil
	case value.Bool:
		if t {
			return value.Number(1), nil
		}
		return value.Number(0), nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %s to number", ErrUnknownOperator, v.Kind())
	}
}

// isTruthyCollection reports whether v, as a List or Map, is non-empty;
// for any other kind it falls back to v.Truthy().
func isTruthyCollection(v value.Value) bool {
	switch t := v.(type) {
	case *List:
		return t.Length() > 0
	case *Map:
		return t.Length() > 0
	default:
		return v.Truthy()
	}
}
