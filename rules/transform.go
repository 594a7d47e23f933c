package rules

import (
	"fmt"
	"strings"

	"github.com/graphoid-lang/graphoid/value"
)

// noneToZero replaces none with 0.
type noneToZero struct{ Transformer }

func NoneToZero() Spec { return noneToZero{} }
func (noneToZero) Name() string { return "none_to_zero" }
func (noneToZero) Transform(v value.Value) (value.Value, error) {
	if _, ok := v.(value.None); ok {
		return value.Number(0), nil
	}
	return v, nil
}

// noneToEmpty replaces none with "".
type noneToEmpty struct{ Transformer }

func NoneToEmpty() Spec { return noneToEmpty{} }
func (noneToEmpty) Name() string { return "none_to_empty" }
func (noneToEmpty) Transform(v value.Value) (value.Value, error) {
	if _, ok := v.(value.None); ok {
		return value.String(""), nil
	}
	return v, nil
}

// positive clamps negative numbers to zero.
type positive struct{ Transformer }

func Positive() Spec { return positive{} }
func (positive) Name() string { return "positive" }
func (positive) Transform(v value.Value) (value.Value, error) {
	if n, ok := v.(value.Number); ok && n < 0 {
		return value.Number(0), nil
	}
	return v, nil
}

// roundToInt rounds a number to the nearest integer.
type roundToInt struct{ Transformer }

func RoundToInt() Spec { return roundToInt{} }
func (roundToInt) Name() string { return "round_to_int" }
func (roundToInt) Transform(v value.Value) (value.Value, error) {
	if n, ok := v.(value.Number); ok {
		f := float64(n)
		if f >= 0 {
			return value.Number(float64(int64(f + 0.5))), nil
		}
		return value.Number(float64(int64(f - 0.5))), nil
	}
	return v, nil
}

// uppercase case-maps strings.
type uppercase struct{ Transformer }

func Uppercase() Spec { return uppercase{} }
func (uppercase) Name() string { return "uppercase" }
func (uppercase) Transform(v value.Value) (value.Value, error) {
	if s, ok := v.(value.String); ok {
		return value.String(strings.ToUpper(string(s))), nil
	}
	return v, nil
}

// lowercase case-maps strings.
type lowercase struct{ Transformer }

func Lowercase() Spec { return lowercase{} }
func (lowercase) Name() string { return "lowercase" }
func (lowercase) Transform(v value.Value) (value.Value, error) {
	if s, ok := v.(value.String); ok {
		return value.String(strings.ToLower(string(s))), nil
	}
	return v, nil
}

// validateRange clamps numbers to [Min, Max].
type validateRange struct {
	Transformer
	Min, Max float64
}

// ValidateRange returns the :validate_range rule. Panics if Min > Max.
func ValidateRange(min, max float64) Spec {
	if min > max {
		panic(fmt.Errorf("%w: validate_range requires min <= max, got [%v, %v]", ErrInvalidParameter, min, max))
	}
	return validateRange{Min: min, Max: max}
}

func (validateRange) Name() string { return "validate_range" }
func (r validateRange) Transform(v value.Value) (value.Value, error) {
	n, ok := v.(value.Number)
	if !ok {
		return v, nil
	}
	f := float64(n)
	if f < r.Min {
		f = r.Min
	}
	if f > r.Max {
		f = r.Max
	}
	return value.Number(f), nil
}

// mapping is table-driven substitution; when Default is nil and the
// candidate is unmapped, it passes through unchanged.
type mapping struct {
	Transformer
	Table   map[string]value.Value // keyed by candidate.Display()
	Default value.Value // nil = passthrough on miss
}

// Mapping returns the :mapping rule. table is keyed by the Display()
// form of the candidate value being matched (its canonical string form),
// since value.Value is not itself a valid Go map key for arbitrary
// kinds.
func Mapping(table map[string]value.Value, deflt value.Value) Spec {
	return mapping{Table: table, Default: deflt}
}

func (mapping) Name() string { return "mapping" }
func (r mapping) Transform(v value.Value) (value.Value, error) {
	if mapped, ok := r.Table[v.Display()]; ok {
		return mapped, nil
	}
	if r.Default != nil {
		return r.Default, nil
	}
	return v, nil
}

// CustomFunction invokes a user-supplied closure (Value) -> Value. Fn is
// late-bound by the executor (it needs to call back into function
// dispatch), so it is stored as an opaque callback here rather than a
// value.Function, keeping this package independent of the executor.
type customFunction struct {
	Transformer
	Fn func(value.Value) (value.Value, error)
}

// CustomFunction returns the :custom_function rule wrapping fn.
func CustomFunction(fn func(value.Value) (value.Value, error)) Spec {
	return customFunction{Fn: fn}
}

func (customFunction) Name() string { return "custom_function" }
func (r customFunction) Transform(v value.Value) (value.Value, error) { return r.Fn(v) }

// conditional applies Then if Predicate(v) is truthy, else Else (if
// non-nil), else passes v through unchanged.
type conditional struct {
	Transformer
	Predicate func(value.Value) (bool, error)
	Then      func(value.Value) (value.Value, error)
	Else      func(value.Value) (value.Value, error) // nil = passthrough
}

// Conditional returns the :conditional rule.
func Conditional(predicate func(value.Value) (bool, error), then, els func(value.Value) (value.Value, error)) Spec {
	return conditional{Predicate: predicate, Then: then, Else: els}
}

func (conditional) Name() string { return "conditional" }
func (r conditional) Transform(v value.Value) (value.Value, error) {
	ok, err := r.Predicate(v)
	if err != nil {
		return nil, err
	}
	if ok {
		return r.Then(v)
	}
	if r.Else != nil {
		return r.Else(v)
	}
	return v, nil
}

// ordering positions a newly-inserted list value so the list stays
// sorted per Compare (negative if a<b, zero if equal, positive if a>b).
// It is applied by collection.List.Append, which is the only caller
// that knows insertion position; here it only carries the comparator.
type ordering struct {
	Transformer
	Compare func(a, b value.Value) (int, error)
}

// OrderingSpec is implemented by the :ordering rule; callers that need
// the comparator (collection.List.Append, to find the sorted insertion
// point) type-assert to this interface rather than the unexported
// concrete type.
type OrderingSpec interface {
	Spec
	CompareFn() func(a, b value.Value) (int, error)
}

// Ordering returns the :ordering rule.
func Ordering(compare func(a, b value.Value) (int, error)) Spec {
	return ordering{Compare: compare}
}

func (ordering) Name() string { return "ordering" }

// CompareFn exposes the comparator so collection.List can use it to find
// the sorted insertion index; Transform itself is identity (the list
// façade performs positioning, not a value rewrite).
func (r ordering) CompareFn() func(a, b value.Value) (int, error) { return r.Compare }
