// Package value implements Graphoid's runtime value system: the tagged
// union of primitives plus the Graph-backed collection façades described
// in spec §3.1, together with truthiness, structural equality, and
// display conventions shared by every other package in the interpreter.
package value

import "fmt"

// Kind discriminates the runtime type of a Value.
type Kind string

const (
	KindNone     Kind = "none"
	KindBool     Kind = "bool"
	KindNumber   Kind = "num"
	KindString   Kind = "string"
	KindSymbol   Kind = "symbol"
	KindFunction Kind = "function"
	KindGraph    Kind = "graph"
	KindList     Kind = "list"
	KindMap      Kind = "map"
	KindError    Kind = "error"
	KindRegex    Kind = "regex"
)

// Value is implemented by every runtime value kind. Display renders the
// canonical, deterministic textual form used by string conversion and by
// the round-trip/idempotence tests of spec §8.2 (hash_repr). Truthy
// implements the rules of spec §4.3.6. Equal implements the equality
// rules of spec §3.1 (value equality for scalars, structural equality
// for graphs/collections).
type Value interface {
	Kind() Kind
	Display() string
	Truthy() bool
	Equal(other Value) bool
}

// None is the unit/null value. There is exactly one logical None; Nil is
// a ready-made instance callers may share.
type None struct{}

// Nil is the canonical None value.
var Nil = None{}

func (None) Kind() Kind         { return KindNone }
func (None) Display() string    { return "none" }
func (None) Truthy() bool       { return false }
func (None) Equal(o Value) bool { _, ok := o.(None); return ok }

// Bool wraps a boolean.
type Bool bool

func (b Bool) Kind() Kind      { return KindBool }
func (b Bool) Truthy() bool    { return bool(b) }
func (b Bool) Display() string { return fmt.Sprintf("%t", bool(b)) }
func (b Bool) Equal(o Value) bool {
	ob, ok := o.(Bool)
	return ok && ob == b
}

// Number wraps an IEEE-754 double. Integer-mode truncation and rounding
// are applied by callers (the executor, under the active config.Frame),
// not stored on the value itself.
type Number float64

func (n Number) Kind() Kind   { return KindNumber }
func (n Number) Truthy() bool { return n != 0 }
func (n Number) Equal(o Value) bool {
	on, ok := o.(Number)
	return ok && on == n
}

// Display renders with adaptive precision: integral values print without
// a fractional part, others print with the minimal number of digits that
// round-trips.
func (n Number) Display() string {
	f := float64(n)
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return trimFloat(f)
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

// String wraps an immutable UTF-8 string.
type String string

func (s String) Kind() Kind      { return KindString }
func (s String) Truthy() bool    { return s != "" }
func (s String) Display() string { return string(s) }
func (s String) Equal(o Value) bool {
	os, ok := o.(String)
	return ok && os == s
}

// Symbol wraps a `:name` literal, used as enum discriminators and
// method/rule selectors.
type Symbol string

func (s Symbol) Kind() Kind      { return KindSymbol }
func (s Symbol) Truthy() bool    { return true }
func (s Symbol) Name() string    { return string(s) }
func (s Symbol) Display() string { return ":" + string(s) }
func (s Symbol) Equal(o Value) bool {
	os, ok := o.(Symbol)
	return ok && os == s
}

// Quote renders a value suitable for embedding inside a display string
// (e.g. list/map elements), quoting strings but leaving other kinds as
// their own Display.
func Quote(v Value) string {
	if s, ok := v.(String); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return v.Display()
}
