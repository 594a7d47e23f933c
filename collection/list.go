package collection

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

// Sentinel errors. Following the teacher's discipline, callers branch
// with errors.Is rather than string matching.
var (
	ErrIndexOutOfBounds = errors.New("collection: index out of bounds")
	ErrKeyNotFound      = errors.New("collection: key not found")
	ErrUnknownOperator  = errors.New("collection: unknown element-wise operator")
)

// List is the façade of spec §3.1: a Graph whose nodes are named
// node_0…node_{n-1} and linked by a linear "next" chain. Every mutating
// method renumbers nodes so the node_i invariant always holds exactly,
// trading renumbering cost for the exact structural guarantee spec §8.1
// tests against ("the backing graph has n nodes and n-1 next edges").
type List struct {
	g        *graph.Graph
	ordering func(a, b value.Value) (int, error)
}

func nodeName(i int) string { return fmt.Sprintf("node_%d", i) }

// NewList builds a List from the given values, in order.
func NewList(values ...value.Value) *List {
	l := &List{g: graph.New(true)}
	l.rebuild(values)
	return l
}

// rebuild clears l's backing graph and recreates the node_0…node_{n-1}
// chain from values, carrying forward whatever rules were already
// attached (rebuild renumbers positions but never changes which
// values are members, so previously-satisfied rules stay satisfied).
func (l *List) rebuild(values []value.Value) {
	fresh := graph.New(true)
	for i, v := range values {
		_ = fresh.AddNode(nodeName(i), v, nil)
	}
	for i := 0; i < len(values)-1; i++ {
		_ = fresh.AddEdge(nodeName(i), nodeName(i+1), "next")
	}
	if l.g != nil {
		fresh.RestoreInstances(l.g.Instances())
	}
	l.g = fresh
}

// Backing exposes l's underlying Graph, for callers (e.g. the
// executor's add_rule dispatch) that need to attach rules directly.
func (l *List) Backing() *graph.Graph { return l.g }

// Length returns the number of elements.
func (l *List) Length() int { return l.g.NodeCount() }

// Values returns every element in order.
func (l *List) Values() []value.Value {
	out := make([]value.Value, l.Length())
	for i := range out {
		v, _ := l.g.NodeValue(nodeName(i))
		out[i] = v
	}
	return out
}

// Get returns the element at index i. Returns ErrIndexOutOfBounds if i
// is out of [0, length).
func (l *List) Get(i int) (value.Value, error) {
	if i < 0 || i >= l.Length() {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, l.Length())
	}
	v, _ := l.g.NodeValue(nodeName(i))
	return v, nil
}

// candidate runs l's attached transformation rules over v (validation
// rules run separately once the candidate has been positioned, since
// they need the resulting structure; an :ordering rule's comparator is
// used by insertionIndex to choose that position).
func (l *List) candidate(v value.Value) (value.Value, error) {
	return l.g.ApplyTransforms(v)
}

// AddRule attaches spec to l's backing graph (spec §4.5), recording its
// comparator if spec is the :ordering rule so Append can use it to
// find a sorted insertion point.
func (l *List) AddRule(spec rules.Spec, severity rules.Severity, retro rules.Retro) error {
	if err := l.g.AddRule(spec, severity, retro); err != nil {
		return err
	}
	if os, ok := spec.(rules.OrderingSpec); ok {
		l.ordering = os.CompareFn()
	}
	return nil
}

// Set rewrites the element at index i, applying attached transformation
// rules to the candidate first. Returns ErrIndexOutOfBounds if i is out
// of range.
func (l *List) Set(i int, v value.Value) error {
	if i < 0 || i >= l.Length() {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, l.Length())
	}
	return l.g.SetNodeValue(nodeName(i), v)
}

// insertionIndex finds where v belongs under an attached :ordering
// rule's comparator, if one is attached; ok is false when no ordering
// rule is attached (the caller should append instead).
func (l *List) insertionIndex(v value.Value) (idx int, ok bool, err error) {
	if l.ordering == nil {
		return 0, false, nil
	}
	values := l.Values()
	lo, hi := 0, len(values)
	for lo < hi {
		mid := (lo + hi) / 2
		cmp, cerr := l.ordering(values[mid], v)
		if cerr != nil {
			return 0, false, cerr
		}
		if cmp <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, true, nil
}

// Append adds v at the end, or — if an :ordering rule is attached — at
// its sorted position, after running attached transformation rules and
// validation rules.
func (l *List) Append(v value.Value) error {
	return l.insertAt(l.Length(), v, true)
}

// Prepend adds v at the start, running the same rule pipeline as
// Append.
func (l *List) Prepend(v value.Value) error {
	return l.insertAt(0, v, false)
}

// Insert adds v at index i (0 <= i <= length), running the same rule
// pipeline as Append.
func (l *List) Insert(i int, v value.Value) error {
	if i < 0 || i > l.Length() {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, l.Length())
	}
	return l.insertAt(i, v, false)
}

// insertAt positions v at i (or, when respectOrdering is true and an
// :ordering rule is attached, at its sorted position instead),
// transforming via rules first and validating the resulting structure.
func (l *List) insertAt(i int, v value.Value, respectOrdering bool) error {
	if l.g.Frozen() {
		return graph.ErrFrozen
	}
	transformed, err := l.candidate(v)
	if err != nil {
		return err
	}
	if respectOrdering {
		if idx, ok, oerr := l.insertionIndex(transformed); oerr != nil {
			return oerr
		} else if ok {
			i = idx
		}
	}
	values := l.Values()
	out := make([]value.Value, 0, len(values)+1)
	out = append(out, values[:i]...)
	out = append(out, transformed)
	out = append(out, values[i:]...)
	l.rebuild(out)
	return l.g.ValidateRules()
}

// Remove deletes the element at index i and returns it.
func (l *List) Remove(i int) (value.Value, error) {
	if l.g.Frozen() {
		return nil, graph.ErrFrozen
	}
	if i < 0 || i >= l.Length() {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, l.Length())
	}
	values := l.Values()
	removed := values[i]
	out := append(values[:i:i], values[i+1:]...)
	l.rebuild(out)
	return removed, nil
}

// Pop removes and returns the last element. Returns ErrIndexOutOfBounds
// on an empty list.
func (l *List) Pop() (value.Value, error) { return l.Remove(l.Length() - 1) }

// First returns the first element. Returns ErrIndexOutOfBounds if empty.
func (l *List) First() (value.Value, error) { return l.Get(0) }

// Last returns the last element. Returns ErrIndexOutOfBounds if empty.
func (l *List) Last() (value.Value, error) { return l.Get(l.Length() - 1) }

// Merge returns a new List holding l's elements followed by other's.
func (l *List) Merge(other *List) *List {
	return NewList(append(append([]value.Value{}, l.Values()...), other.Values()...)...)
}

// Map returns a new List with fn applied to every element.
func (l *List) Map(fn func(value.Value) (value.Value, error)) (*List, error) {
	values := l.Values()
	out := make([]value.Value, len(values))
	for i, v := range values {
		mapped, err := fn(v)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return NewList(out...), nil
}

// Filter returns a new List holding elements for which pred is truthy.
func (l *List) Filter(pred func(value.Value) (bool, error)) (*List, error) {
	var out []value.Value
	for _, v := range l.Values() {
		keep, err := pred(v)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, v)
		}
	}
	return NewList(out...), nil
}

// Reduce folds fn over l's elements starting from init, left to right.
func (l *List) Reduce(init value.Value, fn func(acc, v value.Value) (value.Value, error)) (value.Value, error) {
	acc := init
	for _, v := range l.Values() {
		next, err := fn(acc, v)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// Sort returns a new, stably-sorted List per compare (negative if
// a<b, zero if equal, positive if a>b).
func (l *List) Sort(compare func(a, b value.Value) (int, error)) (*List, error) {
	values := append([]value.Value(nil), l.Values()...)
	var sortErr error
	sort.SliceStable(values, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		c, err := compare(values[i], values[j])
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return NewList(values...), nil
}

// Reverse returns a new List with elements in reverse order.
func (l *List) Reverse() *List {
	values := l.Values()
	out := make([]value.Value, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return NewList(out...)
}

// Unique returns a new List with later duplicates (by Equal) removed,
// preserving first-occurrence order.
func (l *List) Unique() *List {
	var out []value.Value
	for _, v := range l.Values() {
		dup := false
		for _, seen := range out {
			if seen.Equal(v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return NewList(out...)
}

// Flatten returns a new List with one level of nested Lists expanded
// in place.
func (l *List) Flatten() *List {
	var out []value.Value
	for _, v := range l.Values() {
		if nested, ok := v.(*List); ok {
			out = append(out, nested.Values()...)
		} else {
			out = append(out, v)
		}
	}
	return NewList(out...)
}

// Zip pairs l's elements with other's, truncating to the shorter
// length, each pair represented as a 2-element List.
func (l *List) Zip(other *List) *List {
	a, b := l.Values(), other.Values()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]value.Value, n)
	for i := 0; i < n; i++ {
		out[i] = NewList(a[i], b[i])
	}
	return NewList(out...)
}

// Freeze marks l immutable.
func (l *List) Freeze() { l.g.Freeze() }

// IsFrozen reports whether l is frozen.
func (l *List) IsFrozen() bool { return l.g.Frozen() }

// ContainsFrozen reports whether any element is itself a frozen List
// or Map (shallow freeze per spec §4.3.7 does not imply this).
func (l *List) ContainsFrozen() bool {
	for _, v := range l.Values() {
		switch e := v.(type) {
		case *List:
			if e.IsFrozen() {
				return true
			}
		case *Map:
			if e.IsFrozen() {
				return true
			}
		}
	}
	return false
}

// Kind implements value.Value.
func (l *List) Kind() value.Kind { return value.KindList }

// Truthy implements value.Value: an empty list is falsy.
func (l *List) Truthy() bool { return l.Length() > 0 }

// Display implements value.Value with the canonical `[a, b, c]` form.
func (l *List) Display() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.Values() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(value.Quote(v))
	}
	b.WriteByte(']')
	return b.String()
}

// Equal implements value.Value: same length, elementwise Equal.
func (l *List) Equal(o value.Value) bool {
	ol, ok := o.(*List)
	if !ok || l.Length() != ol.Length() {
		return false
	}
	a, b := l.Values(), ol.Values()
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ElementWise applies a scalar binary operator pairwise against other,
// implementing the `.+ .- .* ./ .// .% .^` family of spec §4.2's
// element-wise operators. Comparison operators (.==, .!=, .<, .>, .<=,
// .>=) return a List of Bool. Mismatched lengths truncate to the
// shorter input rather than erroring.
func (l *List) ElementWise(op string, other *List) (*List, error) {
	a, b := l.Values(), other.Values()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]value.Value, n)
	for i := 0; i < n; i++ {
		v, err := elementWiseOp(op, a[i], b[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return NewList(out...), nil
}

func elementWiseOp(op string, a, b value.Value) (value.Value, error) {
	an, aok := a.(value.Number)
	bn, bok := b.(value.Number)
	switch op {
	case ".==":
		return value.Bool(a.Equal(b)), nil
	case ".!=":
		return value.Bool(!a.Equal(b)), nil
	}
	if !aok || !bok {
		return nil, fmt.Errorf("%w: element-wise arithmetic requires numbers, got %s/%s", ErrUnknownOperator, a.Kind(), b.Kind())
	}
	switch op {
	case ".+":
		return value.Number(float64(an) + float64(bn)), nil
	case ".-":
		return value.Number(float64(an) - float64(bn)), nil
	case ".*":
		return value.Number(float64(an) * float64(bn)), nil
	case "./":
		return value.Number(float64(an) / float64(bn)), nil
	case ".//":
		return value.Number(math.Floor(float64(an) / float64(bn))), nil
	case ".%":
		return value.Number(math.Mod(float64(an), float64(bn))), nil
	case ".^":
		return value.Number(math.Pow(float64(an), float64(bn))), nil
	case ".<":
		return value.Bool(an < bn), nil
	case ".>":
		return value.Bool(an > bn), nil
	case ".<=":
		return value.Bool(an <= bn), nil
	case ".>=":
		return value.Bool(an >= bn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
}
