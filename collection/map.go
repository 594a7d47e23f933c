package collection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

// Map is the façade of spec §3.1: a Graph of isolated nodes keyed by
// user-provided strings, with no edges. Node IDs are the map's own keys
// (unlike List's positional node_i naming), so mutation never requires
// renumbering — only List needs the rebuild-on-mutation strategy.
type Map struct {
	g *graph.Graph
}

// NewMap builds a Map from parallel keys/values slices, preserving
// insertion order for Keys(). Later duplicate keys overwrite earlier
// ones, matching spec §8.1's "M[kᵢ] equals the last value assigned".
func NewMap(keys []string, values []value.Value) *Map {
	m := &Map{g: graph.New(true)}
	for i, k := range keys {
		if m.g.HasNode(k) {
			_ = m.g.SetNodeValue(k, values[i])
			continue
		}
		_ = m.g.AddNode(k, values[i], nil)
	}
	return m
}

// Backing exposes m's underlying Graph.
func (m *Map) Backing() *graph.Graph { return m.g }

// AddRule attaches spec to m's backing graph (spec §4.5).
func (m *Map) AddRule(spec rules.Spec, severity rules.Severity, retro rules.Retro) error {
	return m.g.AddRule(spec, severity, retro)
}

// Length returns the number of keys.
func (m *Map) Length() int { return m.g.NodeCount() }

// Keys returns every key in insertion order.
func (m *Map) Keys() []string { return m.g.NodeIDs() }

// Values returns every value, in the same order as Keys().
func (m *Map) Values() []value.Value {
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := m.g.NodeValue(k)
		out[i] = v
	}
	return out
}

// Get returns the value for key. Returns ErrKeyNotFound if absent.
func (m *Map) Get(key string) (value.Value, error) {
	v, ok := m.g.NodeValue(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return v, nil
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool { return m.g.HasNode(key) }

// Set assigns value to key, transforming the candidate through any
// attached transformation rules first, inserting it as a new node if
// key was absent (§8.1: "M[kᵢ] equals the last value assigned").
func (m *Map) Set(key string, v value.Value) error {
	if m.g.HasNode(key) {
		// SetNodeValue runs the transformation rules itself.
		return m.g.SetNodeValue(key, v)
	}
	transformed, err := m.g.ApplyTransforms(v)
	if err != nil {
		return err
	}
	if err := m.g.AddNode(key, transformed, nil); err != nil {
		return err
	}
	return m.g.ValidateRules()
}

// Delete removes key. Returns ErrKeyNotFound if absent.
func (m *Map) Delete(key string) error {
	if !m.g.HasNode(key) {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return m.g.RemoveNode(key)
}

// Merge returns a new Map with m's pairs overwritten by other's where
// keys collide, other's insertion order appended after m's.
func (m *Map) Merge(other *Map) *Map {
	out := &Map{g: graph.New(true)}
	for _, k := range m.Keys() {
		v, _ := m.g.NodeValue(k)
		_ = out.g.AddNode(k, v, nil)
	}
	for _, k := range other.Keys() {
		v, _ := other.g.NodeValue(k)
		if out.g.HasNode(k) {
			_ = out.g.SetNodeValue(k, v)
		} else {
			_ = out.g.AddNode(k, v, nil)
		}
	}
	return out
}

// Map returns a new Map with fn applied to every value, keys unchanged.
func (m *Map) Map(fn func(value.Value) (value.Value, error)) (*Map, error) {
	out := &Map{g: graph.New(true)}
	for _, k := range m.Keys() {
		v, _ := m.g.NodeValue(k)
		mapped, err := fn(v)
		if err != nil {
			return nil, err
		}
		if err := out.g.AddNode(k, mapped, nil); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Filter returns a new Map holding only the pairs whose value satisfies
// pred.
func (m *Map) Filter(pred func(value.Value) (bool, error)) (*Map, error) {
	out := &Map{g: graph.New(true)}
	for _, k := range m.Keys() {
		v, _ := m.g.NodeValue(k)
		keep, err := pred(v)
		if err != nil {
			return nil, err
		}
		if keep {
			if err := out.g.AddNode(k, v, nil); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Freeze marks m immutable.
func (m *Map) Freeze() { m.g.Freeze() }

// IsFrozen reports whether m is frozen.
func (m *Map) IsFrozen() bool { return m.g.Frozen() }

// ContainsFrozen reports whether any value is itself a frozen List or
// Map.
func (m *Map) ContainsFrozen() bool {
	for _, v := range m.Values() {
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
func (m *Map) Kind() value.Kind { return value.KindMap }

// Truthy implements value.Value: an empty map is falsy.
func (m *Map) Truthy() bool { return m.Length() > 0 }

// Display implements value.Value with the canonical `{"k": v, ...}`
// form, keys in insertion order.
func (m *Map) Display() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := m.g.NodeValue(k)
		fmt.Fprintf(&b, "%q: %s", k, value.Quote(v))
	}
	b.WriteByte('}')
	return b.String()
}

// Equal implements value.Value: same key set, same values (order does
// not affect equality, matching spec §8.1's "permutation of
// insertion-order keys").
func (m *Map) Equal(o value.Value) bool {
	om, ok := o.(*Map)
	if !ok || m.Length() != om.Length() {
		return false
	}
	for _, k := range m.Keys() {
		v, _ := m.g.NodeValue(k)
		ov, ok := om.g.NodeValue(k)
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// sortedKeys returns m's keys in sorted rather than insertion order.
func (m *Map) sortedKeys() []string {
	keys := append([]string(nil), m.Keys()...)
	sort.Strings(keys)
	return keys
}
