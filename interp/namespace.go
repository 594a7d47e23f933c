package interp

import "github.com/graphoid-lang/graphoid/value"

// namespaceKind is the runtime value kind of an imported module's public
// surface (spec §6.2/§6.3: "both yield a namespace bindable with
// ns.symbol syntax"). It is not one of value.Kind's named constants
// since namespaces are never constructible from user-level literals —
// only import/load ever produce one — but Kind is an open string type,
// so this is a legitimate extension rather than a hack.
const namespaceKind value.Kind = "namespace"

// Namespace is the bound form of an imported or loaded module: a named,
// read-only table of exported bindings.
type Namespace struct {
	Name     string
	bindings map[string]value.Value
}

// NewNamespace wraps bindings (not copied) as a Namespace named name.
func NewNamespace(name string, bindings map[string]value.Value) *Namespace {
	return &Namespace{Name: name, bindings: bindings}
}

func (n *Namespace) Kind() value.Kind { return namespaceKind }
func (n *Namespace) Truthy() bool     { return true }
func (n *Namespace) Display() string  { return "namespace " + n.Name }
func (n *Namespace) Equal(o value.Value) bool {
	on, ok := o.(*Namespace)
	return ok && on == n
}

// Get looks up an exported binding by name.
func (n *Namespace) Get(name string) (value.Value, bool) {
	v, ok := n.bindings[name]
	return v, ok
}

// Bindings returns the full exported binding table (used by `load`'s
// merge-into-current-scope semantics).
func (n *Namespace) Bindings() map[string]value.Value {
	return n.bindings
}
