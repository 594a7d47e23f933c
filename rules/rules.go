// Package rules implements the unified RuleSpec of spec §3.3/§4.5: a
// single discriminated union carrying both validation rules (reject
// invalid structure) and transformation rules (rewrite values on write),
// plus the named rulesets that expand to concrete rules on attach.
//
// Per the design note in spec §9, there is deliberately no separate
// "behavior" type: a transformation-only rule simply keeps the default
// no-op Validate, and a validation-only rule keeps the default identity
// Transform.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/graphoid-lang/graphoid/value"
)

// Sentinel errors. Algorithms return only these; callers branch with
// errors.Is, following the teacher's sentinel-error discipline
// (builder/errors.go).
var (
	ErrUnknownRule      = errors.New("rules: unknown rule name")
	ErrUnknownRuleset   = errors.New("rules: unknown ruleset name")
	ErrInvalidParameter = errors.New("rules: invalid rule parameter")
)

// Severity controls what happens when an active rule's Validate fails.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityIgnore Severity = "ignore"
)

// Retro is the retroactive-application policy selected when a rule is
// attached to a graph/collection that already holds data (spec §3.3).
type Retro string

const (
	RetroClean   Retro = "clean"
	RetroWarn    Retro = "warn"
	RetroEnforce Retro = "enforce"
	RetroIgnore  Retro = "ignore"
)

// Graph is the minimal surface Spec implementations validate against.
// It is satisfied by *graph.Graph without rules importing graph,
// avoiding an import cycle (graph imports rules, not the reverse).
type Graph interface {
	NodeIDs() []string
	HasEdge(from, to string) bool
	OutEdges(id string) []EdgeView
	InDegree(id string) int
	OutDegree(id string) int
	NodeValue(id string) (value.Value, bool)
}

// EdgeView is the read-only edge shape Spec validators need.
type EdgeView struct {
	Target   string
	Type     string
	Weight   *float64
	HasWeight bool
}

// Spec is the RuleSpec discriminated union. Concrete rules are created
// via the constructor functions below (NoCycles(), MaxDegree(n), ...).
type Spec interface {
	// Name is the unique canonical rule name, e.g. "no_cycles",
	// "max_degree", "uppercase".
	Name() string
	// Validate checks graph-level structural invariants. The default
	// (embed Validator) always succeeds.
	Validate(g Graph) error
	// Transform rewrites a candidate value before insertion. The
	// default (embed Transformer) is the identity function.
	Transform(v value.Value) (value.Value, error)
}

// Validator is embedded by validation-only specs to get the default
// identity Transform for free.
type Validator struct{}

func (Validator) Transform(v value.Value) (value.Value, error) { return v, nil }

// Transformer is embedded by transformation-only specs to get the
// default always-succeeds Validate for free.
type Transformer struct{}

func (Transformer) Validate(Graph) error { return nil }

// FromSymbol maps a `:name` symbol literal (as used by `.add_rule(:name)`)
// to a parameterless Spec. Parameterized rules (MaxDegree, ValidateRange,
// Mapping, CustomFunction, Conditional, Ordering) are constructed
// directly by their constructor function instead, since a bare symbol
// carries no parameters.
func FromSymbol(name string) (Spec, error) {
	switch name {
	case "no_cycles":
		return NoCycles(), nil
	case "single_root":
		return SingleRoot(), nil
	case "connected":
		return Connected(), nil
	case "binary_tree":
		return BinaryTree(), nil
	case "weighted_edges":
		return WeightedEdges(), nil
	case "unweighted_edges":
		return UnweightedEdges(), nil
	case "bst_ordering":
		return BstOrdering(), nil
	case "none_to_zero":
		return NoneToZero(), nil
	case "none_to_empty":
		return NoneToEmpty(), nil
	case "positive":
		return Positive(), nil
	case "round_to_int":
		return RoundToInt(), nil
	case "uppercase":
		return Uppercase(), nil
	case "lowercase":
		return Lowercase(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
}

// Ruleset expands a named bundle to its concrete member rules (spec
// §3.3). The member order is the attach order recorded on the graph.
func Ruleset(name string) ([]Spec, error) {
	switch name {
	case "tree":
		return []Spec{NoCycles(), SingleRoot(), Connected()}, nil
	case "dag":
		return []Spec{NoCycles()}, nil
	case "binary_tree":
		return []Spec{NoCycles(), SingleRoot(), Connected(), MaxDegree(2)}, nil
	case "bst":
		specs, _ := Ruleset("binary_tree")
		return append(specs, BstOrdering()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleset, name)
	}
}

// Instance is one rule attached to a graph: its Spec, its Severity, and
// whether it is currently Active (disable_rule/enable_rule toggle this
// without detaching the rule).
type Instance struct {
	Spec     Spec
	Severity Severity
	Active   bool
}

// SortedNames returns the canonical names of instances, sorted
// ascending, matching spec §4.5's "rules() returns the same sorted
// list" determinism requirement.
func SortedNames(instances []Instance) []string {
	names := make([]string, 0, len(instances))
	for _, in := range instances {
		names = append(names, in.Spec.Name())
	}
	sort.Strings(names)
	return names
}
