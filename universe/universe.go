package universe

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/graphoid-lang/graphoid/graph"
	"github.com/graphoid-lang/graphoid/value"
)

// Sentinel errors, following the teacher's discipline of returning one
// of a small fixed set rather than formatted ad-hoc errors.
var (
	ErrTypeExists     = errors.New("universe: type already declared")
	ErrTypeNotFound   = errors.New("universe: type not found")
	ErrModuleExists   = errors.New("universe: module already loaded")
	ErrModuleNotFound = errors.New("universe: module not found")
)

const edgeSubtypeOf = "subtype_of"
const edgeImports = "imports"

// Built-in type names seeded at construction (spec §3.5): the
// primitive/collection kinds plus "bignum", reserved for a future
// arbitrary-precision numeric kind (no concrete value.Kind implements
// it yet; it exists in the hierarchy so reflect.universe() and
// user-declared subtypes can already refer to it).
const (
	TypeAny        = "any"
	TypeNum        = "num"
	TypeString     = "string"
	TypeBool       = "bool"
	TypeCollection = "collection"
	TypeList       = "list"
	TypeMap        = "map"
	TypeGraph      = "graph"
	TypeBignum     = "bignum"
)

// Built-in error-type names, mirroring errorx.Kind's built-in set so
// `catch Kind as e` can walk the hierarchy rather than compare strings.
const (
	ErrorAny           = "error"
	ErrorSyntax        = "syntax"
	ErrorParse         = "parse"
	ErrorType          = "type"
	ErrorRuntime       = "runtime"
	ErrorIO            = "io"
	ErrorRuleViolation = "rule_violation"
	ErrorValue         = "value"
	ErrorKey           = "key"
	ErrorIndex         = "index"
	ErrorArity         = "arity"
)

// EffectKind discriminates an entry in the descriptive effect log.
type EffectKind string

const (
	EffectIO     EffectKind = "io"
	EffectState  EffectKind = "state"
	EffectModule EffectKind = "module"
)

// Universe is the process-lifetime graph of spec §3.5: a single
// *graph.Graph instance whose nodes are prefixed `type:`, `module:`,
// `error_type:`, and `effect:`, connected by `subtype_of`/`imports`
// edges. It is mutated only by the executor (type/module/error
// declarations, effect logging); user code only ever reads a Snapshot.
type Universe struct {
	g          *graph.Graph
	effectSeq  int
}

// New builds a Universe with the built-in type hierarchy and error-type
// hierarchy already seeded, rooted at "any" and "error" respectively.
func New() *Universe {
	u := &Universe{g: graph.New(true)}

	u.seedNode("type:" + TypeAny)
	for _, t := range []string{TypeNum, TypeString, TypeBool, TypeCollection, TypeGraph, TypeBignum} {
		u.seedNode("type:" + t)
		u.seedEdge("type:"+t, "type:"+TypeAny)
	}
	u.seedNode("type:" + TypeList)
	u.seedEdge("type:"+TypeList, "type:"+TypeCollection)
	u.seedNode("type:" + TypeMap)
	u.seedEdge("type:"+TypeMap, "type:"+TypeCollection)

	u.seedNode("error_type:" + ErrorAny)
	for _, e := range []string{ErrorSyntax, ErrorParse, ErrorType, ErrorRuntime, ErrorIO, ErrorRuleViolation, ErrorValue, ErrorKey, ErrorIndex, ErrorArity} {
		u.seedNode("error_type:" + e)
		u.seedEdge("error_type:"+e, "error_type:"+ErrorAny)
	}
	return u
}

func (u *Universe) seedNode(id string) {
	_ = u.g.AddNode(id, value.Nil, nil)
}

func (u *Universe) seedEdge(from, to string) {
	_ = u.g.AddEdge(from, to, edgeSubtypeOf)
}

// RegisterType declares a user graph template named name as a subtype
// of parent (spec §3.5's "user-declared graph templates"). parent must
// already be a registered type (built-in or user-declared).
func (u *Universe) RegisterType(name, parent string) error {
	id, parentID := "type:"+name, "type:"+parent
	if u.g.HasNode(id) {
		return fmt.Errorf("%w: %q", ErrTypeExists, name)
	}
	if !u.g.HasNode(parentID) {
		return fmt.Errorf("%w: parent %q", ErrTypeNotFound, parent)
	}
	if err := u.g.AddNode(id, value.Nil, nil); err != nil {
		return err
	}
	return u.g.AddEdge(id, parentID, edgeSubtypeOf)
}

// IsSubtype reports whether name is parent or a descendant of parent in
// the type hierarchy (subtype_of edges walked upward from name).
func (u *Universe) IsSubtype(name, parent string) bool {
	return u.ancestorWalk("type:"+name, "type:"+parent)
}

// RegisterErrorType declares a user error kind as a subtype of parent
// in the error hierarchy used by `catch Kind as e` matching.
func (u *Universe) RegisterErrorType(name, parent string) error {
	id, parentID := "error_type:"+name, "error_type:"+parent
	if u.g.HasNode(id) {
		return fmt.Errorf("%w: %q", ErrTypeExists, name)
	}
	if !u.g.HasNode(parentID) {
		return fmt.Errorf("%w: parent %q", ErrTypeNotFound, parent)
	}
	if err := u.g.AddNode(id, value.Nil, nil); err != nil {
		return err
	}
	return u.g.AddEdge(id, parentID, edgeSubtypeOf)
}

// ErrorIsA reports whether kind matches ancestor — either identical, or
// a descendant of it in the error-type hierarchy (spec §4.6's `catch
// Kind as e`, which "matches when the raised error's kind, or any
// ancestor in the error-type subgraph, equals Kind").
func (u *Universe) ErrorIsA(kind, ancestor string) bool {
	return u.ancestorWalk("error_type:"+kind, "error_type:"+ancestor)
}

// ancestorWalk reports whether to is reachable from from by following
// subtype_of edges upward, including from == to.
func (u *Universe) ancestorWalk(from, to string) bool {
	if from == to {
		return u.g.HasNode(from)
	}
	if !u.g.HasNode(from) || !u.g.HasNode(to) {
		return false
	}
	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range u.g.OutEdgesFull(cur) {
			if e.Type != edgeSubtypeOf || visited[e.Target] {
				continue
			}
			if e.Target == to {
				return true
			}
			visited[e.Target] = true
			queue = append(queue, e.Target)
		}
	}
	return false
}

// RegisterModule adds a module:* node and `imports` edges to every
// module it depends on, which must already be loaded. Returns
// ErrModuleExists if name is already registered.
func (u *Universe) RegisterModule(name string, imports []string) error {
	id := "module:" + name
	if u.g.HasNode(id) {
		return fmt.Errorf("%w: %q", ErrModuleExists, name)
	}
	if err := u.g.AddNode(id, value.Nil, nil); err != nil {
		return err
	}
	for _, dep := range imports {
		depID := "module:" + dep
		if !u.g.HasNode(depID) {
			return fmt.Errorf("%w: %q imports unregistered module %q", ErrModuleNotFound, name, dep)
		}
		if err := u.g.AddEdge(id, depID, edgeImports); err != nil {
			return err
		}
	}
	return nil
}

// HasModule reports whether name was registered.
func (u *Universe) HasModule(name string) bool { return u.g.HasNode("module:" + name) }

// ModuleImports returns the names of every module name directly
// imports, sorted for determinism.
func (u *Universe) ModuleImports(name string) []string {
	out := []string{}
	for _, e := range u.g.OutEdgesFull("module:" + name) {
		if e.Type == edgeImports {
			out = append(out, e.Target[len("module:"):])
		}
	}
	sort.Strings(out)
	return out
}

// LogEffect appends a descriptive entry to the effect-log subgraph:
// a timestamp-ordered record of IO/state effects (spec §3.5 — currently
// descriptive only, never consulted by control flow).
func (u *Universe) LogEffect(kind EffectKind, description string) {
	u.effectSeq++
	id := fmt.Sprintf("effect:%06d", u.effectSeq)
	props := map[string]value.Value{
		"kind":        value.String(kind),
		"description": value.String(description),
		"at":          value.String(time.Now().UTC().Format(time.RFC3339Nano)),
	}
	_ = u.g.AddNode(id, value.Nil, props)
	if u.effectSeq > 1 {
		prev := fmt.Sprintf("effect:%06d", u.effectSeq-1)
		_ = u.g.AddEdge(prev, id, "next")
	}
}

// Backing exposes the underlying Graph, e.g. for the executor's own
// Stats()/Display() diagnostics. Mutation outside this package's own
// methods is discouraged but not prevented — Universe is an internal
// bookkeeping type, never handed to user code directly.
func (u *Universe) Backing() *graph.Graph { return u.g }
