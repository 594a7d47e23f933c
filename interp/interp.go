// Package interp is Graphoid's executor: the tree-walking evaluator that
// turns an ast.Program into effects over value.Value, config.Stack,
// errorx.Collector, and universe.Universe (spec §4.3).
package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/universe"
	"github.com/graphoid-lang/graphoid/value"
)

// Resolver is the host-provided module resolver (spec §6.3): given an
// import/load path and the current module's file, it returns either a
// parsed source module or a native module descriptor.
type Resolver interface {
	Resolve(path, fromFile string) (Module, error)
}

// Module is whatever a Resolver hands back for one import/load target:
// either a parsed program to execute in a fresh environment, or an
// already-built native namespace of bindings.
type Module struct {
	Program  *ast.Program    // nil for a native module
	Native   map[string]value.Value // nil for a source module
	Identity string          // cache key for import (spec §6.3)
}

// Interp ties together one execution: the global environment, the
// config stack, the module-scoped error collector, the process-global
// universe, and the module cache/resolver used by import/load.
type Interp struct {
	Globals    *Environment
	Config     *config.Stack
	Errors     *errorx.Collector
	Universe   *universe.Universe
	Resolver   Resolver
	file       string
	moduleCache map[string]map[string]value.Value // identity -> exported bindings
	callStack  []errorx.Frame
	activeErrors []*errorx.Error // errors in flight while a catch/finally body runs
	moduleName string
	// Exports holds this module's public (non-priv) top-level bindings,
	// populated by a ModuleDecl or, for a file with no explicit module
	// block, left nil (such a file has nothing importable).
	Exports map[string]value.Value
}

// New returns a fresh interpreter for a source file named file (used for
// error positions and module identity); resolver may be nil if the
// program performs no import/load.
func New(file string, resolver Resolver) *Interp {
	return &Interp{
		Globals:     NewEnvironment(),
		Config:      config.NewStack(),
		Errors:      errorx.NewCollector(),
		Universe:    universe.New(),
		Resolver:    resolver,
		file:        file,
		moduleCache: map[string]map[string]value.Value{},
	}
}

// Run executes prog's statements in the global scope, returning the
// first unhandled error (if any). A top-level return/break/continue is
// not meaningful and is treated as normal completion, mirroring the
// teacher's top-level convention of never letting control signals leak
// past the outermost execution unit.
func (in *Interp) Run(prog *ast.Program) error {
	_, err := in.execBlockStmts(prog.Statements, in.Globals)
	return err
}

// pushFrame/popFrame maintain the call-stack frames attached to errors
// raised while frames are active (spec §4.7 "stack capture").
func (in *Interp) pushFrame(name string, pos errorx.Position) {
	in.callStack = append(in.callStack, errorx.Frame{FunctionName: name, Position: pos})
}

func (in *Interp) popFrame() {
	if len(in.callStack) > 0 {
		in.callStack = in.callStack[:len(in.callStack)-1]
	}
}

// captureStack returns a snapshot of the current call stack, innermost
// frame last, suitable for attaching to a freshly raised error.
func (in *Interp) captureStack() []errorx.Frame {
	out := make([]errorx.Frame, len(in.callStack))
	copy(out, in.callStack)
	return out
}
