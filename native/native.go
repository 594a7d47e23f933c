// Package native defines the host-provided external capability contract
// (spec §6.2/§6.3): a native module presents a name, a table of
// functions, and a table of constants; a Registry resolves "import"
// paths to either a native module or leaves source-module resolution to
// the caller. This package ships the contract only — no concrete
// json/regex/time/io/crypto/http provider is implemented here, matching
// the Non-goal that scopes those out of the core.
package native

import (
	"fmt"
	"sort"
	"sync"

	"github.com/graphoid-lang/graphoid/interp"
	"github.com/graphoid-lang/graphoid/universe"
	"github.com/graphoid-lang/graphoid/value"
)

// Context is the host-side environment a NativeFunction executes under:
// a universe field (for providers that register types, e.g. a time
// module's duration type) and the importing file's path. Registry.Resolve
// fills in only File; Universe is left nil.
type Context struct {
	Universe *universe.Universe
	File     string
}

// Function is one host-implemented callable of a native module (spec
// §6.2's "NativeFunction"): a name, its arity for early arg-count
// checking, and the Go implementation itself.
type Function struct {
	Name     string
	Required int
	Variadic bool
	Call     func(ctx Context, args []value.Value) (value.Value, error)
}

// Module is an external capability provider (spec §6.2). A provider's
// Functions/Constants maps are read once at registration time; Module
// implementations are expected to return fresh maps or pre-built
// immutable ones, not share mutable state across Registry instances.
type Module interface {
	Name() string
	Functions() map[string]Function
	Constants() map[string]value.Value
}

// FuncModule is the functional-option-style Module builder (grounded on
// the teacher's GraphOption/EdgeOption closures-over-struct-fields
// idiom): construct with NewFuncModule(name) and chain WithFunction/
// WithConstant calls instead of hand-writing a Module implementation.
type FuncModule struct {
	name      string
	functions map[string]Function
	constants map[string]value.Value
}

// NewFuncModule returns an empty named module ready for WithFunction/
// WithConstant registration.
func NewFuncModule(name string) *FuncModule {
	return &FuncModule{name: name, functions: map[string]Function{}, constants: map[string]value.Value{}}
}

func (m *FuncModule) WithFunction(fn Function) *FuncModule {
	m.functions[fn.Name] = fn
	return m
}

func (m *FuncModule) WithConstant(name string, v value.Value) *FuncModule {
	m.constants[name] = v
	return m
}

func (m *FuncModule) Name() string { return m.name }

func (m *FuncModule) Functions() map[string]Function {
	out := make(map[string]Function, len(m.functions))
	for k, v := range m.functions {
		out[k] = v
	}
	return out
}

func (m *FuncModule) Constants() map[string]value.Value {
	out := make(map[string]value.Value, len(m.constants))
	for k, v := range m.constants {
		out[k] = v
	}
	return out
}

// functionValue adapts one native Function into a language-level value
// bindable under a namespace's `ns.symbol` (spec §6.2). It deliberately
// does not implement the interpreter's call-dispatch contract: wiring a
// concrete provider's functions to user-code call sites is out of scope
// here (Non-goal), so calling one raises the same "not callable" type
// error a non-function value would.
type functionValue struct {
	fn  Function
	ctx Context
}

const functionKind value.Kind = "native_function"

func (f *functionValue) Kind() value.Kind { return functionKind }
func (f *functionValue) Truthy() bool     { return true }
func (f *functionValue) Display() string  { return "native fn " + f.fn.Name }
func (f *functionValue) Equal(o value.Value) bool {
	of, ok := o.(*functionValue)
	return ok && of.fn.Name == f.fn.Name
}

// Invoke runs the wrapped native function directly, for hosts (or tests)
// that call a resolved native binding without going through the
// interpreter's call-expression machinery.
func (f *functionValue) Invoke(args []value.Value) (value.Value, error) {
	required, variadic := f.fn.Required, f.fn.Variadic
	if len(args) < required || (!variadic && len(args) > required) {
		return nil, fmt.Errorf("native function %q: expected %d argument(s), got %d", f.fn.Name, required, len(args))
	}
	return f.fn.Call(f.ctx, args)
}

// Registry is a process-wide table of registered native modules, keyed
// by name (spec §6.2's "register_native_module"). It implements
// interp.Resolver, so a Registry can be handed directly to interp.New
// as the Resolver for any program wanting `import "modname"` to reach a
// native provider; source-module resolution for any other path is
// delegated to Fallback.
type Registry struct {
	mu       sync.RWMutex
	modules  map[string]Module
	Fallback interp.Resolver
}

// NewRegistry returns an empty registry. Fallback may be set afterward
// for programs that also import source modules.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]Module{}}
}

// Register installs provider under its own Name(), replacing any module
// previously registered under that name.
func (r *Registry) Register(provider Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[provider.Name()] = provider
}

// Names returns the registered module names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for n := range r.modules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the module registered under name, if any.
func (r *Registry) Lookup(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Resolve implements interp.Resolver (spec §6.3): a registered native
// module wins over Fallback, so a host can shadow a source module of
// the same name with a native one deliberately.
func (r *Registry) Resolve(path, fromFile string) (interp.Module, error) {
	if m, ok := r.Lookup(path); ok {
		return interp.Module{Identity: "native:" + path, Native: bindings(m, Context{File: fromFile})}, nil
	}
	if r.Fallback != nil {
		return r.Fallback.Resolve(path, fromFile)
	}
	return interp.Module{}, fmt.Errorf("no native or source module named %q", path)
}

// bindings flattens a Module's functions and constants into the single
// namespace map a resolved import binds under its alias.
func bindings(m Module, ctx Context) map[string]value.Value {
	out := map[string]value.Value{}
	for name, fn := range m.Functions() {
		out[name] = &functionValue{fn: fn, ctx: ctx}
	}
	for name, v := range m.Constants() {
		out[name] = v
	}
	return out
}
