// Package graphoid is the top-level embedding API for Glang: a
// dynamically-typed, tree-walking scripting language whose lists, maps,
// and trees are all façades over one graph substrate with first-class
// validation and transformation rules.
//
// A host program embeds the language by constructing an Engine and
// calling Eval or Run:
//
//	eng := graphoid.New("script.gr", nil)
//	result, err := eng.Eval(`[1, 2, 3].map(:double)`)
//
// Engine ties together the four pipeline stages a script passes through
// (source text -> lexer -> parser -> interp) as one value, and exposes
// the underlying config/error/universe state for hosts that need to
// inspect it between runs (e.g. a REPL replaying one Engine across
// several inputs so top-level bindings persist).
package graphoid

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/interp"
	"github.com/graphoid-lang/graphoid/parser"
	"github.com/graphoid-lang/graphoid/universe"
	"github.com/graphoid-lang/graphoid/value"
)

// Engine is one script execution context: a file identity (used for
// error positions and import/load resolution) and the interpreter
// holding its global scope, config stack, and universe.
type Engine struct {
	file string
	in   *interp.Interp
}

// New returns an Engine for a script named file. resolver is consulted
// for import/load statements and may be nil for scripts that use
// neither (a *native.Registry satisfies interp.Resolver directly).
func New(file string, resolver interp.Resolver) *Engine {
	return &Engine{file: file, in: interp.New(file, resolver)}
}

// Parse lexes and parses src into an ast.Program without executing it,
// for hosts that want to inspect or cache the AST separately from
// running it (e.g. a tool that lints scripts before Engine.RunProgram).
func Parse(file, src string) (*ast.Program, error) {
	return parser.Parse(file, src)
}

// Eval parses and runs src in this Engine's global scope, returning the
// value of the last top-level expression statement evaluated, or
// value.Nil if the program ends on a non-expression statement.
func (e *Engine) Eval(src string) (value.Value, error) {
	prog, err := Parse(e.file, src)
	if err != nil {
		return nil, err
	}
	return e.evalProgram(prog)
}

// Run parses and executes src as a program, discarding any final
// expression value; only an unhandled error is reported.
func (e *Engine) Run(src string) error {
	prog, err := Parse(e.file, src)
	if err != nil {
		return err
	}
	return e.in.Run(prog)
}

// RunProgram executes an already-parsed program (see Parse) in this
// Engine's global scope.
func (e *Engine) RunProgram(prog *ast.Program) error {
	return e.in.Run(prog)
}

// evalProgram runs prog's statements but, unlike Run, surfaces the
// value of a trailing top-level expression statement — the convention
// a REPL or single-expression embedding wants, matching how `configure`/
// `precision` blocks never produce a value of their own.
func (e *Engine) evalProgram(prog *ast.Program) (value.Value, error) {
	if len(prog.Statements) == 0 {
		return value.Nil, nil
	}
	last := prog.Statements[len(prog.Statements)-1]
	exprStmt, ok := last.(*ast.ExprStmt)
	if !ok {
		return value.Nil, e.in.Run(prog)
	}
	for _, s := range prog.Statements[:len(prog.Statements)-1] {
		if _, err := e.in.Exec(s, e.in.Globals); err != nil {
			return nil, err
		}
	}
	return e.in.Eval(exprStmt.Expr, e.in.Globals)
}

// Globals exposes the engine's top-level scope, for a host that wants
// to seed bindings before running a script or inspect values after.
func (e *Engine) Globals() *interp.Environment { return e.in.Globals }

// Config exposes the engine's configuration stack (spec §4.6): error
// mode, bounds mode, coercion mode, none-handling, and numeric
// precision, all scoped per `configure`/`precision` block and readable
// here for their current top-of-stack values between runs.
func (e *Engine) Config() *config.Stack { return e.in.Config }

// Errors returns the collector accumulating soft-failures raised while
// the engine's config is in `:collect` error mode (spec §4.7).
func (e *Engine) Errors() *errorx.Collector { return e.in.Errors }

// Universe returns the engine's process-global type/module graph (spec
// §3.5), shared across every script run through this Engine.
func (e *Engine) Universe() *universe.Universe { return e.in.Universe }

// Exports returns the public (non-`priv`) top-level bindings recorded
// by the last `module` block executed in this Engine, or nil if none
// has run yet.
func (e *Engine) Exports() map[string]value.Value { return e.in.Exports }
