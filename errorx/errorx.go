// Package errorx implements Graphoid's first-class language-level error
// value: a raised error carries a kind, a message, an optional source
// position, an optional cause (forming a chain), and a stack captured at
// raise time.
package errorx

import (
	"fmt"
	"strings"

	"github.com/graphoid-lang/graphoid/token"
)

// Kind discriminates error categories. User code may also raise errors
// whose Kind is an arbitrary string, so Kind is not a closed enum.
type Kind string

// Built-in kinds recognized by the executor and standard catch matching.
const (
	Syntax        Kind = "syntax"
	Parse         Kind = "parse"
	Type          Kind = "type"
	Runtime       Kind = "runtime"
	IO            Kind = "io"
	RuleViolation Kind = "rule_violation"
	ValueKind     Kind = "value"
	Key           Kind = "key"
	Index         Kind = "index"
	Arity         Kind = "arity"
)

// Position is a source location; it is token.Position, reused here so the
// lexer, parser, and executor all report locations in one shared form.
type Position = token.Position

// posIsZero reports whether p carries no location information.
func posIsZero(p Position) bool { return p.Line == 0 && p.Column == 0 && p.File == "" }

// Frame is one entry of a captured call stack: the function active at the
// point an error was raised, and the position within it.
type Frame struct {
	FunctionName string
	Position     Position
}

func (f Frame) String() string {
	name := f.FunctionName
	if name == "" {
		name = "<anonymous>"
	}
	return fmt.Sprintf("%s (%s)", name, f.Position)
}

// Error is a first-class Graphoid runtime error value (spec §3.4). It
// implements the standard library error interface so it composes with
// Go's own errors.Is/errors.As via Unwrap.
type Error struct {
	kind     Kind
	message  string
	position Position
	cause    *Error
	stack    []Frame
}

// New constructs an Error with the given kind and message. Optional
// positional information and a cause may be attached with WithPosition
// and WithCause before the error is raised.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf is New with fmt.Sprintf-style formatting of the message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// WithPosition returns e with its source position set, for chaining at
// construction sites: errorx.New(errorx.Index, "...").WithPosition(pos).
func (e *Error) WithPosition(pos Position) *Error {
	e.position = pos
	return e
}

// WithCause sets e's cause to the previously active error, forming a
// chain. Raising from within a catch or finally block chains this way.
func (e *Error) WithCause(cause *Error) *Error {
	e.cause = cause
	return e
}

// WithStack attaches a captured call stack (outermost frame first is the
// caller's choice; the executor pushes frames as it unwinds).
func (e *Error) WithStack(frames []Frame) *Error {
	e.stack = frames
	return e
}

// LangKind returns the error's Graphoid-level kind (e.g. Runtime,
// IO, RuleViolation). Named distinctly from the value.Value method
// Kind() (errorx/value.go), which instead reports this type's runtime
// value kind (always value.KindError).
func (e *Error) LangKind() Kind { return e.kind }

// Message returns the error's message.
func (e *Error) Message() string { return e.message }

// Position returns the error's source position, zero if none was set.
func (e *Error) Position() Position { return e.position }

// Cause returns the error that caused this one, or nil.
func (e *Error) Cause() *Error { return e.cause }

// Stack returns the captured call-stack frames, outermost call first.
func (e *Error) Stack() []Frame { return e.stack }

// Unwrap lets errors.Is/errors.As walk the cause chain via the standard
// library's error-chain protocol, in addition to Chain below.
func (e *Error) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// Chain walks the cause links starting at e (inclusive) and returns them
// outermost-first.
func (e *Error) Chain() []*Error {
	out := make([]*Error, 0, 2)
	for cur := e; cur != nil; cur = cur.cause {
		out = append(out, cur)
	}
	return out
}

// Error implements the standard error interface with a one-line summary.
func (e *Error) Error() string {
	if posIsZero(e.position) {
		return fmt.Sprintf("%s: %s", e.kind, e.message)
	}
	return fmt.Sprintf("%s: %s at %s", e.kind, e.message, e.position)
}

// FullDisplay renders the deterministic multi-line user-visible format
// described in spec §4.7: kind/message/position, one line per stack
// frame, then one "caused by" line per link in the cause chain.
func (e *Error) FullDisplay() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for _, f := range e.stack {
		b.WriteString("\n    at ")
		b.WriteString(f.String())
	}
	if e.cause != nil {
		b.WriteString("\n    caused by: ")
		b.WriteString(e.cause.FullDisplay())
	}
	return b.String()
}
