package errorx

import "github.com/graphoid-lang/graphoid/value"

// Error objects are first-class Graphoid values (spec §3.4): they can be
// bound, passed, and compared like any other value.
func (e *Error) Kind() value.Kind { return value.KindError }

// Truthy errors are always truthy, matching spec §4.3.6 ("everything
// else... is truthy").
func (e *Error) Truthy() bool { return true }

// Display renders the one-line summary; use FullDisplay for the
// multi-line chained form.
func (e *Error) Display() string { return e.Error() }

// Equal compares errors by identity of their kind, message, and cause
// chain (structural, not pointer identity).
func (e *Error) Equal(o value.Value) bool {
	oe, ok := o.(*Error)
	if !ok {
		return false
	}
	if e == nil || oe == nil {
		return e == oe
	}
	if e.kind != oe.kind || e.message != oe.message {
		return false
	}
	switch {
	case e.cause == nil && oe.cause == nil:
		return true
	case e.cause == nil || oe.cause == nil:
		return false
	default:
		return e.cause.Equal(oe.cause)
	}
}
