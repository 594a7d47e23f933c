package interp

import "github.com/graphoid-lang/graphoid/value"

// signal is returned alongside a nil error by exec to unwind control
// flow (return/break/continue) up to the statement that handles it,
// mirroring the teacher's single-struct error-propagation discipline
// but for non-error unwinding (spec §4.3.3).
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
)

type signal struct {
	kind signalKind
	// value carries the return value for sigReturn.
	value value.Value
}

var noSignal = signal{kind: sigNone}
