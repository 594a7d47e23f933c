// Package config implements the scoped configuration stack described in
// spec §4.6: error mode, bounds checking, type coercion, none handling,
// decimal precision, and shift semantics, all overridable for the
// duration of a configure/precision block.
package config

// ErrorMode governs how built-in "soft" failures are handled (spec §4.7).
type ErrorMode string

const (
	Strict  ErrorMode = "strict"
	Lenient ErrorMode = "lenient"
	Collect ErrorMode = "collect"
)

// BoundsMode governs out-of-range index/key access.
type BoundsMode string

const (
	BoundsStrict  BoundsMode = "strict"
	BoundsLenient BoundsMode = "lenient"
)

// CoercionMode governs whether arithmetic coerces string<->number.
type CoercionMode string

const (
	CoercionStrict CoercionMode = "strict"
	CoercionAuto   CoercionMode = "auto"
)

// NoneHandling governs whether aggregations skip or propagate none.
type NoneHandling string

const (
	NoneStrict NoneHandling = "strict"
	NoneSkip   NoneHandling = "skip"
)

// Frame is one scoped configuration record. Default() returns the
// language's documented default: strict errors, strict bounds, auto
// coercion, none-skipping, no fixed precision, arithmetic shifts. The
// zero Frame leaves the four mode fields empty.
type Frame struct {
	ErrorMode     ErrorMode
	BoundsMode    BoundsMode
	Coercion      CoercionMode
	NoneHandling  NoneHandling
	DecimalPlaces *int // nil = unset; *int==0 means integer mode
	UnsignedShift bool
}

// Default returns the frame active at interpreter start.
func Default() Frame {
	return Frame{
		ErrorMode:    Strict,
		BoundsMode:   BoundsStrict,
		Coercion:     CoercionAuto,
		NoneHandling: NoneSkip,
	}
}

// SkipNone reports whether aggregations should skip none values under
// this frame.
func (f Frame) SkipNone() bool { return f.NoneHandling == NoneSkip }

// IntegerMode reports whether decimal places are pinned to zero, which
// per the resolved Open Question in DESIGN.md affects arithmetic (not
// just display): intermediate results truncate to integers.
func (f Frame) IntegerMode() bool { return f.DecimalPlaces != nil && *f.DecimalPlaces == 0 }

// Setting is a functional option mutating a derived Frame, applied by
// a `configure { ... }` block. This mirrors the teacher's GraphOption/
// EdgeOption functional-option idiom (core/types.go), generalized from
// "apply once at construction" to "apply to a frame derived from the
// current top of stack".
type Setting func(*Frame)

// WithErrorMode overrides error_mode for the duration of the block.
func WithErrorMode(m ErrorMode) Setting { return func(f *Frame) { f.ErrorMode = m } }

// WithBoundsChecking overrides bounds_checking.
func WithBoundsChecking(m BoundsMode) Setting { return func(f *Frame) { f.BoundsMode = m } }

// WithTypeCoercion overrides type_coercion.
func WithTypeCoercion(m CoercionMode) Setting { return func(f *Frame) { f.Coercion = m } }

// WithNoneHandling overrides none_handling.
func WithNoneHandling(m NoneHandling) Setting { return func(f *Frame) { f.NoneHandling = m } }

// WithDecimalPlaces overrides decimal_places; WithDecimalPlaces(0)
// switches on integer mode.
func WithDecimalPlaces(n int) Setting {
	return func(f *Frame) { f.DecimalPlaces = &n }
}

// WithUnsignedShift overrides whether >> is logical rather than
// arithmetic.
func WithUnsignedShift(b bool) Setting { return func(f *Frame) { f.UnsignedShift = b } }

// Stack is a push/pop stack of Frames; there is always at least one
// frame (the default). Derive pushes a copy of the current top with the
// given settings applied; Pop restores the previous frame. Callers must
// guarantee Pop runs on every exit path (normal, return, raise) — see
// interp's scope-guard usage.
type Stack struct {
	frames []Frame
}

// NewStack returns a Stack seeded with the default frame.
func NewStack() *Stack {
	return &Stack{frames: []Frame{Default()}}
}

// Top returns the currently active frame.
func (s *Stack) Top() Frame {
	return s.frames[len(s.frames)-1]
}

// Push derives a new frame from Top with settings applied and makes it
// the active frame.
func (s *Stack) Push(settings ...Setting) {
	next := s.Top()
	for _, set := range settings {
		set(&next)
	}
	s.frames = append(s.frames, next)
}

// Pop discards the active frame, restoring the one beneath it. Popping
// the last remaining (default) frame is a no-op: a configure/precision
// block is always balanced by construction, but this guards against a
// caller bug from corrupting the stack irrecoverably.
func (s *Stack) Pop() {
	if len(s.frames) <= 1 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// SetRoot permanently modifies the module's root (bottommost) frame, the
// effect of a bare `configure { settings }` at file scope with no body.
func (s *Stack) SetRoot(settings ...Setting) {
	for _, set := range settings {
		set(&s.frames[0])
	}
}

// Depth reports how many frames are on the stack (>=1).
func (s *Stack) Depth() int { return len(s.frames) }
