package interp

import (
	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/value"
)

// raise builds a language-level error at pos, attaching the current call
// stack, and returns it as a Go error ready to propagate.
func (in *Interp) raise(kind errorx.Kind, pos errorx.Position, format string, args ...interface{}) error {
	return errorx.Newf(kind, format, args...).WithPosition(pos).WithStack(in.captureStack())
}

// softFail implements the five "soft failure" operations of spec §4.7:
// under :strict error_mode it raises normally; under :lenient it
// substitutes value.Nil; under :collect it does the same but also
// appends the error to the module's ErrorCollector.
func (in *Interp) softFail(kind errorx.Kind, pos errorx.Position, format string, args ...interface{}) (value.Value, error) {
	mode := in.Config.Top().ErrorMode
	if mode == config.Strict {
		return nil, in.raise(kind, pos, format, args...)
	}
	err := errorx.Newf(kind, format, args...).WithPosition(pos).WithStack(in.captureStack())
	if mode == config.Collect {
		in.Errors.Add(err)
	}
	return value.Nil, nil
}

// asLangError type-asserts a Go error from the evaluator back to
// *errorx.Error, the only error type the evaluator ever produces.
func asLangError(err error) (*errorx.Error, bool) {
	le, ok := err.(*errorx.Error)
	return le, ok
}
