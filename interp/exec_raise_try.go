package interp

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/value"
)

// execRaise builds and propagates an error value (spec §4.3.2's "Raise"
// row, §4.7). Raising from within an active catch/finally chains the
// new error's cause to the error that was active at that point.
func (in *Interp) execRaise(s *ast.RaiseStmt, env value.Environment) error {
	var le *errorx.Error
	if s.Value != nil {
		v, err := in.Eval(s.Value, env)
		if err != nil {
			return err
		}
		existing, ok := v.(*errorx.Error)
		if !ok {
			return in.raise(errorx.Type, s.Position, "raise requires an error value, got %s", v.Kind())
		}
		le = existing
	} else {
		msg := ""
		if s.Message != nil {
			v, err := in.Eval(s.Message, env)
			if err != nil {
				return err
			}
			msg = toDisplayString(v)
		}
		le = errorx.New(errorx.Kind(s.Kind), msg).WithPosition(s.Position)
	}
	le = le.WithStack(in.captureStack())
	if cause := in.topActiveError(); cause != nil {
		le = le.WithCause(cause)
	}
	return le
}

// activeError stack: errors currently "in flight" while a catch/finally
// body executes, consulted by execRaise for cause-chaining (spec §4.7).
func (in *Interp) pushActiveError(e *errorx.Error) { in.activeErrors = append(in.activeErrors, e) }
func (in *Interp) popActiveError() {
	if len(in.activeErrors) > 0 {
		in.activeErrors = in.activeErrors[:len(in.activeErrors)-1]
	}
}
func (in *Interp) topActiveError() *errorx.Error {
	if len(in.activeErrors) == 0 {
		return nil
	}
	return in.activeErrors[len(in.activeErrors)-1]
}

// execTry implements try/catch/finally (spec §4.7): clauses are tried in
// order, exactly one executes, and finally always runs, including on
// normal completion, an unmatched error, a handled error, and a
// return/break/continue crossing the try.
func (in *Interp) execTry(s *ast.TryStmt, env value.Environment) (signal, error) {
	sig, err := in.execBlock(s.Body, env.Child())

	if err != nil {
		if le, ok := asLangError(err); ok {
			for _, c := range s.Catches {
				matches, merr := in.catchMatches(c, le, env)
				if merr != nil {
					return noSignal, merr
				}
				if !matches {
					continue
				}
				catchEnv := env.Child()
				if c.Bind != "" {
					catchEnv.Define(c.Bind, le)
				}
				in.pushActiveError(le)
				sig, err = in.execBlock(c.Body, catchEnv)
				in.popActiveError()
				break
			}
		}
	}

	if s.Finally != nil {
		if le, ok := asLangError(err); ok {
			in.pushActiveError(le)
			fsig, ferr := in.execBlock(s.Finally, env.Child())
			in.popActiveError()
			if ferr != nil {
				return noSignal, ferr
			}
			if fsig.kind != sigNone {
				return fsig, nil
			}
			return sig, err
		}
		fsig, ferr := in.execBlock(s.Finally, env.Child())
		if ferr != nil {
			return noSignal, ferr
		}
		if fsig.kind != sigNone {
			return fsig, nil
		}
	}
	return sig, err
}

// catchMatches reports whether c handles le: an untyped `catch` matches
// anything; `catch Kind as e` matches when le's kind, or any ancestor in
// the error-type hierarchy, equals Kind (spec §4.7, §3.5).
func (in *Interp) catchMatches(c ast.CatchClause, le *errorx.Error, env value.Environment) (bool, error) {
	if c.Type == nil {
		return true, nil
	}
	var name string
	if sym, ok := c.Type.(*ast.SymbolLit); ok {
		name = sym.Name
	} else {
		n, err := in.mapEntryKey(c.Type, env)
		if err != nil {
			return false, err
		}
		name = n
	}
	kind := string(le.LangKind())
	if kind == name {
		return true, nil
	}
	return in.Universe.ErrorIsA(kind, name), nil
}
