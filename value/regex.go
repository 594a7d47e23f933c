package value

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Regex wraps a compiled regexp2.Regexp together with the literal source
// text and flags it was built from, so Display can round-trip the
// `/pattern/flags` literal form (spec §3.1's requirement that every
// value kind has a deterministic textual form).
type Regex struct {
	Pattern string
	Flags   string
	re      *regexp2.Regexp
}

// NewRegex compiles pattern under flags (a subset of "imsx") into a
// Regex value. Supported flags mirror regexp2's RegexOptions: "i"
// (IgnoreCase), "m" (Multiline), "s" (Singleline / dot-matches-all),
// "x" (IgnorePatternWhitespace).
func NewRegex(pattern, flags string) (*Regex, error) {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		default:
			return nil, fmt.Errorf("unknown regex flag %q", f)
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &Regex{Pattern: pattern, Flags: flags, re: re}, nil
}

func (r *Regex) Kind() Kind      { return KindRegex }
func (r *Regex) Truthy() bool    { return true }
func (r *Regex) Display() string { return "/" + r.Pattern + "/" + r.Flags }
func (r *Regex) Equal(o Value) bool {
	or, ok := o.(*Regex)
	return ok && or.Pattern == r.Pattern && or.Flags == r.Flags
}

// MatchString reports whether s contains a match anywhere, implementing
// the `=~` / `!~` operators (§4.3.2).
func (r *Regex) MatchString(s string) bool {
	m, err := r.re.MatchString(s)
	return err == nil && m
}
