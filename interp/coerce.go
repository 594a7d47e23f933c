package interp

import (
	"strconv"
	"strings"

	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/value"
)

// parseNumericString attempts strict numeric parsing of s for the
// string->number coercion path (spec §4.6 type_coercion: :auto).
func parseNumericString(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// collectionToNum implements String.to_num: strict parse, raising :value
// on failure rather than silently coercing to zero.
func collectionToNum(s value.String) (value.Value, error) {
	f, ok := parseNumericString(strings.TrimSpace(string(s)))
	if !ok {
		return nil, &coerceError{s: string(s)}
	}
	return value.Number(f), nil
}

type coerceError struct{ s string }

func (e *coerceError) Error() string { return "cannot convert " + strconv.Quote(e.s) + " to num" }

// splitString implements String.split as a list of String pieces,
// grounded on the teacher corpus's plain strings.Split usage for the
// rare ambient text op that needs no dedicated library.
func splitString(s, sep string) *collection.List {
	parts := strings.Split(s, sep)
	vals := make([]value.Value, len(parts))
	for i, p := range parts {
		vals[i] = value.String(p)
	}
	return collection.NewList(vals...)
}

func stringsContains(s, sub string) bool { return strings.Contains(s, sub) }
