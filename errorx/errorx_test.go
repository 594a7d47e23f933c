package errorx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainAndCause(t *testing.T) {
	inner := New(ValueKind, "inner")
	outer := New(Runtime, "outer").WithCause(inner)

	require.Equal(t, Runtime, outer.LangKind())
	require.Equal(t, ValueKind, outer.Cause().LangKind())
	require.Len(t, outer.Chain(), 2)
	require.Equal(t, inner, outer.Chain()[1])
}

func TestFullDisplayDeterministic(t *testing.T) {
	inner := New(ValueKind, "inner").WithPosition(Position{File: "a.gr", Line: 3, Column: 5})
	outer := New(Runtime, "outer").
		WithPosition(Position{File: "a.gr", Line: 10, Column: 1}).
		WithCause(inner).
		WithStack([]Frame{{FunctionName: "step", Position: Position{File: "a.gr", Line: 9, Column: 2}}})

	want := "runtime: outer at a.gr:10:1\n" +
		"    at step (a.gr:9:2)\n" +
		"    caused by: value: inner at a.gr:3:5"
	require.Equal(t, want, outer.FullDisplay())
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	require.Equal(t, 0, c.Len())
	c.Add(New(Key, "missing"))
	c.Add(nil)
	require.Equal(t, 1, c.Len())
	require.Equal(t, Key, c.Errors()[0].LangKind())
	c.Clear()
	require.Equal(t, 0, c.Len())
}
