package collection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

func TestMapBasics(t *testing.T) {
	m := NewMap([]string{"a", "b"}, []value.Value{value.String("hello"), value.String("world")})
	require.Equal(t, 2, m.Length())
	require.Equal(t, []string{"a", "b"}, m.Keys())
	v, err := m.Get("a")
	require.NoError(t, err)
	require.Equal(t, value.String("hello"), v)

	_, err = m.Get("missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMapSetLastAssignmentWins(t *testing.T) {
	m := NewMap([]string{"a"}, []value.Value{value.Number(1)})
	require.NoError(t, m.Set("a", value.Number(2)))
	v, err := m.Get("a")
	require.NoError(t, err)
	require.Equal(t, value.Number(2), v)
}

func TestMapRetroactiveUppercase(t *testing.T) {
	m := NewMap([]string{"a", "b"}, []value.Value{value.String("hello"), value.String("world")})
	require.NoError(t, m.AddRule(rules.Uppercase(), rules.SeverityError, rules.RetroClean))

	a, err := m.Get("a")
	require.NoError(t, err)
	require.Equal(t, value.String("HELLO"), a)
	b, err := m.Get("b")
	require.NoError(t, err)
	require.Equal(t, value.String("WORLD"), b)

	require.NoError(t, m.Set("c", value.String("foo")))
	c, err := m.Get("c")
	require.NoError(t, err)
	require.Equal(t, value.String("FOO"), c)
}

func TestMapMergeOverwritesOnCollision(t *testing.T) {
	m1 := NewMap([]string{"a", "b"}, []value.Value{value.Number(1), value.Number(2)})
	m2 := NewMap([]string{"b", "c"}, []value.Value{value.Number(20), value.Number(3)})
	merged := m1.Merge(m2)
	require.Equal(t, 3, merged.Length())
	v, _ := merged.Get("b")
	require.Equal(t, value.Number(20), v)
}

func TestMapEqualityIgnoresOrder(t *testing.T) {
	m1 := NewMap([]string{"a", "b"}, []value.Value{value.Number(1), value.Number(2)})
	m2 := NewMap([]string{"b", "a"}, []value.Value{value.Number(2), value.Number(1)})
	require.True(t, m1.Equal(m2))
}

func TestMapFreeze(t *testing.T) {
	m := NewMap([]string{"a"}, []value.Value{value.Number(1)})
	m.Freeze()
	require.True(t, m.IsFrozen())
	require.Error(t, m.Set("b", value.Number(2)))
}
