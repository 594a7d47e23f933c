package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultFrame(t *testing.T) {
	f := Default()
	require.Equal(t, Strict, f.ErrorMode)
	require.True(t, f.SkipNone())
	require.False(t, f.IntegerMode())
}

func TestStackPushPopScoped(t *testing.T) {
	s := NewStack()
	require.Equal(t, 1, s.Depth())

	s.Push(WithErrorMode(Lenient), WithDecimalPlaces(0))
	require.Equal(t, Lenient, s.Top().ErrorMode)
	require.True(t, s.Top().IntegerMode())
	require.Equal(t, 2, s.Depth())

	s.Pop()
	require.Equal(t, Strict, s.Top().ErrorMode)
	require.False(t, s.Top().IntegerMode())
	require.Equal(t, 1, s.Depth())
}

func TestPopNeverEmpties(t *testing.T) {
	s := NewStack()
	s.Pop()
	s.Pop()
	require.Equal(t, 1, s.Depth())
}

func TestSetRootPersists(t *testing.T) {
	s := NewStack()
	s.Push(WithErrorMode(Collect))
	s.SetRoot(WithBoundsChecking(BoundsLenient))
	s.Pop()
	require.Equal(t, BoundsLenient, s.Top().BoundsMode)
	require.Equal(t, Strict, s.Top().ErrorMode)
}
