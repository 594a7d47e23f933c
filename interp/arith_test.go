package interp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/collection"
	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/token"
	"github.com/graphoid-lang/graphoid/value"
)

func TestEvalBinaryArithmetic(t *testing.T) {
	in := New("arith.gr", nil)
	pos := errorx.Position{}

	v, err := in.evalBinary(token.Plus, value.Number(2), value.Number(3), pos)
	require.NoError(t, err)
	require.Equal(t, value.Number(5), v)

	v, err = in.evalBinary(token.SlashSlash, value.Number(7), value.Number(2), pos)
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)

	v, err = in.evalBinary(token.Percent, value.Number(7), value.Number(3), pos)
	require.NoError(t, err)
	require.Equal(t, value.Number(1), v)
}

func TestEvalBinaryElementWiseBroadcastsScalar(t *testing.T) {
	in := New("arith.gr", nil)
	list := collection.NewList(value.Number(1), value.Number(2), value.Number(3))

	v, err := in.evalBinary(token.DotPlus, list, value.Number(10), errorx.Position{})
	require.NoError(t, err)
	sum, ok := v.(*collection.List)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Number(11), value.Number(12), value.Number(13)}, sum.Values())

	v, err = in.evalBinary(token.DotStar, value.Number(2), list, errorx.Position{})
	require.NoError(t, err)
	prod, ok := v.(*collection.List)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Number(2), value.Number(4), value.Number(6)}, prod.Values())
}

func TestEvalBinaryPlusConcatenatesStrings(t *testing.T) {
	in := New("arith.gr", nil)
	v, err := in.evalBinary(token.Plus, value.String("foo"), value.String("bar"), errorx.Position{})
	require.NoError(t, err)
	require.Equal(t, value.String("foobar"), v)
}

func TestEvalBinaryDivisionByZeroIsSoftFailureUnderLenient(t *testing.T) {
	in := New("arith.gr", nil)
	in.Config.Push(config.WithErrorMode(config.Lenient))
	defer in.Config.Pop()

	v, err := in.evalBinary(token.Slash, value.Number(10), value.Number(0), errorx.Position{})
	require.NoError(t, err)
	require.Equal(t, value.Nil, v)
}

func TestEvalBinaryDivisionByZeroRaisesUnderStrict(t *testing.T) {
	in := New("arith.gr", nil)
	_, err := in.evalBinary(token.Slash, value.Number(10), value.Number(0), errorx.Position{})
	require.Error(t, err)
}

func TestCoerceNumberRespectsCoercionMode(t *testing.T) {
	in := New("arith.gr", nil)

	in.Config.Push(config.WithTypeCoercion(config.CoercionAuto))
	f, ok := in.coerceNumber(value.String("3.5"))
	require.True(t, ok)
	require.Equal(t, 3.5, f)
	in.Config.Pop()

	in.Config.Push(config.WithTypeCoercion(config.CoercionStrict))
	_, ok = in.coerceNumber(value.String("3.5"))
	require.False(t, ok)
	in.Config.Pop()
}

func TestApplyPrecisionTruncatesUnderIntegerMode(t *testing.T) {
	in := New("arith.gr", nil)
	in.Config.Push(config.WithDecimalPlaces(0))
	defer in.Config.Pop()

	v, err := in.evalBinary(token.Slash, value.Number(7), value.Number(2), errorx.Position{})
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)
}

func TestValuesEqualAcrossKinds(t *testing.T) {
	require.True(t, valuesEqual(value.Number(1), value.Number(1)))
	require.False(t, valuesEqual(value.Number(1), value.String("1")))
	require.True(t, valuesEqual(value.Nil, value.Nil))
}
