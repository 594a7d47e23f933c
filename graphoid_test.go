package graphoid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/value"
)

func TestEngineEvalReturnsTrailingExpressionValue(t *testing.T) {
	eng := New("script.gr", nil)
	result, err := eng.Eval(`[1, 2, 3].map(:double)`)
	require.NoError(t, err)
	list, ok := result.(interface{ Values() []value.Value })
	require.True(t, ok, "expected a list-shaped result, got %T", result)
	vals := list.Values()
	require.Len(t, vals, 3)
	require.Equal(t, value.Number(2), vals[0])
	require.Equal(t, value.Number(4), vals[1])
	require.Equal(t, value.Number(6), vals[2])
}

func TestEngineEvalWithNoTrailingExpression(t *testing.T) {
	eng := New("script.gr", nil)
	result, err := eng.Eval(`x = 1`)
	require.NoError(t, err)
	require.Equal(t, value.Nil, result)

	x, ok := eng.Globals().Get("x")
	require.True(t, ok)
	require.Equal(t, value.Number(1), x)
}

func TestEngineRunPersistsGlobalsAcrossEval(t *testing.T) {
	eng := New("script.gr", nil)
	require.NoError(t, eng.Run(`count = 10`))

	result, err := eng.Eval(`count + 5`)
	require.NoError(t, err)
	require.Equal(t, value.Number(15), result)
}

func TestEngineSurfacesParseErrors(t *testing.T) {
	eng := New("script.gr", nil)
	_, err := eng.Eval(`[1, 2,`)
	require.Error(t, err)
}

func TestParseSeparatesFromExecution(t *testing.T) {
	prog, err := Parse("script.gr", `1 + 1`)
	require.NoError(t, err)
	require.NotNil(t, prog)

	eng := New("script.gr", nil)
	result, err := eng.evalProgram(prog)
	require.NoError(t, err)
	require.Equal(t, value.Number(2), result)
}
