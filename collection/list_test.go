package collection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/rules"
	"github.com/graphoid-lang/graphoid/value"
)

func TestListBasics(t *testing.T) {
	l := NewList(value.Number(10), value.Number(20), value.Number(30))
	require.Equal(t, 3, l.Length())
	first, err := l.First()
	require.NoError(t, err)
	require.Equal(t, value.Number(10), first)
	last, err := l.Last()
	require.NoError(t, err)
	require.Equal(t, value.Number(30), last)
	require.Equal(t, 3, l.Backing().NodeCount())
	require.Equal(t, 2, l.Backing().EdgeCount())
}

func TestListReverseIdempotence(t *testing.T) {
	l := NewList(value.Number(10), value.Number(20), value.Number(30))
	rev := l.Reverse()
	require.Equal(t, []value.Value{value.Number(30), value.Number(20), value.Number(10)}, rev.Values())
	require.True(t, rev.Reverse().Equal(l))
}

func TestListSortIdempotence(t *testing.T) {
	l := NewList(value.Number(3), value.Number(1), value.Number(2))
	cmp := func(a, b value.Value) (int, error) {
		an, bn := a.(value.Number), b.(value.Number)
		switch {
		case an < bn:
			return -1, nil
		case an > bn:
			return 1, nil
		default:
			return 0, nil
		}
	}
	sorted, err := l.Sort(cmp)
	require.NoError(t, err)
	require.Equal(t, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, sorted.Values())
	sortedTwice, err := sorted.Sort(cmp)
	require.NoError(t, err)
	require.True(t, sorted.Equal(sortedTwice))
}

func TestListAppendRunsUppercaseRule(t *testing.T) {
	l := NewList(value.String("hello"))
	require.NoError(t, l.AddRule(rules.Uppercase(), rules.SeverityError, rules.RetroClean))
	require.Equal(t, value.String("HELLO"), l.Values()[0])
	require.NoError(t, l.Append(value.String("world")))
	require.Equal(t, value.String("HELLO"), l.Values()[0])
	require.Equal(t, value.String("WORLD"), l.Values()[1])
}

func TestListElementWise(t *testing.T) {
	a := NewList(value.Number(1), value.Number(2), value.Number(3))
	b := NewList(value.Number(10), value.Number(20), value.Number(30))
	sum, err := a.ElementWise(".+", b)
	require.NoError(t, err)
	require.Equal(t, []value.Value{value.Number(11), value.Number(22), value.Number(33)}, sum.Values())
}

func TestListElementWiseTruncatesToShorterInput(t *testing.T) {
	a := NewList(value.Number(1), value.Number(2), value.Number(3))
	b := NewList(value.Number(10), value.Number(20))
	sum, err := a.ElementWise(".+", b)
	require.NoError(t, err)
	require.Equal(t, []value.Value{value.Number(11), value.Number(22)}, sum.Values())

	sum, err = b.ElementWise(".+", a)
	require.NoError(t, err)
	require.Equal(t, []value.Value{value.Number(11), value.Number(22)}, sum.Values())
}

func TestListRemoveAndPop(t *testing.T) {
	l := NewList(value.Number(1), value.Number(2), value.Number(3))
	v, err := l.Remove(1)
	require.NoError(t, err)
	require.Equal(t, value.Number(2), v)
	require.Equal(t, []value.Value{value.Number(1), value.Number(3)}, l.Values())

	popped, err := l.Pop()
	require.NoError(t, err)
	require.Equal(t, value.Number(3), popped)
	require.Equal(t, 1, l.Length())
}

func TestListFreezeRejectsMutation(t *testing.T) {
	l := NewList(value.Number(1))
	l.Freeze()
	require.True(t, l.IsFrozen())
	require.Error(t, l.Append(value.Number(2)))
}

func TestListUniqueFlattenZip(t *testing.T) {
	l := NewList(value.Number(1), value.Number(1), value.Number(2))
	require.Equal(t, []value.Value{value.Number(1), value.Number(2)}, l.Unique().Values())

	nested := NewList(NewList(value.Number(1), value.Number(2)), value.Number(3))
	require.Equal(t, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, nested.Flatten().Values())

	a := NewList(value.Number(1), value.Number(2))
	b := NewList(value.String("x"), value.String("y"))
	zipped := a.Zip(b)
	require.Equal(t, 2, zipped.Length())
}
