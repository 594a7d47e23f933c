package universe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinTypeHierarchy(t *testing.T) {
	u := New()
	require.True(t, u.IsSubtype(TypeList, TypeCollection))
	require.True(t, u.IsSubtype(TypeList, TypeAny))
	require.False(t, u.IsSubtype(TypeNum, TypeCollection))
}

func TestRegisterTypeExtendsHierarchy(t *testing.T) {
	u := New()
	require.NoError(t, u.RegisterType("employee_tree", TypeGraph))
	require.True(t, u.IsSubtype("employee_tree", TypeGraph))
	require.True(t, u.IsSubtype("employee_tree", TypeAny))

	err := u.RegisterType("employee_tree", TypeGraph)
	require.ErrorIs(t, err, ErrTypeExists)

	require.ErrorIs(t, u.RegisterType("y", "no_such_type"), ErrTypeNotFound)
}

func TestErrorHierarchyMatchesAncestor(t *testing.T) {
	u := New()
	require.NoError(t, u.RegisterErrorType("division_by_zero", ErrorArity))
	require.True(t, u.ErrorIsA("division_by_zero", ErrorArity))
	require.True(t, u.ErrorIsA("division_by_zero", ErrorAny))
	require.False(t, u.ErrorIsA("division_by_zero", ErrorIO))
}

func TestModuleRegistryTracksImports(t *testing.T) {
	u := New()
	require.NoError(t, u.RegisterModule("collections", nil))
	require.NoError(t, u.RegisterModule("app", []string{"collections"}))
	require.Equal(t, []string{"collections"}, u.ModuleImports("app"))

	err := u.RegisterModule("app", nil)
	require.ErrorIs(t, err, ErrModuleExists)

	err = u.RegisterModule("broken", []string{"does_not_exist"})
	require.ErrorIs(t, err, ErrModuleNotFound)
}

func TestSnapshotIsDeterministicAndDetached(t *testing.T) {
	u := New()
	require.NoError(t, u.RegisterModule("m1", nil))
	u.LogEffect(EffectIO, "read config")
	u.LogEffect(EffectState, "set x")

	snap := u.Snapshot()
	require.Equal(t, 2, snap.EffectCount)

	var foundList bool
	for _, tn := range snap.Types {
		if tn.Name == TypeList {
			foundList = true
			require.Equal(t, TypeCollection, tn.Parent)
		}
	}
	require.True(t, foundList)

	require.NoError(t, u.RegisterModule("m2", nil))
	require.Len(t, snap.Modules, 1, "snapshot must not see mutations made after it was taken")
}
