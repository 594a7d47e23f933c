package native

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/interp"
	"github.com/graphoid-lang/graphoid/value"
)

// fakeSourceResolver stands in for a host's source-module resolver, used
// only to verify Registry.Resolve delegates to Fallback for names it
// does not itself register.
type fakeSourceResolver struct{ resolved string }

func (f *fakeSourceResolver) Resolve(path, fromFile string) (interp.Module, error) {
	f.resolved = path
	return interp.Module{Identity: "source:" + path}, nil
}

// fakeTimeModule is an in-test stand-in for a provider like the
// conventional "time" module (spec §6.2) — exercising the registry's
// registration/resolution mechanics without shipping a real provider.
func fakeTimeModule() *FuncModule {
	return NewFuncModule("clock").
		WithConstant("epoch", value.Number(0)).
		WithFunction(Function{
			Name:     "now",
			Required: 0,
			Call: func(ctx Context, args []value.Value) (value.Value, error) {
				return value.Number(1000), nil
			},
		}).
		WithFunction(Function{
			Name:     "add_seconds",
			Required: 2,
			Call: func(ctx Context, args []value.Value) (value.Value, error) {
				a, _ := args[0].(value.Number)
				b, _ := args[1].(value.Number)
				return a + b, nil
			},
		})
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	require.Empty(t, r.Names())

	r.Register(fakeTimeModule())
	require.Equal(t, []string{"clock"}, r.Names())

	m, ok := r.Lookup("clock")
	require.True(t, ok)
	require.Equal(t, "clock", m.Name())
}

func TestRegistryResolveBindsFunctionsAndConstants(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeTimeModule())

	mod, err := r.Resolve("clock", "main.gr")
	require.NoError(t, err)
	require.Equal(t, "native:clock", mod.Identity)
	require.Nil(t, mod.Program)

	epoch, ok := mod.Native["epoch"]
	require.True(t, ok)
	require.Equal(t, value.Number(0), epoch)

	now, ok := mod.Native["now"].(*functionValue)
	require.True(t, ok)
	result, err := now.Invoke(nil)
	require.NoError(t, err)
	require.Equal(t, value.Number(1000), result)
}

func TestFunctionValueInvokeArityMismatch(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeTimeModule())
	mod, err := r.Resolve("clock", "main.gr")
	require.NoError(t, err)

	addSeconds := mod.Native["add_seconds"].(*functionValue)
	_, err = addSeconds.Invoke([]value.Value{value.Number(1)})
	require.Error(t, err)

	result, err := addSeconds.Invoke([]value.Value{value.Number(1), value.Number(2)})
	require.NoError(t, err)
	require.Equal(t, value.Number(3), result)
}

func TestRegistryResolveUnknownErrorsWithoutFallback(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("nope", "main.gr")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nope")
}

func TestRegistryResolveDelegatesToFallback(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeTimeModule())
	fallback := &fakeSourceResolver{}
	r.Fallback = fallback

	mod, err := r.Resolve("some/source/module", "main.gr")
	require.NoError(t, err)
	require.Equal(t, "source:some/source/module", mod.Identity)
	require.Equal(t, "some/source/module", fallback.resolved)

	// A name the registry itself owns still wins over Fallback.
	mod, err = r.Resolve("clock", "main.gr")
	require.NoError(t, err)
	require.Equal(t, "native:clock", mod.Identity)
}
