package interp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/value"
)

func TestSettingForErrorMode(t *testing.T) {
	setting, err := settingFor("error_mode", value.Symbol("lenient"))
	require.NoError(t, err)
	f := config.Frame{}
	setting(&f)
	require.Equal(t, config.Lenient, f.ErrorMode)
}

func TestSettingForDecimalPlaces(t *testing.T) {
	setting, err := settingFor("decimal_places", value.Number(2))
	require.NoError(t, err)
	f := config.Frame{}
	setting(&f)
	require.NotNil(t, f.DecimalPlaces)
	require.Equal(t, 2, *f.DecimalPlaces)
}

func TestSettingForDecimalPlacesRejectsNonNumber(t *testing.T) {
	_, err := settingFor("decimal_places", value.String("two"))
	require.Error(t, err)
}

func TestSettingForUnknownKey(t *testing.T) {
	_, err := settingFor("not_a_real_setting", value.Bool(true))
	require.Error(t, err)
}

func TestSymbolNameAcceptsSymbolOrString(t *testing.T) {
	require.Equal(t, "clean", symbolName(value.Symbol("clean")))
	require.Equal(t, "clean", symbolName(value.String("clean")))
}
