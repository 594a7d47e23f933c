package interp

import (
	"fmt"

	"github.com/graphoid-lang/graphoid/config"
	"github.com/graphoid-lang/graphoid/value"
)

// settingFor maps one `configure { key: value }` entry to a
// config.Setting functional option (spec §4.6's field table).
func settingFor(key string, v value.Value) (config.Setting, error) {
	switch key {
	case "error_mode":
		return config.WithErrorMode(config.ErrorMode(symbolName(v))), nil
	case "bounds_checking":
		return config.WithBoundsChecking(config.BoundsMode(symbolName(v))), nil
	case "type_coercion":
		return config.WithTypeCoercion(config.CoercionMode(symbolName(v))), nil
	case "none_handling":
		return config.WithNoneHandling(config.NoneHandling(symbolName(v))), nil
	case "decimal_places":
		n, ok := v.(value.Number)
		if !ok {
			return nil, fmt.Errorf("decimal_places requires a number, got %s", v.Kind())
		}
		return config.WithDecimalPlaces(int(n)), nil
	case "unsigned_shift":
		return config.WithUnsignedShift(v.Truthy()), nil
	default:
		return nil, fmt.Errorf("unknown config setting %q", key)
	}
}

// symbolName extracts a bare identifier from a `:symbol` value or a
// plain string, covering both spellings a settings block might use.
func symbolName(v value.Value) string {
	switch s := v.(type) {
	case value.Symbol:
		return s.Name()
	case value.String:
		return string(s)
	default:
		return v.Display()
	}
}
