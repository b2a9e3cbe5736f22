package configuration

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// hexStringToIntHookFunc returns a mapstructure decode hook that allows
// integer values to be given as hex strings (e.g. "0x1a"), which is
// the common notation for I2C addresses.
func hexStringToIntHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Int {
			return data, nil
		}

		s := strings.TrimSpace(data.(string))
		if !strings.HasPrefix(strings.ToLower(s), "0x") {
			return data, nil
		}

		value, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil {
			return nil, err
		}
		return int(value), nil
	}
}
