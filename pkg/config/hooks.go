package config

import (
	"reflect"
	"strings"

	"github.com/arthur-debert/attachlink/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
)

// expandHomeHookFunc expands a leading ~ in string settings that look like paths
func expandHomeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.String {
			return data, nil
		}
		s, ok := data.(string)
		if !ok || !strings.HasPrefix(s, "~") {
			return data, nil
		}
		return paths.ExpandHome(s), nil
	}
}
