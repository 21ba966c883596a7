package tools

import (
	"path/filepath"
	"reflect"
	"strings"
)

// LoadConfig decodes filename into v, as toml when the extension is .toml and
// as yaml otherwise, then fills unset fields from their `default` tags.
func LoadConfig(filename string, v interface{}) error {
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = UnmarshalFileToml(filename, v)
	default:
		err = UnmarshalFileYaml(filename, v)
	}
	if err != nil {
		return err
	}

	return SetDefaults(v)
}

func SetDefaults(v interface{}) error {
	return DoTagFunc(v, []func(reflect.StructField, reflect.Value) error{SetDefaultValueIfNil})
}
