package tools

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

func UnmarshalFileToml(filename string, v interface{}) error {
	if _, err := toml.DecodeFile(filename, v); err != nil {
		return fmt.Errorf("decode toml %s: %w", filename, err)
	}
	return nil
}
