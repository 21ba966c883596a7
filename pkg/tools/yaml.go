package tools

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

func UnmarshalFileYaml(filename string, v interface{}) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if err = yaml.Unmarshal(content, v); err != nil {
		return fmt.Errorf("decode yaml %s: %w", filename, err)
	}
	return nil
}
