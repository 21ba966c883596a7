package tools

import (
	"os"
)

func Mkdir(path string, perm os.FileMode) error {
	_, err := os.Stat(path)
	if err == nil || os.IsExist(err) {
		return nil
	}

	return os.MkdirAll(path, perm)
}

func FileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}
