package fileutil

import (
	"os"
	"strings"
)

func IsFileInvisible(filename string) bool {
	return strings.HasPrefix(filename, ".")
}

// IsFileExists checks if file specified exists
func IsFileExists(name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDirExists checks if the path exists and is a directory.
func IsDirExists(name string) (bool, error) {
	fi, err := os.Stat(name)
	if err == nil {
		return fi.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// CreateFileIfNotExists creates file specified if not exists
func CreateFileIfNotExists(name string) error {
	_, err := os.Stat(name)
	if os.IsNotExist(err) {
		// create
		return CreateRecursively(name)
	} else if os.IsExist(err) {
		// already exists
		return nil
	}
	return err
}

// CreateRecursively creates file recursively.
func CreateRecursively(name string) error {
	if !strings.Contains(name, "/") {
		// just a single filename
		_, err := os.Create(name)
		return err
	}

	i := strings.LastIndex(name, "/")
	path := name[:i]

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.MkdirAll(path, 0755); err != nil {
			return err
		}
	}

	_, err := os.Create(name)
	return err
}
