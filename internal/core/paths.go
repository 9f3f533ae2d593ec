package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExpandHome replaces a leading ~ with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
