package rawvol

import (
	"fmt"
	"path/filepath"
)

const Mega = 1 << 20

// ConvertToAbsolute returns an absolute path for the given path, treating relative
// paths as relative to baseDir.
func ConvertToAbsolute(path, baseDir string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("cannot convert empty path to absolute path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Abs(filepath.Join(baseDir, path))
}
