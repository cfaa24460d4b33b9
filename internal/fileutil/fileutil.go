package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrTargetExists is returned by RenameNoClobber when the destination is taken.
var ErrTargetExists = errors.New("target already exists")

// RenameNoClobber renames oldPath to newPath unless newPath already exists.
// Renaming a path onto itself is a no-op.
func RenameNoClobber(oldPath, newPath string) error {
	if oldPath == newPath {
		return nil
	}
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, newPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", newPath, err)
	}
	return os.Rename(oldPath, newPath)
}
