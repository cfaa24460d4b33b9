//go:build !unix

package preflight

import (
	"errors"
	"io"
	"os"
)

// checkAccess falls back to listing the directory where access(2) is missing.
func checkAccess(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
