//go:build windows

package fileutil

import (
	"errors"

	"golang.org/x/sys/windows"
)

// IsBusy reports whether err means another process holds the file.
func IsBusy(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) || errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}
