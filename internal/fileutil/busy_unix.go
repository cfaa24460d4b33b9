//go:build unix

package fileutil

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IsBusy reports whether err means another process holds the file.
func IsBusy(err error) bool {
	return errors.Is(err, unix.EBUSY) || errors.Is(err, unix.ETXTBSY)
}
