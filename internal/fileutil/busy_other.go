//go:build !unix && !windows

package fileutil

// IsBusy reports whether err means another process holds the file.
func IsBusy(error) bool { return false }
