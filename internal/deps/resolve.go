package deps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Resolve turns a configured tool into an executable path. Bare names are
// looked up on PATH; anything with a separator must exist and be executable.
func Resolve(command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", errors.New("not set")
	}
	if !strings.ContainsRune(command, filepath.Separator) && !strings.ContainsRune(command, '/') {
		resolved, err := exec.LookPath(command)
		if err != nil {
			return "", fmt.Errorf("binary %q not found on PATH", command)
		}
		return resolved, nil
	}
	info, err := os.Stat(command)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s does not exist", command)
		}
		return "", fmt.Errorf("stat %s: %v", command, err)
	}
	if !isExecutable(info) {
		return "", fmt.Errorf("%s is not executable", command)
	}
	return command, nil
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
