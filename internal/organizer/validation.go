package organizer

import (
	"os"
	"path/filepath"

	"moviekit/internal/services"
)

// validateOutput verifies that an external tool actually produced path.
// ffmpeg can exit 0 without writing anything when every stream is filtered out.
func validateOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "validate output", filepath.Base(path), "output file missing", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrExternalTool, "validate output", filepath.Base(path), "output is a directory", nil)
	}
	if info.Size() == 0 {
		return services.Wrap(services.ErrExternalTool, "validate output", filepath.Base(path), "output file is empty", nil)
	}
	return nil
}
