package services

import (
	"errors"
	"fmt"
	"strings"

	"moviekit/internal/journal"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, file, message string, err error) error {
	detail := buildDetail(operation, file, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps an operation error to the journal status recorded for it.
// Files skipped for a validation reason are not failures.
func FailureStatus(err error) journal.Status {
	switch {
	case err == nil:
		return journal.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return journal.StatusSkipped
	default:
		return journal.StatusFailed
	}
}

func buildDetail(operation, file, message string) string {
	parts := make([]string, 0, 3)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if file = strings.TrimSpace(file); file != "" {
		parts = append(parts, file)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failure"
	}
	return strings.Join(parts, ": ")
}
