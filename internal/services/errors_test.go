package services_test

import (
	"errors"
	"strings"
	"testing"

	"moviekit/internal/journal"
	"moviekit/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "remux", "Show.E01.mkv", "ffmpeg failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"remux", "Show.E01.mkv", "ffmpeg failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaults(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "operation failure") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFailureStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want journal.Status
	}{
		{"nil", nil, journal.StatusOK},
		{"validation", services.Wrap(services.ErrValidation, "rename", "a.mkv", "target exists", nil), journal.StatusSkipped},
		{"not found", services.Wrap(services.ErrNotFound, "extract", "a.mkv", "no subtitle stream", nil), journal.StatusSkipped},
		{"tool", services.Wrap(services.ErrExternalTool, "remux", "a.mkv", "", errors.New("exit 1")), journal.StatusFailed},
		{"plain", errors.New("io"), journal.StatusFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.FailureStatus(tc.err); got != tc.want {
				t.Fatalf("FailureStatus = %s, want %s", got, tc.want)
			}
		})
	}
}
