package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"moviekit/internal/logging"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestExecRunnerCapturesOutputAndLogs(t *testing.T) {
	script := writeScript(t, `echo "out $1"; echo "diag" 1>&2`)
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Console: &logs})
	if err != nil {
		t.Fatal(err)
	}

	result, err := NewExecRunner(logger, 0).Run(context.Background(), script, "a b")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(result.Stdout) != "out a b\n" || string(result.Stderr) != "diag\n" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Output() != "out a b\ndiag\n" {
		t.Fatalf("Output() = %q", result.Output())
	}
	if !strings.Contains(logs.String(), "a b") || !strings.Contains(logs.String(), "diag") {
		t.Fatalf("expected command line and output in log:\n%s", logs.String())
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	script := writeScript(t, `echo "boom" 1>&2; exit 3`)

	_, err := NewExecRunner(logging.NewNop(), 0).Run(context.Background(), script)
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T", err)
	}
	if exitErr.ExitCode != 3 || exitErr.Stderr != "boom" {
		t.Fatalf("unexpected exit error: %+v", exitErr)
	}
	var execErr *exec.ExitError
	if !errors.As(err, &execErr) {
		t.Fatal("expected wrapped *exec.ExitError")
	}
}

func TestExecRunnerTimeout(t *testing.T) {
	script := writeScript(t, `sleep 5`)

	_, err := NewExecRunner(logging.NewNop(), 50*time.Millisecond).Run(context.Background(), script)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestLine(t *testing.T) {
	got := Line("ffmpeg", "-i", "My Movie.mkv", "-map", "0:1", "")
	want := `ffmpeg -i "My Movie.mkv" -map 0:1 ""`
	if got != want {
		t.Fatalf("Line = %q, want %q", got, want)
	}
}

func TestRunnerFunc(t *testing.T) {
	var gotName string
	var runner Runner = RunnerFunc(func(_ context.Context, name string, args ...string) (Result, error) {
		gotName = name
		return Result{Stdout: []byte(strings.Join(args, ","))}, nil
	})
	result, err := runner.Run(context.Background(), "probe", "x", "y")
	if err != nil || gotName != "probe" || string(result.Stdout) != "x,y" {
		t.Fatalf("unexpected: %q %q %v", gotName, result.Stdout, err)
	}
}
