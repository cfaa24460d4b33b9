package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"moviekit/internal/logging"
)

// ErrCommandFailed is matched by every *ExitError.
var ErrCommandFailed = errors.New("external command failed")

// outputLogLimit caps how much captured output one log record carries.
const outputLogLimit = 16 << 10

// Result holds the captured streams of a finished command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Output returns stdout followed by stderr, which is where ffmpeg and ffprobe
// report diagnostics.
func (r Result) Output() string {
	return string(r.Stdout) + string(r.Stderr)
}

// ExitError reports a command that could not run or exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: %s (exit %d)", ErrCommandFailed, e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() []error {
	return []error{ErrCommandFailed, e.Err}
}

// Runner executes external programs to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, name string, args ...string) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs commands with os/exec and logs each invocation with its output.
type ExecRunner struct {
	logger  *slog.Logger
	timeout time.Duration
}

// NewExecRunner constructs a runner. A zero timeout waits indefinitely.
func NewExecRunner(logger *slog.Logger, timeout time.Duration) *ExecRunner {
	return &ExecRunner{
		logger:  logging.NewComponentLogger(logger, "command"),
		timeout: timeout,
	}
}

// Run blocks until name exits.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	line := Line(name, args...)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("running command", logging.String(logging.FieldCommand, line))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	started := time.Now()
	err := cmd.Run()
	result := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	attrs := []logging.Attr{
		logging.String(logging.FieldCommand, line),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	}
	if out := strings.TrimSpace(result.Output()); out != "" {
		attrs = append(attrs, logging.String("output", truncate(out, outputLogLimit)))
	}

	if err != nil {
		exitErr := &ExitError{Command: line, ExitCode: -1, Stderr: lastLines(stderr.String(), 5), Err: err}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitErr.ExitCode = ee.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			exitErr.Err = errors.Join(err, ctxErr)
		}
		attrs = append(attrs, logging.Int("exit_code", exitErr.ExitCode), logging.Error(err))
		logging.ErrorWithContext(logger, "command failed", "command_failed", attrs...)
		return result, exitErr
	}
	logger.Info("command finished", logging.Args(attrs...)...)
	return result, nil
}

// Line renders a command for logs, quoting arguments that contain spaces.
func Line(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, part := range append([]string{name}, args...) {
		if part == "" || strings.ContainsAny(part, " \t\"'") {
			part = fmt.Sprintf("%q", part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return "…" + s[len(s)-limit:]
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
