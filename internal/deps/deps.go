package deps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moviekit/internal/command"
)

// Requirement defines an external tool moviekit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArg is passed to the tool to confirm it runs ("-version" for ffmpeg).
	// Empty skips the run.
	VersionArg string
	// Expect must appear in the version output, case-insensitively.
	Expect string
}

// Status reports the availability of a tool.
type Status struct {
	Name        string
	Command     string
	Resolved    string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// FFmpegRequirements returns the ffmpeg and ffprobe requirements for the given paths.
func FFmpegRequirements(ffmpegPath, ffprobePath string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegPath,
			Description: "Required for remuxing, subtitle extraction",
			VersionArg:  "-version",
			Expect:      "ffmpeg",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobePath,
			Description: "Required for stream inspection",
			VersionArg:  "-version",
			Expect:      "ffprobe",
		},
	}
}

// CheckBinaries resolves each requirement and, when VersionArg is set, runs
// the tool once through runner to confirm it answers as expected.
func CheckBinaries(ctx context.Context, runner command.Runner, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, checkBinary(ctx, runner, req))
	}
	return results
}

func checkBinary(ctx context.Context, runner command.Runner, req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := Resolve(cmd)
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	status.Resolved = resolved
	if req.VersionArg == "" || runner == nil {
		status.Available = true
		return status
	}

	res, err := runner.Run(ctx, resolved, req.VersionArg)
	if err != nil {
		var exitErr *command.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode >= 0 {
			status.Detail = fmt.Sprintf("%s %s exited with code %d", cmd, req.VersionArg, exitErr.ExitCode)
		} else {
			status.Detail = fmt.Sprintf("%s %s failed: %v", cmd, req.VersionArg, err)
		}
		return status
	}
	output := res.Output()
	if expect := strings.TrimSpace(req.Expect); expect != "" &&
		!strings.Contains(strings.ToLower(output), strings.ToLower(expect)) {
		status.Detail = fmt.Sprintf("%s output does not mention %s", req.VersionArg, expect)
		return status
	}
	status.Version = firstLine(output)
	status.Available = true
	return status
}

func firstLine(output string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(line)
}
