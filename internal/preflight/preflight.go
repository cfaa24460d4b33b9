package preflight

import (
	"context"
	"fmt"

	"moviekit/internal/command"
	"moviekit/internal/config"
	"moviekit/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// RunAll executes the runtime checks for cfg: both tools answer `-version`,
// the movies folder is usable and the log directory is writable.
// Static configuration rules are covered by config.Checks.
func RunAll(ctx context.Context, cfg *config.Config, runner command.Runner) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	keys := []string{"tools.ffmpeg_path", "tools.ffprobe_path"}
	statuses := deps.CheckBinaries(ctx, runner, deps.FFmpegRequirements(cfg.Tools.FFmpegPath, cfg.Tools.FFprobePath))
	for i, status := range statuses {
		results = append(results, toolResult(keys[i], status))
	}

	results = append(results, CheckDirectoryAccess("library.movies_folder", cfg.Library.MoviesFolder))
	results = append(results, CheckDirectoryAccess("paths.log_dir", cfg.Paths.LogDir))
	return results
}

func toolResult(key string, status deps.Status) Result {
	if !status.Available {
		return Result{Name: key, Detail: status.Detail}
	}
	detail := status.Resolved
	if status.Version != "" {
		detail = fmt.Sprintf("%s (%s)", status.Resolved, status.Version)
	}
	return Result{Name: key, Passed: true, Detail: detail}
}
