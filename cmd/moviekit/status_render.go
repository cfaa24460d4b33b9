package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"moviekit/internal/config"
	"moviekit/internal/journal"
	"moviekit/internal/preflight"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

const checkLabelWidth = 28

func renderCheckLine(label string, passed bool, detail string, colorize bool) string {
	mark, color := "✔", ansiGreen
	if !passed {
		mark, color = "❌", ansiRed
	}
	line := fmt.Sprintf("  %s %-*s %s", mark, checkLabelWidth, label, detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func writeChecks(out io.Writer, checks []config.Check, colorize bool) {
	for _, check := range checks {
		detail := check.Value
		if !check.Passed {
			detail = check.Detail
			if check.Value != "" {
				detail = fmt.Sprintf("%s (%s)", check.Detail, check.Value)
			}
		}
		fmt.Fprintln(out, renderCheckLine(check.Key, check.Passed, detail, colorize))
	}
}

func writePreflight(out io.Writer, results []preflight.Result, colorize bool) {
	for _, r := range results {
		fmt.Fprintln(out, renderCheckLine(r.Name, r.Passed, r.Detail, colorize))
	}
}

func statusLabel(status journal.Status, colorize bool) string {
	label, color := "ok", ansiGreen
	switch status {
	case journal.StatusSkipped:
		label, color = "skipped", ansiYellow
	case journal.StatusFailed:
		label, color = "failed", ansiRed
	}
	if colorize {
		return color + label + ansiReset
	}
	return label
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(file)
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
