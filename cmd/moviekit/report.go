package main

import (
	"fmt"
	"io"
	"path/filepath"

	"moviekit/internal/organizer"
)

// writeReport prints one row per outcome and returns an error when any file failed.
func writeReport(out io.Writer, title string, report organizer.Report) error {
	if len(report.Outcomes) == 0 {
		fmt.Fprintln(out, "Nothing to do")
		return nil
	}
	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		target, detail := "", ""
		if o.Target != "" {
			target = filepath.Base(o.Target)
		}
		if o.Err != nil {
			detail = o.Err.Error()
		}
		rows = append(rows, []string{statusLabel(o.Status(), colorize), filepath.Base(o.Source), target, detail})
	}
	fmt.Fprintln(out, renderTable(title, []string{"Status", "File", "Target", "Detail"}, rows, nil))
	fmt.Fprintln(out, report.String())
	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(report.Outcomes))
	}
	return nil
}
