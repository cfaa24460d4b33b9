package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename videos, subtitles and images after the name template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				plan, report, err := s.org.RenameFiles(s.ctx, dryRun)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !dryRun {
					return writeReport(out, "Rename", report)
				}
				if len(plan) == 0 {
					fmt.Fprintln(out, "Nothing to rename")
					return nil
				}
				rows := make([][]string, 0, len(plan))
				for _, r := range plan {
					rows = append(rows, []string{r.Class.String(), filepath.Base(r.Source), filepath.Base(r.Target)})
				}
				fmt.Fprintln(out, renderTable("Rename plan (dry run)", []string{"Class", "From", "To"}, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the plan without renaming")
	return cmd
}

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Generate numbered poster previews from the folder's images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				report, err := s.org.GeneratePreviews(s.ctx)
				if err != nil {
					return err
				}
				return writeReport(cmd.OutOrStdout(), "Previews", report)
			})
		},
	}
}
