package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moviekit/internal/organizer"
)

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	subtitlesCmd := &cobra.Command{
		Use:   "subtitles",
		Short: "Subtitle extraction, conversion, cleanup and translation",
	}
	subtitlesCmd.AddCommand(newSubtitlesInfoCommand(ctx))
	subtitlesCmd.AddCommand(newSubtitlesExtractCommand(ctx))
	subtitlesCmd.AddCommand(newSubtitleBatchCommand(ctx, "convert", "Convert every .srt into .ass", "Convert subtitles",
		(*organizer.Organizer).ConvertSubtitles))
	subtitlesCmd.AddCommand(newSubtitleBatchCommand(ctx, "purify", "Reduce every .ass to the Main and Signs styles", "Purify subtitles",
		(*organizer.Organizer).PurifySubtitles))
	subtitlesCmd.AddCommand(newSubtitleBatchCommand(ctx, "translate", "Translate every .ass into the configured language", "Translate subtitles",
		(*organizer.Organizer).TranslateSubtitles))
	return subtitlesCmd
}

func newSubtitlesInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Count dialogue lines per style in the first .ass file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				info, err := s.org.SubtitleInfo(s.ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(info.Counts))
				for _, c := range info.Counts {
					rows = append(rows, []string{c.Style, strconv.Itoa(c.Count)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(info.File, []string{"Style", "Lines"}, rows,
					[]columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newSubtitlesExtractCommand(ctx *commandContext) *cobra.Command {
	var strip bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the first subtitle track of every video to .srt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				report, err := s.org.ExtractSubtitles(s.ctx, strip)
				if err != nil {
					return err
				}
				return writeReport(cmd.OutOrStdout(), "Extract subtitles", report)
			})
		},
	}
	cmd.Flags().BoolVar(&strip, "strip", false, "Also remux each video without subtitle tracks")
	return cmd
}

type batchOperation func(*organizer.Organizer, context.Context) (organizer.Report, error)

func newSubtitleBatchCommand(ctx *commandContext, use, short, title string, op batchOperation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				report, err := op(s.org, s.ctx)
				if err != nil {
					return err
				}
				return writeReport(cmd.OutOrStdout(), title, report)
			})
		},
	}
}
