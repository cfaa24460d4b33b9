package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moviekit/internal/language"
	"moviekit/internal/media/stream"
	"moviekit/internal/notation"
	"moviekit/internal/organizer"
)

func newStreamsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "streams",
		Short: "Analyse the first video and list its streams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				analysis, err := s.org.AnalyzeFirstVideo(s.ctx)
				if err != nil {
					return err
				}
				writeStreams(cmd, analysis)
				return nil
			})
		},
	}
}

func writeStreams(cmd *cobra.Command, analysis organizer.Analysis) {
	out := cmd.OutOrStdout()
	video, audio, subtitle := analysis.Grouped()
	var rows [][]string
	for _, group := range [][]stream.Stream{video, audio, subtitle} {
		for _, st := range group {
			rows = append(rows, []string{strconv.Itoa(st.Index), string(st.Type), st.Language(), st.Label(), st.CodecName})
		}
	}
	fmt.Fprintln(out, renderTable(analysis.Path,
		[]string{"Index", "Type", "Language", "Title", "Codec"}, rows,
		[]columnAlignment{alignRight}))
	if analysis.LogPath != "" {
		fmt.Fprintf(out, "Probe log: %s\n", analysis.LogPath)
	}
}

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var tracks string

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Keep only the selected streams in every video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := notation.Parse(tracks)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(s *session) error {
				if _, err := s.org.AnalyzeFirstVideo(s.ctx); err != nil {
					return err
				}
				report, err := s.org.SelectStreams(s.ctx, stream.Selections(indices))
				if err != nil {
					return err
				}
				return writeReport(cmd.OutOrStdout(), "Select streams", report)
			})
		},
	}
	cmd.Flags().StringVarP(&tracks, "tracks", "t", "", "Stream indices to keep, e.g. 0,2-4")
	_ = cmd.MarkFlagRequired("tracks")
	return cmd
}

func newLanguageCommand(ctx *commandContext) *cobra.Command {
	var tracks string
	var langs string

	cmd := &cobra.Command{
		Use:   "language",
		Short: "Keep the selected streams and set their languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := notation.Parse(tracks)
			if err != nil {
				return err
			}
			codes, err := language.ParseList(langs)
			if err != nil {
				return err
			}
			selections, err := organizer.PairLanguages(indices, codes)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(s *session) error {
				if _, err := s.org.AnalyzeFirstVideo(s.ctx); err != nil {
					return err
				}
				report, err := s.org.SetLanguages(s.ctx, selections)
				if err != nil {
					return err
				}
				return writeReport(cmd.OutOrStdout(), "Set languages", report)
			})
		},
	}
	cmd.Flags().StringVarP(&tracks, "tracks", "t", "", "Stream indices to keep, e.g. 0,2-4")
	cmd.Flags().StringVarP(&langs, "lang", "l", "", "Language per track, or one for all (eng,jpn)")
	_ = cmd.MarkFlagRequired("tracks")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}
