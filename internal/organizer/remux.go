package organizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"moviekit/internal/journal"
	"moviekit/internal/language"
	"moviekit/internal/logging"
	"moviekit/internal/media/stream"
	"moviekit/internal/services"
)

// PairLanguages attaches languages to selected indices. A single language
// applies to every index; otherwise the counts must match.
func PairLanguages(indices []int, languages []string) ([]stream.Selection, error) {
	switch {
	case len(languages) == 0:
		return nil, services.Wrap(services.ErrValidation, "language", "", "no language given", nil)
	case len(languages) != 1 && len(languages) != len(indices):
		return nil, services.Wrap(services.ErrValidation, "language", "",
			fmt.Sprintf("%d tracks selected but %d languages given", len(indices), len(languages)), nil)
	}
	out := make([]stream.Selection, len(indices))
	for i, idx := range indices {
		lang := languages[0]
		if len(languages) > 1 {
			lang = languages[i]
		}
		out[i] = stream.Selection{Index: idx, Language: lang}
	}
	return out, nil
}

// SelectStreams keeps only the selected streams in every video of the folder.
func (o *Organizer) SelectStreams(ctx context.Context, selections []stream.Selection) (Report, error) {
	plain := make([]stream.Selection, len(selections))
	for i, sel := range selections {
		plain[i] = stream.Selection{Index: sel.Index}
	}
	return o.remuxAll(ctx, journal.KindRemux, plain)
}

// SetLanguages keeps the selected streams and tags each with its language,
// normalised to ISO 639-2.
func (o *Organizer) SetLanguages(ctx context.Context, selections []stream.Selection) (Report, error) {
	tagged := make([]stream.Selection, len(selections))
	for i, sel := range selections {
		code, err := language.Normalize(sel.Language)
		if err != nil {
			return Report{}, services.Wrap(services.ErrValidation, "language", "",
				fmt.Sprintf("track %d", sel.Index), err)
		}
		tagged[i] = stream.Selection{Index: sel.Index, Language: code}
	}
	return o.remuxAll(ctx, journal.KindLanguage, tagged)
}

func (o *Organizer) remuxAll(ctx context.Context, kind journal.Kind, selections []stream.Selection) (Report, error) {
	if o.analysis == nil {
		return Report{}, ErrNotAnalyzed
	}
	if len(selections) == 0 {
		return Report{}, services.Wrap(services.ErrValidation, string(kind), "", "no streams selected", nil)
	}
	args, err := stream.BuildRemuxArgs(o.analysis.Streams, selections)
	if err != nil {
		return Report{}, services.Wrap(services.ErrValidation, string(kind), filepath.Base(o.analysis.Path), "", err)
	}
	listing, err := o.Scan(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(listing.Videos) == 0 {
		return Report{}, ErrNoVideos
	}

	logging.WithContext(ctx, o.logger).Info("remux batch starting",
		logging.String("operation", string(kind)),
		logging.Int("videos", len(listing.Videos)),
		logging.Strings("args", args),
		logging.String("prefix", o.prefix),
	)
	// The batch rewrites the analysed file; later selections must analyse it again.
	defer o.forgetAnalysis()
	var report Report
	for _, source := range listing.Videos {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		target := o.remuxTarget(source)
		err := o.remuxOne(ctx, source, target, args)
		o.record(ctx, &report, Outcome{Kind: kind, Source: source, Target: source, Err: err})
	}
	return report, nil
}

// remuxTarget is <folder>/<prefix>-<name>.
func (o *Organizer) remuxTarget(source string) string {
	return filepath.Join(filepath.Dir(source), o.prefix+"-"+filepath.Base(source))
}

// remuxOne copies the selected streams of source into target and then moves
// target over source.
func (o *Organizer) remuxOne(ctx context.Context, source, target string, args []string) error {
	cmd := append([]string{"-y", "-i", source, "-c", "copy"}, args...)
	cmd = append(cmd, target)
	if err := o.ffmpeg(ctx, source, target, cmd); err != nil {
		return err
	}
	if err := o.files.Replace(ctx, target, source); err != nil {
		return services.Wrap(services.ErrTransient, "replace", filepath.Base(source), "cannot move remuxed file over source", err)
	}
	o.prober.Forget(source)
	return nil
}

// ffmpeg runs one ffmpeg invocation producing target and checks the output.
// A failed run leaves no partial target behind.
func (o *Organizer) ffmpeg(ctx context.Context, source, target string, args []string) error {
	if _, err := o.runner.Run(ctx, o.cfg.Tools.FFmpegPath, args...); err != nil {
		o.discard(ctx, target)
		marker := services.ErrExternalTool
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return services.Wrap(marker, "ffmpeg", filepath.Base(source), "", err)
	}
	if err := validateOutput(target); err != nil {
		o.discard(ctx, target)
		return err
	}
	return nil
}

func (o *Organizer) discard(ctx context.Context, path string) {
	if err := o.files.Remove(ctx, path); err != nil && !os.IsNotExist(err) {
		logging.WarnWithContext(logging.WithContext(ctx, o.logger), "partial output not removed", "cleanup_failed",
			logging.String(logging.FieldFile, path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "a temporary file remains in the movies folder"),
		)
	}
}
