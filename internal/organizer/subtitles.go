package organizer

import (
	"context"
	"path/filepath"
	"strings"

	"moviekit/internal/journal"
	"moviekit/internal/language"
	"moviekit/internal/library"
	"moviekit/internal/logging"
	"moviekit/internal/services"
	"moviekit/internal/subtitles"
)

const purifiedSuffix = ".out"

// ExtractSubtitles writes the first subtitle stream of every video to
// <name>.srt. With strip set, each video is also remuxed without subtitle
// streams into <name>.no_subs<ext> and the original is removed.
func (o *Organizer) ExtractSubtitles(ctx context.Context, strip bool) (Report, error) {
	listing, err := o.Scan(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(listing.Videos) == 0 {
		return Report{}, ErrNoVideos
	}
	if strip {
		defer o.forgetAnalysis()
	}
	var report Report
	for _, video := range listing.Videos {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		srt := withExt(video, library.ExtSRT)
		err := o.ffmpeg(ctx, video, srt, []string{"-y", "-i", video, "-map", "0:s:0", srt})
		o.record(ctx, &report, Outcome{Kind: journal.KindExtract, Source: video, Target: srt, Err: err})
		if err != nil || !strip {
			continue
		}
		stripped := withExt(video, ".no_subs"+filepath.Ext(video))
		err = o.ffmpeg(ctx, video, stripped, []string{"-y", "-i", video, "-map", "0", "-c", "copy", "-sn", stripped})
		if err == nil {
			if rmErr := o.files.Remove(ctx, video); rmErr != nil {
				err = services.Wrap(services.ErrTransient, "remove", filepath.Base(video), "subtitle-free copy written but source kept", rmErr)
			}
			o.prober.Forget(video)
		}
		o.record(ctx, &report, Outcome{Kind: journal.KindRemux, Source: video, Target: stripped, Err: err})
	}
	return report, nil
}

// ConvertSubtitles turns every .srt into a UTF-8 .ass with a single Default
// style and removes the .srt.
func (o *Organizer) ConvertSubtitles(ctx context.Context) (Report, error) {
	listing, err := o.Scan(ctx)
	if err != nil {
		return Report{}, err
	}
	files := listing.SubtitlesWithExt(library.ExtSRT)
	if len(files) == 0 {
		return Report{}, services.Wrap(services.ErrNotFound, "convert", o.Folder(), "", ErrNoSubtitles)
	}
	var report Report
	for _, srt := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		target := withExt(srt, library.ExtASS)
		o.record(ctx, &report, Outcome{Kind: journal.KindConvert, Source: srt, Target: target, Err: o.convertOne(ctx, srt, target)})
	}
	return report, nil
}

func (o *Organizer) convertOne(ctx context.Context, source, target string) error {
	text, charset, err := subtitles.ReadText(source)
	if err != nil {
		return services.Wrap(services.ErrValidation, "convert", filepath.Base(source), "cannot decode subtitle", err)
	}
	cues, err := subtitles.ParseSRT(text)
	if err != nil {
		return services.Wrap(services.ErrValidation, "convert", filepath.Base(source), "", err)
	}
	logging.WithContext(ctx, o.logger).Debug("srt decoded",
		logging.String(logging.FieldFile, filepath.Base(source)),
		logging.String("charset", charset),
		logging.Int("cues", len(cues)),
	)
	if err := subtitles.FromSRT(cues, o.styleOptions()).WriteFile(target, false); err != nil {
		return services.Wrap(services.ErrTransient, "convert", filepath.Base(target), "", err)
	}
	if err := o.files.Remove(ctx, source); err != nil {
		return services.Wrap(services.ErrTransient, "remove", filepath.Base(source), "converted but source kept", err)
	}
	return nil
}

// StyleReport lists the style usage of one .ass file.
type StyleReport struct {
	File   string
	Counts []subtitles.StyleCount
}

// SubtitleInfo counts dialogue events per style in the first .ass file.
func (o *Organizer) SubtitleInfo(ctx context.Context) (StyleReport, error) {
	listing, err := o.Scan(ctx)
	if err != nil {
		return StyleReport{}, err
	}
	files := listing.SubtitlesWithExt(library.ExtASS)
	if len(files) == 0 {
		return StyleReport{}, services.Wrap(services.ErrNotFound, "subtitle info", o.Folder(), "", ErrNoSubtitles)
	}
	doc, err := readASS(files[0])
	if err != nil {
		return StyleReport{}, err
	}
	report := StyleReport{File: files[0], Counts: subtitles.StyleCounts(doc)}
	logger := logging.WithContext(ctx, o.logger)
	for _, c := range report.Counts {
		logger.Info("style usage",
			logging.String(logging.FieldFile, filepath.Base(files[0])),
			logging.String("style", c.Style),
			logging.Int("events", c.Count),
		)
	}
	return report, nil
}

// PurifySubtitles rewrites every .ass into <name>.out.ass with the Main and
// Signs styles only and no override tags, then removes the source. Files
// already ending in .out.ass are left alone.
func (o *Organizer) PurifySubtitles(ctx context.Context) (Report, error) {
	files, err := o.assFiles(ctx, "purify")
	if err != nil {
		return Report{}, err
	}
	var report Report
	for _, source := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if strings.HasSuffix(stem(source), purifiedSuffix) {
			continue
		}
		target := withExt(source, purifiedSuffix+library.ExtASS)
		o.record(ctx, &report, Outcome{Kind: journal.KindPurify, Source: source, Target: target, Err: o.purifyOne(ctx, source, target)})
	}
	return report, nil
}

func (o *Organizer) purifyOne(ctx context.Context, source, target string) error {
	doc, err := readASS(source)
	if err != nil {
		return err
	}
	if err := subtitles.Purify(doc, o.styleOptions()).WriteFile(target, true); err != nil {
		return services.Wrap(services.ErrTransient, "purify", filepath.Base(target), "", err)
	}
	if err := o.files.Remove(ctx, source); err != nil {
		return services.Wrap(services.ErrTransient, "remove", filepath.Base(source), "purified but source kept", err)
	}
	return nil
}

// TranslateSubtitles translates the dialogue of every .ass into the
// configured target language and writes <name>.<lang>.ass next to it.
func (o *Organizer) TranslateSubtitles(ctx context.Context) (Report, error) {
	if o.translator == nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "translate", "", "set translation.enabled and an API key", ErrTranslationDisabled)
	}
	target := o.cfg.Translation.TargetLanguage
	code, err := language.Normalize(target)
	if err != nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "translate", "", "translation.target_language", err)
	}
	tag := language.ToISO2(code)
	if tag == "" {
		tag = code
	}
	files, err := o.assFiles(ctx, "translate")
	if err != nil {
		return Report{}, err
	}
	var report Report
	for _, source := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if strings.HasSuffix(stem(source), "."+tag) {
			continue
		}
		out := withExt(source, "."+tag+library.ExtASS)
		err := o.translateOne(ctx, source, out, language.DisplayName(code))
		o.record(ctx, &report, Outcome{Kind: journal.KindTranslate, Source: source, Target: out, Err: err})
	}
	return report, nil
}

func (o *Organizer) translateOne(ctx context.Context, source, target, languageName string) error {
	doc, err := readASS(source)
	if err != nil {
		return err
	}
	lines := doc.DialogueTexts()
	if len(lines) == 0 {
		return services.Wrap(services.ErrValidation, "translate", filepath.Base(source), "no dialogue events", nil)
	}
	translated, err := o.translator.Translate(ctx, lines, languageName, o.cfg.Translation.BatchSize)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "translate", filepath.Base(source), "", err)
	}
	if err := doc.ReplaceDialogueTexts(translated); err != nil {
		return services.Wrap(services.ErrExternalTool, "translate", filepath.Base(source), "", err)
	}
	if err := doc.WriteFile(target, true); err != nil {
		return services.Wrap(services.ErrTransient, "translate", filepath.Base(target), "", err)
	}
	return nil
}

func (o *Organizer) assFiles(ctx context.Context, operation string) ([]string, error) {
	listing, err := o.Scan(ctx)
	if err != nil {
		return nil, err
	}
	files := listing.SubtitlesWithExt(library.ExtASS)
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrNotFound, operation, o.Folder(), "", ErrNoSubtitles)
	}
	return files, nil
}

func readASS(path string) (*subtitles.Document, error) {
	text, _, err := subtitles.ReadText(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "read subtitle", filepath.Base(path), "", err)
	}
	doc, err := subtitles.ParseASS(text)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "parse subtitle", filepath.Base(path), "", err)
	}
	return doc, nil
}

// stem is the file name without directory and last extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// withExt replaces the last extension of path with ext.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
