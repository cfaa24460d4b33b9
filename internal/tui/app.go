package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"moviekit/internal/journal"
	"moviekit/internal/language"
	"moviekit/internal/media/stream"
	"moviekit/internal/notation"
	"moviekit/internal/organizer"
)

const historyLimit = 20

// HistorySource lists recent journal entries. *journal.Store satisfies it.
type HistorySource interface {
	Recent(ctx context.Context, limit int) ([]journal.Entry, error)
}

// App is the interactive menu loop.
type App struct {
	org     *organizer.Organizer
	reload  func(context.Context) (*organizer.Organizer, error)
	history HistorySource
	in      io.Reader
	out     io.Writer
	run     func(context.Context, tea.Model) (tea.Model, error)
}

// Option customizes an App.
type Option func(*App)

// WithReload lets "Update config" rebuild the organizer from disk.
func WithReload(fn func(context.Context) (*organizer.Organizer, error)) Option {
	return func(a *App) { a.reload = fn }
}

// WithHistory enables the History entry.
func WithHistory(h HistorySource) Option {
	return func(a *App) { a.history = h }
}

// WithIO replaces stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		if in != nil {
			a.in = in
		}
		if out != nil {
			a.out = out
		}
	}
}

// New builds the menu around org.
func New(org *organizer.Organizer, opts ...Option) *App {
	a := &App{org: org, in: os.Stdin, out: os.Stdout}
	a.run = a.runProgram
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) runProgram(ctx context.Context, model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(a.in),
		tea.WithOutput(a.out),
	).Run()
}

const (
	itemConfig = iota
	itemStreams
	itemSelect
	itemSelectLanguage
	itemSubtitles
	itemPreview
	itemRename
	itemHistory
	itemHelp
	itemExit
)

var mainItems = []string{
	itemConfig:         "Update config",
	itemStreams:        "Streams info & log",
	itemSelect:         "Select streams",
	itemSelectLanguage: "Select streams with language",
	itemSubtitles:      "Subtitle settings",
	itemPreview:        "Preview generation",
	itemRename:         "Renaming files",
	itemHistory:        "History",
	itemHelp:           "Help",
	itemExit:           "Exit",
}

// Run shows the main menu until Exit, q or ctx cancellation. Action errors
// are printed and the menu comes back.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := a.choose(ctx, NewMenu("moviekit · "+a.org.Folder(), mainItems...))
		if err != nil {
			return err
		}
		if choice < 0 || choice == itemExit {
			return nil
		}
		if err := a.dispatch(ctx, choice); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			a.printf("%s\n\n", errorStyle.Render("✗ "+err.Error()))
		}
	}
}

func (a *App) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case itemConfig:
		return a.reloadConfig(ctx)
	case itemStreams:
		_, err := a.showStreams(ctx)
		return err
	case itemSelect:
		return a.selectStreams(ctx, false)
	case itemSelectLanguage:
		return a.selectStreams(ctx, true)
	case itemSubtitles:
		return a.subtitleMenu(ctx)
	case itemPreview:
		report, err := a.org.GeneratePreviews(ctx)
		a.printReport(report)
		return err
	case itemRename:
		return a.rename(ctx)
	case itemHistory:
		return a.showHistory(ctx)
	case itemHelp:
		view, err := NewHelpView()
		if err != nil {
			return err
		}
		_, err = a.run(ctx, view)
		return err
	}
	return nil
}

func (a *App) choose(ctx context.Context, menu Menu) (int, error) {
	model, err := a.run(ctx, menu)
	if err != nil {
		return -1, err
	}
	m := model.(Menu)
	if m.Quit {
		return -1, nil
	}
	return m.Choice, nil
}

func (a *App) prompt(ctx context.Context, p Prompt) (string, bool, error) {
	model, err := a.run(ctx, p)
	if err != nil {
		return "", false, err
	}
	done := model.(Prompt)
	if done.Aborted || !done.Done {
		return "", false, nil
	}
	return done.Value, true, nil
}

func (a *App) reloadConfig(ctx context.Context) error {
	if a.reload == nil {
		a.printf("%s\n\n", skipStyle.Render("configuration reload is not available"))
		return nil
	}
	org, err := a.reload(ctx)
	if err != nil {
		return err
	}
	a.org = org
	a.printf("%s\n\n", okStyle.Render("✔ configuration reloaded"))
	return nil
}

func (a *App) showStreams(ctx context.Context) (organizer.Analysis, error) {
	analysis, err := a.org.AnalyzeFirstVideo(ctx)
	if err != nil {
		return organizer.Analysis{}, err
	}
	a.printStreams(analysis)
	return analysis, nil
}

func (a *App) printStreams(analysis organizer.Analysis) {
	a.printf("%s\n", titleStyle.Render(filepath.Base(analysis.Path)))
	if analysis.LogPath != "" {
		a.printf("%s\n", helpStyle.Render("probe log: "+analysis.LogPath))
	}
	video, audio, subtitle := analysis.Grouped()
	for _, group := range []struct {
		name    string
		streams []stream.Stream
	}{{"Video", video}, {"Audio", audio}, {"Subtitle", subtitle}} {
		a.printf("\n%s\n", selectedStyle.Render(group.name))
		if len(group.streams) == 0 {
			a.printf("  %s\n", skipStyle.Render("none"))
		}
		for _, s := range group.streams {
			a.printf("  %s\n", StreamLine(s))
		}
	}
	a.printf("\n")
}

func (a *App) selectStreams(ctx context.Context, withLanguage bool) error {
	analysis, ok := a.org.Analysis()
	if !ok {
		var err error
		if analysis, err = a.showStreams(ctx); err != nil {
			return err
		}
	}
	help, _ := RenderHelp(helpWidth)
	value, ok, err := a.prompt(ctx, NewPrompt("Tracks to keep", "0,2-4", help, func(v string) (string, error) {
		indices, err := notation.Parse(v)
		if err != nil {
			return "", err
		}
		if err := stream.Validate(analysis.Streams, stream.Selections(indices)); err != nil {
			return "", err
		}
		return "Keep tracks " + joinInts(indices), nil
	}))
	if err != nil || !ok {
		return err
	}
	indices, err := notation.Parse(value)
	if err != nil {
		return err
	}
	if !withLanguage {
		report, err := a.org.SelectStreams(ctx, stream.Selections(indices))
		a.printReport(report)
		return err
	}

	value, ok, err = a.prompt(ctx, NewPrompt("Languages", "eng,jpn", "", func(v string) (string, error) {
		langs, err := language.ParseList(v)
		if err != nil {
			return "", err
		}
		selections, err := organizer.PairLanguages(indices, langs)
		if err != nil {
			return "", err
		}
		parts := make([]string, len(selections))
		for i, sel := range selections {
			parts[i] = fmt.Sprintf("%d→%s", sel.Index, sel.Language)
		}
		return strings.Join(parts, ", "), nil
	}))
	if err != nil || !ok {
		return err
	}
	langs, err := language.ParseList(value)
	if err != nil {
		return err
	}
	selections, err := organizer.PairLanguages(indices, langs)
	if err != nil {
		return err
	}
	report, err := a.org.SetLanguages(ctx, selections)
	a.printReport(report)
	return err
}

const (
	subInfo = iota
	subExtract
	subConvert
	subPurify
	subTranslate
	subBack
)

func (a *App) subtitleMenu(ctx context.Context) error {
	choice, err := a.choose(ctx, NewMenu("Subtitle settings",
		"Information", "Extraction", "Conversion (.srt → .ass)", "Purification", "Translation", "Back"))
	if err != nil || choice < 0 || choice == subBack {
		return err
	}
	var report organizer.Report
	switch choice {
	case subInfo:
		info, err := a.org.SubtitleInfo(ctx)
		if err != nil {
			return err
		}
		a.printf("%s\n", titleStyle.Render(filepath.Base(info.File)))
		for _, c := range info.Counts {
			a.printf("  %-24s %d\n", c.Style, c.Count)
		}
		a.printf("\n")
		return nil
	case subExtract:
		strip, err := a.choose(ctx, NewMenu("Extract first subtitle track", "Keep subtitles in video", "Remove subtitles from video"))
		if err != nil || strip < 0 {
			return err
		}
		report, err = a.org.ExtractSubtitles(ctx, strip == 1)
		a.printReport(report)
		return err
	case subConvert:
		report, err = a.org.ConvertSubtitles(ctx)
	case subPurify:
		report, err = a.org.PurifySubtitles(ctx)
	case subTranslate:
		report, err = a.org.TranslateSubtitles(ctx)
	}
	a.printReport(report)
	return err
}

func (a *App) rename(ctx context.Context) error {
	plan, _, err := a.org.RenameFiles(ctx, true)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		a.printf("%s\n\n", skipStyle.Render("nothing to rename"))
		return nil
	}
	for _, r := range plan {
		a.printf("  %s → %s\n", filepath.Base(r.Source), okStyle.Render(filepath.Base(r.Target)))
	}
	a.printf("\n")
	confirm, err := a.choose(ctx, NewMenu("Apply these renames?", "Rename", "Cancel"))
	if err != nil || confirm != 0 {
		return err
	}
	_, report, err := a.org.RenameFiles(ctx, false)
	a.printReport(report)
	return err
}

func (a *App) showHistory(ctx context.Context) error {
	if a.history == nil {
		a.printf("%s\n\n", skipStyle.Render("journal is not available"))
		return nil
	}
	entries, err := a.history.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.printf("%s\n\n", skipStyle.Render("no journal entries yet"))
		return nil
	}
	for _, e := range entries {
		a.printf("%s %s %-9s %s\n", statusIcon(e.Status), e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Kind, filepath.Base(e.Source))
	}
	a.printf("\n")
	return nil
}

func (a *App) printReport(report organizer.Report) {
	for _, out := range report.Outcomes {
		line := fmt.Sprintf("%s %s", statusIcon(out.Status()), filepath.Base(out.Source))
		if out.Err != nil {
			line += "  " + skipStyle.Render(out.Err.Error())
		}
		a.printf("%s\n", line)
	}
	if len(report.Outcomes) > 0 {
		a.printf("%s\n\n", helpStyle.Render(report.String()))
	}
}

func statusIcon(status journal.Status) string {
	switch status {
	case journal.StatusOK:
		return okStyle.Render("✔")
	case journal.StatusSkipped:
		return skipStyle.Render("–")
	}
	return errorStyle.Render("❌")
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
