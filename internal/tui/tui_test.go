package tui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"moviekit/internal/command"
	"moviekit/internal/fileutil"
	"moviekit/internal/journal"
	"moviekit/internal/logging"
	"moviekit/internal/media/stream"
	"moviekit/internal/notation"
	"moviekit/internal/organizer"
	"moviekit/internal/testsupport"
)

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func TestMenuNavigation(t *testing.T) {
	items := []string{"one", "two", "three"}

	m := press(NewMenu("t", items...), tea.KeyMsg{Type: tea.KeyDown}, runes("j"), enter).(Menu)
	if m.Choice != 2 || m.Quit {
		t.Fatalf("choice = %d quit = %v", m.Choice, m.Quit)
	}
	m = press(NewMenu("t", items...), tea.KeyMsg{Type: tea.KeyUp}, enter).(Menu)
	if m.Choice != 2 {
		t.Fatalf("up from the top should wrap, got %d", m.Choice)
	}
	m = press(NewMenu("t", items...), runes("2")).(Menu)
	if m.Choice != 1 {
		t.Fatalf("digit pick = %d", m.Choice)
	}
	m = press(NewMenu("t", items...), runes("9")).(Menu)
	if m.Choice != -1 {
		t.Fatalf("out of range digit picked %d", m.Choice)
	}
	m = press(NewMenu("t", items...), runes("q")).(Menu)
	if !m.Quit || m.Choice != -1 {
		t.Fatalf("q should quit without a choice: %+v", m)
	}
	if view := NewMenu("Main", items...).View(); !strings.Contains(view, "1. one") || !strings.Contains(view, "Main") {
		t.Fatalf("unexpected view %q", view)
	}
}

func notationCheck(v string) (string, error) {
	indices, err := notation.Parse(v)
	if err != nil {
		return "", err
	}
	return "Keep tracks " + joinInts(indices), nil
}

func TestPromptConfirmFlow(t *testing.T) {
	p := press(NewPrompt("Tracks", "", "", notationCheck), enter).(Prompt)
	if p.err != "nothing entered" || p.confirming {
		t.Fatalf("empty input: err=%q confirming=%v", p.err, p.confirming)
	}

	p = press(p, runes("0,2-3"), enter).(Prompt)
	if !p.confirming || p.summary != "Keep tracks 0, 2, 3" {
		t.Fatalf("expected confirmation, got %+v", p)
	}
	p = press(p, runes("n")).(Prompt)
	if p.confirming || p.Done {
		t.Fatal("n should return to editing")
	}
	p = press(p, enter, runes("y")).(Prompt)
	if !p.Done || p.Value != "0,2-3" {
		t.Fatalf("Done=%v Value=%q", p.Done, p.Value)
	}
}

func TestPromptRejectsInvalidInput(t *testing.T) {
	p := press(NewPrompt("Tracks", "", "", notationCheck), runes("4-2"), enter).(Prompt)
	if p.confirming || p.err == "" {
		t.Fatalf("descending range accepted: %+v", p)
	}
	if !strings.Contains(p.View(), p.err) {
		t.Fatal("error not shown")
	}
}

func TestPromptAbort(t *testing.T) {
	p := press(NewPrompt("Tracks", "", "", nil), runes("quit"), enter).(Prompt)
	if !p.Aborted || p.Done {
		t.Fatalf("quit: %+v", p)
	}
	p = press(NewPrompt("Tracks", "", "", nil), tea.KeyMsg{Type: tea.KeyEsc}).(Prompt)
	if !p.Aborted {
		t.Fatal("esc should abort")
	}
}

func TestStreamLine(t *testing.T) {
	s := stream.Stream{Index: 1, Type: stream.KindAudio, Tags: map[string]string{"language": "jpn"}}
	if got := StreamLine(s); !strings.Contains(got, "1: (jpn) Track 1") {
		t.Fatalf("StreamLine = %q", got)
	}
}

func TestRenderHelp(t *testing.T) {
	out, err := RenderHelp(helpWidth)
	if err != nil {
		t.Fatalf("RenderHelp: %v", err)
	}
	if !strings.Contains(out, "notation") {
		t.Fatalf("help missing heading: %q", out)
	}
	if _, err := NewHelpView(); err != nil {
		t.Fatalf("NewHelpView: %v", err)
	}
}

const probeOutput = `[STREAM]
index=0
codec_name=h264
codec_type=video
[/STREAM]
[STREAM]
index=1
codec_name=aac
codec_type=audio
TAG:language=jpn
[/STREAM]
`

type fakeTools struct {
	calls [][]string
}

func (f *fakeTools) Run(_ context.Context, name string, args ...string) (command.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if name == "ffprobe" {
		return command.Result{Stdout: []byte(probeOutput)}, nil
	}
	return command.Result{}, os.WriteFile(args[len(args)-1], []byte("remuxed"), 0o644)
}

// script answers each program the App starts with the next scripted step.
type script struct {
	t     *testing.T
	steps []func(tea.Model) tea.Model
}

func (s *script) run(_ context.Context, m tea.Model) (tea.Model, error) {
	s.t.Helper()
	if len(s.steps) == 0 {
		s.t.Fatalf("unexpected program %T", m)
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	return step(m), nil
}

func keys(k ...tea.KeyMsg) func(tea.Model) tea.Model {
	return func(m tea.Model) tea.Model { return press(m, k...) }
}

type testApp struct {
	dir   string
	tools *fakeTools
	out   *bytes.Buffer
	app   *App
}

func newTestApp(t *testing.T, steps ...func(tea.Model) tea.Model) *testApp {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithNameTemplate("Film"))
	tools := &fakeTools{}
	org := organizer.New(cfg, tools, logging.NewNop(),
		organizer.WithRetrier(fileutil.NewRetrier(nil, time.Millisecond)),
		organizer.WithPrefix("TESTPREFIX"),
	)
	out := &bytes.Buffer{}
	app := New(org, WithIO(strings.NewReader(""), out))
	app.run = (&script{t: t, steps: steps}).run
	return &testApp{dir: cfg.Library.MoviesFolder, tools: tools, out: out, app: app}
}

func (a *testApp) write(t *testing.T, name string) {
	t.Helper()
	testsupport.WriteFile(t, a.dir, name, "video")
}

func TestAppStreamsThenSelect(t *testing.T) {
	env := newTestApp(t,
		keys(runes("2")),
		keys(runes("3")),
		keys(runes("0,1"), enter, runes("y")),
		keys(runes("q")),
	)
	env.write(t, "a.mkv")

	if err := env.app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := env.out.String()
	for _, want := range []string{"a.mkv", "0: () Track 0", "1: (jpn) Track 1", "✔ a.mkv", "1 files, 0 failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	var ffmpeg int
	for _, call := range env.tools.calls {
		if call[0] == "ffmpeg" {
			ffmpeg++
		}
	}
	if ffmpeg != 1 {
		t.Fatalf("expected one ffmpeg run, got %d", ffmpeg)
	}
}

func TestAppSelectAbortRunsNothing(t *testing.T) {
	env := newTestApp(t,
		keys(runes("3")),
		keys(runes("q"), enter),
		keys(runes("q")),
	)
	env.write(t, "a.mkv")

	if err := env.app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, call := range env.tools.calls {
		if call[0] == "ffmpeg" {
			t.Fatalf("aborted prompt still ran %v", call)
		}
	}
}

func TestAppActionErrorReturnsToMenu(t *testing.T) {
	env := newTestApp(t,
		keys(runes("2")),
		keys(runes("q")),
	)
	if err := env.app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(env.out.String(), "✗") {
		t.Fatalf("expected an error line, got %q", env.out.String())
	}
}

func TestAppRenameCancel(t *testing.T) {
	env := newTestApp(t,
		keys(runes("7")),
		keys(runes("2")),
		keys(runes("q")),
	)
	env.write(t, "movie.mkv")

	if err := env.app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(env.out.String(), "movie.mkv → Film.mkv") {
		t.Fatalf("plan not printed:\n%s", env.out.String())
	}
	if _, err := os.Stat(filepath.Join(env.dir, "movie.mkv")); err != nil {
		t.Fatal("cancelled rename touched the file")
	}
}

func TestAppRenameConfirm(t *testing.T) {
	env := newTestApp(t,
		keys(runes("7")),
		keys(runes("1")),
		keys(runes("q")),
	)
	env.write(t, "movie.mkv")

	if err := env.app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "Film.mkv")); err != nil {
		t.Fatalf("rename not applied: %v", err)
	}
}

type fakeHistory []journal.Entry

func (f fakeHistory) Recent(context.Context, int) ([]journal.Entry, error) {
	return f, nil
}

func TestAppHistory(t *testing.T) {
	env := newTestApp(t,
		keys(runes("8")),
		keys(runes("q")),
	)
	WithHistory(fakeHistory{{
		Kind:      journal.KindRename,
		Source:    "/films/movie.mkv",
		Status:    journal.StatusOK,
		CreatedAt: time.Now(),
	}})(env.app)

	if err := env.app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := env.out.String()
	if !strings.Contains(out, "rename") || !strings.Contains(out, "movie.mkv") {
		t.Fatalf("history not printed:\n%s", out)
	}
}

func TestAppStopsOnCancelledContext(t *testing.T) {
	env := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := env.app.Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
