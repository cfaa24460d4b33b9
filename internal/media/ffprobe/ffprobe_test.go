package ffprobe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"moviekit/internal/command"
	"moviekit/internal/logging"
)

const sampleOutput = `[STREAM]
index=0
codec_name=hevc
codec_type=video
[/STREAM]
[STREAM]
index=1
codec_name=aac
codec_type=audio
TAG:language=jpn
[/STREAM]
`

type fakeRunner struct {
	calls [][]string
	out   string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (command.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return command.Result{Stdout: []byte(f.out)}, f.err
}

func writeMedia(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspectParsesAndWritesProbeLog(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "probe")
	media := writeMedia(t, dir, "Episode 01.mkv")
	runner := &fakeRunner{out: sampleOutput}
	clock := func() time.Time { return time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local) }

	prober := NewProber("/usr/bin/ffprobe", runner, logDir, logging.NewNop(), WithClock(clock))
	result, err := prober.Inspect(context.Background(), media)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	wantArgs := []string{"/usr/bin/ffprobe", "-v", "error", "-show_streams", media}
	if len(runner.calls) != 1 || !reflect.DeepEqual(runner.calls[0], wantArgs) {
		t.Fatalf("unexpected invocation: %v", runner.calls)
	}
	if len(result.Streams) != 2 || result.Streams[1].Language() != "jpn" {
		t.Fatalf("unexpected streams: %+v", result.Streams)
	}
	wantLog := filepath.Join(logDir, "2024.03.09-07.05.01-Episode 01.mkv.log")
	if result.LogPath != wantLog {
		t.Fatalf("LogPath = %q, want %q", result.LogPath, wantLog)
	}
	data, err := os.ReadFile(wantLog)
	if err != nil {
		t.Fatalf("read probe log: %v", err)
	}
	if string(data) != sampleOutput {
		t.Fatalf("probe log content mismatch: %q", data)
	}
}

func TestInspectCachesUnchangedFile(t *testing.T) {
	dir := t.TempDir()
	media := writeMedia(t, dir, "film.mkv")
	runner := &fakeRunner{out: sampleOutput}
	prober := NewProber("", runner, "", nil)

	first, err := prober.Inspect(context.Background(), media)
	if err != nil {
		t.Fatal(err)
	}
	second, err := prober.Inspect(context.Background(), media)
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected one ffprobe run, got %d", len(runner.calls))
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags: first=%v second=%v", first.Cached, second.Cached)
	}
	if runner.calls[0][0] != "ffprobe" {
		t.Fatalf("expected default binary, got %q", runner.calls[0][0])
	}

	prober.Forget(media)
	if _, err := prober.Inspect(context.Background(), media); err != nil {
		t.Fatal(err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected re-probe after Forget, got %d runs", len(runner.calls))
	}
}

func TestInspectCacheDisabled(t *testing.T) {
	media := writeMedia(t, t.TempDir(), "film.mkv")
	runner := &fakeRunner{out: sampleOutput}
	prober := NewProber("ffprobe", runner, "", nil, WithCacheTTL(0))
	for i := 0; i < 2; i++ {
		if _, err := prober.Inspect(context.Background(), media); err != nil {
			t.Fatal(err)
		}
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected 2 runs with cache disabled, got %d", len(runner.calls))
	}
}

func TestInspectErrors(t *testing.T) {
	prober := NewProber("ffprobe", &fakeRunner{}, "", nil)
	if _, err := prober.Inspect(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := prober.Inspect(context.Background(), filepath.Join(t.TempDir(), "missing.mkv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	media := writeMedia(t, t.TempDir(), "broken.mkv")
	failing := NewProber("ffprobe", &fakeRunner{err: &command.ExitError{Command: "ffprobe", ExitCode: 1}}, "", nil)
	if _, err := failing.Inspect(context.Background(), media); !errors.Is(err, command.ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}
}
