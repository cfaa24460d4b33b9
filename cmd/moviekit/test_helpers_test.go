package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"moviekit/internal/config"
	"moviekit/internal/testsupport"
)

const stubProbeOutput = `[STREAM]
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
[STREAM]
index=2
codec_name=subrip
codec_type=subtitle
TAG:title=Signs
[/STREAM]`

type cliTestEnv struct {
	cfg        *config.Config
	moviesDir  string
	logDir     string
	configPath string
}

// setupCLITestEnv writes a config pointing at stub ffmpeg/ffprobe scripts
// and an empty movies folder. edit may adjust the config before it is saved.
func setupCLITestEnv(t *testing.T, edit func(*config.Config)) *cliTestEnv {
	t.Helper()

	t.Setenv("MOVIEKIT_FFMPEG", "")
	t.Setenv("MOVIEKIT_FFPROBE", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools(stubProbeOutput))
	t.Setenv("HOME", filepath.Join(testsupport.BaseDir(cfg), "home"))
	if edit != nil {
		edit(cfg)
	}
	return &cliTestEnv{
		cfg:        cfg,
		moviesDir:  cfg.Library.MoviesFolder,
		logDir:     cfg.Paths.LogDir,
		configPath: testsupport.WriteConfig(t, cfg),
	}
}

func (e *cliTestEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	return testsupport.WriteFile(t, e.moviesDir, name, content)
}

func (e *cliTestEnv) read(t *testing.T, name string) string {
	t.Helper()
	return testsupport.ReadFile(t, e.moviesDir, name)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\nfull output:\n%s", needle, haystack)
	}
}
