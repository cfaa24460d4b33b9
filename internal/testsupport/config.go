package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"moviekit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose movies folder and log directory are
// fresh temp directories. The movies folder exists; the log directory does not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Library.MoviesFolder = filepath.Join(base, "movies")
	cfgVal.Library.NameTemplate = "Show.S01"
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.JournalPath = filepath.Join(base, "logs", "journal.db")
	cfgVal.Files.BusyRetryDelay = 1
	if err := os.MkdirAll(cfgVal.Library.MoviesFolder, 0o755); err != nil {
		t.Fatalf("mkdir movies folder: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithNameTemplate overrides library.name_template.
func WithNameTemplate(tpl string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.NameTemplate = tpl
	}
}

// WithStubbedTools writes ffmpeg and ffprobe shell stubs and points the
// config at them. Both answer -version. ffprobe prints probeOutput; ffmpeg
// writes "remuxed" into its last argument.
func WithStubbedTools(probeOutput string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		stubs := map[string]string{
			"ffprobe": "#!/bin/sh\n" +
				"if [ \"$1\" = \"-version\" ]; then echo 'ffprobe version stub'; exit 0; fi\n" +
				"cat <<'EOF'\n" + probeOutput + "\nEOF\n",
			"ffmpeg": "#!/bin/sh\n" +
				"if [ \"$1\" = \"-version\" ]; then echo 'ffmpeg version stub'; exit 0; fi\n" +
				"for last; do :; done\n" +
				"printf remuxed > \"$last\"\n",
		}
		for name, script := range stubs {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.cfg.Tools.FFmpegPath = filepath.Join(binDir, "ffmpeg")
		b.cfg.Tools.FFprobePath = filepath.Join(binDir, "ffprobe")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Library.MoviesFolder)
}

// WriteConfig saves cfg as moviekit.toml under its base directory and
// returns the path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(BaseDir(cfg), "moviekit.toml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return path
}
