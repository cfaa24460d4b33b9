package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"moviekit/internal/command"
	"moviekit/internal/logging"
	"moviekit/internal/media/stream"
)

// CacheTTL is how long a probe of an unchanged file is reused.
const CacheTTL = 10 * time.Minute

// probeLogLayout names probe dumps <YYYY.MM.DD-HH.MM.SS>-<file>.log.
const probeLogLayout = "2006.01.02-15.04.05"

// Result is one inspection of a media file.
type Result struct {
	Path    string
	Output  string
	Streams []stream.Stream
	// LogPath is the raw dump written for this probe; empty when no log dir is set.
	LogPath string
	Cached  bool
}

// Prober runs `ffprobe -v error -show_streams` and parses its text output.
type Prober struct {
	binary string
	runner command.Runner
	logDir string
	cache  *cache.Cache
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a Prober.
type Option func(*Prober)

// WithClock overrides the time source used for probe log names.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		if now != nil {
			p.now = now
		}
	}
}

// WithCacheTTL overrides CacheTTL; zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(p *Prober) {
		if ttl <= 0 {
			p.cache = nil
			return
		}
		p.cache = cache.New(ttl, 2*ttl)
	}
}

// NewProber constructs a prober. logDir receives one raw dump per probe.
func NewProber(binary string, runner command.Runner, logDir string, logger *slog.Logger, opts ...Option) *Prober {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	p := &Prober{
		binary: binary,
		runner: runner,
		logDir: logDir,
		cache:  cache.New(CacheTTL, 2*CacheTTL),
		logger: logging.NewComponentLogger(logger, "ffprobe"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Inspect probes path, reusing a cached result while the file's size and
// modification time are unchanged.
func (p *Prober) Inspect(ctx context.Context, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	key := cacheKey(path, info)
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			result := cached.(Result)
			result.Cached = true
			p.logger.Debug("probe cache hit", logging.String(logging.FieldFile, path))
			return result, nil
		}
	}

	res, err := p.runner.Run(ctx, p.binary, "-v", "error", "-show_streams", path)
	if err != nil {
		return Result{}, fmt.Errorf("probe %s: %w", filepath.Base(path), err)
	}
	output := string(res.Stdout)
	result := Result{
		Path:    path,
		Output:  output,
		Streams: stream.Parse(output),
	}
	if p.logDir != "" {
		logPath, err := p.writeLog(path, res.Output())
		if err != nil {
			logging.WarnWithContext(p.logger, "probe log not written", "probe_log_failed",
				logging.String(logging.FieldFile, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "raw stream dump unavailable for this file"),
			)
		}
		result.LogPath = logPath
	}
	if p.cache != nil {
		p.cache.Set(key, result, cache.DefaultExpiration)
	}
	return result, nil
}

// Forget drops any cached probe for path, used after a file is rewritten in place.
func (p *Prober) Forget(path string) {
	if p.cache == nil {
		return
	}
	prefix := path + "|"
	for key := range p.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			p.cache.Delete(key)
		}
	}
}

func (p *Prober) writeLog(path, output string) (string, error) {
	if err := os.MkdirAll(p.logDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.log", p.now().Format(probeLogLayout), filepath.Base(path))
	logPath := filepath.Join(p.logDir, name)
	if err := os.WriteFile(logPath, []byte(output), 0o644); err != nil {
		return "", err
	}
	return logPath, nil
}

func cacheKey(path string, info os.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
}
