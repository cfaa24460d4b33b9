package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"moviekit/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Console receives human output; nil disables it.
	Console io.Writer
	// ConsoleLevel overrides Level for the console sink.
	ConsoleLevel string
	// File receives the persistent log; nil disables it.
	File  io.Writer
	RunID string
}

// New constructs a slog logger using the provided options. The console always
// uses the pretty handler; the file uses Format.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	addSource := level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var handlers []slog.Handler
	if opts.Console != nil {
		consoleLevel := slog.Leveler(levelVar)
		if strings.TrimSpace(opts.ConsoleLevel) != "" {
			consoleLevel = parseLevel(opts.ConsoleLevel)
		}
		handlers = append(handlers, newPrettyHandler(opts.Console, consoleLevel, addSource))
	}
	if opts.File != nil {
		switch format {
		case "json":
			handlers = append(handlers, newJSONHandler(opts.File, levelVar, addSource))
		case "console":
			handlers = append(handlers, newPrettyHandler(opts.File, levelVar, addSource))
		default:
			return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
		}
	}
	return slog.New(newRunIDHandler(tee(handlers...), opts.RunID)), nil
}

// Session owns the logger for one process run and the file behind it.
type Session struct {
	Logger  *slog.Logger
	RunID   string
	LogPath string
	closer  io.Closer
}

// SessionOptions controls where a session writes.
type SessionOptions struct {
	// Console mirrors warnings and errors to this writer (CLI mode).
	// Interactive menus pass nil.
	Console io.Writer
	// Verbose forces debug level on both sinks regardless of config.
	Verbose bool
}

// Open creates the log directory, a rotating log file and the run logger.
func Open(cfg *config.Config, opts SessionOptions) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("open log session: nil config")
	}
	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   cfg.LogFilePath(),
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.RetentionDays,
	}
	level, consoleLevel := cfg.Logging.Level, "warn"
	if opts.Verbose {
		level, consoleLevel = "debug", "debug"
	}
	runID := uuid.NewString()
	logger, err := New(Options{
		Level:        level,
		Format:       cfg.Logging.Format,
		Console:      opts.Console,
		ConsoleLevel: consoleLevel,
		File:         file,
		RunID:        runID,
	})
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	PruneOlderThan(logger, cfg.ProbeLogDir(), "*.log", cfg.Logging.RetentionDays)
	return &Session{Logger: logger, RunID: runID, LogPath: file.Filename, closer: file}, nil
}

// Close flushes and closes the log file.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// LogDir returns the directory holding the session log.
func (s *Session) LogDir() string {
	if s == nil {
		return ""
	}
	return filepath.Dir(s.LogPath)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
