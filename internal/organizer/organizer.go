package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"moviekit/internal/command"
	"moviekit/internal/config"
	"moviekit/internal/fileutil"
	"moviekit/internal/journal"
	"moviekit/internal/library"
	"moviekit/internal/logging"
	"moviekit/internal/media/ffprobe"
	"moviekit/internal/services"
	"moviekit/internal/subtitles"
)

var (
	// ErrNoVideos is returned when the movies folder holds no video files.
	ErrNoVideos = errors.New("no video files in movies folder")
	// ErrNotAnalyzed is returned when a stream operation runs before Analyze.
	ErrNotAnalyzed = errors.New("no analysed video; run streams first")
	// ErrNoSubtitles is returned when no subtitle of the required format exists.
	ErrNoSubtitles = errors.New("no matching subtitles in movies folder")
	// ErrTranslationDisabled is returned when no translator is configured.
	ErrTranslationDisabled = errors.New("translation is not enabled")
)

// prefixLength is the size of the temporary remux prefix.
const prefixLength = 10

// Prober inspects a media file. *ffprobe.Prober satisfies it.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
	Forget(path string)
}

// Recorder stores one journal row. *journal.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, entry journal.Entry) (journal.Entry, error)
}

// Translator translates dialogue lines. *llm.Client satisfies it.
type Translator interface {
	Translate(ctx context.Context, lines []string, language string, batchSize int) ([]string, error)
}

// Organizer runs folder operations for one configuration.
type Organizer struct {
	cfg        *config.Config
	runner     command.Runner
	prober     Prober
	files      *fileutil.Retrier
	journal    Recorder
	translator Translator
	logger     *slog.Logger
	prefix     string

	analysis *Analysis
}

// Option customizes an Organizer.
type Option func(*Organizer)

// WithProber replaces the ffprobe-backed prober.
func WithProber(p Prober) Option {
	return func(o *Organizer) {
		if p != nil {
			o.prober = p
		}
	}
}

// WithRetrier replaces the busy-file retrier.
func WithRetrier(r *fileutil.Retrier) Option {
	return func(o *Organizer) {
		if r != nil {
			o.files = r
		}
	}
}

// WithJournal records every file outcome in rec.
func WithJournal(rec Recorder) Option {
	return func(o *Organizer) { o.journal = rec }
}

// WithTranslator enables TranslateSubtitles.
func WithTranslator(t Translator) Option {
	return func(o *Organizer) { o.translator = t }
}

// WithPrefix fixes the temporary remux prefix.
func WithPrefix(prefix string) Option {
	return func(o *Organizer) {
		if strings.TrimSpace(prefix) != "" {
			o.prefix = prefix
		}
	}
}

// New builds an Organizer. Without options it probes through runner, retries
// busy files with the configured delay and keeps no journal.
func New(cfg *config.Config, runner command.Runner, logger *slog.Logger, opts ...Option) *Organizer {
	logger = logging.NewComponentLogger(logger, "organizer")
	o := &Organizer{
		cfg:    cfg,
		runner: runner,
		logger: logger,
		prefix: newPrefix(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.prober == nil {
		o.prober = ffprobe.NewProber(cfg.Tools.FFprobePath, runner, cfg.ProbeLogDir(), logger)
	}
	if o.files == nil {
		o.files = fileutil.NewRetrier(logger, cfg.BusyRetryDelay())
	}
	return o
}

// Prefix is the temporary name prefix used for remux targets.
func (o *Organizer) Prefix() string {
	return o.prefix
}

// Folder is the movies folder every operation works on.
func (o *Organizer) Folder() string {
	return o.cfg.Library.MoviesFolder
}

// Scan lists the movies folder by file class.
func (o *Organizer) Scan(context.Context) (library.Listing, error) {
	listing, err := library.Scan(o.Folder())
	if err != nil {
		return library.Listing{}, services.Wrap(services.ErrConfiguration, "scan", o.Folder(), "cannot list movies folder", err)
	}
	return listing, nil
}

func (o *Organizer) styleOptions() subtitles.StyleOptions {
	s := o.cfg.Subtitles
	return subtitles.StyleOptions{
		Font:      s.MainFont,
		MainSize:  float64(s.MainFontSize),
		SignsSize: float64(s.SignsFontSize),
		MarginV:   s.MarginV,
	}
}

// Outcome is the result of one file operation.
type Outcome struct {
	Kind   journal.Kind
	Source string
	Target string
	Err    error
}

// Status maps the outcome to its journal status.
func (o Outcome) Status() journal.Status {
	return services.FailureStatus(o.Err)
}

// Report collects the outcomes of one batch.
type Report struct {
	Outcomes []Outcome
}

// Failed counts outcomes that did not succeed or get skipped.
func (r Report) Failed() int {
	n := 0
	for _, out := range r.Outcomes {
		if out.Status() == journal.StatusFailed {
			n++
		}
	}
	return n
}

func (r Report) String() string {
	return fmt.Sprintf("%d files, %d failed", len(r.Outcomes), r.Failed())
}

// Err joins every failure, or returns nil when all files succeeded.
func (r Report) Err() error {
	var errs []error
	for _, out := range r.Outcomes {
		if out.Status() == journal.StatusFailed {
			errs = append(errs, out.Err)
		}
	}
	return errors.Join(errs...)
}

// record logs and journals one outcome and appends it to report.
func (o *Organizer) record(ctx context.Context, report *Report, out Outcome) {
	report.Outcomes = append(report.Outcomes, out)
	logger := logging.WithContext(ctx, o.logger)
	attrs := []logging.Attr{
		logging.String("operation", string(out.Kind)),
		logging.String(logging.FieldFile, filepath.Base(out.Source)),
	}
	if out.Target != "" {
		attrs = append(attrs, logging.String("target", filepath.Base(out.Target)))
	}
	switch out.Status() {
	case journal.StatusOK:
		logger.Info("file processed", logging.Args(attrs...)...)
	case journal.StatusSkipped:
		logger.Info("file skipped", logging.Args(append(attrs, logging.Error(out.Err))...)...)
	default:
		logging.ErrorWithContext(logger, "file operation failed", "file_operation_failed",
			append(attrs,
				logging.Error(out.Err),
				logging.String(logging.FieldErrorHint, "check the log for the failing command and its stderr"),
			)...,
		)
	}

	if o.journal == nil {
		return
	}
	entry := journal.Entry{
		Kind:      out.Kind,
		Source:    out.Source,
		Target:    out.Target,
		Status:    out.Status(),
		CreatedAt: time.Now(),
	}
	if runID, ok := logging.RunIDFromContext(ctx); ok {
		entry.RunID = runID
	}
	if out.Err != nil {
		entry.Detail = out.Err.Error()
	}
	if _, err := o.journal.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logger, "journal write failed", "journal_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "history will miss this file operation"),
		)
	}
}

// newPrefix returns prefixLength upper-case alphanumerics.
func newPrefix() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return id[:prefixLength]
}
