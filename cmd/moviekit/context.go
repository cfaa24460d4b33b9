package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"moviekit/internal/command"
	"moviekit/internal/config"
	"moviekit/internal/journal"
	"moviekit/internal/logging"
	"moviekit/internal/organizer"
	"moviekit/internal/preflight"
	"moviekit/internal/services/llm"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// ensureConfig loads the configuration once. A failed validation prints the
// per-key report to out before returning the error.
func (c *commandContext) ensureConfig(out io.Writer) (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = loadConfig(c.configPath(), out)
	})
	return c.config, c.configErr
}

func loadConfig(path string, out io.Writer) (*config.Config, error) {
	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			fmt.Fprintf(out, "Configuration %s has problems:\n", resolved)
			writeChecks(out, invalid.Checks, shouldColorize(out))
			logInvalidConfig(cfg, resolved, invalid.Checks)
			return nil, fmt.Errorf("invalid configuration; fix the keys marked ❌ (see `moviekit config init`)")
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logInvalidConfig records failed config checks in the log file when the
// log settings themselves are usable.
func logInvalidConfig(cfg *config.Config, path string, checks []config.Check) {
	if cfg == nil {
		return
	}
	logSession, err := logging.Open(cfg, logging.SessionOptions{})
	if err != nil {
		return
	}
	defer logSession.Close()
	for _, check := range checks {
		if check.Passed {
			continue
		}
		logging.ErrorWithContext(logSession.Logger, "configuration check failed", "config_invalid",
			logging.String("config", path),
			logging.String("key", check.Key),
			logging.String("value", check.Value),
			logging.String("detail", check.Detail),
			logging.String(logging.FieldErrorHint, "fix the key or run `moviekit config init`"),
		)
	}
}

// checkEnvironment runs the preflight checks for cfg, logs every result and,
// when any failed, renders the report to out and returns an error.
func (s *session) checkEnvironment(cfg *config.Config, runner command.Runner, out io.Writer) error {
	logger := logging.WithContext(s.ctx, s.log.Logger)
	results := preflight.RunAll(s.ctx, cfg, runner)
	for _, r := range results {
		if r.Passed {
			logger.Info("environment check passed",
				logging.String("check", r.Name),
				logging.String("detail", r.Detail),
			)
			continue
		}
		logging.ErrorWithContext(logger, "environment check failed", "preflight_failed",
			logging.String("check", r.Name),
			logging.String("detail", r.Detail),
			logging.String(logging.FieldErrorHint, "fix the key in the config file, then run `moviekit config validate`"),
		)
	}
	failed := preflight.Failed(results)
	if len(failed) == 0 {
		return nil
	}
	if out != nil {
		fmt.Fprintln(out, "Environment checks failed:")
		writePreflight(out, results, shouldColorize(out))
	}
	return fmt.Errorf("%d environment checks failed; fix the keys marked ❌", len(failed))
}

func (c *commandContext) verboseLogging() bool {
	return c.verbose != nil && *c.verbose
}

// session is everything one command run holds open.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	log     *logging.Session
	lock    *flock.Flock
	journal *journal.Store
	runner  command.Runner
	llm     *llm.Client
	org     *organizer.Organizer
}

// openSession opens the log, takes the instance lock and builds the
// organizer. console mirrors warnings; nil keeps the log file-only.
func (c *commandContext) openSession(cmd *cobra.Command, console io.Writer) (*session, error) {
	cfg, err := c.ensureConfig(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	logSession, err := logging.Open(cfg, logging.SessionOptions{Console: console, Verbose: c.verboseLogging()})
	if err != nil {
		return nil, err
	}
	s := &session{
		ctx: logging.WithRunID(cmd.Context(), logSession.RunID),
		cfg: cfg,
		log: logSession,
	}

	s.lock = flock.New(cfg.LockPath())
	locked, err := s.lock.TryLock()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("acquire lock %s: %w", cfg.LockPath(), err)
	}
	if !locked {
		s.lock = nil
		s.Close()
		return nil, fmt.Errorf("another moviekit process holds %s", cfg.LockPath())
	}

	if s.journal, err = journal.Open(cfg); err != nil {
		s.Close()
		return nil, err
	}
	if days := cfg.Logging.RetentionDays; days > 0 {
		if _, err := s.journal.PruneBefore(s.ctx, time.Now().AddDate(0, 0, -days)); err != nil {
			logging.WarnWithContext(logSession.Logger, "journal prune failed", "journal_prune_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "old history rows kept"),
			)
		}
	}
	s.runner = command.NewExecRunner(logSession.Logger, cfg.CommandTimeout())
	if err := s.checkEnvironment(cfg, s.runner, cmd.ErrOrStderr()); err != nil {
		s.Close()
		return nil, err
	}
	s.org = s.buildOrganizer(cfg)

	logging.WithContext(s.ctx, logSession.Logger).Info("moviekit session started",
		logging.String("command", cmd.CommandPath()),
		logging.String("movies_folder", cfg.Library.MoviesFolder),
		logging.String("log_file", logSession.LogPath),
	)
	return s, nil
}

func (s *session) buildOrganizer(cfg *config.Config) *organizer.Organizer {
	opts := []organizer.Option{organizer.WithJournal(s.journal)}
	if s.llm != nil {
		_ = s.llm.Close()
		s.llm = nil
	}
	if cfg.Translation.Enabled {
		s.llm = llm.NewClient(llm.Config{
			APIKey:  cfg.Translation.APIKey,
			BaseURL: cfg.Translation.BaseURL,
			Model:   cfg.Translation.Model,
			Timeout: cfg.TranslationTimeout(),
		})
		opts = append(opts, organizer.WithTranslator(s.llm))
	}
	return organizer.New(cfg, s.runner, s.log.Logger, opts...)
}

// reload re-reads the configuration and rebuilds the organizer on the same
// log, lock and journal.
func (s *session) reload(path string, out io.Writer) (*organizer.Organizer, error) {
	cfg, err := loadConfig(path, out)
	if err != nil {
		return nil, err
	}
	runner := command.NewExecRunner(s.log.Logger, cfg.CommandTimeout())
	if err := s.checkEnvironment(cfg, runner, out); err != nil {
		return nil, err
	}
	s.cfg = cfg
	s.runner = runner
	s.org = s.buildOrganizer(cfg)
	logging.WithContext(s.ctx, s.log.Logger).Info("configuration reloaded",
		logging.String("movies_folder", cfg.Library.MoviesFolder),
	)
	return s.org, nil
}

func (s *session) Close() error {
	var errs []error
	if s.llm != nil {
		errs = append(errs, s.llm.Close())
	}
	if s.journal != nil {
		errs = append(errs, s.journal.Close())
	}
	if s.lock != nil {
		errs = append(errs, s.lock.Unlock())
	}
	if s.log != nil {
		errs = append(errs, s.log.Close())
	}
	return errors.Join(errs...)
}

func (c *commandContext) withSession(cmd *cobra.Command, fn func(*session) error) error {
	s, err := c.openSession(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
