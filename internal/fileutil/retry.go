package fileutil

import (
	"context"
	"log/slog"
	"os"
	"time"

	"moviekit/internal/logging"
)

// DefaultBusyDelay is the pause between attempts when a file is held by another process.
const DefaultBusyDelay = 5 * time.Second

// Retrier repeats filesystem operations while the target is locked. There is
// no attempt cap: it stops on success, on a non-busy error or when ctx ends.
type Retrier struct {
	delay  time.Duration
	logger *slog.Logger
	isBusy func(error) bool
	sleep  func(context.Context, time.Duration) error
}

// RetrierOption customizes a Retrier.
type RetrierOption func(*Retrier)

// WithBusyCheck replaces the platform busy-error classifier.
func WithBusyCheck(fn func(error) bool) RetrierOption {
	return func(r *Retrier) {
		if fn != nil {
			r.isBusy = fn
		}
	}
}

// WithSleeper replaces the context-aware sleep used between attempts.
func WithSleeper(fn func(context.Context, time.Duration) error) RetrierOption {
	return func(r *Retrier) {
		if fn != nil {
			r.sleep = fn
		}
	}
}

// NewRetrier constructs a retrier; a non-positive delay uses DefaultBusyDelay.
func NewRetrier(logger *slog.Logger, delay time.Duration, opts ...RetrierOption) *Retrier {
	if delay <= 0 {
		delay = DefaultBusyDelay
	}
	r := &Retrier{
		delay:  delay,
		logger: logging.NewComponentLogger(logger, "files"),
		isBusy: IsBusy,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs fn until it succeeds or fails with a non-busy error and returns the
// number of delayed retries performed.
func (r *Retrier) Do(ctx context.Context, op, path string, fn func() error) (int, error) {
	retries := 0
	for {
		err := fn()
		if err == nil {
			return retries, nil
		}
		if !r.isBusy(err) {
			return retries, err
		}
		retries++
		logging.WithContext(ctx, r.logger).Info("file busy; retrying",
			logging.String("op", op),
			logging.String(logging.FieldFile, path),
			logging.Int("attempt", retries),
			logging.Duration("delay", r.delay),
			logging.Error(err),
		)
		if err := r.sleep(ctx, r.delay); err != nil {
			return retries, err
		}
	}
}

// Remove deletes path, waiting out locks held by other processes.
func (r *Retrier) Remove(ctx context.Context, path string) error {
	_, err := r.Do(ctx, "remove", path, func() error { return os.Remove(path) })
	return err
}

// Rename moves oldPath to newPath, waiting out locks held by other processes.
func (r *Retrier) Rename(ctx context.Context, oldPath, newPath string) error {
	_, err := r.Do(ctx, "rename", oldPath, func() error { return os.Rename(oldPath, newPath) })
	return err
}

// Replace removes dst and renames src over it; used after a remux into a temp file.
func (r *Retrier) Replace(ctx context.Context, src, dst string) error {
	if err := r.Remove(ctx, dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return r.Rename(ctx, src, dst)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
