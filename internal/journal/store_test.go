package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"moviekit/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.JournalPath = filepath.Join(cfg.Paths.LogDir, "state", "journal.db")
	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, Entry{RunID: "run-1", Kind: KindRemux, Source: "/m/a.mkv"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.ID == 0 || first.Status != StatusOK || first.CreatedAt.IsZero() {
		t.Fatalf("defaults not applied: %+v", first)
	}
	if _, err := store.Record(ctx, Entry{
		RunID:  "run-1",
		Kind:   KindRename,
		Source: "/m/a.mkv",
		Target: "/m/Show.E01.mkv",
		Status: StatusFailed,
		Detail: "target exists",
	}); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != KindRename || entries[0].Status != StatusFailed || entries[0].Target != "/m/Show.E01.mkv" {
		t.Fatalf("expected newest first, got %+v", entries[0])
	}
	if entries[1].RunID != "run-1" || entries[1].Source != "/m/a.mkv" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}

	limited, err := store.Recent(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("limit not applied: %v %v", limited, err)
	}
}

func TestRecordRequiresKind(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Record(context.Background(), Entry{Source: "x"}); err == nil {
		t.Fatal("expected error without kind")
	}
}

func TestPruneBefore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)
	if _, err := store.Record(ctx, Entry{Kind: KindPreview, Source: "old.jpg", CreatedAt: old}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, Entry{Kind: KindPreview, Source: "new.jpg"}); err != nil {
		t.Fatal(err)
	}
	removed, err := store.PruneBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed %d, want 1", removed)
	}
	entries, err := store.Recent(ctx, 0)
	if err != nil || len(entries) != 1 || entries[0].Source != "new.jpg" {
		t.Fatalf("unexpected remaining entries %+v (%v)", entries, err)
	}
}

func TestReopenChecksSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = store.Close()

	if _, err := OpenPath(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestIsSQLiteBusy(t *testing.T) {
	if isSQLiteBusy(nil) || isSQLiteBusy(errors.New("boom")) {
		t.Fatal("unexpected busy classification")
	}
	if !isSQLiteBusy(errors.New("database is locked (5) (SQLITE_BUSY)")) {
		t.Fatal("expected busy classification")
	}
}

func TestWithBusyRetry(t *testing.T) {
	calls := 0
	got, err := withBusyRetry(context.Background(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("database is locked")
		}
		return 7, nil
	})
	if err != nil || got != 7 || calls != 3 {
		t.Fatalf("got %d, %v after %d calls", got, err, calls)
	}

	calls = 0
	boom := errors.New("constraint failed")
	if _, err := withBusyRetry(context.Background(), func() (int, error) {
		calls++
		return 0, boom
	}); !errors.Is(err, boom) || calls != 1 {
		t.Fatalf("non-busy errors should not retry: %v after %d calls", err, calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := withBusyRetry(ctx, func() (int, error) {
		return 0, errors.New("SQLITE_BUSY")
	}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
