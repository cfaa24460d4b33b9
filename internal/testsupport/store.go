package testsupport

import (
	"testing"

	"moviekit/internal/config"
	"moviekit/internal/journal"
)

// MustOpenJournal opens the journal named by cfg and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
