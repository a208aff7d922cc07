package testsupport

import (
	"context"
	"testing"

	"simradio/internal/config"
	"simradio/internal/journal"
)

// MustOpenJournal opens the journal configured on cfg and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(context.Background(), cfg.Paths.JournalPath)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
