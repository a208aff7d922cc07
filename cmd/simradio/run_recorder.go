package main

import (
	"context"
	"log/slog"
	"time"

	"simradio/internal/journal"
	"simradio/internal/logging"
)

// runRecorder writes one command invocation to the journal. A nil store
// turns every method into a no-op; journal write failures are logged and
// never fail the command.
type runRecorder struct {
	store  *journal.Store
	runID  string
	logger *slog.Logger
}

func beginRun(ctx context.Context, store *journal.Store, command string, logger *slog.Logger) *runRecorder {
	rec := &runRecorder{store: store, logger: logger}
	if store == nil {
		return rec
	}
	id, err := store.BeginRun(ctx, command)
	if err != nil {
		logging.WarnWithContext(logger, "journal unavailable", "journal_begin_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.journal_path or set journal.enabled = false"))
		rec.store = nil
		return rec
	}
	rec.runID = id
	return rec
}

func (r *runRecorder) record(ctx context.Context, entry journal.Entry) {
	if r == nil || r.store == nil {
		return
	}
	if err := r.store.RecordOutcome(ctx, r.runID, entry); err != nil {
		r.logger.Warn("journal write failed", logging.String(logging.FieldTrackID, entry.TrackID), logging.Error(err))
	}
}

// finish closes the run. It uses a fresh context so cancelled runs are
// still marked finished.
func (r *runRecorder) finish(note string) {
	if r == nil || r.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.store.FinishRun(ctx, r.runID, note); err != nil {
		r.logger.Warn("journal finish failed", logging.String(logging.FieldRunID, r.runID), logging.Error(err))
	}
}

func (r *runRecorder) id() string {
	if r == nil {
		return ""
	}
	return r.runID
}
