package logging

import (
	"context"
	"log/slog"

	"simradio/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldTrackID is the standardized structured logging key for catalog track identifiers.
	FieldTrackID = "track_id"
	// FieldTrackListID is the standardized structured logging key for track list identifiers.
	FieldTrackListID = "track_list_id"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldRunID is the standardized structured logging key for journal run identifiers.
	FieldRunID = "run_id"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries a next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldFailure carries the failure taxonomy bucket of a per-track error.
	FieldFailure = "failure"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.TrackIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldTrackID, id))
	}
	if id, ok := services.TrackListIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldTrackListID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
