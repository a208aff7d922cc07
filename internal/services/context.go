package services

import "context"

type contextKey string

const (
	trackIDKey     contextKey = "track_id"
	trackListIDKey contextKey = "track_list_id"
	stageKey       contextKey = "stage"
	runIDKey       contextKey = "run_id"
)

// WithTrackID annotates context with the catalog track identifier.
func WithTrackID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, trackIDKey, id)
}

// TrackIDFromContext extracts the track identifier if present.
func TrackIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(trackIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTrackListID annotates context with the owning track list identifier.
func WithTrackListID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, trackListIDKey, id)
}

// TrackListIDFromContext extracts the track list identifier if present.
func TrackListIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(trackListIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRunID annotates context with the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
