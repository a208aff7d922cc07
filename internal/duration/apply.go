package duration

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"simradio/internal/catalog"
	"simradio/internal/logging"
	"simradio/internal/services"
)

// Skip reasons reported through Update.
const (
	SkipInvalidPath = "invalid path"
	SkipNoAudio     = "audio file not found"
)

// Update describes what happened to one track with an unknown duration.
type Update struct {
	TrackID    string
	AudioPath  string
	Duration   string
	SkipReason string
	Err        error
}

// Summary counts the outcome of an Apply pass.
type Summary struct {
	Pending int
	Updated int
	Skipped int
	Failed  int
}

// Apply estimates every track whose duration is the unknown sentinel and
// stores the formatted result in the catalog. Tracks with a known duration
// are never touched. Per-track failures are reported through onUpdate and
// counted; they do not stop the pass. Cancellation stops it early.
func (e *Estimator) Apply(ctx context.Context, cat *catalog.Catalog, audioDir, ext string, onUpdate func(Update)) Summary {
	logger := logging.NewComponentLogger(e.Logger, "duration")
	ext = "." + strings.TrimPrefix(strings.TrimSpace(ext), ".")
	report := func(u Update) {
		if onUpdate != nil {
			onUpdate(u)
		}
	}

	var summary Summary
	for _, lt := range cat.Tracks() {
		track := lt.Track
		if !track.HasUnknownDuration() {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		summary.Pending++
		update := Update{TrackID: track.ID}

		symbolic := strings.TrimSpace(track.Path)
		if symbolic == "" || symbolic == "N/A" {
			update.SkipReason = SkipInvalidPath
			summary.Skipped++
			report(update)
			continue
		}
		update.AudioPath = filepath.Join(audioDir, filepath.FromSlash(symbolic)) + ext
		if info, err := os.Stat(update.AudioPath); err != nil || !info.Mode().IsRegular() {
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				logger.Debug("stat failed", logging.String("path", update.AudioPath), logging.Error(err))
			}
			update.SkipReason = SkipNoAudio
			summary.Skipped++
			report(update)
			continue
		}

		trackCtx := services.WithTrackID(ctx, track.ID)
		seconds, err := e.Estimate(trackCtx, update.AudioPath)
		if err == nil {
			update.Duration = FormatSeconds(seconds)
			err = track.SetDuration(update.Duration)
		}
		if err != nil {
			update.Err = err
			summary.Failed++
			logging.WithContext(trackCtx, logger).Warn("duration estimate failed",
				logging.String("path", update.AudioPath),
				logging.Error(err))
			report(update)
			continue
		}
		summary.Updated++
		logging.WithContext(trackCtx, logger).Debug("duration updated",
			logging.String("duration", update.Duration))
		report(update)
	}

	logger.Info("duration pass complete",
		logging.Int("pending", summary.Pending),
		logging.Int("updated", summary.Updated),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed))
	return summary
}
