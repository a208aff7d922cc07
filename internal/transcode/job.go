package transcode

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"simradio/internal/media/ffmpeg"
	"simradio/internal/resolve"
	"simradio/internal/services"
)

// Job is one conversion: one or two ordered sources into a single file.
type Job struct {
	TrackID      string
	TrackListID  string
	SymbolicPath string
	Sources      []string
	Destination  string
}

// Outcome is the result of one job. Skipped outcomes carry tracks that had
// nothing to convert.
type Outcome struct {
	TrackID     string        `json:"track_id"`
	TrackListID string        `json:"track_list_id,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Sources     []string      `json:"sources,omitempty"`
	Layout      ffmpeg.Layout `json:"layout,omitempty"`
	Bitrate     string        `json:"bitrate,omitempty"`
	OutputBytes int64         `json:"output_bytes,omitempty"`
	Err         error         `json:"-"`
	Skipped     bool          `json:"skipped,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Succeeded reports whether the job produced its destination file.
func (o Outcome) Succeeded() bool {
	return !o.Skipped && o.Err == nil
}

// Failure classifies the outcome for reporting.
func (o Outcome) Failure() services.FailureKind {
	if o.Skipped {
		return services.FailureMissing
	}
	return services.Classify(o.Err)
}

// Destination mirrors a symbolic path under outputDir with ext replacing any
// extension.
func Destination(outputDir, symbolicPath, ext string) string {
	clean := path.Clean(strings.TrimPrefix(strings.ReplaceAll(symbolicPath, "\\", "/"), "/"))
	clean = strings.TrimSuffix(clean, path.Ext(clean))
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	return filepath.Join(outputDir, filepath.FromSlash(clean)) + "." + ext
}

// PlanJobs builds one job per resolved track. Tracks without sources become
// skipped outcomes. Destination directories are created before returning.
func PlanJobs(results []resolve.Result, outputDir, ext string) ([]Job, []Outcome, error) {
	if strings.TrimSpace(outputDir) == "" {
		return nil, nil, services.Wrap(services.ErrConfiguration, "transcode", "plan", "output directory not set", nil)
	}
	if strings.TrimSpace(ext) == "" {
		return nil, nil, services.Wrap(services.ErrConfiguration, "transcode", "plan", "output extension not set", nil)
	}

	var (
		jobs    []Job
		skipped []Outcome
	)
	dirs := make(map[string]struct{})
	for _, r := range results {
		if r.Missing() {
			skipped = append(skipped, Outcome{TrackID: r.TrackID, TrackListID: r.TrackListID, Skipped: true})
			continue
		}
		dest := Destination(outputDir, r.SymbolicPath, ext)
		dirs[filepath.Dir(dest)] = struct{}{}
		jobs = append(jobs, Job{
			TrackID:      r.TrackID,
			TrackListID:  r.TrackListID,
			SymbolicPath: r.SymbolicPath,
			Sources:      append([]string(nil), r.Found...),
			Destination:  dest,
		})
	}
	for dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	return jobs, skipped, nil
}
