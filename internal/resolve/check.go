package resolve

import (
	"strings"

	"simradio/internal/catalog"
	"simradio/internal/logging"
)

// CheckReport aggregates the resolution of a whole catalog.
type CheckReport struct {
	Results []Result
	Found   int
	Missing int
	Skipped int
}

// Checked returns the number of resolved (non-skipped) tracks.
func (c CheckReport) Checked() int {
	return len(c.Results)
}

// ResolveCatalog resolves every track with a path, in catalog order. Tracks
// whose first path segment is excluded are counted as skipped.
func (r *Resolver) ResolveCatalog(cat *catalog.Catalog, excludedDirs []string) CheckReport {
	excluded := make(map[string]struct{}, len(excludedDirs))
	for _, d := range excludedDirs {
		if d = strings.TrimSpace(d); d != "" {
			excluded[d] = struct{}{}
		}
	}

	var report CheckReport
	for _, lt := range cat.Tracks() {
		symbolic := lt.Track.Path
		if symbolic == "" {
			continue
		}
		first, _, _ := strings.Cut(symbolic, "/")
		if _, skip := excluded[first]; skip {
			report.Skipped++
			continue
		}
		result := r.Resolve(symbolic)
		result.TrackID = lt.Track.ID
		result.TrackListID = lt.List.ID
		if result.Missing() {
			report.Missing++
		} else {
			report.Found++
		}
		report.Results = append(report.Results, result)
	}

	r.logger.Info("catalog resolved",
		logging.Int("checked", report.Checked()),
		logging.Int("found", report.Found),
		logging.Int("missing", report.Missing),
		logging.Int("skipped", report.Skipped))
	return report
}
