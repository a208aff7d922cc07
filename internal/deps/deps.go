package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"simradio/internal/config"
)

// Requirement defines an external dependency simradio relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the binaries the pipeline executes for cfg.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg, ffprobe := "ffmpeg", "ffprobe"
	if cfg != nil {
		ffmpeg = cfg.Conversion.FFmpegBinary
		ffprobe = cfg.Conversion.FFprobeBinary
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Transcoding, channel inspection, and silence detection"},
		{Name: "FFprobe", Command: ffprobe, Description: "Duration probing and output verification"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing returns the required entries that are unavailable.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			out = append(out, status)
		}
	}
	return out
}
