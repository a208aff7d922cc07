package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	"simradio/internal/services"
)

// SilenceQuery bounds a silencedetect pass. Start is the seek offset in
// seconds; reported timestamps are relative to it.
type SilenceQuery struct {
	Start      float64
	NoiseDB    float64
	MinSilence float64
}

var silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?\d+(?:\.\d+)?)`)

// DetectSilence returns the start of every silent interval ffmpeg reports,
// in the order reported.
func (r *Runner) DetectSilence(ctx context.Context, path string, q SilenceQuery) ([]float64, error) {
	filter := fmt.Sprintf("silencedetect=noise=%sdB:d=%s",
		strconv.FormatFloat(q.NoiseDB, 'f', -1, 64),
		strconv.FormatFloat(q.MinSilence, 'f', -1, 64))
	output, err := r.run(ctx, "detect silence",
		"-hide_banner", "-nostdin",
		"-ss", strconv.FormatFloat(q.Start, 'f', 3, 64),
		"-i", path,
		"-af", filter,
		"-f", "null", "-",
	)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, services.Wrap(services.ErrExternalTool, "ffmpeg", "detect silence",
				fmt.Sprintf("exit %d: %s", exitErr.ExitCode(), stderrTail(output)), err)
		}
		return nil, err
	}
	return parseSilenceStarts(output), nil
}

func parseSilenceStarts(output []byte) []float64 {
	var starts []float64
	for _, m := range silenceStartRe.FindAllSubmatch(output, -1) {
		v, err := strconv.ParseFloat(string(m[1]), 64)
		if err != nil {
			continue
		}
		starts = append(starts, v)
	}
	return starts
}
