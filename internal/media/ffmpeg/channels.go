package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"

	"simradio/internal/services"
)

// Layout is the channel layout of an audio stream.
type Layout string

const (
	LayoutUnknown Layout = ""
	LayoutMono    Layout = "mono"
	LayoutStereo  Layout = "stereo"
)

var channelLayoutRe = regexp.MustCompile(`Stream #\d+:\d+[^:]*: Audio:.*?, \d+ Hz, (mono|stereo),`)

// DeterminationError reports that ffmpeg ran but did not reveal a supported
// channel layout.
type DeterminationError struct {
	Path string
}

func (e *DeterminationError) Error() string {
	return fmt.Sprintf("could not determine channel layout of %s", e.Path)
}

// Is lets errors.Is(err, services.ErrDetermination) match.
func (e *DeterminationError) Is(target error) bool {
	return target == services.ErrDetermination
}

// ChannelLayout asks ffmpeg for the layout of the first audio stream. ffmpeg
// exits non-zero when given no output, so only start failures are errors.
func (r *Runner) ChannelLayout(ctx context.Context, path string) (Layout, error) {
	output, err := r.run(ctx, "inspect channels", "-hide_banner", "-i", path)
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return LayoutUnknown, err
	}
	return parseChannelLayout(path, output)
}

func parseChannelLayout(path string, output []byte) (Layout, error) {
	m := channelLayoutRe.FindSubmatch(output)
	if m == nil {
		return LayoutUnknown, &DeterminationError{Path: path}
	}
	return Layout(m[1]), nil
}
