package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"simradio/internal/services"
)

// Request describes one encode. Two inputs are merged into a single stereo
// stream, first input on the left.
type Request struct {
	Inputs  []string
	Output  string
	Bitrate string
}

// Args returns the ffmpeg arguments for the request.
func (r *Runner) Args(req Request) ([]string, error) {
	if strings.TrimSpace(req.Output) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "ffmpeg", "transcode", "empty output path", nil)
	}
	if strings.TrimSpace(req.Bitrate) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "ffmpeg", "transcode", "empty bitrate", nil)
	}
	args := []string{"-hide_banner", "-nostdin"}
	switch len(req.Inputs) {
	case 1:
		args = append(args, "-i", req.Inputs[0], "-y")
	case 2:
		args = append(args,
			"-i", req.Inputs[0],
			"-i", req.Inputs[1],
			"-y",
			"-filter_complex", "[0:a][1:a]amerge=inputs=2[a]",
			"-map", "[a]",
		)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "ffmpeg", "transcode",
			fmt.Sprintf("expected 1 or 2 inputs, got %d", len(req.Inputs)), nil)
	}
	args = append(args, "-c:a", r.codec(), "-b:a", req.Bitrate, req.Output)
	return args, nil
}

// Transcode encodes the request's inputs into its output file, overwriting
// any existing file.
func (r *Runner) Transcode(ctx context.Context, req Request) error {
	args, err := r.Args(req)
	if err != nil {
		return err
	}
	output, err := r.run(ctx, "transcode", args...)
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "transcode",
			fmt.Sprintf("exit %d: %s", exitErr.ExitCode(), stderrTail(output)), err)
	}
	return err
}
