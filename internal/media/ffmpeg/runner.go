package ffmpeg

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"

	"simradio/internal/services"
)

const (
	// DefaultBinary is used when no ffmpeg path is configured.
	DefaultBinary = "ffmpeg"
	// DefaultCodec is the AAC encoder used for output files.
	DefaultCodec = "libfdk_aac"

	stderrTailLines = 6
)

// Runner invokes ffmpeg.
type Runner struct {
	Binary string
	Codec  string
}

// NewRunner returns a runner, substituting defaults for empty values.
func NewRunner(binary, codec string) *Runner {
	return &Runner{Binary: binary, Codec: codec}
}

func (r *Runner) binary() string {
	if r == nil {
		return DefaultBinary
	}
	if b := strings.TrimSpace(r.Binary); b != "" {
		return b
	}
	return DefaultBinary
}

func (r *Runner) codec() string {
	if r == nil {
		return DefaultCodec
	}
	if c := strings.TrimSpace(r.Codec); c != "" {
		return c
	}
	return DefaultCodec
}

// run executes ffmpeg and returns its combined output. A non-zero exit is
// returned as *exec.ExitError so callers can decide whether it matters.
func (r *Runner) run(ctx context.Context, operation string, args ...string) ([]byte, error) {
	binary := r.binary()
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return output, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return output, services.Wrap(services.ErrTimeout, "ffmpeg", operation, "cancelled", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, err
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return output, services.Wrap(services.ErrToolMissing, "ffmpeg", operation, binary, err)
	}
	return output, services.Wrap(services.ErrExternalTool, "ffmpeg", operation, "start", err)
}

// stderrTail keeps the last few non-empty lines of tool output for error messages.
func stderrTail(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	kept := make([]string, 0, stderrTailLines)
	for i := len(lines) - 1; i >= 0 && len(kept) < stderrTailLines; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			kept = append(kept, line)
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.Join(kept, " | ")
}
