package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CheckEncoder reports whether the ffmpeg build exposes the named audio encoder.
func CheckEncoder(ctx context.Context, ffmpegBinary, codec string) Status {
	codec = strings.TrimSpace(codec)
	status := Status{
		Name:        "Encoder " + codec,
		Command:     strings.TrimSpace(ffmpegBinary),
		Description: "Audio encoder compiled into FFmpeg",
	}
	if status.Command == "" || codec == "" {
		status.Detail = "command not configured"
		return status
	}
	cmd := exec.CommandContext(ctx, status.Command, "-hide_banner", "-encoders") //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		status.Detail = fmt.Sprintf("list encoders: %v", err)
		return status
	}
	if !hasEncoder(output, codec) {
		status.Detail = fmt.Sprintf("ffmpeg was built without %s", codec)
		return status
	}
	status.Available = true
	return status
}

// hasEncoder scans `ffmpeg -encoders` output. Entries look like
// " A....D libfdk_aac    Fraunhofer FDK AAC".
func hasEncoder(listing []byte, codec string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(listing))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "A") {
			continue
		}
		if fields[1] == codec {
			return true
		}
	}
	return false
}
