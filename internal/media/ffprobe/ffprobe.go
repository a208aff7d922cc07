package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBinary is used when no ffprobe path is configured.
const DefaultBinary = "ffprobe"

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	Duration      string `json:"duration"`
	BitRate       string `json:"bit_rate"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	ChannelLayout string `json:"channel_layout"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

func resolveBinary(binary string) string {
	if b := strings.TrimSpace(binary); b != "" {
		return b
	}
	return DefaultBinary
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, resolveBinary(binary), "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// Duration returns the container duration of path in seconds. Anything
// ffprobe writes to stderr is treated as a failed probe, even on exit 0.
func Duration(ctx context.Context, binary string, path string) (float64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("ffprobe duration: empty path")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, resolveBinary(binary), "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if msg := strings.TrimSpace(stderr.String()); err != nil || msg != "" {
		if err == nil {
			err = errors.New("diagnostic output")
		}
		return 0, fmt.Errorf("ffprobe duration %s: %w: %s", path, err, msg)
	}

	value := strings.TrimSpace(stdout.String())
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, fmt.Errorf("ffprobe duration %s: unparsable value %q", path, value)
	}
	return seconds, nil
}

// AudioStreams returns the audio streams in container order.
func (r Result) AudioStreams() []Stream {
	var out []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			out = append(out, stream)
		}
	}
	return out
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	return len(r.AudioStreams())
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	rate := parseFloat(r.Format.BitRate)
	if math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return int64(rate)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
