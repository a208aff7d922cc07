package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeProbeStub(t *testing.T, body string) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(binary, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return binary
}

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "data"},
			{CodecType: "audio", Channels: 2},
			{CodecType: "audio", Channels: 1},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
			BitRate:  "32000",
		},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if got := result.AudioStreams()[0].Channels; got != 2 {
		t.Fatalf("expected first audio stream to be stereo, got %d channels", got)
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if result.BitRate() != 32000 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
}

func TestInspect(t *testing.T) {
	binary := writeProbeStub(t, `cat <<'JSON'
{"streams":[{"index":0,"codec_name":"aac","codec_type":"audio","channels":2,"channel_layout":"stereo"}],
 "format":{"filename":"out.m4a","nb_streams":1,"duration":"181.2"}}
JSON`)
	result, err := Inspect(context.Background(), binary, "out.m4a")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.AudioStreamCount() != 1 || result.Streams[0].ChannelLayout != "stereo" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.DurationSeconds() != 181.2 {
		t.Fatalf("unexpected duration %v", result.DurationSeconds())
	}
}

func TestDuration(t *testing.T) {
	binary := writeProbeStub(t, "echo 181.204989")
	got, err := Duration(context.Background(), binary, "track.m4a")
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if got != 181.204989 {
		t.Fatalf("Duration = %v", got)
	}
}

func TestDurationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "stderr output", body: "echo 12.5\necho 'track.m4a: Invalid data found' >&2"},
		{name: "non-zero exit", body: "exit 1"},
		{name: "unparsable", body: "echo N/A"},
		{name: "empty", body: "exit 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binary := writeProbeStub(t, tt.body)
			if _, err := Duration(context.Background(), binary, "track.m4a"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
