package transcode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"simradio/internal/media/ffmpeg"
	"simradio/internal/services"
)

func writeFFprobeStub(t *testing.T, payload string) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "ffprobe")
	script := "#!/bin/sh\ncat <<'JSON'\n" + payload + "\nJSON\n"
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return binary
}

func TestProbeVerifier(t *testing.T) {
	const stereo = `{"streams":[{"index":0,"codec_type":"audio","channels":2}],"format":{"duration":"181.2","size":"2048","bit_rate":"192000"}}`
	tests := []struct {
		name    string
		payload string
		layout  ffmpeg.Layout
		wantErr bool
	}{
		{name: "stereo ok", payload: stereo, layout: ffmpeg.LayoutStereo},
		{name: "channel mismatch", payload: stereo, layout: ffmpeg.LayoutMono, wantErr: true},
		{name: "empty output", payload: `{"streams":[{"index":0,"codec_type":"audio","channels":2}],"format":{"size":"0"}}`, layout: ffmpeg.LayoutStereo, wantErr: true},
		{name: "no audio", payload: `{"streams":[{"index":0,"codec_type":"video"}],"format":{"size":"10"}}`, layout: ffmpeg.LayoutStereo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := ProbeVerifier{Binary: writeFFprobeStub(t, tt.payload)}
			report, err := verifier.Verify(context.Background(), "out.m4a", tt.layout)
			if tt.wantErr {
				if !errors.Is(err, services.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if report.SizeBytes != 2048 || report.BitRate != 192000 || report.DurationSeconds != 181.2 {
				t.Fatalf("unexpected report %+v", report)
			}
		})
	}
}

func TestProbeVerifierToolFailure(t *testing.T) {
	binary := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(binary, []byte("#!/bin/sh\necho 'No such file' 1>&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	_, err := ProbeVerifier{Binary: binary}.Verify(context.Background(), "out.m4a", ffmpeg.LayoutStereo)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}
