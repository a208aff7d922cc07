package transcode

import (
	"context"
	"fmt"

	"simradio/internal/media/ffmpeg"
	"simradio/internal/media/ffprobe"
	"simradio/internal/services"
)

// Verification carries what ffprobe reported about an encoded file.
type Verification struct {
	DurationSeconds float64
	SizeBytes       int64
	BitRate         int64
}

// ProbeVerifier confirms with ffprobe that an encoded file is non-empty and
// holds exactly one audio stream with the expected channel count.
type ProbeVerifier struct {
	Binary string
}

// Verify implements Verifier.
func (v ProbeVerifier) Verify(ctx context.Context, path string, layout ffmpeg.Layout) (Verification, error) {
	result, err := ffprobe.Inspect(ctx, v.Binary, path)
	if err != nil {
		return Verification{}, services.Wrap(services.ErrExternalTool, "transcode", "verify", path, err)
	}
	report := Verification{
		DurationSeconds: result.DurationSeconds(),
		SizeBytes:       result.SizeBytes(),
		BitRate:         result.BitRate(),
	}
	if report.SizeBytes == 0 {
		return report, services.Wrap(services.ErrValidation, "transcode", "verify",
			fmt.Sprintf("%s: empty output", path), nil)
	}
	if n := result.AudioStreamCount(); n != 1 {
		return report, services.Wrap(services.ErrValidation, "transcode", "verify",
			fmt.Sprintf("%s: expected 1 audio stream, found %d", path, n), nil)
	}
	want := 2
	if layout == ffmpeg.LayoutMono {
		want = 1
	}
	if channels := result.AudioStreams()[0].Channels; channels != want {
		return report, services.Wrap(services.ErrValidation, "transcode", "verify",
			fmt.Sprintf("%s: expected %d channels, found %d", path, want, channels), nil)
	}
	return report, nil
}
