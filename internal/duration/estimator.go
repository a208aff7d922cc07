package duration

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"simradio/internal/media/ffmpeg"
	"simradio/internal/services"
)

const (
	DefaultTailSeconds = 8.0
	DefaultNoiseDB     = -14.0
	DefaultMinSilence  = 0.5
)

// Prober reports the total duration of a file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, path string) (float64, error)

// Duration implements Prober.
func (f ProberFunc) Duration(ctx context.Context, path string) (float64, error) {
	return f(ctx, path)
}

// SilenceDetector reports silence start offsets relative to the query start.
type SilenceDetector interface {
	DetectSilence(ctx context.Context, path string, q ffmpeg.SilenceQuery) ([]float64, error)
}

// Estimator computes audible durations.
type Estimator struct {
	Prober      Prober
	Silence     SilenceDetector
	TailSeconds float64
	NoiseDB     float64
	MinSilence  float64
	Logger      *slog.Logger
}

// NewEstimator returns an estimator with the default analysis window.
func NewEstimator(prober Prober, silence SilenceDetector) *Estimator {
	return &Estimator{
		Prober:      prober,
		Silence:     silence,
		TailSeconds: DefaultTailSeconds,
		NoiseDB:     DefaultNoiseDB,
		MinSilence:  DefaultMinSilence,
	}
}

// Estimate returns the audible duration of path rounded to milliseconds.
// Without trailing silence the full duration is returned; the result never
// exceeds it.
func (e *Estimator) Estimate(ctx context.Context, path string) (float64, error) {
	total, err := e.Prober.Duration(ctx, path)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "duration", "probe", path, err)
	}

	tail := e.TailSeconds
	if tail <= 0 {
		tail = DefaultTailSeconds
	}
	// Rounded to the precision passed to ffmpeg as -ss.
	start := roundMillis(math.Max(0, total-tail))
	starts, err := e.Silence.DetectSilence(ctx, path, ffmpeg.SilenceQuery{
		Start:      start,
		NoiseDB:    e.NoiseDB,
		MinSilence: e.MinSilence,
	})
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "duration", "detect silence", path, err)
	}
	if len(starts) == 0 {
		return roundMillis(total), nil
	}
	last := math.Max(0, starts[len(starts)-1])
	return roundMillis(math.Min(start+last, total)), nil
}

func roundMillis(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// FormatSeconds renders a duration with at most three decimals and no
// trailing zeros, e.g. 181.2 or 90.
func FormatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
