package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"simradio/internal/logging"
	"simradio/internal/media/ffmpeg"
	"simradio/internal/resolve"
	"simradio/internal/services"
)

const (
	DefaultStereoBitrate = "192k"
	DefaultMonoBitrate   = "128k"
)

// Converter encodes sources into an output file.
type Converter interface {
	Transcode(ctx context.Context, req ffmpeg.Request) error
}

// Inspector reports the channel layout of a single source.
type Inspector interface {
	ChannelLayout(ctx context.Context, path string) (ffmpeg.Layout, error)
}

// Verifier checks an encoded file. Optional.
type Verifier interface {
	Verify(ctx context.Context, path string, layout ffmpeg.Layout) (Verification, error)
}

// Orchestrator runs conversion jobs on a bounded worker pool.
type Orchestrator struct {
	Converter     Converter
	Inspector     Inspector
	Verifier      Verifier
	Workers       int
	StereoBitrate string
	MonoBitrate   string
	Logger        *slog.Logger
}

func (o *Orchestrator) workers(jobs int) int {
	n := o.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > jobs {
		n = jobs
	}
	return n
}

func (o *Orchestrator) bitrate(layout ffmpeg.Layout) string {
	if layout == ffmpeg.LayoutMono {
		if o.MonoBitrate != "" {
			return o.MonoBitrate
		}
		return DefaultMonoBitrate
	}
	if o.StereoBitrate != "" {
		return o.StereoBitrate
	}
	return DefaultStereoBitrate
}

// Run converts every job and returns one outcome per job in completion
// order. onOutcome, when set, is called from the calling goroutine as each
// outcome arrives. A cancelled context stops jobs that have not started;
// they still produce an outcome.
func (o *Orchestrator) Run(ctx context.Context, jobs []Job, onOutcome func(Outcome)) []Outcome {
	if len(jobs) == 0 {
		return nil
	}
	logger := logging.NewComponentLogger(o.Logger, "transcode")
	workers := o.workers(len(jobs))
	logger.Info("conversion started",
		logging.Int("jobs", len(jobs)),
		logging.Int("workers", workers))

	queue := make(chan Job, len(jobs))
	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	results := make(chan Outcome, len(jobs))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				results <- o.convert(ctx, logger, job)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]Outcome, 0, len(jobs))
	failed := 0
	for outcome := range results {
		if outcome.Err != nil {
			failed++
		}
		outcomes = append(outcomes, outcome)
		if onOutcome != nil {
			onOutcome(outcome)
		}
	}
	logger.Info("conversion finished",
		logging.Int("succeeded", len(outcomes)-failed),
		logging.Int("failed", failed))
	return outcomes
}

func (o *Orchestrator) convert(ctx context.Context, logger *slog.Logger, job Job) (outcome Outcome) {
	started := time.Now()
	outcome = Outcome{
		TrackID:     job.TrackID,
		TrackListID: job.TrackListID,
		Destination: job.Destination,
		Sources:     job.Sources,
	}
	defer func() {
		outcome.Elapsed = time.Since(started)
	}()

	ctx = services.WithTrackID(ctx, job.TrackID)
	if job.TrackListID != "" {
		ctx = services.WithTrackListID(ctx, job.TrackListID)
	}
	ctx = services.WithStage(ctx, "transcode")
	jobLogger := logging.WithContext(ctx, logger)

	if err := ctx.Err(); err != nil {
		outcome.Err = services.Wrap(services.ErrTimeout, "transcode", job.TrackID, "not started", err)
		return outcome
	}

	switch len(job.Sources) {
	case 1:
		layout, err := o.Inspector.ChannelLayout(ctx, job.Sources[0])
		if err != nil {
			outcome.Err = err
			jobLogger.Warn("channel layout undetermined",
				logging.String("source", job.Sources[0]),
				logging.Error(err))
			return outcome
		}
		outcome.Layout = layout
	case 2:
		outcome.Layout = ffmpeg.LayoutStereo
	default:
		outcome.Err = services.Wrap(services.ErrConfiguration, "transcode", job.TrackID,
			fmt.Sprintf("expected 1 or 2 sources, got %d", len(job.Sources)), nil)
		return outcome
	}
	outcome.Bitrate = o.bitrate(outcome.Layout)

	err := o.Converter.Transcode(ctx, ffmpeg.Request{
		Inputs:  job.Sources,
		Output:  job.Destination,
		Bitrate: outcome.Bitrate,
	})
	var verified *Verification
	if err == nil && o.Verifier != nil {
		var v Verification
		v, err = o.Verifier.Verify(ctx, job.Destination, outcome.Layout)
		verified = &v
	}
	if err == nil {
		var info os.FileInfo
		if info, err = os.Stat(job.Destination); err == nil {
			outcome.OutputBytes = info.Size()
		} else {
			err = services.Wrap(services.ErrExternalTool, "transcode", job.TrackID, "output missing after encode", err)
		}
	}
	if err != nil {
		outcome.Err = err
		jobLogger.Warn("conversion failed",
			logging.String("destination", job.Destination),
			logging.Error(err))
		return outcome
	}
	attrs := []logging.Attr{
		logging.String("destination", job.Destination),
		logging.String("layout", string(outcome.Layout)),
		logging.String("bitrate", outcome.Bitrate),
		logging.Int64("output_bytes", outcome.OutputBytes),
		logging.Duration("elapsed", time.Since(started)),
	}
	if verified != nil {
		attrs = append(attrs,
			logging.String("duration_seconds", strconv.FormatFloat(verified.DurationSeconds, 'f', 3, 64)),
			logging.Int64("bit_rate", verified.BitRate))
	}
	jobLogger.Info("conversion complete", logging.Args(attrs...)...)
	return outcome
}

// ConvertAll plans and runs the conversion of resolved tracks. Skipped
// outcomes come first, followed by outcomes in completion order.
func (o *Orchestrator) ConvertAll(ctx context.Context, results []resolve.Result, outputDir, ext string, onOutcome func(Outcome)) ([]Outcome, error) {
	jobs, skipped, err := PlanJobs(results, outputDir, ext)
	if err != nil {
		return nil, err
	}
	if onOutcome != nil {
		for _, s := range skipped {
			onOutcome(s)
		}
	}
	return append(skipped, o.Run(ctx, jobs, onOutcome)...), nil
}
