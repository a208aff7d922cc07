package main

import (
	"context"
	"log/slog"

	"simradio/internal/config"
	"simradio/internal/duration"
	"simradio/internal/media/ffmpeg"
	"simradio/internal/media/ffprobe"
	"simradio/internal/resolve"
	"simradio/internal/transcode"
)

func newResolver(cfg *config.Config, logger *slog.Logger) *resolve.Resolver {
	return resolve.NewResolver(cfg.Paths.SourceDir, resolve.NewGenerator(resolve.DefaultTable()), resolve.WithLogger(logger))
}

func newOrchestrator(cfg *config.Config, logger *slog.Logger) *transcode.Orchestrator {
	runner := ffmpeg.NewRunner(cfg.Conversion.FFmpegBinary, cfg.Conversion.Codec)
	orch := &transcode.Orchestrator{
		Converter:     runner,
		Inspector:     runner,
		Workers:       cfg.Conversion.Workers,
		StereoBitrate: cfg.Conversion.StereoBitrate,
		MonoBitrate:   cfg.Conversion.MonoBitrate,
		Logger:        logger,
	}
	if cfg.Conversion.Verify {
		orch.Verifier = transcode.ProbeVerifier{Binary: cfg.Conversion.FFprobeBinary}
	}
	return orch
}

func newEstimator(cfg *config.Config, logger *slog.Logger) *duration.Estimator {
	binary := cfg.Conversion.FFprobeBinary
	prober := duration.ProberFunc(func(ctx context.Context, path string) (float64, error) {
		return ffprobe.Duration(ctx, binary, path)
	})
	est := duration.NewEstimator(prober, ffmpeg.NewRunner(cfg.Conversion.FFmpegBinary, cfg.Conversion.Codec))
	est.TailSeconds = cfg.Duration.AnalysisTailSeconds
	est.NoiseDB = cfg.Duration.SilenceThresholdDB
	est.MinSilence = cfg.Duration.MinSilenceSeconds
	est.Logger = logger
	return est
}
