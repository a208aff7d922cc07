package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"simradio/internal/catalog"
	"simradio/internal/duration"
	"simradio/internal/journal"
	"simradio/internal/services"
)

func newDurationsCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "durations",
		Short: "Estimate unknown track durations from converted audio",
		Long: "Measures every track whose duration is -1 using the converted files, " +
			"trimming trailing silence, and rewrites the catalog in place.",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer ctx.close()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			unlock, err := catalog.Lock(cfg.Paths.Catalog)
			if err != nil {
				return err
			}
			defer func() {
				if unlockErr := unlock(); unlockErr != nil && err == nil {
					err = unlockErr
				}
			}()

			cat, err := catalog.Load(cfg.Paths.Catalog)
			if err != nil {
				return err
			}

			runCtx := cmd.Context()
			store, err := ctx.openJournal(runCtx)
			if err != nil {
				return err
			}
			rec := beginRun(runCtx, store, "durations", logger)
			runCtx = services.WithRunID(runCtx, rec.id())

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			summary := newEstimator(cfg, logger).Apply(runCtx, cat, cfg.Paths.OutputDir, cfg.Conversion.Extension, func(u duration.Update) {
				rec.record(runCtx, durationEntry(u))
				switch {
				case u.Err != nil:
					fmt.Fprintln(out, renderOutcomeLine(statusError, u.TrackID, u.Err.Error(), colorize))
				case u.SkipReason != "":
					fmt.Fprintln(out, renderOutcomeLine(statusWarn, u.TrackID, "skipped: "+u.SkipReason, colorize))
				default:
					fmt.Fprintln(out, renderOutcomeLine(statusOK, u.TrackID, u.Duration+"s", colorize))
				}
			})

			note := fmt.Sprintf("%d updated, %d skipped, %d failed", summary.Updated, summary.Skipped, summary.Failed)
			rec.finish(note)
			fmt.Fprintf(out, "Unknown durations: %d. Updated: %d, Skipped: %d, Failed: %d\n",
				summary.Pending, summary.Updated, summary.Skipped, summary.Failed)

			if summary.Updated > 0 && !dryRun {
				if err := catalog.Save(cfg.Paths.Catalog, cat); err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated %s\n", cfg.Paths.Catalog)
			}
			if err := runCtx.Err(); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("durations: %w (%d)", errRunFailures, summary.Failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Measure durations without rewriting the catalog")
	return cmd
}

func durationEntry(u duration.Update) journal.Entry {
	entry := journal.Entry{TrackID: u.TrackID, Destination: u.AudioPath}
	switch {
	case u.Err != nil:
		entry.Status = journal.StatusFailed
		entry.Failure = string(services.Classify(u.Err))
		entry.Detail = u.Err.Error()
	case u.SkipReason != "":
		entry.Status = journal.StatusSkipped
		entry.Failure = string(services.FailureMissing)
		entry.Detail = u.SkipReason
	default:
		entry.Status = journal.StatusSucceeded
		entry.Detail = u.Duration
	}
	return entry
}
