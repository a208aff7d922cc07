package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"simradio/internal/journal"
	"simradio/internal/services"
	"simradio/internal/transcode"
)

// errRunFailures reports that a batch finished with per-track failures.
var errRunFailures = errors.New("some tracks failed")

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Resolve and transcode every catalog track",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			report, err := resolveCatalog(cmd, ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			writeCheckSummary(out, report)

			runCtx := cmd.Context()
			store, err := ctx.openJournal(runCtx)
			if err != nil {
				return err
			}
			rec := beginRun(runCtx, store, "convert", logger)
			runCtx = services.WithRunID(runCtx, rec.id())

			colorize := shouldColorize(out)
			progress := newProgressReporter(cmd.ErrOrStderr(), "convert", report.Found, !noProgress, logger)
			outcomes, err := newOrchestrator(cfg, logger).ConvertAll(runCtx, report.Results, cfg.Paths.OutputDir, cfg.Conversion.Extension, func(o transcode.Outcome) {
				rec.record(runCtx, journalEntry(o))
				if o.Skipped {
					return
				}
				progress.Println(out, outcomeLine(o, colorize))
				progress.Increment()
			})
			progress.Wait()
			if err != nil {
				rec.finish("planning failed")
				return err
			}
			succeeded, failed, missing := countOutcomes(outcomes)
			note := fmt.Sprintf("%d converted, %d failed, %d missing", succeeded, failed, missing)
			rec.finish(note)
			fmt.Fprintf(out, "Converted %d tracks. Failed: %d, Missing: %d\n", succeeded, failed, missing)

			if err := runCtx.Err(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("convert: %w (%d)", errRunFailures, failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	return cmd
}

func outcomeLine(o transcode.Outcome, colorize bool) string {
	if o.Succeeded() {
		detail := "→ " + o.Destination
		if o.Layout != "" {
			detail += fmt.Sprintf(" (%s, %s)", o.Layout, o.Bitrate)
		}
		return renderOutcomeLine(statusOK, o.TrackID, detail, colorize)
	}
	return renderOutcomeLine(statusError, o.TrackID, fmt.Sprintf("[%s] %v", o.Failure(), o.Err), colorize)
}

func countOutcomes(outcomes []transcode.Outcome) (succeeded, failed, missing int) {
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			missing++
		case o.Succeeded():
			succeeded++
		default:
			failed++
		}
	}
	return succeeded, failed, missing
}

func journalEntry(o transcode.Outcome) journal.Entry {
	entry := journal.Entry{
		TrackID:     o.TrackID,
		Destination: o.Destination,
		Elapsed:     o.Elapsed,
		RecordedAt:  time.Now(),
	}
	switch {
	case o.Skipped:
		entry.Status = journal.StatusSkipped
		entry.Failure = string(o.Failure())
		entry.Destination = ""
	case o.Succeeded():
		entry.Status = journal.StatusSucceeded
		entry.Detail = strings.TrimSpace(fmt.Sprintf("%s %s", o.Layout, o.Bitrate))
	default:
		entry.Status = journal.StatusFailed
		entry.Failure = string(o.Failure())
		entry.Detail = o.Err.Error()
	}
	return entry
}
