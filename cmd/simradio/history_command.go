package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"simradio/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent runs, or the outcomes of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			store, err := ctx.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("journal is disabled (journal.enabled = false)")
			}
			if len(args) == 1 {
				return showRun(cmd, store, args[0], jsonOutput)
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Command,
					formatRunTime(run.StartedAt),
					runDuration(run),
					strconv.Itoa(run.Succeeded),
					strconv.Itoa(run.Failed),
					strconv.Itoa(run.Skipped),
				})
			}
			fmt.Fprintln(out, renderTable([]tableColumn{
				{Header: "Run"},
				{Header: "Command"},
				{Header: "Started"},
				{Header: "Elapsed", Align: alignRight},
				{Header: "OK", Align: alignRight},
				{Header: "Failed", Align: alignRight},
				{Header: "Skipped", Align: alignRight},
			}, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func showRun(cmd *cobra.Command, store *journal.Store, runID string, jsonOutput bool) error {
	run, err := store.GetRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	entries, err := store.RunOutcomes(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd, struct {
			Run      journal.Run     `json:"run"`
			Outcomes []journal.Entry `json:"outcomes"`
		}{run, entries})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s) started %s, finished: %s\n", run.ID, run.Command, formatRunTime(run.StartedAt), yesNo(run.Finished()))
	if run.Note != "" {
		fmt.Fprintln(out, run.Note)
	}
	if len(entries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.TrackID, e.Status, e.Failure, e.Elapsed.String(), e.Detail})
	}
	fmt.Fprintln(out, renderTable([]tableColumn{
		{Header: "Track"},
		{Header: "Status"},
		{Header: "Failure"},
		{Header: "Elapsed", Align: alignRight},
		{Header: "Detail", MaxWidth: 60},
	}, rows))
	return nil
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func runDuration(run journal.Run) string {
	if !run.Finished() {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
