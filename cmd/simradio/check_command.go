package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"simradio/internal/catalog"
	"simradio/internal/resolve"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var missingOnly bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve every catalog track to extracted source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			report, err := resolveCatalog(cmd, ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, report.Results)
			}

			out := cmd.OutOrStdout()
			writeCheckSummary(out, report)
			rows := checkRows(report.Results, missingOnly)
			if len(rows) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]tableColumn{
					{Header: "Status"},
					{Header: "Track"},
					{Header: "Track List"},
					{Header: "Path", MaxWidth: 48},
					{Header: "Found", MaxWidth: 60},
					{Header: "Original Names", MaxWidth: 40},
				}, rows))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit resolution results as JSON")
	cmd.Flags().BoolVar(&missingOnly, "missing", false, "Only list tracks with no source files")
	return cmd
}

func resolveCatalog(cmd *cobra.Command, ctx *commandContext) (resolve.CheckReport, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return resolve.CheckReport{}, err
	}
	logger, err := ctx.ensureLogger(cmd)
	if err != nil {
		return resolve.CheckReport{}, err
	}
	cat, err := catalog.Load(cfg.Paths.Catalog)
	if err != nil {
		return resolve.CheckReport{}, err
	}
	return newResolver(cfg, logger).ResolveCatalog(cat, cfg.Catalog.ExcludedDirs), nil
}

func writeCheckSummary(out io.Writer, report resolve.CheckReport) {
	fmt.Fprintf(out, "Checked %d tracks. Found: %d, Missing: %d\n", report.Checked(), report.Found, report.Missing)
	if report.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d tracks (excluded directories)\n", report.Skipped)
	}
}

func checkRows(results []resolve.Result, missingOnly bool) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if missingOnly && !r.Missing() {
			continue
		}
		status := "found"
		switch {
		case r.Missing():
			status = "missing"
		case r.Merge():
			status = "merge"
		}
		rows = append(rows, []string{
			status,
			r.TrackID,
			r.TrackListID,
			r.SymbolicPath,
			strings.Join(r.Found, "\n"),
			strings.Join(r.Originals, "\n"),
		})
	}
	return rows
}
