package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"simradio/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that ffmpeg, ffprobe, and the AAC encoder are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			if len(statuses) > 0 && statuses[0].Available {
				statuses = append(statuses, deps.CheckEncoder(cmd.Context(), statuses[0].Path, cfg.Conversion.Codec))
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range dependencyLines(statuses, colorize) {
				fmt.Fprintln(out, line)
			}
			if missing := deps.Missing(statuses); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, m := range missing {
					names = append(names, m.Name)
				}
				return fmt.Errorf("missing dependencies: %s", strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses))
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			if dep.Path != "" {
				message = fmt.Sprintf("Ready (%s)", dep.Path)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}
		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	return lines
}
